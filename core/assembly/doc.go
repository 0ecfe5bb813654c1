// Package assembly interleaves parsed book content units into one ordered
// stream of HTML fragments.
//
// An assembly call takes a flat list of units (scripture, translation notes,
// translation questions, translation words and commentary for any number of
// languages and books) and a Request naming the strategy, layout and chunk
// size:
//
//	engine := assembly.NewEngine()
//	seq, err := engine.Assemble(units, assembly.Request{
//		Strategy: assembly.LanguageBookOrder,
//		Layout:   assembly.OneColumn,
//		Chunk:    assembly.ChunkVerse,
//	})
//	if err != nil {
//		return err
//	}
//	return assembly.Write(ctx, w, seq)
//
// The strategy groups the units, by language then book or by book then
// language. For every group the presence classifier computes which kinds are
// present, and the dispatch tables map that presence key and the layout to a
// named Interleaver. Dispatch runs eagerly so an unsupported combination
// fails before any fragment is produced; the fragments themselves are
// produced lazily, verse by verse, and the consumer may stop at any point.
//
// The concatenated fragments form a document body. The engine never emits
// an outer html or body element and never performs I/O.
package assembly
