package assembly

// emitter forwards fragments to a sequence consumer. Once the consumer stops,
// every further emit is dropped, so interleavers only need to check stopped
// at their loop boundaries.
type emitter struct {
	yield   func(string) bool
	stopped bool
	count   int
}

// emit forwards a non-empty fragment and reports whether the consumer wants
// more.
func (e *emitter) emit(fragment string) bool {
	if e.stopped {
		return false
	}
	if fragment == "" {
		return true
	}
	e.count++
	if !e.yield(fragment) {
		e.stopped = true
	}
	return !e.stopped
}

// emitAll forwards fragments in order until the consumer stops.
func (e *emitter) emitAll(fragments []string) bool {
	for _, f := range fragments {
		if !e.emit(f) {
			return false
		}
	}
	return !e.stopped
}
