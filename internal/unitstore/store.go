// Package unitstore persists parsed content units in SQLite and imports
// them from YAML or JSON fixture files.
package unitstore

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/FocuswithJustin/JuniperDocgen/core/bible"
	"github.com/FocuswithJustin/JuniperDocgen/core/cas"
	"github.com/FocuswithJustin/JuniperDocgen/core/content"
	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
	"github.com/FocuswithJustin/JuniperDocgen/core/sqlite"
)

// migrations is the unit store schema, one step per user_version.
var migrations = []string{
	`CREATE TABLE units (
		lang       TEXT NOT NULL,
		resource   TEXT NOT NULL,
		book       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		lang_name  TEXT NOT NULL DEFAULT '',
		title      TEXT NOT NULL DEFAULT '',
		body       BLOB NOT NULL,
		body_hash  TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (lang, resource, book)
	)`,
	`CREATE INDEX units_book ON units (book, lang)`,
}

// Store is the unit database handle.
type Store struct {
	DB *sql.DB
}

// Summary describes a stored unit without its content.
type Summary struct {
	Request   bible.ResourceRequest `json:"request"`
	Kind      content.Kind          `json:"kind"`
	LangName  string                `json:"lang_name,omitempty"`
	Title     string                `json:"title,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens (or creates) the unit database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	// One connection keeps in-memory databases shared across calls.
	db.SetMaxOpenConns(1)
	if err := sqlite.Migrate(ctx, db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Put stores a record, replacing any unit with the same language, resource
// and book. It reports false when the stored content was already identical.
func (s *Store) Put(ctx context.Context, r *Record) (bool, error) {
	return put(ctx, s.DB, r)
}

// PutUnit stores a content unit.
func (s *Store) PutUnit(ctx context.Context, u content.Unit) (bool, error) {
	return s.Put(ctx, FromUnit(u))
}

func put(ctx context.Context, db execer, r *Record) (bool, error) {
	if err := r.renderMarkdown(); err != nil {
		return false, errors.Wrapf(err, "rendering markdown of %s", r.Request())
	}
	if _, err := r.Unit(); err != nil {
		return false, err
	}
	body, err := json.Marshal(r)
	if err != nil {
		return false, errors.Wrapf(err, "encoding %s", r.Request())
	}
	hash := cas.Hash(body)

	var existing string
	err = db.QueryRowContext(ctx, `
		SELECT body_hash FROM units
		WHERE lang = ? AND resource = ? AND book = ?`, r.Lang, r.Resource, r.Book).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if existing == hash {
		return false, nil // unchanged
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO units (lang, resource, book, kind, lang_name, title, body, body_hash, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (lang, resource, book) DO UPDATE SET
			kind = excluded.kind,
			lang_name = excluded.lang_name,
			title = excluded.title,
			body = excluded.body,
			body_hash = excluded.body_hash,
			updated_at = excluded.updated_at`,
		r.Lang, r.Resource, r.Book, r.Kind().String(), r.LangName, r.Title,
		body, hash, time.Now().UnixMilli())
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the unit selected by req.
func (s *Store) Get(ctx context.Context, req bible.ResourceRequest) (content.Unit, error) {
	var body []byte
	err := s.DB.QueryRowContext(ctx, `
		SELECT body FROM units
		WHERE lang = ? AND resource = ? AND book = ?`, req.LangCode, req.ResourceType, req.BookCode).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound("unit", req.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "query unit "+req.String())
	}

	var r Record
	if err := json.Unmarshal(body, &r); err != nil {
		pe := errors.NewParse("unit record", req.String(), err.Error())
		pe.Err = err
		return nil, pe
	}
	return r.Unit()
}

// Load returns the units selected by reqs, in request order. It fails on
// the first unit that is not stored.
func (s *Store) Load(ctx context.Context, reqs []bible.ResourceRequest) ([]content.Unit, error) {
	units := make([]content.Unit, 0, len(reqs))
	for _, req := range reqs {
		u, err := s.Get(ctx, req)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

// Delete removes a unit. Deleting a missing unit is not an error.
func (s *Store) Delete(ctx context.Context, req bible.ResourceRequest) error {
	_, err := s.DB.ExecContext(ctx, `
		DELETE FROM units
		WHERE lang = ? AND resource = ? AND book = ?`, req.LangCode, req.ResourceType, req.BookCode)
	return err
}

// List returns every stored unit, by language, canonical book order and
// resource type.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT lang, resource, book, kind, lang_name, title, updated_at
		FROM units`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var kind string
		var updated int64
		if err := rows.Scan(&sum.Request.LangCode, &sum.Request.ResourceType, &sum.Request.BookCode,
			&kind, &sum.LangName, &sum.Title, &updated); err != nil {
			return nil, err
		}
		k, err := content.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", sum.Request, err)
		}
		sum.Kind = k
		sum.UpdatedAt = time.UnixMilli(updated)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b Summary) int {
		return cmp.Or(
			cmp.Compare(a.Request.LangCode, b.Request.LangCode),
			cmp.Compare(bible.Order(a.Request.BookCode), bible.Order(b.Request.BookCode)),
			cmp.Compare(a.Request.ResourceType, b.Request.ResourceType),
		)
	})
	return out, nil
}
