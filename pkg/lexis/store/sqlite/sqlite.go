// Package sqlite implements store.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexis/pkg/lexis/analyze"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database with WAL mode enabled
// and the schema initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enable WAL: %v", internalerr.ErrStoreUnavailable, err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", internalerr.ErrStoreUnavailable, err)
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	language TEXT NOT NULL,
	tokens TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_language ON documents(language);

CREATE TABLE IF NOT EXISTS bundles (
	scope_kind TEXT NOT NULL,
	scope_key TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY(scope_kind, scope_key)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveDocument inserts or replaces a document record. Tokens are stored as
// a JSON array.
func (s *sqliteStore) SaveDocument(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("%w: document without id", internalerr.ErrInvalidInput)
	}
	tokens, err := json.Marshal(d.Tokens)
	if err != nil {
		return fmt.Errorf("encode tokens for %s: %w", d.ID, err)
	}

	const stmt = `
INSERT INTO documents (id, source_file, language, tokens)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source_file=excluded.source_file,
	language=excluded.language,
	tokens=excluded.tokens;
`
	if _, err := s.db.ExecContext(ctx, stmt, d.ID, d.SourceFile, d.Language, string(tokens)); err != nil {
		return fmt.Errorf("save document %s: %w", d.ID, err)
	}
	return nil
}

// GetDocument returns a document by id.
func (s *sqliteStore) GetDocument(ctx context.Context, id string) (store.Doc, error) {
	const stmt = `SELECT id, source_file, language, tokens FROM documents WHERE id = ?`

	var doc store.Doc
	var tokens string
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&doc.ID, &doc.SourceFile, &doc.Language, &tokens)
	if err == sql.ErrNoRows {
		return store.Doc{}, fmt.Errorf("%w: document %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return store.Doc{}, fmt.Errorf("get document %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tokens), &doc.Tokens); err != nil {
		return store.Doc{}, fmt.Errorf("decode tokens for %s: %w", id, err)
	}
	return doc, nil
}

// SaveBundle inserts or replaces the bundle for a scope, serialized as JSON.
func (s *sqliteStore) SaveBundle(ctx context.Context, scope store.Scope, b analyze.Bundle) error {
	if scope.Kind == "" || scope.Key == "" {
		return fmt.Errorf("%w: incomplete scope %+v", internalerr.ErrInvalidInput, scope)
	}
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bundle for %s/%s: %w", scope.Kind, scope.Key, err)
	}

	const stmt = `
INSERT INTO bundles (scope_kind, scope_key, payload)
VALUES (?, ?, ?)
ON CONFLICT(scope_kind, scope_key) DO UPDATE SET payload=excluded.payload;
`
	if _, err := s.db.ExecContext(ctx, stmt, string(scope.Kind), scope.Key, string(payload)); err != nil {
		return fmt.Errorf("save bundle %s/%s: %w", scope.Kind, scope.Key, err)
	}
	return nil
}

// BundlesByScope returns every stored bundle of one kind, keyed by scope key.
func (s *sqliteStore) BundlesByScope(ctx context.Context, kind store.ScopeKind) (map[string]analyze.Bundle, error) {
	const stmt = `SELECT scope_key, payload FROM bundles WHERE scope_kind = ? ORDER BY scope_key`

	rows, err := s.db.QueryContext(ctx, stmt, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query bundles of kind %s: %w", kind, err)
	}
	defer rows.Close()

	out := make(map[string]analyze.Bundle)
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scan bundle row: %w", err)
		}
		var b analyze.Bundle
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			return nil, fmt.Errorf("decode bundle %s/%s: %w", kind, key, err)
		}
		out[key] = b
	}
	return out, rows.Err()
}

// Languages lists the distinct language codes of stored documents, sorted.
func (s *sqliteStore) Languages(ctx context.Context) ([]string, error) {
	const stmt = `SELECT DISTINCT language FROM documents ORDER BY language`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("scan language row: %w", err)
		}
		out = append(out, strings.TrimSpace(lang))
	}
	return out, rows.Err()
}
