package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
	"github.com/cognicore/twokenize/pkg/twokenize/store"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode and foreign keys enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// foreign keys are per connection; one connection keeps the pragma in force
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	source TEXT,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	text TEXT NOT NULL,
	start_off INTEGER NOT NULL,
	end_off INTEGER NOT NULL,
	class TEXT NOT NULL,
	norm TEXT,
	PRIMARY KEY(doc_id, seq),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_tokens_class_text ON doc_tokens(class, text);
CREATE INDEX IF NOT EXISTS idx_docs_created ON docs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or replaces a document and its tokens
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("upsert doc: %w: empty id", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := `
INSERT INTO docs (id, source, text, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	text=excluded.text,
	created_at=excluded.created_at;
`
	if _, err := tx.ExecContext(ctx, stmt, d.ID, d.Source, d.Text, d.CreatedAt.UTC().Format(timeLayout)); err != nil {
		return err
	}
	if err := replaceDocTokens(ctx, tx, d.ID, d.Tokens); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceDocTokens(ctx context.Context, tx *sql.Tx, docID string, tokens []twokenize.Token) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_tokens WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_tokens (doc_id, seq, text, start_off, end_off, class, norm) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, tok := range tokens {
		if _, err := stmt.ExecContext(ctx, docID, i, tok.Text, tok.Start, tok.End, tok.Class.String(), tok.Norm); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	var (
		doc     store.Doc
		source  sql.NullString
		created string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, source, text, created_at FROM docs WHERE id = ?`, id).
		Scan(&doc.ID, &source, &doc.Text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}
	doc.Source = source.String
	if doc.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return store.Doc{}, false, fmt.Errorf("parse created_at for %s: %w", id, err)
	}

	if doc.Tokens, err = s.loadTokens(ctx, id); err != nil {
		return store.Doc{}, false, err
	}
	return doc, true, nil
}

func (s *sqliteStore) loadTokens(ctx context.Context, docID string) ([]twokenize.Token, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text, start_off, end_off, class, norm FROM doc_tokens WHERE doc_id = ? ORDER BY seq`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []twokenize.Token
	for rows.Next() {
		var (
			tok       twokenize.Token
			className string
			norm      sql.NullString
		)
		if err := rows.Scan(&tok.Text, &tok.Start, &tok.End, &className, &norm); err != nil {
			return nil, err
		}
		if tok.Class, err = twokenize.ParseClass(className); err != nil {
			return nil, err
		}
		tok.Norm = norm.String
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// ListDocs returns up to limit documents, newest first
func (s *sqliteStore) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM docs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	docs := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		doc, found, err := s.GetDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// DeleteDoc removes a document; its tokens go with it
func (s *sqliteStore) DeleteDoc(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete doc %q: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

// ClassCounts counts stored tokens per class
func (s *sqliteStore) ClassCounts(ctx context.Context) (map[twokenize.Class]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT class, COUNT(*) FROM doc_tokens GROUP BY class`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[twokenize.Class]int64)
	for rows.Next() {
		var (
			name string
			n    int64
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		cls, err := twokenize.ParseClass(name)
		if err != nil {
			return nil, err
		}
		counts[cls] = n
	}
	return counts, rows.Err()
}

// TopTokens returns the k most frequent token texts of a class, ties by text
func (s *sqliteStore) TopTokens(ctx context.Context, class twokenize.Class, k int) ([]store.TokenCount, error) {
	if k <= 0 {
		k = store.DefaultTopK
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT text, COUNT(*) AS n
FROM doc_tokens
WHERE class = ?
GROUP BY text
ORDER BY n DESC, text ASC
LIMIT ?;
`, class.String(), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TokenCount
	for rows.Next() {
		tc := store.TokenCount{Class: class}
		if err := rows.Scan(&tc.Text, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
