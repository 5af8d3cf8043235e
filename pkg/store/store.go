// Package store persists workspace state. The application treats it as an
// opaque document store: a workspace is a JSON document addressed by ID,
// updated with shallow patches, plus an append-only message log.
// Uses modernc.org/sqlite, a pure-Go SQLite driver (no CGO required).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a workspace does not exist.
var ErrNotFound = errors.New("workspace not found")

// Store manages workspace documents and message logs.
type Store struct {
	db *sql.DB
}

// Workspace is one persisted workspace document.
type Workspace struct {
	ID        string         `json:"id"`
	Document  map[string]any `json:"document"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Message is one entry in a workspace's conversation log.
type Message struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens (or creates) the store at path and runs migrations.
// Use ":memory:" as path for in-memory databases in tests.
func Open(path string) (*Store, error) {
	// PRAGMAs applied at connection time via DSN query parameters:
	// WAL allows concurrent readers, FK enforcement is off by default in
	// SQLite, busy_timeout avoids SQLITE_BUSY under burst writes.
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}

	// WAL allows concurrent readers; writers are serialized by SQLite.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %q: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS workspaces (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL REFERENCES workspaces(id),
	role         TEXT NOT NULL,
	content      TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_workspace ON messages(workspace_id, created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// CreateWorkspace persists a new workspace with the given initial document
// (nil means empty) and returns it with a generated ID.
func (s *Store) CreateWorkspace(ctx context.Context, doc map[string]any) (*Workspace, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("store: generate id: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("store: marshal document: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO workspaces (id, document, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, string(data), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("store: create workspace: %w", err)
	}

	return &Workspace{ID: id, Document: doc, CreatedAt: now, UpdatedAt: now}, nil
}

// GetWorkspace loads a workspace document by ID.
func (s *Store) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT document, created_at, updated_at FROM workspaces WHERE id = ?`, id)

	var docJSON, createdAt, updatedAt string
	if err := row.Scan(&docJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get workspace %s: %w", id, err)
	}

	ws := &Workspace{ID: id}
	if err := json.Unmarshal([]byte(docJSON), &ws.Document); err != nil {
		return nil, fmt.Errorf("store: decode workspace %s: %w", id, err)
	}
	ws.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	ws.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return ws, nil
}

// PatchWorkspace shallow-merges patch into the workspace document: each
// top-level key in patch replaces the stored key wholesale.
func (s *Store) PatchWorkspace(ctx context.Context, id string, patch map[string]any) (*Workspace, error) {
	ws, err := s.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		ws.Document[k] = v
	}

	data, err := json.Marshal(ws.Document)
	if err != nil {
		return nil, fmt.Errorf("store: marshal document: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE workspaces SET document = ?, updated_at = ? WHERE id = ?`,
		string(data), now.Format(time.RFC3339Nano), id)
	if err != nil {
		return nil, fmt.Errorf("store: patch workspace %s: %w", id, err)
	}
	ws.UpdatedAt = now
	return ws, nil
}

// AppendMessage records a chat message in a workspace's log.
func (s *Store) AppendMessage(ctx context.Context, workspaceID, role, content string) (*Message, error) {
	if _, err := s.GetWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("store: generate id: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, workspace_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, workspaceID, role, content, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("store: append message: %w", err)
	}

	return &Message{ID: id, WorkspaceID: workspaceID, Role: role, Content: content, CreatedAt: now}, nil
}

// ListMessages returns a workspace's messages in insertion order.
func (s *Store) ListMessages(ctx context.Context, workspaceID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at FROM messages WHERE workspace_id = ? ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("store: list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m := Message{WorkspaceID: workspaceID}
		var createdAt string
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}
