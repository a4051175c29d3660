package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Mode tells which operation produced a history entry.
type Mode string

const (
	ModeBasic Mode = "basic"
	ModeAI    Mode = "ai"
)

// Entry is one recorded generation. Image bytes are never stored.
type Entry struct {
	ID        string `json:"id"`
	Mode      Mode   `json:"mode"`
	Text      string `json:"text"`
	Prompt    string `json:"prompt,omitempty"`
	Style     string `json:"style"`
	Provider  string `json:"provider,omitempty"`
	Message   string `json:"message"`
	HasImage  bool   `json:"has_image"`
	Timestamp int64  `json:"timestamp"`
}

// StyleCount is the number of images produced with one style.
type StyleCount struct {
	Style string `json:"style"`
	Count int    `json:"count"`
}

// HistoryStore manages SQLite storage for generation history.
type HistoryStore struct {
	db *sql.DB
}

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS history (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    text TEXT NOT NULL DEFAULT '',
    prompt TEXT NOT NULL DEFAULT '',
    style TEXT NOT NULL DEFAULT '',
    provider TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL DEFAULT '',
    has_image INTEGER NOT NULL DEFAULT 0,
    timestamp INTEGER NOT NULL
);
`

const createFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS history_fts USING fts5(
    text,
    prompt,
    content='history',
    content_rowid='rowid'
);
`

const createFTSTrigger = `
CREATE TRIGGER IF NOT EXISTS history_ai AFTER INSERT ON history BEGIN
    INSERT INTO history_fts(rowid, text, prompt)
    VALUES (new.rowid, new.text, new.prompt);
END;
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
CREATE INDEX IF NOT EXISTS idx_history_style ON history(style);
`

// NewHistoryStore opens (or creates) the SQLite database at dbPath and
// initialises the schema (history table, FTS5 index, sync trigger).
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range []string{
		createHistoryTable,
		createFTSTable,
		createFTSTrigger,
		createIndexes,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec schema statement: %w", err)
		}
	}

	return &HistoryStore{db: db}, nil
}

// Save inserts an entry. Entries whose ID already exists are ignored.
func (s *HistoryStore) Save(e *Entry) error {
	const query = `
		INSERT OR IGNORE INTO history
			(id, mode, text, prompt, style, provider, message, has_image, timestamp)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		e.ID,
		string(e.Mode),
		e.Text,
		e.Prompt,
		e.Style,
		e.Provider,
		e.Message,
		boolToInt(e.HasImage),
		e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

// Recent returns entries newest first. Use limit and offset for pagination.
func (s *HistoryStore) Recent(limit, offset int) ([]Entry, error) {
	const query = `
		SELECT id, mode, text, prompt, style, provider, message, has_image, timestamp
		FROM history
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search runs a full-text search over text and prompt, best match first.
func (s *HistoryStore) Search(query string, limit int) ([]Entry, error) {
	query = strings.ReplaceAll(query, "\x00", "")
	escaped := strings.ReplaceAll(query, `"`, `""`)
	ftsQuery := fmt.Sprintf(`"%s"`, escaped)

	const q = `
		SELECT h.id, h.mode, h.text, h.prompt, h.style, h.provider, h.message,
		       h.has_image, h.timestamp
		FROM history h
		JOIN history_fts fts ON h.rowid = fts.rowid
		WHERE history_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`

	rows, err := s.db.Query(q, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Stats counts produced images per style, most used first.
func (s *HistoryStore) Stats() ([]StyleCount, error) {
	const query = `
		SELECT style, COUNT(*) AS n
		FROM history
		WHERE has_image = 1
		GROUP BY style
		ORDER BY n DESC, style ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("history stats: %w", err)
	}
	defer rows.Close()

	var out []StyleCount
	for rows.Next() {
		var c StyleCount
		if err := rows.Scan(&c.Style, &c.Count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// --- helpers ----------------------------------------------------------------

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var mode string
		var hasImage int
		if err := rows.Scan(
			&e.ID, &mode, &e.Text, &e.Prompt, &e.Style,
			&e.Provider, &e.Message, &hasImage, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Mode = Mode(mode)
		e.HasImage = hasImage != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}
