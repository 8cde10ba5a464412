// ABOUTME: SQLite-backed index mirroring every managed board for listing and card search.
// ABOUTME: Rebuildable from the board files at any time; never the source of truth.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/2389-research/progress/board"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// BoardSummary is one row of the boards table.
type BoardSummary struct {
	BoardID         string
	Name            string
	Path            string
	BackgroundKind  string
	BackgroundValue string
	ListCount       int
	CardCount       int
	UpdatedAt       string
}

// CardHit is a search result joined with its list and board names.
type CardHit struct {
	BoardID     string
	BoardName   string
	ListID      string
	ListName    string
	CardID      string
	CardName    string
	Description string
	Labels      []string
}

// Index is the SQLite mirror of the board library.
type Index struct {
	db  *sql.DB
	now func() time.Time
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	// Pragmas go in the DSN so every pooled connection enforces the cascades.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS boards (
			board_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			background_kind TEXT NOT NULL,
			background_value TEXT NOT NULL,
			list_count INTEGER NOT NULL,
			card_count INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cardlists (
			board_id TEXT NOT NULL,
			list_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (board_id, list_id),
			FOREIGN KEY (board_id) REFERENCES boards(board_id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS cards (
			board_id TEXT NOT NULL,
			list_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			labels TEXT NOT NULL, -- JSON array
			position INTEGER NOT NULL,
			PRIMARY KEY (board_id, card_id),
			FOREIGN KEY (board_id, list_id) REFERENCES cardlists(board_id, list_id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_cards_board_list ON cards(board_id, list_id, position);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Index{db: db, now: time.Now}, nil
}

// Close closes the SQLite database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// IndexBoard replaces every row belonging to b in a single transaction.
func (idx *Index) IndexBoard(b *board.Board) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("begin index tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	boardID := b.ID().String()
	if _, err := tx.Exec("DELETE FROM boards WHERE board_id = ?", boardID); err != nil {
		return fmt.Errorf("clear board rows: %w", err)
	}

	lists := b.CardLists()
	cardCount := 0
	for _, l := range lists {
		cardCount += l.Len()
	}
	// Relative paths would only resolve from the caller's working directory.
	path := b.Path()
	if abs, err := filepath.Abs(path); path != "" && err == nil {
		path = abs
	}
	bg := b.Background()
	_, err = tx.Exec(
		`INSERT INTO boards (board_id, name, path, background_kind, background_value, list_count, card_count, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		boardID, b.Name(), path, string(bg.Kind), bg.Value, len(lists), cardCount,
		idx.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}

	for li, l := range lists {
		listID := l.ID().String()
		if _, err := tx.Exec(
			"INSERT INTO cardlists (board_id, list_id, name, position) VALUES (?, ?, ?, ?)",
			boardID, listID, l.Name(), li); err != nil {
			return fmt.Errorf("insert cardlist %s: %w", listID, err)
		}
		for ci, c := range l.Cards() {
			labels, err := json.Marshal(c.Labels())
			if err != nil {
				return fmt.Errorf("encode labels of card %s: %w", c.ID(), err)
			}
			if _, err := tx.Exec(
				`INSERT INTO cards (board_id, list_id, card_id, name, description, labels, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				boardID, listID, c.ID().String(), c.Name(), c.Description(),
				string(labels), ci); err != nil {
				return fmt.Errorf("insert card %s: %w", c.ID(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index tx: %w", err)
	}
	return nil
}

// RemoveBoard deletes a board and, by cascade, its lists and cards.
func (idx *Index) RemoveBoard(id ulid.ULID) error {
	if _, err := idx.db.Exec("DELETE FROM boards WHERE board_id = ?", id.String()); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// Clear empties every table.
func (idx *Index) Clear() error {
	if _, err := idx.db.Exec("DELETE FROM boards"); err != nil {
		return fmt.Errorf("clear boards: %w", err)
	}
	return nil
}

// ListBoards returns every indexed board ordered by name, then id.
func (idx *Index) ListBoards() ([]BoardSummary, error) {
	rows, err := idx.db.Query(
		`SELECT board_id, name, path, background_kind, background_value, list_count, card_count, updated_at
		 FROM boards ORDER BY name COLLATE NOCASE ASC, board_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query boards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var boards []BoardSummary
	for rows.Next() {
		var s BoardSummary
		if err := rows.Scan(&s.BoardID, &s.Name, &s.Path, &s.BackgroundKind, &s.BackgroundValue,
			&s.ListCount, &s.CardCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan board row: %w", err)
		}
		boards = append(boards, s)
	}
	return boards, rows.Err()
}

// SearchCards matches query as a substring of card names and descriptions,
// ignoring ASCII case. An empty query matches every card.
func (idx *Index) SearchCards(query string) ([]CardHit, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := idx.db.Query(
		`SELECT c.board_id, b.name, c.list_id, l.name, c.card_id, c.name, c.description, c.labels
		 FROM cards c
		 JOIN cardlists l ON l.board_id = c.board_id AND l.list_id = c.list_id
		 JOIN boards b ON b.board_id = c.board_id
		 WHERE c.name LIKE ? ESCAPE '\' OR c.description LIKE ? ESCAPE '\'
		 ORDER BY b.name COLLATE NOCASE ASC, b.board_id ASC, l.position ASC, c.position ASC`,
		pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hits []CardHit
	for rows.Next() {
		var h CardHit
		var labels string
		if err := rows.Scan(&h.BoardID, &h.BoardName, &h.ListID, &h.ListName,
			&h.CardID, &h.CardName, &h.Description, &labels); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &h.Labels); err != nil {
			return nil, fmt.Errorf("decode labels of card %s: %w", h.CardID, err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
