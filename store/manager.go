// ABOUTME: Board library rooted at a data directory: one board file per ULID plus a SQLite index.
// ABOUTME: Handles directory creation, board discovery, save-then-index, deletion, and index rebuilds.
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/oklog/ulid/v2"
)

// Manager owns the progress home directory layout.
//
// Dir layout:
//
//	home/boards/{ulid}.yaml
//	home/index.db
type Manager struct {
	home  string
	index *Index
}

// BoardFile pairs a managed board's ULID with its file path.
type BoardFile struct {
	BoardID ulid.ULID
	Path    string
}

// NewManager creates the home and boards directories if needed and opens the index.
func NewManager(home string) (*Manager, error) {
	home, err := filepath.Abs(home)
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(home, "boards"), 0o755); err != nil {
		return nil, fmt.Errorf("create boards dir: %w", err)
	}
	idx, err := OpenIndex(filepath.Join(home, "index.db"))
	if err != nil {
		return nil, err
	}
	return &Manager{home: home, index: idx}, nil
}

// Close releases the index.
func (m *Manager) Close() error {
	return m.index.Close()
}

// Home returns the home directory path.
func (m *Manager) Home() string {
	return m.home
}

// Index exposes the underlying search index.
func (m *Manager) Index() *Index {
	return m.index
}

// BoardPath returns where the board with id lives (it may not exist).
func (m *Manager) BoardPath(id ulid.ULID) string {
	return filepath.Join(m.home, "boards", id.String()+".yaml")
}

// CreateBoard makes an empty board, writes it and indexes it.
func (m *Manager) CreateBoard(name string) (*board.Board, error) {
	b := board.NewBoard(name)
	b.SetPath(m.BoardPath(b.ID()))
	if err := m.SaveBoard(b); err != nil {
		return nil, err
	}
	log.Printf("component=progress.store action=create_board board_id=%s", b.ID())
	return b, nil
}

// SaveBoard writes b atomically to its path (or its managed path when it has
// none) and then refreshes its index rows.
func (m *Manager) SaveBoard(b *board.Board) error {
	path := b.Path()
	if path == "" {
		path = m.BoardPath(b.ID())
	}
	if err := Save(b, path); err != nil {
		return err
	}
	if err := m.index.IndexBoard(b); err != nil {
		log.Printf("component=progress.store action=index_board_failed board_id=%s err=%v", b.ID(), err)
		return fmt.Errorf("index board %s: %w", b.ID(), err)
	}
	return nil
}

// OpenBoard loads the managed board with id.
func (m *Manager) OpenBoard(id ulid.ULID) (*board.Board, error) {
	path := m.BoardPath(id)
	b, err := Load(path)
	if err != nil {
		return nil, err
	}
	if b.ID() != id {
		return nil, &MalformedError{Path: path, Element: "id",
			Err: fmt.Errorf("file holds board %s", b.ID())}
	}
	return b, nil
}

// DeleteBoard removes the managed board file and its index rows.
func (m *Manager) DeleteBoard(id ulid.ULID) error {
	path := m.BoardPath(id)
	if err := os.Remove(path); err != nil {
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	if err := m.index.RemoveBoard(id); err != nil {
		return err
	}
	log.Printf("component=progress.store action=delete_board board_id=%s", id)
	return nil
}

// ListBoards returns the indexed boards ordered by name.
func (m *Manager) ListBoards() ([]BoardSummary, error) {
	return m.index.ListBoards()
}

// SearchCards searches card names and descriptions across every indexed board.
func (m *Manager) SearchCards(query string) ([]CardHit, error) {
	return m.index.SearchCards(query)
}

// externalBoardFiles returns the indexed boards whose files live outside the
// boards directory. Only the index remembers where those are.
func (m *Manager) externalBoardFiles() ([]BoardFile, error) {
	boards, err := m.index.ListBoards()
	if err != nil {
		return nil, err
	}
	boardsDir := filepath.Join(m.home, "boards")
	var results []BoardFile
	for _, s := range boards {
		if s.Path == "" || filepath.Dir(s.Path) == boardsDir {
			continue
		}
		id, err := ulid.Parse(s.BoardID)
		if err != nil {
			continue
		}
		results = append(results, BoardFile{BoardID: id, Path: s.Path})
	}
	return results, nil
}

// ListBoardFiles scans the boards directory for files named by a ULID.
func (m *Manager) ListBoardFiles() ([]BoardFile, error) {
	boardsDir := filepath.Join(m.home, "boards")
	entries, err := os.ReadDir(boardsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read boards dir: %w", err)
	}

	var results []BoardFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		id, err := ulid.Parse(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			log.Printf("component=progress.store action=list_boards_skip_non_ulid file=%s", name)
			continue
		}
		results = append(results, BoardFile{BoardID: id, Path: filepath.Join(boardsDir, name)})
	}
	return results, nil
}

// RebuildIndex clears the index and re-indexes every managed board file,
// plus any board saved through SaveBoard from outside the boards directory.
// Unreadable files are logged and skipped. Returns the number indexed.
func (m *Manager) RebuildIndex() (int, error) {
	files, err := m.ListBoardFiles()
	if err != nil {
		return 0, err
	}
	external, err := m.externalBoardFiles()
	if err != nil {
		return 0, err
	}
	files = append(files, external...)
	if err := m.index.Clear(); err != nil {
		return 0, err
	}

	indexed := 0
	for _, f := range files {
		b, err := Load(f.Path)
		if err != nil {
			log.Printf("component=progress.store action=rebuild_skip file=%s err=%v", f.Path, err)
			continue
		}
		if err := m.index.IndexBoard(b); err != nil {
			return indexed, fmt.Errorf("index %s: %w", f.Path, err)
		}
		indexed++
	}
	log.Printf("component=progress.store action=rebuild_index boards=%d skipped=%d", indexed, len(files)-indexed)
	return indexed, nil
}
