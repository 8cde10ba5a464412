// ABOUTME: Tests for board rendering covering DOT passthrough, format validation, and graphviz output.
// ABOUTME: Graphviz-dependent cases skip when the dot command is not installed.
package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/2389-research/progress/board"
)

func buildTestBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewBoard("Release Train")
	todo, err := b.NewCardList("Todo")
	if err != nil {
		t.Fatalf("NewCardList: %v", err)
	}
	if _, err := todo.NewCard("Cut branch"); err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	if _, err := todo.NewCard("Tag build"); err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	if _, err := b.NewCardList("Done"); err != nil {
		t.Fatalf("NewCardList: %v", err)
	}
	return b
}

func TestBoard_DOTFormat(t *testing.T) {
	data, err := Board(context.Background(), buildTestBoard(t), "dot")
	if err != nil {
		t.Fatalf("Board(dot) failed: %v", err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph release_train {") {
		t.Errorf("expected digraph output from dot format, got:\n%s", dot)
	}
	if !strings.Contains(dot, "Cut branch") {
		t.Errorf("expected card label in DOT output, got:\n%s", dot)
	}
}

func TestBoard_InvalidFormat(t *testing.T) {
	_, err := Board(context.Background(), buildTestBoard(t), "gif")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected 'unsupported format' error, got: %v", err)
	}
}

func TestBoard_NilBoard(t *testing.T) {
	if _, err := Board(context.Background(), nil, "dot"); err == nil {
		t.Error("expected error for nil board")
	}
}

func TestBoard_SVGFormat(t *testing.T) {
	if !GraphvizAvailable() {
		t.Skip("graphviz not installed, skipping SVG render test")
	}

	data, err := Board(context.Background(), buildTestBoard(t), "svg")
	if err != nil {
		t.Fatalf("Board(svg) failed: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("expected SVG output, got:\n%s", data[:min(len(data), 200)])
	}
}

func TestBoard_PNGFormat(t *testing.T) {
	if !GraphvizAvailable() {
		t.Skip("graphviz not installed, skipping PNG render test")
	}

	data, err := Board(context.Background(), buildTestBoard(t), "png")
	if err != nil {
		t.Fatalf("Board(png) failed: %v", err)
	}
	pngSig := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	if !bytes.HasPrefix(data, pngSig) {
		t.Fatalf("expected PNG signature, got %x", data[:min(len(data), 8)])
	}
}

func TestBoard_ContextCancellation(t *testing.T) {
	if !GraphvizAvailable() {
		t.Skip("graphviz not installed, skipping context cancellation test")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Board(ctx, buildTestBoard(t), "svg"); err == nil {
		t.Error("expected error when context is cancelled")
	}
}

func TestDOTSource_Passthrough(t *testing.T) {
	dotText := "digraph test { a -> b }"
	data, err := DOTSource(context.Background(), dotText, "dot")
	if err != nil {
		t.Fatalf("DOTSource(dot) failed: %v", err)
	}
	if string(data) != dotText {
		t.Errorf("expected DOT text back as-is, got: %s", data)
	}
}

func TestDOTSource_EmptyText(t *testing.T) {
	if _, err := DOTSource(context.Background(), "", "dot"); err == nil {
		t.Error("expected error for empty DOT text")
	}
}

func TestDOTSource_MissingGraphviz(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := DOTSource(context.Background(), "digraph t { a -> b }", "svg")
	if err == nil || !strings.Contains(err.Error(), "graphviz dot command not found") {
		t.Errorf("expected missing graphviz error, got: %v", err)
	}
}
