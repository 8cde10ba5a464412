// ABOUTME: Renders a board's DOT export to SVG or PNG by piping it through graphviz.
// ABOUTME: Provides Board for whole boards, DOTSource for pre-built DOT text, and GraphvizAvailable.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/2389-research/progress/export"
)

// Formats lists the output formats Board accepts.
var Formats = []string{"dot", "svg", "png"}

// Board renders b in format. "dot" needs no external tools; "svg" and "png"
// need the graphviz dot command on PATH.
func Board(ctx context.Context, b *board.Board, format string) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("cannot render nil board")
	}
	return DOTSource(ctx, export.DOT(b), format)
}

// DOTSource renders raw DOT text. For "dot" it returns the text as-is.
func DOTSource(ctx context.Context, dotText string, format string) ([]byte, error) {
	if dotText == "" {
		return nil, fmt.Errorf("cannot render empty DOT text")
	}

	switch format {
	case "dot":
		return []byte(dotText), nil
	case "svg", "png":
		return renderWithGraphviz(ctx, dotText, format)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are %s", format, strings.Join(Formats, ", "))
	}
}

// GraphvizAvailable reports whether the graphviz dot command is reachable.
func GraphvizAvailable() bool {
	_, err := exec.LookPath("dot")
	return err == nil
}

// renderWithGraphviz pipes DOT text to the graphviz dot command and returns the output.
func renderWithGraphviz(ctx context.Context, dotText string, format string) ([]byte, error) {
	if !GraphvizAvailable() {
		return nil, fmt.Errorf("graphviz dot command not found: install graphviz to render %s output", format)
	}

	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = strings.NewReader(dotText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz dot command failed: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
