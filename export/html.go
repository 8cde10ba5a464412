// ABOUTME: Renders a Board as a standalone HTML page via goldmark.
// ABOUTME: The page body carries the board background as inline CSS.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/yuin/goldmark"
)

// HTML converts the Markdown export to HTML and wraps it in a minimal
// document. Raw HTML inside names and descriptions is not passed through.
func HTML(b *board.Board) (string, error) {
	var body bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(Markdown(b)), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	var out strings.Builder
	fmt.Fprintln(&out, "<!DOCTYPE html>")
	fmt.Fprintln(&out, "<html>")
	fmt.Fprintln(&out, "<head>")
	fmt.Fprintln(&out, `<meta charset="utf-8">`)
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(b.Name()))
	fmt.Fprintln(&out, "</head>")
	fmt.Fprintf(&out, "<body style=\"%s\">\n", html.EscapeString(BackgroundCSS(b.Background())))
	out.Write(body.Bytes())
	fmt.Fprintln(&out, "</body>")
	fmt.Fprintln(&out, "</html>")
	return out.String(), nil
}

// BackgroundCSS returns the CSS declaration for a background: a normalised
// hex colour, or a url() for a file.
func BackgroundCSS(bg board.Background) string {
	switch bg.Kind {
	case board.BackgroundFile:
		u := strings.NewReplacer(`'`, "%27", `\`, "/").Replace(bg.Value)
		return fmt.Sprintf("background-image: url('%s'); background-size: cover", u)
	default:
		if hex, ok := bg.Hex(); ok {
			return "background-color: " + hex
		}
		return "background-color: " + board.DefaultBackgroundColour
	}
}
