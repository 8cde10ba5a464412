// ABOUTME: Renders a Board as a deterministic Markdown document.
// ABOUTME: Lists appear in board order as sections, cards as bullets in list order.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/2389-research/progress/board"
)

// Markdown renders b with its background, then one section per list.
// Empty lists are kept so the layout survives the export.
func Markdown(b *board.Board) string {
	var out strings.Builder

	fmt.Fprintf(&out, "# %s\n", inline(b.Name()))
	fmt.Fprintln(&out)
	bg := b.Background()
	fmt.Fprintf(&out, "Background: %s %s\n", bg.Kind, codeSpan(bg.Value))

	for _, l := range b.CardLists() {
		fmt.Fprintln(&out)
		fmt.Fprintf(&out, "## %s\n", inline(l.Name()))
		fmt.Fprintln(&out)

		cards := l.Cards()
		if len(cards) == 0 {
			fmt.Fprintln(&out, "_No cards._")
			continue
		}
		for _, c := range cards {
			writeCard(&out, c)
		}
	}

	return out.String()
}

func writeCard(out *strings.Builder, c *board.Card) {
	fmt.Fprintf(out, "- %s", inline(c.Name()))
	for _, label := range c.Labels() {
		if label == "" {
			continue
		}
		fmt.Fprintf(out, " %s", codeSpan(label))
	}
	fmt.Fprintln(out)

	desc := strings.TrimRight(c.Description(), "\n")
	if strings.TrimSpace(desc) == "" {
		return
	}
	fmt.Fprintln(out)
	for _, line := range strings.Split(desc, "\n") {
		if line == "" {
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)
}

var (
	lineBreaks  = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	mdEscaper   = strings.NewReplacer(`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`, "!", `\!`, "|", `\|`, "~", `\~`, "&", `\&`)
	blockMarker = regexp.MustCompile(`^([-+=]|\d+[.)])`)
	backticks   = regexp.MustCompile("`+")
)

// inline makes s safe as the text of a heading or bullet: one line, with
// no character that would start emphasis, a link, raw HTML or a new block.
func inline(s string) string {
	s = mdEscaper.Replace(lineBreaks.Replace(s))
	if strings.HasPrefix(s, " ") {
		// Leading spaces would otherwise count as indentation.
		return "&#32;" + s[1:]
	}
	if m := blockMarker.FindString(s); m != "" {
		s = m[:len(m)-1] + `\` + s[len(m)-1:]
	}
	return s
}

// codeSpan wraps s in a code span whose fence is longer than any backtick
// run inside it.
func codeSpan(s string) string {
	s = lineBreaks.Replace(s)
	longest := 0
	for _, run := range backticks.FindAllString(s, -1) {
		longest = max(longest, len(run))
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") ||
		(strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "") {
		s = " " + s + " "
	}
	return fence + s + fence
}
