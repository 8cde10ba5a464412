// ABOUTME: Exports a Board as a Graphviz DOT graph, one cluster per list.
// ABOUTME: Cards inside a cluster are chained by edges in list order so layout mirrors the board.
package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/2389-research/progress/board"
)

// DOT renders b as a digraph. Lists become clusters left to right and each
// list's cards are linked top to bottom in their stored order.
func DOT(b *board.Board) string {
	var out strings.Builder

	graphName := toSnakeCase(b.Name())
	if graphName == "" {
		graphName = "board"
	}

	fmt.Fprintf(&out, "digraph %s {\n", graphName)
	fmt.Fprintln(&out, "graph [")
	fmt.Fprintf(&out, "label=\"%s\",\n", escapeDOTString(b.Name()))
	if hex, ok := b.Background().Hex(); ok {
		fmt.Fprintf(&out, "bgcolor=\"%s\",\n", hex)
	}
	fmt.Fprintln(&out, "rankdir=TB")
	fmt.Fprintln(&out, "]")
	fmt.Fprintln(&out, "node [shape=box]")

	for i, l := range b.CardLists() {
		fmt.Fprintln(&out)
		fmt.Fprintf(&out, "subgraph cluster_%d {\n", i)
		fmt.Fprintf(&out, "label=\"%s\"\n", escapeDOTString(l.Name()))

		cards := l.Cards()
		if len(cards) == 0 {
			// Graphviz drops empty clusters; keep a placeholder node.
			fmt.Fprintf(&out, "list_%s [shape=plaintext, label=\"\"]\n", l.ID())
		}
		for _, c := range cards {
			fmt.Fprintf(&out, "card_%s [label=\"%s\"]\n", c.ID(), escapeDOTString(c.Name()))
		}
		for j := 1; j < len(cards); j++ {
			fmt.Fprintf(&out, "card_%s -> card_%s\n", cards[j-1].ID(), cards[j].ID())
		}
		fmt.Fprintln(&out, "}")
	}

	fmt.Fprintln(&out, "}")
	return out.String()
}

// toSnakeCase turns a board name into a DOT identifier: letters and digits
// kept, camel humps and separators become single underscores.
func toSnakeCase(s string) string {
	var result strings.Builder
	prevWasSeparator := false

	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			if ch > unicode.MaxASCII {
				continue
			}
			if unicode.IsUpper(ch) {
				if result.Len() > 0 && !prevWasSeparator {
					lastRune, _ := utf8.DecodeLastRuneInString(result.String())
					if unicode.IsLower(lastRune) {
						result.WriteRune('_')
					}
				}
				result.WriteRune(unicode.ToLower(ch))
			} else {
				result.WriteRune(ch)
			}
			prevWasSeparator = false
		} else if (ch == ' ' || ch == '-' || ch == '_') && result.Len() > 0 && !prevWasSeparator {
			result.WriteRune('_')
			prevWasSeparator = true
		}
	}

	str := strings.TrimRight(result.String(), "_")
	// DOT identifiers cannot start with a digit.
	if str != "" && unicode.IsDigit(rune(str[0])) {
		str = "b_" + str
	}
	return str
}

func escapeDOTString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
