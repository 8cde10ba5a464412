// ABOUTME: Implementations of every progress subcommand.
// ABOUTME: Each command parses its own flags, mutates or reads a board, and saves through the library.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/2389-research/progress/board"
	"github.com/2389-research/progress/export"
	"github.com/2389-research/progress/render"
	"github.com/2389-research/progress/store"
	"github.com/2389-research/progress/tui"
	"github.com/oklog/ulid/v2"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdNew creates a board in the library, or at -file when given.
func cmdNew(c *cli, args []string) error {
	fs := c.flagSet("new")
	file := fs.String("file", "", "write the board to this path instead of the library")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("new takes exactly one NAME")
	}

	mgr, err := c.manager()
	if err != nil {
		return err
	}
	var b *board.Board
	if *file != "" {
		b = board.NewBoard(fs.Arg(0))
		b.SetPath(*file)
		err = mgr.SaveBoard(b)
	} else {
		b, err = mgr.CreateBoard(fs.Arg(0))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s %s\n", b.ID(), b.Path())
	return nil
}

func cmdBoards(c *cli, args []string) error {
	fs := c.flagSet("boards")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError("boards takes no arguments")
	}
	mgr, err := c.manager()
	if err != nil {
		return err
	}
	summaries, err := mgr.ListBoards()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Fprintf(c.stdout, "%s  %s  (%d lists, %d cards)\n", s.BoardID, s.Name, s.ListCount, s.CardCount)
	}
	return nil
}

func cmdDelete(c *cli, args []string) error {
	fs := c.flagSet("delete")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("delete takes exactly one board ID")
	}
	id, err := ulid.ParseStrict(fs.Arg(0))
	if err != nil {
		return usageError(fmt.Sprintf("invalid board ID %q", fs.Arg(0)))
	}
	mgr, err := c.manager()
	if err != nil {
		return err
	}
	if err := mgr.DeleteBoard(id); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "deleted %s\n", id)
	return nil
}

func cmdSearch(c *cli, args []string) error {
	fs := c.flagSet("search")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageError("search needs a QUERY")
	}
	mgr, err := c.manager()
	if err != nil {
		return err
	}
	hits, err := mgr.SearchCards(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	for _, h := range hits {
		line := fmt.Sprintf("%s / %s / %s", h.BoardName, h.ListName, h.CardName)
		if len(h.Labels) > 0 {
			line += "  [" + strings.Join(h.Labels, ", ") + "]"
		}
		fmt.Fprintf(c.stdout, "%s  (%s)\n", line, h.CardID)
	}
	return nil
}

func cmdReindex(c *cli, args []string) error {
	fs := c.flagSet("reindex")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError("reindex takes no arguments")
	}
	mgr, err := c.manager()
	if err != nil {
		return err
	}
	n, err := mgr.RebuildIndex()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "indexed %d boards\n", n)
	return nil
}

// cmdShow prints the board outline with every ID, for use in later commands.
func cmdShow(c *cli, args []string) error {
	fs := c.flagSet("show")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("show takes exactly one BOARD")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}

	bg := b.Background()
	fmt.Fprintf(c.stdout, "%s (%s)\n", b.Name(), b.ID())
	fmt.Fprintf(c.stdout, "background: %s %s\n", bg.Kind, bg.Value)
	for _, l := range b.CardLists() {
		fmt.Fprintln(c.stdout)
		fmt.Fprintf(c.stdout, "%s (%s)\n", l.Name(), l.ID())
		for _, card := range l.Cards() {
			line := "  - " + card.Name()
			if labels := card.Labels(); len(labels) > 0 {
				line += "  [" + strings.Join(labels, ", ") + "]"
			}
			fmt.Fprintf(c.stdout, "%s  (%s)\n", line, card.ID())
		}
	}
	return nil
}

func cmdAddList(c *cli, args []string) error {
	fs := c.flagSet("add-list")
	after := fs.String("after", "", "place the new list after this list")
	head := fs.Bool("head", false, "place the new list first")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("add-list takes BOARD and NAME")
	}
	if *after != "" && *head {
		return usageError("-after and -head are mutually exclusive")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}

	var anchor *board.CardList
	if *after != "" {
		if anchor, err = findList(b, *after); err != nil {
			return err
		}
	}
	l, err := b.NewCardList(fs.Arg(1))
	if err != nil {
		return err
	}
	if *after != "" || *head {
		if err := b.ReorderCardList(l, anchor); err != nil {
			return err
		}
	}
	if err := c.saveBoard(b); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s\n", l.ID())
	return nil
}

func cmdAddCard(c *cli, args []string) error {
	fs := c.flagSet("add-card")
	after := fs.String("after", "", "place the new card after this card")
	head := fs.Bool("head", false, "place the new card first")
	description := fs.String("description", "", "card description (markdown)")
	labels := fs.String("labels", "", "comma-separated labels")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usageError("add-card takes BOARD, LIST and NAME")
	}
	if *after != "" && *head {
		return usageError("-after and -head are mutually exclusive")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}
	l, err := findList(b, fs.Arg(1))
	if err != nil {
		return err
	}

	var anchor *board.Card
	if *after != "" {
		if anchor, err = findCardIn(l, *after); err != nil {
			return err
		}
	}
	card := board.NewCardWithContent(fs.Arg(2), *description, splitLabels(*labels))
	if err := l.AddCard(card); err != nil {
		return err
	}
	if *after != "" || *head {
		if err := l.ReorderCard(card, anchor); err != nil {
			return err
		}
	}
	if err := c.saveBoard(b); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s\n", card.ID())
	return nil
}

// cmdMoveCard moves a card to another list, at the head unless -after names
// a card already in the target list.
func cmdMoveCard(c *cli, args []string) error {
	fs := c.flagSet("move-card")
	after := fs.String("after", "", "place the card after this card in the target list")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usageError("move-card takes BOARD, CARD and LIST")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}
	card, from, err := findCard(b, fs.Arg(1))
	if err != nil {
		return err
	}
	to, err := findList(b, fs.Arg(2))
	if err != nil {
		return err
	}

	var anchor *board.Card
	if *after != "" {
		if anchor, err = findCardIn(to, *after); err != nil {
			return err
		}
	}
	if err := b.MoveCard(card, from, to, anchor); err != nil {
		return err
	}
	if err := c.saveBoard(b); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "moved %s to %s\n", card.Name(), to.Name())
	return nil
}

func cmdRemoveCard(c *cli, args []string) error {
	fs := c.flagSet("remove-card")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("remove-card takes BOARD and CARD")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}
	card, l, err := findCard(b, fs.Arg(1))
	if err != nil {
		return err
	}
	if err := l.RemoveCard(card); err != nil {
		return err
	}
	return c.saveBoard(b)
}

func cmdRemoveList(c *cli, args []string) error {
	fs := c.flagSet("remove-list")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("remove-list takes BOARD and LIST")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}
	l, err := findList(b, fs.Arg(1))
	if err != nil {
		return err
	}
	if err := b.RemoveCardList(l); err != nil {
		return err
	}
	return c.saveBoard(b)
}

// cmdRename renames the board, or a list or card when -list or -card is set.
func cmdRename(c *cli, args []string) error {
	fs := c.flagSet("rename")
	listRef := fs.String("list", "", "rename this list")
	cardRef := fs.String("card", "", "rename this card")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("rename takes BOARD and NAME")
	}
	if *listRef != "" && *cardRef != "" {
		return usageError("-list and -card are mutually exclusive")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}

	name := fs.Arg(1)
	switch {
	case *listRef != "":
		l, err := findList(b, *listRef)
		if err != nil {
			return err
		}
		l.SetName(name)
	case *cardRef != "":
		card, _, err := findCard(b, *cardRef)
		if err != nil {
			return err
		}
		card.SetName(name)
	default:
		b.SetName(name)
	}
	return c.saveBoard(b)
}

func cmdBackground(c *cli, args []string) error {
	fs := c.flagSet("background")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return usageError("background takes BOARD, KIND and VALUE")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}
	kind := board.BackgroundKind(fs.Arg(1))
	if kind == "color" {
		kind = board.BackgroundColour
	}
	if err := b.SetBackground(kind, fs.Arg(2)); err != nil {
		return err
	}
	return c.saveBoard(b)
}

// cmdEdit runs the interactive editor until the user quits.
func cmdEdit(c *cli, args []string) error {
	fs := c.flagSet("edit")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("edit takes exactly one BOARD")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewAppModel(b, c.saveBoard), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if m, ok := final.(tui.AppModel); ok && m.Dirty() {
		fmt.Fprintln(c.stderr, "warning: unsaved changes were discarded")
	}
	return nil
}

// cmdExport renders a board as a document or re-encodes it as a board file.
func cmdExport(c *cli, args []string) error {
	fs := c.flagSet("export")
	format := fs.String("format", "markdown", "markdown, html, dot, svg, png, yaml, json or xml")
	out := fs.String("o", "", "write to this file instead of stdout")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("export takes exactly one BOARD")
	}
	b, err := c.openBoard(fs.Arg(0))
	if err != nil {
		return err
	}

	var data string
	switch strings.ToLower(*format) {
	case "markdown", "md":
		data = export.Markdown(b)
	case "html":
		if data, err = export.HTML(b); err != nil {
			return err
		}
	case "dot":
		data = export.DOT(b)
	case "svg", "png":
		raw, err := render.Board(context.Background(), b, strings.ToLower(*format))
		if err != nil {
			return err
		}
		data = string(raw)
	default:
		f, perr := store.ParseFormat(*format)
		if perr != nil {
			return usageError(fmt.Sprintf("unknown export format %q", *format))
		}
		raw, err := store.Encode(b, f)
		if err != nil {
			return err
		}
		data = string(raw)
	}

	if *out == "" {
		_, err = fmt.Fprint(c.stdout, data)
		return err
	}
	if err := os.WriteFile(*out, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("component=progress.cli action=export board_id=%s format=%s path=%s", b.ID(), *format, *out)
	return nil
}

// cmdConvert rewrites a board file in another format. It never touches the
// library.
func cmdConvert(c *cli, args []string) error {
	fs := c.flagSet("convert")
	format := fs.String("format", "", "output format (default: from OUT's extension)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageError("convert takes IN and OUT")
	}
	in, out := fs.Arg(0), fs.Arg(1)

	f := store.FormatFromPath(out)
	if *format != "" {
		parsed, err := store.ParseFormat(*format)
		if err != nil {
			return usageError(err.Error())
		}
		f = parsed
	}
	b, err := store.Load(in)
	if err != nil {
		return err
	}
	if err := store.SaveFormat(b, out, f); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "wrote %s (%s)\n", out, f)
	return nil
}

// splitLabels turns "a, b,,c" into [a b c].
func splitLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}
