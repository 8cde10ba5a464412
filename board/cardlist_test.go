// ABOUTME: Tests for CardList add, remove, reorder and ownership rules.
// ABOUTME: Covers duplicate adds, add/remove round-trip, destroyed handles, and reorder failures.
package board_test

import (
	"errors"
	"testing"

	"github.com/2389-research/progress/board"
)

func cardNames(l *board.CardList) []string {
	cards := l.Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name()
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func listWith(t *testing.T, name string, cards ...string) (*board.CardList, []*board.Card) {
	t.Helper()
	l := board.NewCardList(name)
	out := make([]*board.Card, len(cards))
	for i, n := range cards {
		c, err := l.NewCard(n)
		if err != nil {
			t.Fatalf("NewCard(%s): %v", n, err)
		}
		out[i] = c
	}
	return l, out
}

func TestAddCardAppendsAndOwns(t *testing.T) {
	l, _ := listWith(t, "Todo", "A")
	c := board.NewCard("B")
	if err := l.AddCard(c); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if got := cardNames(l); !sameStrings(got, []string{"A", "B"}) {
		t.Errorf("cards = %v, want [A B]", got)
	}
	if c.List() != l {
		t.Error("card should report its owning list")
	}
}

func TestAddCardTwiceFails(t *testing.T) {
	l, cards := listWith(t, "Todo", "A")
	err := l.AddCard(cards[0])
	if !errors.Is(err, board.ErrDuplicateMember) {
		t.Fatalf("err = %v, want ErrDuplicateMember", err)
	}
	var me *board.MembershipError
	if !errors.As(err, &me) || me.Op != "add_card" || me.ID != cards[0].ID() {
		t.Errorf("err = %#v, want MembershipError for add_card", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestAddThenRemoveRestoresSequence(t *testing.T) {
	l, _ := listWith(t, "Todo", "A", "B", "C")
	before := l.Cards()

	c := board.NewCard("D")
	if err := l.AddCard(c); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if err := l.RemoveCard(c); err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}

	after := l.Cards()
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("card %d = %s, want %s", i, after[i].Name(), before[i].Name())
		}
	}
}

func TestRemoveCardDestroysHandle(t *testing.T) {
	l, cards := listWith(t, "Todo", "A")
	if err := l.RemoveCard(cards[0]); err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}
	if !cards[0].Destroyed() {
		t.Error("removed card should be destroyed")
	}
	if cards[0].List() != nil {
		t.Error("removed card should have no owner")
	}
	if err := l.AddCard(cards[0]); !errors.Is(err, board.ErrDestroyed) {
		t.Errorf("re-adding destroyed card err = %v, want ErrDestroyed", err)
	}
}

func TestRemoveCardMissing(t *testing.T) {
	l, _ := listWith(t, "Todo", "A")
	if err := l.RemoveCard(board.NewCard("ghost")); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := l.RemoveCard(nil); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("nil err = %v, want ErrNotFound", err)
	}
}

func TestAddCardOwnedByAnotherListFails(t *testing.T) {
	a, cards := listWith(t, "A", "x")
	b := board.NewCardList("B")
	if err := b.AddCard(cards[0]); !errors.Is(err, board.ErrOwnedElsewhere) {
		t.Fatalf("err = %v, want ErrOwnedElsewhere", err)
	}
	if b.Len() != 0 || a.Len() != 1 {
		t.Errorf("lens = (%d, %d), want (1, 0)", a.Len(), b.Len())
	}
}

func TestReorderCard(t *testing.T) {
	l, cards := listWith(t, "Todo", "A", "B", "C")

	if err := l.ReorderCard(cards[0], cards[2]); err != nil {
		t.Fatalf("ReorderCard: %v", err)
	}
	if got := cardNames(l); !sameStrings(got, []string{"B", "C", "A"}) {
		t.Errorf("after move to tail = %v, want [B C A]", got)
	}

	if err := l.ReorderCard(cards[2], nil); err != nil {
		t.Fatalf("ReorderCard to head: %v", err)
	}
	if got := cardNames(l); !sameStrings(got, []string{"C", "B", "A"}) {
		t.Errorf("after move to head = %v, want [C B A]", got)
	}
}

func TestReorderCardSelfIsNoOp(t *testing.T) {
	l, cards := listWith(t, "Todo", "A", "B")
	if err := l.ReorderCard(cards[1], cards[1]); err != nil {
		t.Fatalf("ReorderCard(x, x): %v", err)
	}
	if got := cardNames(l); !sameStrings(got, []string{"A", "B"}) {
		t.Errorf("cards = %v, want [A B]", got)
	}
}

func TestReorderCardAbsentFails(t *testing.T) {
	l, cards := listWith(t, "Todo", "A", "B")
	ghost := board.NewCard("ghost")

	if err := l.ReorderCard(ghost, cards[0]); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("absent moved err = %v, want ErrNotFound", err)
	}
	if err := l.ReorderCard(cards[0], ghost); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("absent anchor err = %v, want ErrNotFound", err)
	}
	if got := cardNames(l); !sameStrings(got, []string{"A", "B"}) {
		t.Errorf("cards = %v, want [A B]", got)
	}
}

func TestCardsIsReadOnlySnapshot(t *testing.T) {
	l, _ := listWith(t, "Todo", "A", "B")
	view := l.Cards()
	view[0], view[1] = view[1], view[0]
	if got := cardNames(l); !sameStrings(got, []string{"A", "B"}) {
		t.Errorf("cards = %v, want [A B]", got)
	}
}

func TestCardAndListAreItems(t *testing.T) {
	l, cards := listWith(t, "Todo", "A")
	for _, it := range []board.Item{l, cards[0]} {
		it.SetName(it.Name() + "!")
	}
	if l.Name() != "Todo!" || cards[0].Name() != "A!" {
		t.Errorf("names = %q, %q", l.Name(), cards[0].Name())
	}
	if l.Kind() != board.KindCardList || cards[0].Kind() != board.KindCard {
		t.Error("unexpected item kinds")
	}
}

func TestCardContentFieldsAreCopied(t *testing.T) {
	labels := []string{"urgent"}
	c := board.NewCardWithContent("A", "body", labels)
	labels[0] = "changed"
	if got := c.Labels(); len(got) != 1 || got[0] != "urgent" {
		t.Errorf("Labels() = %v, want [urgent]", got)
	}
	c.SetDescription("new body")
	if c.Description() != "new body" {
		t.Errorf("Description() = %q", c.Description())
	}
}
