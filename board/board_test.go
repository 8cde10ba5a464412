// ABOUTME: Tests for Board list management, cascading destruction, handles and background.
// ABOUTME: Mirrors the CardList contract one level up and checks background validation.
package board_test

import (
	"errors"
	"testing"

	"github.com/2389-research/progress/board"
)

func listNames(b *board.Board) []string {
	lists := b.CardLists()
	out := make([]string, len(lists))
	for i, l := range lists {
		out[i] = l.Name()
	}
	return out
}

func TestNewBoardDefaults(t *testing.T) {
	b := board.NewBoard("Project")
	if b.Name() != "Project" {
		t.Errorf("Name() = %q, want %q", b.Name(), "Project")
	}
	if b.BackgroundKind() != board.BackgroundColour || b.BackgroundValue() != board.DefaultBackgroundColour {
		t.Errorf("background = %+v, want default colour", b.Background())
	}
	if b.Len() != 0 || b.CardCount() != 0 {
		t.Error("new board should be empty")
	}
}

func TestAddCardListAndDuplicate(t *testing.T) {
	b := board.NewBoard("Project")
	l, err := b.NewCardList("Todo")
	if err != nil {
		t.Fatalf("NewCardList: %v", err)
	}
	if err := b.AddCardList(l); !errors.Is(err, board.ErrDuplicateMember) {
		t.Fatalf("second add err = %v, want ErrDuplicateMember", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if l.Board() != b {
		t.Error("list should report its owning board")
	}
}

func TestAddCardListOwnedByOtherBoard(t *testing.T) {
	one := board.NewBoard("one")
	two := board.NewBoard("two")
	l, _ := one.NewCardList("Todo")
	if err := two.AddCardList(l); !errors.Is(err, board.ErrOwnedElsewhere) {
		t.Errorf("err = %v, want ErrOwnedElsewhere", err)
	}
}

func TestRemoveCardListCascades(t *testing.T) {
	b := board.NewBoard("Project")
	l, _ := b.NewCardList("Todo")
	a, _ := l.NewCard("A")
	c, _ := l.NewCard("B")

	if err := b.RemoveCardList(l); err != nil {
		t.Fatalf("RemoveCardList: %v", err)
	}
	if !l.Destroyed() || !a.Destroyed() || !c.Destroyed() {
		t.Error("list and its cards should be destroyed")
	}
	if l.Len() != 0 {
		t.Errorf("destroyed list Len() = %d, want 0", l.Len())
	}
	if _, ok := b.FindCardList(l.ID()); ok {
		t.Error("FindCardList should miss a removed list")
	}
	if _, _, ok := b.FindCard(a.ID()); ok {
		t.Error("FindCard should miss a cascaded card")
	}
	if _, err := l.NewCard("late"); !errors.Is(err, board.ErrDestroyed) {
		t.Errorf("adding to destroyed list err = %v, want ErrDestroyed", err)
	}
	if err := b.AddCardList(l); !errors.Is(err, board.ErrDestroyed) {
		t.Errorf("re-adding destroyed list err = %v, want ErrDestroyed", err)
	}
	if err := b.RemoveCardList(l); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
}

func TestReorderCardList(t *testing.T) {
	b := board.NewBoard("Project")
	todo, _ := b.NewCardList("Todo")
	doing, _ := b.NewCardList("Doing")
	done, _ := b.NewCardList("Done")

	if err := b.ReorderCardList(todo, done); err != nil {
		t.Fatalf("ReorderCardList: %v", err)
	}
	if got := listNames(b); !sameStrings(got, []string{"Doing", "Done", "Todo"}) {
		t.Errorf("lists = %v, want [Doing Done Todo]", got)
	}
	if err := b.ReorderCardList(todo, nil); err != nil {
		t.Fatalf("ReorderCardList to head: %v", err)
	}
	if got := listNames(b); !sameStrings(got, []string{"Todo", "Doing", "Done"}) {
		t.Errorf("lists = %v, want [Todo Doing Done]", got)
	}
	if err := b.ReorderCardList(doing, doing); err != nil {
		t.Errorf("self reorder: %v", err)
	}
	if err := b.ReorderCardList(board.NewCardList("ghost"), todo); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("absent err = %v, want ErrNotFound", err)
	}
	if got := listNames(b); !sameStrings(got, []string{"Todo", "Doing", "Done"}) {
		t.Errorf("lists = %v, want unchanged", got)
	}
}

func TestFindCardResolvesHandle(t *testing.T) {
	b := board.NewBoard("Project")
	l, _ := b.NewCardList("Todo")
	c, _ := l.NewCard("A")

	got, owner, ok := b.FindCard(c.ID())
	if !ok || got != c || owner != l {
		t.Fatalf("FindCard = (%v, %v, %v)", got, owner, ok)
	}
	if err := l.RemoveCard(c); err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}
	if _, _, ok := b.FindCard(c.ID()); ok {
		t.Error("FindCard should miss a removed card")
	}
}

func TestSetBackground(t *testing.T) {
	b := board.NewBoard("Project")
	if err := b.SetBackground("colour", "#336699"); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	if b.BackgroundKind() != board.BackgroundColour || b.BackgroundValue() != "#336699" {
		t.Errorf("background = %+v", b.Background())
	}

	err := b.SetBackground("bogus", "x")
	if !errors.Is(err, board.ErrInvalidBackground) {
		t.Fatalf("err = %v, want ErrInvalidBackground", err)
	}
	if b.BackgroundValue() != "#336699" {
		t.Errorf("prior background lost: %+v", b.Background())
	}
}

func TestValidateBackground(t *testing.T) {
	tests := []struct {
		kind  board.BackgroundKind
		value string
		ok    bool
	}{
		{board.BackgroundColour, "#336699", true},
		{board.BackgroundColour, "#fff", true},
		{board.BackgroundColour, "rgb(51, 102, 153)", true},
		{board.BackgroundColour, "rgb(256, 0, 0)", false},
		{board.BackgroundColour, "#33669", false},
		{board.BackgroundColour, "#zzzzzz", false},
		{board.BackgroundColour, "", false},
		{board.BackgroundFile, "/home/me/wall.png", true},
		{board.BackgroundFile, "images/wall.png", true},
		{board.BackgroundFile, "   ", false},
		{board.BackgroundFile, ".", false},
		{board.BackgroundFile, "a\x00b", false},
		{"gradient", "#336699", false},
	}
	for _, tt := range tests {
		err := board.ValidateBackground(tt.kind, tt.value)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateBackground(%s, %q) = %v, want ok=%v", tt.kind, tt.value, err, tt.ok)
		}
	}
}

func TestBackgroundHex(t *testing.T) {
	hex, ok := board.Background{Kind: board.BackgroundColour, Value: "rgb(51, 102, 153)"}.Hex()
	if !ok || hex != "#336699" {
		t.Errorf("Hex() = %q, %v, want #336699", hex, ok)
	}
	hex, ok = board.Background{Kind: board.BackgroundColour, Value: "#abc"}.Hex()
	if !ok || hex != "#aabbcc" {
		t.Errorf("Hex() = %q, %v, want #aabbcc", hex, ok)
	}
	if _, ok := (board.Background{Kind: board.BackgroundFile, Value: "x.png"}).Hex(); ok {
		t.Error("file background should have no hex")
	}
}
