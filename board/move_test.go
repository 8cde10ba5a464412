// ABOUTME: Tests for the atomic cross-list MoveCard operation.
// ABOUTME: Covers counts, anchors, failure atomicity, same-list moves, and concurrent readers.
package board_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/2389-research/progress/board"
)

func twoLists(t *testing.T) (*board.Board, *board.CardList, *board.CardList, []*board.Card, []*board.Card) {
	t.Helper()
	b := board.NewBoard("Project")
	a, _ := b.NewCardList("A")
	c, _ := b.NewCardList("B")
	var ac, bc []*board.Card
	for _, n := range []string{"a1", "a2", "a3"} {
		card, err := a.NewCard(n)
		if err != nil {
			t.Fatalf("NewCard: %v", err)
		}
		ac = append(ac, card)
	}
	for _, n := range []string{"b1", "b2"} {
		card, err := c.NewCard(n)
		if err != nil {
			t.Fatalf("NewCard: %v", err)
		}
		bc = append(bc, card)
	}
	return b, a, c, ac, bc
}

func TestMoveCardAcrossLists(t *testing.T) {
	b, from, to, ac, bc := twoLists(t)
	n, m, total := from.Len(), to.Len(), b.CardCount()

	if err := b.MoveCard(ac[1], from, to, bc[0]); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}

	if from.Len() != n-1 || to.Len() != m+1 {
		t.Errorf("lens = (%d, %d), want (%d, %d)", from.Len(), to.Len(), n-1, m+1)
	}
	if from.Contains(ac[1]) || !to.Contains(ac[1]) {
		t.Error("card should be only in the destination")
	}
	if to.IndexOf(ac[1]) != to.IndexOf(bc[0])+1 {
		t.Errorf("card at %d, want right after anchor at %d", to.IndexOf(ac[1]), to.IndexOf(bc[0]))
	}
	if b.CardCount() != total {
		t.Errorf("CardCount() = %d, want %d", b.CardCount(), total)
	}
	if ac[1].List() != to {
		t.Error("card owner should be the destination")
	}
	if got := cardNames(to); !sameStrings(got, []string{"b1", "a2", "b2"}) {
		t.Errorf("destination = %v, want [b1 a2 b2]", got)
	}
}

func TestMoveCardToHead(t *testing.T) {
	b, from, to, ac, _ := twoLists(t)
	if err := b.MoveCard(ac[2], from, to, nil); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if got := cardNames(to); !sameStrings(got, []string{"a3", "b1", "b2"}) {
		t.Errorf("destination = %v, want [a3 b1 b2]", got)
	}
}

func TestMoveCardFailuresChangeNothing(t *testing.T) {
	b, from, to, ac, bc := twoLists(t)
	other := board.NewCardList("detached")

	tests := []struct {
		name   string
		card   *board.Card
		from   *board.CardList
		to     *board.CardList
		anchor *board.Card
		want   error
	}{
		{"card not in source", bc[0], from, to, nil, board.ErrNotFound},
		{"anchor not in destination", ac[0], from, to, ac[1], board.ErrNotFound},
		{"destination not on board", ac[0], from, other, nil, board.ErrNotFound},
		{"source not on board", ac[0], other, to, nil, board.ErrNotFound},
		{"nil card", nil, from, to, nil, board.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.MoveCard(tt.card, tt.from, tt.to, tt.anchor)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if got := cardNames(from); !sameStrings(got, []string{"a1", "a2", "a3"}) {
				t.Errorf("source = %v, want unchanged", got)
			}
			if got := cardNames(to); !sameStrings(got, []string{"b1", "b2"}) {
				t.Errorf("destination = %v, want unchanged", got)
			}
		})
	}
}

func TestMoveCardSameListReorders(t *testing.T) {
	b, from, _, ac, _ := twoLists(t)
	if err := b.MoveCard(ac[0], from, from, ac[2]); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if got := cardNames(from); !sameStrings(got, []string{"a2", "a3", "a1"}) {
		t.Errorf("list = %v, want [a2 a3 a1]", got)
	}
}

func TestMoveScenarioTodoDoing(t *testing.T) {
	b := board.NewBoard("Scenario")
	todo, _ := b.NewCardList("Todo")
	a, _ := todo.NewCard("A")
	_, _ = todo.NewCard("B")
	doing, err := b.NewCardList("Doing")
	if err != nil {
		t.Fatalf("NewCardList: %v", err)
	}

	if err := b.MoveCard(a, todo, doing, nil); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if got := cardNames(todo); !sameStrings(got, []string{"B"}) {
		t.Errorf("Todo = %v, want [B]", got)
	}
	if got := cardNames(doing); !sameStrings(got, []string{"A"}) {
		t.Errorf("Doing = %v, want [A]", got)
	}
}

// Readers must never observe the moved card in both lists or in neither.
func TestMoveCardIsAtomicForReaders(t *testing.T) {
	b := board.NewBoard("Race")
	left, _ := b.NewCardList("left")
	right, _ := b.NewCardList("right")
	card, _ := left.NewCard("ping")

	const moves = 500
	var wg sync.WaitGroup
	stop := make(chan struct{})
	violations := make(chan string, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			// Board-wide reads see the whole tree under one lock.
			if _, _, ok := b.FindCard(card.ID()); !ok {
				select {
				case violations <- "card missing from both lists":
				default:
				}
			}
			if n := b.CardCount(); n != 1 {
				select {
				case violations <- "card counted in both lists or neither":
				default:
				}
			}
		}
	}()

	for i := 0; i < moves; i++ {
		from, to := left, right
		if i%2 == 1 {
			from, to = right, left
		}
		if err := b.MoveCard(card, from, to, nil); err != nil {
			t.Fatalf("MoveCard #%d: %v", i, err)
		}
	}
	close(stop)
	wg.Wait()

	select {
	case v := <-violations:
		t.Fatal(v)
	default:
	}
	if b.CardCount() != 1 {
		t.Errorf("CardCount() = %d, want 1", b.CardCount())
	}
}

func TestWalkNeverSeesAMoveHalfway(t *testing.T) {
	b := board.NewBoard("Walk")
	first, _ := b.NewCardList("first")
	for i := 0; i < 6; i++ {
		l, _ := b.NewCardList("middle")
		_, _ = l.NewCard("filler")
	}
	last, _ := b.NewCardList("last")
	card, _ := first.NewCard("ping")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		from, to := first, last
		for {
			select {
			case <-stop:
				return
			default:
			}
			if err := b.MoveCard(card, from, to, nil); err != nil {
				t.Errorf("MoveCard: %v", err)
				return
			}
			from, to = to, from
		}
	}()

	for i := 0; i < 500; i++ {
		seen := 0
		b.Walk(func(snap board.Snapshot) {
			for _, l := range snap.Lists {
				if _, ok := l.Card(card.ID()); ok {
					seen++
				}
			}
		})
		if seen != 1 {
			close(stop)
			wg.Wait()
			t.Fatalf("walk %d saw the card %d times", i, seen)
		}
	}
	close(stop)
	wg.Wait()
}
