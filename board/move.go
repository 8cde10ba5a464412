// ABOUTME: Atomic cross-list card move, the one multi-container mutation on a board.
// ABOUTME: Holds both list locks for the whole add, remove and reposition sequence.
package board

import "errors"

// MoveCard moves card from one list of this board to another, landing
// immediately after anchor in the destination (nil anchor: the head).
//
// The move is all-or-nothing. Every precondition is checked before anything
// changes, and both lists stay locked until the card is in its final
// position, so no reader of either list ever sees the card in both lists or
// in neither. When from == to the move is a plain reorder.
func (b *Board) MoveCard(card *Card, from, to *CardList, anchor *Card) error {
	const op = "move_card"
	if card == nil {
		return membershipErr(op, KindCard, nil, ErrNotFound)
	}
	if from == nil || to == nil {
		return membershipErr(op, KindCardList, nil, ErrNotFound)
	}

	// The board lock keeps both lists attached and excludes board-wide
	// readers such as FindCard and CardCount; the list locks exclude direct
	// list mutations.
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lists.Contains(from) {
		return membershipErr(op, KindCardList, from, ErrNotFound)
	}
	if !b.lists.Contains(to) {
		return membershipErr(op, KindCardList, to, ErrNotFound)
	}
	if from == to {
		if err := from.ReorderCard(card, anchor); err != nil {
			return membershipErr(op, KindCard, card, errorsCause(err))
		}
		return nil
	}

	first, second := from, to
	if second.ID().Compare(first.ID()) < 0 {
		first, second = second, first
	}
	first.cardsMu.Lock()
	defer first.cardsMu.Unlock()
	second.cardsMu.Lock()
	defer second.cardsMu.Unlock()

	if !from.cards.Contains(card) {
		return membershipErr(op, KindCard, card, ErrNotFound)
	}
	if _, taken := to.cards.Get(card.ID()); taken {
		return membershipErr(op, KindCard, card, ErrDuplicateMember)
	}
	if anchor != nil && !to.cards.Contains(anchor) {
		return membershipErr(op, KindCard, anchor, ErrNotFound)
	}

	// Add before remove: the card is never absent from both sequences.
	if err := to.cards.Append(card); err != nil {
		return membershipErr(op, KindCard, card, err)
	}
	if err := from.cards.Remove(card); err != nil {
		_ = to.cards.Remove(card)
		return membershipErr(op, KindCard, card, err)
	}
	card.transfer(to)
	if err := to.cards.MoveAfter(card, anchor); err != nil {
		// Unreachable after the checks above; the card stays at the tail of to.
		return membershipErr(op, KindCard, card, err)
	}
	return nil
}

// errorsCause strips a MembershipError so it can be re-wrapped under another op.
func errorsCause(err error) error {
	var me *MembershipError
	if errors.As(err, &me) {
		return me.Err
	}
	return err
}
