// ABOUTME: Top-level Bubble Tea AppModel for editing one board: columns, card detail, prompt and status bar.
// ABOUTME: Focus is held as ULID handles and re-resolved after every mutation so deleted entities are never shown.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2389-research/progress/board"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
)

var errNoSaver = errors.New("no save target configured")

const helpLine = "h/l list  j/k card  a/A add  r/R rename  x/X delete  H/L move  J/K reorder  </> move list  b background  s save  q quit"

// AppModel is the board editor. The board itself is shared and mutated in
// place; the model only keeps handles into it.
type AppModel struct {
	board     *board.Board
	save      SaveFunc
	panel     BoardPanelModel
	detail    DetailPanelModel
	statusBar StatusBarModel
	prompt    PromptModel

	listID  ulid.ULID // focused list
	cardID  ulid.ULID // focused card, zero when the focused list is empty
	listIdx int       // last resolved positions, used once a handle dies
	cardIdx int

	// lastCard remembers the focused card per list; it anchors H/L moves.
	lastCard map[ulid.ULID]ulid.ULID

	dirty     bool
	gen       uint64 // bumped by every successful edit
	quitArmed bool
	width     int
	height    int
}

// NewAppModel creates an editor over b. save is called by the s key.
func NewAppModel(b *board.Board, save SaveFunc) AppModel {
	m := AppModel{
		board:     b,
		save:      save,
		panel:     NewBoardPanelModel(b),
		detail:    NewDetailPanelModel(),
		statusBar: NewStatusBarModel(b.Name()),
		prompt:    NewPromptModel(),
		lastCard:  make(map[ulid.ULID]ulid.ULID),
	}
	m.resolve()
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SavedMsg:
		return m.handleSaved(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	list, card := m.focused()
	listID := ulid.ULID{}
	if list != nil {
		listID = list.ID()
	}
	cardID := ulid.ULID{}
	if card != nil {
		cardID = card.ID()
	}

	m.panel.SetWidth(m.width)
	m.detail.SetSize(m.width-2, 0)
	m.statusBar.SetWidth(m.width)
	m.statusBar.SetBoardName(m.board.Name())
	m.statusBar.SetCounts(m.board.Len(), m.board.CardCount())
	m.statusBar.SetDirty(m.dirty)

	header := TitleStyle.Render(m.board.Name()) + "  " + BackgroundSwatch(m.board.Background())

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.panel.View(listID, cardID))
	b.WriteString("\n")
	if m.prompt.IsActive() {
		b.WriteString(m.prompt.View())
	} else {
		b.WriteString(m.detail.View(card))
	}
	b.WriteString("\n")
	b.WriteString(EmptyStyle.Render(helpLine))
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// Dirty reports whether the board changed since the last successful save.
func (m AppModel) Dirty() bool {
	return m.dirty
}

// Focus returns the focused list and card handles.
func (m AppModel) Focus() (list, card ulid.ULID) {
	return m.listID, m.cardID
}

// StatusError returns the error shown in the status bar, if any.
func (m AppModel) StatusError() error {
	return m.statusBar.Err()
}

func (m AppModel) handleSaved(msg SavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.SetError(msg.Err)
		return m, nil
	}
	// An edit made while the save ran is not on disk yet.
	if msg.Gen == m.gen {
		m.dirty = false
	}
	m.statusBar.SetMessage("saved " + msg.Path)
	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.IsActive() {
		switch msg.Type {
		case tea.KeyEnter:
			kind, value := m.prompt.Submit()
			m.applyPrompt(kind, value)
		case tea.KeyEsc:
			m.prompt.Cancel()
			m.statusBar.SetMessage("cancelled")
		default:
			m.prompt = m.prompt.Update(msg)
		}
		return m, nil
	}

	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "q" {
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.statusBar.SetMessage("unsaved changes: s to save, q again to quit")
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	list, card := m.focused()
	switch key {
	case "h", "left":
		m.focusList(m.listIdx - 1)
	case "l", "right":
		m.focusList(m.listIdx + 1)
	case "j", "down":
		m.focusCard(list, m.cardIdx+1)
	case "k", "up":
		m.focusCard(list, m.cardIdx-1)

	case "a":
		if list == nil {
			m.statusBar.SetError(errors.New("no list: press A to add one"))
			break
		}
		m.prompt.Open(PromptNewCard, "")
	case "A":
		m.prompt.Open(PromptNewList, "")
	case "r":
		if card != nil {
			m.prompt.Open(PromptRenameCard, card.Name())
		} else if list != nil {
			m.prompt.Open(PromptRenameList, list.Name())
		}
	case "R":
		if list != nil {
			m.prompt.Open(PromptRenameList, list.Name())
		}
	case "b":
		bg := m.board.Background()
		m.prompt.Open(PromptBackground, fmt.Sprintf("%s %s", bg.Kind, bg.Value))

	case "x":
		if card != nil {
			m.mutate(list.RemoveCard(card), "deleted card "+card.Name())
		}
	case "X":
		if list != nil {
			m.mutate(m.board.RemoveCardList(list), "deleted list "+list.Name())
		}
	case "H":
		m.moveAcross(list, card, -1)
	case "L":
		m.moveAcross(list, card, +1)
	case "J":
		if card != nil && m.cardIdx < list.Len()-1 {
			cards := list.Cards()
			m.mutate(list.ReorderCard(card, cards[m.cardIdx+1]), "")
		}
	case "K":
		if card != nil && m.cardIdx > 0 {
			var anchor *board.Card
			if m.cardIdx > 1 {
				anchor = list.Cards()[m.cardIdx-2]
			}
			m.mutate(list.ReorderCard(card, anchor), "")
		}
	case ">":
		if list != nil && m.listIdx < m.board.Len()-1 {
			lists := m.board.CardLists()
			m.mutate(m.board.ReorderCardList(list, lists[m.listIdx+1]), "")
		}
	case "<":
		if list != nil && m.listIdx > 0 {
			var anchor *board.CardList
			if m.listIdx > 1 {
				anchor = m.board.CardLists()[m.listIdx-2]
			}
			m.mutate(m.board.ReorderCardList(list, anchor), "")
		}

	case "s":
		m.statusBar.SetMessage("saving...")
		return m, SaveCmd(m.save, m.board, m.gen)
	}

	m.resolve()
	return m, nil
}

// applyPrompt performs the action a submitted prompt was opened for.
func (m *AppModel) applyPrompt(kind PromptKind, value string) {
	if value == "" {
		m.statusBar.SetMessage("cancelled")
		return
	}

	list, card := m.focused()
	switch kind {
	case PromptNewCard:
		if list == nil {
			return
		}
		c, err := list.NewCard(value)
		if m.mutate(err, "added card "+value) {
			m.cardID = c.ID()
		}
	case PromptNewList:
		l, err := m.board.NewCardList(value)
		if m.mutate(err, "added list "+value) {
			m.listID = l.ID()
			m.cardID = ulid.ULID{}
		}
	case PromptRenameCard:
		if card != nil {
			card.SetName(value)
			m.mutate(nil, "renamed card")
		}
	case PromptRenameList:
		if list != nil {
			list.SetName(value)
			m.mutate(nil, "renamed list")
		}
	case PromptBackground:
		bgKind, bgValue := parseBackgroundInput(value)
		m.mutate(m.board.SetBackground(bgKind, bgValue), "background set")
	}
	m.resolve()
}

// moveAcross moves card to the list dir steps away, after the card last
// focused there or at its head.
func (m *AppModel) moveAcross(from *board.CardList, card *board.Card, dir int) {
	if card == nil {
		return
	}
	lists := m.board.CardLists()
	target := m.listIdx + dir
	if target < 0 || target >= len(lists) {
		return
	}
	to := lists[target]

	var anchor *board.Card
	if id, ok := m.lastCard[to.ID()]; ok {
		if c, ok := to.Card(id); ok {
			anchor = c
		}
	}
	if m.mutate(m.board.MoveCard(card, from, to, anchor), "moved "+card.Name()+" to "+to.Name()) {
		m.listID = to.ID()
		m.cardID = card.ID()
	}
}

// mutate records the outcome of a board mutation. It returns true on success.
func (m *AppModel) mutate(err error, message string) bool {
	if err != nil {
		m.statusBar.SetError(err)
		return false
	}
	m.dirty = true
	m.gen++
	if message != "" {
		m.statusBar.SetMessage(message)
	}
	return true
}

func (m *AppModel) focusList(idx int) {
	lists := m.board.CardLists()
	if idx < 0 || idx >= len(lists) {
		return
	}
	l := lists[idx]
	m.listID = l.ID()
	m.listIdx = idx
	m.cardID = m.lastCard[l.ID()]
	m.cardIdx = 0
}

func (m *AppModel) focusCard(list *board.CardList, idx int) {
	if list == nil {
		return
	}
	cards := list.Cards()
	if idx < 0 || idx >= len(cards) {
		return
	}
	m.cardID = cards[idx].ID()
	m.cardIdx = idx
}

// focused looks the handles up without changing them.
func (m AppModel) focused() (*board.CardList, *board.Card) {
	list, ok := m.board.FindCardList(m.listID)
	if !ok {
		return nil, nil
	}
	card, ok := list.Card(m.cardID)
	if !ok {
		return list, nil
	}
	return list, card
}

// resolve re-points the handles at live entities. A handle whose entity was
// removed falls back to whatever now sits at its last position.
func (m *AppModel) resolve() {
	lists := m.board.CardLists()
	if len(lists) == 0 {
		m.listID, m.cardID = ulid.ULID{}, ulid.ULID{}
		m.listIdx, m.cardIdx = 0, 0
		return
	}

	list, ok := m.board.FindCardList(m.listID)
	if !ok {
		list = lists[clamp(m.listIdx, len(lists))]
	}
	m.listID = list.ID()
	m.listIdx = m.board.IndexOf(list)

	cards := list.Cards()
	if len(cards) == 0 {
		m.cardID = ulid.ULID{}
		m.cardIdx = 0
		delete(m.lastCard, list.ID())
		return
	}
	card, ok := list.Card(m.cardID)
	if !ok {
		card = cards[clamp(m.cardIdx, len(cards))]
	}
	m.cardID = card.ID()
	m.cardIdx = list.IndexOf(card)
	m.lastCard[list.ID()] = card.ID()
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// parseBackgroundInput reads "colour VALUE", "file PATH", a bare colour
// ("#abc", "rgb(...)") or a bare path.
func parseBackgroundInput(s string) (board.BackgroundKind, string) {
	head, rest, _ := strings.Cut(s, " ")
	switch strings.ToLower(head) {
	case "colour", "color":
		return board.BackgroundColour, strings.TrimSpace(rest)
	case "file":
		return board.BackgroundFile, strings.TrimSpace(rest)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "rgb(") {
		return board.BackgroundColour, s
	}
	return board.BackgroundFile, s
}
