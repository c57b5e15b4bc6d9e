package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sheet is the interactive bubbletea picker.
type Sheet struct {
	cfg Config
}

// NewSheet creates a sheet picker. It does not check for a terminal;
// use NewPicker for that.
func NewSheet(cfg Config) *Sheet {
	return &Sheet{cfg: cfg}
}

// Pick runs the sheet until the user selects, finishes or cancels.
func (s *Sheet) Pick(ctx context.Context) (Choice, error) {
	m := newSheetModel(s.cfg)
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(s.cfg.Input),
		tea.WithOutput(s.cfg.Output),
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Choice{Cancelled: true}, ctx.Err()
		}
		return Choice{}, fmt.Errorf("picker: %w", err)
	}
	return final.(*sheetModel).choice, nil
}

// sheetModel is the bubbletea model behind Sheet.
type sheetModel struct {
	cfg    Config
	list   *list
	input  textinput.Model
	styles Styles

	// offset is the first visible row.
	offset int
	// railMode is armed by tab; the next key is a rail letter.
	railMode bool
	notice   string
	choice   Choice
}

func newSheetModel(cfg Config) *sheetModel {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	styles := DefaultStyles()
	if cfg.NoColor || DetectNoColor() {
		styles = NoColorStyles()
	}
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = 15
	}

	return &sheetModel{
		cfg:    cfg,
		list:   newList(cfg.Catalog),
		input:  ti,
		styles: styles,
	}
}

// Init implements tea.Model.
func (m *sheetModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *sheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Title, input, two rules and help take five lines.
		if h := msg.Height - 5; h >= 3 && h < m.cfg.PageHeight {
			m.cfg.PageHeight = h
		}
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		// ctrl+c quits from any mode.
		if m.railMode && msg.Type != tea.KeyCtrlC {
			return m.updateRail(msg)
		}
		m.railMode = false
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *sheetModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "ctrl+c":
		m.choice = Choice{Cancelled: true}
		return m, tea.Quit

	case "esc":
		if m.cfg.Colors != nil {
			m.choice = Choice{Colors: m.cfg.Colors.Values()}
		} else {
			m.choice = Choice{Cancelled: true}
		}
		return m, tea.Quit

	case "enter":
		opt, ok := m.list.current()
		if !ok {
			return m, nil
		}
		if m.cfg.Colors != nil {
			m.cfg.Colors.Toggle(opt.Label)
			return m, nil
		}
		m.choice = Choice{Option: opt}
		return m, tea.Quit

	case "up", "ctrl+p":
		m.list.move(-1)
		m.scrollToCursor()
		return m, nil

	case "down", "ctrl+n":
		m.list.move(1)
		m.scrollToCursor()
		return m, nil

	case "pgup":
		m.list.move(-m.cfg.PageHeight)
		m.scrollToCursor()
		return m, nil

	case "pgdown":
		m.list.move(m.cfg.PageHeight)
		m.scrollToCursor()
		return m, nil

	case "tab", "ctrl+j":
		m.railMode = true
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.list.setQuery(v)
		m.offset = 0
	}
	return m, cmd
}

func (m *sheetModel) updateRail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.railMode = false
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		// Any non-letter key disarms the rail.
		return m, nil
	}
	letter := normalizeLetter(string(msg.Runes))
	pos, ok := m.list.jump(letter)
	if !ok {
		m.notice = "no " + letter + " section"
		return m, nil
	}
	m.offset = m.list.sectionRow[pos]
	m.scrollToCursor()
	return m, nil
}

// scrollToCursor keeps the cursor row inside the visible window.
func (m *sheetModel) scrollToCursor() {
	c := m.list.cursor
	if c < 0 {
		m.offset = 0
		return
	}
	// Show the heading too when the cursor is a section's first option.
	top := c
	if c > 0 && m.list.rows[c-1].isHeading {
		top = c - 1
	}
	if top < m.offset {
		m.offset = top
	}
	if c >= m.offset+m.cfg.PageHeight {
		m.offset = c - m.cfg.PageHeight + 1
	}
	if maxOffset := len(m.list.rows) - m.cfg.PageHeight; m.offset > maxOffset {
		m.offset = max(maxOffset, 0)
	}
}

// View implements tea.Model.
func (m *sheetModel) View() string {
	var b strings.Builder

	title := m.cfg.Title
	if title == "" {
		title = "Select"
	}
	if m.cfg.Colors != nil {
		title += fmt.Sprintf("  (%s)", strings.Join(m.cfg.Colors.Values(), ", "))
	}
	b.WriteString(m.styles.Title.Render(title) + "\n")
	b.WriteString(m.input.View() + "\n")

	rule := m.styles.Border.Render(strings.Repeat("─", 40))
	b.WriteString(rule + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderRows(), "  ", m.renderRail()))
	b.WriteString("\n" + rule + "\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *sheetModel) renderRows() string {
	if len(m.list.rows) == 0 {
		return m.styles.Description.Render(padRight("No matches", 38))
	}

	end := min(m.offset+m.cfg.PageHeight, len(m.list.rows))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := m.list.rows[i]
		if r.isHeading {
			lines = append(lines, m.styles.Heading.Render(padRight(r.heading, 38)))
			continue
		}

		selected := m.cfg.Colors != nil && m.cfg.Colors.Contains(r.opt.Label)
		pointer, check := " ", " "
		if i == m.list.cursor {
			pointer = "▸"
		}
		if selected {
			check = "✓"
		}
		text := padRight(pointer+check+" "+r.opt.Label, 38)
		switch {
		case i == m.list.cursor:
			lines = append(lines, m.styles.Cursor.Render(text))
		case selected:
			lines = append(lines, m.styles.Selected.Render(text))
		default:
			lines = append(lines, m.styles.Item.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *sheetModel) renderRail() string {
	entries := m.list.rail(m.cfg.Alphabet)
	lines := make([]string, len(entries))
	for i, e := range entries {
		if e.Enabled {
			lines[i] = m.styles.RailOn.Render(e.Letter)
		} else {
			lines[i] = m.styles.RailOff.Render(e.Letter)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *sheetModel) renderHelp() string {
	switch {
	case m.railMode:
		return m.styles.Prompt.Render("jump to letter: ")
	case m.notice != "":
		return m.styles.Help.Render(m.notice)
	case m.cfg.Colors != nil:
		return m.styles.Help.Render("↑/↓ move · enter toggle · tab jump · esc done")
	default:
		return m.styles.Help.Render("↑/↓ move · enter select · tab jump · esc cancel")
	}
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
