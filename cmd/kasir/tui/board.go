// Package tui renders the live board shown by "kasir watch".
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/diewo77/warung-ledger/internal/i18n"
	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/services"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(22)

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// Messages
type tabsMsg []models.TabTotal

type kasbonMsg int64

type closedMsg struct {
	err error
}

// BoardModel is the Bubbletea model for the open-tabs board.
type BoardModel struct {
	tabs   *live.Subscription[[]models.TabTotal]
	kasbon *live.Subscription[int64]
	lang   string

	rows         []models.TabTotal
	activeKasbon int64
	err          error
	width        int
}

// NewBoardModel subscribes to the open tabs and the outstanding kasbon total.
func NewBoardModel(ctx context.Context, svc *services.Services, lang string) BoardModel {
	return BoardModel{
		tabs:   svc.Tabs.WatchActiveWithTotals(ctx),
		kasbon: svc.Reports.WatchActiveKasbon(ctx),
		lang:   lang,
		width:  80,
	}
}

func waitFor[T any](sub *live.Subscription[T], wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.C
		if !ok {
			return closedMsg{err: sub.Err()}
		}
		return wrap(v)
	}
}

func (m BoardModel) waitTabs() tea.Cmd {
	return waitFor(m.tabs, func(v []models.TabTotal) tea.Msg { return tabsMsg(v) })
}

func (m BoardModel) waitKasbon() tea.Cmd {
	return waitFor(m.kasbon, func(v int64) tea.Msg { return kasbonMsg(v) })
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.waitTabs(), m.waitKasbon())
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Close()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tabsMsg:
		m.rows = msg
		return m, m.waitTabs()
	case kasbonMsg:
		m.activeKasbon = int64(msg)
		return m, m.waitKasbon()
	case closedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
	}
	return m, nil
}

// View renders the board
func (m BoardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T(m.lang, "open_tabs")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render("-"))
		b.WriteString("\n")
	}
	perRow := m.width / (cardStyle.GetWidth() + 2)
	if perRow < 1 {
		perRow = 1
	}
	var line []string
	for i, r := range m.rows {
		card := fmt.Sprintf("#%d %s\n%s", r.Tab.ID, r.Tab.Alias, amountStyle.Render(i18n.Rupiah(m.lang, r.UnpaidTotal)))
		line = append(line, cardStyle.Render(card))
		if len(line) == perRow || i == len(m.rows)-1 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
			b.WriteString("\n")
			line = line[:0]
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s: %s\n", i18n.T(m.lang, "active_kasbon"), amountStyle.Render(i18n.Rupiah(m.lang, m.activeKasbon))))
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("q: quit"))
	return b.String()
}

// Close cancels both subscriptions.
func (m BoardModel) Close() {
	m.tabs.Cancel()
	m.kasbon.Cancel()
}

// RunBoard shows the board until the user quits or ctx ends.
func RunBoard(ctx context.Context, svc *services.Services, lang string) error {
	m := NewBoardModel(ctx, svc, lang)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
