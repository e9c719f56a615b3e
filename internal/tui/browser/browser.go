// Package browser is an interactive list of invitations with revoke
// support, used by `vortex invitation browse`.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattjoyce/vortex"
)

var (
	titleStyle      = lipgloss.NewStyle().MarginLeft(2)
	paginationStyle = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle       = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle   = lipgloss.NewStyle().Margin(1, 0, 2, 4)
	detailStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Margin(1, 2)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	statusStyle = lipgloss.NewStyle().MarginLeft(4).Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().MarginLeft(4).Foreground(lipgloss.Color("196"))
)

// Revoker revokes invitations. *vortex.Client satisfies it.
type Revoker interface {
	RevokeInvitation(ctx context.Context, invitationID string) error
}

type item struct {
	inv vortex.Invitation
}

func (i item) Title() string {
	return fmt.Sprintf("%s  [%s]", i.inv.ID, i.inv.Status)
}

func (i item) Description() string {
	var parts []string
	for _, t := range i.inv.Target {
		parts = append(parts, t.Value)
	}
	for _, g := range i.inv.Groups {
		parts = append(parts, fmt.Sprintf("%s:%s", g.Type, g.Name))
	}
	if len(parts) == 0 {
		return "no target"
	}
	return strings.Join(parts, ", ")
}

func (i item) FilterValue() string {
	return i.inv.ID + " " + i.Description()
}

type revokedMsg struct {
	id  string
	err error
}

// Model is the bubbletea model for the browser.
type Model struct {
	ctx      context.Context
	revoker  Revoker
	list     list.Model
	detail   bool
	quitting bool
	status   string
	err      error
	revoked  []string
}

// New builds a browser over invs.
func New(ctx context.Context, revoker Revoker, invs []vortex.Invitation, title string) *Model {
	items := make([]list.Item, 0, len(invs))
	for _, inv := range invs {
		items = append(items, item{inv: inv})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{ctx: ctx, revoker: revoker, list: l}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case revokedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("revoke %s: %w", msg.id, msg.err)
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Revoked %s", msg.id)
		m.revoked = append(m.revoked, msg.id)
		for idx, li := range m.list.Items() {
			if it, ok := li.(item); ok && it.inv.ID == msg.id {
				m.list.RemoveItem(idx)
				break
			}
		}
		m.detail = false
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if _, ok := m.list.SelectedItem().(item); ok {
				m.detail = !m.detail
			}
			return m, nil

		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}

		case "x":
			it, ok := m.list.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			m.status = fmt.Sprintf("Revoking %s...", it.inv.ID)
			return m, m.revoke(it.inv.ID)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) revoke(id string) tea.Cmd {
	return func() tea.Msg {
		return revokedMsg{id: id, err: m.revoker.RevokeInvitation(m.ctx, id)}
	}
}

func (m *Model) View() string {
	if m.quitting {
		if len(m.revoked) == 0 {
			return quitTextStyle.Render("Bye.")
		}
		return quitTextStyle.Render(fmt.Sprintf("Revoked: %s", strings.Join(m.revoked, ", ")))
	}

	var b strings.Builder
	if it, ok := m.list.SelectedItem().(item); ok && m.detail {
		b.WriteString(detailStyle.Render(renderDetail(it.inv)))
	} else {
		b.WriteString("\n" + m.list.View())
	}
	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	return b.String()
}

// Revoked returns the ids revoked during the session.
func (m *Model) Revoked() []string {
	return m.revoked
}

func renderDetail(inv vortex.Invitation) string {
	rows := [][2]string{
		{"ID", inv.ID},
		{"Status", inv.Status},
		{"Account", inv.AccountID},
		{"Type", inv.InvitationType},
		{"Deliveries", fmt.Sprintf("%d (%s)", inv.DeliveryCount, strings.Join(inv.DeliveryTypes, ", "))},
		{"Views", fmt.Sprintf("%d", inv.Views)},
		{"Clicks", fmt.Sprintf("%d", inv.ClickThroughs)},
	}
	for _, t := range inv.Target {
		rows = append(rows, [2]string{"Target", t.Type + " " + t.Value})
	}
	for _, g := range inv.Groups {
		rows = append(rows, [2]string{"Group", fmt.Sprintf("%s %s (%s)", g.Type, g.GroupID, g.Name)})
	}
	if inv.CreatedAt != nil {
		rows = append(rows, [2]string{"Created", inv.CreatedAt.Format("2006-01-02 15:04:05")})
	}

	lines := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-10s", r[0])), r[1]))
	}
	lines = append(lines, "", "esc/enter: back   x: revoke   q: quit")
	return strings.Join(lines, "\n")
}

// Run starts the browser full-screen and returns the ids revoked.
func Run(ctx context.Context, revoker Revoker, invs []vortex.Invitation, title string) ([]string, error) {
	m := New(ctx, revoker, invs, title)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return m.Revoked(), fmt.Errorf("run browser: %w", err)
	}
	return m.Revoked(), nil
}
