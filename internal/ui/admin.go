package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/session"
)

// adminTab selects the admin table.
type adminTab int

const (
	tabItems adminTab = iota
	tabCategories
)

func (t adminTab) String() string {
	if t == tabCategories {
		return "Categories"
	}
	return "Items"
}

// openAdmin shows the admin panel, asking for credentials first when the
// session lacks the admin role.
func (m Model) openAdmin() (tea.Model, tea.Cmd) {
	if m.session.IsAdmin() {
		m.view = ViewAdmin
		return m, nil
	}
	if m.session.Authenticated() {
		m.setError("The admin panel requires the admin role.")
		return m, nil
	}
	return m.openLogin(ViewAdmin)
}

func (m Model) openLogin(want View) (tea.Model, tea.Cmd) {
	if m.auth == nil {
		m.setError("Sign-in is not available.")
		return m, nil
	}
	form := newLoginForm(func(username, password string) tea.Cmd {
		return m.loginCmd(username, password, want)
	})
	m.modal = form
	return m, nil
}

func (m Model) toggleSession() (tea.Model, tea.Cmd) {
	if !m.session.Authenticated() {
		return m.openLogin(ViewListing)
	}
	name := m.session.Username()
	if err := m.session.Logout(); err != nil {
		m.log.WithError(err).Warn("logout failed")
	}
	m.log.WithField("user", name).Info("signed out")
	if m.view == ViewAdmin {
		m.view = ViewListing
	}
	m.setStatus("Signed out")
	return m, nil
}

func (m Model) loginCmd(username, password string, want View) tea.Cmd {
	sess, auth, ctx, timeout := m.session, m.auth, m.ctx, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return loginMsg{err: sess.Login(ctx, auth, username, password), wantView: want}
	}
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("sign in failed")
		text := session.FailureMessage(msg.err)
		if m.modal != nil {
			m.modal = m.modal.Failed(text)
		} else {
			m.setError(text)
		}
		return m, nil
	}
	m.modal = nil
	m.log.WithFields(logrus.Fields{"user": m.session.Username(), "role": m.session.Role()}).Info("signed in")
	switch {
	case m.session.IsAdmin():
		m.view = msg.wantView
		m.setStatus("Signed in as " + m.session.Username() + " (admin)")
	case msg.wantView == ViewAdmin:
		m.view = ViewListing
		m.setError("Signed in, but the admin panel requires the admin role.")
	default:
		m.setStatus("Signed in as " + m.session.Username())
	}
	return m, nil
}

func (m Model) adminRowCount() int {
	if m.adminTab == tabCategories {
		return len(m.snapshot.Categories)
	}
	return len(m.snapshot.Items)
}

// handleAdminKey processes keyboard input for the admin panel.
func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.session.IsAdmin() {
		m.view = ViewListing
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.adminTab = 1 - m.adminTab
		m.adminRow = 0
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m.openCreate()
	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	}
	m.adminRow = moveSelection(m.keys, msg, m.adminRow, m.adminRowCount(), m.contentHeight()/2)
	return m, nil
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {
	if m.adminTab == tabCategories {
		m.modal = newCategoryForm(nil, func(name string) tea.Cmd {
			return m.mutate("create category", "Category created", func(ctx context.Context) error {
				_, err := m.store.CreateCategory(ctx, name)
				return err
			})
		})
		return m, nil
	}
	m.modal = newItemForm(nil, m.snapshot.CategoryNames(), func(d catalog.ItemDraft) tea.Cmd {
		return m.mutate("create item", "Item created", func(ctx context.Context) error {
			_, err := m.store.CreateItem(ctx, d)
			return err
		})
	})
	return m, nil
}

func (m Model) openEdit() (tea.Model, tea.Cmd) {
	if m.adminTab == tabCategories {
		cat, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		m.modal = newCategoryForm(&cat, func(name string) tea.Cmd {
			return m.mutate("rename category", "Category renamed", func(ctx context.Context) error {
				_, err := m.store.RenameCategory(ctx, cat.ID, name)
				return err
			})
		})
		return m, nil
	}
	item, ok := m.selectedAdminItem()
	if !ok {
		return m, nil
	}
	m.modal = newItemForm(&item, m.snapshot.CategoryNames(), func(d catalog.ItemDraft) tea.Cmd {
		return m.mutate("update item", "Item saved", func(ctx context.Context) error {
			_, err := m.store.UpdateItem(ctx, item.ID, d)
			return err
		})
	})
	return m, nil
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	if m.adminTab == tabCategories {
		cat, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		affected := countReferences(m.snapshot.Items, cat.Name)
		message := fmt.Sprintf("Delete category “%s”?", cat.Name)
		if affected > 0 {
			message += fmt.Sprintf(" %d item(s) will be left without a category.", affected)
		}
		m.modal = &confirmDialog{
			title:   "Delete category",
			message: message,
			onYes: m.mutate("delete category", "Category deleted", func(ctx context.Context) error {
				return m.store.DeleteCategory(ctx, cat.ID)
			}),
		}
		return m, nil
	}
	item, ok := m.selectedAdminItem()
	if !ok {
		return m, nil
	}
	m.modal = &confirmDialog{
		title:   "Delete item",
		message: fmt.Sprintf("Delete “%s”?", displayName(item)),
		onYes: m.mutate("delete item", "Item deleted", func(ctx context.Context) error {
			return m.store.DeleteItem(ctx, item.ID)
		}),
	}
	return m, nil
}

func (m Model) selectedAdminItem() (catalog.Item, bool) {
	if m.adminRow < 0 || m.adminRow >= len(m.snapshot.Items) {
		return catalog.Item{}, false
	}
	return m.snapshot.Items[m.adminRow], true
}

func (m Model) selectedCategory() (catalog.Category, bool) {
	if m.adminRow < 0 || m.adminRow >= len(m.snapshot.Categories) {
		return catalog.Category{}, false
	}
	return m.snapshot.Categories[m.adminRow], true
}

func countReferences(items []catalog.Item, name string) int {
	n := 0
	for _, item := range items {
		if item.HasCategory() && item.Category == name {
			n++
		}
	}
	return n
}

// renderAdmin renders the admin panel.
func (m Model) renderAdmin() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	var tabs []string
	for _, t := range []adminTab{tabItems, tabCategories} {
		if t == m.adminTab {
			tabs = append(tabs, styles.Selected.Render(" "+t.String()+" "))
		} else {
			tabs = append(tabs, styles.MutedText.Render(" "+t.String()+" "))
		}
	}
	lines := []string{strings.Join(tabs, " "), ""}

	var rows []string
	if m.adminTab == tabCategories {
		lines = append(lines, styles.FaintText.Render(padRight("NAME", 32)+"ITEMS"))
		for i, c := range m.snapshot.Categories {
			row := padRight(truncate(c.Name, 30), 32) + fmt.Sprint(countReferences(m.snapshot.Items, c.Name))
			rows = append(rows, m.adminRowStyle(i).Render(row))
		}
	} else {
		header := padRight("NAME", 32) + padRight("PRICE", 12)
		if m.width == 0 || m.width >= LayoutWideWidth {
			header += "CATEGORY"
		}
		lines = append(lines, styles.FaintText.Render(header))
		for i, item := range m.snapshot.Items {
			row := padRight(truncate(displayName(item), 30), 32) + padRight(item.DisplayPrice(), 12)
			if m.width == 0 || m.width >= LayoutWideWidth {
				row += categoryLabel(item)
			}
			rows = append(rows, m.adminRowStyle(i).Render(row))
		}
	}

	if len(rows) == 0 {
		lines = append(lines, styles.MutedText.Render("Nothing here yet. Press n to create one."))
		return fitLines(lines, height)
	}
	start, end := windowRange(m.adminRow, len(rows), maxInt(height-len(lines), 1))
	lines = append(lines, rows[start:end]...)
	return fitLines(lines, height)
}

func (m Model) adminRowStyle(i int) lipgloss.Style {
	styles := m.theme.Styles()
	if i == m.adminRow {
		return styles.Selected
	}
	return styles.Text
}
