package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/showcase/internal/catalog"
)

const noCategoryLabel = "(no category)"

func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// Item form fields, in focus order.
const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldCategory
	itemFieldCount
)

// itemForm creates or edits an item. The category field cycles through the
// existing category names.
type itemForm struct {
	id         string
	inputs     [fieldCategory]textinput.Model
	options    []string
	optionIdx  int // -1 when no option is chosen
	focus      int
	err        string
	submitting bool
	submit     func(catalog.ItemDraft) tea.Cmd
}

func newItemForm(existing *catalog.Item, categories []string, submit func(catalog.ItemDraft) tea.Cmd) *itemForm {
	f := &itemForm{submit: submit, optionIdx: -1}
	var current catalog.Item
	if existing != nil {
		current = *existing
		f.id = existing.ID
	}
	f.inputs[fieldName] = newInput("Name", current.Name, 80)
	f.inputs[fieldDescription] = newInput("Description", current.Description, 200)
	f.inputs[fieldPrice] = newInput("0.00", current.Price, 16)

	f.options = append([]string(nil), categories...)
	if current.HasCategory() {
		f.optionIdx = indexOf(f.options, current.Category)
		if f.optionIdx < 0 {
			// Keep a stale name selectable so an edit need not change it.
			f.options = append([]string{current.Category}, f.options...)
			f.optionIdx = 0
		}
	} else if existing == nil && len(f.options) > 0 {
		f.optionIdx = 0
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *itemForm) draft() catalog.ItemDraft {
	d := catalog.ItemDraft{
		Name:        f.inputs[fieldName].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Price:       f.inputs[fieldPrice].Value(),
	}
	if f.optionIdx >= 0 && f.optionIdx < len(f.options) {
		d.Category = f.options[f.optionIdx]
	}
	return d
}

func (f *itemForm) setFocus(i int) tea.Cmd {
	f.focus = (i + itemFieldCount) % itemFieldCount
	var cmd tea.Cmd
	for idx := range f.inputs {
		if idx == f.focus {
			cmd = f.inputs[idx].Focus()
		} else {
			f.inputs[idx].Blur()
		}
	}
	return cmd
}

func (f *itemForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, f.updateInput(msg), false
	}
	if f.submitting {
		return f, nil, key.Matches(keyMsg, keys.Escape)
	}
	switch {
	case key.Matches(keyMsg, keys.Escape):
		return f, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		f.err = ""
		f.submitting = true
		return f, f.submit(f.draft()), false
	case key.Matches(keyMsg, keys.NextField):
		return f, f.setFocus(f.focus + 1), false
	case key.Matches(keyMsg, keys.PrevField):
		return f, f.setFocus(f.focus - 1), false
	}
	if f.focus == fieldCategory {
		switch {
		case key.Matches(keyMsg, keys.Right):
			f.optionIdx = cycleIndex(f.optionIdx, len(f.options), 1)
		case key.Matches(keyMsg, keys.Left):
			f.optionIdx = cycleIndex(f.optionIdx, len(f.options), -1)
		}
		return f, nil, false
	}
	return f, f.updateInput(msg), false
}

func (f *itemForm) updateInput(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *itemForm) Failed(message string) Modal {
	f.err = message
	f.submitting = false
	return f
}

func (f *itemForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labels := [itemFieldCount]string{"Name", "Description", "Price", "Category"}

	var b strings.Builder
	for i, label := range labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(labelStyle.Render(padRight(label, 13)))
		if i < len(f.inputs) {
			b.WriteString(f.inputs[i].View())
		} else {
			b.WriteString(f.categoryView(styles, i == f.focus))
		}
		b.WriteString("\n")
	}
	b.WriteString(formFooter(styles, f.err, f.submitting, "enter save · tab next field · ←/→ category · esc cancel"))

	title := "New item"
	if f.id != "" {
		title = "Edit item"
	}
	return renderModal(theme, width, height, title, b.String())
}

func (f *itemForm) categoryView(styles Styles, focused bool) string {
	label := noCategoryLabel
	if f.optionIdx >= 0 && f.optionIdx < len(f.options) {
		label = f.options[f.optionIdx]
	}
	if len(f.options) == 0 {
		return styles.WarningText.Render("no categories yet; create one first")
	}
	if focused {
		return styles.Text.Render("‹ " + label + " ›")
	}
	return styles.Text.Render(label)
}

// categoryForm creates a category or renames an existing one.
type categoryForm struct {
	id         string
	original   string
	input      textinput.Model
	err        string
	submitting bool
	submit     func(name string) tea.Cmd
}

func newCategoryForm(existing *catalog.Category, submit func(string) tea.Cmd) *categoryForm {
	f := &categoryForm{submit: submit}
	name := ""
	if existing != nil {
		f.id, f.original, name = existing.ID, existing.Name, existing.Name
	}
	f.input = newInput("Category name", name, 60)
	f.input.Focus()
	return f
}

func (f *categoryForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if f.submitting {
			return f, nil, key.Matches(keyMsg, keys.Escape)
		}
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return f, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			f.err = ""
			f.submitting = true
			return f, f.submit(f.input.Value()), false
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, false
}

func (f *categoryForm) Failed(message string) Modal {
	f.err = message
	f.submitting = false
	return f
}

func (f *categoryForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(padRight("Name", 13)))
	b.WriteString(f.input.View())
	b.WriteString("\n")
	b.WriteString(formFooter(styles, f.err, f.submitting, "enter save · esc cancel"))

	title := "New category"
	if f.id != "" {
		title = "Rename “" + f.original + "”"
	}
	return renderModal(theme, width, height, title, b.String())
}

// loginForm collects credentials. The password is never echoed.
type loginForm struct {
	inputs     [2]textinput.Model
	focus      int
	err        string
	submitting bool
	submit     func(username, password string) tea.Cmd
}

func newLoginForm(submit func(username, password string) tea.Cmd) *loginForm {
	f := &loginForm{submit: submit}
	f.inputs[0] = newInput("Username", "", 64)
	f.inputs[1] = newInput("Password", "", 128)
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	f.inputs[0].Focus()
	return f
}

func (f *loginForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if f.submitting {
			return f, nil, key.Matches(keyMsg, keys.Escape)
		}
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return f, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			if f.focus == 0 {
				return f, f.setFocus(1), false
			}
			f.err = ""
			f.submitting = true
			return f, f.submit(strings.TrimSpace(f.inputs[0].Value()), f.inputs[1].Value()), false
		case key.Matches(keyMsg, keys.NextField), key.Matches(keyMsg, keys.PrevField):
			return f, f.setFocus(1 - f.focus), false
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *loginForm) setFocus(i int) tea.Cmd {
	f.focus = i
	f.inputs[1-i].Blur()
	return f.inputs[i].Focus()
}

func (f *loginForm) Failed(message string) Modal {
	f.err = message
	f.submitting = false
	f.inputs[1].SetValue("")
	return f
}

func (f *loginForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	for i, label := range []string{"Username", "Password"} {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(labelStyle.Render(padRight(label, 13)))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(formFooter(styles, f.err, f.submitting, "enter sign in · tab next field · esc cancel"))
	return renderModal(theme, width, height, "Sign in", b.String())
}

// confirmDialog asks before a destructive action.
type confirmDialog struct {
	title   string
	message string
	onYes   tea.Cmd
}

func (c *confirmDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, c.onYes, true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmDialog) Failed(string) Modal { return c }

func (c *confirmDialog) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render(c.message) + "\n\n" + styles.FaintText.Render("y confirm · n cancel")
	return renderModal(theme, width, height, c.title, body)
}

func formFooter(styles Styles, errMsg string, submitting bool, hint string) string {
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case submitting:
		b.WriteString(styles.InfoText.Render("Saving..."))
		b.WriteString("\n")
	case errMsg != "":
		b.WriteString(styles.DangerText.Render(errMsg))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}

// cycleIndex steps idx through n options, wrapping at both ends. An unset
// index (-1) moves to the first or last option.
func cycleIndex(idx, n, step int) int {
	if n == 0 {
		return -1
	}
	if idx < 0 {
		if step > 0 {
			return 0
		}
		return n - 1
	}
	return ((idx+step)%n + n) % n
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
