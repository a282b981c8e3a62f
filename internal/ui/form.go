package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/dates"
)

type formKind int

const (
	formNewEntry formKind = iota
	formEditEntry
	formBodyWeight
	formNewFood
	formEditFood
	formHeight
	formUserName
)

// form is a small modal with labelled text inputs. The root model routes
// all keys here while one is open.
type form struct {
	kind    formKind
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	errText string

	// Mutation context.
	day     dates.Day
	entryID int64
	foodID  int64
}

func newForm(kind formKind, title string, labels []string, values []string) *form {
	f := &form{kind: kind, title: title, labels: labels}
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = label
		in.CharLimit = 64
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.inputs = append(f.inputs, in)
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) setFocus(i int) {
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) update(msg tea.Msg) (*form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// handleFormKey routes keys while a form is open: focus movement, cancel,
// submit, and plain typing into the focused input.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.form = nil
		m.status = statusLine{}
		return m, nil

	case msg.String() == "tab" || msg.String() == "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case msg.String() == "shift+tab" || msg.String() == "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.busy {
			return m, nil
		}
		cmd := m.submitForm()
		if cmd == nil {
			return m, nil // validation failed, message set on the form
		}
		m.busy = true
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm validates the open form and returns the mutation command, or
// nil after setting an inline validation message.
func (m *Model) submitForm() tea.Cmd {
	f := m.form
	f.errText = ""

	switch f.kind {
	case formNewEntry:
		entry, ok := m.lookupFood(f.value(0))
		if !ok {
			f.errText = "No such food in the catalogue"
			return nil
		}
		grams, ok := parsePositiveInt(f.value(1))
		if !ok {
			f.errText = "Weight must be a positive whole number of grams"
			return nil
		}
		return m.createEntryCmd(f.day, entry.ID, grams)

	case formEditEntry:
		grams, ok := parsePositiveInt(f.value(0))
		if !ok {
			f.errText = "Weight must be a positive whole number of grams"
			return nil
		}
		return m.updateEntryCmd(f.day, f.entryID, grams)

	case formBodyWeight:
		kg, ok := parsePositiveFloat(f.value(0))
		if !ok {
			f.errText = "Weight must be a positive number of kilograms"
			return nil
		}
		return m.setBodyWeightCmd(f.day, kg)

	case formNewFood, formEditFood:
		name := f.value(0)
		if name == "" {
			f.errText = "Name must not be empty"
			return nil
		}
		if m.catalogue.NameTaken(name, f.foodID) {
			f.errText = "A food with this name already exists"
			return nil
		}
		kcal, ok := parsePositiveInt(f.value(1))
		if !ok {
			f.errText = "Calories must be a positive whole number per 100 g"
			return nil
		}
		if f.kind == formNewFood {
			return m.createFoodCmd(name, kcal)
		}
		return m.updateFoodCmd(catalogue.Entry{ID: f.foodID, Name: name, KcalPer100g: kcal})

	case formHeight:
		cm, ok := parsePositiveInt(f.value(0))
		if !ok {
			f.errText = "Height must be a positive whole number of centimetres"
			return nil
		}
		store := m.settings
		return func() tea.Msg {
			store.SetHeight(cm)
			return mutationMsg{note: "Height updated"}
		}

	case formUserName:
		name := f.value(0)
		store := m.settings
		return func() tea.Msg {
			store.SetUserName(name)
			return mutationMsg{note: "Name updated"}
		}
	}
	return nil
}

// lookupFood resolves a catalogue entry by case-insensitive name.
func (m Model) lookupFood(name string) (catalogue.Entry, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range m.snap.catalogue.Sorted() {
		if strings.ToLower(entry.Name) == want {
			return entry, true
		}
	}
	return catalogue.Entry{}, false
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parsePositiveFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// renderForm draws the modal form body.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	var b strings.Builder
	b.WriteString(styles.Title.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := styles.MutedText.Render(padRight(f.labels[i], 18))
		cursor := "  "
		if i == f.focus {
			cursor = styles.AccentText.Render("> ")
		}
		b.WriteString(cursor + label + in.View() + "\n")
	}
	if f.errText != "" {
		b.WriteString("\n" + styles.DangerText.Render(f.errText) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + styles.WarningText.Render("Saving...") + "\n")
	} else {
		b.WriteString("\n" + styles.MutedText.Render("enter save · esc cancel · tab next field") + "\n")
	}

	return styles.PanelFocus.Render(b.String())
}
