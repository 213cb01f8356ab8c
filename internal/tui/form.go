package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label       string
	value       string
	placeholder string
	secret      bool
	charLimit   int
}

// formValues are the submitted values keyed by field label.
type formValues map[string]string

func (v formValues) get(label string) string {
	return strings.TrimSpace(v[label])
}

type formState int

const (
	formEditing formState = iota
	formCancelled
	formSubmitted
)

// formModel is a labelled list of text inputs. It does not submit anything
// itself: the owning page reads the values once Update reports
// formSubmitted.
type formModel struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	submitting bool
	errMsg     string
}

func newFormModel(title string, fields ...formField) *formModel {
	f := &formModel{title: title}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.Width = 40
		in.CharLimit = 256
		if field.charLimit > 0 {
			in.CharLimit = field.charLimit
		}
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		in.SetValue(field.value)
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f *formModel) values() formValues {
	out := make(formValues, len(f.inputs))
	for i, in := range f.inputs {
		out[f.labels[i]] = in.Value()
	}
	return out
}

// fail re-enables the form and shows msg.
func (f *formModel) fail(msg string) {
	f.submitting = false
	f.errMsg = msg
}

func (f *formModel) Update(msg tea.Msg) (formState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return formCancelled, nil
		case "tab", "down":
			f.move(1)
			return formEditing, nil
		case "shift+tab", "up":
			f.move(-1)
			return formEditing, nil
		case "enter":
			if f.submitting {
				return formEditing, nil
			}
			f.errMsg = ""
			f.submitting = true
			return formSubmitted, nil
		}
	}

	if len(f.inputs) == 0 {
		return formEditing, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEditing, cmd
}

func (f *formModel) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formModel) View() string {
	labelWidth := 0
	for _, l := range f.labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", labelWidth, f.labels[i], in.View()))
	}

	if f.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return renderPage(f.title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}
