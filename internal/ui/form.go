package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formLogin formKind = iota
	formCreate
	formRename
	formTop10
	formSearch
	formAlbum
)

type field struct {
	label  string
	value  string
	secret bool
}

// form is a stack of text inputs with a single focused field.
type form struct {
	kind   formKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(kind formKind, title string, fields ...field) *form {
	f := &form{kind: kind, title: title}
	for i, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.label
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(fd.value)
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

// cycle moves focus by delta, wrapping around.
func (f *form) cycle(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = styles.ok.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(styles.err.Render(f.err) + "\n")
	}
	return b.String()
}
