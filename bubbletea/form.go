package bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field describes one labelled input of a form.
type field struct {
	label       string
	placeholder string
	secret      bool
}

// form is a vertical stack of text inputs with one focused at a time.
// tab/down and shift+tab/up move focus; every other key goes to the focused
// input.
type form struct {
	fields []field
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.placeholder
		ti.Prompt = "› "
		ti.CharLimit = 256
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	return f.focusAt(0)
}

func (f form) value(i int) string { return f.inputs[i].Value() }

// withValue pre-fills input i.
func (f form) withValue(i int, v string) form {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	f.inputs[i].SetValue(v)
	f.inputs[i].CursorEnd()
	return f
}

// reset clears every input and focuses the first.
func (f form) reset() form {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.focusAt(0)
}

func (f form) focusAt(i int) form {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return f
}

func (f form) setWidth(w int) form {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	for i := range f.inputs {
		f.inputs[i].Width = max(w-4, 10)
	}
	return f
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.focusAt(f.focus + 1), nil
		case "shift+tab", "up":
			return f.focusAt(f.focus - 1), nil
		}
	}
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view(styles Styles) string {
	var b strings.Builder
	for i, fd := range f.fields {
		label := styles.Muted.Render(fd.label)
		if i == f.focus {
			label = styles.Accent.Render(fd.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
