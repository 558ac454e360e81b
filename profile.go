package medichat

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EditMode is the state of the profile editor.
type EditMode int

const (
	Viewing EditMode = iota
	EditingName
	EditingPassword
)

func (m EditMode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case EditingName:
		return "editing-name"
	case EditingPassword:
		return "editing-password"
	default:
		return fmt.Sprintf("EditMode(%d)", int(m))
	}
}

// ProfileEditor holds the profile modal's draft state. Editing starts only
// from Viewing; Cancel always returns to Viewing and discards drafts.
type ProfileEditor struct {
	Mode            EditMode
	Name            string
	NewPassword     string
	ConfirmPassword string

	original string
}

// NewProfileEditor opens the editor in Viewing mode for id.
func NewProfileEditor(id Identity) ProfileEditor {
	name := id.DisplayName()
	return ProfileEditor{Mode: Viewing, Name: name, original: name}
}

// EditName switches to EditingName. It reports whether the switch happened.
func (e *ProfileEditor) EditName() bool {
	if e.Mode != Viewing {
		return false
	}
	e.Mode = EditingName
	return true
}

// EditPassword switches to EditingPassword. It reports whether the switch
// happened.
func (e *ProfileEditor) EditPassword() bool {
	if e.Mode != Viewing {
		return false
	}
	e.Mode = EditingPassword
	e.NewPassword, e.ConfirmPassword = "", ""
	return true
}

// Cancel returns to Viewing and restores the original name.
func (e *ProfileEditor) Cancel() {
	e.Mode = Viewing
	e.Name = e.original
	e.NewPassword, e.ConfirmPassword = "", ""
}

// Submit validates the draft for the current mode and returns the update to
// send. Viewing has nothing to submit.
func (e ProfileEditor) Submit() (ProfileUpdate, error) {
	switch e.Mode {
	case EditingName:
		if strings.TrimSpace(e.Name) == "" {
			return ProfileUpdate{}, invalid(MsgNameRequired)
		}
		name := e.Name
		return ProfileUpdate{FullName: &name}, nil
	case EditingPassword:
		if utf8.RuneCountInString(e.NewPassword) < MinPasswordLength {
			return ProfileUpdate{}, invalid(MsgPasswordTooShort)
		}
		if e.NewPassword != e.ConfirmPassword {
			return ProfileUpdate{}, invalid(MsgConfirmMismatch)
		}
		pw := e.NewPassword
		return ProfileUpdate{NewPassword: &pw}, nil
	default:
		return ProfileUpdate{}, fmt.Errorf("nothing to submit in %s mode: %w", e.Mode, ErrValidation)
	}
}
