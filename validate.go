package medichat

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the client accepts.
const MinPasswordLength = 6

// User-facing validation messages.
const (
	MsgPasswordMismatch  = "Password tidak sama!"
	MsgPasswordTooShort  = "Password minimal 6 karakter"
	MsgConfirmMismatch   = "Konfirmasi password tidak cocok"
	MsgNameRequired      = "Nama tidak boleh kosong"
	MsgFieldsRequired    = "Semua kolom wajib diisi"
	MsgCredentialsNeeded = "Username dan password wajib diisi"
)

// Credentials are submitted to the token endpoint.
type Credentials struct {
	Username string
	Password string
}

// Validate requires both fields.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return invalid(MsgCredentialsNeeded)
	}
	return nil
}

// Registration is the sign-up form. ConfirmPassword never leaves the client.
type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
}

// Validate checks the form before any network call: all fields are
// required, the passwords must match and be long enough.
func (r Registration) Validate() error {
	for _, f := range []string{r.Username, r.Password, r.ConfirmPassword, r.FullName, r.Email} {
		if strings.TrimSpace(f) == "" {
			return invalid(MsgFieldsRequired)
		}
	}
	if r.Password != r.ConfirmPassword {
		return invalid(MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return invalid(MsgPasswordTooShort)
	}
	return nil
}
