package medichat

import "fmt"

// Page is a navigation target of the client.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageDiagnosis
	PageAdmin
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageDiagnosis:
		return "diagnosis"
	case PageAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParsePage returns the page named s, as printed by String.
func ParsePage(s string) (Page, error) {
	for p := PageHome; p <= PageAdmin; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PageHome, fmt.Errorf("unknown page %q", s)
}

// Decision is the result of evaluating a guard for a navigation target.
// When Redirected is true, Page differs from the requested target. From is
// set only on login redirects and records the originally requested page.
type Decision struct {
	Page       Page
	From       Page
	Redirected bool
}

func allow(target Page) Decision { return Decision{Page: target} }

func redirect(to Page) Decision { return Decision{Page: to, Redirected: true} }

// AdminOnly admits administrators. Without a token it redirects to login,
// remembering target; other roles go to the diagnosis page.
func AdminOnly(id Identity, target Page) Decision {
	if !id.LoggedIn() {
		d := redirect(PageLogin)
		d.From = target
		return d
	}
	if !id.IsAdmin() {
		return redirect(PageDiagnosis)
	}
	return allow(target)
}

// UserOnly admits non-admin users. Without a token it redirects to login,
// remembering target; administrators go to the admin page.
func UserOnly(id Identity, target Page) Decision {
	if !id.LoggedIn() {
		d := redirect(PageLogin)
		d.From = target
		return d
	}
	if id.IsAdmin() {
		return redirect(PageAdmin)
	}
	return allow(target)
}

// Guard evaluates the guard attached to target. Public pages are always
// allowed and unknown pages fall back to home.
func Guard(id Identity, target Page) Decision {
	switch target {
	case PageHome, PageLogin, PageRegister:
		return allow(target)
	case PageDiagnosis:
		return UserOnly(id, target)
	case PageAdmin:
		return AdminOnly(id, target)
	default:
		return redirect(PageHome)
	}
}

// EntryPage is the main call-to-action target for id: login when logged
// out, the admin dashboard for administrators, diagnosis otherwise.
func EntryPage(id Identity) Page {
	switch {
	case !id.LoggedIn():
		return PageLogin
	case id.IsAdmin():
		return PageAdmin
	default:
		return PageDiagnosis
	}
}
