package medichat

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// DefaultDisplayName is shown when no name is stored.
const DefaultDisplayName = "Pengguna"

// Identity is the persisted client-side session: token, display name, role
// and email. It is stored and loaded as one unit.
type Identity struct {
	Token string
	Name  string
	Role  Role
	Email string
}

// LoggedIn reports whether a session token is present.
func (id Identity) LoggedIn() bool { return id.Token != "" }

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

// DisplayName returns Name, or DefaultDisplayName when empty.
func (id Identity) DisplayName() string {
	if strings.TrimSpace(id.Name) == "" {
		return DefaultDisplayName
	}
	return id.Name
}

// FirstName returns the first space-separated word of the display name.
func (id Identity) FirstName() string {
	name := id.DisplayName()
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}

// Initial returns the upper-cased first grapheme of the name, or "U".
func (id Identity) Initial() string {
	if id.Name == "" {
		return "U"
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(id.Name, -1)
	return strings.ToUpper(cluster)
}

// AuthStore persists an Identity. Implementations must write all fields
// atomically. Load returns the zero Identity when nothing is stored.
type AuthStore interface {
	Load() (Identity, error)
	Save(Identity) error
	Clear() error
}

// AuthSession is the single update path for the current identity. Every
// change is written through to the store before it becomes visible.
type AuthSession struct {
	mu    sync.Mutex
	store AuthStore
	cur   Identity
}

// NewAuthSession loads the stored identity.
func NewAuthSession(store AuthStore) (*AuthSession, error) {
	id, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	return &AuthSession{store: store, cur: id}, nil
}

// Current returns the current identity.
func (s *AuthSession) Current() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token returns the current session token, empty when logged out.
func (s *AuthSession) Token() string {
	return s.Current().Token
}

// Login replaces the identity with the one issued by the token endpoint.
func (s *AuthSession) Login(res LoginResult) (Identity, error) {
	role := res.Role
	if role == "" {
		role = RoleUser
	}
	id := Identity{
		Token: res.AccessToken,
		Name:  res.FullName,
		Role:  role,
		Email: res.Email,
	}
	return id, s.set(id)
}

// Logout clears the whole identity.
func (s *AuthSession) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	s.cur = Identity{}
	return nil
}

// ClearToken drops only the token, keeping the other fields. Used when the
// server rejects the token.
func (s *AuthSession) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.cur
	id.Token = ""
	return s.setLocked(id)
}

func (s *AuthSession) set(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(id)
}

// setLocked saves id and makes it current. s.mu must be held.
func (s *AuthSession) setLocked(id Identity) error {
	if err := s.store.Save(id); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	s.cur = id
	return nil
}
