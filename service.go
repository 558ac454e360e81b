package medichat

import "context"

// ChatRequest is the body of a chat turn.
type ChatRequest struct {
	Message string         `json:"message"`
	History []HistoryEntry `json:"history"`
}

// ChatResponse is the answer to a chat turn. Response may be empty, in which
// case the fallback text is shown.
type ChatResponse struct {
	Response string   `json:"response"`
	URLs     []string `json:"urls"`
}

// LoginResult is what the token endpoint returns on success.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
}

// ProfileUpdate changes the caller's own profile. Nil fields are omitted.
type ProfileUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

// AuthService issues tokens and registers accounts. No token is required.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Register(ctx context.Context, reg Registration) error
}

// ChatService sends one chat turn. ErrUnauthorized is returned on 401.
type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// ProfileService updates the logged-in user's profile.
type ProfileService interface {
	UpdateProfile(ctx context.Context, upd ProfileUpdate) error
}

// UserService is the administrator's user management API. ErrForbidden is
// returned on 403.
type UserService interface {
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, username string, upd UserUpdate) error
	DeleteUser(ctx context.Context, username string) error
}
