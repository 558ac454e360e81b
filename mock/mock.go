// Package mock provides test doubles for medichat interfaces using function fields.
package mock

import (
	"context"

	"github.com/medichat/medichat"
)

// Interface compliance checks.
var (
	_ medichat.AuthService    = (*AuthService)(nil)
	_ medichat.ChatService    = (*ChatService)(nil)
	_ medichat.ProfileService = (*ProfileService)(nil)
	_ medichat.UserService    = (*UserService)(nil)
	_ medichat.AuthStore      = (*AuthStore)(nil)
)

// AuthService is a test double for medichat.AuthService.
type AuthService struct {
	LoginFn    func(ctx context.Context, creds medichat.Credentials) (medichat.LoginResult, error)
	RegisterFn func(ctx context.Context, reg medichat.Registration) error
}

// Login delegates to LoginFn.
func (s *AuthService) Login(ctx context.Context, creds medichat.Credentials) (medichat.LoginResult, error) {
	return s.LoginFn(ctx, creds)
}

// Register delegates to RegisterFn.
func (s *AuthService) Register(ctx context.Context, reg medichat.Registration) error {
	return s.RegisterFn(ctx, reg)
}

// ChatService is a test double for medichat.ChatService.
type ChatService struct {
	ChatFn func(ctx context.Context, req medichat.ChatRequest) (medichat.ChatResponse, error)
}

// Chat delegates to ChatFn.
func (s *ChatService) Chat(ctx context.Context, req medichat.ChatRequest) (medichat.ChatResponse, error) {
	return s.ChatFn(ctx, req)
}

// ProfileService is a test double for medichat.ProfileService.
type ProfileService struct {
	UpdateProfileFn func(ctx context.Context, upd medichat.ProfileUpdate) error
}

// UpdateProfile delegates to UpdateProfileFn.
func (s *ProfileService) UpdateProfile(ctx context.Context, upd medichat.ProfileUpdate) error {
	return s.UpdateProfileFn(ctx, upd)
}

// UserService is a test double for medichat.UserService.
type UserService struct {
	ListUsersFn  func(ctx context.Context) ([]medichat.User, error)
	UpdateUserFn func(ctx context.Context, username string, upd medichat.UserUpdate) error
	DeleteUserFn func(ctx context.Context, username string) error
}

// ListUsers delegates to ListUsersFn.
func (s *UserService) ListUsers(ctx context.Context) ([]medichat.User, error) {
	return s.ListUsersFn(ctx)
}

// UpdateUser delegates to UpdateUserFn.
func (s *UserService) UpdateUser(ctx context.Context, username string, upd medichat.UserUpdate) error {
	return s.UpdateUserFn(ctx, username, upd)
}

// DeleteUser delegates to DeleteUserFn.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	return s.DeleteUserFn(ctx, username)
}

// AuthStore is a test double for medichat.AuthStore.
type AuthStore struct {
	LoadFn  func() (medichat.Identity, error)
	SaveFn  func(medichat.Identity) error
	ClearFn func() error
}

// Load delegates to LoadFn.
func (s *AuthStore) Load() (medichat.Identity, error) {
	return s.LoadFn()
}

// Save delegates to SaveFn.
func (s *AuthStore) Save(id medichat.Identity) error {
	return s.SaveFn(id)
}

// Clear delegates to ClearFn.
func (s *AuthStore) Clear() error {
	return s.ClearFn()
}

// MemoryStore is an in-memory medichat.AuthStore.
type MemoryStore struct {
	Identity medichat.Identity
}

// Load returns the stored identity.
func (s *MemoryStore) Load() (medichat.Identity, error) { return s.Identity, nil }

// Save replaces the stored identity.
func (s *MemoryStore) Save(id medichat.Identity) error {
	s.Identity = id
	return nil
}

// Clear resets the stored identity.
func (s *MemoryStore) Clear() error {
	s.Identity = medichat.Identity{}
	return nil
}
