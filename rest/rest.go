// Package rest implements the medichat service interfaces against the
// MediChat REST API.
//
// Every authenticated call reads the bearer token from the token function at
// request time, so a login or logout is picked up without rebuilding the
// client. Status 401 and 403 surface as *medichat.Error values matching
// medichat.ErrUnauthorized and medichat.ErrForbidden.
package rest

const (
	defaultBaseURL = "http://localhost:8000"

	tokenPath      = "/api/token"
	registerPath   = "/api/register"
	chatPath       = "/api/chat"
	profilePath    = "/api/users/me"
	adminUsersPath = "/api/admin/users"

	requestIDHeader = "X-Request-ID"
)
