package request

import (
	"encoding/base64"
	"fmt"
)

// AuthorizationHeader is the header the auth options set.
const AuthorizationHeader = "Authorization"

// BearerToken returns the Authorization value for a bearer token (JWT, API token).
func BearerToken(token string) string {
	return "Bearer " + token
}

// BasicCredentials returns the Authorization value for HTTP Basic auth,
// base64 encoding "username:password".
func BasicCredentials(username, password string) string {
	credentials := fmt.Sprintf("%s:%s", username, password)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// WithBearerAuth sets the Authorization header to a bearer token.
func WithBearerAuth(token string) Option {
	return WithHeader(AuthorizationHeader, BearerToken(token))
}

// WithBasicAuth sets the Authorization header to Basic credentials.
func WithBasicAuth(username, password string) Option {
	return WithHeader(AuthorizationHeader, BasicCredentials(username, password))
}
