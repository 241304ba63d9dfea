package matching

import (
	"encoding/base64"

	"github.com/golang-jwt/jwt/v5"
)

// Authorization schemes compared by the auth matchers. Comparison is exact.
const (
	SchemeBasic  = "Basic"
	SchemeBearer = "Bearer"
)

// BasicParameter returns the Authorization parameter for basic auth:
// base64 of "username:password".
func BasicParameter(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// MatchBasicAuth requires the exact Basic scheme and encoded credentials.
func MatchBasicAuth(scheme, param, username, password string) bool {
	return scheme == SchemeBasic && param == BasicParameter(username, password)
}

// MatchBearerToken requires the exact Bearer scheme and token.
func MatchBearerToken(scheme, param, token string) bool {
	return scheme == SchemeBearer && param == token
}

// MatchBearerClaims parses the bearer parameter as a JWT without verifying
// its signature and requires every expected claim to be present with an
// equal value. Non-JWT tokens never match.
func MatchBearerClaims(scheme, param string, expected map[string]any) bool {
	if scheme != SchemeBearer || param == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(param, claims); err != nil {
		return false
	}

	for name, want := range expected {
		got, ok := claims[name]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}
