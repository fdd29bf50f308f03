package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrUnauthenticated
	}
	return token, nil
}
