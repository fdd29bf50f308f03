// Package users is the credential store: the users table and the three
// queries the server runs against it.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is the credential store contract.
//
// FindByEmail returns common.ErrNotFound when no row matches. Create reports
// a duplicate email as common.ErrEmailTaken; callers still check first, the
// constraint only backs that check up under concurrent signups.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	ListEmails(ctx context.Context) ([]string, error)
}
