package client

import "context"

type Client interface {
	Close() error
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) error
	ListUsers(ctx context.Context) ([]string, error)
	LoggedIn() bool
}
