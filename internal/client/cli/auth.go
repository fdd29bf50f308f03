package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Signup prompts for an email and password and creates an account.
// The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Signup(ctx, email, string(password))
	if err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// token stays inside the API client and the prompt shows the email.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Server unavailable")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.userName = email
	fmt.Fprintln(a.out, common.MessageLoggedIn)
	return nil
}

// Users prints every registered email, one per line.
func (a *App) Users(ctx context.Context) error {
	emails, err := a.api.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, client.ErrForbidden) || errors.Is(err, client.ErrUnauthorized) {
			log.Printf("Session rejected, please login again")
		} else {
			log.Printf("Listing users failed: %s", err.Error())
		}
		return err
	}

	if len(emails) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for _, e := range emails {
		fmt.Fprintln(a.out, e)
	}
	return nil
}
