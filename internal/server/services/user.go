// Package services contains server-side business logic. This file implements
// UserService: registration, login with token issuance, and the user listing
// behind the access guard.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword is replaced in tests.
var hashPassword = bcrypt.GenerateFromPassword

// UserService provides authentication-related operations:
// - Register: validate and create users
// - Login: verify credentials and mint a session token
// - ListEmails: list every stored email
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	jwtSecret    []byte
	tokenTTL     time.Duration
	bcryptCost   int
	storeTimeout time.Duration
	logger       logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		jwtSecret:    []byte(cfg.SecretKey),
		tokenTTL:     cfg.TokenValidityDuration,
		bcryptCost:   cfg.BcryptCost,
		storeTimeout: cfg.StoreTimeout,
		logger:       logger.With("module", "users"),
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Register creates a new user. Any non-empty email is accepted as given.
// The password is hashed before the store is touched; the lookup and the
// insert share one transaction and the unique constraint on email covers
// concurrent signups.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := (credentials{Email: email, Password: password}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	hash, err := hashPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password: %v", common.ErrInvalidInput, err)
		}
		s.logger.Error(ctx, "hash password failed", "error", err)
		return nil, common.ErrInternal
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrEmailTaken
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		user, err = repo.Create(ctx, email, string(hash))
		return err
	})
	if err != nil {
		return nil, s.failure(ctx, "register", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and returns a signed session token.
// Unknown email, wrong password and empty fields all yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).FindByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.burnCompare(password)
			return "", common.ErrInvalidCredentials
		}
		return "", s.failure(ctx, "login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrInternal
	}
	return token, nil
}

// ListEmails returns every stored email in insertion order.
func (s *UserService) ListEmails(ctx context.Context) ([]string, error) {
	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	emails, err := s.repomanager.Users(s.db).ListEmails(sctx)
	if err != nil {
		return nil, s.failure(ctx, "list users", err)
	}
	return emails, nil
}

// --- helpers below ---

func (s *UserService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// failure passes domain errors through and turns everything else into
// ErrStoreUnavailable, keeping the detail in the server log.
func (s *UserService) failure(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrEmailTaken), errors.Is(err, common.ErrInvalidInput):
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrStoreUnavailable
}

// burnCompare spends one bcrypt comparison so an unknown email costs
// about as much as a wrong password.
func (s *UserService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gophauth"), s.bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}
