package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/crucial707/inventory/internal/apperr"
	"github.com/crucial707/inventory/internal/models"
	"github.com/crucial707/inventory/internal/repo"
)

const (
	msgRegisterFields     = "Please provide username, email and password"
	msgLoginFields        = "Please provide email and password"
	msgEmailTaken         = "Email already in use"
	msgUsernameTaken      = "Username already taken"
	msgInvalidCredentials = "Invalid email or password"
	msgNotAuthenticated   = "Not authenticated"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// Accounts registers users, signs them in, and resolves bearer tokens to users.
type Accounts struct {
	users  UserStore
	hasher Hasher
	tokens TokenManager
	logger *slog.Logger
	now    func() time.Time
}

func NewAccounts(users UserStore, hasher Hasher, tokens TokenManager, logger *slog.Logger) *Accounts {
	return &Accounts{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a user and returns it with a fresh token. An existing user
// with the same email wins over one with the same username when reporting the conflict.
func (a *Accounts) Register(ctx context.Context, username, email, password string) (models.Session, error) {
	if username == "" || email == "" || password == "" {
		return models.Session{}, apperr.Validation(msgRegisterFields)
	}
	if len(password) > maxPasswordBytes {
		return models.Session{}, apperr.Validation(msgPasswordTooLong)
	}

	existing, err := a.users.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return models.Session{}, a.conflict(existing.Email == email, email, username)
	case !errors.Is(err, repo.ErrNotFound):
		a.logger.Error("failed to check existing user", "email", email, "error", err)
		return models.Session{}, apperr.Internal("check existing user", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return models.Session{}, apperr.Internal("hash password", err)
	}

	user, err := a.users.Create(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		// lost a race against a concurrent registration
		var dup *repo.DuplicateError
		if errors.As(err, &dup) {
			return models.Session{}, a.conflict(dup.Field == "email", email, username)
		}
		a.logger.Error("failed to create user", "email", email, "error", err)
		return models.Session{}, apperr.Internal("create user", err)
	}

	session, err := a.session(user)
	if err != nil {
		return models.Session{}, err
	}
	a.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return session, nil
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (a *Accounts) Login(ctx context.Context, email, password string) (models.Session, error) {
	if email == "" || password == "" {
		return models.Session{}, apperr.Validation(msgLoginFields)
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			a.logger.Warn("sign-in failed", "reason", "unknown email")
			return models.Session{}, apperr.Unauthenticated(msgInvalidCredentials)
		}
		a.logger.Error("failed to load user", "error", err)
		return models.Session{}, apperr.Internal("load user", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Warn("sign-in failed", "reason", "password mismatch", "user_id", user.ID)
		return models.Session{}, apperr.Unauthenticated(msgInvalidCredentials)
	}

	return a.session(user)
}

// Authenticate resolves a bearer token to the current user record. Every call
// reads the store, so a deleted user is rejected even with an unexpired token.
func (a *Accounts) Authenticate(ctx context.Context, token string) (models.User, error) {
	identity, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.Debug("token rejected", "error", err)
		return models.User{}, apperr.Unauthenticated(msgNotAuthenticated)
	}

	user, err := a.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			a.logger.Debug("token subject no longer exists", "user_id", identity.UserID)
			return models.User{}, apperr.Unauthenticated(msgNotAuthenticated)
		}
		return models.User{}, apperr.Internal("load token subject", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (a *Accounts) session(user models.User) (models.Session, error) {
	tok, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.Session{}, apperr.Internal("issue token", err)
	}
	user.PasswordHash = ""
	return models.Session{User: user, Token: tok}, nil
}

func (a *Accounts) conflict(emailMatched bool, email, username string) error {
	if emailMatched {
		a.logger.Warn("registration conflict", "field", "email", "email", email)
		return apperr.Conflict(apperr.CodeEmailTaken, msgEmailTaken)
	}
	a.logger.Warn("registration conflict", "field", "username", "username", username)
	return apperr.Conflict(apperr.CodeUsernameTaken, msgUsernameTaken)
}
