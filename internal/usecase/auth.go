package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/ErlanBelekov/goals-api/internal/email"
	"github.com/ErlanBelekov/goals-api/internal/metrics"
	"github.com/ErlanBelekov/goals-api/internal/repository"
	"github.com/ErlanBelekov/goals-api/internal/token"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

type TokenService interface {
	Issue(userID string) (string, error)
	Validate(raw string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenService
	mail   email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher PasswordHasher, tokens TokenService, mail email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mail:   mail,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type SignInInput struct {
	Email    string
	Password string
}

// SignedUser is the sign-in result. It never carries the password or its hash.
type SignedUser struct {
	ID    string
	Name  string
	Email string
	Token string
}

// SignUp validates the registration, hashes the password, and stores the
// user. The email pre-check only gives a clean error in the common case; the
// unique index on users.email is what actually prevents duplicates, and the
// store reports a lost race as ErrEmailTaken.
func (u *AuthUsecase) SignUp(ctx context.Context, input SignUpInput) (err error) {
	defer func() { observe("sign_up", err) }()

	draft, err := domain.NewDraftUser(input.Name, input.Email, input.Password, input.Phone)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRequestValidation, err)
	}

	hash, err := u.hashPassword(draft.Password())
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrHashPassword, err)
	}

	user, err := draft.WithPasswordHash(hash)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrHashPassword, err)
	}

	_, err = u.users.FindByEmail(ctx, user.Email())
	switch {
	case err == nil:
		return domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("%w: find user by email: %w", domain.ErrDatabase, err)
	}

	if err = u.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("%w: create user: %w", domain.ErrDatabase, err)
	}

	u.sendWelcome(ctx, user)
	return nil
}

// hashPassword hashes and immediately verifies the result so a broken
// primitive is caught before unusable credentials are persisted.
func (u *AuthUsecase) hashPassword(plain string) (string, error) {
	start := time.Now()
	hash, err := u.hasher.Hash(plain)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	ok, err := u.hasher.Verify(plain, hash)
	if err != nil {
		return "", fmt.Errorf("verify fresh hash: %w", err)
	}
	if !ok {
		return "", errors.New("the hash produced did not match the password provided")
	}
	return hash, nil
}

func (u *AuthUsecase) sendWelcome(ctx context.Context, user *domain.PendingUser) {
	subject, body := email.Welcome(user.Name())
	if err := u.mail.Send(ctx, user.Email(), subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome mail not sent", "error", err)
	}
}

// SignIn checks the credentials against the stored hash and issues a token.
// A malformed stored hash and a wrong password both yield ErrPasswordMismatch.
func (u *AuthUsecase) SignIn(ctx context.Context, input SignInInput) (_ *SignedUser, err error) {
	defer func() { observe("sign_in", err) }()

	creds, err := domain.NewCredentials(input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	user, err := u.users.FindByEmail(ctx, creds.Email())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		return nil, fmt.Errorf("%w: find user by email: %w", domain.ErrDatabase, err)
	}

	ok, err := u.hasher.Verify(creds.Password(), user.PasswordHash())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPasswordMismatch, err)
	}
	if !ok {
		return nil, domain.ErrPasswordMismatch
	}

	signed, err := u.tokens.Issue(user.ID())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerateToken, err)
	}

	return &SignedUser{
		ID:    user.ID(),
		Name:  user.Name(),
		Email: user.Email(),
		Token: signed,
	}, nil
}

// VerifyToken succeeds when the token is valid and its subject still exists.
func (u *AuthUsecase) VerifyToken(ctx context.Context, raw string) (err error) {
	defer func() { observe("verify_token", err) }()

	userID, err := u.tokens.Validate(raw)
	if err != nil {
		u.logger.InfoContext(ctx, "token rejected", "cause", token.Cause(err), "error", err)
		return fmt.Errorf("%w: %w", domain.ErrDecodeToken, err)
	}
	if err = domain.ValidateID(userID); err != nil {
		u.logger.InfoContext(ctx, "token rejected", "cause", "subject", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrDecodeToken, err)
	}

	if _, err = u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("find user by id: %w", err)
		}
		return fmt.Errorf("%w: find user by id: %w", domain.ErrDatabase, err)
	}
	return nil
}

func observe(flow string, err error) {
	metrics.AuthOutcomes.WithLabelValues(flow, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrRequestValidation), errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrDecodeToken):
		return "invalid_token"
	default:
		return "internal"
	}
}
