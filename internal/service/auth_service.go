package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockroom/internal/auth"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
	"stockroom/internal/repository"
)

// AuthService handles registration and login. Every successful call
// terminates in a token issuance; the service itself is stateless between
// requests.
type AuthService interface {
	Register(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	GoogleLogin(ctx context.Context, idToken string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	issuer   *auth.TokenIssuer
	google   auth.GoogleTokenVerifier
	// autoProvision controls whether a first Google login creates a user
	// record. When false, unknown Google subjects are rejected.
	autoProvision bool
}

// NewAuthService creates a new authentication service. google may be nil, in
// which case GoogleLogin always rejects.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	issuer *auth.TokenIssuer,
	google auth.GoogleTokenVerifier,
	autoProvision bool,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		hasher:        hasher,
		issuer:        issuer,
		google:        google,
		autoProvision: autoProvision,
	}
}

// Register creates a new user with a hashed password and returns a fresh
// token. The email pre-check and the unique index on users.email both map to
// the same duplicate-account error, so a find-then-create race still yields
// exactly one record.
func (s *authService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.ErrEmailPasswordRequired
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrDuplicateAccount
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check account existence: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: &digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, apperrors.ErrDuplicateAccount
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueFor(user)
}

// Login authenticates a local account. Unknown email and wrong password
// return the same error so the response does not reveal whether the account
// exists. A Google-provisioned account without a password gets a distinct,
// actionable error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if user.PasswordHash == nil {
		return "", nil, apperrors.ErrGoogleAccountOnly
	}

	if !s.hasher.Verify(password, *user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// GoogleLogin verifies a Google ID token and logs the subject in,
// provisioning a user record on first sight when auto-provisioning is on.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (string, *model.User, error) {
	if s.google == nil {
		return "", nil, apperrors.ErrInvalidGoogleToken
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, apperrors.ErrInvalidGoogleToken
	}

	user, err := s.userRepo.FindByGoogleID(ctx, identity.UID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("find user: %w", err)
		}
		if !s.autoProvision {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		user = &model.User{
			Email:    identity.Email,
			GoogleID: &identity.UID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent first login for the same
				// subject; the record exists now.
				if existing, findErr := s.userRepo.FindByGoogleID(ctx, identity.UID); findErr == nil {
					return s.issueFor(existing)
				}
				// The email already belongs to another account (typically a
				// local registration). Records are never relinked here, so
				// this surfaces as a duplicate rather than a server error.
				return "", nil, apperrors.ErrDuplicateAccount
			}
			return "", nil, fmt.Errorf("create user: %w", err)
		}
	}

	return s.issueFor(user)
}

func (s *authService) issueFor(user *model.User) (string, *model.User, error) {
	token, err := s.issuer.Issue(user.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
