// Package auth implements session establishment and provider account
// administration. Tokens are stateless, but identity reconstruction joins
// against the live provider record so deactivation always wins over an
// unexpired token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/provider"
	"github.com/Smartstaychur/smartstaychur-website/internal/usecase/authz"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// Service handles login, token verification and provider administration.
type Service struct {
	providers ProviderStore
	secret    []byte
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates an auth service. ttl is the session token validity window.
func New(providers ProviderStore, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		providers: providers,
		secret:    []byte(secret),
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Login exchanges username and password for an identity and a signed
// session token. Unknown users, wrong passwords and deactivated accounts
// all surface as ErrUnauthenticated without distinguishing detail.
func (s *Service) Login(ctx context.Context, username, password string) (*identity.Identity, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.NewFieldError("username", "Benutzername und Passwort sind erforderlich.")
	}

	acct, err := s.providers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthenticated
		}
		return nil, "", err
	}
	if !acct.IsActive {
		return nil, "", domain.ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	if err := s.providers.TouchLastSignedIn(ctx, acct.ID); err != nil {
		s.logger.Warn("failed to record last sign-in", zap.Int64("provider_id", acct.ID), zap.Error(err))
	}

	token, err := mintToken(s.secret, &acct, s.ttl, s.now())
	if err != nil {
		return nil, "", err
	}
	return acct.Identity(), token, nil
}

// IdentityFromToken reconstructs the caller identity for a request. The
// token proves who the caller was at issue time; role, linked ids and the
// active flag are re-read from the store, so a deactivated provider is
// rejected even with a valid, unexpired token.
func (s *Service) IdentityFromToken(ctx context.Context, raw string) (*identity.Identity, error) {
	if raw == "" {
		return nil, domain.ErrUnauthenticated
	}
	_, accountID, err := parseToken(s.secret, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	acct, err := s.providers.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !acct.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return acct.Identity(), nil
}

// ChangePassword sets a new password for the caller. When the account
// already has a password, the current one must verify first.
func (s *Service) ChangePassword(ctx context.Context, caller *identity.Identity, currentPassword, newPassword string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewFieldError("newPassword",
			"Neues Passwort muss mindestens 6 Zeichen lang sein.")
	}

	acct, err := s.providers.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if acct.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(currentPassword)) != nil {
			return domain.NewFieldError("currentPassword", "Aktuelles Passwort ist falsch.")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.providers.UpdatePassword(ctx, acct.ID, string(hash))
}

// NewProviderInput is the admin-supplied account creation payload.
type NewProviderInput struct {
	Username           string
	Password           string
	DisplayName        string
	Email              string
	Role               identity.Role
	LinkedHotelID      *int64
	LinkedRestaurantID *int64
}

// CreateProvider creates a provider account. Admin only.
func (s *Service) CreateProvider(ctx context.Context, caller *identity.Identity, in NewProviderInput) (int64, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.ManageProviders})
	if err := authz.DecisionError(decision); err != nil {
		return 0, err
	}

	if in.Username == "" || in.Password == "" || in.DisplayName == "" {
		return 0, domain.NewFieldError("username",
			"Benutzername, Passwort und Name sind erforderlich.")
	}
	if !in.Role.IsValid() {
		return 0, domain.NewFieldError("role",
			"Ungültige Rolle. Erlaubt: hotelier, gastronom, admin.")
	}
	if len(in.Password) < minPasswordLength {
		return 0, domain.NewFieldError("password",
			"Passwort muss mindestens 6 Zeichen lang sein.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	acct := provider.Account{
		PublicID:     "pwd_" + uuid.NewString(),
		Username:     in.Username,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Email:        in.Email,
		Role:         in.Role,
		IsActive:     true,
		LastSignedIn: s.now(),
	}
	switch in.Role {
	case identity.RoleHotelier:
		acct.LinkedHotelID = in.LinkedHotelID
	case identity.RoleGastronom:
		acct.LinkedRestaurantID = in.LinkedRestaurantID
	}

	id, err := s.providers.Create(ctx, acct)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return 0, domain.NewFieldError("username", "Benutzername bereits vergeben.")
		}
		return 0, err
	}
	return id, nil
}

// ListProviders returns all provider accounts. Admin only.
func (s *Service) ListProviders(ctx context.Context, caller *identity.Identity) ([]provider.Account, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.ManageProviders})
	if err := authz.DecisionError(decision); err != nil {
		return nil, err
	}
	return s.providers.List(ctx)
}

// SetProviderActive toggles an account's active flag. Admin only.
// Deactivation takes effect on the provider's next request, not just the
// next login, because identity reconstruction re-reads the flag.
func (s *Service) SetProviderActive(ctx context.Context, caller *identity.Identity, id int64, active bool) error {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.ManageProviders})
	if err := authz.DecisionError(decision); err != nil {
		return err
	}
	return s.providers.SetActive(ctx, id, active)
}
