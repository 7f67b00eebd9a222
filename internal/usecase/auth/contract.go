package auth

import (
	"context"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/provider"
)

// ProviderStore is the account storage contract for the auth service.
type ProviderStore interface {
	Create(ctx context.Context, acct provider.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (provider.Account, error)
	GetByUsername(ctx context.Context, username string) (provider.Account, error)
	List(ctx context.Context) ([]provider.Account, error)
	SetActive(ctx context.Context, id int64, active bool) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastSignedIn(ctx context.Context, id int64) error
}
