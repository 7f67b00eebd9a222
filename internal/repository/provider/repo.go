// Package provider persists tenant accounts with a username lookup index.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Smartstaychur/smartstaychur-website/internal/db"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	domprov "github.com/Smartstaychur/smartstaychur-website/internal/domain/provider"
)

// store is the consumer interface for provider accounts (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Incr(ctx context.Context, key string) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the provider account store.
type Repo struct {
	store store
	now   func() time.Time
}

// New creates a provider repository.
func New(s store) *Repo {
	return &Repo{store: s, now: time.Now}
}

// WithClock overrides the time source (tests).
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

func accountKey(id int64) string { return "smartstay:provider:" + strconv.FormatInt(id, 10) }

func usernameKey(username string) string {
	return "smartstay:provider:username:" + strings.ToLower(username)
}

const (
	indexKey = "smartstay:provider:ids"
	seqKey   = "smartstay:seq:provider"
)

func (r *Repo) load(ctx context.Context, key string, dst *domprov.Account) error {
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("json.get %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	// JSON.GET with a $ path returns a one-element array.
	if len(raw) > 0 && raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if len(items) == 0 {
			return domain.ErrNotFound
		}
		raw = items[0]
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repo) save(ctx context.Context, acct *domprov.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal provider %d: %w", acct.ID, err)
	}
	key := accountKey(acct.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Create stores a new account. Usernames are unique case-insensitively.
func (r *Repo) Create(ctx context.Context, acct domprov.Account) (int64, error) {
	if _, err := r.store.Get(ctx, usernameKey(acct.Username)); err == nil {
		return 0, fmt.Errorf("username %q: %w", acct.Username, domain.ErrAlreadyExists)
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return 0, fmt.Errorf("check username %q: %w: %w", acct.Username, domain.ErrStoreUnavailable, err)
	}

	id, err := r.store.Incr(ctx, seqKey)
	if err != nil {
		return 0, fmt.Errorf("next provider id: %w: %w", domain.ErrStoreUnavailable, err)
	}
	acct.ID = id
	acct.CreatedAt = r.now()

	if err := r.save(ctx, &acct); err != nil {
		return 0, err
	}
	member := strconv.FormatInt(id, 10)
	if err := r.store.Set(ctx, usernameKey(acct.Username), []byte(member)); err != nil {
		return 0, fmt.Errorf("index username %q: %w: %w", acct.Username, domain.ErrStoreUnavailable, err)
	}
	if err := r.store.SAdd(ctx, indexKey, member); err != nil {
		return 0, fmt.Errorf("index provider %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// GetByID returns one account by id.
func (r *Repo) GetByID(ctx context.Context, id int64) (domprov.Account, error) {
	var acct domprov.Account
	if err := r.load(ctx, accountKey(id), &acct); err != nil {
		return domprov.Account{}, err
	}
	return acct, nil
}

// GetByUsername returns one account by username, case-insensitive.
func (r *Repo) GetByUsername(ctx context.Context, username string) (domprov.Account, error) {
	raw, err := r.store.Get(ctx, usernameKey(username))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprov.Account{}, domain.ErrNotFound
		}
		return domprov.Account{}, fmt.Errorf(
			"resolve username %q: %w: %w", username, domain.ErrStoreUnavailable, err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return domprov.Account{}, fmt.Errorf("resolve username %q: bad id %q", username, raw)
	}
	return r.GetByID(ctx, id)
}

// List returns all accounts ordered by username.
func (r *Repo) List(ctx context.Context) ([]domprov.Account, error) {
	members, err := r.store.SMembers(ctx, indexKey)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w: %w", indexKey, domain.ErrStoreUnavailable, err)
	}
	accounts := make([]domprov.Account, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		acct, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Username < accounts[j].Username })
	return accounts, nil
}

// SetActive toggles an account's active flag.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	acct, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	acct.IsActive = active
	return r.save(ctx, &acct)
}

// UpdatePassword replaces an account's password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	acct, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	acct.PasswordHash = passwordHash
	return r.save(ctx, &acct)
}

// TouchLastSignedIn records a successful login.
func (r *Repo) TouchLastSignedIn(ctx context.Context, id int64) error {
	acct, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	acct.LastSignedIn = r.now()
	return r.save(ctx, &acct)
}
