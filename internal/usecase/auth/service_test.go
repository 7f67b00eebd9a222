package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/provider"
)

// --- Mocks ---

type mockProviders struct {
	accounts map[int64]provider.Account
	byName   map[string]int64

	createErr     error
	created       []provider.Account
	touchErr      error
	touched       []int64
	passwordSet   map[int64]string
	activeToggled map[int64]bool
}

func newMockProviders(accounts ...provider.Account) *mockProviders {
	m := &mockProviders{
		accounts:      map[int64]provider.Account{},
		byName:        map[string]int64{},
		passwordSet:   map[int64]string{},
		activeToggled: map[int64]bool{},
	}
	for _, a := range accounts {
		m.accounts[a.ID] = a
		m.byName[a.Username] = a.ID
	}
	return m
}

func (m *mockProviders) Create(_ context.Context, acct provider.Account) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	if _, exists := m.byName[acct.Username]; exists {
		return 0, domain.ErrAlreadyExists
	}
	id := int64(len(m.accounts) + 1)
	acct.ID = id
	m.accounts[id] = acct
	m.byName[acct.Username] = id
	m.created = append(m.created, acct)
	return id, nil
}

func (m *mockProviders) GetByID(_ context.Context, id int64) (provider.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return provider.Account{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockProviders) GetByUsername(_ context.Context, username string) (provider.Account, error) {
	id, ok := m.byName[username]
	if !ok {
		return provider.Account{}, domain.ErrNotFound
	}
	return m.accounts[id], nil
}

func (m *mockProviders) List(_ context.Context) ([]provider.Account, error) {
	out := make([]provider.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockProviders) SetActive(_ context.Context, id int64, active bool) error {
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsActive = active
	m.accounts[id] = a
	m.activeToggled[id] = active
	return nil
}

func (m *mockProviders) UpdatePassword(_ context.Context, id int64, hash string) error {
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	m.accounts[id] = a
	m.passwordSet[id] = hash
	return nil
}

func (m *mockProviders) TouchLastSignedIn(_ context.Context, id int64) error {
	if m.touchErr != nil {
		return m.touchErr
	}
	m.touched = append(m.touched, id)
	return nil
}

// --- Fixtures ---

const testSecret = "test-secret"

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func hotelierAccount(t *testing.T) provider.Account {
	t.Helper()
	hotelID := int64(7)
	return provider.Account{
		ID:            2,
		PublicID:      "pwd_h1",
		Username:      "hotel-alpenblick",
		PasswordHash:  mustHash(t, "correct-horse"),
		DisplayName:   "Hotel Alpenblick",
		Role:          identity.RoleHotelier,
		LinkedHotelID: &hotelID,
		IsActive:      true,
	}
}

func newService(t *testing.T, providers *mockProviders) *Service {
	t.Helper()
	return New(providers, testSecret, 7*24*time.Hour, zap.NewNop())
}

// --- Tests ---

func TestLogin_Success(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	caller, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if caller.Role != identity.RoleHotelier {
		t.Errorf("expected hotelier, got %s", caller.Role)
	}
	if caller.LinkedHotelID == nil || *caller.LinkedHotelID != 7 {
		t.Errorf("expected linked hotel 7, got %v", caller.LinkedHotelID)
	}
	if caller.LinkedRestaurantID != nil {
		t.Error("hotelier must not carry a linked restaurant id")
	}
	if len(providers.touched) != 1 || providers.touched[0] != 2 {
		t.Errorf("expected last sign-in touch for account 2, got %v", providers.touched)
	}
}

func TestLogin_FailuresAreUniform(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	inactive := hotelierAccount(t)
	inactive.ID = 5
	inactive.Username = "closed-hotel"
	inactive.IsActive = false
	providers.accounts[5] = inactive
	providers.byName["closed-hotel"] = 5

	svc := newService(t, providers)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "whatever"},
		{"wrong password", "hotel-alpenblick", "wrong"},
		{"deactivated account", "closed-hotel", "correct-horse"},
	}
	for _, tt := range tests {
		_, _, err := svc.Login(context.Background(), tt.username, tt.password)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("%s: expected ErrUnauthenticated, got %v", tt.name, err)
		}
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newService(t, newMockProviders())

	_, _, err := svc.Login(context.Background(), "", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLogin_TouchFailureDoesNotBlock(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	providers.touchErr = errors.New("write failed")
	svc := newService(t, providers)

	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token despite failed touch")
	}
}

func TestIdentityFromToken_RoundTrip(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	caller, err := svc.IdentityFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller.ID != 2 || caller.Role != identity.RoleHotelier {
		t.Errorf("unexpected identity %+v", caller)
	}
	if caller.LinkedHotelID == nil || *caller.LinkedHotelID != 7 {
		t.Errorf("expected linked hotel 7, got %v", caller.LinkedHotelID)
	}
}

func TestIdentityFromToken_DeactivationWins(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Deactivate after the token was issued. The token itself is still
	// valid and unexpired; identity reconstruction must reject anyway.
	if err := providers.SetActive(context.Background(), 2, false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	_, err = svc.IdentityFromToken(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIdentityFromToken_LiveLinkedIDBeatsSnapshot(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Relink the account to another hotel after issuing the token.
	acct := providers.accounts[2]
	newHotel := int64(9)
	acct.LinkedHotelID = &newHotel
	providers.accounts[2] = acct

	caller, err := svc.IdentityFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller.LinkedHotelID == nil || *caller.LinkedHotelID != 9 {
		t.Errorf("expected live linked hotel 9, got %v", caller.LinkedHotelID)
	}
}

func TestIdentityFromToken_ExpiredToken(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers).WithClock(func() time.Time {
		return time.Now().Add(-8 * 24 * time.Hour)
	})

	// Issued 8 days ago with a 7 day TTL.
	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.IdentityFromToken(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIdentityFromToken_TamperedToken(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	_, token, err := svc.Login(context.Background(), "hotel-alpenblick", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := New(providers, "other-secret", 7*24*time.Hour, zap.NewNop())
	if _, err := other.IdentityFromToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("wrong secret: expected ErrUnauthenticated, got %v", err)
	}

	if _, err := svc.IdentityFromToken(context.Background(), token+"x"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("mangled token: expected ErrUnauthenticated, got %v", err)
	}

	if _, err := svc.IdentityFromToken(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("empty token: expected ErrUnauthenticated, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)
	callerAcct := providers.accounts[2]
	caller := callerAcct.Identity()

	err := svc.ChangePassword(context.Background(), caller, "correct-horse", "new-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash, ok := providers.passwordSet[2]
	if !ok {
		t.Fatal("expected password update")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) != nil {
		t.Error("stored hash does not verify the new password")
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)
	callerAcct := providers.accounts[2]
	caller := callerAcct.Identity()

	err := svc.ChangePassword(context.Background(), caller, "wrong", "new-password")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestChangePassword_TooShort(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)
	callerAcct := providers.accounts[2]
	caller := callerAcct.Identity()

	err := svc.ChangePassword(context.Background(), caller, "correct-horse", "abc")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestChangePassword_Anonymous(t *testing.T) {
	svc := newService(t, newMockProviders())

	err := svc.ChangePassword(context.Background(), nil, "", "new-password")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCreateProvider_AdminOnly(t *testing.T) {
	providers := newMockProviders()
	svc := newService(t, providers)

	admin := identity.NewAdmin(1, "admin", "Admin")
	hotelID := int64(7)

	id, err := svc.CreateProvider(context.Background(), admin, NewProviderInput{
		Username:      "new-hotel",
		Password:      "long-enough",
		DisplayName:   "New Hotel",
		Role:          identity.RoleHotelier,
		LinkedHotelID: &hotelID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a new account id")
	}

	created := providers.created[0]
	if created.PasswordHash == "long-enough" {
		t.Error("password must be stored hashed")
	}
	if !created.IsActive {
		t.Error("new accounts start active")
	}
	if created.LinkedHotelID == nil || *created.LinkedHotelID != 7 {
		t.Errorf("expected linked hotel 7, got %v", created.LinkedHotelID)
	}

	hotelier := identity.NewHotelier(2, "h1", "H", 7)
	_, err = svc.CreateProvider(context.Background(), hotelier, NewProviderInput{
		Username: "x", Password: "long-enough", DisplayName: "X", Role: identity.RoleHotelier,
	})
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("non-admin: expected ErrNotOwner, got %v", err)
	}
}

func TestCreateProvider_Validation(t *testing.T) {
	svc := newService(t, newMockProviders(hotelierAccount(t)))
	admin := identity.NewAdmin(1, "admin", "Admin")

	tests := []struct {
		name string
		in   NewProviderInput
	}{
		{"missing fields", NewProviderInput{Username: "u"}},
		{"bad role", NewProviderInput{
			Username: "u", Password: "long-enough", DisplayName: "U", Role: identity.Role("boss"),
		}},
		{"short password", NewProviderInput{
			Username: "u", Password: "abc", DisplayName: "U", Role: identity.RoleHotelier,
		}},
		{"duplicate username", NewProviderInput{
			Username: "hotel-alpenblick", Password: "long-enough",
			DisplayName: "Dup", Role: identity.RoleHotelier,
		}},
	}
	for _, tt := range tests {
		_, err := svc.CreateProvider(context.Background(), admin, tt.in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
		}
	}
}

func TestCreateProvider_CrossRoleLinkDropped(t *testing.T) {
	providers := newMockProviders()
	svc := newService(t, providers)
	admin := identity.NewAdmin(1, "admin", "Admin")

	hotelID := int64(7)
	restID := int64(3)
	_, err := svc.CreateProvider(context.Background(), admin, NewProviderInput{
		Username:           "gastro",
		Password:           "long-enough",
		DisplayName:        "Gastro",
		Role:               identity.RoleGastronom,
		LinkedHotelID:      &hotelID,
		LinkedRestaurantID: &restID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := providers.created[0]
	if created.LinkedHotelID != nil {
		t.Error("gastronom must not carry a linked hotel id")
	}
	if created.LinkedRestaurantID == nil || *created.LinkedRestaurantID != 3 {
		t.Errorf("expected linked restaurant 3, got %v", created.LinkedRestaurantID)
	}
}

func TestSetProviderActive_AdminOnly(t *testing.T) {
	providers := newMockProviders(hotelierAccount(t))
	svc := newService(t, providers)

	admin := identity.NewAdmin(1, "admin", "Admin")
	if err := svc.SetProviderActive(context.Background(), admin, 2, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active, ok := providers.activeToggled[2]; !ok || active {
		t.Error("expected account 2 deactivated")
	}

	hotelierAcct := providers.accounts[2]
	hotelier := hotelierAcct.Identity()
	if err := svc.SetProviderActive(context.Background(), hotelier, 2, true); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("non-admin: expected ErrNotOwner, got %v", err)
	}
}
