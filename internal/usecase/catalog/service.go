// Package catalog gates directory mutations behind the authorization
// guard and exposes the public read surface.
package catalog

import (
	"context"
	"time"

	domcat "github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	"github.com/Smartstaychur/smartstaychur-website/internal/usecase/authz"
)

// Service wraps the record store with authorization checks. Reads are
// public; every write is authorized first and performed only on Allow.
type Service struct {
	store Store
}

// New creates a catalog service.
func New(store Store) *Service {
	return &Service{store: store}
}

// --- Public reads ---

// ListHotels returns all published hotels.
func (s *Service) ListHotels(ctx context.Context) ([]domcat.Hotel, error) {
	return s.store.ListHotels(ctx)
}

// GetHotelBySlug returns one published hotel.
func (s *Service) GetHotelBySlug(ctx context.Context, slug string) (domcat.Hotel, error) {
	return s.store.GetHotelBySlug(ctx, slug)
}

// ListRestaurants returns all published restaurants.
func (s *Service) ListRestaurants(ctx context.Context) ([]domcat.Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

// GetRestaurantBySlug returns one published restaurant.
func (s *Service) GetRestaurantBySlug(ctx context.Context, slug string) (domcat.Restaurant, error) {
	return s.store.GetRestaurantBySlug(ctx, slug)
}

// ListExperiences returns all published experiences.
func (s *Service) ListExperiences(ctx context.Context) ([]domcat.Experience, error) {
	return s.store.ListAllExperiences(ctx)
}

// GetExperienceBySlug returns one published experience.
func (s *Service) GetExperienceBySlug(ctx context.Context, slug string) (domcat.Experience, error) {
	return s.store.GetExperienceBySlug(ctx, slug)
}

// ListTodaysDailySpecials returns today's active specials.
func (s *Service) ListTodaysDailySpecials(ctx context.Context) ([]domcat.DailySpecial, error) {
	return s.store.ListTodaysDailySpecials(ctx)
}

// --- Guarded writes ---

// CreateHotel stores a new hotel. A zero target id means no hotelier can
// be linked to it yet, so the guard admits admins only.
func (s *Service) CreateHotel(ctx context.Context, caller *identity.Identity, h domcat.Hotel) (domcat.Hotel, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.WriteHotel})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.Hotel{}, err
	}
	if h.Slug == "" || h.Name == "" {
		return domcat.Hotel{}, domain.NewFieldError("name", "Name und Slug sind erforderlich.")
	}
	id, err := s.store.CreateHotel(ctx, h)
	if err != nil {
		return domcat.Hotel{}, err
	}
	return s.store.GetHotel(ctx, id)
}

// UpdateHotel patches a hotel after the ownership check.
func (s *Service) UpdateHotel(
	ctx context.Context, caller *identity.Identity, id int64, patch domcat.HotelPatch,
) (domcat.Hotel, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.WriteHotel, TargetID: id})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.Hotel{}, err
	}
	return s.store.UpdateHotel(ctx, id, patch)
}

// CreateRestaurant stores a new restaurant. Admin only, as with hotels.
func (s *Service) CreateRestaurant(
	ctx context.Context, caller *identity.Identity, r domcat.Restaurant,
) (domcat.Restaurant, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.WriteRestaurant})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.Restaurant{}, err
	}
	if r.Slug == "" || r.Name == "" {
		return domcat.Restaurant{}, domain.NewFieldError("name", "Name und Slug sind erforderlich.")
	}
	id, err := s.store.CreateRestaurant(ctx, r)
	if err != nil {
		return domcat.Restaurant{}, err
	}
	return s.store.GetRestaurant(ctx, id)
}

// UpdateRestaurant patches a restaurant after the ownership check.
func (s *Service) UpdateRestaurant(
	ctx context.Context, caller *identity.Identity, id int64, patch domcat.RestaurantPatch,
) (domcat.Restaurant, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.WriteRestaurant, TargetID: id})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.Restaurant{}, err
	}
	return s.store.UpdateRestaurant(ctx, id, patch)
}

// CreateExperience stores a new experience. Admin only.
func (s *Service) CreateExperience(
	ctx context.Context, caller *identity.Identity, e domcat.Experience,
) (domcat.Experience, error) {
	decision := authz.Authorize(caller, identity.Action{Kind: identity.WriteExperience})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.Experience{}, err
	}
	if e.Slug == "" || e.Name == "" {
		return domcat.Experience{}, domain.NewFieldError("name", "Name und Slug sind erforderlich.")
	}
	if !e.Category.IsValid() {
		return domcat.Experience{}, domain.NewFieldError("category", "Ungültige Kategorie.")
	}
	id, err := s.store.CreateExperience(ctx, e)
	if err != nil {
		return domcat.Experience{}, err
	}
	e.ID = id
	return e, nil
}

// NewDailySpecialInput is the provider-supplied special payload.
type NewDailySpecialInput struct {
	RestaurantID int64
	Date         string // YYYY-MM-DD
	Name         string
	Description  string
	Price        string
	IsVegetarian bool
	IsVegan      bool
}

// CreateDailySpecial stores a special for the caller's restaurant. The
// write is authorized against the owning restaurant; restaurant name and
// slug are denormalized onto the record.
func (s *Service) CreateDailySpecial(
	ctx context.Context, caller *identity.Identity, in NewDailySpecialInput,
) (domcat.DailySpecial, error) {
	decision := authz.Authorize(caller,
		identity.Action{Kind: identity.WriteRestaurant, TargetID: in.RestaurantID})
	if err := authz.DecisionError(decision); err != nil {
		return domcat.DailySpecial{}, err
	}

	if in.Name == "" || in.Price == "" {
		return domcat.DailySpecial{}, domain.NewFieldError("name", "Name und Preis sind erforderlich.")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return domcat.DailySpecial{}, domain.NewFieldError("date", "Datum muss das Format JJJJ-MM-TT haben.")
	}

	restaurant, err := s.store.GetRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return domcat.DailySpecial{}, err
	}

	special := domcat.DailySpecial{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		RestaurantSlug: restaurant.Slug,
		Date:           in.Date,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		IsVegetarian:   in.IsVegetarian,
		IsVegan:        in.IsVegan,
		IsActive:       true,
	}
	id, err := s.store.CreateDailySpecial(ctx, special)
	if err != nil {
		return domcat.DailySpecial{}, err
	}
	special.ID = id
	return special, nil
}

// DeleteDailySpecial removes a special after authorizing against the
// restaurant that owns it.
func (s *Service) DeleteDailySpecial(ctx context.Context, caller *identity.Identity, id int64) error {
	special, err := s.store.GetDailySpecial(ctx, id)
	if err != nil {
		return err
	}
	decision := authz.Authorize(caller,
		identity.Action{Kind: identity.WriteRestaurant, TargetID: special.RestaurantID})
	if err := authz.DecisionError(decision); err != nil {
		return err
	}
	return s.store.DeleteDailySpecial(ctx, id)
}
