package catalog

import (
	"context"

	domcat "github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// Store is the record store read/write contract for the catalog service.
// List reads return only published/active records.
type Store interface {
	ListHotels(ctx context.Context) ([]domcat.Hotel, error)
	GetHotel(ctx context.Context, id int64) (domcat.Hotel, error)
	GetHotelBySlug(ctx context.Context, slug string) (domcat.Hotel, error)
	CreateHotel(ctx context.Context, h domcat.Hotel) (int64, error)
	UpdateHotel(ctx context.Context, id int64, patch domcat.HotelPatch) (domcat.Hotel, error)

	ListRestaurants(ctx context.Context) ([]domcat.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (domcat.Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (domcat.Restaurant, error)
	CreateRestaurant(ctx context.Context, r domcat.Restaurant) (int64, error)
	UpdateRestaurant(ctx context.Context, id int64, patch domcat.RestaurantPatch) (domcat.Restaurant, error)

	ListAllExperiences(ctx context.Context) ([]domcat.Experience, error)
	GetExperienceBySlug(ctx context.Context, slug string) (domcat.Experience, error)
	CreateExperience(ctx context.Context, e domcat.Experience) (int64, error)

	ListTodaysDailySpecials(ctx context.Context) ([]domcat.DailySpecial, error)
	GetDailySpecial(ctx context.Context, id int64) (domcat.DailySpecial, error)
	CreateDailySpecial(ctx context.Context, d domcat.DailySpecial) (int64, error)
	DeleteDailySpecial(ctx context.Context, id int64) error
}
