package search

import (
	"context"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// RecordStore is the read contract the engine pulls candidates through.
// Implementations return only published/active records.
type RecordStore interface {
	ListHotels(ctx context.Context) ([]catalog.Hotel, error)
	ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error)
	ListTodaysDailySpecials(ctx context.Context) ([]catalog.DailySpecial, error)
	ListAllExperiences(ctx context.Context) ([]catalog.Experience, error)
}
