package search

import (
	"strings"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// Searchable is any record exposing a haystack for substring matching.
type Searchable interface {
	Haystack() string
}

// Score computes the additive relevance of one record: base points when
// the normalized query is a substring of the haystack, plus every bonus
// rule whose predicates both hold. An empty query scores zero.
func Score[T Searchable](query string, base int, rec T, rules []Rule[T]) int {
	if query == "" {
		return 0
	}
	score := 0
	if strings.Contains(rec.Haystack(), query) {
		score += base
	}
	for _, r := range rules {
		if r.Applies(query, rec) {
			score += r.Bonus
		}
	}
	return score
}

// HotelResult formats a scored hotel into the public response shape.
func HotelResult(h *catalog.Hotel, relevance int) Result {
	return Result{
		Type:        TypeHotel,
		Name:        h.Name,
		Description: h.ShortDescription,
		URL:         h.Path(),
		Relevance:   relevance,
		Details: map[string]any{
			"stars":      h.Stars,
			"priceFrom":  h.PriceFrom,
			"priceTo":    h.PriceTo,
			"bookingUrl": h.BookingURL,
			"phone":      h.Phone,
		},
	}
}

// RestaurantResult formats a scored restaurant into the public response shape.
func RestaurantResult(r *catalog.Restaurant, relevance int) Result {
	return Result{
		Type:        TypeRestaurant,
		Name:        r.Name,
		Description: r.ShortDescription,
		URL:         r.Path(),
		Relevance:   relevance,
		Details: map[string]any{
			"cuisineType": r.CuisineType,
			"phone":       r.Phone,
			"menuUrl":     r.MenuURL,
		},
	}
}

// SpecialResult formats a scored daily special into the public response shape.
func SpecialResult(d *catalog.DailySpecial, relevance int) Result {
	return Result{
		Type:        TypeDailySpecial,
		Name:        d.Name,
		Description: d.Description + " - CHF " + d.Price,
		URL:         d.Path(),
		Relevance:   relevance,
		Details: map[string]any{
			"price":        d.Price,
			"restaurant":   d.RestaurantName,
			"isVegetarian": d.IsVegetarian,
			"isVegan":      d.IsVegan,
		},
	}
}

// ExperienceResult formats a scored experience into the public response shape.
func ExperienceResult(e *catalog.Experience, relevance int) Result {
	return Result{
		Type:        TypeExperience,
		Name:        e.Name,
		Description: e.ShortDescription,
		URL:         e.Path(),
		Relevance:   relevance,
		Details: map[string]any{
			"category":   e.Category,
			"duration":   e.Duration,
			"priceAdult": e.PriceAdult,
		},
	}
}
