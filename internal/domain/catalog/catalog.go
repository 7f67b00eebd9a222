// Package catalog holds the directory record types: hotels, restaurants,
// daily specials and experiences. Records are read by the search engine
// and written by the provider admin surface; the engine itself never
// mutates them.
package catalog

import (
	"strings"
	"time"
)

// ExperienceCategory is the closed category set for experiences.
type ExperienceCategory string

const (
	CategoryTour      ExperienceCategory = "tour"
	CategoryHiking    ExperienceCategory = "hiking"
	CategoryCulture   ExperienceCategory = "culture"
	CategorySport     ExperienceCategory = "sport"
	CategoryWellness  ExperienceCategory = "wellness"
	CategoryFamily    ExperienceCategory = "family"
	CategoryAdventure ExperienceCategory = "adventure"
	CategoryFoodWine  ExperienceCategory = "food_wine"
)

// IsValid checks if the category is one of the known values.
func (c ExperienceCategory) IsValid() bool {
	switch c {
	case CategoryTour, CategoryHiking, CategoryCulture, CategorySport,
		CategoryWellness, CategoryFamily, CategoryAdventure, CategoryFoodWine:
		return true
	}
	return false
}

// Hotel is an accommodation record.
type Hotel struct {
	ID               int64     `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Stars            int       `json:"stars,omitempty"` // 0 = unrated
	Address          string    `json:"address,omitempty"`
	PostalCode       string    `json:"postalCode,omitempty"`
	City             string    `json:"city,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Website          string    `json:"website,omitempty"`
	BookingURL       string    `json:"bookingUrl,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	RoomTypesText    string    `json:"roomTypesText,omitempty"`
	AmenitiesText    string    `json:"amenitiesText,omitempty"`
	PriceFrom        string    `json:"priceFrom,omitempty"`
	PriceTo          string    `json:"priceTo,omitempty"`
	WifiFree         bool      `json:"wifiFree"`
	ParkingFree      bool      `json:"parkingFree"`
	ParkingPaid      bool      `json:"parkingPaid"`
	BreakfastIncl    bool      `json:"breakfastIncluded"`
	PetsAllowed      bool      `json:"petsAllowed"`
	FamilyFriendly   bool      `json:"familyFriendly"`
	Wheelchair       bool      `json:"wheelchairAccessible"`
	Balcony          bool      `json:"balcony"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Parking reports whether the hotel offers any parking, free or paid.
func (h *Hotel) Parking() bool { return h.ParkingFree || h.ParkingPaid }

// Haystack returns the lower-cased free-text blob used for substring matching.
func (h *Hotel) Haystack() string {
	return haystack(h.Name, h.ShortDescription, h.Description, h.RoomTypesText, h.AmenitiesText)
}

// Path returns the navigable public path for the hotel.
func (h *Hotel) Path() string { return "/hotels/" + h.Slug }

// Restaurant is a gastronomy record.
type Restaurant struct {
	ID               int64     `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	CuisineType      string    `json:"cuisineType,omitempty"`
	Address          string    `json:"address,omitempty"`
	PostalCode       string    `json:"postalCode,omitempty"`
	City             string    `json:"city,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Website          string    `json:"website,omitempty"`
	MenuURL          string    `json:"menuUrl,omitempty"`
	ReservationURL   string    `json:"reservationUrl,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	VegetarianOpts   bool      `json:"vegetarianOptions"`
	VeganOpts        bool      `json:"veganOptions"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Haystack returns the lower-cased free-text blob used for substring matching.
func (r *Restaurant) Haystack() string {
	return haystack(r.Name, r.ShortDescription, r.Description, r.CuisineType)
}

// Path returns the navigable public path for the restaurant.
func (r *Restaurant) Path() string { return "/restaurants/" + r.Slug }

// DailySpecial is a time-limited dish offered by a restaurant. Restaurant
// name and slug are denormalized at creation so todays-specials listings
// need no join.
type DailySpecial struct {
	ID             int64     `json:"id"`
	RestaurantID   int64     `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	RestaurantSlug string    `json:"restaurantSlug"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Price          string    `json:"price"`
	IsVegetarian   bool      `json:"isVegetarian"`
	IsVegan        bool      `json:"isVegan"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Haystack returns the lower-cased free-text blob used for substring matching.
func (d *DailySpecial) Haystack() string {
	return haystack(d.Name, d.Description)
}

// Path returns the navigable public path, which points at the restaurant
// serving the special.
func (d *DailySpecial) Path() string { return "/restaurants/" + d.RestaurantSlug }

// Experience is a bookable activity record.
type Experience struct {
	ID               int64              `json:"id"`
	Slug             string             `json:"slug"`
	Name             string             `json:"name"`
	Category         ExperienceCategory `json:"category"`
	ShortDescription string             `json:"shortDescription,omitempty"`
	Description      string             `json:"description,omitempty"`
	Duration         string             `json:"duration,omitempty"`
	Location         string             `json:"location,omitempty"`
	PriceAdult       string             `json:"priceAdult,omitempty"`
	IsPublished      bool               `json:"isPublished"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// Haystack returns the lower-cased free-text blob used for substring matching.
func (e *Experience) Haystack() string {
	return haystack(e.Name, e.ShortDescription, e.Description, string(e.Category))
}

// Path returns the navigable public path for the experience.
func (e *Experience) Path() string { return "/erlebnisse/" + e.Slug }

// haystack joins free-text fields with single spaces and lower-cases the
// result. Empty fields still contribute a separator.
func haystack(fields ...string) string {
	return strings.ToLower(strings.Join(fields, " "))
}
