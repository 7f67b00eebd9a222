package catalog

// HotelPatch is a partial update to a hotel's self-service fields. Nil
// means unchanged.
type HotelPatch struct {
	Name             *string `json:"name,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	Description      *string `json:"description,omitempty"`
	RoomTypesText    *string `json:"roomTypesText,omitempty"`
	AmenitiesText    *string `json:"amenitiesText,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Email            *string `json:"email,omitempty"`
	Website          *string `json:"website,omitempty"`
	BookingURL       *string `json:"bookingUrl,omitempty"`
	PriceFrom        *string `json:"priceFrom,omitempty"`
	PriceTo          *string `json:"priceTo,omitempty"`
}

// Apply copies the set fields onto the hotel.
func (p *HotelPatch) Apply(h *Hotel) {
	setString(&h.Name, p.Name)
	setString(&h.ShortDescription, p.ShortDescription)
	setString(&h.Description, p.Description)
	setString(&h.RoomTypesText, p.RoomTypesText)
	setString(&h.AmenitiesText, p.AmenitiesText)
	setString(&h.Phone, p.Phone)
	setString(&h.Email, p.Email)
	setString(&h.Website, p.Website)
	setString(&h.BookingURL, p.BookingURL)
	setString(&h.PriceFrom, p.PriceFrom)
	setString(&h.PriceTo, p.PriceTo)
}

// RestaurantPatch is a partial update to a restaurant's self-service
// fields. Nil means unchanged.
type RestaurantPatch struct {
	Name             *string `json:"name,omitempty"`
	CuisineType      *string `json:"cuisineType,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	Description      *string `json:"description,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Email            *string `json:"email,omitempty"`
	Website          *string `json:"website,omitempty"`
	MenuURL          *string `json:"menuUrl,omitempty"`
	ReservationURL   *string `json:"reservationUrl,omitempty"`
	VegetarianOpts   *bool   `json:"vegetarianOptions,omitempty"`
	VeganOpts        *bool   `json:"veganOptions,omitempty"`
}

// Apply copies the set fields onto the restaurant.
func (p *RestaurantPatch) Apply(r *Restaurant) {
	setString(&r.Name, p.Name)
	setString(&r.CuisineType, p.CuisineType)
	setString(&r.ShortDescription, p.ShortDescription)
	setString(&r.Description, p.Description)
	setString(&r.Phone, p.Phone)
	setString(&r.Email, p.Email)
	setString(&r.Website, p.Website)
	setString(&r.MenuURL, p.MenuURL)
	setString(&r.ReservationURL, p.ReservationURL)
	setBool(&r.VegetarianOpts, p.VegetarianOpts)
	setBool(&r.VeganOpts, p.VeganOpts)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
