package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	domcat "github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// --- Hotels ---

func TestCreateHotel_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateHotel(ctx, domcat.Hotel{
		Slug: "alpenblick", Name: "Hotel Alpenblick", Stars: 3, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("expected id 1, got %d", id)
	}

	h, err := repo.GetHotel(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if h.Name != "Hotel Alpenblick" || h.Stars != 3 {
		t.Errorf("unexpected record %+v", h)
	}
	if !h.CreatedAt.Equal(testClock()) {
		t.Errorf("expected created at %v, got %v", testClock(), h.CreatedAt)
	}
}

func TestCreateHotel_DuplicateSlug(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateHotel(ctx, domcat.Hotel{Slug: "alpenblick", Name: "A"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.CreateHotel(ctx, domcat.Hotel{Slug: "alpenblick", Name: "B"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetHotelBySlug_UnpublishedHidden(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateHotel(ctx, domcat.Hotel{Slug: "draft", Name: "Draft"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.GetHotelBySlug(ctx, "draft")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListHotels_PublishedOnlySortedByName(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, h := range []domcat.Hotel{
		{Slug: "zeta", Name: "Zeta", IsPublished: true},
		{Slug: "draft", Name: "Draft"},
		{Slug: "alpha", Name: "Alpha", IsPublished: true},
	} {
		if _, err := repo.CreateHotel(ctx, h); err != nil {
			t.Fatalf("create %s: %v", h.Slug, err)
		}
	}

	hotels, err := repo.ListHotels(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(hotels))
	}
	if hotels[0].Name != "Alpha" || hotels[1].Name != "Zeta" {
		t.Errorf("unexpected order: %q, %q", hotels[0].Name, hotels[1].Name)
	}
}

func TestListHotels_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(string) error { return errors.New("connection lost") }

	_, err := repo.ListHotels(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUpdateHotel_PartialPatch(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateHotel(ctx, domcat.Hotel{
		Slug: "alpenblick", Name: "Hotel Alpenblick",
		ShortDescription: "Alt", Phone: "081 000 00 00", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	desc := "Neu"
	h, err := repo.UpdateHotel(ctx, id, domcat.HotelPatch{ShortDescription: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if h.ShortDescription != "Neu" {
		t.Errorf("expected patched description, got %q", h.ShortDescription)
	}
	if h.Phone != "081 000 00 00" {
		t.Errorf("unset patch field must stay unchanged, got %q", h.Phone)
	}
}

func TestUpdateHotel_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.UpdateHotel(context.Background(), 99, domcat.HotelPatch{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- Restaurants ---

func TestRestaurant_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRestaurant(ctx, domcat.Restaurant{
		Slug: "bella", Name: "Trattoria Bella", CuisineType: "Italienisch", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := repo.GetRestaurantBySlug(ctx, "bella")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if rec.ID != id || rec.CuisineType != "Italienisch" {
		t.Errorf("unexpected record %+v", rec)
	}

	veg := true
	rec, err = repo.UpdateRestaurant(ctx, id, domcat.RestaurantPatch{VegetarianOpts: &veg})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !rec.VegetarianOpts {
		t.Error("expected vegetarian flag set")
	}
}

// --- Experiences ---

func TestExperience_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateExperience(ctx, domcat.Experience{
		Slug: "altstadt", Name: "Altstadtführung",
		Category: domcat.CategoryTour, IsPublished: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	e, err := repo.GetExperienceBySlug(ctx, "altstadt")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if e.Category != domcat.CategoryTour {
		t.Errorf("unexpected category %s", e.Category)
	}

	list, err := repo.ListAllExperiences(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 experience, got %d", len(list))
	}
}

// --- Daily specials ---

func TestDailySpecials_TodayOnly(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	today := testClock().Format("2006-01-02")

	for _, d := range []domcat.DailySpecial{
		{RestaurantID: 1, Date: today, Name: "Schnitzel", Price: "24.00", IsActive: true},
		{RestaurantID: 1, Date: "2025-03-15", Name: "Morgen", Price: "20.00", IsActive: true},
		{RestaurantID: 1, Date: today, Name: "Inaktiv", Price: "10.00"},
	} {
		if _, err := repo.CreateDailySpecial(ctx, d); err != nil {
			t.Fatalf("create %s: %v", d.Name, err)
		}
	}

	specials, err := repo.ListTodaysDailySpecials(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specials) != 1 {
		t.Fatalf("expected 1 special, got %d", len(specials))
	}
	if specials[0].Name != "Schnitzel" {
		t.Errorf("unexpected special %q", specials[0].Name)
	}
}

func TestDailySpecials_SortedByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	today := testClock().Format("2006-01-02")

	for _, name := range []string{"Erstes", "Zweites", "Drittes"} {
		if _, err := repo.CreateDailySpecial(ctx, domcat.DailySpecial{
			RestaurantID: 1, Date: today, Name: name, Price: "20.00", IsActive: true,
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	specials, err := repo.ListTodaysDailySpecials(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specials) != 3 {
		t.Fatalf("expected 3 specials, got %d", len(specials))
	}
	for i, want := range []string{"Erstes", "Zweites", "Drittes"} {
		if specials[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, specials[i].Name)
		}
	}
}

func TestDeleteDailySpecial(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	today := testClock().Format("2006-01-02")

	id, err := repo.CreateDailySpecial(ctx, domcat.DailySpecial{
		RestaurantID: 1, Date: today, Name: "Schnitzel", Price: "24.00", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.DeleteDailySpecial(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetDailySpecial(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	specials, err := repo.ListTodaysDailySpecials(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(specials) != 0 {
		t.Errorf("expected empty list, got %d", len(specials))
	}
}

func TestDeleteDailySpecial_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.DeleteDailySpecial(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
