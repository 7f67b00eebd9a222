// Package catalog persists directory records as JSON documents with
// set-based id indexes.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Smartstaychur/smartstaychur-website/internal/db"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	domcat "github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// store is the consumer interface for catalog records (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Incr(ctx context.Context, key string) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the record store read and write contracts for the
// catalog. All list reads return only published/active records.
type Repo struct {
	store store
	now   func() time.Time
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s, now: time.Now}
}

// WithClock overrides the time source (tests).
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

const (
	kindHotel      = "hotel"
	kindRestaurant = "restaurant"
	kindExperience = "experience"
	kindSpecial    = "special"
)

func recordKey(kind string, id int64) string {
	return "smartstay:" + kind + ":" + strconv.FormatInt(id, 10)
}

func indexKey(kind string) string { return "smartstay:" + kind + ":ids" }

func slugKey(kind, slug string) string { return "smartstay:" + kind + ":slug:" + slug }

func seqKey(kind string) string { return "smartstay:seq:" + kind }

func specialDateKey(date string) string { return "smartstay:special:date:" + date }

// load fetches and decodes one JSON record into dst.
func (r *Repo) load(ctx context.Context, key string, dst any) error {
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

// save encodes and stores one JSON record.
func (r *Repo) save(ctx context.Context, key string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// nextID allocates a new record id for the kind.
func (r *Repo) nextID(ctx context.Context, kind string) (int64, error) {
	id, err := r.store.Incr(ctx, seqKey(kind))
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w: %w", kind, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// resolveSlug returns the record id a slug points at.
func (r *Repo) resolveSlug(ctx context.Context, kind, slug string) (int64, error) {
	raw, err := r.store.Get(ctx, slugKey(kind, slug))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("resolve %s slug %q: %w: %w", kind, slug, domain.ErrStoreUnavailable, err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("resolve %s slug %q: bad id %q", kind, slug, raw)
	}
	return id, nil
}

// claimSlug registers a slug for a new record; duplicate slugs are rejected.
func (r *Repo) claimSlug(ctx context.Context, kind, slug string, id int64) error {
	if _, err := r.resolveSlug(ctx, kind, slug); err == nil {
		return fmt.Errorf("%s slug %q: %w", kind, slug, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	value := []byte(strconv.FormatInt(id, 10))
	if err := r.store.Set(ctx, slugKey(kind, slug), value); err != nil {
		return fmt.Errorf("claim %s slug %q: %w: %w", kind, slug, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// listIDs reads a kind's id index.
func (r *Repo) listIDs(ctx context.Context, key string) ([]int64, error) {
	members, err := r.store.SMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// --- Hotels ---

// ListHotels returns all published hotels ordered by name.
func (r *Repo) ListHotels(ctx context.Context) ([]domcat.Hotel, error) {
	ids, err := r.listIDs(ctx, indexKey(kindHotel))
	if err != nil {
		return nil, err
	}
	hotels := make([]domcat.Hotel, 0, len(ids))
	for _, id := range ids {
		var h domcat.Hotel
		if err := r.load(ctx, recordKey(kindHotel, id), &h); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if h.IsPublished {
			hotels = append(hotels, h)
		}
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Name < hotels[j].Name })
	return hotels, nil
}

// GetHotel returns one hotel by id.
func (r *Repo) GetHotel(ctx context.Context, id int64) (domcat.Hotel, error) {
	var h domcat.Hotel
	if err := r.load(ctx, recordKey(kindHotel, id), &h); err != nil {
		return domcat.Hotel{}, err
	}
	return h, nil
}

// GetHotelBySlug returns one published hotel by slug.
func (r *Repo) GetHotelBySlug(ctx context.Context, slug string) (domcat.Hotel, error) {
	id, err := r.resolveSlug(ctx, kindHotel, slug)
	if err != nil {
		return domcat.Hotel{}, err
	}
	h, err := r.GetHotel(ctx, id)
	if err != nil {
		return domcat.Hotel{}, err
	}
	if !h.IsPublished {
		return domcat.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

// CreateHotel stores a new hotel and returns its id.
func (r *Repo) CreateHotel(ctx context.Context, h domcat.Hotel) (int64, error) {
	id, err := r.nextID(ctx, kindHotel)
	if err != nil {
		return 0, err
	}
	if err := r.claimSlug(ctx, kindHotel, h.Slug, id); err != nil {
		return 0, err
	}
	h.ID = id
	h.CreatedAt = r.now()
	h.UpdatedAt = h.CreatedAt
	if err := r.save(ctx, recordKey(kindHotel, id), &h); err != nil {
		return 0, err
	}
	if err := r.store.SAdd(ctx, indexKey(kindHotel), strconv.FormatInt(id, 10)); err != nil {
		return 0, fmt.Errorf("index hotel %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// UpdateHotel applies a patch and returns the updated record.
func (r *Repo) UpdateHotel(ctx context.Context, id int64, patch domcat.HotelPatch) (domcat.Hotel, error) {
	h, err := r.GetHotel(ctx, id)
	if err != nil {
		return domcat.Hotel{}, err
	}
	patch.Apply(&h)
	h.UpdatedAt = r.now()
	if err := r.save(ctx, recordKey(kindHotel, id), &h); err != nil {
		return domcat.Hotel{}, err
	}
	return h, nil
}

// --- Restaurants ---

// ListRestaurants returns all published restaurants ordered by name.
func (r *Repo) ListRestaurants(ctx context.Context) ([]domcat.Restaurant, error) {
	ids, err := r.listIDs(ctx, indexKey(kindRestaurant))
	if err != nil {
		return nil, err
	}
	restaurants := make([]domcat.Restaurant, 0, len(ids))
	for _, id := range ids {
		var rec domcat.Restaurant
		if err := r.load(ctx, recordKey(kindRestaurant, id), &rec); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if rec.IsPublished {
			restaurants = append(restaurants, rec)
		}
	}
	sort.Slice(restaurants, func(i, j int) bool { return restaurants[i].Name < restaurants[j].Name })
	return restaurants, nil
}

// GetRestaurant returns one restaurant by id.
func (r *Repo) GetRestaurant(ctx context.Context, id int64) (domcat.Restaurant, error) {
	var rec domcat.Restaurant
	if err := r.load(ctx, recordKey(kindRestaurant, id), &rec); err != nil {
		return domcat.Restaurant{}, err
	}
	return rec, nil
}

// GetRestaurantBySlug returns one published restaurant by slug.
func (r *Repo) GetRestaurantBySlug(ctx context.Context, slug string) (domcat.Restaurant, error) {
	id, err := r.resolveSlug(ctx, kindRestaurant, slug)
	if err != nil {
		return domcat.Restaurant{}, err
	}
	rec, err := r.GetRestaurant(ctx, id)
	if err != nil {
		return domcat.Restaurant{}, err
	}
	if !rec.IsPublished {
		return domcat.Restaurant{}, domain.ErrNotFound
	}
	return rec, nil
}

// CreateRestaurant stores a new restaurant and returns its id.
func (r *Repo) CreateRestaurant(ctx context.Context, rec domcat.Restaurant) (int64, error) {
	id, err := r.nextID(ctx, kindRestaurant)
	if err != nil {
		return 0, err
	}
	if err := r.claimSlug(ctx, kindRestaurant, rec.Slug, id); err != nil {
		return 0, err
	}
	rec.ID = id
	rec.CreatedAt = r.now()
	rec.UpdatedAt = rec.CreatedAt
	if err := r.save(ctx, recordKey(kindRestaurant, id), &rec); err != nil {
		return 0, err
	}
	if err := r.store.SAdd(ctx, indexKey(kindRestaurant), strconv.FormatInt(id, 10)); err != nil {
		return 0, fmt.Errorf("index restaurant %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// UpdateRestaurant applies a patch and returns the updated record.
func (r *Repo) UpdateRestaurant(
	ctx context.Context, id int64, patch domcat.RestaurantPatch,
) (domcat.Restaurant, error) {
	rec, err := r.GetRestaurant(ctx, id)
	if err != nil {
		return domcat.Restaurant{}, err
	}
	patch.Apply(&rec)
	rec.UpdatedAt = r.now()
	if err := r.save(ctx, recordKey(kindRestaurant, id), &rec); err != nil {
		return domcat.Restaurant{}, err
	}
	return rec, nil
}

// --- Experiences ---

// ListAllExperiences returns all published experiences ordered by name.
func (r *Repo) ListAllExperiences(ctx context.Context) ([]domcat.Experience, error) {
	ids, err := r.listIDs(ctx, indexKey(kindExperience))
	if err != nil {
		return nil, err
	}
	experiences := make([]domcat.Experience, 0, len(ids))
	for _, id := range ids {
		var e domcat.Experience
		if err := r.load(ctx, recordKey(kindExperience, id), &e); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if e.IsPublished {
			experiences = append(experiences, e)
		}
	}
	sort.Slice(experiences, func(i, j int) bool { return experiences[i].Name < experiences[j].Name })
	return experiences, nil
}

// GetExperienceBySlug returns one published experience by slug.
func (r *Repo) GetExperienceBySlug(ctx context.Context, slug string) (domcat.Experience, error) {
	id, err := r.resolveSlug(ctx, kindExperience, slug)
	if err != nil {
		return domcat.Experience{}, err
	}
	var e domcat.Experience
	if err := r.load(ctx, recordKey(kindExperience, id), &e); err != nil {
		return domcat.Experience{}, err
	}
	if !e.IsPublished {
		return domcat.Experience{}, domain.ErrNotFound
	}
	return e, nil
}

// CreateExperience stores a new experience and returns its id.
func (r *Repo) CreateExperience(ctx context.Context, e domcat.Experience) (int64, error) {
	id, err := r.nextID(ctx, kindExperience)
	if err != nil {
		return 0, err
	}
	if err := r.claimSlug(ctx, kindExperience, e.Slug, id); err != nil {
		return 0, err
	}
	e.ID = id
	e.CreatedAt = r.now()
	e.UpdatedAt = e.CreatedAt
	if err := r.save(ctx, recordKey(kindExperience, id), &e); err != nil {
		return 0, err
	}
	if err := r.store.SAdd(ctx, indexKey(kindExperience), strconv.FormatInt(id, 10)); err != nil {
		return 0, fmt.Errorf("index experience %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// --- Daily specials ---

// ListTodaysDailySpecials returns today's active specials ordered by id.
func (r *Repo) ListTodaysDailySpecials(ctx context.Context) ([]domcat.DailySpecial, error) {
	today := r.now().Format("2006-01-02")
	ids, err := r.listIDs(ctx, specialDateKey(today))
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	specials := make([]domcat.DailySpecial, 0, len(ids))
	for _, id := range ids {
		var d domcat.DailySpecial
		if err := r.load(ctx, recordKey(kindSpecial, id), &d); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if d.IsActive {
			specials = append(specials, d)
		}
	}
	return specials, nil
}

// GetDailySpecial returns one special by id.
func (r *Repo) GetDailySpecial(ctx context.Context, id int64) (domcat.DailySpecial, error) {
	var d domcat.DailySpecial
	if err := r.load(ctx, recordKey(kindSpecial, id), &d); err != nil {
		return domcat.DailySpecial{}, err
	}
	return d, nil
}

// CreateDailySpecial stores a new special and returns its id.
func (r *Repo) CreateDailySpecial(ctx context.Context, d domcat.DailySpecial) (int64, error) {
	id, err := r.nextID(ctx, kindSpecial)
	if err != nil {
		return 0, err
	}
	d.ID = id
	d.CreatedAt = r.now()
	if err := r.save(ctx, recordKey(kindSpecial, id), &d); err != nil {
		return 0, err
	}
	member := strconv.FormatInt(id, 10)
	if err := r.store.SAdd(ctx, specialDateKey(d.Date), member); err != nil {
		return 0, fmt.Errorf("index special %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// DeleteDailySpecial removes a special and its date index entry.
func (r *Repo) DeleteDailySpecial(ctx context.Context, id int64) error {
	d, err := r.GetDailySpecial(ctx, id)
	if err != nil {
		return err
	}
	member := strconv.FormatInt(id, 10)
	if err := r.store.SRem(ctx, specialDateKey(d.Date), member); err != nil {
		return fmt.Errorf("unindex special %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	if err := r.store.Del(ctx, recordKey(kindSpecial, id)); err != nil {
		return fmt.Errorf("del special %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return nil
}
