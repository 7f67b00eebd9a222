// Package search orchestrates relevance scoring across the four record
// types and shapes the public response.
package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	domsearch "github.com/Smartstaychur/smartstaychur-website/internal/domain/search"
	"github.com/Smartstaychur/smartstaychur-website/internal/metrics"
)

// Engine scores records against a free-text query. It is read-only over
// the record store and holds no per-request state.
type Engine struct {
	store  RecordStore
	rules  domsearch.RuleSet
	cap    int
	logger *zap.Logger
}

// New creates a search engine with the given rule tables.
func New(store RecordStore, rules domsearch.RuleSet, logger *zap.Logger) *Engine {
	return &Engine{store: store, rules: rules, cap: domsearch.ResultCap, logger: logger}
}

// WithCap overrides the result cap.
func (e *Engine) WithCap(cap int) *Engine {
	if cap > 0 {
		e.cap = cap
	}
	return e
}

// Search scores every candidate record, sorts by descending relevance and
// returns at most the configured cap. Empty or whitespace-only queries
// match nothing. A failing collection read degrades to an empty
// collection; the engine never hard-fails on store errors.
func (e *Engine) Search(ctx context.Context, rawQuery string) domsearch.Response {
	query := domsearch.Normalize(rawQuery)
	resp := domsearch.Response{Query: rawQuery, Results: []domsearch.Result{}}
	if query == "" {
		return resp
	}

	metrics.SearchQueriesTotal.Inc()

	results := make([]domsearch.Result, 0, 16)

	hotels, err := e.store.ListHotels(ctx)
	if err != nil {
		e.warn(ctx, "hotels", err)
	}
	for i := range hotels {
		h := &hotels[i]
		if score := domsearch.Score(query, domsearch.BaseMatchScore, h, e.rules.Hotels); score > 0 {
			results = append(results, domsearch.HotelResult(h, score))
		}
	}

	restaurants, err := e.store.ListRestaurants(ctx)
	if err != nil {
		e.warn(ctx, "restaurants", err)
	}
	for i := range restaurants {
		r := &restaurants[i]
		if score := domsearch.Score(query, domsearch.BaseMatchScore, r, e.rules.Restaurants); score > 0 {
			results = append(results, domsearch.RestaurantResult(r, score))
		}
	}

	specials, err := e.store.ListTodaysDailySpecials(ctx)
	if err != nil {
		e.warn(ctx, "daily specials", err)
	}
	for i := range specials {
		d := &specials[i]
		if score := domsearch.Score(query, domsearch.SpecialBaseMatchScore, d, e.rules.Specials); score > 0 {
			results = append(results, domsearch.SpecialResult(d, score))
		}
	}

	experiences, err := e.store.ListAllExperiences(ctx)
	if err != nil {
		e.warn(ctx, "experiences", err)
	}
	for i := range experiences {
		x := &experiences[i]
		if score := domsearch.Score(query, domsearch.BaseMatchScore, x, e.rules.Experiences); score > 0 {
			results = append(results, domsearch.ExperienceResult(x, score))
		}
	}

	// Stable sort: ties keep record-store iteration order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	resp.TotalResults = len(results)
	if len(results) > e.cap {
		results = results[:e.cap]
	}
	resp.Results = results

	metrics.SearchResults.Observe(float64(resp.TotalResults))
	return resp
}

// warn logs a degraded collection read.
func (e *Engine) warn(_ context.Context, collection string, err error) {
	metrics.SearchDegradedTotal.WithLabelValues(collection).Inc()
	e.logger.Warn("record store read failed, scoring without collection",
		zap.String("collection", collection),
		zap.Error(err),
	)
}
