package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/catalog"
)

// Rule is one immutable (query predicate, record predicate, bonus) tuple.
// Both predicates receive the normalized query; the record predicate also
// sees it for rules whose condition spans query and record, such as the
// star-rating match.
type Rule[T any] struct {
	Name   string
	Query  func(query string) bool
	Record func(query string, rec T) bool
	Bonus  int
}

// Applies reports whether both predicates hold.
func (r Rule[T]) Applies(query string, rec T) bool {
	return r.Query(query) && r.Record(query, rec)
}

// RuleSet carries the per-type bonus tables injected into the engine.
type RuleSet struct {
	Hotels      []Rule[*catalog.Hotel]
	Restaurants []Rule[*catalog.Restaurant]
	Specials    []Rule[*catalog.DailySpecial]
	Experiences []Rule[*catalog.Experience]
}

// starsPattern matches a single digit optionally followed by whitespace
// and a "stern" token, e.g. "3 stern" or "4stern".
var starsPattern = regexp.MustCompile(`(\d)\s*stern`)

// dishVocabulary is the fixed dish keyword list for daily specials.
var dishVocabulary = []string{
	"schnitzel", "spaghetti", "pizza", "salat", "suppe",
	"pommes", "burger", "steak", "fisch", "poulet",
}

func queryContains(keyword string) func(string) bool {
	return func(query string) bool { return strings.Contains(query, keyword) }
}

func hotelHaystackContains(keyword string) func(string, *catalog.Hotel) bool {
	return func(_ string, h *catalog.Hotel) bool {
		return strings.Contains(h.Haystack(), keyword)
	}
}

func restaurantHaystackContains(keyword string) func(string, *catalog.Restaurant) bool {
	return func(_ string, r *catalog.Restaurant) bool {
		return strings.Contains(r.Haystack(), keyword)
	}
}

// DefaultRules returns the production bonus tables.
func DefaultRules() RuleSet {
	return RuleSet{
		Hotels:      hotelRules(),
		Restaurants: restaurantRules(),
		Specials:    specialRules(),
		Experiences: experienceRules(),
	}
}

func hotelRules() []Rule[*catalog.Hotel] {
	return []Rule[*catalog.Hotel]{
		{
			Name:   "familienzimmer",
			Query:  queryContains("familienzimmer"),
			Record: hotelHaystackContains("familie"),
			Bonus:  30,
		},
		{
			Name:   "babybett",
			Query:  queryContains("babybett"),
			Record: hotelHaystackContains("babybett"),
			Bonus:  40,
		},
		{
			Name:   "balkon",
			Query:  queryContains("balkon"),
			Record: hotelHaystackContains("balkon"),
			Bonus:  30,
		},
		{
			Name:   "parking",
			Query:  queryContains("parking"),
			Record: func(_ string, h *catalog.Hotel) bool { return h.Parking() },
			Bonus:  20,
		},
		{
			Name:   "fruehstueck",
			Query:  queryContains("frühstück"),
			Record: func(_ string, h *catalog.Hotel) bool { return h.BreakfastIncl },
			Bonus:  20,
		},
		{
			Name:   "haustier",
			Query:  queryContains("haustier"),
			Record: func(_ string, h *catalog.Hotel) bool { return h.PetsAllowed },
			Bonus:  30,
		},
		{
			Name:  "sterne",
			Query: starsPattern.MatchString,
			Record: func(query string, h *catalog.Hotel) bool {
				m := starsPattern.FindStringSubmatch(query)
				if m == nil {
					return false
				}
				stars, err := strconv.Atoi(m[1])
				return err == nil && h.Stars == stars
			},
			Bonus: 40,
		},
	}
}

func restaurantRules() []Rule[*catalog.Restaurant] {
	return []Rule[*catalog.Restaurant]{
		{
			Name:   "vegetarisch",
			Query:  queryContains("vegetarisch"),
			Record: restaurantHaystackContains("vegetarisch"),
			Bonus:  40,
		},
		{
			Name:   "italienisch",
			Query:  queryContains("italienisch"),
			Record: restaurantHaystackContains("italienisch"),
			Bonus:  30,
		},
		{
			Name:   "buendner",
			Query:  queryContains("bündner"),
			Record: restaurantHaystackContains("bündner"),
			Bonus:  30,
		},
	}
}

func specialRules() []Rule[*catalog.DailySpecial] {
	rules := make([]Rule[*catalog.DailySpecial], 0, len(dishVocabulary)+2)
	for _, dish := range dishVocabulary {
		dish := dish // per-iteration copy for pre-1.22 loop variable scoping
		rules = append(rules, Rule[*catalog.DailySpecial]{
			Name:  "dish:" + dish,
			Query: queryContains(dish),
			Record: func(_ string, d *catalog.DailySpecial) bool {
				return strings.Contains(d.Haystack(), dish)
			},
			Bonus: 50,
		})
	}
	rules = append(rules,
		Rule[*catalog.DailySpecial]{
			Name:   "vegetarisch",
			Query:  queryContains("vegetarisch"),
			Record: func(_ string, d *catalog.DailySpecial) bool { return d.IsVegetarian },
			Bonus:  40,
		},
		Rule[*catalog.DailySpecial]{
			Name:   "vegan",
			Query:  queryContains("vegan"),
			Record: func(_ string, d *catalog.DailySpecial) bool { return d.IsVegan },
			Bonus:  40,
		},
	)
	return rules
}

func experienceRules() []Rule[*catalog.Experience] {
	categoryRule := func(keyword string, cat catalog.ExperienceCategory) Rule[*catalog.Experience] {
		return Rule[*catalog.Experience]{
			Name:   keyword,
			Query:  queryContains(keyword),
			Record: func(_ string, e *catalog.Experience) bool { return e.Category == cat },
			Bonus:  40,
		}
	}
	return []Rule[*catalog.Experience]{
		categoryRule("stadtführung", catalog.CategoryTour),
		categoryRule("wanderung", catalog.CategoryHiking),
		categoryRule("kultur", catalog.CategoryCulture),
	}
}
