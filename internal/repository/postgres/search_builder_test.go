package postgres

import (
	"sort"
	"strings"
	"testing"

	"dayhub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchWhere(t *testing.T) {
	t.Run("Should return no clause for an empty filter", func(t *testing.T) {
		where, args := buildSearchWhere(&domain.SearchFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("Should reuse one placeholder for the free-text predicate", func(t *testing.T) {
		where, args := buildSearchWhere(&domain.SearchFilter{Query: "maria"})
		assert.Contains(t, where, "first_name ILIKE $1")
		assert.Contains(t, where, "last_name ILIKE $1")
		assert.Contains(t, where, "email ILIKE $1")
		assert.Equal(t, []any{"%maria%"}, args)
	})

	t.Run("Should join predicates conjunctively with numbered placeholders", func(t *testing.T) {
		minExp := 5
		where, args := buildSearchWhere(&domain.SearchFilter{
			TargetLanguage: "Spanish",
			State:          "NY",
			MinExperience:  &minExp,
			AvailableOnly:  true,
		})
		assert.Contains(t, where, "target_language = $1")
		assert.Contains(t, where, "state = $2")
		assert.Contains(t, where, "years_experience >= $3")
		assert.Contains(t, where, "is_available = TRUE")
		assert.Equal(t, 3, strings.Count(where, " AND "))
		assert.Equal(t, []any{"Spanish", "NY", 5}, args)
	})

	t.Run("Should hardcode the approved literal for the public surface", func(t *testing.T) {
		where, args := buildSearchWhere(&domain.SearchFilter{
			ApprovedOnly:   true,
			ApprovalStatus: "rejected", // must be ignored
		})
		assert.Contains(t, where, "approval_status = 'approved'")
		assert.NotContains(t, where, "$1")
		assert.Empty(t, args)
	})

	t.Run("Should parameterize approval status for the admin surface", func(t *testing.T) {
		where, args := buildSearchWhere(&domain.SearchFilter{ApprovalStatus: "pending"})
		assert.Contains(t, where, "approval_status = $1")
		assert.Equal(t, []any{"pending"}, args)
	})

	t.Run("Should emit the radius predicate only with a resolved origin", func(t *testing.T) {
		lat, lng := 40.75, -73.99
		where, args := buildSearchWhere(&domain.SearchFilter{
			Radius:    25,
			OriginLat: &lat,
			OriginLng: &lng,
		})
		assert.Contains(t, where, "latitude IS NOT NULL")
		assert.Contains(t, where, "acos")
		assert.Equal(t, []any{40.75, -73.99, 25.0}, args)

		// No origin: radius alone must not filter
		where, args = buildSearchWhere(&domain.SearchFilter{Radius: 25})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}

func TestBuildSearchOrder(t *testing.T) {
	t.Run("Should default to id ascending", func(t *testing.T) {
		order, args := buildSearchOrder(&domain.SearchFilter{}, 0)
		assert.Equal(t, " ORDER BY id ASC", order)
		assert.Empty(t, args)
	})

	t.Run("Should sort names by first name with a deterministic tiebreak", func(t *testing.T) {
		order, _ := buildSearchOrder(&domain.SearchFilter{SortBy: "name", SortOrder: "desc"}, 0)
		assert.Equal(t, " ORDER BY first_name DESC, last_name DESC, id ASC", order)
	})

	t.Run("Should order the seed roster John, Maria, Wei ascending", func(t *testing.T) {
		// John Smith, Maria Gonzalez, Wei Chen: first-name order, not
		// surname order, which would invert the list
		order, _ := buildSearchOrder(&domain.SearchFilter{SortBy: "name", SortOrder: "asc"}, 0)
		assert.Equal(t, " ORDER BY first_name ASC, last_name ASC, id ASC", order)

		roster := []domain.Interpreter{
			{FirstName: "Wei", LastName: "Chen"},
			{FirstName: "John", LastName: "Smith"},
			{FirstName: "Maria", LastName: "Gonzalez"},
		}
		sort.Slice(roster, func(i, j int) bool {
			if roster[i].FirstName != roster[j].FirstName {
				return roster[i].FirstName < roster[j].FirstName
			}
			return roster[i].LastName < roster[j].LastName
		})
		assert.Equal(t, "John", roster[0].FirstName)
		assert.Equal(t, "Maria", roster[1].FirstName)
		assert.Equal(t, "Wei", roster[2].FirstName)
	})

	t.Run("Should push empty ratings last", func(t *testing.T) {
		order, _ := buildSearchOrder(&domain.SearchFilter{SortBy: "rating", SortOrder: "desc"}, 0)
		assert.Contains(t, order, "NULLIF(rating, '')::numeric DESC NULLS LAST")
	})

	t.Run("Should number distance placeholders after the WHERE args", func(t *testing.T) {
		lat, lng := 40.75, -73.99
		order, args := buildSearchOrder(&domain.SearchFilter{
			SortBy:    "distance",
			OriginLat: &lat,
			OriginLng: &lng,
		}, 3)
		assert.Contains(t, order, "$4")
		assert.Contains(t, order, "$5")
		assert.Equal(t, []any{40.75, -73.99}, args)
	})

	t.Run("Should fall back to id order when the origin is unresolved", func(t *testing.T) {
		order, args := buildSearchOrder(&domain.SearchFilter{SortBy: "distance"}, 0)
		assert.Equal(t, " ORDER BY id ASC", order)
		assert.Empty(t, args)
	})
}

func TestSpecialtiesRoundTrip(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"Medical"},
		{"Medical", "Legal", "Conference"},
		{"with, comma", `with "quotes"`},
	}
	for _, in := range cases {
		out := specialtiesFromText(specialtiesToText(in))
		if len(in) == 0 {
			assert.Empty(t, out)
		} else {
			assert.Equal(t, in, out)
		}
	}

	t.Run("Should tolerate legacy bare labels", func(t *testing.T) {
		assert.Equal(t, []string{"Medical"}, specialtiesFromText("Medical"))
		assert.Equal(t, []string{}, specialtiesFromText(""))
		assert.Equal(t, []string{}, specialtiesFromText("[]"))
	})
}
