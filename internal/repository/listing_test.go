package repository

import (
	"strings"
	"testing"

	"github.com/artconnect/artconnect-api/internal/model"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"oil", "%oil%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\art`, `%c:\\art%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Errorf("likePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListingQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args := listingQuery("arts", model.ListFilter{})
		want := "SELECT * FROM arts WHERE is_available = TRUE ORDER BY created_at DESC LIMIT $1 OFFSET $2"
		if query != want {
			t.Errorf("query = %q", query)
		}
		if len(args) != 2 || args[0] != defaultListLimit || args[1] != 0 {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("text and category", func(t *testing.T) {
		query, args := listingQuery("events", model.ListFilter{
			Query:    " jazz ",
			Category: "Music",
			Limit:    5,
			Offset:   10,
		})
		if !strings.Contains(query, "title ILIKE $1") || !strings.Contains(query, "category ILIKE $1") {
			t.Errorf("text match missing: %q", query)
		}
		if !strings.Contains(query, "category = $2") {
			t.Errorf("category filter missing: %q", query)
		}
		if !strings.HasSuffix(query, "LIMIT $3 OFFSET $4") {
			t.Errorf("paging placeholders wrong: %q", query)
		}
		if len(args) != 4 || args[0] != "%jazz%" || args[1] != "Music" || args[2] != 5 || args[3] != 10 {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("category only", func(t *testing.T) {
		query, args := listingQuery("arts", model.ListFilter{Category: "Painting"})
		if strings.Contains(query, "ILIKE") {
			t.Errorf("unexpected text match: %q", query)
		}
		if len(args) != 3 || args[0] != "Painting" {
			t.Errorf("args = %v", args)
		}
	})
}
