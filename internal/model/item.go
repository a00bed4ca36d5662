package model

import (
	"strings"
	"time"
)

// Item is a single wishlist entry.
//
// Priority is the display order key: lower values render first, ties broken
// by CreatedAt descending (newest first). Values need not be unique or
// contiguous; only the relative order matters.
type Item struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	URL       string    `json:"url" db:"url"`
	ImageKey  string    `json:"imageKey,omitempty" db:"image_key"`
	Category  string    `json:"category" db:"category"`
	Priority  int       `json:"priority" db:"priority"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CategoryUncategorized is the default category for items created without one.
const CategoryUncategorized = "uncategorized"

// Categories is the fixed set of item categories.
var Categories = []string{
	"electronics",
	"clothing",
	"books",
	"games",
	"toys",
	"home",
	CategoryUncategorized,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeURL ensures a URL carries an explicit scheme. Values without
// http:// or https:// get https:// prepended.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
