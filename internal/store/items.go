package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mlakar/wishbox/internal/model"
)

const itemColumns = `id, name, price, url, image_key, category, priority, created_at`

// ItemFields holds the values for a new item. Price and Priority are pointers
// so that "not provided" is distinguishable from zero: a missing price is a
// validation error, a missing priority defaults to 0.
type ItemFields struct {
	Name     string
	Price    *float64
	URL      string
	ImageKey string
	Category string
	Priority *int
}

// InsertItem creates a new item and returns its id. Name, price and URL are
// required; category defaults to uncategorized; the URL is scheme-normalized
// before persistence.
func InsertItem(ctx context.Context, db *sqlx.DB, f ItemFields) (int64, error) {
	if f.Name == "" {
		return 0, &model.ValidationError{Field: "name", Reason: "required"}
	}
	if f.Price == nil {
		return 0, &model.ValidationError{Field: "price", Reason: "required"}
	}
	if *f.Price < 0 {
		return 0, &model.ValidationError{Field: "price", Reason: "must be non-negative"}
	}
	if f.URL == "" {
		return 0, &model.ValidationError{Field: "url", Reason: "required"}
	}
	if f.Category == "" {
		f.Category = model.CategoryUncategorized
	}
	if !model.ValidCategory(f.Category) {
		return 0, &model.ValidationError{Field: "category", Reason: "unknown category"}
	}

	priority := 0
	if f.Priority != nil {
		priority = *f.Priority
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, price, url, image_key, category, priority, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Name, *f.Price, model.NormalizeURL(f.URL), f.ImageKey, f.Category, priority,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting item id: %w", err)
	}
	return id, nil
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sqlx.DB, id int64) (*model.Item, error) {
	var item model.Item
	err := db.GetContext(ctx, &item,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// ListItems returns all items in display order (priority ascending, newest
// first among equal priorities), optionally filtered by category.
func ListItems(ctx context.Context, db *sqlx.DB, category string) ([]model.Item, error) {
	var items []model.Item
	var err error

	if category != "" {
		err = db.SelectContext(ctx, &items,
			`SELECT `+itemColumns+` FROM items WHERE category = ?
			 ORDER BY priority ASC, created_at DESC`, category,
		)
	} else {
		err = db.SelectContext(ctx, &items,
			`SELECT `+itemColumns+` FROM items
			 ORDER BY priority ASC, created_at DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// ItemPatch is a partial update. Nil fields are left untouched; non-nil
// fields are written, including explicit empty strings.
type ItemPatch struct {
	Name     *string
	Price    *float64
	URL      *string
	ImageKey *string
	Category *string
	Priority *int
}

// UpdateItem applies the non-nil fields of patch to an item. An empty patch
// succeeds without touching the database. A missing id also succeeds, with
// zero rows affected.
func UpdateItem(ctx context.Context, db *sqlx.DB, id int64, patch ItemPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return &model.ValidationError{Field: "price", Reason: "must be non-negative"}
		}
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.URL != nil {
		url := *patch.URL
		if url != "" {
			url = model.NormalizeURL(url)
		}
		sets = append(sets, "url = ?")
		args = append(args, url)
	}
	if patch.ImageKey != nil {
		sets = append(sets, "image_key = ?")
		args = append(args, *patch.ImageKey)
	}
	if patch.Category != nil {
		if !model.ValidCategory(*patch.Category) {
			return &model.ValidationError{Field: "category", Reason: "unknown category"}
		}
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Deleting a missing id is not an error.
func DeleteItem(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemPriority writes a single item's display-order key.
func SetItemPriority(ctx context.Context, db *sqlx.DB, id int64, priority int) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET priority = ? WHERE id = ?`, priority, id,
	)
	if err != nil {
		return fmt.Errorf("setting item priority: %w", err)
	}
	return nil
}

// PriorityWriter adapts the store to reorder.Writer: each call is one
// independent row update, with no surrounding transaction.
type PriorityWriter struct {
	DB *sqlx.DB
}

func (w PriorityWriter) SetPriority(ctx context.Context, id int64, priority int) error {
	return SetItemPriority(ctx, w.DB, id, priority)
}
