// Package reorder implements the drag-and-drop ordering protocol: a drag
// gesture over the rendered (possibly category-filtered) item sequence
// becomes an array move, and the resulting sequence is flattened back into
// per-item priority values, one write per item.
package reorder

import (
	"context"
	"fmt"
	"slices"
)

// Move returns a copy of seq with draggedID removed and reinserted at
// targetID's position, shifting the items in between by one. If either id is
// missing from seq, or they are the same position, the copy is unchanged.
func Move(seq []int64, draggedID, targetID int64) []int64 {
	out := slices.Clone(seq)

	from := slices.Index(out, draggedID)
	to := slices.Index(out, targetID)
	if from < 0 || to < 0 || from == to {
		return out
	}

	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, draggedID)
	return out
}

// Writer persists a single item's priority.
type Writer interface {
	SetPriority(ctx context.Context, id int64, priority int) error
}

// Persist flattens the rendered sequence into priorities: every item gets its
// zero-based index, whether or not it moved. Each write is an independent
// request; the loop stops at the first failure, leaving earlier writes in
// place and later items untouched. There is no retry and no rollback — a
// partial failure leaves the stored order inconsistent until the next
// successful reorder.
func Persist(ctx context.Context, w Writer, seq []int64) error {
	for i, id := range seq {
		if err := w.SetPriority(ctx, id, i); err != nil {
			return fmt.Errorf("setting priority %d for item %d: %w", i, id, err)
		}
	}
	return nil
}
