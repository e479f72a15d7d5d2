package driven

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ImageChooser lets the user pick one library item. A nil item with a nil
// error means the user backed out.
type ImageChooser interface {
	Choose(ctx context.Context, items []domain.LibraryItem) (*domain.LibraryItem, error)
}
