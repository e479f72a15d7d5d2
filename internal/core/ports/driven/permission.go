package driven

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// PermissionService asks the platform for access to a protected resource.
// Implementations return PermissionGranted or PermissionDenied; callers
// treat anything other than PermissionGranted as denied.
type PermissionService interface {
	Request(ctx context.Context, kind domain.PermissionKind) (domain.PermissionState, error)
}
