package platform

import "errors"

// Sentinel errors for platform operations.
var (
	// ErrViewTypeNotFound is returned when no factory is registered for a view type.
	ErrViewTypeNotFound = errors.New("platform: view type not found")

	// ErrForeignView is returned when a view from another platform is inserted.
	ErrForeignView = errors.New("platform: view belongs to another platform")
)
