package cart

import "errors"

var (
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	ErrCorruptSnapshot  = errors.New("cart snapshot is corrupt")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)
