package vault

import "errors"

var (
	// ErrDuplicateItem is returned when the external item id is already linked
	// for this user. Linking the same institution twice is rejected, not merged.
	ErrDuplicateItem = errors.New("item already linked")

	// ErrItemNotFound is returned when an item does not exist or does not belong
	// to the caller. Ownership misses are deliberately indistinguishable from
	// missing rows so item ids cannot be probed across users.
	ErrItemNotFound = errors.New("item not found")
)
