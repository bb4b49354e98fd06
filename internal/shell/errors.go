package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrMountTargetNotFound matches any *MountTargetNotFoundError.
	ErrMountTargetNotFound = errors.New("mount target not found")
	// ErrInvalidSelector is returned for selectors other than "#id".
	ErrInvalidSelector = errors.New("anchor selector must have the form #id")
)

// MountTargetNotFoundError reports that the shell document has no element for
// the anchor selector. It is fatal at startup.
type MountTargetNotFoundError struct {
	Selector string
}

func (e *MountTargetNotFoundError) Error() string {
	return fmt.Sprintf("mount target %q not found in shell document", e.Selector)
}

// Is lets errors.Is match ErrMountTargetNotFound.
func (e *MountTargetNotFoundError) Is(target error) bool {
	return target == ErrMountTargetNotFound
}
