package repositories

import (
	"errors"
	"fmt"
	"strings"

	"vitrine/internal/store"
)

// Kind classifies a failed repository operation.
type Kind int

const (
	// KindBackend is any network or server-side store failure.
	KindBackend Kind = iota
	// KindPermission is a write rejected by the store's access-control policy.
	KindPermission
)

// ErrPermission matches, via errors.Is, every OpError of KindPermission.
var ErrPermission = errors.New("permission denied by store policy")

// ErrNotFound is store.ErrNotFound re-exported for callers of this package.
var ErrNotFound = store.ErrNotFound

// OpError is a store failure tagged with the operation that caused it,
// e.g. "add product" or "update theme".
type OpError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	if e.Kind == KindPermission {
		return fmt.Sprintf("permission error while trying to %s: check that the row-level security policies of the matching table allow this write", e.Op)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPermission) match permission failures.
func (e *OpError) Is(target error) bool {
	return target == ErrPermission && e.Kind == KindPermission
}

var permissionMarkers = []string{
	"row-level security",
	"policy",
	"permission denied",
}

func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindBackend
	msg := strings.ToLower(err.Error())
	for _, marker := range permissionMarkers {
		if strings.Contains(msg, marker) {
			kind = KindPermission
			break
		}
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}
