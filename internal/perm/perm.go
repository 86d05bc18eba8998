// Package perm implements the object-level ownership policy shared by every
// resource: reads are open to everyone, writes are restricted to the
// resource's author.
package perm

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthRequired means an unsafe operation was attempted without an
	// authenticated identity. Maps to 401.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means an authenticated identity attempted an unsafe
	// operation on somebody else's resource. Maps to 403.
	ErrForbidden = errors.New("you can only modify your own content")
)

// Identity is the authenticated requester, or nil for anonymous requests.
type Identity struct {
	UserID   int64
	Username string
}

// Owned is anything with an author. All three forum entities satisfy it.
type Owned interface {
	OwnerID() int64
}

// Safe reports whether the method only reads state.
func Safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// RequireIdentity is the coarse check: unsafe methods need some
// authenticated identity. It is the only check applied to list and create,
// which have no target object yet.
func RequireIdentity(method string, identity *Identity) error {
	if Safe(method) {
		return nil
	}
	if identity == nil {
		return ErrAuthRequired
	}
	return nil
}

// Check is the fine-grained per-object check applied once the target is
// loaded: unsafe methods additionally require the requester to own it.
func Check(method string, identity *Identity, obj Owned) error {
	if err := RequireIdentity(method, identity); err != nil {
		return err
	}
	if Safe(method) {
		return nil
	}
	if identity.UserID != obj.OwnerID() {
		return ErrForbidden
	}
	return nil
}
