package perm

import (
	"errors"
	"net/http"
	"testing"
)

type owned int64

func (o owned) OwnerID() int64 { return int64(o) }

func TestSafe(t *testing.T) {
	safe := []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	unsafe := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

	for _, m := range safe {
		if !Safe(m) {
			t.Errorf("%s should be safe", m)
		}
	}
	for _, m := range unsafe {
		if Safe(m) {
			t.Errorf("%s should not be safe", m)
		}
	}
}

func TestRequireIdentity(t *testing.T) {
	if err := RequireIdentity(http.MethodGet, nil); err != nil {
		t.Errorf("anonymous GET should pass: %v", err)
	}
	if err := RequireIdentity(http.MethodPost, nil); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("anonymous POST should need auth, got %v", err)
	}
	if err := RequireIdentity(http.MethodPost, &Identity{UserID: 1}); err != nil {
		t.Errorf("authenticated POST should pass: %v", err)
	}
}

func TestCheck(t *testing.T) {
	owner := &Identity{UserID: 1, Username: "alice"}
	other := &Identity{UserID: 2, Username: "bob"}
	obj := owned(1)

	tests := []struct {
		name     string
		method   string
		identity *Identity
		want     error
	}{
		{"anonymous read", http.MethodGet, nil, nil},
		{"non-owner read", http.MethodGet, other, nil},
		{"anonymous write", http.MethodPatch, nil, ErrAuthRequired},
		{"non-owner write", http.MethodPatch, other, ErrForbidden},
		{"owner write", http.MethodPatch, owner, nil},
		{"non-owner delete", http.MethodDelete, other, ErrForbidden},
		{"owner delete", http.MethodDelete, owner, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.method, tt.identity, obj)
			if !errors.Is(err, tt.want) {
				t.Errorf("Check(%s) = %v, want %v", tt.method, err, tt.want)
			}
		})
	}
}
