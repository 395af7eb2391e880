package auth

import (
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// FakeAuth is suitable for tests. By default every check passes; add full
// document names to the deny lists to simulate per-target denials, or set
// Err to fail every CheckAccess call.
type FakeAuth struct {
	Err      error
	DenyView []string
	DenyEdit []string
}

// HasAccess for FakeAuth.
func (fake *FakeAuth) HasAccess(user string, right Right, target models.DocumentReference) bool {
	return fake.CheckAccess(user, right, target) == nil
}

// CheckAccess for FakeAuth.
func (fake *FakeAuth) CheckAccess(user string, right Right, target models.DocumentReference) error {
	if fake.Err != nil {
		return fake.Err
	}
	var denied []string
	switch right {
	case RightView:
		denied = fake.DenyView
	case RightEdit:
		denied = fake.DenyEdit
	}
	for _, name := range denied {
		if name == target.FullName() || name == target.String() {
			return ErrAccessDenied
		}
	}
	return nil
}
