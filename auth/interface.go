package auth

import (
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// Error is our error type.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrAccessDenied is returned by CheckAccess when the acting user lacks
	// the requested right on the target document.
	ErrAccessDenied = Error("auth: access denied")
	// ErrUserNotSpecified is returned if a user identity is required but not specified.
	ErrUserNotSpecified = Error("auth: user not specified")
)

// Right enumerates the access levels checked by this module.
type Right int

const (
	// RightView allows reading a document and the items it hosts.
	RightView Right = iota
	// RightEdit allows modifying a document and the items it hosts.
	RightEdit
)

func (r Right) String() string {
	switch r {
	case RightView:
		return "view"
	case RightEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Authorization represents a common interface for which any authorization
// implementation is expected to support. Targets are document references;
// class definitions are checked through their defining document.
type Authorization interface {
	// HasAccess reports whether the user holds the right on the target.
	HasAccess(user string, right Right, target models.DocumentReference) bool
	// CheckAccess returns ErrAccessDenied when the user does not hold the
	// right on the target.
	CheckAccess(user string, right Right, target models.DocumentReference) error
}
