package server

import "net/http"

// GuestUser is the identity assigned to requests without a user header.
const GuestUser = "XWiki.XWikiGuest"

// Caller provides the identity of the acting user, obtained from request
// headers. Logically this is intended to work behind a front end that
// authenticates the user and passes the identity through.
type Caller struct {
	// UserID is the full name of the acting user's profile document,
	// e.g. "XWiki.JohnDoe".
	UserID string
}

// CallerFromRequest populates a Caller object based upon request headers.
// An absent user header means the request acts as the guest user.
func CallerFromRequest(r *http.Request) Caller {
	var caller Caller
	caller.UserID = r.Header.Get("X-XWIKI-USER")
	if caller.UserID == "" {
		caller.UserID = GuestUser
	}
	return caller
}
