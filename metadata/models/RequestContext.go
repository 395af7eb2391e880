package models

// RequestContext carries the acting identity and resolution defaults for one
// operation. A fresh value is built per request and passed explicitly; the
// core holds no ambient per-request state.
type RequestContext struct {
	// User is the serialized reference of the acting user, e.g. "XWiki.JohnDoe".
	User string
	// Wiki is the current wiki, assumed for unqualified references.
	Wiki string
	// Document is the current document, used for implicit application
	// resolution.
	Document DocumentReference
	// ShowHiddenDocuments mirrors the acting user's profile preference to
	// include hidden documents in listings.
	ShowHiddenDocuments bool
}
