package models

import "strings"

// DocumentReference locates a document inside the wiki farm. Space may be a
// nested space path separated by dots, e.g. "HR.Data".
type DocumentReference struct {
	// Wiki is the identifier of the wiki holding the document.
	Wiki string
	// Space is the space (namespace) path of the document.
	Space string
	// Name is the document name within its space.
	Name string
}

// FullName returns the wiki-local serialized form, e.g. "HR.Data.Employee1".
func (r DocumentReference) FullName() string {
	if r.Space == "" {
		return r.Name
	}
	return r.Space + "." + r.Name
}

// String returns the absolute serialized form, e.g. "xwiki:HR.Data.Employee1".
func (r DocumentReference) String() string {
	if r.Wiki == "" {
		return r.FullName()
	}
	return r.Wiki + ":" + r.FullName()
}

// IsEmpty is true when the reference locates nothing.
func (r DocumentReference) IsEmpty() bool {
	return r.Name == "" && r.Space == ""
}

// TopLevelSpace returns the first segment of the space path.
func (r DocumentReference) TopLevelSpace() string {
	if idx := strings.Index(r.Space, "."); idx >= 0 {
		return r.Space[:idx]
	}
	return r.Space
}

// ParseDocumentReference resolves a serialized reference. An explicit wiki
// qualifier ("wiki:Space.Name") wins over defaultWiki. A value without a
// space part resolves into the "Main" space, matching the platform's default
// resolution for unqualified document names.
func ParseDocumentReference(raw string, defaultWiki string) DocumentReference {
	ref := DocumentReference{Wiki: defaultWiki}
	rest := raw
	if idx := strings.Index(rest, ":"); idx >= 0 {
		if idx > 0 {
			ref.Wiki = rest[:idx]
		}
		rest = rest[idx+1:]
	}
	if idx := strings.LastIndex(rest, "."); idx >= 0 {
		ref.Space = rest[:idx]
		ref.Name = rest[idx+1:]
	} else {
		ref.Space = "Main"
		ref.Name = rest
	}
	return ref
}

// SpaceDocumentReference builds a reference to a document inside the given
// space of a wiki.
func SpaceDocumentReference(wiki string, space string, name string) DocumentReference {
	return DocumentReference{Wiki: wiki, Space: space, Name: name}
}
