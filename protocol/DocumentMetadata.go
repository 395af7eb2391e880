package protocol

import (
	"encoding/json"
	"time"
)

// Keys of the document metadata block, as exposed over the API.
const (
	MetaAuthor   = "author"
	MetaCreator  = "creator"
	MetaCreation = "creationDate"
	MetaUpdate   = "updateDate"
	MetaParent   = "parent"
	MetaHidden   = "hidden"
	MetaTitle    = "title"
	MetaContent  = "content"
)

// DocumentMetadata describes the wiki document hosting an item. The change
// set records which fields a client explicitly assigned, so that a store
// only writes back fields that were intentionally touched.
type DocumentMetadata struct {
	Author       string    `json:"author"`
	Creator      string    `json:"creator"`
	CreationDate time.Time `json:"creationDate"`
	UpdateDate   time.Time `json:"updateDate"`
	Parent       string    `json:"parent"`
	Hidden       bool      `json:"hidden"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`

	changes map[string]bool
}

// Set assigns a field by key and records the change. Unknown keys and values
// of the wrong type are ignored.
func (m *DocumentMetadata) Set(key string, value interface{}) {
	switch key {
	case MetaAuthor:
		if s, ok := value.(string); ok {
			m.Author = s
			m.markChanged(key)
		}
	case MetaCreator:
		if s, ok := value.(string); ok {
			m.Creator = s
			m.markChanged(key)
		}
	case MetaCreation:
		if t, ok := asTime(value); ok {
			m.CreationDate = t
			m.markChanged(key)
		}
	case MetaUpdate:
		if t, ok := asTime(value); ok {
			m.UpdateDate = t
			m.markChanged(key)
		}
	case MetaParent:
		if s, ok := value.(string); ok {
			m.Parent = s
			m.markChanged(key)
		}
	case MetaHidden:
		if b, ok := value.(bool); ok {
			m.Hidden = b
			m.markChanged(key)
		}
	case MetaTitle:
		if s, ok := value.(string); ok {
			m.Title = s
			m.markChanged(key)
		}
	case MetaContent:
		if s, ok := value.(string); ok {
			m.Content = s
			m.markChanged(key)
		}
	}
}

// Changed reports whether a field was explicitly assigned on this value.
func (m *DocumentMetadata) Changed(key string) bool {
	return m.changes[key]
}

// ClearChanges empties the change set, typically after the changes have been
// written back to the hosting document.
func (m *DocumentMetadata) ClearChanges() {
	m.changes = nil
}

func (m *DocumentMetadata) markChanged(key string) {
	if m.changes == nil {
		m.changes = make(map[string]bool)
	}
	m.changes[key] = true
}

// Filtered returns a copy restricted to the requested keys. An empty request
// returns the value unchanged.
func (m *DocumentMetadata) Filtered(properties []string) map[string]interface{} {
	full := map[string]interface{}{
		MetaAuthor:   m.Author,
		MetaCreator:  m.Creator,
		MetaCreation: m.CreationDate,
		MetaUpdate:   m.UpdateDate,
		MetaParent:   m.Parent,
		MetaHidden:   m.Hidden,
		MetaTitle:    m.Title,
		MetaContent:  m.Content,
	}
	if len(properties) == 0 {
		return full
	}
	out := make(map[string]interface{})
	for _, p := range properties {
		if v, ok := full[p]; ok {
			out[p] = v
		}
	}
	return out
}

// MarshalJSON renders the metadata block. A value carrying a change set is a
// patch and only its assigned fields are emitted; a value without one is a
// snapshot and is emitted in full.
func (m *DocumentMetadata) MarshalJSON() ([]byte, error) {
	if len(m.changes) == 0 {
		return json.Marshal(m.Filtered(nil))
	}
	keys := make([]string, 0, len(m.changes))
	for key := range m.changes {
		keys = append(keys, key)
	}
	return json.Marshal(m.Filtered(keys))
}

// UnmarshalJSON decodes a metadata block and marks every key present in the
// payload as changed, so that partial patches only touch what they name.
func (m *DocumentMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, rv := range raw {
		var value interface{}
		if err := json.Unmarshal(rv, &value); err != nil {
			continue
		}
		m.Set(key, value)
	}
	return nil
}

// asTime accepts the representations a JSON client may send for a date:
// epoch milliseconds or an RFC 3339 string.
func asTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case float64:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
