package protocol

// FieldDescriptor describes one field of an application schema.
type FieldDescriptor struct {
	// Type is the field type name, e.g. "String" or "StaticList".
	Type string `json:"Type"`
	// Values lists the possible values of an enumerated field: the raw
	// delimiter-separated string of a static list, or the resolved ordered
	// labels of a store-backed list. Nil for other types.
	Values interface{} `json:"Values,omitempty"`
}

// Schema maps field names to their descriptors.
type Schema map[string]FieldDescriptor
