package protocol

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ItemQueryOptions carries the listing options a caller may supply.
type ItemQueryOptions struct {
	// Query is a raw filter fragment. When present it replaces the default
	// scope, template and hidden filtering entirely.
	Query string
	// Hidden requests inclusion of hidden documents when set to "true" or "1".
	Hidden string
	// Order overrides the default ordering.
	Order string
	// Limit caps the number of returned items; 0 means no explicit limit.
	Limit int
	// Offset skips that many items from the start of the result.
	Offset int
	// Properties restricts the fields materialized on each record. Empty
	// means all fields.
	Properties []string
}

// IncludeHidden is true when the option value requests hidden documents.
func (o ItemQueryOptions) IncludeHidden() bool {
	return o.Hidden == "true" || o.Hidden == "1"
}

// NewItemQueryOptions parses listing options from the request query string.
// Recognized parameters: limit, offset, query, hidden, order, properties
// (comma-separated).
func NewItemQueryOptions(r *http.Request) (ItemQueryOptions, error) {
	opts := ItemQueryOptions{}
	q := r.URL.Query()
	var err error
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("limit is not an integer: %q", v)
		}
	}
	if v := q.Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("offset is not an integer: %q", v)
		}
	}
	opts.Query = q.Get("query")
	opts.Hidden = q.Get("hidden")
	opts.Order = q.Get("order")
	if v := q.Get("properties"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				opts.Properties = append(opts.Properties, p)
			}
		}
	}
	return opts, nil
}
