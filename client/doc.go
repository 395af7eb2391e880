// Package client provides a Go client for the structured data REST API. It
// covers application discovery, schema retrieval and item CRUD, acting as a
// given wiki user.
package client
