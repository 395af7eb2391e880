package server

import (
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// getSchema returns the field descriptors of an application. Extracted
// schemas are cached per wiki, application and user for the configured
// lifetime; the user is part of the key because access checks shape the
// result.
func (h *AppServer) getSchema(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	key := req.RC.Wiki + "|" + req.Caps["appId"] + "|" + req.RC.User
	if item := h.SchemaCache.Get(key); item != nil && !item.Expired() {
		jsonResponse(w, item.Value().(protocol.Schema))
		return nil
	}
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	schema, err := app.GetSchema()
	if err != nil {
		return NewAppError(500, err, "Error extracting schema")
	}
	h.SchemaCache.Set(key, schema, h.Conf.SchemaCacheDuration())
	jsonResponse(w, schema)
	return nil
}
