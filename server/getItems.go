package server

import (
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// getItems lists the item records of an application. Query options are
// parsed from the request parameters.
func (h *AppServer) getItems(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	opts, err := protocol.NewItemQueryOptions(r)
	if err != nil {
		return NewAppError(400, err, "Malformed query options")
	}
	records, err := app.GetItems(opts)
	if err != nil {
		return NewAppError(500, err, "Error listing items")
	}
	jsonResponse(w, records)
	return nil
}
