package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// getItemDocument returns the metadata of the document hosting one item.
// A missing or unreadable item yields an empty object, like the item read.
func (h *AppServer) getItemDocument(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	record, err := app.GetItem(req.Caps["itemId"])
	if err != nil {
		return NewAppError(500, err, "Error reading item")
	}
	if record.DocumentFields == nil {
		jsonResponse(w, map[string]interface{}{})
		return nil
	}
	jsonResponse(w, record.DocumentFields)
	return nil
}

// storeItemDocument patches the metadata of the document hosting one item.
// Only the fields named in the request body are written back; the item's own
// fields are stored unchanged.
func (h *AppServer) storeItemDocument(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return NewAppError(400, err, "Error reading request body")
	}
	patch := &protocol.DocumentMetadata{}
	if err := json.Unmarshal(body, patch); err != nil {
		return NewAppError(400, err, "Malformed document metadata")
	}
	itemID := req.Caps["itemId"]
	record, err := app.GetItem(itemID)
	if err != nil {
		return NewAppError(500, err, "Error reading item")
	}
	record.DocumentFields = patch
	result := app.StoreItem(itemID, record)
	h.publishItemChange(req, app.Name(), itemID, "store", result.IsSuccess())
	jsonResponse(w, result)
	return nil
}
