package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// storeItem creates or updates one item from the JSON record in the request
// body. The outcome map of the operation is returned to the client either
// way; business failures are reported inside it, not as transport errors.
func (h *AppServer) storeItem(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return NewAppError(400, err, "Error reading request body")
	}
	record := protocol.NewItemRecord()
	if len(body) > 0 {
		if err := json.Unmarshal(body, record); err != nil {
			return NewAppError(400, err, "Malformed item record")
		}
	}
	itemID := req.Caps["itemId"]
	result := app.StoreItem(itemID, record)
	h.publishItemChange(req, app.Name(), itemID, "store", result.IsSuccess())
	jsonResponse(w, result)
	return nil
}
