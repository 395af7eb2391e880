package server

import "net/http"

// getItem reads one item record. A missing item or one the user cannot view
// is an empty record, matching the read semantics of the scripting API.
func (h *AppServer) getItem(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	record, err := app.GetItem(req.Caps["itemId"])
	if err != nil {
		return NewAppError(500, err, "Error reading item")
	}
	jsonResponse(w, record)
	return nil
}
