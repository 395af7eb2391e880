package server

import "net/http"

// deleteItem removes one item. The hosting document is kept; only the class
// instance is detached.
func (h *AppServer) deleteItem(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	itemID := req.Caps["itemId"]
	result := app.DeleteItem(itemID)
	h.publishItemChange(req, app.Name(), itemID, "delete", result.IsSuccess())
	jsonResponse(w, result)
	return nil
}
