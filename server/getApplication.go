package server

import (
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/applications"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// getApplication returns one application as a whole: its identifier, the
// class it is built on, its schema and its items.
func (h *AppServer) getApplication(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	app, herr := h.resolveApplication(req)
	if herr != nil {
		return herr
	}
	schema, err := app.GetSchema()
	if err != nil {
		return NewAppError(500, err, "Error extracting schema")
	}
	opts, err := protocol.NewItemQueryOptions(r)
	if err != nil {
		return NewAppError(400, err, "Malformed query options")
	}
	items, err := app.GetItems(opts)
	if err != nil {
		return NewAppError(500, err, "Error listing items")
	}
	jsonResponse(w, map[string]interface{}{
		"name":      app.Name(),
		"className": app.ClassReference().FullName(),
		"schema":    schema,
		"items":     items,
	})
	return nil
}

// resolveApplication finds the application named by the matched route.
func (h *AppServer) resolveApplication(req *webRequest) (applications.Application, *AppError) {
	appID := req.Caps["appId"]
	svcs := applications.Services{DAO: h.RootDAO, Auth: h.Auth, Logger: req.Logger}
	app, err := applications.Resolve(svcs, req.RC, appID)
	if err != nil {
		if err == applications.ErrApplicationNotFound {
			return nil, NewAppError(404, err, "Application not found: "+appID)
		}
		return nil, NewAppError(500, err, "Error resolving application")
	}
	return app, nil
}
