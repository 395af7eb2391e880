package server

import (
	"net/http"

	"github.com/xwiki-contrib/api-structured-data/applications"
)

// listApplications returns the identifiers of the applications available in
// the requested wiki.
func (h *AppServer) listApplications(req *webRequest, w http.ResponseWriter, r *http.Request) *AppError {
	svcs := applications.Services{DAO: h.RootDAO, Auth: h.Auth, Logger: req.Logger}
	names, err := applications.GetApplicationNames(svcs, req.RC)
	if err != nil {
		return NewAppError(500, err, "Error listing applications")
	}
	jsonResponse(w, map[string]interface{}{"applications": names})
	return nil
}
