package server

import (
	"time"

	"github.com/xwiki-contrib/api-structured-data/events"
)

// publishItemChange emits an item change event on the event queue, when one
// is configured.
func (h *AppServer) publishItemChange(req *webRequest, appName string, itemID string, action string, success bool) {
	if h.EventQueue == nil {
		return
	}
	h.EventQueue.Publish(events.ItemChange{
		Action:      action,
		Wiki:        req.RC.Wiki,
		Application: appName,
		ItemID:      itemID,
		UserID:      req.RC.User,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Success:     success,
	})
}
