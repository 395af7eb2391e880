package server

import (
	"time"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// userProfileClass is the class of the profile object on a user's document.
const userProfileClass = "XWiki.XWikiUsers"

// userCacheTime bounds how stale a cached profile preference may get.
const userCacheTime = 5 * time.Minute

// userShowsHidden reports the user's show-hidden-documents profile
// preference, cached per user and wiki. Guests never see hidden documents.
func (h *AppServer) userShowsHidden(userID string, wiki string) bool {
	if userID == "" || userID == GuestUser {
		return false
	}
	key := wiki + ":" + userID
	if item := h.UsersLruCache.Get(key); item != nil && !item.Expired() {
		return item.Value().(bool)
	}
	show := h.loadShowHiddenPreference(userID, wiki)
	h.UsersLruCache.Set(key, show, userCacheTime)
	return show
}

func (h *AppServer) loadShowHiddenPreference(userID string, wiki string) bool {
	ref := models.ParseDocumentReference(userID, wiki)
	doc, err := h.RootDAO.GetDocument(ref)
	if err != nil {
		return false
	}
	profile := doc.FirstObject(userProfileClass)
	if profile == nil {
		return false
	}
	pref, ok := profile.Field("displayHiddenDocuments")
	if !ok {
		return false
	}
	switch pref.Kind {
	case models.KindBoolean:
		return pref.Bool
	case models.KindInteger, models.KindLong:
		return pref.Int == 1
	default:
		return pref.Str == "1" || pref.Str == "true"
	}
}
