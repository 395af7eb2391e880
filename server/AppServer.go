package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"runtime/debug"

	"github.com/karlseguin/ccache"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/config"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/events"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/util"
)

// AppServer is an http.Handler implementation that holds most service dependencies.
type AppServer struct {
	// Port is the TCP port that the web server listens on.
	Port string
	// Bind is the Network Address that the web server will use.
	Bind string
	// Addr is the combined network address and port the server listens on.
	Addr string
	// RootDAO is the interface contract with the database.
	RootDAO dao.DAO
	// Auth decides view and edit access for the acting user.
	Auth auth.Authorization
	// Conf is the configuration passed to the application.
	Conf config.ServerSettingsConfiguration
	// ServicePrefix is the base url. Used when matching routes.
	ServicePrefix string
	// EventQueue is a Publisher interface we use to publish our main event stream.
	EventQueue events.Publisher
	// Routes holds the compiled regular expressions used when matching routes. See InitRegex method.
	Routes *StaticRx
	// SchemaCache holds recently extracted application schemas.
	SchemaCache *ccache.Cache
	// UsersLruCache contains a cache of user profile preferences with support to
	// purge those least recently used when filling.
	UsersLruCache *ccache.Cache
}

// StaticRx holds the routes of the API as compiled regular expressions.
type StaticRx struct {
	Ping         *regexp.Regexp
	Applications *regexp.Regexp
	Application  *regexp.Regexp
	Schema       *regexp.Regexp
	Items        *regexp.Regexp
	Item         *regexp.Regexp
	ItemDocument *regexp.Regexp
}

// NewAppServer creates an AppServer.
func NewAppServer(conf config.ServerSettingsConfiguration, d dao.DAO, authz auth.Authorization, queue events.Publisher) *AppServer {
	app := AppServer{
		Port:          conf.ListenPort,
		Bind:          conf.ListenBind,
		Addr:          conf.ListenBind + ":" + conf.ListenPort,
		RootDAO:       d,
		Auth:          authz,
		Conf:          conf,
		ServicePrefix: conf.BasePath,
		EventQueue:    queue,
		SchemaCache:   ccache.New(ccache.Configure().MaxSize(conf.SchemaCacheSize).ItemsToPrune(50)),
		UsersLruCache: ccache.New(ccache.Configure().MaxSize(1000).ItemsToPrune(50)),
	}
	app.InitRegex()
	return &app
}

// InitRegex compiles static regexes and initializes the AppServer Routes field.
// Every application route exists in two forms: against the default wiki, and
// prefixed with an explicit wiki name.
func (h *AppServer) InitRegex() {
	route := func(path string) *regexp.Regexp {
		return regexp.MustCompile("^" + h.ServicePrefix + `(?:/wikis/(?P<wikiName>[^/]+))?` + path)
	}
	h.Routes = &StaticRx{
		Ping:         regexp.MustCompile("^" + h.ServicePrefix + "/ping$"),
		Applications: route("/applications/?$"),
		Application:  route("/applications/(?P<appId>[^/]+)$"),
		Schema:       route("/applications/(?P<appId>[^/]+)/schema$"),
		Items:        route("/applications/(?P<appId>[^/]+)/items/?$"),
		Item:         route("/applications/(?P<appId>[^/]+)/items/(?P<itemId>.+)$"),
		ItemDocument: route("/applications/(?P<appId>[^/]+)/items/(?P<itemId>[^/]+)/document$"),
	}
}

// webRequest carries the resolved request scope into the handlers: the
// per-request logger, the acting user's request context, and the capture
// groups of the matched route.
type webRequest struct {
	Logger *zap.Logger
	RC     models.RequestContext
	Caps   map[string]string
}

// When there is a panic, all deferred functions get executed.
func logCrashInServeHTTP(logger *zap.Logger, w http.ResponseWriter) {
	if r := recover(); r != nil {
		logger.Error("server crash",
			zap.Any("context", r),
			zap.String("stack", string(debug.Stack())))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ServeHTTP handles the routing of requests
func (h *AppServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := newSessionID()
	w.Header().Add("sessionid", sessionID)

	caller := CallerFromRequest(r)
	logger := config.RootLogger.With(
		zap.String("session", sessionID),
		zap.String("user", caller.UserID))
	defer logCrashInServeHTTP(logger, w)

	logger.Info("transaction start",
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI))

	uri := r.URL.Path
	var herr *AppError

	if h.Routes.Ping.MatchString(uri) && r.Method == "GET" {
		herr = h.ping(w, r)
		sendAppErrorResponse(logger, w, herr)
		return
	}

	route, caps := h.matchRoute(r.Method, uri)
	if route == "" {
		herr = do404(caller, r)
		sendAppErrorResponse(logger, w, herr)
		return
	}

	req := &webRequest{
		Logger: logger,
		RC:     h.requestContext(caller, caps),
		Caps:   caps,
	}

	switch route {
	case routeApplications:
		herr = h.listApplications(req, w, r)
	case routeApplication:
		herr = h.getApplication(req, w, r)
	case routeSchema:
		herr = h.getSchema(req, w, r)
	case routeItems:
		herr = h.getItems(req, w, r)
	case routeGetItem:
		herr = h.getItem(req, w, r)
	case routeStoreItem:
		herr = h.storeItem(req, w, r)
	case routeDeleteItem:
		herr = h.deleteItem(req, w, r)
	case routeItemDocument:
		herr = h.getItemDocument(req, w, r)
	case routeStoreItemDocument:
		herr = h.storeItemDocument(req, w, r)
	}
	sendAppErrorResponse(logger, w, herr)
}

// Route identifiers matched by matchRoute.
const (
	routeApplications = "listApplications"
	routeApplication  = "getApplication"
	routeSchema       = "getSchema"
	routeItems        = "getItems"
	routeGetItem      = "getItem"
	routeStoreItem    = "storeItem"
	routeDeleteItem   = "deleteItem"

	routeItemDocument      = "getItemDocument"
	routeStoreItemDocument = "storeItemDocument"
)

// matchRoute finds the operation for a method and path, along with the
// capture groups of the matched route. Order matters: the more specific
// patterns are tried first.
func (h *AppServer) matchRoute(method string, uri string) (string, map[string]string) {
	switch method {
	case "GET":
		switch {
		case h.Routes.Schema.MatchString(uri):
			return routeSchema, util.GetRegexCaptureGroups(uri, h.Routes.Schema)
		case h.Routes.Items.MatchString(uri):
			return routeItems, util.GetRegexCaptureGroups(uri, h.Routes.Items)
		case h.Routes.ItemDocument.MatchString(uri):
			return routeItemDocument, util.GetRegexCaptureGroups(uri, h.Routes.ItemDocument)
		case h.Routes.Item.MatchString(uri):
			return routeGetItem, util.GetRegexCaptureGroups(uri, h.Routes.Item)
		case h.Routes.Applications.MatchString(uri):
			return routeApplications, util.GetRegexCaptureGroups(uri, h.Routes.Applications)
		case h.Routes.Application.MatchString(uri):
			return routeApplication, util.GetRegexCaptureGroups(uri, h.Routes.Application)
		}
	case "PUT", "POST":
		if h.Routes.ItemDocument.MatchString(uri) {
			return routeStoreItemDocument, util.GetRegexCaptureGroups(uri, h.Routes.ItemDocument)
		}
		if h.Routes.Item.MatchString(uri) {
			return routeStoreItem, util.GetRegexCaptureGroups(uri, h.Routes.Item)
		}
	case "DELETE":
		if h.Routes.Item.MatchString(uri) {
			return routeDeleteItem, util.GetRegexCaptureGroups(uri, h.Routes.Item)
		}
	}
	return "", nil
}

// requestContext resolves the acting user's request scope: the wiki named by
// the route or the configured default, and the user's show-hidden preference
// read from their profile document.
func (h *AppServer) requestContext(caller Caller, caps map[string]string) models.RequestContext {
	wiki := caps["wikiName"]
	if wiki == "" {
		wiki = h.Conf.DefaultWiki
	}
	return models.RequestContext{
		User:                caller.UserID,
		Wiki:                wiki,
		ShowHiddenDocuments: h.userShowsHidden(caller.UserID, wiki),
	}
}

func do404(caller Caller, r *http.Request) *AppError {
	msg := caller.UserID + " from address " + r.RemoteAddr + " unhandled operation " + r.Method + " " + r.URL.Path
	return NewAppError(404, nil, "Resource not found: "+msg)
}

// jsonResponse writes a response, and should be called for all HTTP handlers that return JSON.
func jsonResponse(w http.ResponseWriter, i interface{}) {
	w.Header().Set("Content-Type", "application/json")
	jsonData, _ := json.MarshalIndent(i, "", "  ")
	w.Write(jsonData)
}

// newSessionID is a helper that ignores the error from util.NewGUID. If that
// function ever returns an error, something is seriously wrong with the
// underlying hardware.
func newSessionID() string {
	guid, err := util.NewGUID()
	if err != nil {
		return "unknown"
	}
	return guid
}
