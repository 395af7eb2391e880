package applications

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

const (
	// awmDescriptorClass is the class of the marker object an
	// AppWithinMinutes application carries on its home document.
	awmDescriptorClass = "AppWithinMinutes.LiveTableClass"
	// awmHomeDocument is the document the marker object is attached to.
	awmHomeDocument = "WebHome"
	// codeSpaceSuffix marks the technical space of an application, which
	// resolves to the application of the matching base space.
	codeSpaceSuffix = "Code"
)

// Resolve finds the application behind an identifier: first as an
// AppWithinMinutes application whose home space is the identifier, then as a
// class whose full name is the identifier. ErrApplicationNotFound is
// returned when neither exists.
func Resolve(svcs Services, rc models.RequestContext, appID string) (Application, error) {
	if app, err := resolveAWM(svcs, rc, appID); err == nil {
		return app, nil
	} else if err != dao.ErrNoRows {
		return nil, err
	}
	return resolveClass(svcs, rc, appID)
}

// ResolveCurrent finds the application the request's current document
// belongs to, based on its top level space. A technical space named after
// an application with a "Code" suffix resolves to that application.
func ResolveCurrent(svcs Services, rc models.RequestContext) (Application, error) {
	space := rc.Document.TopLevelSpace()
	if len(space) > len(codeSpaceSuffix) && strings.HasSuffix(space, codeSpaceSuffix) {
		trimmed := strings.TrimSuffix(space, codeSpaceSuffix)
		if app, err := Resolve(svcs, rc, trimmed); err == nil {
			return app, nil
		}
	}
	return Resolve(svcs, rc, space)
}

// resolveAWM looks for an AppWithinMinutes marker object on the home
// document of the space named by the identifier. dao.ErrNoRows means the
// identifier does not name an AppWithinMinutes application.
func resolveAWM(svcs Services, rc models.RequestContext, appID string) (Application, error) {
	homeRef := models.SpaceDocumentReference(rc.Wiki, appID, awmHomeDocument)
	home, err := svcs.DAO.GetDocument(homeRef)
	if err != nil {
		return nil, err
	}
	marker := home.FirstObject(awmDescriptorClass)
	if marker == nil {
		return nil, dao.ErrNoRows
	}
	className, _ := marker.Field("class")
	dataSpace, _ := marker.Field("dataSpace")
	if className.Str == "" {
		svcs.logger().Warn("Application descriptor has no class",
			zap.String("application", appID))
		return nil, ErrApplicationNotFound
	}
	// The dataSpace field is relative: it is appended to the application
	// name to form the storage space ("Holidays" + "Data" = "HolidaysData").
	space := appID + dataSpace.Str
	classRef := models.ParseDocumentReference(className.Str, rc.Wiki)
	class, err := svcs.DAO.GetClass(classRef)
	if err != nil {
		if err == dao.ErrNoRows {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application{svcs: svcs, rc: rc, name: appID, class: class, dataSpace: space}, nil
}

// resolveClass treats the identifier as a class full name.
func resolveClass(svcs Services, rc models.RequestContext, appID string) (Application, error) {
	classRef := models.ParseDocumentReference(appID, rc.Wiki)
	class, err := svcs.DAO.GetClass(classRef)
	if err != nil {
		if err == dao.ErrNoRows {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application{svcs: svcs, rc: rc, name: appID, class: class}, nil
}

// GetApplicationNames lists the identifiers of the applications available in
// the request's wiki, i.e. the full names of its class definitions.
func GetApplicationNames(svcs Services, rc models.RequestContext) ([]string, error) {
	return svcs.DAO.GetClassNames(rc.Wiki)
}
