package applications

import (
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// GetSchema builds the field descriptors of the application's class. Static
// list fields carry their raw possible values; database list fields carry
// the resolved list, and when the resolution fails the field is still
// described, just without values. Password fields are never described.
func (app *application) GetSchema() (protocol.Schema, error) {
	schema := protocol.Schema{}
	if !app.svcs.Auth.HasAccess(app.rc.User, auth.RightView, app.class.Reference) {
		return schema, nil
	}
	for _, p := range app.class.EnabledProperties() {
		if p.Kind == models.KindPassword {
			continue
		}
		descriptor := protocol.FieldDescriptor{Type: string(p.Kind)}
		switch p.Kind {
		case models.KindStaticList:
			descriptor.Values = p.Values
		case models.KindDBList:
			values, err := app.svcs.DAO.GetListValues(app.rc.Wiki, app.class.FullName(), p)
			if err != nil {
				app.svcs.logger().Error("Could not resolve list values",
					zap.String("classname", app.class.FullName()),
					zap.String("property", p.Name),
					zap.Error(err))
			} else {
				descriptor.Values = values
			}
		}
		schema[p.Name] = descriptor
	}
	return schema, nil
}
