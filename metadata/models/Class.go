package models

import "strings"

// PropertyDefinition describes one typed property of a class.
type PropertyDefinition struct {
	// Name is the property name, unique within the class.
	Name string `db:"propName"`
	// Kind is the property type.
	Kind FieldKind `db:"propKind"`
	// Values holds the raw delimiter-separated possible values of a
	// StaticList property, e.g. "Paris|Iasi".
	Values string `db:"listValues"`
	// ListQuery is the statement a DBList property resolves its possible
	// values from.
	ListQuery string `db:"listQuery"`
	// Disabled properties are kept in the class definition but excluded from
	// the schema and from item records.
	Disabled bool `db:"disabled"`
}

// Class is the named ordered set of typed property definitions an application
// is built on. A Class is read-only once fetched.
type Class struct {
	// Reference locates the class definition document.
	Reference DocumentReference
	// Properties holds the property definitions in class order.
	Properties []PropertyDefinition
}

// FullName returns the wiki-local serialized class name, e.g. "HR.EmployeeClass".
func (c Class) FullName() string {
	return c.Reference.FullName()
}

// EnabledProperties returns the properties of the class that are not
// disabled, preserving class order.
func (c Class) EnabledProperties() []PropertyDefinition {
	props := make([]PropertyDefinition, 0, len(c.Properties))
	for _, p := range c.Properties {
		if !p.Disabled {
			props = append(props, p)
		}
	}
	return props
}

// Property looks up a property definition by name.
func (c Class) Property(name string) (PropertyDefinition, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDefinition{}, false
}

// TemplateNames lists the document names conventionally used for the class
// template given a base name. Both naming schemes are covered: "Application"
// yields "ApplicationTemplate", and "ApplicationClass" additionally yields
// "ApplicationTemplate" by stripping the "Class" suffix.
func TemplateNames(base string) []string {
	names := []string{base + "Template"}
	if len(base) > 5 && strings.HasSuffix(base, "Class") {
		names = append(names, strings.TrimSuffix(base, "Class")+"Template")
	}
	return names
}
