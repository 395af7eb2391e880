package models

// Object is one instance of a class attached to a hosting document,
// addressable by its occurrence number.
type Object struct {
	// ClassName is the wiki-local full name of the class this instance
	// belongs to.
	ClassName string `db:"className"`
	// Number is the occurrence number of this instance within its document.
	Number int `db:"objNumber"`
	// Fields holds the assigned property values. A property absent from the
	// map has never been set on this instance.
	Fields map[string]FieldValue
}

// NewObject creates a blank instance of a class.
func NewObject(className string, number int) *Object {
	return &Object{
		ClassName: className,
		Number:    number,
		Fields:    make(map[string]FieldValue),
	}
}

// Field reads a property value. The second return is false when the property
// has never been set on this instance.
func (o *Object) Field(name string) (FieldValue, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// SetField assigns a property value.
func (o *Object) SetField(name string, v FieldValue) {
	if o.Fields == nil {
		o.Fields = make(map[string]FieldValue)
	}
	o.Fields[name] = v
}

// ClearField resets a property to its unset state.
func (o *Object) ClearField(name string) {
	delete(o.Fields, name)
}
