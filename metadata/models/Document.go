package models

import "time"

// Document is a wiki page hosting zero or more class instances along with
// its own metadata fields.
type Document struct {
	// Ref locates the document.
	Ref DocumentReference
	// Author is the serialized reference of the last author.
	Author string `db:"author"`
	// Creator is the serialized reference of the user that created the document.
	Creator string `db:"creator"`
	// CreationDate is when the document was created.
	CreationDate time.Time `db:"createdDate"`
	// UpdateDate is when the document content was last updated.
	UpdateDate time.Time `db:"updatedDate"`
	// Parent is the serialized reference of the parent document, if any.
	Parent string `db:"parent"`
	// Hidden documents are excluded from default listings.
	Hidden bool `db:"hidden"`
	// Title is the display title.
	Title string `db:"title"`
	// Content is the wiki markup body.
	Content string `db:"content"`
	// IsNew is true until the document has been saved once.
	IsNew bool
	// PreserveUpdateDate keeps an explicitly assigned UpdateDate through
	// the next save instead of the save timestamp. Cleared by the save.
	PreserveUpdateDate bool
	// Objects holds the class instances attached to this document.
	Objects []*Object
}

// NewDocument creates an unsaved document.
func NewDocument(ref DocumentReference) *Document {
	return &Document{Ref: ref, IsNew: true}
}

// Object returns the instance of a class with the given occurrence number,
// or nil when no such instance exists.
func (d *Document) Object(className string, number int) *Object {
	for _, o := range d.Objects {
		if o.ClassName == className && o.Number == number {
			return o
		}
	}
	return nil
}

// FirstObject returns the first instance of a class on the document, or nil.
func (d *Document) FirstObject(className string) *Object {
	for _, o := range d.Objects {
		if o.ClassName == className {
			return o
		}
	}
	return nil
}

// NewObject attaches a blank instance of a class to the document. The
// requested occurrence number is honored when free and non-negative;
// otherwise the next free number is allocated.
func (d *Document) NewObject(className string, number int) *Object {
	if number < 0 || d.Object(className, number) != nil {
		number = d.nextObjectNumber(className)
	}
	obj := NewObject(className, number)
	d.Objects = append(d.Objects, obj)
	return obj
}

// RemoveObject detaches an instance from the document. Returns false when
// the instance was not attached.
func (d *Document) RemoveObject(obj *Object) bool {
	for i, o := range d.Objects {
		if o == obj {
			d.Objects = append(d.Objects[:i], d.Objects[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) nextObjectNumber(className string) int {
	next := 0
	for _, o := range d.Objects {
		if o.ClassName == className && o.Number >= next {
			next = o.Number + 1
		}
	}
	return next
}
