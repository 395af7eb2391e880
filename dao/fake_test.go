package dao

import (
	"testing"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

func seedFake() *FakeDAO {
	fake := NewFakeDAO()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		doc := models.NewDocument(models.SpaceDocumentReference("xwiki", "HR", name))
		obj := doc.NewObject("HR.EmployeeClass", 0)
		obj.SetField("name", models.StringValue(models.KindString, name))
		fake.SaveDocument(doc, "")
	}
	hidden := models.NewDocument(models.SpaceDocumentReference("xwiki", "HR", "Ghost"))
	hidden.Hidden = true
	hidden.NewObject("HR.EmployeeClass", 0)
	fake.SaveDocument(hidden, "")
	template := models.NewDocument(models.SpaceDocumentReference("xwiki", "HR", "EmployeeTemplate"))
	template.NewObject("HR.EmployeeClass", 0)
	fake.SaveDocument(template, "")
	return fake
}

func TestFakeFindItemsFiltersAndSorts(t *testing.T) {
	fake := seedFake()
	q := NewItemQuery("xwiki", "HR.EmployeeClass", "")
	q.ExcludedNames = []string{"HR.EmployeeTemplate"}
	items, err := fake.FindItems(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	expected := []string{"HR.Alice", "HR.Bob", "HR.Carol"}
	for i, name := range expected {
		if items[i].DocumentName != name {
			t.Errorf("item %d: expected %s, got %s", i, name, items[i].DocumentName)
		}
	}
}

func TestFakeFindItemsIncludeHidden(t *testing.T) {
	fake := seedFake()
	q := NewItemQuery("xwiki", "HR.EmployeeClass", "")
	q.ExcludedNames = []string{"HR.EmployeeTemplate"}
	q.IncludeHidden = true
	items, err := fake.FindItems(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("expected hidden document included, got %d items", len(items))
	}
}

func TestFakeFindItemsPaging(t *testing.T) {
	fake := seedFake()
	q := NewItemQuery("xwiki", "HR.EmployeeClass", "")
	q.ExcludedNames = []string{"HR.EmployeeTemplate"}
	q.Limit = 1
	q.Offset = 1
	items, err := fake.FindItems(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].DocumentName != "HR.Bob" {
		t.Errorf("expected the second item only, got %+v", items)
	}
	q.Offset = 10
	items, _ = fake.FindItems(q)
	if len(items) != 0 {
		t.Errorf("offset beyond the result should yield nothing, got %+v", items)
	}
}

func TestFakeSaveAndGetDocumentCopies(t *testing.T) {
	fake := NewFakeDAO()
	doc := models.NewDocument(models.SpaceDocumentReference("xwiki", "HR", "Alice"))
	obj := doc.NewObject("HR.EmployeeClass", 0)
	obj.SetField("name", models.StringValue(models.KindString, "Alice"))
	if err := fake.SaveDocument(doc, "Properties updated"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.IsNew {
		t.Errorf("saved document should no longer be new")
	}
	got, err := fake.GetDocument(doc.Ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.FirstObject("HR.EmployeeClass").SetField("name", models.StringValue(models.KindString, "Mallory"))
	again, _ := fake.GetDocument(doc.Ref)
	if v, _ := again.FirstObject("HR.EmployeeClass").Field("name"); v.Str != "Alice" {
		t.Errorf("mutating a returned copy should not affect the store, got %q", v.Str)
	}
	if len(fake.SaveComments) != 1 || fake.SaveComments[0] != "Properties updated" {
		t.Errorf("expected recorded save comment, got %v", fake.SaveComments)
	}
}

func TestFakeGetDocumentMissing(t *testing.T) {
	fake := NewFakeDAO()
	_, err := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Nobody"))
	if err != ErrNoRows {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}
