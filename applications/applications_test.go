package applications

import (
	"errors"
	"testing"
	"time"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

func testContext() models.RequestContext {
	return models.RequestContext{User: "XWiki.JohnDoe", Wiki: "xwiki"}
}

func testServices() (Services, *dao.FakeDAO, *auth.FakeAuth) {
	fake := dao.NewFakeDAO()
	fakeAuth := &auth.FakeAuth{}
	return Services{DAO: fake, Auth: fakeAuth}, fake, fakeAuth
}

func seedEmployeeClass(fake *dao.FakeDAO) models.Class {
	class := models.Class{
		Reference: models.SpaceDocumentReference("xwiki", "HR", "EmployeeClass"),
		Properties: []models.PropertyDefinition{
			{Name: "name", Kind: models.KindString},
			{Name: "age", Kind: models.KindInteger},
			{Name: "city", Kind: models.KindStaticList, Values: "Paris|Iasi"},
			{Name: "team", Kind: models.KindDBList, ListQuery: "select distinct team from teams"},
			{Name: "secret", Kind: models.KindPassword},
		},
	}
	fake.Classes[class.Reference.String()] = class
	fake.ListValues["HR.EmployeeClass#team"] = []string{"Search", "Platform"}
	return class
}

func seedEmployee(fake *dao.FakeDAO, name string, age int64, hidden bool) {
	doc := models.NewDocument(models.SpaceDocumentReference("xwiki", "HR", name))
	doc.Hidden = hidden
	obj := doc.NewObject("HR.EmployeeClass", 0)
	obj.SetField("name", models.StringValue(models.KindString, name))
	obj.SetField("age", models.IntValue(models.KindInteger, age))
	fake.SaveDocument(doc, "")
}

func TestResolveClassApplication(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, err := Resolve(svcs, testContext(), "HR.EmployeeClass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name() != "HR.EmployeeClass" {
		t.Errorf("expected application name HR.EmployeeClass, got %s", app.Name())
	}
	if app.ClassReference().FullName() != "HR.EmployeeClass" {
		t.Errorf("unexpected class reference %s", app.ClassReference().FullName())
	}
}

func TestResolveUnknownApplication(t *testing.T) {
	svcs, _, _ := testServices()
	if _, err := Resolve(svcs, testContext(), "Nowhere.NothingClass"); err != ErrApplicationNotFound {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func seedAWMApplication(fake *dao.FakeDAO) {
	class := models.Class{
		Reference: models.SpaceDocumentReference("xwiki", "Holidays", "HolidaysClass"),
		Properties: []models.PropertyDefinition{
			{Name: "destination", Kind: models.KindString},
		},
	}
	fake.Classes[class.Reference.String()] = class
	home := models.NewDocument(models.SpaceDocumentReference("xwiki", "Holidays", "WebHome"))
	marker := home.NewObject("AppWithinMinutes.LiveTableClass", 0)
	marker.SetField("class", models.StringValue(models.KindString, "Holidays.HolidaysClass"))
	marker.SetField("dataSpace", models.StringValue(models.KindString, "Data"))
	fake.SaveDocument(home, "")
}

func TestResolveAWMApplication(t *testing.T) {
	svcs, fake, _ := testServices()
	seedAWMApplication(fake)
	app, err := Resolve(svcs, testContext(), "Holidays")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.ClassReference().FullName() != "Holidays.HolidaysClass" {
		t.Errorf("unexpected class reference %s", app.ClassReference().FullName())
	}
}

func TestAWMDataSpaceAppendedToName(t *testing.T) {
	svcs, fake, _ := testServices()
	seedAWMApplication(fake)
	trip := models.NewDocument(models.SpaceDocumentReference("xwiki", "HolidaysData", "Rome"))
	trip.NewObject("Holidays.HolidaysClass", 0)
	fake.SaveDocument(trip, "")
	stray := models.NewDocument(models.SpaceDocumentReference("xwiki", "Data", "Elsewhere"))
	stray.NewObject("Holidays.HolidaysClass", 0)
	fake.SaveDocument(stray, "")

	app, err := Resolve(svcs, testContext(), "Holidays")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := app.GetItems(protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.IDs()[0] != "Rome" {
		t.Errorf("expected only the HolidaysData item, got %v", records.IDs())
	}
}

func TestAWMEmptyDataSpace(t *testing.T) {
	svcs, fake, _ := testServices()
	seedAWMApplication(fake)
	home, _ := fake.GetDocument(models.SpaceDocumentReference("xwiki", "Holidays", "WebHome"))
	marker := home.FirstObject("AppWithinMinutes.LiveTableClass")
	marker.SetField("dataSpace", models.StringValue(models.KindString, ""))
	fake.SaveDocument(&home, "")
	trip := models.NewDocument(models.SpaceDocumentReference("xwiki", "Holidays", "Rome"))
	trip.NewObject("Holidays.HolidaysClass", 0)
	fake.SaveDocument(trip, "")

	app, err := Resolve(svcs, testContext(), "Holidays")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := app.GetItems(protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.IDs()[0] != "Rome" {
		t.Errorf("expected the item of the application's own space, got %v", records.IDs())
	}
}

func TestResolveCurrentFromCodeSpace(t *testing.T) {
	svcs, fake, _ := testServices()
	seedAWMApplication(fake)
	rc := testContext()
	rc.Document = models.SpaceDocumentReference("xwiki", "HolidaysCode", "Sheet")
	app, err := ResolveCurrent(svcs, rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name() != "Holidays" {
		t.Errorf("expected the Holidays application, got %s", app.Name())
	}
}

func TestGetSchema(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	schema, err := app.GetSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := schema["secret"]; ok {
		t.Error("password field must not be described")
	}
	if schema["name"].Type != "String" {
		t.Errorf("unexpected type for name: %s", schema["name"].Type)
	}
	if schema["city"].Values != "Paris|Iasi" {
		t.Errorf("static list should carry its raw values, got %v", schema["city"].Values)
	}
	values, ok := schema["team"].Values.([]string)
	if !ok || len(values) != 2 || values[0] != "Search" {
		t.Errorf("database list should carry resolved values, got %v", schema["team"].Values)
	}
}

func TestGetSchemaListFailureKeepsField(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	fake.ListErrs["HR.EmployeeClass#team"] = errors.New("query failed")
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	schema, err := app.GetSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	descriptor, ok := schema["team"]
	if !ok {
		t.Fatal("field should still be described when its list resolution fails")
	}
	if descriptor.Values != nil {
		t.Errorf("failed resolution should leave values empty, got %v", descriptor.Values)
	}
}

func TestGetSchemaWithoutViewAccess(t *testing.T) {
	svcs, fake, fakeAuth := testServices()
	seedEmployeeClass(fake)
	fakeAuth.DenyView = []string{"HR.EmployeeClass"}
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	schema, err := app.GetSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema) != 0 {
		t.Errorf("expected an empty schema, got %v", schema)
	}
}

func TestGetItemsExcludesTemplatesAndHidden(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	seedEmployee(fake, "Alice", 31, false)
	seedEmployee(fake, "Ghost", 99, true)
	seedEmployee(fake, "EmployeeTemplate", 0, false)
	seedEmployee(fake, "EmployeeClassTemplate", 0, false)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")

	records, err := app.GetItems(protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.IDs()[0] != "HR.Alice" {
		t.Fatalf("expected only HR.Alice, got %v", records.IDs())
	}

	records, err = app.GetItems(protocol.ItemQueryOptions{Hidden: "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 2 {
		t.Errorf("expected the hidden item included, got %d records", records.Len())
	}
}

func TestGetItemsSkipsDeniedDocuments(t *testing.T) {
	svcs, fake, fakeAuth := testServices()
	seedEmployeeClass(fake)
	seedEmployee(fake, "Alice", 31, false)
	seedEmployee(fake, "Bob", 27, false)
	fakeAuth.DenyView = []string{"HR.Bob"}
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	records, err := app.GetItems(protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.IDs()[0] != "HR.Alice" {
		t.Errorf("expected the denied item skipped, got %v", records.IDs())
	}
}

func TestGetItemsPropertiesFilter(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	seedEmployee(fake, "Alice", 31, false)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	records, err := app.GetItems(protocol.ItemQueryOptions{Properties: []string{"name"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 {
		t.Fatalf("expected one record, got %d", records.Len())
	}
	alice, _ := records.Get("HR.Alice")
	if alice.Len() != 1 {
		t.Errorf("expected a single field, got %v", alice.Keys())
	}
}

func TestAWMItemIdentifiers(t *testing.T) {
	svcs, fake, _ := testServices()
	seedAWMApplication(fake)
	trip := models.NewDocument(models.SpaceDocumentReference("xwiki", "HolidaysData", "Rome"))
	obj := trip.NewObject("Holidays.HolidaysClass", 0)
	obj.SetField("destination", models.StringValue(models.KindString, "Rome"))
	fake.SaveDocument(trip, "")

	app, _ := Resolve(svcs, testContext(), "Holidays")
	records, err := app.GetItems(protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.IDs()[0] != "Rome" {
		t.Fatalf("expected the space local id Rome, got %v", records.IDs())
	}
	record, err := app.GetItem("Rome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := record.Get("destination"); v != "Rome" {
		t.Errorf("expected destination Rome, got %v", v)
	}
}

func TestGetItemMissingOrDenied(t *testing.T) {
	svcs, fake, fakeAuth := testServices()
	seedEmployeeClass(fake)
	seedEmployee(fake, "Alice", 31, false)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")

	record, err := app.GetItem("HR.Nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !record.IsEmpty() {
		t.Errorf("missing item should yield an empty record, got %+v", record)
	}

	fakeAuth.DenyView = []string{"HR.Alice"}
	record, err = app.GetItem("HR.Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !record.IsEmpty() {
		t.Errorf("denied item should yield an empty record, got %+v", record)
	}
}

func TestStoreItemCreatesDocument(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")

	record := protocol.NewItemRecord()
	record.Set("name", "Carol")
	record.Set("age", "29")
	result := app.StoreItem("HR.Carol", record)
	if !result.IsSuccess() {
		t.Fatalf("expected success, got %v", result)
	}
	doc, err := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Carol"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Creator != "XWiki.JohnDoe" || doc.Author != "XWiki.JohnDoe" {
		t.Errorf("acting user should be creator and author, got %s / %s", doc.Creator, doc.Author)
	}
	obj := doc.Object("HR.EmployeeClass", 0)
	if obj == nil {
		t.Fatal("expected the class instance created")
	}
	if v, _ := obj.Field("age"); v.Int != 29 {
		t.Errorf("expected the age coerced to 29, got %d", v.Int)
	}
	if n := len(fake.SaveComments); n == 0 || fake.SaveComments[n-1] != "Properties updated" {
		t.Errorf("expected the store revision comment, got %v", fake.SaveComments)
	}
}

func TestStoreItemMetadataPatchOverridesAuthor(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")

	record := protocol.NewItemRecord()
	record.Set("name", "Carol")
	meta := &protocol.DocumentMetadata{}
	meta.Set(protocol.MetaAuthor, "XWiki.Robot")
	meta.Set(protocol.MetaHidden, true)
	record.DocumentFields = meta
	if result := app.StoreItem("HR.Carol", record); !result.IsSuccess() {
		t.Fatalf("expected success, got %v", result)
	}
	doc, _ := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Carol"))
	if doc.Author != "XWiki.Robot" {
		t.Errorf("metadata patch should override the author, got %s", doc.Author)
	}
	if !doc.Hidden {
		t.Error("metadata patch should mark the document hidden")
	}
}

func TestStoreItemMetadataPatchUpdateDate(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")

	when := time.Date(2019, 5, 4, 12, 0, 0, 0, time.UTC)
	record := protocol.NewItemRecord()
	record.Set("name", "Carol")
	meta := &protocol.DocumentMetadata{}
	meta.Set(protocol.MetaUpdate, when)
	record.DocumentFields = meta
	if result := app.StoreItem("HR.Carol", record); !result.IsSuccess() {
		t.Fatalf("expected success, got %v", result)
	}
	doc, _ := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Carol"))
	if !doc.UpdateDate.Equal(when) {
		t.Errorf("patched update date discarded, got %v", doc.UpdateDate)
	}

	record = protocol.NewItemRecord()
	record.Set("name", "Carol")
	if result := app.StoreItem("HR.Carol", record); !result.IsSuccess() {
		t.Fatalf("expected success, got %v", result)
	}
	doc, _ = fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Carol"))
	if doc.UpdateDate.Equal(when) {
		t.Error("a plain store should stamp a fresh update date")
	}
}

func TestStoreItemDenied(t *testing.T) {
	svcs, fake, fakeAuth := testServices()
	seedEmployeeClass(fake)
	fakeAuth.DenyEdit = []string{"HR.Carol"}
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	record := protocol.NewItemRecord()
	record.Set("name", "Carol")
	result := app.StoreItem("HR.Carol", record)
	if result.IsSuccess() {
		t.Error("expected an error result")
	}
	if result[protocol.ResultError] == "" {
		t.Errorf("expected an error message, got %v", result)
	}
	if _, err := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Carol")); err != dao.ErrNoRows {
		t.Error("denied store must not create the document")
	}
}

func TestDeleteItem(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	seedEmployee(fake, "Alice", 31, false)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	if result := app.DeleteItem("HR.Alice"); !result.IsSuccess() {
		t.Fatalf("expected success, got %v", result)
	}
	doc, err := fake.GetDocument(models.SpaceDocumentReference("xwiki", "HR", "Alice"))
	if err != nil {
		t.Fatal("the hosting document should be kept")
	}
	if doc.Object("HR.EmployeeClass", 0) != nil {
		t.Error("the class instance should be removed")
	}
}

func TestDeleteItemMissing(t *testing.T) {
	svcs, fake, _ := testServices()
	seedEmployeeClass(fake)
	app, _ := Resolve(svcs, testContext(), "HR.EmployeeClass")
	if result := app.DeleteItem("HR.Nobody"); result.IsSuccess() {
		t.Error("expected an error result for a missing item")
	}
}
