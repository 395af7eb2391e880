package client

import (
	"net/http/httptest"
	"testing"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/config"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/events"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
	"github.com/xwiki-contrib/api-structured-data/server"
)

func testRemote(t *testing.T) (*httptest.Server, *dao.FakeDAO) {
	t.Helper()
	fake := dao.NewFakeDAO()
	conf := config.ServerSettingsConfiguration{
		DefaultWiki:     "xwiki",
		SchemaCacheSize: 100,
		SchemaCacheTTL:  60,
	}
	app := server.NewAppServer(conf, fake, &auth.FakeAuth{}, events.NewFakeAsyncProducer(nil))
	ts := httptest.NewServer(app)
	t.Cleanup(ts.Close)
	return ts, fake
}

func seedProjects(fake *dao.FakeDAO) {
	class := models.Class{
		Reference: models.SpaceDocumentReference("xwiki", "PM", "ProjectClass"),
		Properties: []models.PropertyDefinition{
			{Name: "title", Kind: models.KindString},
			{Name: "budget", Kind: models.KindInteger},
		},
	}
	fake.Classes[class.Reference.String()] = class
	doc := models.NewDocument(models.SpaceDocumentReference("xwiki", "PM", "Apollo"))
	obj := doc.NewObject("PM.ProjectClass", 0)
	obj.SetField("title", models.StringValue(models.KindString, "Apollo"))
	obj.SetField("budget", models.IntValue(models.KindInteger, 1200))
	fake.SaveDocument(doc, "")
}

func TestClientPing(t *testing.T) {
	ts, _ := testRemote(t)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})
	up, err := c.Ping()
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if !up {
		t.Error("expected the server to report up")
	}
}

func TestClientApplications(t *testing.T) {
	ts, fake := testRemote(t)
	seedProjects(fake)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})

	names, err := c.GetApplications()
	if err != nil {
		t.Fatalf("listing applications failed: %v", err)
	}
	if len(names) != 1 || names[0] != "PM.ProjectClass" {
		t.Errorf("unexpected applications: %v", names)
	}

	summary, err := c.GetApplication("PM.ProjectClass")
	if err != nil {
		t.Fatalf("fetching application failed: %v", err)
	}
	if summary.ClassName != "PM.ProjectClass" {
		t.Errorf("unexpected class name %q", summary.ClassName)
	}
}

func TestClientSchema(t *testing.T) {
	ts, fake := testRemote(t)
	seedProjects(fake)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})

	schema, err := c.GetSchema("PM.ProjectClass")
	if err != nil {
		t.Fatalf("fetching schema failed: %v", err)
	}
	if schema["budget"].Type != "Integer" {
		t.Errorf("unexpected budget descriptor: %+v", schema["budget"])
	}
}

func TestClientUnknownApplication(t *testing.T) {
	ts, _ := testRemote(t)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})

	if _, err := c.GetSchema("Missing.App"); err == nil {
		t.Error("expected an error for an unknown application")
	}
}

func TestClientItemRoundTrip(t *testing.T) {
	ts, fake := testRemote(t)
	seedProjects(fake)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})

	record := protocol.NewItemRecord()
	record.Set("title", "Hermes")
	record.Set("budget", 800)
	result, err := c.StoreItem("PM.ProjectClass", "PM.Hermes", record)
	if err != nil {
		t.Fatalf("storing item failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected a successful store, got %v", result)
	}

	items, err := c.GetItems("PM.ProjectClass", protocol.ItemQueryOptions{})
	if err != nil {
		t.Fatalf("listing items failed: %v", err)
	}
	if items.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", items.Len())
	}

	item, err := c.GetItem("PM.ProjectClass", "PM.Hermes")
	if err != nil {
		t.Fatalf("fetching item failed: %v", err)
	}
	if got, _ := item.Get("title"); got != "Hermes" {
		t.Errorf("unexpected title %v", got)
	}

	result, err = c.DeleteItem("PM.ProjectClass", "PM.Hermes")
	if err != nil {
		t.Fatalf("deleting item failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Errorf("expected a successful delete, got %v", result)
	}
}

func TestClientQueryOptions(t *testing.T) {
	ts, fake := testRemote(t)
	seedProjects(fake)
	c := NewClient(Config{Remote: ts.URL, Wiki: "xwiki", User: "XWiki.JohnDoe"})

	items, err := c.GetItems("PM.ProjectClass", protocol.ItemQueryOptions{
		Limit:      1,
		Properties: []string{"title"},
	})
	if err != nil {
		t.Fatalf("listing items failed: %v", err)
	}
	if items.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", items.Len())
	}
	first, _ := items.Get(items.IDs()[0])
	if _, ok := first.Get("budget"); ok {
		t.Error("expected budget to be filtered out")
	}
}

func TestClientItemDocument(t *testing.T) {
	ts, fake := testRemote(t)
	seedProjects(fake)
	c := NewClient(Config{Remote: ts.URL, User: "XWiki.JohnDoe"})

	meta, err := c.GetItemDocument("PM.ProjectClass", "PM.Apollo")
	if err != nil {
		t.Fatalf("fetching item document failed: %v", err)
	}
	if meta.Hidden {
		t.Error("expected the hosting document to be visible")
	}

	patch := &protocol.DocumentMetadata{}
	patch.Set(protocol.MetaTitle, "Project Apollo")
	patch.Set(protocol.MetaHidden, true)
	result, err := c.StoreItemDocument("PM.ProjectClass", "PM.Apollo", patch)
	if err != nil {
		t.Fatalf("storing item document failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected a success result, got %v", result)
	}

	doc, err := fake.GetDocument(models.SpaceDocumentReference("xwiki", "PM", "Apollo"))
	if err != nil {
		t.Fatalf("document lookup: %v", err)
	}
	if doc.Title != "Project Apollo" || !doc.Hidden {
		t.Errorf("patch not applied: title=%q hidden=%v", doc.Title, doc.Hidden)
	}

	record, err := c.GetItem("PM.ProjectClass", "PM.Apollo")
	if err != nil {
		t.Fatalf("fetching item failed: %v", err)
	}
	if title, _ := record.Get("title"); title != "Apollo" {
		t.Errorf("item fields should survive a metadata patch, got %v", title)
	}
}
