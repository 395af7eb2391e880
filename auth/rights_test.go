package auth

import (
	"testing"

	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

func seedRights(t *testing.T, d *dao.FakeDAO, ref models.DocumentReference, rules ...map[string]models.FieldValue) {
	t.Helper()
	doc := models.NewDocument(ref)
	for i, rule := range rules {
		obj := doc.NewObject("XWiki.XWikiRights", i)
		for name, v := range rule {
			obj.SetField(name, v)
		}
	}
	d.Documents[ref.String()] = doc
}

func TestRightsOpenDocument(t *testing.T) {
	d := dao.NewFakeDAO()
	authz := NewRightsAuthorization(d)
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")

	if !authz.HasAccess("XWiki.JohnDoe", RightView, ref) {
		t.Error("expected view access on a document without rules")
	}
	if !authz.HasAccess("XWiki.JohnDoe", RightEdit, ref) {
		t.Error("expected edit access on a document without rules")
	}
}

func TestRightsAllowListRequired(t *testing.T) {
	d := dao.NewFakeDAO()
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")
	seedRights(t, d, ref, map[string]models.FieldValue{
		"levels": models.StringValue(models.KindString, "edit"),
		"users":  models.StringValue(models.KindString, "XWiki.JaneDoe"),
		"allow":  models.BoolValue(true),
	})
	authz := NewRightsAuthorization(d)

	if !authz.HasAccess("XWiki.JaneDoe", RightEdit, ref) {
		t.Error("expected the listed user to be allowed")
	}
	if authz.HasAccess("XWiki.JohnDoe", RightEdit, ref) {
		t.Error("expected an unlisted user to be denied once edit is ruled")
	}
	if !authz.HasAccess("XWiki.JohnDoe", RightView, ref) {
		t.Error("expected view to stay open, only edit is ruled")
	}
}

func TestRightsDenyWins(t *testing.T) {
	d := dao.NewFakeDAO()
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")
	seedRights(t, d, ref,
		map[string]models.FieldValue{
			"levels": models.StringValue(models.KindString, "view,edit"),
			"users":  models.StringValue(models.KindString, "XWiki.JohnDoe, XWiki.JaneDoe"),
			"allow":  models.BoolValue(true),
		},
		map[string]models.FieldValue{
			"levels": models.ListValue(models.KindStaticList, []string{"edit"}),
			"users":  models.StringValue(models.KindString, "XWiki.JohnDoe"),
			"allow":  models.BoolValue(false),
		},
	)
	authz := NewRightsAuthorization(d)

	if !authz.HasAccess("XWiki.JohnDoe", RightView, ref) {
		t.Error("expected view to remain allowed")
	}
	if err := authz.CheckAccess("XWiki.JohnDoe", RightEdit, ref); err != ErrAccessDenied {
		t.Errorf("expected ErrAccessDenied for the denied user, got %v", err)
	}
	if !authz.HasAccess("XWiki.JaneDoe", RightEdit, ref) {
		t.Error("expected the merely listed user to keep edit access")
	}
}

func TestRightsSuperadmin(t *testing.T) {
	d := dao.NewFakeDAO()
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")
	seedRights(t, d, ref, map[string]models.FieldValue{
		"levels": models.StringValue(models.KindString, "view"),
		"users":  models.StringValue(models.KindString, "XWiki.JaneDoe"),
		"allow":  models.BoolValue(true),
	})
	authz := NewRightsAuthorization(d)

	if !authz.HasAccess(Superadmin, RightView, ref) {
		t.Error("expected the superadmin to bypass the rules")
	}
}

func TestRightsNoUser(t *testing.T) {
	d := dao.NewFakeDAO()
	authz := NewRightsAuthorization(d)
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")

	if err := authz.CheckAccess("", RightView, ref); err != ErrUserNotSpecified {
		t.Errorf("expected ErrUserNotSpecified, got %v", err)
	}
}

func TestRightsIntegerAllowFlag(t *testing.T) {
	d := dao.NewFakeDAO()
	ref := models.ParseDocumentReference("HR.Employees", "xwiki")
	seedRights(t, d, ref, map[string]models.FieldValue{
		"levels": models.StringValue(models.KindString, "view"),
		"users":  models.StringValue(models.KindString, "XWiki.JohnDoe"),
		"allow":  models.IntValue(models.KindInteger, 0),
	})
	authz := NewRightsAuthorization(d)

	if authz.HasAccess("XWiki.JohnDoe", RightView, ref) {
		t.Error("expected the integer deny flag to be honored")
	}
}
