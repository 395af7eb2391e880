package models

import "testing"

func TestParseDocumentReference(t *testing.T) {
	ref := ParseDocumentReference("HR.Data.Employee1", "xwiki")
	if ref.Wiki != "xwiki" || ref.Space != "HR.Data" || ref.Name != "Employee1" {
		t.Errorf("got %+v", ref)
	}
	if ref.FullName() != "HR.Data.Employee1" {
		t.Errorf("FullName: %s", ref.FullName())
	}
	if ref.String() != "xwiki:HR.Data.Employee1" {
		t.Errorf("String: %s", ref.String())
	}
	if ref.TopLevelSpace() != "HR" {
		t.Errorf("TopLevelSpace: %s", ref.TopLevelSpace())
	}
}

func TestParseDocumentReferenceExplicitWiki(t *testing.T) {
	ref := ParseDocumentReference("sales:Invoices.InvoiceClass", "xwiki")
	if ref.Wiki != "sales" {
		t.Errorf("explicit wiki qualifier should win, got %s", ref.Wiki)
	}
	if ref.Space != "Invoices" || ref.Name != "InvoiceClass" {
		t.Errorf("got %+v", ref)
	}
}

func TestParseDocumentReferenceNoSpace(t *testing.T) {
	ref := ParseDocumentReference("Sandbox", "xwiki")
	if ref.Space != "Main" || ref.Name != "Sandbox" {
		t.Errorf("unqualified name should resolve into Main, got %+v", ref)
	}
}

func TestTemplateNames(t *testing.T) {
	names := TemplateNames("Application")
	if len(names) != 1 || names[0] != "ApplicationTemplate" {
		t.Errorf("got %v", names)
	}
	names = TemplateNames("ApplicationClass")
	if len(names) != 2 || names[0] != "ApplicationClassTemplate" || names[1] != "ApplicationTemplate" {
		t.Errorf("got %v", names)
	}
	// "Class" alone is too short to be treated as a suffixed name
	names = TemplateNames("Class")
	if len(names) != 1 {
		t.Errorf("got %v", names)
	}
}
