package protocol

import (
	"fmt"
	"testing"
)

func TestParseItemIDPlainName(t *testing.T) {
	id := ParseItemID("HR.Data.Employee1")
	if id.DocumentName != "HR.Data.Employee1" || id.Number != 0 {
		t.Errorf("got %+v", id)
	}
	if id.String() != "HR.Data.Employee1" {
		t.Errorf("round trip: %s", id.String())
	}
}

func TestParseItemIDWithNumber(t *testing.T) {
	id := ParseItemID("HR.Data.Employee1|3")
	if id.DocumentName != "HR.Data.Employee1" || id.Number != 3 {
		t.Errorf("got %+v", id)
	}
	if id.String() != "HR.Data.Employee1|3" {
		t.Errorf("round trip: %s", id.String())
	}
}

func TestParseItemIDNonNumericSuffix(t *testing.T) {
	// A pipe not followed by digits only is part of the document name.
	for _, raw := range []string{"Doc|abc", "Doc|", "Doc|1a", "Doc|1|x"} {
		id := ParseItemID(raw)
		if id.DocumentName != raw || id.Number != 0 {
			t.Errorf("%q: got %+v", raw, id)
		}
	}
}

func TestParseItemIDRepeatedSeparator(t *testing.T) {
	// Only the last pipe starts the occurrence suffix.
	id := ParseItemID("A|B|7")
	if id.DocumentName != "A|B" || id.Number != 7 {
		t.Errorf("got %+v", id)
	}
}

func TestItemIDRoundTrip(t *testing.T) {
	for _, name := range []string{"Doc", "Space.Doc", "Space.Sub.Doc"} {
		for n := 0; n < 4; n++ {
			in := ItemID{DocumentName: name, Number: n}
			out := ParseItemID(in.String())
			if out != in {
				t.Errorf("round trip %+v -> %q -> %+v", in, in.String(), out)
			}
		}
	}
}

func TestItemIDFormatZero(t *testing.T) {
	for n := 0; n < 12; n++ {
		id := ItemID{DocumentName: "Doc", Number: n}
		want := "Doc"
		if n > 0 {
			want = fmt.Sprintf("Doc|%d", n)
		}
		if id.String() != want {
			t.Errorf("n=%d: got %q want %q", n, id.String(), want)
		}
	}
}
