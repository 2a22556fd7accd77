package layout

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		id      string
		want    Layout
		wantErr bool
	}{
		{"us", Layout{Lang: "us"}, false},
		{"cz qwerty", Layout{Lang: "cz", Variant: "qwerty"}, false},
		{"  de   nodeadkeys ", Layout{Lang: "de", Variant: "nodeadkeys"}, false},
		{"", Layout{}, true},
		{"   ", Layout{}, true},
		{"cz qwerty extra", Layout{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := Parse(tt.id)
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("Parse(%q) error = %v, want ParseError", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestLangOf(t *testing.T) {
	if got := LangOf("cz qwerty"); got != "cz" {
		t.Errorf("LangOf(cz qwerty) = %q, want cz", got)
	}
	if got := LangOf("us"); got != "us" {
		t.Errorf("LangOf(us) = %q, want us", got)
	}
	if got := LangOf(""); got != "" {
		t.Errorf("LangOf(empty) = %q, want empty", got)
	}
}

func TestTypeOf(t *testing.T) {
	got, err := TypeOf("cz qwerty")
	if err != nil {
		t.Fatalf("TypeOf(cz qwerty): %v", err)
	}
	if got != "qwerty" {
		t.Errorf("TypeOf(cz qwerty) = %q, want qwerty", got)
	}

	_, err = TypeOf("us")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("TypeOf(us) error = %v, want ParseError", err)
	}
	if !errors.Is(err, ErrNoVariant) {
		t.Errorf("TypeOf(us) error should wrap ErrNoVariant, got %v", err)
	}
}

func TestLayoutStringRoundTrip(t *testing.T) {
	for _, id := range []string{"us", "cz qwerty", "ru phonetic"} {
		l := MustParse(id)
		if l.String() != id {
			t.Errorf("String() = %q, want %q", l.String(), id)
		}
	}
}

func TestLayoutArgs(t *testing.T) {
	if got := MustParse("us").Args(); len(got) != 1 || got[0] != "us" {
		t.Errorf("Args(us) = %v", got)
	}
	got := MustParse("cz qwerty").Args()
	if len(got) != 2 || got[0] != "cz" || got[1] != "qwerty" {
		t.Errorf("Args(cz qwerty) = %v", got)
	}
}
