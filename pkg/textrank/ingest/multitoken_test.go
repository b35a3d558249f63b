package ingest

import (
	"reflect"
	"testing"
)

func TestPhraseParserLongestMatch(t *testing.T) {
	p := NewPhraseParser([]DictEntry{
		{Canonical: "neural network", Category: "model"},
		{Canonical: "deep neural network", Category: "model", Variants: []string{"dnn"}},
	})

	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"deep", "neural", "network", "training"}, []string{"deep neural network", "training"}},
		{[]string{"neural", "network", "weights"}, []string{"neural network", "weights"}},
		{[]string{"dnn", "weights"}, []string{"deep neural network", "weights"}},
		{[]string{"neural", "weights"}, []string{"neural", "weights"}},
		{nil, []string{}},
	}
	for _, tt := range tests {
		if got := p.Parse(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPhraseParserNormalizesEntries(t *testing.T) {
	p := NewPhraseParser([]DictEntry{
		{Canonical: "  Machine   Learning ", Variants: []string{"ML", ""}},
	})
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	got := p.Parse([]string{"ml", "machine", "learning"})
	want := []string{"machine learning", "machine learning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %q, want %q", got, want)
	}
}

func TestPhraseParserEmptyDictionary(t *testing.T) {
	in := []string{"graph", "rank"}
	if got := NewPhraseParser(nil).Parse(in); !reflect.DeepEqual(got, in) {
		t.Errorf("Parse = %q, want %q", got, in)
	}
}
