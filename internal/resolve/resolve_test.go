package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/distr1/depfix/internal/index"
)

func TestPathGuessBounds(t *testing.T) {
	if got := pathGuesses("com.example.foo"); got != nil {
		t.Fatalf("expected no guesses for short class name, got %v", got)
	}
	got := pathGuesses("com.example.foo.bar.baz")
	want := []string{
		"//src/main/java/com/example/foo/bar/baz",
		"//src/main/scala/com/example/foo/bar/baz",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected guesses (-want +got):\n%s", diff)
	}
}

func TestPathGuessUpperCaseTruncation(t *testing.T) {
	got := pathGuesses("com.example.foo.bar.baz.MyObject.InnerObject")
	want := []string{
		"//src/main/java/com/example/foo/bar/baz",
		"//src/main/scala/com/example/foo/bar/baz",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected guesses (-want +got):\n%s", diff)
	}
}

func TestGetCandidatesIntegration(t *testing.T) {
	table := index.FromMap(map[string][]index.Entry{
		"com.example.foo.bar.Baz": {{Freq: 13, Label: "//src/main/foop/blah:oop"}},
	})

	if got := GetCandidates(table, nil, "scala_library", "com.example.bar.Baz"); len(got) != 0 {
		t.Fatalf("expected empty candidates, got %v", got)
	}

	got := GetCandidates(table, nil, "scala_library", "com.example.foo.bar.Baz")
	want := []Candidate{
		{Freq: 13, Label: "//src/main/foop/blah:oop"},
		{Freq: 0, Label: "//src/main/java/com/example/foo/bar:bar"},
		{Freq: 0, Label: "//src/main/scala/com/example/foo/bar:bar"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected candidates (-want +got):\n%s", diff)
	}
}

func TestGetCandidatesFiltersForbidden(t *testing.T) {
	table := index.FromMap(map[string][]index.Entry{
		"scala.Predef": {{Freq: 99, Label: "//scala/lib:predef"}},
	})
	forbidden := Forbidden{
		"scala_library": {"//scala/lib:predef": true},
	}
	got := GetCandidates(table, forbidden, "scala_library", "scala.Predef")
	for _, c := range got {
		if c.Label == "//scala/lib:predef" {
			t.Fatalf("forbidden label leaked into candidates: %v", got)
		}
	}
}
