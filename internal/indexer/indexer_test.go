package indexer

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExternalWorkspaceName(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"//external:third_party_jvm", "third_party_jvm"},
		{"//external:", ""},
		{"//foo:bar", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := externalWorkspaceName(c.line); got != c.want {
			t.Errorf("externalWorkspaceName(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

type fakeRunner struct {
	responses map[string][]byte
	calls     [][]string
}

func (f *fakeRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	f.calls = append(f.calls, args)
	key := args[len(args)-1]
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return nil, nil
}

func TestRootsBlacklistsOwnWorkspaceAndExtras(t *testing.T) {
	f := &fakeRunner{responses: map[string][]byte{
		"--output=label": []byte("//external:myworkspace\n//external:third_party_jvm\n//external:noisy\n"),
	}}
	roots, err := Roots(context.Background(), f, "myworkspace", []string{"@noisy//..."})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"//...", "@third_party_jvm//..."}
	if diff := cmp.Diff(want, roots); diff != "" {
		t.Errorf("Roots() mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchStrings(t *testing.T) {
	got := batchStrings([]string{"a", "b", "c", "d", "e"}, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batchStrings() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassNameFromEntry(t *testing.T) {
	cases := []struct {
		entry string
		want  string
	}{
		{"com/example/Foo.class", "com.example.Foo"},
		{"com/example/Foo$Inner.class", "com.example.Foo.Inner"},
		{"Top.class", "Top"},
	}
	for _, c := range cases {
		if got := classNameFromEntry(c.entry); got != c.want {
			t.Errorf("classNameFromEntry(%q) = %q, want %q", c.entry, got, c.want)
		}
	}
}

func TestInvert(t *testing.T) {
	classesByTarget := map[string][]string{
		"//a:a": {"com.example.Foo"},
		"//b:b": {"com.example.Foo", "com.example.Bar"},
	}
	popularity := map[string]int{"//a:a": 1, "//b:b": 3}

	table := Invert(classesByTarget, popularity)

	entries, ok := table.Get("com.example.Foo")
	if !ok || len(entries) != 2 {
		t.Fatalf("Get(com.example.Foo) = %v, %v", entries, ok)
	}
	if entries[0].Label != "//b:b" || entries[0].Freq != 3 {
		t.Errorf("expected //b:b ranked first by popularity, got %+v", entries[0])
	}

	entries, ok = table.Get("com.example.Bar")
	if !ok || len(entries) != 1 || entries[0].Label != "//b:b" {
		t.Errorf("Get(com.example.Bar) = %v, %v", entries, ok)
	}
}

func TestParseLabelKindOutput(t *testing.T) {
	out := []byte("scala_library rule //foo:bar\njava_library rule //baz:qux\n\n")
	got, err := parseLabelKindOutput(out)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"//foo:bar", "//baz:qux"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseLabelKindOutput() mismatch (-want +got):\n%s", diff)
	}
}
