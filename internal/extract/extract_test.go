package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/distr1/depfix/internal/event"
)

func TestExtractScalaFamilies(t *testing.T) {
	input := `src/main/scala/com/example/Example.scala:2: error: object foo is not a member of package com.example
import com.example.foo.bar.Baz
src/main/scala/com/example/Example.scala:40: error: not found: object foo
src/main/scala/com/example/Example.scala:8: error: not found: type asdf
src/main/scala/com/example/Example.scala:8: error: not found: value Foop
src/main/scala/com/example/D.scala:9: error: Symbol 'type com.example.a.ATrait' is missing from the classpath.
`
	got := extractScala(input, "", newImportCache())
	var classNames []string
	for _, r := range got {
		classNames = append(classNames, r.ClassName)
	}
	want := []string{"foo", "foo", "asdf", "Foop", "com.example.a.ATrait", "com.example.a.ATrait"}
	if diff := cmp.Diff(want, classNames); diff != "" {
		t.Fatalf("unexpected class names (-want +got):\n%s", diff)
	}
}

func TestExtractJavaPackageDoesNotExist(t *testing.T) {
	input := "src/main/java/com/example/Example.java:3: error: package com.google.common.base does not exist\n" +
		"    import com.google.common.base.Preconditions;\n"
	got := extractJava(input, "", newImportCache())
	if len(got) != 1 || got[0].ClassName != "com.google.common.base" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractJavaCannotFindSymbol(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Example.java")
	contents := `package com.example.foo;

import javax.annotation.Nullable;
`
	if err := os.WriteFile(src, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	input := src + ":3: error: cannot find symbol\nimport javax.annotation.Nullable;\n"
	got := extractJava(input, "", newImportCache())
	if len(got) != 1 || got[0].ClassName != "javax.annotation.Nullable" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractJavaWildcardExpansion(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Example.java")
	contents := `package com.example.foo;

import com.example.util.*;

public class Example {
}
`
	if err := os.WriteFile(src, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	input := src + ":100: error: package com.missing does not exist\n"
	got := extractJava(input, "", newImportCache())
	var classNames []string
	for _, r := range got {
		classNames = append(classNames, r.ClassName)
	}
	want := []string{"com.missing", "com.example.util.com.missing"}
	if diff := cmp.Diff(want, classNames); diff != "" {
		t.Fatalf("unexpected class names (-want +got):\n%s", diff)
	}
}

func TestExtractDispatchUnknownKindYieldsNothing(t *testing.T) {
	got := Extract(nil, event.ErrorInfo{TargetKind: "go_library"}, "")
	if got != nil {
		t.Fatalf("expected nil for unknown kind, got %v", got)
	}
}

func TestExtractUnreadableFileYieldsNoRequests(t *testing.T) {
	got := Extract(nil, event.ErrorInfo{
		TargetKind:  "scala_library",
		OutputFiles: []event.File{{URI: "file:///does/not/exist.log"}},
	}, "")
	if got != nil {
		t.Fatalf("expected nil for unreadable file, got %v", got)
	}
}
