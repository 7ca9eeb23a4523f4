package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInternalImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"districtportal/internal/store", true},
		{"districtportal/pkg/domain", false},
		{"github.com/google/uuid", false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.want {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestModuleImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"districtportal", true},
		{"districtportal/pkg/domain", true},
		{"districtportalx/pkg", false},
		{"fmt", false},
	}
	for _, c := range cases {
		if got := ModuleImportForbidden(c.in); got != c.want {
			t.Fatalf("ModuleImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestPackagesForbiddenPredicate(t *testing.T) {
	forbidden := PackagesForbidden("internal/core", "/internal/adapters/")
	cases := []struct {
		in   string
		want bool
	}{
		{"districtportal/internal/core", true},
		{"districtportal/internal/adapters/dashboard", true},
		{"districtportal/internal/corex", false},
		{"districtportal/internal/collection", false},
	}
	for _, c := range cases {
		if got := forbidden(c.in); got != c.want {
			t.Fatalf("PackagesForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestAssertNoDirectImportsIgnoresTestsAndDirs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("x.go", "package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}\n")
	write("x_test.go", "package tmp\nimport _ \"districtportal/internal/core\"\n")
	if err := os.Mkdir(filepath.Join(dir, "sub.go"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	AssertNoDirectImports(t, dir, InternalImportForbidden, "none")
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	src := "package tmp\nimport (\n\t\"fmt\"\n\t_ \"districtportal/internal/core\"\n)\nfunc X(){fmt.Println(1)}\n"
	if err := os.WriteFile(filepath.Join(dir, "x.go"), []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	viols, err := directImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(viols) != 1 || viols[0] != "districtportal/internal/core (in x.go)" {
		t.Fatalf("unexpected violations: %v", viols)
	}
}

func TestDirectImportViolationsErrors(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), InternalImportForbidden); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.go"), []byte("not go"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := directImportViolations(dir, InternalImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestFailIfDirectViolations(t *testing.T) {
	rec := &recordingFatal{}
	failIfDirectViolations(rec, "layering", nil)
	if rec.msg != "" {
		t.Fatalf("expected no failure, got %q", rec.msg)
	}
	failIfDirectViolations(rec, "layering", []string{"a", "b"})
	if !strings.Contains(rec.msg, "layering") || !strings.Contains(rec.msg, "a\nb") {
		t.Fatalf("unexpected failure message %q", rec.msg)
	}
}
