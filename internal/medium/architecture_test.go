package medium

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyCoreImportsDrivers ensures the concrete medium drivers are wired in a
// single place. Everything else depends on the Medium interface.
func TestOnlyCoreImportsDrivers(t *testing.T) {
	const (
		infraPrefix = "districtportal/internal/infra/medium"
		corePrefix  = "districtportal/internal/core"
	)

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, "districtportal/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		if hasPrefix(pkg.PkgPath, corePrefix) || hasPrefix(pkg.PkgPath, infraPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if hasPrefix(importPath, infraPrefix) {
				violations = append(violations, pkg.PkgPath+": "+importPath)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of medium driver: %s", v)
		}
		t.Fatalf("found %d forbidden imports of medium drivers", len(violations))
	}
}

func hasPrefix(importPath, prefix string) bool {
	return importPath == prefix || strings.HasPrefix(importPath, prefix+"/")
}
