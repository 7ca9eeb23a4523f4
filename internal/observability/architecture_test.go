package observability

import (
	"testing"

	"districtportal/testutil"
)

func TestObservabilityImportsNoModulePackages(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.ModuleImportForbidden, "observability is a leaf package")
}
