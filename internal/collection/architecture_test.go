package collection

import (
	"testing"

	"districtportal/testutil"
)

func TestCollectionStaysBelowServiceLayer(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.PackagesForbidden("internal/core", "internal/adapters", "internal/config", "internal/infra", "cmd"),
		"collection depends only on observability and domain")
}
