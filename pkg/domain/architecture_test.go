package domain

import (
	"testing"

	"districtportal/testutil"
)

// TestDomainDoesNotImportInternal keeps the entity model free of storage and
// transport concerns so adapters and tools can share it.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "domain must not depend on internal packages")
}
