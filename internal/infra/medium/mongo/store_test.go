package mongo

import (
	"context"
	"os"
	"testing"

	"districtportal/internal/medium"
)

func TestNewRequiresURI(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected uri error")
	}
}

func TestStoreAgainstLiveMongo(t *testing.T) {
	uri := os.Getenv("PORTAL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PORTAL_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	store, err := New(ctx, Config{URI: uri, Collection: "state_test"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if store.Driver() != medium.DriverMongo {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	if err := store.SetItem(ctx, "portal_test_key", `[{"id":"m"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SetItem(ctx, "portal_test_key", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, found, err := store.GetItem(ctx, "portal_test_key")
	if err != nil || !found || got != "[]" {
		t.Fatalf("unexpected get result %q found=%v err=%v", got, found, err)
	}
}
