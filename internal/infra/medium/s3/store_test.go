package s3

import (
	"context"
	"errors"
	"testing"

	"districtportal/internal/medium"
)

func TestMockStoreRoundTrip(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()
	if _, found, err := store.GetItem(ctx, "assistance_info_data"); err != nil || found {
		t.Fatalf("expected missing object, got found=%v err=%v", found, err)
	}
	payload := `[{"id":"x","title":"Helpline"}]`
	if err := store.SetItem(ctx, "assistance_info_data", payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SetItem(ctx, "assistance_info_data", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, found, err := store.GetItem(ctx, "assistance_info_data")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got != "[]" {
		t.Fatalf("expected overwritten payload, got %q", got)
	}
	if store.Driver() != medium.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	store := NewMockForTests()
	if err := store.SetItem(context.Background(), " ", "x"); !errors.Is(err, medium.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestDecodeChunked(t *testing.T) {
	body, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n"))
	if !ok || string(body) != "hello" {
		t.Fatalf("unexpected decode %q ok=%v", string(body), ok)
	}
	if _, ok := decodeChunked([]byte(`[{"id":"plain"}]`)); ok {
		t.Fatalf("expected plain body to be left alone")
	}
}
