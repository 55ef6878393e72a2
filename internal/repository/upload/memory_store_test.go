package upload

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	raw := []byte("a,b\n1,2\n")

	if err := s.Put(ctx, "sess", "data.csv", raw); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "sess", "data.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("get = %q, want %q", got, raw)
	}

	// The store must hold its own copy.
	raw[0] = 'X'
	got2, _ := s.Get(ctx, "sess", "data.csv")
	if got2[0] == 'X' {
		t.Fatal("store aliases caller bytes")
	}
	got[0] = 'Y'
	got3, _ := s.Get(ctx, "sess", "data.csv")
	if got3[0] == 'Y' {
		t.Fatal("get aliases stored bytes")
	}
}

func TestGetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "sess", "nope.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListScopedToSession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "a", "one.csv", []byte("x"))
	_ = s.Put(ctx, "a", "two.csv", []byte("y"))
	_ = s.Put(ctx, "b", "other.csv", []byte("z"))

	names, err := s.List(ctx, "a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "one.csv" || names[1] != "two.csv" {
		t.Fatalf("names = %v", names)
	}
}

func TestKeyValidation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Put(ctx, "", "x.csv", nil); err == nil {
		t.Fatal("expected error for blank session id")
	}
	if err := s.Put(ctx, "sess", "  ", nil); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := s.List(ctx, ""); err == nil {
		t.Fatal("expected error for blank session id")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "sess", "data.csv", []byte("v1"))
	_ = s.Put(ctx, "sess", "data.csv", []byte("v2"))
	got, _ := s.Get(ctx, "sess", "data.csv")
	if string(got) != "v2" {
		t.Fatalf("get = %q, want v2", got)
	}
}
