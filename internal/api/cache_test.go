package api

import (
	"bytes"
	"testing"
)

func TestAssetCachePutGet(t *testing.T) {
	c := NewAssetCache(2)

	if got := c.Get("seals/a.png"); got != nil {
		t.Fatalf("empty cache returned %v", got)
	}

	c.Put("seals/a.png", []byte("png-a"))
	if got := c.Get("seals/a.png"); !bytes.Equal(got, []byte("png-a")) {
		t.Errorf("Get = %q, want %q", got, "png-a")
	}
}

func TestAssetCacheEvictsOldest(t *testing.T) {
	c := NewAssetCache(2)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Put("c", []byte("3"))

	if c.Get("a") != nil {
		t.Error("oldest entry should have been evicted")
	}
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Error("newer entries should survive")
	}
}

func TestAssetCacheLRUOrder(t *testing.T) {
	c := NewAssetCache(2)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))

	// Touch a so that b becomes the eviction candidate.
	c.Get("a")
	c.Put("c", []byte("3"))

	if c.Get("a") == nil {
		t.Error("recently used entry evicted")
	}
	if c.Get("b") != nil {
		t.Error("least recently used entry kept")
	}
}

func TestAssetCacheDefaultSize(t *testing.T) {
	if c := NewAssetCache(0); c.maxSize != 64 {
		t.Errorf("default maxSize = %d, want 64", c.maxSize)
	}
}

func TestAssetCacheOverwrite(t *testing.T) {
	c := NewAssetCache(2)

	c.Put("a", []byte("old"))
	c.Put("a", []byte("new"))

	if got := c.Get("a"); !bytes.Equal(got, []byte("new")) {
		t.Errorf("Get = %q, want %q", got, "new")
	}
	if len(c.entries) != 1 {
		t.Errorf("entries = %d, want 1", len(c.entries))
	}
}
