package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if _, found := c.Get(Key("11222333000181")); found {
		t.Error("Expected miss on empty cache")
	}

	if err := c.Set(Key("11222333000181"), []byte(`{"cnpj":"x"}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(Key("11222333000181"))
	if !found || string(val) != `{"cnpj":"x"}` {
		t.Errorf("Get = %q, %v; want stored value", val, found)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if err := c.Set("k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be treated as absent")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(Key("11222333000181"), []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(Key("11222333000181"))
	if !found || string(val) != "payload" {
		t.Errorf("Get = %q, %v; want payload", val, found)
	}

	if err := c.Delete(Key("11222333000181")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(Key("11222333000181")); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired disk entry to be treated as absent")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	// Write through the disk layer only, simulating a previous run.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Get = %q, %v; want disk value", val, found)
	}

	// Drop the disk copy: the promoted memory entry must still serve it.
	if err := disk.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("Expected promoted entry in memory layer")
	}
}

func TestKey(t *testing.T) {
	if got := Key("11222333000181"); got != "discovery:v1:11222333000181" {
		t.Errorf("Key = %q", got)
	}
}
