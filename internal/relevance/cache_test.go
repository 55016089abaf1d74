// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"fmt"
	"testing"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

func TestCacheHitAndMiss(t *testing.T) {
	c := NewCache(0)
	report := types.SearchReport{Query: "power", Summary: "1 match"}

	if _, ok := c.Get("power", types.DepthBasic); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Put("power", types.DepthBasic, report)
	got, ok := c.Get("power", types.DepthBasic)
	if !ok {
		t.Fatal("want hit after Put")
	}
	if got.Summary != report.Summary {
		t.Errorf("got %q, want %q", got.Summary, report.Summary)
	}

	// Depth is part of the key.
	if _, ok := c.Get("power", types.DepthDeep); ok {
		t.Error("depth must distinguish cache entries")
	}
}

func TestCacheNormalizesQueryKey(t *testing.T) {
	c := NewCache(0)
	c.Put("  Power   Knowledge ", types.DepthBasic, types.SearchReport{Summary: "x"})

	if _, ok := c.Get("power knowledge", types.DepthBasic); !ok {
		t.Error("whitespace and case variants should share an entry")
	}
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := NewCache(20)
	for i := 0; i < 21; i++ {
		c.Put(fmt.Sprintf("query-%d", i), types.DepthBasic, types.SearchReport{})
	}

	if c.Len() != 20 {
		t.Fatalf("len = %d, want 20", c.Len())
	}
	if _, ok := c.Get("query-0", types.DepthBasic); ok {
		t.Error("oldest entry should have been retired")
	}
	if _, ok := c.Get("query-1", types.DepthBasic); !ok {
		t.Error("second-oldest entry should survive")
	}
	if _, ok := c.Get("query-20", types.DepthBasic); !ok {
		t.Error("newest entry should be present")
	}
}

func TestCacheOverwriteDoesNotGrow(t *testing.T) {
	c := NewCache(2)
	c.Put("a", types.DepthBasic, types.SearchReport{Summary: "first"})
	c.Put("a", types.DepthBasic, types.SearchReport{Summary: "second"})

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	got, _ := c.Get("a", types.DepthBasic)
	if got.Summary != "second" {
		t.Errorf("summary = %q, want the overwritten value", got.Summary)
	}
}
