package snapshot

import (
	"fmt"
	"testing"

	"github.com/vkoshev/gamehall/internal/storage"
)

func makePool(n int) []storage.Game {
	pool := make([]storage.Game, n)
	for i := range pool {
		pool[i] = storage.Game{
			ID:       fmt.Sprintf("g-%03d", i),
			Provider: "pragmatic",
			Title:    fmt.Sprintf("Game %d", i),
			Enabled:  true,
		}
	}
	return pool
}

func TestSampleSize(t *testing.T) {
	cases := []struct {
		pool, n, want int
	}{
		{0, 5, 0},
		{5, 12, 5},
		{20, 12, 12},
		{12, 12, 12},
		{10, 1, 1},
		{10, 0, 0},
		{10, -3, 0},
	}
	for _, tc := range cases {
		got := Sample(makePool(tc.pool), tc.n)
		if len(got) != tc.want {
			t.Errorf("Sample(pool=%d, n=%d) returned %d, want %d", tc.pool, tc.n, len(got), tc.want)
		}
	}
}

func TestSampleNoDuplicates(t *testing.T) {
	pool := makePool(20)

	for trial := 0; trial < 100; trial++ {
		got := Sample(pool, 12)
		seen := make(map[string]bool, len(got))
		for _, g := range got {
			if seen[g.ID] {
				t.Fatalf("duplicate id %s in sample", g.ID)
			}
			seen[g.ID] = true
		}
	}
}

func TestSampleDrawsFromPool(t *testing.T) {
	pool := makePool(10)
	members := make(map[string]bool, len(pool))
	for _, g := range pool {
		members[g.ID] = true
	}

	got := Sample(pool, 7)
	for _, g := range got {
		if !members[g.ID] {
			t.Errorf("sampled id %s not in pool", g.ID)
		}
	}
}

func TestSampleDoesNotModifyInput(t *testing.T) {
	pool := makePool(10)
	Sample(pool, 5)

	for i, g := range pool {
		if g.ID != fmt.Sprintf("g-%03d", i) {
			t.Fatalf("input pool reordered at %d: %s", i, g.ID)
		}
	}
}

// TestSampleVaries draws many samples from a 20-game pool and requires at
// least two distinct member sets. A fixed selection would make the showcase
// rotation pointless.
func TestSampleVaries(t *testing.T) {
	pool := makePool(20)

	key := func(games []storage.Game) string {
		seen := make(map[string]bool, len(games))
		for _, g := range games {
			seen[g.ID] = true
		}
		// Order-independent set key.
		var k string
		for i := 0; i < len(pool); i++ {
			if seen[pool[i].ID] {
				k += pool[i].ID + ","
			}
		}
		return k
	}

	first := key(Sample(pool, 12))
	for trial := 0; trial < 50; trial++ {
		if key(Sample(pool, 12)) != first {
			return
		}
	}
	t.Error("50 samples produced identical member sets")
}
