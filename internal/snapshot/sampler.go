// Package snapshot implements the showcase rotation: random sampling of the
// enabled game pool, immutable timestamped batches, a freshness-window
// reader with lazy regeneration, and the cron-driven schedule.
package snapshot

import (
	"math/rand"

	"github.com/vkoshev/gamehall/internal/storage"
)

// Sample returns min(n, len(pool)) games drawn uniformly at random without
// replacement. The input slice is not modified. Pure selection: no storage
// access, no side effects.
func Sample(pool []storage.Game, n int) []storage.Game {
	if n < 0 {
		n = 0
	}
	if n > len(pool) {
		n = len(pool)
	}

	// Partial Fisher-Yates: after i swaps the first i elements are a uniform
	// sample without replacement.
	picked := make([]storage.Game, len(pool))
	copy(picked, pool)
	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}
