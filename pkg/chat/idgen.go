package chat

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// IDGenerator mints identifiers for synthesized transcript items. Each
// category carries its own monotonic counter, which is what keeps ids
// distinct when thousands of items are minted within one millisecond;
// the random suffix only disambiguates across generator instances.
//
// Formats:
//
//	<category>-<unixMillis>-<counter>-<suffix>   (Next)
//	divider-<start|end>-<unixMillis>-<counter>   (NextDivider)
//
// Counters are never reset for the lifetime of the generator.
type IDGenerator struct {
	mu       sync.Mutex
	counters map[string]uint64
	rng      *rand.Rand
	now      func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		counters: make(map[string]uint64),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Next returns a fresh identifier for the given category.
func (g *IDGenerator) Next(category string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[category]++
	return fmt.Sprintf("%s-%d-%d-%s", category, g.now().UnixMilli(), g.counters[category], g.suffix())
}

// NextDivider returns a fresh divider identifier. Dividers are low
// frequency, so the counter alone is enough and no suffix is appended.
func (g *IDGenerator) NextDivider(dividerType string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := "divider-" + dividerType
	g.counters[key]++
	return fmt.Sprintf("divider-%s-%d-%d", dividerType, g.now().UnixMilli(), g.counters[key])
}

func (g *IDGenerator) suffix() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = suffixAlphabet[g.rng.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
