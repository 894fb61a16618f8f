// SPDX-License-Identifier: MIT

package pairs

import (
	"fmt"
	"math"
)

// Population is a contiguous block of neurons: local indices [0, Count)
// mapped to global ids [Offset, Offset+Count).
type Population struct {
	Count  int
	Offset int
}

// Validate checks Count ≥ 0, Offset ≥ 0 and that every global id fits int32.
func (p Population) Validate() error {
	if p.Count < 0 || p.Offset < 0 || int64(p.Offset)+int64(p.Count) > math.MaxInt32 {
		return fmt.Errorf("pairs: population{count=%d offset=%d}: %w", p.Count, p.Offset, ErrInvalidPopulation)
	}
	return nil
}

// Global maps a local index to its global neuron id.
func (p Population) Global(local int) int { return local + p.Offset }

// End returns one past the last global id.
func (p Population) End() int { return p.Offset + p.Count }
