// SPDX-License-Identifier: MIT

package synapses

// State is the builder lifecycle phase.
type State int32

const (
	// Idle accepts a new Connect.
	Idle State = iota
	// Enumerating is visiting pairs and staging synapses.
	Enumerating
	// Flushing is draining the staging buffers and trimming adjacency.
	Flushing
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Enumerating:
		return "enumerating"
	case Flushing:
		return "flushing"
	default:
		return "unknown"
	}
}
