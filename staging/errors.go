// SPDX-License-Identifier: MIT

package staging

import "errors"

var (
	// ErrBadCapacity indicates a staging capacity below 1.
	ErrBadCapacity = errors.New("staging: capacity must be ≥ 1")

	// ErrNilArray indicates a nil destination array.
	ErrNilArray = errors.New("staging: nil destination array")

	// ErrReleased indicates use of a buffer after Release.
	ErrReleased = errors.New("staging: buffer released")
)
