// SPDX-License-Identifier: MIT

package growable

import "errors"

// Sentinel errors for growable arrays. Callers branch with errors.Is.
var (
	// ErrAllocationFailure indicates that an array could not be extended,
	// either because a Budget refused the reservation or because the length
	// would exceed MaxLen. Growth that fails leaves the array unchanged.
	ErrAllocationFailure = errors.New("growable: allocation failure")

	// ErrInvalidLength indicates a negative target length, an attempt to
	// shrink through GrowTo, or a Truncate/At outside the current contents.
	ErrInvalidLength = errors.New("growable: invalid length")
)
