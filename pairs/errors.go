// SPDX-License-Identifier: MIT

package pairs

import "errors"

var (
	// ErrInvalidPopulation indicates a population with a negative count or
	// offset, or one that overflows the int32 neuron id space.
	ErrInvalidPopulation = errors.New("pairs: invalid population")

	// ErrPredicateContract indicates a Decision with P outside (0,1] or N < 0.
	ErrPredicateContract = errors.New("pairs: predicate contract violation")

	// ErrNeedSampler indicates a Decision with P != 1 while no Sampler was
	// supplied.
	ErrNeedSampler = errors.New("pairs: sampler is required")

	// ErrSamplerContract indicates a Sampler returned a value outside [0,1).
	ErrSamplerContract = errors.New("pairs: sampler contract violation")
)
