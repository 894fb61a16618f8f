// SPDX-License-Identifier: MIT

package staging

import "sync"

// maxPooledCapacity bounds the slabs kept for reuse; larger ones are left to
// the garbage collector.
const maxPooledCapacity = 1 << 16

var slabPool = sync.Pool{
	New: func() any {
		s := make([]int32, 0, DefaultCapacity)
		return &s
	},
}

// getSlab borrows a slab of length n.
func getSlab(n int) *[]int32 {
	s := slabPool.Get().(*[]int32)
	if cap(*s) < n {
		*s = make([]int32, n)
	}
	*s = (*s)[:n]
	return s
}

// putSlab returns a slab to the pool.
func putSlab(s *[]int32) {
	if s == nil || cap(*s) > maxPooledCapacity {
		return
	}
	*s = (*s)[:0]
	slabPool.Put(s)
}
