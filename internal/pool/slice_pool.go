package pool

import "sync"

var uint32SlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice will have length zero and capacity of at least size, ready
// to be filled with append by a sequence decoder.
// The caller must call the returned cleanup function to return the slice to the pool,
// and must not retain the slice after doing so.
//
// Parameters:
//   - size: The minimum capacity of the slice
//
// Returns:
//   - []uint32: An empty slice with capacity of at least size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	values, cleanup := pool.GetUint32Slice(seq.Len())
//	defer cleanup()
//	values = seq.AppendTo(values)
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, 0, size)
	}
	*ptr = slice

	return slice, func() { uint32SlicePool.Put(ptr) }
}
