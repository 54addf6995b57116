package pulse

import "unsafe"

// AsByteSlice views the memory of value as bytes, e.g. to
// upload a uniform struct into a buffer.
func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}
