package index

import (
	"math"

	"github.com/go-fdt/fdt"
)

// safeMultiply and safeAdd guard the index size computation against
// overflow, the same pattern the retrieval pack's HDF5 library uses to
// guard chunk-size and hyperslab-bound arithmetic (internal/utils
// CheckMultiplyOverflow/SafeMultiply in the teacher repo this module
// is modeled on), adapted to report NOT_ENOUGH_MEMORY rather than a
// bare error.
func safeMultiply(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, fdt.NewError(fdt.KindNotEnoughMemory, "index size multiplication overflow")
	}
	return a * b, nil
}

func safeAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fdt.NewError(fdt.KindNotEnoughMemory, "index size addition overflow")
	}
	return a + b, nil
}
