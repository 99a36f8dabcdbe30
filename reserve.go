package fdt

import "github.com/go-fdt/fdt/internal/bufview"

// ReserveEntry is one memory-reservation record: a (physical address,
// size) pair. The OS must not use memory in this range.
type ReserveEntry struct {
	Address uint64
	Size    uint64
}

// ReserveIter enumerates memory-reservation entries starting at
// off_mem_rsvmap, stopping at the first (0, 0) terminator or once it
// would read past totalsize.
type ReserveIter struct {
	buf   []byte
	off   int
	limit int
	done  bool
}

// Next returns the next reservation entry, or false once the
// terminator has been reached.
func (it *ReserveIter) Next() (ReserveEntry, bool) {
	if it.done {
		return ReserveEntry{}, false
	}
	if it.off+16 > it.limit || it.off+16 > len(it.buf) {
		it.done = true
		return ReserveEntry{}, false
	}
	addr, err := bufview.BE64(it.buf, it.off)
	if err != nil {
		it.done = true
		return ReserveEntry{}, false
	}
	size, err := bufview.BE64(it.buf, it.off+8)
	if err != nil {
		it.done = true
		return ReserveEntry{}, false
	}
	it.off += 16
	if addr == 0 && size == 0 {
		it.done = true
		return ReserveEntry{}, false
	}
	return ReserveEntry{Address: addr, Size: size}, true
}
