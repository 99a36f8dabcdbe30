package fdt

import "github.com/go-fdt/fdt/internal/bufview"

// Magic is the expected value of the header's first big-endian u32
// field.
const Magic = 0xd00dfeed

// MinHeaderSize is the size in bytes of the fixed FDT header: ten
// big-endian u32 fields.
const MinHeaderSize = 40

// MaxNodeNameLen bounds a node name's payload length, not counting its
// NUL terminator.
const MaxNodeNameLen = 31

// Header field byte offsets, in on-disk order.
const (
	offMagic                 = 0
	offTotalsize             = 4
	offOffDtStruct           = 8
	offOffDtStrings          = 12
	offOffMemRsvmap          = 16
	offVersion               = 20
	offLastCompatibleVersion = 24
	offBootCpuidPhys         = 28
	offSizeDtStrings         = 32
	offSizeDtStruct          = 36
)

// CheckMagic reports whether the first four big-endian bytes of buf
// are the FDT magic number.
func CheckMagic(buf []byte) error {
	v, err := bufview.BE32(buf, offMagic)
	if err != nil || v != Magic {
		return newf(KindInvalidMagic, "header magic number mismatch")
	}
	return nil
}

// ReadTotalsize reads the totalsize field. buf must be at least
// MinHeaderSize long.
//
// This implementation reads header fields byte-by-byte rather than
// casting the buffer to a pointer, so it never needs the buffer's own
// address to be 4-byte aligned the way a pointer-cast implementation
// would. The 4-byte alignment of the content offsets decoded from the
// header (off_dt_struct, off_mem_rsvmap), which drives the token
// parser, is checked by Open, not here.
func ReadTotalsize(buf []byte) (uint32, error) {
	if len(buf) < MinHeaderSize {
		return 0, newf(KindParse, "buffer shorter than minimum header size")
	}
	return bufview.BE32(buf, offTotalsize)
}

// Open validates buf as a complete FDT image and returns a Tree handle
// borrowing it. On size, Open rejects with PARSE only when totalsize
// is less than len(buf): that means the header claims an image shorter
// than what was actually supplied, so any content past totalsize is
// not part of the tree and buf cannot be trusted as an exact fit. A
// totalsize greater than or equal to len(buf) is accepted. Open also
// rejects with PARSE when off_dt_struct or off_mem_rsvmap is not
// 4-byte aligned, and with INVALID_OFFSET when any of the three block
// offsets lies beyond len(buf). Only those start offsets are checked
// here; reads inside the blocks are bounds-checked when they happen.
func Open(buf []byte) (*Tree, error) {
	if err := CheckMagic(buf); err != nil {
		return nil, err
	}
	totalsize, err := ReadTotalsize(buf)
	if err != nil {
		return nil, err
	}
	if int(totalsize) < len(buf) {
		return nil, newf(KindParse, "buffer longer than header totalsize")
	}

	offStruct, _ := bufview.BE32(buf, offOffDtStruct)
	offStrings, _ := bufview.BE32(buf, offOffDtStrings)
	offRsvmap, _ := bufview.BE32(buf, offOffMemRsvmap)
	version, _ := bufview.BE32(buf, offVersion)
	lastCompat, _ := bufview.BE32(buf, offLastCompatibleVersion)
	bootCPU, _ := bufview.BE32(buf, offBootCpuidPhys)
	sizeStrings, _ := bufview.BE32(buf, offSizeDtStrings)
	sizeStruct, _ := bufview.BE32(buf, offSizeDtStruct)

	if !bufview.Aligned4(int(offStruct)) || !bufview.Aligned4(int(offRsvmap)) {
		return nil, newf(KindParse, "struct or reservation-map offset not 4-byte aligned")
	}
	if int(offStruct) > len(buf) || int(offStrings) > len(buf) || int(offRsvmap) > len(buf) {
		return nil, newf(KindInvalidOffset, "header offset beyond buffer")
	}

	return &Tree{
		buf:                   buf,
		totalsize:             totalsize,
		offDtStruct:           offStruct,
		offDtStrings:          offStrings,
		offMemRsvmap:          offRsvmap,
		version:               version,
		lastCompatibleVersion: lastCompat,
		bootCpuidPhys:         bootCPU,
		sizeDtStrings:         sizeStrings,
		sizeDtStruct:          sizeStruct,
	}, nil
}
