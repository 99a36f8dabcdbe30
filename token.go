package fdt

import "github.com/go-fdt/fdt/internal/bufview"

// Struct-block token opcodes, big-endian u32 values in the dt_struct
// stream.
const (
	tokOpBeginNode uint32 = 0x1
	tokOpEndNode   uint32 = 0x2
	tokOpProp      uint32 = 0x3
	tokOpNop       uint32 = 0x4
	tokOpEnd       uint32 = 0x9
)

// TokenKind identifies which struct-block token NextToken decoded.
type TokenKind int

const (
	TokenBeginNode TokenKind = iota
	TokenEndNode
	TokenProp
	TokenNop
	TokenEnd
)

// Token is one decoded struct-block token. Name is valid only for
// TokenBeginNode; PropValue/PropNameOff only for TokenProp.
type Token struct {
	Kind        TokenKind
	Name        []byte
	PropValue   []byte
	PropNameOff uint32
}

// NextToken decodes exactly one struct-block token at off, which must
// be 4-byte aligned with at least 4 bytes remaining in buf. It returns
// the token and the offset just past it, already realigned to 4 bytes
// per the BEGIN_NODE/PROP realignment rule. The parser keeps no state
// of its own between calls: everything lives in the caller-owned
// offset, which is what lets both the unindexed cursor and the index
// builder drive the same primitive.
func NextToken(buf []byte, off int) (Token, int, error) {
	if !bufview.Aligned4(off) {
		return Token{}, 0, newf(KindParse, "token offset not 4-byte aligned")
	}
	opcode, err := bufview.BE32(buf, off)
	if err != nil {
		return Token{}, 0, wrapf(KindEOF, "token opcode", err)
	}

	switch opcode {
	case tokOpBeginNode:
		name, nameEnd, err := bufview.CString0(buf, off+4, MaxNodeNameLen)
		if err != nil {
			return Token{}, 0, wrapf(KindParse, "node name", err)
		}
		return Token{Kind: TokenBeginNode, Name: name}, bufview.AlignUp4(nameEnd), nil

	case tokOpEndNode:
		return Token{Kind: TokenEndNode}, off + 4, nil

	case tokOpProp:
		length, err := bufview.BE32(buf, off+4)
		if err != nil {
			return Token{}, 0, wrapf(KindParse, "property header", err)
		}
		nameoff, err := bufview.BE32(buf, off+8)
		if err != nil {
			return Token{}, 0, wrapf(KindParse, "property header", err)
		}
		if int(nameoff) > len(buf) {
			return Token{}, 0, newf(KindParse, "property nameoff beyond buffer")
		}
		valStart := off + 12
		valEnd := valStart + int(length)
		if valEnd > len(buf) {
			return Token{}, 0, newf(KindParse, "property value beyond buffer")
		}
		return Token{Kind: TokenProp, PropValue: buf[valStart:valEnd], PropNameOff: nameoff},
			bufview.AlignUp4(valEnd), nil

	case tokOpNop:
		return Token{Kind: TokenNop}, off + 4, nil

	case tokOpEnd:
		return Token{Kind: TokenEnd}, off + 4, nil

	default:
		return Token{}, 0, newf(KindParse, "unknown token opcode")
	}
}
