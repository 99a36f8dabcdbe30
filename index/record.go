package index

import "encoding/binary"

// On-buffer record layout. Both record kinds are 4-byte aligned,
// satisfying the invariant that node and property record alignment
// must be equal.
const (
	nodeRecordSize = 24
	propRecordSize = 12
	recordAlign    = 4

	// nilOff marks an absent parent/first-child/next/root pointer. It
	// is never a valid record offset: a record starting there would
	// end past the range a uint32 offset can address.
	nilOff uint32 = 0xFFFFFFFF
)

// nodeRecord is the in-memory decoded form of a node record: parent
// pointer, first-child pointer, a combined sibling/DFS-successor next
// pointer, a name slice into the source buffer, and a property count.
// Properties for a node are written as a packed run immediately
// following its node record. next is not a plain sibling link. After
// Build it holds the node's following sibling when there is one;
// otherwise it holds the next node in preorder for a childless node
// (nilOff at the end of the tree), and the node's own last child for
// a node with children. DFS follows next only from childless nodes,
// so it steps with "firstChild, else next" and no parent-climbing (see
// index.go's dfsNext and Build); SiblingIter stops once next leaves
// the parent.
type nodeRecord struct {
	parent     uint32
	firstChild uint32
	next       uint32
	nameOff    uint32
	nameLen    uint32
	numProps   uint32
}

const (
	ndParent     = 0
	ndFirstChild = 4
	ndNext       = 8
	ndNameOff    = 12
	ndNameLen    = 16
	ndNumProps   = 20
)

func writeNode(buf []byte, at int, n nodeRecord) {
	b := buf[at : at+nodeRecordSize]
	binary.BigEndian.PutUint32(b[ndParent:], n.parent)
	binary.BigEndian.PutUint32(b[ndFirstChild:], n.firstChild)
	binary.BigEndian.PutUint32(b[ndNext:], n.next)
	binary.BigEndian.PutUint32(b[ndNameOff:], n.nameOff)
	binary.BigEndian.PutUint32(b[ndNameLen:], n.nameLen)
	binary.BigEndian.PutUint32(b[ndNumProps:], n.numProps)
}

func readNode(buf []byte, at int) nodeRecord {
	b := buf[at : at+nodeRecordSize]
	return nodeRecord{
		parent:     binary.BigEndian.Uint32(b[ndParent:]),
		firstChild: binary.BigEndian.Uint32(b[ndFirstChild:]),
		next:       binary.BigEndian.Uint32(b[ndNext:]),
		nameOff:    binary.BigEndian.Uint32(b[ndNameOff:]),
		nameLen:    binary.BigEndian.Uint32(b[ndNameLen:]),
		numProps:   binary.BigEndian.Uint32(b[ndNumProps:]),
	}
}

func setNodeNext(buf []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(buf[at+ndNext:at+ndNext+4], v)
}

func setNodeFirstChild(buf []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(buf[at+ndFirstChild:at+ndFirstChild+4], v)
}

func incNumProps(buf []byte, at int) {
	b := buf[at+ndNumProps : at+ndNumProps+4]
	binary.BigEndian.PutUint32(b, binary.BigEndian.Uint32(b)+1)
}

// propRecord is the in-memory decoded form of a property record: a
// value slice into the source buffer and the dt_strings name offset.
type propRecord struct {
	valueOff uint32
	valueLen uint32
	nameOff  uint32
}

const (
	prValueOff = 0
	prValueLen = 4
	prNameOff  = 8
)

func writeProp(buf []byte, at int, p propRecord) {
	b := buf[at : at+propRecordSize]
	binary.BigEndian.PutUint32(b[prValueOff:], p.valueOff)
	binary.BigEndian.PutUint32(b[prValueLen:], p.valueLen)
	binary.BigEndian.PutUint32(b[prNameOff:], p.nameOff)
}

func readProp(buf []byte, at int) propRecord {
	b := buf[at : at+propRecordSize]
	return propRecord{
		valueOff: binary.BigEndian.Uint32(b[prValueOff:]),
		valueLen: binary.BigEndian.Uint32(b[prValueLen:]),
		nameOff:  binary.BigEndian.Uint32(b[prNameOff:]),
	}
}
