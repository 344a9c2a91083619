package types

import "fmt"

// Kind enumerates topological shape kinds, ordered from the most complex
// (Compound) to the simplest (Vertex). KindShape is a sentinel meaning "no
// particular kind"; no handle ever reports it.
type Kind int

const (
	KindCompound Kind = iota
	KindCompSolid
	KindSolid
	KindShell
	KindFace
	KindWire
	KindEdge
	KindVertex
	KindShape
)

// Kinds lists the eight concrete kinds.
var Kinds = [...]Kind{
	KindCompound, KindCompSolid, KindSolid, KindShell,
	KindFace, KindWire, KindEdge, KindVertex,
}

// String implements the Stringer interface for Kind
func (k Kind) String() string {
	switch k {
	case KindCompound:
		return "Compound"
	case KindCompSolid:
		return "CompSolid"
	case KindSolid:
		return "Solid"
	case KindShell:
		return "Shell"
	case KindFace:
		return "Face"
	case KindWire:
		return "Wire"
	case KindEdge:
		return "Edge"
	case KindVertex:
		return "Vertex"
	case KindShape:
		return "Shape"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsConcrete reports whether k is one of the eight concrete kinds.
func (k Kind) IsConcrete() bool {
	return k >= KindCompound && k <= KindVertex
}

// IsMoreComplex reports whether shapes of kind k may contain shapes of kind other.
func (k Kind) IsMoreComplex(other Kind) bool {
	return k < other
}
