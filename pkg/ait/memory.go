package ait

import "unsafe"

// Per-entry sizes used by the estimate. The arena holds interface values,
// so every node pays for the interface header plus its variant struct.
const (
	interfaceHeaderBytes = uint64(unsafe.Sizeof(node(nil)))
	internalNodeBytes    = uint64(unsafe.Sizeof(internalNode{}))
	leafNodeBytes        = uint64(unsafe.Sizeof(leafNode{}))
	docIDBytes           = uint64(unsafe.Sizeof(uint32(0)))
	valueBytes           = uint64(unsafe.Sizeof(float64(0)))
	rankBytes            = uint64(unsafe.Sizeof(int(0)))
)

// MemoryUsage estimates the resident bytes of the index: fixed per-node
// overhead, leaf array capacities, and the id-map entries. It is used for
// comparative reporting against the flat baseline and plays no part in
// query correctness.
func (t *Tree) MemoryUsage() uint64 {
	var size uint64
	for _, n := range t.nodes {
		switch n := n.(type) {
		case *internalNode:
			size += interfaceHeaderBytes + internalNodeBytes
		case *leafNode:
			size += interfaceHeaderBytes + leafNodeBytes
			size += uint64(cap(n.docIDs)) * docIDBytes
			size += uint64(cap(n.values)) * valueBytes
		}
	}
	size += uint64(len(t.docIDRank)) * (docIDBytes + rankBytes)
	return size
}
