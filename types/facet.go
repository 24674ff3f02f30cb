package types

import "fmt"

/*
FacetKey is an always positive number that stores the vertices of a simplex
facet as indices in a way that can be compared. A facet of an M-dimensional
simplex has M vertices: one for network segments, two for triangle edges,
three for tetrahedron faces. The vertices are always stored in ascending
index order, so two elements sharing a facet produce the same key regardless
of their local vertex ordering
*/
type FacetKey uint64

const (
	facetVertexBits  = 20
	facetVertexLimit = 1<<facetVertexBits - 1 // max index storable per vertex
)

func NewFacetKey(verts []int) (packed FacetKey) {
	// This packs up to three index coordinates into 20 bit fields, with the
	// vertex count in the top bits, to act as a hash and an indirect access method
	if len(verts) < 1 || len(verts) > 3 {
		panic(fmt.Errorf("a simplex facet has 1, 2 or 3 vertices, have %d", len(verts)))
	}
	for _, vert := range verts {
		if vert < 0 || vert > facetVertexLimit {
			panic(fmt.Errorf("unable to pack vertex index %d into %d bits", vert, facetVertexBits))
		}
	}
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	for i := 1; i < len(sorted); i++ { // insertion sort, at most 3 entries
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	packed = FacetKey(len(sorted)) << 62
	for i, vert := range sorted {
		packed |= FacetKey(vert) << (facetVertexBits * i)
	}
	return
}

func (fk FacetKey) NumVertices() int { return int(fk >> 62) }

func (fk FacetKey) GetVertices() (verts []int) {
	verts = make([]int, fk.NumVertices())
	for i := range verts {
		verts[i] = int(fk>>(facetVertexBits*i)) & facetVertexLimit
	}
	return
}
