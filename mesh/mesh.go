package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fdapde/gomesh/types"
	"github.com/fdapde/gomesh/utils"
	"github.com/james-bowman/sparse"
)

var ErrMalformedMesh = errors.New("mesh: malformed mesh input")

/*
Mesh owns the vertex coordinates and element-to-vertex table of a simplicial
mesh and the Elements constructed from them. Element neighbors are recovered
from facet sharing, boundary flags from unmatched facets plus any explicit
boundary markers. Once construction returns, the mesh and every element in it
are read only
*/
type Mesh struct {
	order    int
	m, n     int
	verts    [][]float64
	etov     [][]int
	elements []Element

	boundaryNodes map[int]bool
	markers       map[types.MarkerTag][]types.FacetKey
}

// NewMesh builds every element of the mesh described by the vertex coordinate
// list and the element-to-vertex table. Each row of etov names the M+1
// vertices of one element; all rows must have the same length. markers maps
// boundary marker tags to lists of boundary facets, each given by its M
// vertex indices; nil is a valid empty marker set
func NewMesh(verts [][]float64, etov [][]int, order int,
	markers map[types.MarkerTag][][]int) (msh *Mesh, err error) {
	var (
		K  = len(etov)
		Nv = len(verts)
	)
	if K == 0 || Nv == 0 {
		err = fmt.Errorf("%w: empty vertex or element table", ErrMalformedMesh)
		return
	}
	m := len(etov[0]) - 1
	n := len(verts[0])
	if m < 1 || m > 3 {
		err = fmt.Errorf("%w: elements have %d vertices", ErrMalformedMesh, m+1)
		return
	}
	for _, vert := range verts {
		if len(vert) != n {
			err = fmt.Errorf("%w: vertex coordinate dimensions differ", ErrMalformedMesh)
			return
		}
	}
	for k, row := range etov {
		if len(row) != m+1 {
			err = fmt.Errorf("%w: element %d has %d vertices, expected %d",
				ErrMalformedMesh, k, len(row), m+1)
			return
		}
		for _, v := range row {
			if v < 0 || v >= Nv {
				err = fmt.Errorf("%w: element %d references vertex %d of %d",
					ErrMalformedMesh, k, v, Nv)
				return
			}
		}
	}
	msh = &Mesh{
		order:         order,
		m:             m,
		n:             n,
		verts:         verts,
		etov:          etov,
		boundaryNodes: make(map[int]bool),
		markers:       make(map[types.MarkerTag][]types.FacetKey),
	}
	for tag, facets := range markers {
		for _, facet := range facets {
			if len(facet) != m {
				err = fmt.Errorf("%w: marker %s facet has %d vertices, expected %d",
					ErrMalformedMesh, tag, len(facet), m)
				return
			}
			msh.markers[tag] = append(msh.markers[tag], types.NewFacetKey(facet))
			for _, v := range facet {
				msh.boundaryNodes[v] = true
			}
		}
	}

	neighbors, matched := msh.connect()
	for k := range etov {
		// facet j is opposite local vertex j; an unmatched facet lies on
		// the domain boundary
		for j := 0; j <= m; j++ {
			if matched[k*(m+1)+j] {
				continue
			}
			for i, w := range etov[k] {
				if i != j {
					msh.boundaryNodes[w] = true
				}
			}
		}
	}

	msh.elements = make([]Element, K)
	for k, row := range etov {
		coords := make([][]float64, m+1)
		for i, v := range row {
			coords[i] = verts[v]
		}
		boundary := false
		for _, v := range row {
			if msh.boundaryNodes[v] {
				boundary = true
				break
			}
		}
		if msh.elements[k], err = NewElement(k, row, coords, neighbors[k], boundary, order); err != nil {
			err = fmt.Errorf("element %d: %w", k, err)
			msh = nil
			return
		}
	}
	return
}

/*
connect recovers element adjacency from facet sharing. Every element
contributes M+1 facets of M vertices each (facet j omits local vertex j); a
sparse facet-to-vertex incidence matrix is multiplied with its transpose, and
off diagonal entries equal to M identify pairs of facets with identical
vertex sets, hence neighboring elements.

Volume and surface meshes get fixed-size neighbor lists aligned with the
facets, NoNeighbor marking boundary facets. Network meshes (M=1 embedded in
higher dimension) get variable-size lists, since any number of segments may
meet at a network node
*/
func (msh *Mesh) connect() (neighbors [][]int, matched []bool) {
	var (
		K           = len(msh.etov)
		nFacets     = msh.m + 1
		totalFacets = K * nFacets
		network     = msh.m == 1 && msh.n > 1
	)
	SpFToV_Tmp := sparse.NewDOK(totalFacets, len(msh.verts))
	for k, row := range msh.etov {
		for j := 0; j < nFacets; j++ {
			for i, v := range row {
				if i != j {
					SpFToV_Tmp.Set(k*nFacets+j, v, 1)
				}
			}
		}
	}
	SpFToV := SpFToV_Tmp.ToCSR()
	SpFToF := sparse.NewCSR(totalFacets, totalFacets, nil, nil, nil)
	SpFToF.Mul(SpFToV, SpFToV.T())

	neighbors = make([][]int, K)
	matched = make([]bool, totalFacets)
	if !network {
		for k := range neighbors {
			neighbors[k] = make([]int, nFacets)
			for j := range neighbors[k] {
				neighbors[k][j] = NoNeighbor
			}
		}
	}
	SpFToF.DoNonZero(func(f, g int, v float64) {
		if f == g || int(v) != msh.m {
			return
		}
		var (
			k1, j1 = f / nFacets, f % nFacets
			k2     = g / nFacets
		)
		if k1 == k2 {
			return // two facets of one element always share M-1 vertices at most
		}
		matched[f] = true
		if network {
			neighbors[k1] = append(neighbors[k1], k2)
		} else {
			neighbors[k1][j1] = k2
		}
	})
	if network {
		for k := range neighbors {
			sort.Ints(neighbors[k])
		}
	}
	return
}

func (msh *Mesh) NumElements() int { return len(msh.elements) }
func (msh *Mesh) NumVertices() int { return len(msh.verts) }
func (msh *Mesh) LocalDim() int    { return msh.m }
func (msh *Mesh) EmbedDim() int    { return msh.n }
func (msh *Mesh) Order() int       { return msh.order }

func (msh *Mesh) Elements() []Element   { return msh.elements }
func (msh *Mesh) Element(k int) Element { return msh.elements[k] }
func (msh *Mesh) Vertices() [][]float64 { return msh.verts }

func (msh *Mesh) Markers() map[types.MarkerTag][]types.FacetKey { return msh.markers }

// BoundaryNodes returns the sorted vertex indices lying on the domain boundary
func (msh *Mesh) BoundaryNodes() (nodes []int) {
	for v := range msh.boundaryNodes {
		nodes = append(nodes, v)
	}
	sort.Ints(nodes)
	return
}

// TotalMeasure returns the sum of the element measures: the volume, area or
// length of the meshed domain
func (msh *Mesh) TotalMeasure() (measure float64) {
	for _, el := range msh.elements {
		measure += el.Measure()
	}
	return
}

// BoundingBox returns the smallest axis aligned box containing the mesh
func (msh *Mesh) BoundingBox() (lo, hi []float64) {
	return utils.VecMinMax(msh.verts)
}

// Locate returns the element containing the point x, if any. Element bounding
// boxes prune the candidate set before the exact containment test
func (msh *Mesh) Locate(x []float64) (el Element, found bool) {
	for _, cand := range msh.elements {
		lo, hi := cand.BoundingBox()
		outside := false
		for d := range x {
			if x[d] < lo[d]-ContainsTol || x[d] > hi[d]+ContainsTol {
				outside = true
				break
			}
		}
		if outside {
			continue
		}
		if cand.Contains(x) {
			return cand, true
		}
	}
	return nil, false
}
