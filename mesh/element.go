package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/fdapde/gomesh/linalg"
	"github.com/fdapde/gomesh/utils"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch     = errors.New("mesh: element input dimensions are inconsistent")
	ErrDegenerateElement = errors.New("mesh: element vertices are affinely dependent")
)

const (
	// Eps is the double precision machine epsilon
	Eps = 0x1p-52

	// ContainsTol absorbs the floating point round off accumulated by the
	// barycentric conversion at the simplex boundary. Barycentric coordinates
	// down to -ContainsTol still count as inside
	ContainsTol = 10 * Eps

	// NoNeighbor marks a facet with no element across it
	NoNeighbor = -1
)

/*
Element is a single simplicial mesh cell: a segment, triangle or tetrahedron,
possibly embedded in an ambient space of higher dimension than its own, e.g. a
surface triangle in 3-space or a network segment in 2-space. This is a purely
geometrical abstraction; no functional information is carried by an Element.

The affine map between the element's barycentric reference system and the
ambient cartesian system is computed once at construction and cached, so every
query below is a bounded-time read against fixed small matrices. A constructed
Element is immutable and safe for concurrent readers
*/
type Element interface {
	ID() int
	LocalDim() int // intrinsic dimension M of the cell
	EmbedDim() int // dimension N of the ambient space
	Order() int
	NumNodes() int
	NodeIDs() []int
	Coords() [][]float64
	CoordsReversed() [][]float64
	Neighbors() []int
	OnBoundary() bool

	// Jacobian returns the N x M linear part of the affine map from
	// barycentric to cartesian coordinates, column j = coords[j+1]-coords[0]
	Jacobian() mat.Matrix
	// JacobianInverse returns the M x N inverse of the Jacobian: the exact
	// inverse for volume elements, the Moore-Penrose left pseudo-inverse
	// for manifold elements
	JacobianInverse() mat.Matrix

	Measure() float64
	ToBarycentric(x []float64) []float64
	Contains(x []float64) bool
	MidPoint() []float64
	BoundingBox() (lo, hi []float64)
	SpannedSpace() *linalg.VectorSpace
}

// VolumeElement is an element whose intrinsic dimension equals the dimension
// of the embedding space: an interval in 1D, a triangle in 2D, a tetrahedron
// in 3D
type VolumeElement struct {
	base
}

// SurfaceElement is a triangle embedded in 3-space
type SurfaceElement struct {
	manifold
}

// NetworkElement is a segment embedded in 2- or 3-space; a 1-D network node
// may have arbitrary valence, so its neighbor list has no fixed size
type NetworkElement struct {
	manifold
}

// NewElement builds the element for one mesh cell from its externally
// assigned ID, M+1 node IDs with their coordinates in N-space, the IDs of the
// adjacent elements (NoNeighbor marks a missing neighbor) and the boundary
// flag. The concrete variant is selected once from (M, N); the affine map,
// its inverse and the element measure are precomputed here. Affinely
// dependent vertices are rejected with ErrDegenerateElement
func NewElement(id int, nodeIDs []int, coords [][]float64, neighbors []int,
	boundary bool, order int) (el Element, err error) {
	var (
		m = len(coords) - 1
		b base
	)
	if b, err = newBase(id, nodeIDs, coords, neighbors, boundary, order); err != nil {
		return
	}
	switch {
	case m == b.n:
		el, err = newVolume(b)
	case m == 2 && b.n == 3:
		el, err = newSurface(b)
	case m == 1:
		el, err = newNetwork(b)
	default:
		err = fmt.Errorf("%w: no element variant for local dimension %d in %d-space",
			ErrShapeMismatch, m, b.n)
	}
	return
}

// base carries the state shared by every element variant: identity,
// vertex data and the cached affine map
type base struct {
	id        int
	nodeIDs   []int
	coords    [][]float64
	neighbors []int
	boundary  bool
	order     int
	m, n      int

	jac     *mat.Dense // N x M
	jacInv  *mat.Dense // M x N
	measure float64
	span    *linalg.VectorSpace
}

func newBase(id int, nodeIDs []int, coords [][]float64, neighbors []int,
	boundary bool, order int) (b base, err error) {
	var (
		m = len(coords) - 1
	)
	if m < 1 || m > 3 {
		err = fmt.Errorf("%w: have %d vertices, want between 2 and 4", ErrShapeMismatch, m+1)
		return
	}
	if len(nodeIDs) != m+1 {
		err = fmt.Errorf("%w: %d node IDs for %d vertices", ErrShapeMismatch, len(nodeIDs), m+1)
		return
	}
	if order < 1 {
		err = fmt.Errorf("%w: element order %d", ErrShapeMismatch, order)
		return
	}
	n := len(coords[0])
	if m > n {
		err = fmt.Errorf("%w: %d-dimensional cell cannot embed in %d-space", ErrShapeMismatch, m, n)
		return
	}
	b = base{
		id:        id,
		nodeIDs:   append([]int{}, nodeIDs...),
		coords:    make([][]float64, m+1),
		neighbors: append([]int{}, neighbors...),
		boundary:  boundary,
		order:     order,
		m:         m,
		n:         n,
	}
	for i, vert := range coords {
		if len(vert) != n {
			err = fmt.Errorf("%w: vertex %d has dimension %d, expected %d",
				ErrShapeMismatch, i, len(vert), n)
			return
		}
		b.coords[i] = append([]float64{}, vert...)
	}
	// the linear part of the barycentric map, using vertex 0 as the
	// affine reference point
	b.jac = mat.NewDense(n, m, nil)
	for j := 0; j < m; j++ {
		b.jac.SetCol(j, utils.VecSub(b.coords[j+1], b.coords[0]))
	}
	basis := make([][]float64, m)
	for j := 0; j < m; j++ {
		basis[j] = mat.Col(nil, j, b.jac)
	}
	if b.span, err = linalg.NewVectorSpace(basis, b.coords[0]); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerateElement, err)
	}
	return
}

func newVolume(b base) (el *VolumeElement, err error) {
	det := mat.Det(b.jac)
	b.jacInv = mat.NewDense(b.m, b.n, nil)
	if err = b.jacInv.Inverse(b.jac); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerateElement, err)
		return
	}
	b.measure = math.Abs(det) / float64(Factorial(b.m))
	el = &VolumeElement{base: b}
	return
}

func newSurface(b base) (el *SurfaceElement, err error) {
	if err = b.pseudoInvert(); err != nil {
		return
	}
	// area of a 3D triangle: half the cross product magnitude of the
	// Jacobian columns
	var (
		u = mat.Col(nil, 0, b.jac)
		v = mat.Col(nil, 1, b.jac)
		w = []float64{
			u[1]*v[2] - u[2]*v[1],
			u[2]*v[0] - u[0]*v[2],
			u[0]*v[1] - u[1]*v[0],
		}
	)
	b.measure = 0.5 * utils.Norm2(w)
	el = &SurfaceElement{manifold{base: b}}
	return
}

func newNetwork(b base) (el *NetworkElement, err error) {
	if err = b.pseudoInvert(); err != nil {
		return
	}
	// length of the segment
	b.measure = utils.Norm2(mat.Col(nil, 0, b.jac))
	el = &NetworkElement{manifold{base: b}}
	return
}

// pseudoInvert caches the Moore-Penrose left pseudo-inverse (J^T J)^-1 J^T,
// the least squares inverse of the non-square Jacobian of a manifold element
func (b *base) pseudoInvert() (err error) {
	var (
		gram    = mat.NewDense(b.m, b.m, nil)
		gramInv = mat.NewDense(b.m, b.m, nil)
	)
	gram.Mul(b.jac.T(), b.jac)
	if err = gramInv.Inverse(gram); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerateElement, err)
		return
	}
	b.jacInv = mat.NewDense(b.m, b.n, nil)
	b.jacInv.Mul(gramInv, b.jac.T())
	return
}

func (b *base) ID() int             { return b.id }
func (b *base) LocalDim() int       { return b.m }
func (b *base) EmbedDim() int       { return b.n }
func (b *base) Order() int          { return b.order }
func (b *base) NumNodes() int       { return NumNodes(b.m, b.order) }
func (b *base) NodeIDs() []int      { return b.nodeIDs }
func (b *base) Coords() [][]float64 { return b.coords }
func (b *base) Neighbors() []int    { return b.neighbors }
func (b *base) OnBoundary() bool    { return b.boundary }
func (b *base) Measure() float64    { return b.measure }

func (b *base) Jacobian() mat.Matrix        { return b.jac }
func (b *base) JacobianInverse() mat.Matrix { return b.jacInv }

// CoordsReversed returns the vertex coordinates in reverse vertex order, for
// quadrature loops running the element backwards
func (b *base) CoordsReversed() (rev [][]float64) {
	rev = make([][]float64, len(b.coords))
	for i, vert := range b.coords {
		rev[len(b.coords)-1-i] = vert
	}
	return
}

/*
ToBarycentric moves a cartesian point x in N-space into the element's
barycentric reference system, returning the M+1 coefficients expressing x as
an affine combination of the vertices: [1 - sum(z), z_0, ..., z_M-1] with
z = jacInv * (x - coords[0]).

For manifold elements applied to an out-of-plane point this yields the
barycentric coordinates of the point's orthogonal projection onto the spanned
subspace, not of x itself; Contains performs the required planarity check
*/
func (b *base) ToBarycentric(x []float64) (bc []float64) {
	var (
		d = mat.NewVecDense(b.n, utils.VecSub(x, b.coords[0]))
		z = mat.NewVecDense(b.m, nil)
	)
	z.MulVec(b.jacInv, d)
	bc = make([]float64, b.m+1)
	sum := 0.
	for i := 0; i < b.m; i++ {
		bc[i+1] = z.AtVec(i)
		sum += z.AtVec(i)
	}
	bc[0] = 1 - sum
	return
}

// containsBarycentric is the shared containment rule: a point is inside the
// simplex iff all its barycentric coordinates are nonnegative within tolerance
func (b *base) containsBarycentric(x []float64) bool {
	for _, coord := range b.ToBarycentric(x) {
		if coord < -ContainsTol {
			return false
		}
	}
	return true
}

// MidPoint returns the element centroid, the point whose barycentric
// coordinates all equal 1/(M+1), mapped exactly through the affine map
func (b *base) MidPoint() (mid []float64) {
	var (
		bc = mat.NewVecDense(b.m, utils.ConstArray(b.m, 1/float64(b.m+1)))
		p  = mat.NewVecDense(b.n, nil)
	)
	p.MulVec(b.jac, bc)
	mid = make([]float64, b.n)
	for i := range mid {
		mid[i] = p.AtVec(i) + b.coords[0][i]
	}
	return
}

// BoundingBox returns the smallest axis aligned box containing the element,
// as its lower and upper corners
func (b *base) BoundingBox() (lo, hi []float64) {
	return utils.VecMinMax(b.coords)
}

// SpannedSpace returns the affine subspace of the ambient space passing
// through this element
func (b *base) SpannedSpace() *linalg.VectorSpace { return b.span }

// Contains reports whether x lies inside the element or on its boundary,
// within tolerance
func (el *VolumeElement) Contains(x []float64) bool {
	return el.containsBarycentric(x)
}

// manifold carries the containment rule shared by elements embedded in a
// higher dimensional space
type manifold struct {
	base
}

// Contains first requires x to lie in the affine subspace spanned by the
// element; only near-coplanar points are then tested against the barycentric
// nonnegativity rule
func (el *manifold) Contains(x []float64) bool {
	if el.span.Distance(x) > ContainsTol {
		return false
	}
	return el.containsBarycentric(x)
}
