package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const geomTol = 1.e-12

func newTestElement(t *testing.T, coords [][]float64) Element {
	t.Helper()
	var (
		nodeIDs   = make([]int, len(coords))
		neighbors = make([]int, len(coords))
	)
	for i := range nodeIDs {
		nodeIDs[i] = i
		neighbors[i] = NoNeighbor
	}
	el, err := NewElement(0, nodeIDs, coords, neighbors, false, 1)
	require.NoError(t, err)
	return el
}

func TestElementUnitTriangle(t *testing.T) {
	// reference triangle in 2-space: vertices (0,0), (1,0), (0,1)
	el := newTestElement(t, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	assert.IsType(t, &VolumeElement{}, el)
	assert.Equal(t, 2, el.LocalDim())
	assert.Equal(t, 2, el.EmbedDim())
	assert.Equal(t, 3, el.NumNodes())

	assert.InDelta(t, 0.5, el.Measure(), geomTol)
	assert.InDeltaSlice(t, []float64{1. / 3., 1. / 3., 1. / 3.},
		el.ToBarycentric([]float64{1. / 3., 1. / 3.}), geomTol)

	// on the hypotenuse, boundary inclusive
	assert.True(t, el.Contains([]float64{0.5, 0.5}))
	assert.False(t, el.Contains([]float64{0.6, 0.6}))

	lo, hi := el.BoundingBox()
	assert.InDeltaSlice(t, []float64{0, 0}, lo, geomTol)
	assert.InDeltaSlice(t, []float64{1, 1}, hi, geomTol)
	assert.InDeltaSlice(t, []float64{1. / 3., 1. / 3.}, el.MidPoint(), geomTol)
}

func TestElementSurfaceTriangle(t *testing.T) {
	// triangle in the z=0 plane of 3-space
	el := newTestElement(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	assert.IsType(t, &SurfaceElement{}, el)
	assert.Equal(t, 2, el.LocalDim())
	assert.Equal(t, 3, el.EmbedDim())

	// area identical to the planar case
	assert.InDelta(t, 0.5, el.Measure(), geomTol)

	// in-plane containment matches the planar triangle
	assert.True(t, el.Contains([]float64{0.25, 0.25, 0}))
	assert.False(t, el.Contains([]float64{0.6, 0.6, 0}))

	// out-of-plane points project onto the triangle but must fail containment
	assert.InDeltaSlice(t, []float64{1, 0, 0}, el.ToBarycentric([]float64{0, 0, 1}), geomTol)
	assert.False(t, el.Contains([]float64{0, 0, 1}))
	assert.False(t, el.Contains([]float64{0.25, 0.25, 1.e-8}))

	assert.InDelta(t, 0., el.SpannedSpace().Distance([]float64{5, -3, 0}), geomTol)
	assert.InDelta(t, 2., el.SpannedSpace().Distance([]float64{5, -3, 2}), geomTol)
}

func TestElementNetworkSegment(t *testing.T) {
	// segment from (0,0) to (2,0)
	el := newTestElement(t, [][]float64{{0, 0}, {2, 0}})
	assert.IsType(t, &NetworkElement{}, el)
	assert.Equal(t, 1, el.LocalDim())
	assert.Equal(t, 2, el.EmbedDim())
	assert.Equal(t, 2, el.NumNodes())

	assert.InDelta(t, 2., el.Measure(), geomTol)
	assert.InDeltaSlice(t, []float64{1, 0}, el.MidPoint(), geomTol)

	assert.True(t, el.Contains([]float64{0.5, 0}))
	assert.True(t, el.Contains([]float64{2, 0}))
	assert.False(t, el.Contains([]float64{2.5, 0}))
	assert.False(t, el.Contains([]float64{1, 0.1}))

	// a segment embedded in 3-space
	el3 := newTestElement(t, [][]float64{{0, 0, 0}, {1, 1, 1}})
	assert.InDelta(t, 1.7320508075688772, el3.Measure(), geomTol)
	assert.True(t, el3.Contains([]float64{0.5, 0.5, 0.5}))
	assert.False(t, el3.Contains([]float64{0.5, 0.5, 0.6}))
}

func TestElementTetrahedron(t *testing.T) {
	el := newTestElement(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.IsType(t, &VolumeElement{}, el)
	assert.InDelta(t, 1./6., el.Measure(), geomTol)
	assert.Equal(t, 4, el.NumNodes())

	assert.True(t, el.Contains(el.MidPoint()))
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25},
		el.ToBarycentric(el.MidPoint()), geomTol)
	assert.False(t, el.Contains([]float64{0.5, 0.5, 0.5}))
}

func TestBarycentricProperties(t *testing.T) {
	elements := [][][]float64{
		{{0, 0}, {1, 0}, {0, 1}},                     // planar triangle
		{{1, 1}, {3, 1.5}, {1.5, 4}},                 // skewed triangle
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, // tetrahedron
		{{0, 0, 1}, {1, 0, 1}, {0, 1, 2}},            // tilted surface triangle
		{{0, 0}, {2, 0}},                             // network segment
	}
	for _, coords := range elements {
		el := newTestElement(t, coords)
		m := el.LocalDim()

		// each vertex maps to a one-hot barycentric vector
		for i, vert := range coords {
			bc := el.ToBarycentric(vert)
			for j := 0; j <= m; j++ {
				want := 0.
				if j == i {
					want = 1.
				}
				assert.InDelta(t, want, bc[j], geomTol)
			}
		}

		// the midpoint has all barycentric coordinates equal to 1/(M+1)
		assert.True(t, el.Contains(el.MidPoint()))
		bc := el.ToBarycentric(el.MidPoint())
		for j := 0; j <= m; j++ {
			assert.InDelta(t, 1/float64(m+1), bc[j], geomTol)
		}
	}
}

func TestBarycentricRoundTrip(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(7))
		el  = newTestElement(t, [][]float64{{1, 1}, {3, 1.5}, {1.5, 4}})
		jac = el.Jacobian()
		ref = el.Coords()[0]
	)
	for trial := 0; trial < 50; trial++ {
		// random interior point as a convex vertex combination
		w := []float64{rnd.Float64(), rnd.Float64(), rnd.Float64()}
		sum := w[0] + w[1] + w[2]
		x := make([]float64, 2)
		for i, vert := range el.Coords() {
			for d := range x {
				x[d] += w[i] / sum * vert[d]
			}
		}
		require.True(t, el.Contains(x))

		// map to barycentric and back through jac*z + coords[0]
		bc := el.ToBarycentric(x)
		z := mat.NewVecDense(2, bc[1:])
		back := mat.NewVecDense(2, nil)
		back.MulVec(jac, z)
		for d := range x {
			assert.InDelta(t, x[d], back.AtVec(d)+ref[d], geomTol)
		}
	}
}

func TestMeasurePermutationInvariance(t *testing.T) {
	var (
		verts = [][]float64{{1, 1}, {3, 1.5}, {1.5, 4}}
		perms = [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
		want  = newTestElement(t, verts).Measure()
	)
	for _, perm := range perms {
		coords := make([][]float64, 3)
		for i, p := range perm {
			coords[i] = verts[p]
		}
		assert.InDelta(t, want, newTestElement(t, coords).Measure(), geomTol)
	}
}

func TestContainmentBoundaryMonotone(t *testing.T) {
	el := newTestElement(t, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	// walk from an interior point outward through the hypotenuse facet
	inside := []float64{0.45, 0.45}
	assert.True(t, el.Contains(inside))
	outward := []float64{0.55, 0.55}
	assert.False(t, el.Contains(outward))
	// a perturbation below tolerance does not flip containment
	onFacet := []float64{0.5, 0.5}
	assert.True(t, el.Contains(onFacet))
	assert.True(t, el.Contains([]float64{0.5 + Eps, 0.5}))
	assert.False(t, el.Contains([]float64{0.5 + 1.e-12, 0.5 + 1.e-12}))
}

func TestElementConstructionErrors(t *testing.T) {
	var (
		ids       = []int{0, 1, 2}
		neighbors = []int{NoNeighbor, NoNeighbor, NoNeighbor}
	)
	{ // degenerate: collinear triangle vertices
		_, err := NewElement(0, ids, [][]float64{{0, 0}, {1, 1}, {2, 2}}, neighbors, false, 1)
		assert.ErrorIs(t, err, ErrDegenerateElement)
	}
	{ // degenerate: coincident segment endpoints
		_, err := NewElement(0, ids[:2], [][]float64{{1, 2}, {1, 2}}, neighbors[:2], false, 1)
		assert.ErrorIs(t, err, ErrDegenerateElement)
	}
	{ // shape mismatches
		_, err := NewElement(0, ids, [][]float64{{0, 0}, {1, 0}}, neighbors, false, 1)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, err = NewElement(0, ids, [][]float64{{0, 0}, {1, 0}, {0, 1, 5}}, neighbors, false, 1)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, err = NewElement(0, ids, [][]float64{{0, 0}, {1, 0}, {0, 1}}, neighbors, false, 0)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		// a tetrahedron cannot embed in 2-space
		_, err = NewElement(0, []int{0, 1, 2, 3},
			[][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, neighbors, false, 1)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	}
}

func TestElementAccessors(t *testing.T) {
	coords := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	el, err := NewElement(7, []int{10, 11, 12}, coords, []int{3, NoNeighbor, 5}, true, 2)
	require.NoError(t, err)

	assert.Equal(t, 7, el.ID())
	assert.Equal(t, []int{10, 11, 12}, el.NodeIDs())
	assert.Equal(t, []int{3, NoNeighbor, 5}, el.Neighbors())
	assert.True(t, el.OnBoundary())
	assert.Equal(t, 2, el.Order())
	assert.Equal(t, 6, el.NumNodes()) // quadratic triangle

	// coordinates are copied in, not referenced
	coords[0][0] = 1.e6
	assert.Equal(t, 0., el.Coords()[0][0])

	// forward and reverse traversal orders
	assert.Equal(t, el.Coords()[0], el.CoordsReversed()[2])
	assert.Equal(t, el.Coords()[2], el.CoordsReversed()[0])

	// the cached affine map has the documented shapes
	r, c := el.Jacobian().Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
	r, c = el.JacobianInverse().Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
}
