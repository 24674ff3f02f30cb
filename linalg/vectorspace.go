package linalg

import (
	"fmt"
	"math"

	"github.com/fdapde/gomesh/utils"
	"gonum.org/v1/gonum/mat"
)

/*
VectorSpace represents the affine subspace of R^n spanned by a set of m basis
vectors anchored at an origin point. The defining basis is orthonormalized at
construction via QR factorization, so that projection and point-to-subspace
distance queries are simple matrix products afterwards
*/
type VectorSpace struct {
	origin []float64
	Q      *mat.Dense // n x m, orthonormal basis spanning the subspace
}

const rankTol = 1.e-13

func NewVectorSpace(basis [][]float64, origin []float64) (vs *VectorSpace, err error) {
	var (
		m = len(basis)
		n = len(origin)
	)
	if m == 0 || m > n {
		err = fmt.Errorf("need between 1 and %d basis vectors in %d-space, have %d", n, n, m)
		return
	}
	A := mat.NewDense(n, m, nil)
	for j, vec := range basis {
		if len(vec) != n {
			err = fmt.Errorf("basis vector %d has dimension %d, expected %d", j, len(vec), n)
			return
		}
		A.SetCol(j, vec)
	}
	var qr mat.QR
	qr.Factorize(A)
	var R mat.Dense
	qr.RTo(&R)
	for j := 0; j < m; j++ {
		if math.Abs(R.At(j, j)) < rankTol {
			err = fmt.Errorf("basis is rank deficient, rank %d < %d", j, m)
			return
		}
	}
	var Qfull mat.Dense
	qr.QTo(&Qfull)
	vs = &VectorSpace{
		origin: append([]float64{}, origin...),
		Q:      mat.DenseCopyOf(Qfull.Slice(0, n, 0, m)),
	}
	return
}

func (vs *VectorSpace) Dims() (n, m int) { return vs.Q.Dims() }

func (vs *VectorSpace) Origin() []float64 { return vs.origin }

// Project returns the orthogonal projection of x onto the affine subspace
func (vs *VectorSpace) Project(x []float64) (p []float64) {
	var (
		n, m = vs.Q.Dims()
		d    = mat.NewVecDense(n, utils.VecSub(x, vs.origin))
		c    = mat.NewVecDense(m, nil)
		proj = mat.NewVecDense(n, nil)
	)
	c.MulVec(vs.Q.T(), d)
	proj.MulVec(vs.Q, c)
	p = make([]float64, n)
	for i := range p {
		p[i] = vs.origin[i] + proj.AtVec(i)
	}
	return
}

// Distance returns the Euclidean distance of x from the affine subspace
func (vs *VectorSpace) Distance(x []float64) float64 {
	return utils.Norm2(utils.VecSub(x, vs.Project(x)))
}
