package linalg

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

type SVDPolicy uint8

const (
	DeterministicSVD   SVDPolicy = iota // thin SVD of the full matrix
	RandSVDSubspace                     // randomized range finder with subspace iterations
	RandSVDBlockKrylov                  // randomized range finder with a block Krylov basis
)

const (
	oversampling   = 10 // extra random probe columns beyond the target rank
	iterationDepth = 2  // power/Krylov iterations applied to the sketch
)

/*
TruncatedSVD computes a rank-k singular value decomposition A ~ U S V^T, with
U, V restricted to their leading k columns. The deterministic policy factors
the full matrix; the randomized policies sketch the range of A with a Gaussian
test matrix first and factor only the sketch, which is much cheaper when
k << min(m, n)
*/
type TruncatedSVD struct {
	u, v  *mat.Dense
	sigma []float64
}

func NewTruncatedSVD(A mat.Matrix, rank int, policy SVDPolicy) (tsvd *TruncatedSVD, err error) {
	var (
		m, n = A.Dims()
	)
	if rank < 1 || rank > min(m, n) {
		err = fmt.Errorf("truncation rank %d out of range [1,%d]", rank, min(m, n))
		return
	}
	switch policy {
	case DeterministicSVD:
		tsvd, err = thinSVD(A, rank)
	case RandSVDSubspace, RandSVDBlockKrylov:
		tsvd, err = randomizedSVD(A, rank, policy)
	default:
		err = fmt.Errorf("unknown SVD policy %d", policy)
	}
	return
}

func (tsvd *TruncatedSVD) U() mat.Matrix     { return tsvd.u }
func (tsvd *TruncatedSVD) V() mat.Matrix     { return tsvd.v }
func (tsvd *TruncatedSVD) Values() []float64 { return tsvd.sigma }

// Rank returns the truncation rank the decomposition was computed for
func (tsvd *TruncatedSVD) Rank() int { return len(tsvd.sigma) }

func thinSVD(A mat.Matrix, rank int) (tsvd *TruncatedSVD, err error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		err = fmt.Errorf("SVD factorization failed to converge")
		return
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	ur, _ := U.Dims()
	vr, _ := V.Dims()
	tsvd = &TruncatedSVD{
		u:     mat.DenseCopyOf(U.Slice(0, ur, 0, rank)),
		v:     mat.DenseCopyOf(V.Slice(0, vr, 0, rank)),
		sigma: svd.Values(nil)[:rank],
	}
	return
}

func randomizedSVD(A mat.Matrix, rank int, policy SVDPolicy) (tsvd *TruncatedSVD, err error) {
	var (
		m, n = A.Dims()
		l    = min(rank+oversampling, min(m, n))
		rnd  = rand.New(rand.NewSource(1))
	)
	// Gaussian test matrix probing the range of A
	G := mat.NewDense(n, l, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < l; j++ {
			G.Set(i, j, rnd.NormFloat64())
		}
	}
	Y := mat.NewDense(m, l, nil)
	Y.Mul(A, G)
	Q := orthonormalize(Y)

	switch policy {
	case RandSVDSubspace:
		// power iterations sharpen the captured range when the spectrum decays slowly
		for it := 0; it < iterationDepth; it++ {
			Z := mat.NewDense(n, l, nil)
			Z.Mul(A.T(), Q)
			Qz := orthonormalize(Z)
			Y.Mul(A, Qz)
			Q = orthonormalize(Y)
		}
	case RandSVDBlockKrylov:
		// accumulate the Krylov blocks [Q, (A A^T) Q, ...] before re-orthonormalizing
		blocks := []*mat.Dense{Q}
		for it := 0; it < iterationDepth; it++ {
			prev := blocks[len(blocks)-1]
			Z := mat.NewDense(n, l, nil)
			Z.Mul(A.T(), prev)
			W := mat.NewDense(m, l, nil)
			W.Mul(A, Z)
			blocks = append(blocks, orthonormalize(W))
		}
		K := mat.NewDense(m, l*len(blocks), nil)
		for b, blk := range blocks {
			for j := 0; j < l; j++ {
				K.SetCol(b*l+j, mat.Col(nil, j, blk))
			}
		}
		Q = orthonormalize(K)
	}

	// project A onto the captured range and factor the small matrix
	_, qc := Q.Dims()
	B := mat.NewDense(qc, n, nil)
	B.Mul(Q.T(), A)
	var svd mat.SVD
	if ok := svd.Factorize(B, mat.SVDThin); !ok {
		err = fmt.Errorf("SVD factorization of range sketch failed to converge")
		return
	}
	var Ub, V mat.Dense
	svd.UTo(&Ub)
	svd.VTo(&V)
	U := mat.NewDense(m, rank, nil)
	U.Mul(Q, Ub.Slice(0, qc, 0, rank))
	vr, _ := V.Dims()
	tsvd = &TruncatedSVD{
		u:     U,
		v:     mat.DenseCopyOf(V.Slice(0, vr, 0, rank)),
		sigma: svd.Values(nil)[:rank],
	}
	return
}

// orthonormalize returns a matrix whose columns are an orthonormal basis for
// the column space of M. Tall blocks go through thin QR; wide blocks span at
// most r directions and QR requires rows >= cols, so those take the left
// singular vectors instead
func orthonormalize(M *mat.Dense) (Q *mat.Dense) {
	r, c := M.Dims()
	if c > r {
		var svd mat.SVD
		if ok := svd.Factorize(M, mat.SVDThin); !ok {
			panic("unable to factorize basis block")
		}
		var U mat.Dense
		svd.UTo(&U)
		Q = &U
		return
	}
	var qr mat.QR
	qr.Factorize(M)
	var Qfull mat.Dense
	qr.QTo(&Qfull)
	Q = mat.DenseCopyOf(Qfull.Slice(0, r, 0, c))
	return
}
