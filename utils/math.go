package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func Dot(a, b []float64) (d float64) {
	for i, val := range a {
		d += val * b[i]
	}
	return
}

func Norm2(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}

func VecSub(a, b []float64) (v []float64) {
	v = make([]float64, len(a))
	for i, val := range a {
		v[i] = val - b[i]
	}
	return
}

func VecMinMax(vecs [][]float64) (min, max []float64) {
	min = append([]float64{}, vecs[0]...)
	max = append([]float64{}, vecs[0]...)
	for _, vec := range vecs[1:] {
		for i, val := range vec {
			if val < min[i] {
				min[i] = val
			}
			if val > max[i] {
				max[i] = val
			}
		}
	}
	return
}
