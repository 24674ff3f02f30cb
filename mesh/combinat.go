package mesh

// Combinatorial constants of an M-dimensional simplicial element of order R.
// All counts are pure functions of the two integers, evaluated once at
// element construction

func Factorial(n int) (f int) {
	f = 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return
}

// NumVertices returns the number of vertices of an M-dimensional simplex
func NumVertices(m int) int { return m + 1 }

// NumEdges returns the number of edges of an M-dimensional simplex
func NumEdges(m int) int { return m * (m + 1) / 2 }

// NumNodes returns the number of degrees of freedom carried by an
// M-dimensional element of order R, the binomial coefficient (M+R choose R)
func NumNodes(m, r int) int {
	return Factorial(m+r) / (Factorial(m) * Factorial(r))
}
