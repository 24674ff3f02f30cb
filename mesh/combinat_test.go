package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinat(t *testing.T) {
	{ // Factorials
		assert.Equal(t, 1, Factorial(0))
		assert.Equal(t, 1, Factorial(1))
		assert.Equal(t, 2, Factorial(2))
		assert.Equal(t, 6, Factorial(3))
		assert.Equal(t, 120, Factorial(5))
	}
	{ // Vertex and edge counts for segment, triangle, tetrahedron
		assert.Equal(t, []int{2, 3, 4}, []int{NumVertices(1), NumVertices(2), NumVertices(3)})
		assert.Equal(t, []int{1, 3, 6}, []int{NumEdges(1), NumEdges(2), NumEdges(3)})
	}
	{ // Degree of freedom counts (M+R choose R)
		// linear elements carry one dof per vertex
		assert.Equal(t, 2, NumNodes(1, 1))
		assert.Equal(t, 3, NumNodes(2, 1))
		assert.Equal(t, 4, NumNodes(3, 1))
		// quadratic elements add one dof per edge
		assert.Equal(t, 3, NumNodes(1, 2))
		assert.Equal(t, 6, NumNodes(2, 2))
		assert.Equal(t, 10, NumNodes(3, 2))
		// cubic triangle
		assert.Equal(t, 10, NumNodes(2, 3))
	}
}
