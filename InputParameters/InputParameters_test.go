package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParameters(t *testing.T) {
	{ // a complete query file
		data := []byte(`
Title: "Point location over the unit square"
PolynomialOrder: 1
ReportBarycentric: true
Points:
  - [0.25, 0.25]
  - [0.75, 0.75]
`)
		qp := &QueryParameters{}
		require.NoError(t, qp.Parse(data))
		assert.Equal(t, "Point location over the unit square", qp.Title)
		assert.Equal(t, 1, qp.PolynomialOrder)
		assert.True(t, qp.ReportBarycentric)
		assert.Equal(t, [][]float64{{0.25, 0.25}, {0.75, 0.75}}, qp.Points)
	}
	{ // the order defaults to linear elements
		qp := &QueryParameters{}
		require.NoError(t, qp.Parse([]byte("Points:\n  - [0, 0, 0]\n")))
		assert.Equal(t, 1, qp.PolynomialOrder)
	}
	{ // malformed inputs
		qp := &QueryParameters{}
		assert.Error(t, qp.Parse([]byte("Title: \"no points\"\n")))
		assert.Error(t, qp.Parse([]byte("Points:\n  - [0, 0]\n  - [0, 0, 1]\n")))
	}
}
