package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fdapde/gomesh/mesh"
	"github.com/fdapde/gomesh/types"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_Vertex      SU2ElementType = 1
	ELType_Line                       = 3
	ELType_Triangle                   = 5
	ELType_Tetrahedral                = 10
)

// number of vertices per supported cell type
var elTypeVertices = map[SU2ElementType]int{
	ELType_Vertex:      1,
	ELType_Line:        2,
	ELType_Triangle:    3,
	ELType_Tetrahedral: 4,
}

// ReadSU2 reads an SU2 format grid file holding a simplicial mesh: line,
// triangle or tetrahedron cells, in 2- or 3-space. Manifold meshes are
// expressed naturally: a surface mesh is NDIME= 3 with triangle cells, a
// network mesh NDIME= 2 (or 3) with line cells. Boundary markers become the
// mesh's marker set; marker cells must be the facets of the volume cells
func ReadSU2(filename string, order int, verbose bool) (msh *mesh.Mesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s: %w", filename, err)
		return
	}
	defer file.Close()
	return ReadSU2Mesh(bufio.NewReader(file), order)
}

func ReadSU2Mesh(reader *bufio.Reader, order int) (msh *mesh.Mesh, err error) {
	var (
		dim     int
		etov    [][]int
		verts   [][]float64
		markers map[types.MarkerTag][][]int
	)
	if dim, err = readNumber(reader); err != nil {
		return
	}
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("unsupported dimensionality NDIME= %d", dim)
		return
	}
	if etov, err = readElements(reader); err != nil {
		return
	}
	if verts, err = readVertices(reader, dim); err != nil {
		return
	}
	if markers, err = readBCs(reader, len(etov[0])-1); err != nil {
		return
	}
	return mesh.NewMesh(verts, etov, order, markers)
}

func readElements(reader *bufio.Reader) (etov [][]int, err error) {
	var (
		K     int
		nvert int
	)
	if K, err = readNumber(reader); err != nil {
		return
	}
	if K < 1 {
		err = fmt.Errorf("NELEM= %d, need at least one element", K)
		return
	}
	etov = make([][]int, K)
	for k := 0; k < K; k++ {
		var fields []int
		if fields, err = readIntFields(reader); err != nil {
			return
		}
		nv, ok := elTypeVertices[SU2ElementType(fields[0])]
		if !ok || SU2ElementType(fields[0]) == ELType_Vertex {
			err = fmt.Errorf("element %d: unsupported cell type %d", k, fields[0])
			return
		}
		if k == 0 {
			nvert = nv
		} else if nv != nvert {
			err = fmt.Errorf("element %d: mixed cell types are not supported", k)
			return
		}
		if len(fields) < 1+nv {
			err = fmt.Errorf("element %d: have %d vertex indices, want %d", k, len(fields)-1, nv)
			return
		}
		// a trailing element index, if present, is ignored
		etov[k] = fields[1 : 1+nv]
	}
	return
}

func readVertices(reader *bufio.Reader, dim int) (verts [][]float64, err error) {
	var (
		Nv int
	)
	if Nv, err = readNumber(reader); err != nil {
		return
	}
	verts = make([][]float64, Nv)
	for i := 0; i < Nv; i++ {
		var line string
		if line, err = getLineNoComments(reader); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < dim {
			err = fmt.Errorf("vertex %d: have %d coordinates, want %d", i, len(fields), dim)
			return
		}
		verts[i] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			if verts[i][d], err = strconv.ParseFloat(fields[d], 64); err != nil {
				err = fmt.Errorf("vertex %d: unable to parse coordinate [%s]", i, fields[d])
				return
			}
		}
	}
	return
}

func readBCs(reader *bufio.Reader, m int) (markers map[types.MarkerTag][][]int, err error) {
	var (
		NBCs int
	)
	if NBCs, err = readNumber(reader); err != nil {
		return
	}
	markers = make(map[types.MarkerTag][][]int, NBCs)
	for n := 0; n < NBCs; n++ {
		var label string
		if label, err = readLabel(reader); err != nil {
			return
		}
		key := types.NewMarkerTag(label)
		if _, ok := markers[key]; ok {
			err = fmt.Errorf("duplicate boundary marker with label [%s]", label)
			return
		}
		var nFacets int
		if nFacets, err = readNumber(reader); err != nil {
			return
		}
		markers[key] = make([][]int, nFacets)
		for i := 0; i < nFacets; i++ {
			var fields []int
			if fields, err = readIntFields(reader); err != nil {
				return
			}
			nv, ok := elTypeVertices[SU2ElementType(fields[0])]
			if !ok || nv != m {
				err = fmt.Errorf("marker [%s]: cell type %d is not a valid facet of a %d-dimensional element",
					label, fields[0], m)
				return
			}
			if len(fields) < 1+nv {
				err = fmt.Errorf("marker [%s]: facet %d has %d vertices, want %d",
					label, i, len(fields)-1, nv)
				return
			}
			markers[key][i] = fields[1 : 1+nv]
		}
	}
	return
}

func readIntFields(reader *bufio.Reader) (fields []int, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	raw := strings.Fields(line)
	if len(raw) == 0 {
		err = fmt.Errorf("empty data line")
		return
	}
	fields = make([]int, len(raw))
	for i, tok := range raw {
		if fields[i], err = strconv.Atoi(tok); err != nil {
			err = fmt.Errorf("unable to parse integer from [%s]", tok)
			return
		}
	}
	return
}

func getToken(reader *bufio.Reader) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		err = fmt.Errorf("badly formed input line [%s], should have an =", line)
		return
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	label = strings.TrimSpace(token)
	if len(label) == 0 {
		err = fmt.Errorf("unable to read label from token: [%s]", token)
	}
	return
}

func readNumber(reader *bufio.Reader) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		err = fmt.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.Trim(line, " \t")
		if !strings.HasPrefix(line, "%") && len(line) != 0 {
			return
		}
	}
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) != 0 {
			err = nil
		} else if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		return
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
