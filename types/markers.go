package types

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=BCFLAG

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Boundary
	BC_Dirichlet
	BC_Neumann
	BC_Robin
	BC_Interior
)

var BCNameMap = map[string]BCFLAG{
	"boundary":  BC_Boundary,
	"wall":      BC_Boundary,
	"dirichlet": BC_Dirichlet,
	"neumann":   BC_Neumann,
	"neuman":    BC_Neumann,
	"robin":     BC_Robin,
	"interior":  BC_Interior,
}

/*
MarkerTag is a normalized boundary marker name, composed of a base condition
name and an optional label suffix separated by a dash, e.g. "dirichlet-top".
Tags differing only in case compare equal
*/
type MarkerTag string

func NewMarkerTag(label string) (mt MarkerTag) {
	mt = MarkerTag(strings.ToLower(strings.TrimSpace(label)))
	if mt.GetFLAG() == BC_None {
		panic(fmt.Errorf("unknown boundary marker %q", label))
	}
	return
}

func (mt MarkerTag) GetFLAG() (bf BCFLAG) {
	base := string(mt)
	if ind := strings.Index(base, "-"); ind >= 0 {
		base = base[:ind]
	}
	bf = BCNameMap[base]
	return
}

func (mt MarkerTag) GetLabel() (label string) {
	if ind := strings.Index(string(mt), "-"); ind >= 0 {
		label = string(mt)[ind+1:]
	}
	return
}
