package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML query input file
type QueryParameters struct {
	Title             string      `yaml:"Title"`
	PolynomialOrder   int         `yaml:"PolynomialOrder"`
	Points            [][]float64 `yaml:"Points"` // cartesian query points, one per row
	ReportBarycentric bool        `yaml:"ReportBarycentric"`
}

func (qp *QueryParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, qp); err != nil {
		return err
	}
	if qp.PolynomialOrder == 0 {
		qp.PolynomialOrder = 1
	}
	if len(qp.Points) == 0 {
		return fmt.Errorf("query file must list at least one point")
	}
	dim := len(qp.Points[0])
	for i, pt := range qp.Points {
		if len(pt) != dim {
			return fmt.Errorf("query point %d has dimension %d, expected %d", i, len(pt), dim)
		}
	}
	return nil
}

func (qp *QueryParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", qp.Title)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", qp.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Query Points\n", len(qp.Points))
	fmt.Printf("[%v]\t\t\t= Report Barycentric\n", qp.ReportBarycentric)
}
