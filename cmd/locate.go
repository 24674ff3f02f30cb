/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fdapde/gomesh/InputParameters"
	"github.com/fdapde/gomesh/mesh"
	"github.com/fdapde/gomesh/readfiles"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// locateCmd represents the locate command
var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate query points within the elements of a mesh",
	Long: `Locate query points within the elements of a mesh, reading the points
from a YAML query file and reporting the containing element for each`,
	Run: func(cmd *cobra.Command, args []string) {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		queryFile, _ := cmd.Flags().GetString("queryFile")
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		qp := processQueryInput(gridFile, queryFile)
		var (
			msh *mesh.Mesh
			err error
		)
		if msh, err = readfiles.ReadSU2(gridFile, qp.PolynomialOrder, true); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		qp.Print()
		runLocate(msh, qp)
	},
}

func processQueryInput(gridFile, queryFile string) (qp *InputParameters.QueryParameters) {
	var (
		err      error
		willExit bool
	)
	if len(gridFile) == 0 {
		fmt.Printf("error: must supply a grid file (-F, --gridFile) in .su2 format\n")
		willExit = true
	}
	if len(queryFile) == 0 {
		fmt.Printf("error: must supply a query file (-Q, --queryFile) in YAML format\n")
		exampleFile := `
########################################
Title: "Point location over the unit square"
PolynomialOrder: 1
ReportBarycentric: true
Points:
  - [0.25, 0.25]
  - [0.75, 0.75]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(queryFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	qp = &InputParameters.QueryParameters{}
	if err = qp.Parse(data); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func runLocate(msh *mesh.Mesh, qp *InputParameters.QueryParameters) {
	for _, pt := range qp.Points {
		if len(pt) != msh.EmbedDim() {
			fmt.Printf("point %v: dimension %d does not match the %d-dimensional mesh\n",
				pt, len(pt), msh.EmbedDim())
			continue
		}
		el, found := msh.Locate(pt)
		if !found {
			fmt.Printf("point %v: outside the mesh\n", pt)
			continue
		}
		fmt.Printf("point %v: element %d, measure %8.5f\n", pt, el.ID(), el.Measure())
		if qp.ReportBarycentric {
			fmt.Printf("\tbarycentric = %v\n", el.ToBarycentric(pt))
		}
	}
}

func init() {
	rootCmd.AddCommand(locateCmd)
	locateCmd.Flags().StringP("gridFile", "F", "", "grid file to read, in SU2 format")
	locateCmd.Flags().StringP("queryFile", "Q", "", "YAML file listing the query points")
	locateCmd.Flags().Bool("profile", false, "write a CPU profile of the query run")
}
