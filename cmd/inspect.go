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
	"sort"

	"github.com/fdapde/gomesh/mesh"
	"github.com/fdapde/gomesh/readfiles"
	"github.com/fdapde/gomesh/types"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Read a grid file and report mesh geometry statistics",
	Long:  `Read a grid file and report mesh geometry statistics`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		gridFile, _ := cmd.Flags().GetString("gridFile")
		order, _ := cmd.Flags().GetInt("order")
		if len(gridFile) == 0 {
			fmt.Printf("error: must supply a grid file (-F, --gridFile) in .su2 format\n")
			os.Exit(1)
		}
		var msh *mesh.Mesh
		if msh, err = readfiles.ReadSU2(gridFile, order, true); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		printMeshStats(msh)
	},
}

func printMeshStats(msh *mesh.Mesh) {
	fmt.Printf("%8d\t\t= Elements\n", msh.NumElements())
	fmt.Printf("%8d\t\t= Vertices\n", msh.NumVertices())
	fmt.Printf("%8d\t\t= Local Dimension\n", msh.LocalDim())
	fmt.Printf("%8d\t\t= Embedding Dimension\n", msh.EmbedDim())
	fmt.Printf("%8d\t\t= Polynomial Order\n", msh.Order())
	fmt.Printf("%8d\t\t= DOFs per Element\n", mesh.NumNodes(msh.LocalDim(), msh.Order()))
	fmt.Printf("%8.5f\t\t= Total Measure\n", msh.TotalMeasure())
	lo, hi := msh.BoundingBox()
	fmt.Printf("%v -> %v\t= Bounding Box\n", lo, hi)
	fmt.Printf("%8d\t\t= Boundary Nodes\n", len(msh.BoundaryNodes()))

	keys := make([]string, 0, len(msh.Markers()))
	for tag := range msh.Markers() {
		keys = append(keys, string(tag))
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Marker[%s] = %d facets\n", key, len(msh.Markers()[types.MarkerTag(key)]))
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("gridFile", "F", "", "grid file to read, in SU2 format")
	inspectCmd.Flags().IntP("order", "r", 1, "polynomial order of the elements")
}
