package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowire/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene]",
	Short: "Display information about a scene",
	Long:  "Show mesh statistics, bounding box, dimensions and edge lengths of a scene.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(command *cobra.Command, args []string) error {
	session, err := flags.Open(scenePath(args))
	if err != nil {
		return err
	}
	result := analysis.Analyze(session.Scene.Meshes)
	out := command.OutOrStdout()

	fmt.Fprintln(out, "Scene Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n\n", session.Scene.Name)

	fmt.Fprintln(out, "Meshes:")
	for _, m := range result.Meshes {
		notes := ""
		if !m.Visible {
			notes += " hidden"
		}
		if !m.Focusable {
			notes += " unfocusable"
		}
		fmt.Fprintf(out, "  %-16s points %4d  edges %4d  faces %4d%s\n", m.Name, m.Points, m.Edges, m.Faces, notes)
	}
	fmt.Fprintf(out, "  %-16s points %4d  edges %4d  faces %4d\n\n", "total", result.Points, result.Edges, result.Faces)

	if result.BoundingBox.IsEmpty() {
		return nil
	}
	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n", result.Volume)
	if result.Faces > 0 {
		fmt.Fprintf(out, "  Surface area: %.6f square units\n", result.SurfaceArea)
	}
	fmt.Fprintln(out)

	if len(result.AllEdges) == 0 {
		return nil
	}
	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)

	fmt.Fprintln(out, "\nLongest edges:")
	for _, e := range analysis.FindLongestEdges(result, 3) {
		fmt.Fprintf(out, "  %.6f  %s %v\n", e.Length, e.Mesh, e.Edge)
	}
	return nil
}
