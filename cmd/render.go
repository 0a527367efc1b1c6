package cmd

import (
	"github.com/bgraf/trackposter/cmd/building"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the track poster to an SVG or PNG file",
	Long: `Loads all track files of the tracks directory, merges tracks that
took place within the merge gap and renders them as a heatmap poster. The
output format is derived from the extension of the output file.`,
	Args: cobra.NoArgs,
	RunE: building.RunRenderCmd,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "poster.svg", "Output file (.svg or .png)")
	renderCmd.Flags().String("title", "", "Poster title")
	renderCmd.Flags().Float64("ppu", 0, "Pixels per poster unit for PNG output")
}
