package building

import (
	"github.com/bgraf/trackposter/building"
	"github.com/spf13/cobra"
)

func RunRenderCmd(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	title, err := cmd.Flags().GetString("title")
	if err != nil {
		return err
	}

	pixelsPerUnit, err := cmd.Flags().GetFloat64("ppu")
	if err != nil {
		return err
	}

	opts := building.OptionsFromConfig()
	if title != "" {
		opts.Title = title
	}
	opts.PixelsPerUnit = pixelsPerUnit

	return building.Build(opts, output)
}
