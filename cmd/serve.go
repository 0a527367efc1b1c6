package cmd

import (
	"github.com/bgraf/trackposter/cmd/serve"
	"github.com/bgraf/trackposter/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the poster and the loaded tracks over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	if err := viper.BindPFlag(config.KeyServeAddress, serveCmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
}
