package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/bgraf/trackposter/config"
	"github.com/bgraf/trackposter/logging"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trackposter",
	Short: "Render GPS tracks as a heatmap poster",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trackposter.yaml)")

	rootCmd.PersistentFlags().StringP("tracks-dir", "t", "", "Directory containing GPX or NMEA track files")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory for cached track data")
	rootCmd.PersistentFlags().Int("year", 0, "Only use tracks of the given year")
	rootCmd.PersistentFlags().StringSlice("special", nil, "File names of tracks to highlight")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	mustBindPFlag(config.KeyTracksDirectory, "tracks-dir")
	mustBindPFlag(config.KeyCacheDirectory, "cache-dir")
	mustBindPFlag(config.KeyYear, "year")
	mustBindPFlag(config.KeySpecialFiles, "special")
	mustBindPFlag(config.KeyVerbose, "verbose")
}

func mustBindPFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in the working and home directory with name ".trackposter" (without extension).
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".trackposter")
	}

	viper.SetEnvPrefix("trackposter")
	viper.AutomaticEnv() // read in environment variables that match

	configErr := viper.ReadInConfig()

	logging.Init(config.Verbose())

	// If a config file is found, read it in.
	if configErr == nil {
		log.Println("using config file:", viper.ConfigFileUsed())
	}
}
