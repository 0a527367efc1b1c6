package config

import (
	"time"

	"github.com/spf13/viper"
)

var (
	KeyVerbose = "verbose"

	KeyTracksDirectory   = "tracks.directory"
	KeyCacheDirectory    = "tracks.cache-directory"
	KeyYear              = "tracks.year"
	KeyMinLength         = "tracks.min-length"
	KeyMergeGap          = "tracks.merge-gap"
	KeySpecialFiles      = "tracks.special"
	KeySimplifyTolerance = "tracks.simplify-tolerance"

	KeyPosterTitle  = "poster.title"
	KeyPosterWidth  = "poster.width"
	KeyPosterHeight = "poster.height"
	KeyPosterLocale = "poster.locale"

	KeyColorBackground = "colors.background"
	KeyColorText       = "colors.text"
	KeyColorTrack      = "colors.track"
	KeyColorSpecial    = "colors.special"

	KeyServeAddress = "serve.address"
)

// SetDefaults registers the default values of all keys.
func SetDefaults() {
	viper.SetDefault(KeyTracksDirectory, ".")
	viper.SetDefault(KeyMinLength, 1000.0)
	viper.SetDefault(KeyMergeGap, time.Hour)
	viper.SetDefault(KeySimplifyTolerance, 10.0)

	viper.SetDefault(KeyPosterTitle, "My Tracks")
	viper.SetDefault(KeyPosterWidth, 200.0)
	viper.SetDefault(KeyPosterHeight, 300.0)
	viper.SetDefault(KeyPosterLocale, "en_US")

	viper.SetDefault(KeyColorBackground, "#222222")
	viper.SetDefault(KeyColorText, "#FFFFFF")
	viper.SetDefault(KeyColorTrack, "#4DD2FF")
	viper.SetDefault(KeyColorSpecial, "#FFFF00")

	viper.SetDefault(KeyServeAddress, ":8080")
}

func Verbose() bool {
	return viper.GetBool(KeyVerbose)
}

func TracksDirectory() string {
	return viper.GetString(KeyTracksDirectory)
}

func HasCacheDirectory() bool {
	return viper.GetString(KeyCacheDirectory) != ""
}

func CacheDirectory() string {
	return viper.GetString(KeyCacheDirectory)
}

// Year restricts the loaded tracks to a single year, zero disables the filter.
func Year() int {
	return viper.GetInt(KeyYear)
}

func MinLength() float64 {
	return viper.GetFloat64(KeyMinLength)
}

func MergeGap() time.Duration {
	return viper.GetDuration(KeyMergeGap)
}

func SpecialFiles() []string {
	return viper.GetStringSlice(KeySpecialFiles)
}

func SimplifyTolerance() float64 {
	return viper.GetFloat64(KeySimplifyTolerance)
}

func PosterTitle() string {
	return viper.GetString(KeyPosterTitle)
}

func PosterWidth() float64 {
	return viper.GetFloat64(KeyPosterWidth)
}

func PosterHeight() float64 {
	return viper.GetFloat64(KeyPosterHeight)
}

func PosterLocale() string {
	return viper.GetString(KeyPosterLocale)
}

// Colors returns the configured palette keyed by role.
func Colors() map[string]string {
	return map[string]string{
		"background": viper.GetString(KeyColorBackground),
		"text":       viper.GetString(KeyColorText),
		"track":      viper.GetString(KeyColorTrack),
		"special":    viper.GetString(KeyColorSpecial),
	}
}

func ServeAddress() string {
	return viper.GetString(KeyServeAddress)
}

func GPXExtensions() []string {
	return []string{".gpx"}
}

// NMEAExtensions lists the extensions of NMEA logs. Loggers often write them
// as plain text files.
func NMEAExtensions() []string {
	return []string{".nmea", ".txt"}
}

func TrackExtensions() []string {
	return append(GPXExtensions(), NMEAExtensions()...)
}
