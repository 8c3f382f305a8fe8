// Package config defines the run configuration and its loading hooks.
//
// Defaults reproduce the fixed constants of the survey script; the loader
// only lets paths, columns and verbosity be overridden.
package config

// Default configuration values.
const (
	DefaultDataFile    = "SmartWatch Data File.xlsx"
	DefaultHeatmapFile = "correlation_heatmap.png"
	DefaultRadarFile   = "segment_radar.png"
	DefaultImageDPI    = 96
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataFile is the survey workbook, relative to the working directory.
	DataFile string `koanf:"data_file"`

	// Sheet names the worksheet to read. Empty selects the first sheet.
	Sheet string `koanf:"sheet"`

	// Columns are the numeric features to correlate, in matrix order.
	Columns []string `koanf:"columns"`

	// OutputDir receives the rendered images.
	OutputDir string `koanf:"output_dir"`

	// HeatmapFile and RadarFile are the image names inside OutputDir.
	HeatmapFile string `koanf:"heatmap_file"`
	RadarFile   string `koanf:"radar_file"`

	// MetricsFile, when set, receives the Prometheus text exposition of the run.
	MetricsFile string `koanf:"metrics_file"`

	// ImageDPI is the raster resolution of the PNG output.
	ImageDPI int `koanf:"image_dpi"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		DataFile:    DefaultDataFile,
		Columns:     []string{"Wellness", "Athlete"},
		OutputDir:   ".",
		HeatmapFile: DefaultHeatmapFile,
		RadarFile:   DefaultRadarFile,
		ImageDPI:    DefaultImageDPI,
	}
}
