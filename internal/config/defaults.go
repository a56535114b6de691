// Package config holds the default settings shared by the CLI and the
// engine packages.
package config

import "time"

// Default configuration values.
const (
	DefaultInputDir    = "input"
	DefaultPattern     = "*.csv"
	DefaultOutputFile  = "output/combined_contacts.csv"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultSampleSize  = 100
	DefaultPreviewRows = 5
	DefaultLogDir      = "logs"
	DefaultLogLevel    = "info"
	DefaultDebounce    = 500 * time.Millisecond
)

// ConfigFileNames are the config files looked up in the working directory,
// in order.
var ConfigFileNames = []string{"leadsunifier.yaml", "leadsunifier.yml"}

// LogFileName returns the processing log file name for a run started at t.
func LogFileName(t time.Time) string {
	return "processing_" + t.Format("20060102_150405") + ".log"
}
