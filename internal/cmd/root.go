// Package cmd holds the kong command tree for the padhost binary.
package cmd

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config string    `help:"Path to a configuration file (json, yaml or toml)" env:"PADHOST_CONFIG"`
	Log    LogConfig `embed:"" prefix:"log."`

	Monitor   Monitor       `cmd:"" help:"Attach to USB game controllers and print decoded reports"`
	Decode    Decode        `cmd:"" help:"Decode a single raw input report given as hex"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration utilities"`
}

// LogConfig groups the logging flags shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"PADHOST_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" env:"PADHOST_LOG_FILE"`
	RawFile string `help:"Write raw report hex dumps to this file" env:"PADHOST_LOG_RAW_FILE"`
}
