package config

import "flag"

type CliConfig struct {
	ConfigFile string
	EnvFile    string
	Debug      bool
	Version    bool
}

// ParseArgs parses command line arguments, not including the program name.
func ParseArgs(args []string) (*CliConfig, error) {
	cli := &CliConfig{}
	fs := flag.NewFlagSet("timelinebot", flag.ContinueOnError)
	fs.StringVar(&cli.ConfigFile, "config", "", "Path to the config file")
	fs.StringVar(&cli.EnvFile, "env", ".env", "Path to a .env file (ignored if missing)")
	fs.BoolVar(&cli.Debug, "d", false, "Enable debug mode")
	fs.BoolVar(&cli.Debug, "debug", false, "Enable debug mode")
	fs.BoolVar(&cli.Version, "v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}
