package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokgate/internal/cli/config"
	"github.com/yndnr/tokgate/internal/cli/output"
)

// ConfigResult is the output of "config show".
type ConfigResult struct {
	Path    string `json:"path" yaml:"path"`
	Server  string `json:"server" yaml:"server"`
	Output  string `json:"output" yaml:"output"`
	Timeout string `json:"timeout" yaml:"timeout"`
}

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Local CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:      "set-server",
				Usage:     "Save the default server address",
				ArgsUsage: "URL",
				Action:    configSetServer,
			},
			{
				Name:      "set-output",
				Usage:     "Save the default output format",
				ArgsUsage: "FORMAT",
				Action:    configSetOutput,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s, err := ResolveSettings(c)
	if err != nil {
		return err
	}
	return render(c, s, &ConfigResult{
		Path:    s.ConfigPath,
		Server:  s.Server,
		Output:  string(s.Output),
		Timeout: s.Timeout.String(),
	})
}

func configSetServer(c *cli.Context) error {
	server, err := requireArg(c, "URL")
	if err != nil {
		return err
	}
	return updateConfig(c, func(cfg *config.CLIConfig) { cfg.Server = server })
}

func configSetOutput(c *cli.Context) error {
	name, err := requireArg(c, "FORMAT")
	if err != nil {
		return err
	}
	f, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	return updateConfig(c, func(cfg *config.CLIConfig) { cfg.Output = string(f) })
}

func updateConfig(c *cli.Context, mutate func(*config.CLIConfig)) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	mutate(cfg)
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "saved %s\n", path)
	return nil
}
