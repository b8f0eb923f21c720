package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokgate/internal/cli/config"
	"github.com/yndnr/tokgate/internal/cli/connection"
	"github.com/yndnr/tokgate/internal/cli/output"
	"github.com/yndnr/tokgate/internal/infra/buildinfo"
)

const metaConfig = "cliConfig"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "tokgate-cli",
		Usage:                "Issue and verify tokgate tokens and manage the server session",
		Version:              buildinfo.Get().Version,
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			TokenCommand(),
			AuthCommand(),
			SystemCommand(),
			ConfigCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.App.Metadata == nil {
				c.App.Metadata = make(map[string]any)
			}
			c.App.Metadata[metaConfig] = cfg
			return nil
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file",
			EnvVars: []string{"TOKGATE_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (e.g. http://localhost:5080)",
			EnvVars: []string{"TOKGATE_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
			EnvVars: []string{"TOKGATE_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "request timeout",
		},
	}
}

// Settings are the effective global settings of one invocation.
type Settings struct {
	ConfigPath string
	Server     string
	Output     output.Format
	Timeout    time.Duration
}

// ResolveSettings merges flags and environment over the CLI config file.
func ResolveSettings(c *cli.Context) (*Settings, error) {
	cfg := cliConfig(c)

	s := &Settings{
		ConfigPath: c.String("config"),
		Server:     cfg.Server,
		Timeout:    cfg.Timeout,
	}
	if v := c.String("server"); v != "" {
		s.Server = v
	}
	format := cfg.Output
	if v := c.String("output"); v != "" {
		format = v
	}
	if c.IsSet("timeout") {
		s.Timeout = c.Duration("timeout")
	}

	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	s.Output = f
	return s, nil
}

func cliConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// client returns an API client and the settings it was built from.
func client(c *cli.Context) (*connection.HTTPClient, *Settings, error) {
	s, err := ResolveSettings(c)
	if err != nil {
		return nil, nil, err
	}
	return connection.NewHTTPClient(s.Server, s.Timeout), s, nil
}

func requestContext(c *cli.Context, s *Settings) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, s.Timeout)
}

func render(c *cli.Context, s *Settings, data any) error {
	return output.NewFormatter(s.Output).Format(c.App.Writer, data)
}

func requireArg(c *cli.Context, name string) (string, error) {
	v := c.Args().First()
	if v == "" {
		return "", fmt.Errorf("missing %s argument (usage: %s %s)", name, c.Command.FullName(), c.Command.ArgsUsage)
	}
	return v, nil
}
