package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokgate/internal/cli/connection"
	"github.com/yndnr/tokgate/internal/infra/buildinfo"
)

// HealthResult is the output of "system health" and "system ready".
type HealthResult struct {
	Server  string `json:"server" yaml:"server"`
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// VersionResult is the output of "system version".
type VersionResult struct {
	Client buildinfo.Info `json:"client" yaml:"client"`
	Server string         `json:"server,omitempty" yaml:"server,omitempty"`
}

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Server health and version",
		Subcommands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Check server liveness",
				Action: systemProbe("/health"),
			},
			{
				Name:   "ready",
				Usage:  "Check server readiness",
				Action: systemProbe("/ready"),
			},
			{
				Name:   "version",
				Usage:  "Show client and server versions",
				Action: systemVersion,
			},
		},
	}
}

func systemProbe(path string) cli.ActionFunc {
	return func(c *cli.Context) error {
		api, s, err := client(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(c, s)
		defer cancel()

		result := HealthResult{Server: api.BaseURL()}
		err = api.Get(ctx, path, &result)
		var apiErr *connection.APIError
		if err != nil && !(errors.As(err, &apiErr) && result.Status != "") {
			return err
		}
		if rerr := render(c, s, &result); rerr != nil {
			return rerr
		}
		return err
	}
}

func systemVersion(c *cli.Context) error {
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	result := VersionResult{Client: buildinfo.Get()}
	var health HealthResult
	if err := api.Get(ctx, "/health", &health); err == nil {
		result.Server = health.Version
	} else {
		result.Server = "unreachable"
	}
	return render(c, s, &result)
}
