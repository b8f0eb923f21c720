package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// RegisterResult is the output of "auth register".
type RegisterResult struct {
	Email     string    `json:"email" yaml:"email"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
	Delivered bool      `json:"delivered" yaml:"delivered"`
}

// SessionResult is the output of "auth login", "auth logout" and
// "auth status".
type SessionResult struct {
	LoggedIn  bool       `json:"logged_in" yaml:"logged_in"`
	Email     string     `json:"email,omitempty" yaml:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// AuthCommand returns the auth subcommand group.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Register, log in and inspect the server session",
		Subcommands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Issue a token for EMAIL and deliver it",
				ArgsUsage: "EMAIL",
				Action:    authRegister,
			},
			{
				Name:      "login",
				Usage:     "Log in with a delivered token",
				ArgsUsage: "TOKEN",
				Action:    authLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: authLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Action: authStatus,
			},
		},
	}
}

func authRegister(c *cli.Context) error {
	email, err := requireArg(c, "EMAIL")
	if err != nil {
		return err
	}
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	var result RegisterResult
	if err := api.Post(ctx, "/v1/auth/register", map[string]string{"email": email}, &result); err != nil {
		if result.Email != "" {
			// Issued but not delivered: show what was issued.
			render(c, s, &result)
		}
		return err
	}
	return render(c, s, &result)
}

func authLogin(c *cli.Context) error {
	token, err := requireArg(c, "TOKEN")
	if err != nil {
		return err
	}
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	var login struct {
		Email     string    `json:"email"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := api.Post(ctx, "/v1/auth/login", map[string]string{"token": token}, &login); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return render(c, s, &SessionResult{
		LoggedIn:  true,
		Email:     login.Email,
		ExpiresAt: &login.ExpiresAt,
	})
}

func authLogout(c *cli.Context) error {
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	var result SessionResult
	if err := api.Post(ctx, "/v1/auth/logout", nil, &result); err != nil {
		return err
	}
	return render(c, s, &result)
}

func authStatus(c *cli.Context) error {
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	var result SessionResult
	if err := api.Get(ctx, "/v1/auth/status", &result); err != nil {
		return err
	}
	return render(c, s, &result)
}
