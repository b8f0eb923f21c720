package command

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"
)

// ErrTokenInvalid is returned by "token verify" for a rejected token so
// the process exits non-zero.
var ErrTokenInvalid = errors.New("token is invalid")

// TokenResult is the output of "token issue".
type TokenResult struct {
	Token     string    `json:"token" yaml:"token"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// VerifyResult is the output of "token verify".
type VerifyResult struct {
	Valid      bool       `json:"valid" yaml:"valid"`
	Identifier string     `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// TokenCommand returns the token subcommand group.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:    "token",
		Aliases: []string{"tok"},
		Usage:   "Issue and verify tokens",
		Subcommands: []*cli.Command{
			{
				Name:      "issue",
				Usage:     "Issue a token for an identifier",
				ArgsUsage: "IDENTIFIER",
				Action:    tokenIssue,
			},
			{
				Name:      "verify",
				Usage:     "Verify a token",
				ArgsUsage: "TOKEN",
				Action:    tokenVerify,
			},
		},
	}
}

func tokenIssue(c *cli.Context) error {
	identifier, err := requireArg(c, "IDENTIFIER")
	if err != nil {
		return err
	}
	api, s, err := client(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, s)
	defer cancel()

	var result TokenResult
	if err := api.Post(ctx, "/v1/tokens", map[string]string{"identifier": identifier}, &result); err != nil {
		return err
	}
	return render(c, s, &result)
}

func tokenVerify(c *cli.Context) error {
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

	var result VerifyResult
	if err := api.Post(ctx, "/v1/tokens/verify", map[string]string{"token": token}, &result); err != nil {
		return err
	}
	if err := render(c, s, &result); err != nil {
		return err
	}
	if !result.Valid {
		return ErrTokenInvalid
	}
	return nil
}
