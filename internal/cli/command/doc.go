// Package command defines the tokgate-cli commands on urfave/cli/v2.
//
// Every command resolves its settings the same way: command-line flag,
// then TOKGATE_* environment variable, then ~/.tokgate/cli.yaml, then the
// built-in default. Results go to the app's writer in the selected output
// format.
package command
