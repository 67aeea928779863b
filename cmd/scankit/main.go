package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cybertec-postgresql/scankit/internal/cli"
	urfavecli "github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	app := &urfavecli.Command{
		Name:    "scankit",
		Usage:   "Comment- and string-aware source scanning: split SQL scripts, check delimiter balance, apply scripts",
		Version: version,
		Commands: []*urfavecli.Command{
			{
				Name:      "split",
				Usage:     "Split SQL files into statements",
				ArgsUsage: "[path]",
				Action:    splitCommand,
				Flags:     commonFlags(),
			},
			{
				Name:      "check",
				Usage:     "Report unbalanced (), [] and {} outside comments and strings",
				ArgsUsage: "[path]",
				Action:    checkCommand,
				Flags:     commonFlags(),
			},
			{
				Name:      "apply",
				Usage:     "Execute SQL files against PostgreSQL, one transaction per file",
				ArgsUsage: "[path]",
				Action:    applyCommand,
				Flags: append(commonFlags(),
					&urfavecli.StringFlag{
						Name:    "connection",
						Aliases: []string{"c"},
						Usage:   "PostgreSQL connection string (URI or key=value format). Supports standard PG* environment variables.",
						Sources: urfavecli.EnvVars("SCANKIT_CONNECTION"),
					},
					&urfavecli.DurationFlag{
						Name:    "timeout",
						Usage:   "Per-file timeout",
						Sources: urfavecli.EnvVars("SCANKIT_TIMEOUT"),
					},
					&urfavecli.BoolFlag{
						Name:  "dry-run",
						Usage: "Roll back every file instead of committing",
					},
					&urfavecli.BoolFlag{
						Name:  "scratch",
						Usage: "Apply to a throwaway database that is dropped afterwards",
					},
				),
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commonFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config",
			Usage: "Config file path (default: " + cli.ConfigFileName + " if present)",
		},
		&urfavecli.StringSliceFlag{
			Name:    "extensions",
			Aliases: []string{"e"},
			Usage:   "File extensions to process, e.g. .sql",
			Sources: urfavecli.EnvVars("SCANKIT_EXTENSIONS"),
		},
		&urfavecli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"j"},
			Usage:   "Maximum files processed concurrently",
			Sources: urfavecli.EnvVars("SCANKIT_PARALLEL"),
		},
		&urfavecli.StringFlag{
			Name:    "format",
			Usage:   "Output format (json or text)",
			Sources: urfavecli.EnvVars("SCANKIT_FORMAT"),
		},
		&urfavecli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (use - for stdout)",
			Sources: urfavecli.EnvVars("SCANKIT_OUTPUT"),
		},
		&urfavecli.IntFlag{
			Name:    "excerpt-lines",
			Usage:   "Source lines shown before a diagnostic",
			Sources: urfavecli.EnvVars("SCANKIT_EXCERPT_LINES"),
		},
		&urfavecli.BoolFlag{
			Name:    "verbose",
			Usage:   "Enable debug output",
			Sources: urfavecli.EnvVars("SCANKIT_VERBOSE"),
		},
	}
}

// loadConfig merges defaults, config file and flags (environment variables
// arrive as flag values) and validates the result
func loadConfig(cmd *urfavecli.Command) *cli.Config {
	config, err := cli.LoadConfig(cmd.String("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	excerptLines := -1
	if cmd.IsSet("excerpt-lines") {
		excerptLines = cmd.Int("excerpt-lines")
	}
	flags := cli.Flags{
		Extensions:   cmd.StringSlice("extensions"),
		Parallel:     cmd.Int("parallel"),
		Format:       cmd.String("format"),
		Output:       cmd.String("output"),
		ExcerptLines: excerptLines,
		Verbose:      cmd.Bool("verbose"),
	}
	if cmd.Name == "apply" {
		flags.Connection = cmd.String("connection")
		flags.Timeout = cmd.Duration("timeout")
	}
	cli.ApplyFlagsToConfig(config, flags)

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	return config
}

// searchPath returns the first argument, defaulting to the current directory
func searchPath(cmd *urfavecli.Command) string {
	if path := cmd.Args().First(); path != "" {
		return path
	}
	return "."
}

func exit(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// splitCommand handles the 'scankit split' command
func splitCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config := loadConfig(cmd)
	return exit(cli.Split(ctx, config, searchPath(cmd)))
}

// checkCommand handles the 'scankit check' command
func checkCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config := loadConfig(cmd)
	return exit(cli.Check(ctx, config, searchPath(cmd)))
}

// applyCommand handles the 'scankit apply' command
func applyCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config := loadConfig(cmd)
	return exit(cli.Apply(ctx, config, searchPath(cmd), cli.ApplyOptions{
		DryRun:  cmd.Bool("dry-run"),
		Scratch: cmd.Bool("scratch"),
	}))
}
