package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/upfront/internal"
	"github.com/starford/upfront/internal/apperr"
	"github.com/starford/upfront/internal/models"
	pkgconfig "github.com/starford/upfront/pkg/config"
)

// configEnv names the optional YAML config file.
const configEnv = "UPFRONT_CONFIG_FILE"

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 3 {
		return fmt.Errorf("%w: expected <file> <field> <new_value>, got %d argument(s)", apperr.ErrUsage, cmd.NArg())
	}

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadFromEnv(configEnv, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	args := cmd.Args()
	req := models.EditRequest{
		Path:  args.Get(0),
		Field: args.Get(1),
		Value: args.Get(2),
	}

	return internal.Run(ctx, internal.WithConfig(cfg), internal.WithRequest(req))
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:            "upfront",
		Usage:           "Updates a specified field in the YAML frontmatter of a note",
		Version:         "1.0",
		ArgsUsage:       "<file> <field> <new_value>",
		HideHelpCommand: true,
		Action:          run,
	}
}

func main() {
	cmd := newCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperr.ExitCode(err))
	}
}
