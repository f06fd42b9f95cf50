package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cityflow/datagen/cmd/datagen/generate"
	"cityflow/datagen/cmd/datagen/options"
	"cityflow/datagen/cmd/datagen/serve"
	"cityflow/datagen/pipeline"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// These variables are populated via the Go linker.
var (
	version string
	commit  string
)

func init() {
	if version == "" {
		version = "unknown"
	}
	if commit == "" {
		commit = "unknown"
	}
}

var datagen_examples = `  datagen
  datagen --config ./datagen.toml
  datagen serve`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainCmd := GetCommand()
	options.SetFlags(mainCmd)
	mainCmd.AddCommand(generate.GetCommand())
	mainCmd.AddCommand(serve.GetCommand())
	mainCmd.AddCommand(printBuildInfo())

	if err := mainCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, Diagnostic(err))
		stop()
		os.Exit(1)
	}
}

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "datagen [command]",
		Long:    "The 'datagen' command generates synthetic smart-city IoT datasets. Without a subcommand it runs 'generate'.",
		Example: datagen_examples,
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate.Run(cmd.Context(), cmd)
		},
	}
}

func printBuildInfo() *cobra.Command {
	return &cobra.Command{
		Use:  "version",
		Long: "displays the datagen version",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datagen %s (git: %s)\n", version, commit)
		},
	}
}

// Diagnostic renders err for the terminal, adding the hint of a missing
// dependency.
func Diagnostic(err error) string {
	var md *pipeline.MissingDependencyError
	if errors.As(err, &md) && md.Hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, md.Hint)
	}
	return fmt.Sprintf("Error: %v", err)
}
