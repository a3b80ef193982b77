package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	readtags "github.com/solidcopy/readtags/internal"
	"github.com/solidcopy/readtags/internal/config"
	"github.com/solidcopy/readtags/internal/handler"
	"github.com/solidcopy/readtags/internal/logging"
	"github.com/solidcopy/readtags/internal/service"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "readtags [file_or_directory ...]",
		Short: "Read audio tags from local files and print them as a tracklist",
		Long: `Read audio tags from local files and print them as a tracklist
suitable for the MusicBrainz track parser.

Without arguments all files in the current directory are read.
Paths selected in Nautilus (NAUTILUS_SCRIPT_SELECTED_FILE_PATHS) are
read after the given arguments.`,
		Version:      readtags.Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	cfg, cfgErr := config.Load(env)

	logger := logging.New(logging.Config{
		Writer: stderr,
		Level:  logging.ParseLevel(cfg.LogLevel),
	})
	if cfgErr != nil {
		logger.Warn(fmt.Sprintf("Using default configuration: %v", cfgErr))
	}

	selected := env.SelectedPaths()

	targets, err := resolveTargets(args, selected)
	if err != nil {
		return err
	}

	printer := service.NewPrinter(handler.Dispatcher{}, stdout, logger)
	for _, target := range targets {
		if err := printer.ExecutePrint(target); err != nil {
			return err
		}
	}

	if len(selected) > 0 && cfg.PromptOnSelection {
		waitForEnter(stdin, stderr)
	}

	return nil
}

// resolveTargets appends the file manager selection to the arguments and
// falls back to the working directory when both are empty.
func resolveTargets(args, selected []string) ([]string, error) {
	targets := make([]string, 0, len(args)+len(selected))
	targets = append(targets, args...)
	targets = append(targets, selected...)

	if len(targets) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		targets = append(targets, wd)
	}

	return targets, nil
}

func waitForEnter(stdin io.Reader, stderr io.Writer) {
	fmt.Fprint(stderr, "Press Enter to continue…")
	_, _ = bufio.NewReader(stdin).ReadString('\n')
}
