package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"translate-tool/src/config"
	"translate-tool/src/runtimeinit"
	"translate-tool/src/singleinstance"
	"translate-tool/src/translator"
)

const (
	maxInputSizeMB = 1
	maxInputSize   = maxInputSizeMB * 1024 * 1024
)

var errNoResident = errors.New("no running Translate Tool instance found")

type cliOptions struct {
	configPath string
	verbose    bool

	text       string
	filePath   string
	jsonOutput bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args))
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"translate-cli"}
	}

	cmd := newRootCmd(&cliOptions{})
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "translate-cli",
		Short:         "Translate text with the configured chat-completions endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json (overrides "+config.ConfigPathEnvVar+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")

	root.AddCommand(newTranslateCmd(opts), newTriggerCmd(opts), newConfigPathCmd(opts))
	return root
}

func newTranslateCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate --text, --file, or stdin and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), *opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "", "Text to translate")
	cmd.Flags().StringVar(&opts.filePath, "file", "", "Read text from file (use '-' for stdin)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}

func newTriggerCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Ask the running tray instance to translate the current selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(*opts)
			if err != nil {
				return err
			}
			client := singleinstance.NewClient(rt.Settings.SingleInstancePort)
			return runTrigger(cmd.Context(), client, cmd.OutOrStdout())
		},
	}
}

func newConfigPathCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config-path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(config.LoadOptions{ConfigPathOverride: opts.configPath})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func bootstrap(opts cliOptions) (*runtimeinit.Runtime, error) {
	return runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{ConfigPathOverride: opts.configPath},
		Quiet:       !opts.verbose,
		LogToStderr: true,
	})
}

func runTranslate(ctx context.Context, opts cliOptions, stdin io.Reader, stdout io.Writer) error {
	rt, err := bootstrap(opts)
	if err != nil {
		return err
	}
	log := rt.Logger
	defer func() { _ = log.Sync() }()

	text, source, err := readInput(opts, stdin)
	if err != nil {
		return err
	}
	log.Infow("Input read", "source", source, "chars", len([]rune(text)))

	client := translator.New(*rt.Config, translator.Options{Timeout: rt.Settings.HTTPTimeout, Logger: log})
	start := time.Now()
	out, err := client.Translate(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	return outputResult(stdout, out, source, elapsed, opts.jsonOutput)
}

// readInput picks --text, then --file, then stdin. Empty input is rejected
// before anything is sent.
func readInput(opts cliOptions, stdin io.Reader) (string, string, error) {
	if opts.text != "" {
		return opts.text, "text", nil
	}

	source := opts.filePath
	var data []byte
	var err error
	switch source {
	case "", "-":
		source = "stdin"
		data, err = io.ReadAll(io.LimitReader(stdin, maxInputSize+1))
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(data) > maxInputSize {
		return "", "", fmt.Errorf("input exceeds maximum size of %d MB", maxInputSizeMB)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", "", fmt.Errorf("input is empty")
	}
	return text, source, nil
}

type TranslationResult struct {
	Text      string  `json:"text"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
	Duration  float64 `json:"duration_seconds"`
	CharCount int     `json:"character_count"`
}

func outputResult(w io.Writer, text, source string, elapsed time.Duration, jsonOutput bool) error {
	if !jsonOutput {
		_, err := fmt.Fprint(w, text)
		return err
	}

	result := TranslationResult{
		Text:      text,
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Duration:  elapsed.Seconds(),
		CharCount: len([]rune(text)),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func runTrigger(ctx context.Context, client singleinstance.Client, stdout io.Writer) error {
	delegated, text, err := client.Trigger(ctx)
	if !delegated {
		return errNoResident
	}
	if err != nil {
		return fmt.Errorf("resident reported: %w", err)
	}
	_, err = fmt.Fprint(stdout, text)
	return err
}

// normalizeLegacyArgs maps single-dash long flags (-json) to GNU style (--json).
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range []string{"text", "file", "json", "verbose", "config"} {
			switch {
			case arg == "-"+name:
				normalized[i] = "--" + name
			case strings.HasPrefix(arg, "-"+name+"="):
				normalized[i] = "-" + arg
			}
		}
	}

	return normalized
}
