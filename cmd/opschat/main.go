package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"opschat/pkg/chatbot"
	"opschat/pkg/config"
	"opschat/pkg/logging"
	"opschat/pkg/plain"
	"opschat/pkg/ui"
	"opschat/pkg/version"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

type options struct {
	configPath  string
	endpoint    string
	plain       bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet("opschat", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the JSON config file")
	flags.StringVar(&opts.endpoint, "endpoint", "", "chatbot base URL (overrides config and "+config.EnvEndpoint+")")
	flags.BoolVar(&opts.plain, "plain", false, "use line mode even on a terminal")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	if flags.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	return opts, nil
}

// loadConfig layers the config file, environment and flags, in that order.
func loadConfig(opts options, lookup func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return config.Config{}, err
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts.showVersion {
		fmt.Fprint(stdout, version.Details())
		return 0
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg, err := loadConfig(opts, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	logs, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logs.Close()
	logger := logs.Logger

	client, err := chatbot.NewClient(cfg, chatbot.WithUserAgent(version.UserAgent()))
	if err != nil {
		fmt.Fprintf(stderr, "Error creating chatbot client: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	linemode := opts.plain || !term.IsTerminal(int(stdin.Fd()))
	logger.Info("opschat_start",
		"version", version.Summary(),
		"endpoint", client.ChatURL(),
		"plain", linemode)

	if linemode {
		err = runPlain(ctx, cfg, client, stdin, stdout, logger)
	} else {
		err = runTUI(ctx, cfg, client, stdin, stdout, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("opschat_exit", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("opschat_exit")
	return 0
}

func runPlain(ctx context.Context, cfg config.Config, client *chatbot.Client, in io.Reader, out io.Writer, logger *slog.Logger) error {
	session, err := plain.NewSession(cfg, client, out, logger)
	if err != nil {
		return err
	}
	return session.Run(ctx, in)
}

func runTUI(ctx context.Context, cfg config.Config, client *chatbot.Client, in io.Reader, out io.Writer, logger *slog.Logger) error {
	opts := []ui.Option{
		ui.WithContext(ctx),
		ui.WithLogger(logger),
		ui.WithClipboard(out),
	}
	if f, ok := out.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			opts = append(opts, ui.WithSize(width, height))
		}
	}
	m, err := ui.NewModel(cfg, client, version.Summary(), opts...)
	if err != nil {
		return err
	}
	return ui.Run(ctx, m, in, out)
}
