package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openclaw/aiqr/api"
	"github.com/openclaw/aiqr/background"
	"github.com/openclaw/aiqr/config"
	"github.com/openclaw/aiqr/notify"
	"github.com/openclaw/aiqr/render"
	"github.com/openclaw/aiqr/store"
)

var version = "v0.1.0"

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
	headColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noColor bool
	root := &cobra.Command{
		Use:   "aiqr",
		Short: "Styled QR code generator with AI background links",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// --- start command -------------------------------------------------------
	var configPath string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the web UI and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(configPath)
		},
	}
	startCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(startCmd)

	// --- generate command ----------------------------------------------------
	var gen generateOpts
	var genConfigPath string
	generateCmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Render a QR code to a PNG file or data URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(genConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			gen.text = args[0]
			return runGenerate(cmd.OutOrStdout(), newComposer(cfg), gen)
		},
	}
	generateCmd.Flags().StringVarP(&genConfigPath, "config", "c", "config.yaml", "Path to config file")
	generateCmd.Flags().StringVarP(&gen.style, "style", "s", string(render.StyleDefault), "Style: default, anime, watercolor, digital, fantasy, minimalist, neon")
	generateCmd.Flags().StringVarP(&gen.prompt, "prompt", "p", "", "AI background description")
	generateCmd.Flags().StringVar(&gen.provider, "provider", background.ProviderFree, "AI engine: free or openai")
	generateCmd.Flags().StringVarP(&gen.out, "out", "o", "qrcode.png", "Output PNG file")
	generateCmd.Flags().BoolVar(&gen.dataURI, "data-uri", false, "Print the data URI instead of writing a file")
	root.AddCommand(generateCmd)

	// --- styles command ------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "styles",
		Short: "List the available styles",
		Run: func(cmd *cobra.Command, args []string) {
			printStyles(cmd.OutOrStdout())
		},
	})

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:7860", "Server HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aiqr %s\n", version)
		},
	})

	return root
}

// newComposer builds the background composer from the ai: config block.
func newComposer(cfg *config.Config) *background.Composer {
	return background.NewComposer(background.Settings{
		BaseURL: cfg.AI.BaseURL,
		Width:   cfg.AI.Width,
		Height:  cfg.AI.Height,
	})
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runStart is the main service entrypoint that wires all components together.
func runStart(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup logger
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(log)

	log.Info("starting aiqr", "version", version, "port", cfg.Port, "data_dir", cfg.DataDir)

	// 3. Open history store
	var history *store.HistoryStore
	if cfg.History.Enabled {
		if err := cfg.EnsureDataDir(); err != nil {
			return fmt.Errorf("ensure data dir: %w", err)
		}
		history, err = store.NewHistoryStore(cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer history.Close()
	}

	// 4. Webhook and background composer
	webhook := notify.NewWebhookSender(cfg.WebhookURL, notify.Filters{
		AIOnly:       cfg.WebhookFilters.AIOnly,
		SkipRejected: cfg.WebhookFilters.SkipRejected,
	}, log)
	composer := newComposer(cfg)

	// 5. Start HTTP server
	apiServer := &api.Server{
		Composer: composer,
		History:  history,
		Webhook:  webhook,
		Limiter:  api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Log:      log,
		Version:  version,
		Started:  time.Now(),
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(apiServer),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr, "ui_url", fmt.Sprintf("http://localhost:%d/", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("waiting for webhook deliveries")
	apiServer.Wait()

	log.Info("goodbye")
	return nil
}

type generateOpts struct {
	text     string
	style    string
	prompt   string
	provider string
	out      string
	dataURI  bool
}

// runGenerate renders one QR code. The AI flow is used whenever a prompt is
// given so the message matches what the web UI would show.
func runGenerate(w io.Writer, composer *background.Composer, o generateOpts) error {
	style := render.Style(o.style)
	if !style.Known() {
		warnColor.Fprintf(w, "unknown style %q, using default colors\n", o.style)
	}

	var res render.Result
	var err error
	if o.prompt != "" {
		res, err = composer.RenderWithBackground(o.text, o.prompt, style, o.provider)
	} else {
		res, err = render.Render(o.text, style)
	}
	if err != nil {
		return err
	}
	if res.Image == nil {
		return fmt.Errorf("%s", res.Message)
	}

	if o.dataURI {
		fmt.Fprintln(w, res.Image.DataURI())
	} else {
		if err := os.WriteFile(o.out, res.Image.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.out, err)
		}
		dimColor.Fprintf(w, "wrote %s (%d bytes)\n", o.out, len(res.Image.PNG))
	}
	okColor.Fprintln(w, res.Message)
	return nil
}

func printStyles(w io.Writer) {
	headColor.Fprintf(w, "%-12s %-9s %s\n", "STYLE", "FG", "BG")
	for _, s := range render.Styles() {
		p := s.Palette()
		fmt.Fprintf(w, "%-12s %-9s %s\n", s, p.FgHex(), p.BgHex())
	}
}

// runStatus queries the server HTTP status endpoint.
func runStatus(w io.Writer, addr string) error {
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach server at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	fmt.Fprintln(w, string(body))
	return nil
}
