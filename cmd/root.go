package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/collegecounselor/counselor/api"
	"github.com/collegecounselor/counselor/config"
	"github.com/collegecounselor/counselor/mockdata"
	"github.com/collegecounselor/counselor/notify"
	"github.com/collegecounselor/counselor/proxy"
	"github.com/collegecounselor/counselor/resilience"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	dispatcher *notify.Dispatcher
	client     *resilience.Client
	relay      *proxy.Client

	// Command flags
	filterExpr string
	entryText  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "counselor",
	Short: "College Counselor client and relay",
	Long: `counselor talks to the College Counselor backend through a resilience
layer: failed requests surface as notifications and resolve to safe fallback
data instead of errors, so a backend outage degrades output rather than
breaking it.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp is the single composition point: config, logger, dispatcher
// and clients are wired here once, and every command receives the same
// instances.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Notification dispatcher with a console sink
	dispatcher = notify.NewDispatcher(logger, notify.WithDefaultDuration(cfg.Notifications.DefaultDuration))
	dispatcher.EnsureContainer()
	startConsoleSink(dispatcher)

	// API client behind the resilient transport
	handler := resilience.NewHandler(logger, resilience.WithNotifier(dispatcher))
	httpClient := &http.Client{
		Transport: resilience.NewTransport(nil, logger, dispatcher),
		Timeout:   cfg.API.Timeout,
	}
	apiClient, err := api.NewClient(cfg.API.BaseURL, logger, api.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	client = resilience.NewClient(apiClient, handler, resilience.WithFallbacks(mockdata.Table()))

	// Relay client for the mock fallback proxy path
	relay, err = proxy.NewClient(cfg.Proxy.RelayURL, logger, proxy.WithTimeout(cfg.Proxy.Timeout))
	if err != nil {
		return fmt.Errorf("failed to create relay client: %w", err)
	}

	return nil
}

// startConsoleSink mirrors notifications onto the log so CLI users see the
// same toasts a page would.
func startConsoleSink(d *notify.Dispatcher) {
	events := d.Subscribe()
	go func() {
		for ev := range events {
			if ev.Type != notify.EventShown {
				continue
			}
			entry := logger.Info()
			switch ev.Notification.Severity {
			case notify.SeverityWarning:
				entry = logger.Warn()
			case notify.SeverityDanger:
				entry = logger.Error()
			}
			entry.Str("severity", string(ev.Notification.Severity)).Msg(ev.Notification.Message)
		}
	}()
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
