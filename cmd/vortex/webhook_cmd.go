package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattjoyce/vortex/internal/config"
	"github.com/mattjoyce/vortex/internal/eventstore"
	"github.com/mattjoyce/vortex/internal/lock"
	"github.com/mattjoyce/vortex/internal/log"
	"github.com/mattjoyce/vortex/internal/webhookserver"
	"github.com/mattjoyce/vortex/webhook"
)

func runWebhookNoun(args []string) int {
	if len(args) < 1 {
		printWebhookNounHelp(os.Stderr)
		return 1
	}
	if isHelpToken(args[0]) {
		printWebhookNounHelp(os.Stdout)
		return 0
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "sign":
		return runWebhookSign(actionArgs)
	case "verify":
		return runWebhookVerify(actionArgs)
	case "serve":
		if hasHelpFlag(actionArgs) {
			printWebhookServeHelp()
			return 0
		}
		return runWebhookServe(actionArgs)
	case "events":
		return runWebhookEvents(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown webhook action: %s\n", action)
		return 1
	}
}

func printWebhookNounHelp(w *os.File) {
	fmt.Fprintln(w, "Usage: vortex webhook <action> [flags]")
	fmt.Fprintln(w, "Actions: sign, verify, serve, events")
}

func printWebhookServeHelp() {
	fmt.Println("Usage: vortex webhook serve [--config PATH] [--listen ADDR] [--store PATH]")
	fmt.Println("Receive webhook deliveries, verify them and record them in the local event store.")
	fmt.Println("Recorded deliveries are streamed as server-sent events on GET /events.")
}

// readPayload reads a payload file, or stdin when path is "-" or empty.
func readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func secretFrom(flagValue, configPath string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Webhooks.Secret == "" {
		return "", errors.New("no webhook secret: pass --secret, set webhooks.secret in the config or $VORTEX_WEBHOOK_SECRET")
	}
	return cfg.Webhooks.Secret, nil
}

func runWebhookSign(args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	secret := fs.String("secret", "", "Webhook secret (overrides config)")
	file := fs.String("file", "-", "Payload file ('-' for stdin)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	s, err := secretFrom(*secret, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve secret: %v\n", err)
		return 1
	}
	payload, err := readPayload(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read payload: %v\n", err)
		return 1
	}
	fmt.Println(webhook.Sign(payload, s))
	return 0
}

type verifiedEvent struct {
	Kind  webhook.Kind  `json:"kind"`
	Event webhook.Event `json:"event"`
}

func runWebhookVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	secret := fs.String("secret", "", "Webhook secret (overrides config)")
	signature := fs.String("signature", "", "Value of the "+webhook.SignatureHeader+" header")
	file := fs.String("file", "-", "Payload file ('-' for stdin)")
	strict := fs.Bool("strict", false, "Reject payloads with neither name nor type")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if *signature == "" {
		fmt.Fprintln(os.Stderr, "Usage: vortex webhook verify --signature SIG [--secret S] [--file PATH]")
		return 1
	}

	s, err := secretFrom(*secret, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve secret: %v\n", err)
		return 1
	}
	payload, err := readPayload(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read payload: %v\n", err)
		return 1
	}

	var opts []webhook.Option
	if *strict {
		opts = append(opts, webhook.WithStrictClassification())
	}
	v, err := webhook.NewVerifier(s, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid secret: %v\n", err)
		return 1
	}
	ev, err := v.ConstructEvent(payload, *signature)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Payload rejected: %v\n", err)
		return 1
	}
	return printJSON(verifiedEvent{Kind: ev.Kind(), Event: ev})
}

func runWebhookServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	listen := fs.String("listen", "", "Listen address (overrides config)")
	store := fs.String("store", "", "Event store path (overrides config)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Webhooks.Listen = *listen
	}
	if *store != "" {
		cfg.Webhooks.StorePath = *store
	}
	if err := cfg.ValidateWebhooks(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid webhook configuration: %v\n", err)
		return 1
	}

	logger := log.WithComponent("main")
	logger.Info("vortex webhook receiver starting", "version", version, "config", cfg.SourcePath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storeLock, err := lock.Acquire(lock.ForStore(cfg.Webhooks.StorePath))
	if err != nil {
		logger.Error("another receiver is using this event store", "path", cfg.Webhooks.StorePath, "error", err)
		return 1
	}
	defer storeLock.Release()

	es, err := eventstore.Open(ctx, cfg.Webhooks.StorePath)
	if err != nil {
		logger.Error("failed to open event store", "path", cfg.Webhooks.StorePath, "error", err)
		return 1
	}
	defer es.Close()
	logger.Info("event store opened", "path", cfg.Webhooks.StorePath)

	srv, err := webhookserver.New(serverConfig(cfg), es, log.WithComponent("webhook"))
	if err != nil {
		logger.Error("failed to configure webhook server", "error", err)
		return 1
	}

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("webhook server stopped", "error", err)
		return 1
	}
	logger.Info("vortex webhook receiver stopped")
	return 0
}

func serverConfig(cfg *config.Config) webhookserver.Config {
	return webhookserver.Config{
		Listen:      cfg.Webhooks.Listen,
		Path:        cfg.Webhooks.Path,
		Secret:      cfg.Webhooks.Secret,
		MaxBodySize: cfg.Webhooks.MaxBodyBytes(),
		Strict:      cfg.Webhooks.Strict,
		FeedSize:    cfg.Webhooks.FeedSize,
		FeedToken:   cfg.Webhooks.FeedToken,
	}
}

func runWebhookEvents(args []string) int {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	store := fs.String("store", "", "Event store path (overrides config)")
	limit := fs.Int("limit", 20, "Maximum number of events (0 for all)")
	jsonOut := fs.Bool("json", false, "Output events as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	path := cfg.Webhooks.StorePath
	if *store != "" {
		path = *store
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "No event store at %s (run 'vortex webhook serve' first)\n", path)
		return 1
	}

	ctx := context.Background()
	es, err := eventstore.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open event store: %v\n", err)
		return 1
	}
	defer es.Close()

	records, err := es.List(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list events: %v\n", err)
		return 1
	}

	if *jsonOut {
		if records == nil {
			records = []eventstore.Record{}
		}
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No events recorded.")
		return 0
	}
	fmt.Printf("%-25s %-13s %-28s %s\n", "RECEIVED", "KIND", "LABEL", "EVENT ID")
	for _, r := range records {
		fmt.Printf("%-25s %-13s %-28s %s\n",
			r.ReceivedAt.Local().Format("2006-01-02 15:04:05"),
			r.Kind,
			r.Label,
			r.EventID,
		)
	}
	return 0
}
