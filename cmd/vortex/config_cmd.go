package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattjoyce/vortex/token"
)

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		printConfigNounHelp(os.Stderr)
		return 1
	}
	if isHelpToken(args[0]) {
		printConfigNounHelp(os.Stdout)
		return 0
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "check":
		if hasHelpFlag(actionArgs) {
			printConfigCheckHelp()
			return 0
		}
		return runConfigCheck(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config action: %s\n", action)
		return 1
	}
}

func printConfigNounHelp(w *os.File) {
	fmt.Fprintln(w, "Usage: vortex config <action> [flags]")
	fmt.Fprintln(w, "Actions: check")
}

func printConfigCheckHelp() {
	fmt.Println("Usage: vortex config check [--config PATH] [--webhooks] [--json]")
	fmt.Println("Validate the API key and base URL, and optionally the webhook receiver settings.")
	fmt.Println("")
	fmt.Println("Exit codes:")
	fmt.Println("  0  Configuration is valid")
	fmt.Println("  1  One or more checks failed")
}

type configCheckResult struct {
	Source      string   `json:"source"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	KeyID       string   `json:"key_id,omitempty"`
	BaseURL     string   `json:"base_url"`
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
}

func runConfigCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	webhooks := fs.Bool("webhooks", false, "Also validate webhook receiver settings")
	jsonOut := fs.Bool("json", false, "Output result as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	result := configCheckResult{Source: cfg.SourcePath, BaseURL: cfg.BaseURL}
	if result.Source == "" {
		result.Source = "(defaults and environment)"
	}
	if fp, err := cfg.Fingerprint(); err == nil {
		result.Fingerprint = fp
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else if key, err := token.ParseAPIKey(cfg.APIKey); err == nil {
		result.KeyID = key.CanonicalID()
	}
	if *webhooks {
		if err := cfg.ValidateWebhooks(); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	result.Valid = len(result.Errors) == 0

	if *jsonOut {
		if code := printJSON(result); code != 0 {
			return code
		}
	} else {
		fmt.Printf("source: %s\n", result.Source)
		if result.Fingerprint != "" {
			fmt.Printf("blake3: %s\n", result.Fingerprint)
		}
		if result.KeyID != "" {
			fmt.Printf("key id: %s\n", result.KeyID)
		}
		fmt.Printf("base url: %s\n", result.BaseURL)
		for _, e := range result.Errors {
			fmt.Printf("error: %s\n", e)
		}
		if result.Valid {
			fmt.Println("Configuration OK")
		}
	}

	if !result.Valid {
		return 1
	}
	return 0
}
