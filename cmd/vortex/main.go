package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/internal/config"
	"github.com/mattjoyce/vortex/internal/log"
)

var (
	version   = vortex.Version
	gitCommit = "unknown"
	buildDate = "unknown"
)

const defaultConfigPath = "vortex.yaml"

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "token":
		return runTokenNoun(args)
	case "webhook":
		return runWebhookNoun(args)
	case "invitation":
		return runInvitationNoun(args)
	case "config":
		return runConfigNoun(args)
	case "version", "--version":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output version metadata as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Usage: vortex version [--json]")
		return 1
	}

	info := currentVersionInfo()

	if *jsonOut {
		return printJSON(info)
	}

	fmt.Printf("vortex %s\n", info.Version)
	fmt.Printf("commit: %s\n", info.Commit)
	fmt.Printf("built_at: %s\n", info.BuildTime)
	return 0
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   strings.TrimSpace(version),
		Commit:    "unknown",
		BuildTime: "unknown",
	}
	if info.Version == "" {
		info.Version = "0.0.0-dev"
	}

	commit := strings.TrimSpace(gitCommit)
	if commit == "" || commit == "unknown" {
		commit = readBuildSetting("vcs.revision")
	}
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		info.Commit = commit
	}

	built := strings.TrimSpace(buildDate)
	if built == "" || built == "unknown" {
		built = readBuildSetting("vcs.time")
	}
	if t, err := time.Parse(time.RFC3339Nano, built); err == nil {
		info.BuildTime = t.UTC().Format(time.RFC3339)
	}
	return info
}

func readBuildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return strings.TrimSpace(setting.Value)
		}
	}
	return ""
}

func printUsage() {
	fmt.Print(`vortex - Vortex invitation platform toolkit

Usage:
  vortex <noun> <action> [flags]

Token Commands:
  token mint        Mint a user token from the API key
  token decode      Print a token's header and claims without verifying
  token verify      Verify a token against the API key

Webhook Commands:
  webhook sign      Compute the signature for a payload
  webhook verify    Verify and classify a payload
  webhook serve     Run the local webhook receiver
  webhook events    List deliveries recorded by the receiver

Invitation Commands:
  invitation list      List invitations sent to a target
  invitation get       Show one invitation
  invitation revoke    Revoke an invitation
  invitation reinvite  Resend an invitation
  invitation accept    Accept invitations for a user
  invitation group     List (or delete) invitations for a group
  invitation browse    Browse and revoke invitations interactively

Config Commands:
  config check      Validate the configuration file

General:
  version           Show version information
  help              Show this help message

Configuration is read from --config, $VORTEX_CONFIG or ./vortex.yaml.
Use 'vortex <noun> help' for action-specific flags.
`)
}

func isHelpToken(token string) bool {
	return token == "help" || token == "--help" || token == "-h"
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// resolveConfigPath picks the --config value, then $VORTEX_CONFIG, then the
// default file name.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("VORTEX_CONFIG"); env != "" {
		return env
	}
	return defaultConfigPath
}

// loadConfig loads configuration and initialises logging from it.
func loadConfig(flagValue string) (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath(flagValue))
	if err != nil {
		return nil, err
	}
	log.Setup(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func newClient(cfg *config.Config) *vortex.Client {
	return vortex.New(vortex.Config{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: "vortex-cli/" + currentVersionInfo().Version,
		Logger:    log.WithComponent("client"),
	})
}

func printJSON(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render JSON: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
