package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattjoyce/vortex/token"
)

func runTokenNoun(args []string) int {
	if len(args) < 1 {
		printTokenNounHelp(os.Stderr)
		return 1
	}
	if isHelpToken(args[0]) {
		printTokenNounHelp(os.Stdout)
		return 0
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "mint":
		if hasHelpFlag(actionArgs) {
			printTokenMintHelp()
			return 0
		}
		return runTokenMint(actionArgs)
	case "decode":
		return runTokenDecode(actionArgs)
	case "verify":
		return runTokenVerify(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown token action: %s\n", action)
		return 1
	}
}

func printTokenNounHelp(w *os.File) {
	fmt.Fprintln(w, "Usage: vortex token <action> [flags]")
	fmt.Fprintln(w, "Actions: mint, decode, verify")
}

func printTokenMintHelp() {
	fmt.Println("Usage: vortex token mint --user-id ID (--email EMAIL | --identifier TYPE=VALUE ...) [flags]")
	fmt.Println("Mint a one-hour user token signed with the API key.")
	fmt.Println("")
	fmt.Println("Simple identity:    --email, --name, --avatar, --admin-scope (repeatable), --allowed-domain (repeatable)")
	fmt.Println("Structured identity: --identifier email=a@b.c (repeatable), --group TYPE:ID[:NAME] (repeatable), --role")
	fmt.Println("Extra claims:       --extra KEY=VALUE (repeatable; VALUE is parsed as JSON when possible)")
}

// apiKeyFrom returns the --api-key value or the configured key.
func apiKeyFrom(flagValue, configPath string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.APIKey == "" {
		return "", errors.New("no API key: pass --api-key, set api_key in the config or $VORTEX_API_KEY")
	}
	return cfg.APIKey, nil
}

func runTokenMint(args []string) int {
	var configPath, apiKey string
	var userID, email, name, avatar, role string
	var adminScopes, domains, identifiers, groups, extras stringList

	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to configuration file")
	fs.StringVar(&apiKey, "api-key", "", "API key (overrides config)")
	fs.StringVar(&userID, "user-id", "", "User id (required)")
	fs.StringVar(&email, "email", "", "User email")
	fs.StringVar(&name, "name", "", "User display name")
	fs.StringVar(&avatar, "avatar", "", "User avatar URL")
	fs.StringVar(&role, "role", "", "Role (structured identity)")
	fs.Var(&adminScopes, "admin-scope", "Admin scope (repeatable)")
	fs.Var(&domains, "allowed-domain", "Allowed email domain (repeatable)")
	fs.Var(&identifiers, "identifier", "Identifier TYPE=VALUE (repeatable)")
	fs.Var(&groups, "group", "Group TYPE:ID[:NAME] (repeatable)")
	fs.Var(&extras, "extra", "Extra claim KEY=VALUE (repeatable)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	id, err := buildIdentity(userID, email, name, avatar, role, adminScopes, domains, identifiers, groups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid identity: %v\n", err)
		return 1
	}
	ext, err := parseExtras(extras)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --extra: %v\n", err)
		return 1
	}

	key, err := apiKeyFrom(apiKey, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve API key: %v\n", err)
		return 1
	}

	tok, err := token.Mint(key, id, ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
		return 1
	}
	fmt.Println(tok)
	return 0
}

func buildIdentity(userID, email, name, avatar, role string, adminScopes, domains, identifiers, groups []string) (token.Identity, error) {
	if len(identifiers) == 0 && len(groups) == 0 && role == "" {
		return token.User{
			ID:                  userID,
			Email:               email,
			Name:                name,
			AvatarURL:           avatar,
			AdminScopes:         adminScopes,
			AllowedEmailDomains: domains,
		}, nil
	}

	u := token.StructuredUser{ID: userID, Role: role}
	if email != "" {
		u.Identifiers = append(u.Identifiers, token.Identifier{Type: token.IdentifierEmail, Value: email})
	}
	for _, raw := range identifiers {
		typ, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("identifier %q: want TYPE=VALUE", raw)
		}
		u.Identifiers = append(u.Identifiers, token.Identifier{Type: typ, Value: value})
	}
	for _, raw := range groups {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("group %q: want TYPE:ID[:NAME]", raw)
		}
		g := token.Group{Type: parts[0], ID: parts[1]}
		if len(parts) == 3 {
			g.Name = parts[2]
		}
		u.Groups = append(u.Groups, g)
	}
	return u, nil
}

// parseExtras turns KEY=VALUE pairs into claims. VALUE is decoded as JSON
// when it parses, so numbers, booleans and objects keep their type.
func parseExtras(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%q: want KEY=VALUE", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			out[k] = decoded
		} else {
			out[k] = v
		}
	}
	return out, nil
}

func runTokenDecode(args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: vortex token decode <token>")
		return 1
	}

	decoded, err := token.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode token: %v\n", err)
		return 1
	}
	return printJSON(decoded)
}

func runTokenVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	apiKey := fs.String("api-key", "", "API key (overrides config)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: vortex token verify [--api-key KEY] <token>")
		return 1
	}

	key, err := apiKeyFrom(*apiKey, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve API key: %v\n", err)
		return 1
	}
	claims, err := token.Verify(key, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Token rejected: %v\n", err)
		return 1
	}
	return printJSON(claims)
}
