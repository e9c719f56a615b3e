package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/internal/config"
	"github.com/mattjoyce/vortex/internal/tui/browser"
)

func runInvitationNoun(args []string) int {
	if len(args) < 1 {
		printInvitationNounHelp(os.Stderr)
		return 1
	}
	if isHelpToken(args[0]) {
		printInvitationNounHelp(os.Stdout)
		return 0
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "list":
		return runInvitationList(actionArgs)
	case "get":
		return runInvitationByID(actionArgs, "get")
	case "revoke":
		return runInvitationByID(actionArgs, "revoke")
	case "reinvite":
		return runInvitationByID(actionArgs, "reinvite")
	case "accept":
		return runInvitationAccept(actionArgs)
	case "group":
		return runInvitationGroup(actionArgs)
	case "browse":
		return runInvitationBrowse(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown invitation action: %s\n", action)
		return 1
	}
}

func printInvitationNounHelp(w *os.File) {
	fmt.Fprintln(w, "Usage: vortex invitation <action> [flags]")
	fmt.Fprintln(w, "Actions: list, get, revoke, reinvite, accept, group, browse")
}

// apiConfig loads and validates the config for commands that call the API.
func apiConfig(configPath string) (*config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printInvitations(invs []vortex.Invitation, jsonOut bool) int {
	if jsonOut {
		if invs == nil {
			invs = []vortex.Invitation{}
		}
		return printJSON(invs)
	}
	if len(invs) == 0 {
		fmt.Println("No invitations found.")
		return 0
	}
	fmt.Printf("%-38s %-12s %-9s %s\n", "ID", "STATUS", "DELIVERED", "TARGET")
	for _, inv := range invs {
		targets := make([]string, 0, len(inv.Target))
		for _, t := range inv.Target {
			targets = append(targets, t.Value)
		}
		fmt.Printf("%-38s %-12s %-9d %s\n", inv.ID, inv.Status, inv.DeliveryCount, strings.Join(targets, ","))
	}
	return 0
}

func runInvitationList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	targetType := fs.String("target-type", vortex.TargetEmail, "Target type (email or phone)")
	targetValue := fs.String("target-value", "", "Target value (required)")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := apiConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	invs, err := newClient(cfg).GetInvitationsByTarget(context.Background(), *targetType, *targetValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list invitations: %v\n", err)
		return 1
	}
	return printInvitations(invs, *jsonOut)
}

func runInvitationByID(args []string, action string) int {
	fs := flag.NewFlagSet(action, flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: vortex invitation %s <id>\n", action)
		return 1
	}
	id := fs.Arg(0)

	cfg, err := apiConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	client := newClient(cfg)
	ctx := context.Background()

	switch action {
	case "get":
		inv, err := client.GetInvitation(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get invitation: %v\n", err)
			return 1
		}
		return printJSON(inv)
	case "revoke":
		if err := client.RevokeInvitation(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to revoke invitation: %v\n", err)
			return 1
		}
		fmt.Printf("Revoked %s\n", id)
		return 0
	default:
		inv, err := client.Reinvite(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reinvite: %v\n", err)
			return 1
		}
		fmt.Printf("Reinvited %s (deliveries: %d)\n", inv.ID, inv.DeliveryCount)
		return 0
	}
}

func runInvitationAccept(args []string) int {
	var ids stringList
	fs := flag.NewFlagSet("accept", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	fs.Var(&ids, "id", "Invitation id (repeatable)")
	email := fs.String("email", "", "Accepting user's email")
	phone := fs.String("phone", "", "Accepting user's phone")
	name := fs.String("name", "", "Accepting user's name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := apiConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	user := vortex.AcceptUser{Email: *email, Phone: *phone, Name: *name}
	inv, err := newClient(cfg).AcceptInvitations(context.Background(), ids, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to accept invitations: %v\n", err)
		return 1
	}
	return printJSON(inv)
}

func runInvitationGroup(args []string) int {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	groupType := fs.String("type", "", "Group type (required)")
	groupID := fs.String("id", "", "Group id (required)")
	del := fs.Bool("delete", false, "Delete every invitation for the group")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := apiConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	client := newClient(cfg)
	ctx := context.Background()

	if *del {
		if err := client.DeleteInvitationsByGroup(ctx, *groupType, *groupID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete group invitations: %v\n", err)
			return 1
		}
		fmt.Printf("Deleted invitations for %s/%s\n", *groupType, *groupID)
		return 0
	}

	invs, err := client.GetInvitationsByGroup(ctx, *groupType, *groupID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list group invitations: %v\n", err)
		return 1
	}
	return printInvitations(invs, *jsonOut)
}

func runInvitationBrowse(args []string) int {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	targetType := fs.String("target-type", vortex.TargetEmail, "Target type")
	targetValue := fs.String("target-value", "", "Target value")
	groupType := fs.String("group-type", "", "Group type")
	groupID := fs.String("group-id", "", "Group id")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if *targetValue == "" && *groupID == "" {
		fmt.Fprintln(os.Stderr, "Usage: vortex invitation browse (--target-value V [--target-type T] | --group-type T --group-id ID)")
		return 1
	}

	cfg, err := apiConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	client := newClient(cfg)
	ctx := context.Background()

	var (
		invs  []vortex.Invitation
		title string
	)
	if *groupID != "" {
		invs, err = client.GetInvitationsByGroup(ctx, *groupType, *groupID)
		title = fmt.Sprintf("Invitations for %s %s", *groupType, *groupID)
	} else {
		invs, err = client.GetInvitationsByTarget(ctx, *targetType, *targetValue)
		title = fmt.Sprintf("Invitations for %s", *targetValue)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load invitations: %v\n", err)
		return 1
	}

	revoked, err := browser.Run(ctx, client, invs, title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browser error: %v\n", err)
		return 1
	}
	if len(revoked) > 0 {
		fmt.Printf("Revoked %d invitation(s): %s\n", len(revoked), strings.Join(revoked, ", "))
	}
	return 0
}
