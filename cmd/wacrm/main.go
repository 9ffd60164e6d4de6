package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/japb1998/wacrm/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "wacrm",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "WhatsApp CRM admin",
	Long:          "Manage WhatsApp templates, map their variables to contact fields and watch incoming messages.",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.RedText(err.Error()))
		stop()
		os.Exit(1)
	}
}

func init() {
	h := newHandler(defaultConfigPath())

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the CLI configuration",
		RunE:  h.ShowConfig,
	}
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store the api url, websocket url or token",
		RunE:  h.SetConfig,
	}
	setCmd.Flags().String("api-url", "", "REST api base url")
	setCmd.Flags().String("ws-url", "", "websocket url (wss://...)")
	setCmd.Flags().String("token", "", "bearer token")
	configCmd.AddCommand(setCmd)

	templatesCmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"t"},
		Short:   "Work with message templates",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE:  h.ListTemplates,
	}
	listCmd.Flags().Int("page", 0, "zero indexed page")
	listCmd.Flags().Int("limit", 10, "templates per page")

	showCmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template and its variable mapping",
		Args:  cobra.ExactArgs(1),
		RunE:  h.ShowTemplate,
	}
	showCmd.Flags().String("contact", "", "render the mapping against this contact")

	mapCmd := &cobra.Command{
		Use:   "map <template-id>",
		Short: "Edit which contact field fills each template variable",
		Args:  cobra.ExactArgs(1),
		RunE:  h.MapTemplate,
	}
	templatesCmd.AddCommand(listCmd, showCmd, mapCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print incoming messages as they arrive",
		RunE:  h.Watch,
	}
	watchCmd.Flags().String("view", "/dashboard", "view to report, /contacts?id=<id> mutes that contact")
	watchCmd.Flags().String("contact", "", "active contact id, overrides the id in --view")

	rootCmd.AddCommand(configCmd, templatesCmd, watchCmd)
}
