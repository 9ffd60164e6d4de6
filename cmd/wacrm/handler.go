package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/japb1998/wacrm/internal/apiclient"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/ui"
	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}).WithAttrs([]slog.Attr{slog.String("name", "wacrm")}))

type Handler struct {
	configPath string
}

func newHandler(configPath string) *Handler {
	return &Handler{configPath: configPath}
}

func (h *Handler) config() (Config, error) {
	store, err := newConfigStore(h.configPath)
	if err != nil {
		return Config{}, err
	}
	return store.Get()
}

func (h *Handler) client() (*apiclient.Client, error) {
	cfg, err := h.config()
	if err != nil {
		return nil, err
	}
	if cfg.ApiUrl == "" {
		return nil, ErrNotConfigured
	}
	return apiclient.New(cfg.ApiUrl, cfg.Token), nil
}

func (h *Handler) ShowConfig(cmd *cobra.Command, args []string) error {
	cfg, err := h.config()
	if err != nil {
		return err
	}
	token := ""
	if cfg.Token != "" {
		token = "********"
	}
	fmt.Print(ui.KeyValues(map[string]string{
		"apiUrl": cfg.ApiUrl,
		"wsUrl":  cfg.WsUrl,
		"token":  token,
		"file":   h.configPath,
	}))
	return nil
}

func (h *Handler) SetConfig(cmd *cobra.Command, args []string) error {
	apiURL, _ := cmd.Flags().GetString("api-url")
	wsURL, _ := cmd.Flags().GetString("ws-url")
	token, _ := cmd.Flags().GetString("token")

	store, err := newConfigStore(h.configPath)
	if err != nil {
		return err
	}
	if err := store.Set(Config{ApiUrl: apiURL, WsUrl: wsURL, Token: token}); err != nil {
		return err
	}
	fmt.Println(ui.GreenText("✔ Saved " + h.configPath))
	return nil
}

func (h *Handler) ListTemplates(cmd *cobra.Command, args []string) error {
	c, err := h.client()
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	ui.StartSpinner(&ui.SpinnerCfg{Message: "Fetching templates"})
	res, err := c.ListTemplates(cmd.Context(), page, limit)
	ui.StopSpinner("")
	if err != nil {
		return err
	}

	for _, t := range res.Data {
		fmt.Println(ui.TemplateLine(t))
	}
	fmt.Printf("page %d, %d of %d templates\n", res.Page, len(res.Data), res.Total)
	return nil
}

func bodyText(t dto.TemplateDto) string {
	for _, c := range t.Components {
		if c.Type == "BODY" {
			return c.Text
		}
	}
	return ""
}

func (h *Handler) ShowTemplate(cmd *cobra.Command, args []string) error {
	c, err := h.client()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	t, vars, err := loadTemplate(ctx, c, args[0])
	if err != nil {
		return err
	}

	fmt.Print(ui.KeyValues(map[string]string{
		"name":       t.Name,
		"language":   t.Language,
		"status":     t.Status,
		"category":   t.Category,
		"contentSid": t.ContentSid,
	}))
	fmt.Printf("\n%s\n\n", bodyText(t))
	fmt.Print(ui.MappingTable(mapping.NewEditor(t.Id, vars, t.VariableMapping, c).Rows()))

	if contactId, _ := cmd.Flags().GetString("contact"); contactId != "" {
		p, err := c.Prefill(ctx, t.Id, contactId)
		if err != nil {
			return err
		}
		fmt.Println()
		indices := make([]string, 0, len(p.Variables))
		for idx := range p.Variables {
			indices = append(indices, idx)
		}
		for _, idx := range mapping.SortIndices(indices) {
			fmt.Printf("  {{%s}} = %s\n", idx, p.Variables[idx])
		}
	}
	return nil
}

func loadTemplate(ctx context.Context, c *apiclient.Client, id string) (dto.TemplateDto, []string, error) {
	ui.StartSpinner(&ui.SpinnerCfg{Message: "Loading template"})
	defer ui.StopSpinner("")

	t, err := c.GetTemplate(ctx, id)
	if err != nil {
		return dto.TemplateDto{}, nil, err
	}
	vars, err := c.Variables(ctx, id)
	if err != nil {
		return dto.TemplateDto{}, nil, err
	}
	return t, vars, nil
}

func (h *Handler) MapTemplate(cmd *cobra.Command, args []string) error {
	c, err := h.client()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	t, vars, err := loadTemplate(ctx, c, args[0])
	if err != nil {
		return err
	}

	catalog, err := c.FieldCatalog(ctx)
	if err != nil {
		// the editor still opens, variables can only be unset.
		logger.Warn("failed to load contact fields", slog.String("error", err.Error()))
		catalog = dto.FieldCatalog{}
	}

	ed := mapping.NewEditor(t.Id, vars, t.VariableMapping, c)

	fmt.Printf("%s\n", ui.Bold(t.Name))
	fmt.Print(ui.MappingTable(ed.Rows()))

	s := &mapSession{
		editor:   ed,
		options:  ui.FieldOptions(catalog),
		prompter: ui.Prompter{},
		out:      os.Stdout,
		spin:     true,
	}
	return s.run(ctx)
}

func (h *Handler) Watch(cmd *cobra.Command, args []string) error {
	cfg, err := h.config()
	if err != nil {
		return err
	}
	if cfg.WsUrl == "" {
		return errNoWsURL
	}
	view, _ := cmd.Flags().GetString("view")
	contact, _ := cmd.Flags().GetString("contact")

	w := &watcher{
		wsURL:         cfg.WsUrl,
		token:         cfg.Token,
		view:          view,
		activeContact: contact,
		out:           os.Stdout,
	}
	return w.run(cmd.Context())
}
