package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/discana/companion/internal/api"
	"github.com/discana/companion/internal/cmd"
	"github.com/discana/companion/internal/config"
	"github.com/discana/companion/internal/logging"
	"github.com/discana/companion/internal/resolver"
	"github.com/discana/companion/internal/spotify"
	"github.com/discana/companion/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "discana",
		Short: "Discana - album catalog companion",
		Long:  "Discana companion: browse album routes, edit catalog records, and move albums between collections.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.CheckCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("not configured. run 'discana login' first.")
		}
		return err
	}

	if err := logging.Setup(cfg.LogFile, cfg.LogLevel); err != nil {
		return err
	}

	catalog := api.NewClient(cfg.CatalogURL, cfg.AdminToken)
	sp := spotify.NewClient()
	res := resolver.New(catalog, sp, sp)
	app := ui.NewApp(catalog, res, "https://open.spotify.com/")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
