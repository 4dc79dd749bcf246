package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discana/companion/internal/config"
)

// RunInteractiveLogin prompts for the catalog endpoint and admin token and
// persists them. The token gates every catalog mutation, so nothing else
// works until this has run once.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "catalog url (empty for default): ")
	catalogURL, _ := reader.ReadString('\n')
	catalogURL = strings.TrimSpace(catalogURL)

	fmt.Fprint(out, "admin token: ")
	token, _ := reader.ReadString('\n')
	token = strings.TrimSpace(token)

	if token == "" {
		return fmt.Errorf("admin token is required")
	}

	cfg := &config.Config{
		CatalogURL: catalogURL,
		AdminToken: token,
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `discana login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store the catalog endpoint and admin token",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout)
		},
	}
}
