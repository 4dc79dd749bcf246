package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/discana/companion/internal/api"
	"github.com/discana/companion/internal/config"
	"github.com/discana/companion/internal/nav"
	"github.com/discana/companion/internal/resolver"
	"github.com/discana/companion/internal/spotify"
)

// RunCheck resolves a single album reference and prints the result. It is the
// non-interactive form of opening the overlay: same lookup chain, same record.
func RunCheck(target string, out io.Writer) error {
	ref := nav.AlbumID(target)
	if ref == "" {
		ref = target
	}
	if ref == "" {
		return fmt.Errorf("album url or id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog := api.NewClient(cfg.CatalogURL, cfg.AdminToken)
	sp := spotify.NewClient()
	res := resolver.New(catalog, sp, sp)

	membership, record := res.Resolve(ref)

	collection := string(membership)
	if collection == "" {
		collection = "(none)"
	}
	fmt.Fprintf(out, "collection: %s\n", collection)

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, record.String(k))
	}
	return nil
}

// CheckCmd returns the `discana check` command.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <album-url-or-id>",
		Short: "Resolve an album and print its catalog state",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return RunCheck(args[0], os.Stdout)
		},
	}
}
