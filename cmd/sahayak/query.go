package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperjump/sahayak/internal/assistant"
	"github.com/hyperjump/sahayak/internal/cli"
	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/pkg/utils"
)

// withAssistant loads the catalog, runs fn, and releases everything.
func withAssistant(opts *rootOptions, fn func(a *assistant.Assistant, format cli.OutputFormat) error) error {
	format, err := opts.format()
	if err != nil {
		return err
	}
	cfg, logger, err := opts.setup(false)
	if err != nil {
		return err
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()
	return fn(components.Assistant, format)
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		loc  locationFlags
		tier string
	)
	cmd := &cobra.Command{
		Use:     "search <category>",
		Short:   "List providers of a category near a location",
		Example: `  sahayak search gym --lat 25.2138 --lon 75.8648 --address Kota --tier premium`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			where := loc.location(cmd)
			if where == nil {
				return errors.New("--lat and --lon are required")
			}
			priceTier, err := models.ParsePriceTier(tier)
			if err != nil {
				return err
			}
			return withAssistant(opts, func(a *assistant.Assistant, format cli.OutputFormat) error {
				providers := a.SearchByCategory(cmd.Context(), args[0], *where, priceTier)
				return cli.WriteProviders(cmd.OutOrStdout(), providers, format)
			})
		},
	}
	loc.register(cmd)
	cmd.Flags().StringVar(&tier, "tier", "", "price tier: cheap, mediocre or premium")
	return cmd
}

func newDetailsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "details <id>",
		Short: "Show one provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(a *assistant.Assistant, format cli.OutputFormat) error {
				return cli.WriteProvider(cmd.OutOrStdout(), a.ProviderDetails(cmd.Context(), args[0]), format)
			})
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List service categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				format, err := opts.format()
				if err != nil {
					return err
				}
				return cli.WriteCategories(cmd.OutOrStdout(), assistant.PopularCategories(), format)
			}
			return withAssistant(opts, func(a *assistant.Assistant, format cli.OutputFormat) error {
				known := make(map[string]models.Category)
				for _, c := range a.PopularCategories() {
					known[c.ID] = c
				}
				var out []models.Category
				for _, id := range a.Categories(cmd.Context(), address) {
					c, ok := known[id]
					if !ok {
						c = models.Category{ID: id, DisplayName: utils.Capitalize(id)}
					}
					out = append(out, c)
				}
				if out == nil {
					out = []models.Category{}
				}
				return cli.WriteCategories(cmd.OutOrStdout(), out, format)
			})
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "only categories offered in this locality")
	return cmd
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Full-text search over provider names, descriptions and services",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(a *assistant.Assistant, format cli.OutputFormat) error {
				return cli.WriteProviders(cmd.OutOrStdout(), a.Lookup(cmd.Context(), buildQuery(args), limit), format)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog and index status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(a *assistant.Assistant, format cli.OutputFormat) error {
				st, err := a.Status(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if format == cli.OutputJSON {
					return writeJSON(out, st)
				}
				fmt.Fprintf(out, "Localities: %d\n", len(st.Localities))
				for _, name := range st.Localities {
					fmt.Fprintf(out, "  - %s\n", name)
				}
				fmt.Fprintf(out, "Providers: %d\n", st.Providers)
				fmt.Fprintf(out, "Text index documents: %d\n", st.TextIndexDocs)
				if st.DatabaseBytes > 0 {
					fmt.Fprintf(out, "Database size: %d bytes\n", st.DatabaseBytes)
				}
				return nil
			})
		},
	}
}
