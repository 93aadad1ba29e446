package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperjump/sahayak/internal/cli"
	"github.com/hyperjump/sahayak/internal/models"
)

type locationFlags struct {
	lat, lon float64
	address  string
}

func (l *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&l.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&l.lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&l.address, "address", "", "address or city name")
}

// location returns nil unless both coordinates were given.
func (l *locationFlags) location(cmd *cobra.Command) *models.Location {
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		return nil
	}
	return &models.Location{Latitude: l.lat, Longitude: l.lon, Address: l.address}
}

// buildQuery joins positional args so multi-word queries work without quotes.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		loc       locationFlags
		serverURL string
	)
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask the assistant a question",
		Example: `  sahayak ask find a tutor in Jaipur --lat 26.9124 --lon 75.7873 --address Jaipur
  sahayak ask "cheap plumber" --lat 25.2138 --lon 75.8648 --address Kota --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			query := buildQuery(args)
			where := loc.location(cmd)

			var result *models.SearchResult
			if serverURL != "" {
				result, err = askViaHTTP(cmd.Context(), serverURL, query, where)
				if err != nil {
					return err
				}
			} else {
				cfg, logger, err := opts.setup(false)
				if err != nil {
					return err
				}
				components, err := initializeComponents(cfg, logger)
				if err != nil {
					return err
				}
				defer components.Close()
				res := components.Assistant.Respond(cmd.Context(), query, where, nil)
				result = &res
			}
			return cli.WriteResult(cmd.OutOrStdout(), result, format)
		},
	}
	loc.register(cmd)
	cmd.Flags().StringVar(&serverURL, "server", "", "ask a running server at this URL instead of loading the catalog")
	return cmd
}

func askViaHTTP(ctx context.Context, serverURL, query string, loc *models.Location) (*models.SearchResult, error) {
	endpoint, err := url.JoinPath(serverURL, "/api/v1/respond")
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	body, err := json.Marshal(map[string]interface{}{"query": query, "location": loc})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}
	var result models.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid server response: %w", err)
	}
	return &result, nil
}

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		loc     locationFlags
		workers int
	)
	cmd := &cobra.Command{
		Use:     "batch <file>",
		Short:   "Answer every query in a file, one query per line",
		Example: `  sahayak batch queries.txt --lat 26.9124 --lon 75.7873 --address Jaipur --workers 4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			queries, err := readQueries(args[0])
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

			results, err := components.Assistant.RespondAll(cmd.Context(), queries, loc.location(cmd), workers)
			if err != nil {
				return err
			}
			return cli.WriteResults(cmd.OutOrStdout(), queries, results, format)
		},
	}
	loc.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent queries (0 = one per CPU)")
	return cmd
}

// readQueries returns the non-blank lines of path.
func readQueries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	var queries []string
	for _, line := range strings.Split(string(data), "\n") {
		if q := strings.TrimSpace(line); q != "" {
			queries = append(queries, q)
		}
	}
	return queries, nil
}
