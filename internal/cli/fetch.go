package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lrocha/leetboard/internal/leetcode"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/report"
	"github.com/lrocha/leetboard/internal/roster"
	"github.com/lrocha/leetboard/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FetchFlags holds all flags for the fetch command
type FetchFlags struct {
	File        string
	Usernames   string
	Max         int
	Concurrency int
	Timeout     time.Duration
	BaseURL     string
	NoColor     bool
}

// FetchOutput holds the output for JSON mode
type FetchOutput struct {
	Status string          `json:"status"`
	Data   FetchOutputData `json:"data"`
}

// FetchOutputData carries the fetched records in rank order.
type FetchOutputData struct {
	Total   int                    `json:"total"`
	Failed  int                    `json:"failed"`
	Records []models.ProfileRecord `json:"records"`
}

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	flags := &FetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch LeetCode stats for a batch of usernames",
		Long: `Fetch profile stats for every username in the batch and print them as a
table sorted by rank.

Each username is looked up independently. A user that does not exist, or
an upstream error on a single lookup, shows up as an error row in the
table without aborting the rest of the batch.`,
		Example: `  # From a file, one username per line
  leetboard fetch --file users.txt

  # Inline comma-separated list
  leetboard fetch --usernames alice,bob,carol

  # Five lookups in flight at once, 5s per request
  leetboard fetch --file users.txt --concurrency 5 --timeout 5s

  # JSON output for scripting
  leetboard fetch --usernames alice --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFetchConfig(cmd, flags)
			return runFetch(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Path to a file with one username per line")
	cmd.Flags().StringVarP(&flags.Usernames, "usernames", "u", "", "Comma-separated list of usernames")
	cmd.Flags().IntVar(&flags.Max, "max", roster.DefaultMaxBatch, "Maximum number of usernames per batch")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 1, "Number of lookups to run at once")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", leetcode.DefaultTimeout, "Per-request timeout")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	cmd.MarkFlagsMutuallyExclusive("file", "usernames")

	return cmd
}

// applyFetchConfig fills in flags the user did not set from viper, so the
// config file and LEETBOARD_* environment variables act as defaults.
func applyFetchConfig(cmd *cobra.Command, flags *FetchFlags) {
	if v := viper.GetInt("max_usernames"); !cmd.Flags().Changed("max") && v > 0 {
		flags.Max = v
	}
	if v := viper.GetInt("concurrency"); !cmd.Flags().Changed("concurrency") && v > 0 {
		flags.Concurrency = v
	}
	if v := viper.GetDuration("timeout"); !cmd.Flags().Changed("timeout") && v > 0 {
		flags.Timeout = v
	}
	flags.BaseURL = viper.GetString("base_url")
}

// runFetch executes the fetch command
func runFetch(ctx context.Context, stdout io.Writer, flags *FetchFlags) error {
	usernames, err := resolveUsernames(flags)
	if err != nil {
		return err
	}

	var opts []leetcode.Option
	if flags.BaseURL != "" {
		opts = append(opts, leetcode.WithBaseURL(flags.BaseURL))
	}
	if flags.Timeout > 0 {
		opts = append(opts, leetcode.WithTimeout(flags.Timeout))
	}
	client := leetcode.New(opts...)
	svc := services.NewStatsService(client, flags.Concurrency)

	if !IsJSONOutput() {
		fmt.Fprintf(stdout, "Fetching data for %d users...\n", len(usernames))
	}

	records := svc.FetchAll(ctx, usernames)

	if IsJSONOutput() {
		return printFetchJSON(stdout, records)
	}

	return report.NewTextRenderer(flags.NoColor).Render(stdout, records)
}

// resolveUsernames reads the batch from whichever input flag is set.
func resolveUsernames(flags *FetchFlags) ([]string, error) {
	switch {
	case flags.File != "":
		return roster.FromFile(flags.File, flags.Max)
	case flags.Usernames != "":
		return roster.ParseList(flags.Usernames, flags.Max)
	default:
		return nil, fmt.Errorf("either --file or --usernames is required")
	}
}

// printFetchJSON prints the records in JSON format
func printFetchJSON(w io.Writer, records []models.ProfileRecord) error {
	sorted := report.SortByRank(records)

	output := FetchOutput{
		Status: "success",
		Data: FetchOutputData{
			Total:   len(sorted),
			Failed:  countFailed(sorted),
			Records: sorted,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}

	return nil
}

func countFailed(records []models.ProfileRecord) int {
	var n int
	for _, rec := range records {
		if rec.Failed() {
			n++
		}
	}
	return n
}
