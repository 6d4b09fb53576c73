package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
)

var (
	searchLimit   int
	searchJSON    bool
	searchTimeout time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search apps, files, and notes",
	Long: `Runs one query through the launcher pipeline and prints the
ranked results once every source has reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results per lane")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 10*time.Second, "how long to wait for all sources")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchController == nil {
		return errors.New("search controller not configured")
	}

	snap, err := searchOnce(searchController, args[0], searchTimeout)
	if err != nil {
		return err
	}

	if searchJSON {
		return outputSearchJSON(cmd, snap)
	}
	return outputSearchTable(cmd, snap)
}

// searchOnce feeds one query into the streaming pipeline and waits for
// the complete snapshot. On timeout the last partial snapshot is
// returned so a wedged source still yields whatever arrived.
func searchOnce(
	controller driving.SearchController, query string, timeout time.Duration,
) (driving.Snapshot, error) {
	snapshots, unsubscribe := controller.Subscribe()
	defer unsubscribe()

	controller.OnQueryChange(query)

	var last driving.Snapshot
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return last, errors.New("search controller closed")
			}
			last = snap
			if snap.Complete {
				return snap, nil
			}
		case <-deadline.C:
			return last, nil
		}
	}
}

// searchOutput is the JSON shape for one search.
type searchOutput struct {
	Horizontal []resultOutput `json:"horizontal"`
	Vertical   []resultOutput `json:"vertical"`
	Complete   bool           `json:"complete"`
}

// resultOutput is one result in JSON output.
type resultOutput struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Source string `json:"source"`
	Score  int    `json:"score"`
}

func capResults(results []domain.RankedResult, limit int) []domain.RankedResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func toOutput(results []domain.RankedResult) []resultOutput {
	out := make([]resultOutput, len(results))
	for i, r := range results {
		out[i] = resultOutput{
			Name:   r.DisplayName,
			Path:   r.Path,
			Source: string(r.Source),
			Score:  r.Score,
		}
	}
	return out
}

func outputSearchJSON(cmd *cobra.Command, snap driving.Snapshot) error {
	data, err := json.MarshalIndent(searchOutput{
		Horizontal: toOutput(capResults(snap.Horizontal, searchLimit)),
		Vertical:   toOutput(capResults(snap.Vertical, searchLimit)),
		Complete:   snap.Complete,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, snap driving.Snapshot) error {
	horizontal := capResults(snap.Horizontal, searchLimit)
	vertical := capResults(snap.Vertical, searchLimit)

	if len(horizontal) == 0 && len(vertical) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if len(horizontal) > 0 {
		cmd.Println("Apps & plugins:")
		for i, r := range horizontal {
			cmd.Printf("  [%d] %s  (%s)\n", i+1, r.DisplayName, r.Path)
		}
		cmd.Println()
	}

	if len(vertical) > 0 {
		cmd.Println("Files & more:")
		for i, r := range vertical {
			cmd.Printf("  [%d] %s  (%s)\n", i+1, r.DisplayName, r.Path)
		}
	}

	if !snap.Complete {
		cmd.Println()
		cmd.Println("(some sources did not finish in time)")
	}
	return nil
}
