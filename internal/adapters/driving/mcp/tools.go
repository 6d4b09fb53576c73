package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
)

// searchWait bounds how long one tool call waits for slow sources.
const searchWait = 10 * time.Second

// SearchInput is the input schema for the launcher_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to search apps, files, and notes for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results per lane (default 20)"`
}

// SearchOutput is the output schema for the launcher_search tool.
type SearchOutput struct {
	Launchables []SearchResultOutput `json:"launchables"`
	Files       []SearchResultOutput `json:"files"`
	Complete    bool                 `json:"complete"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Source string `json:"source"`
	Score  int    `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "launcher_search",
		Description: "Search installed applications, recent files, notes, and the file index",
	}, s.handleSearch)
}

// handleSearch handles the launcher_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	snap, err := s.searchOnce(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Launchables: convertResults(snap.Horizontal, limit),
		Files:       convertResults(snap.Vertical, limit),
		Complete:    snap.Complete,
	}, nil
}

// searchOnce feeds one query through the streaming pipeline and waits
// for the complete snapshot, or whatever arrived by the deadline.
func (s *Server) searchOnce(ctx context.Context, query string) (driving.Snapshot, error) {
	snapshots, unsubscribe := s.ports.Search.Subscribe()
	defer unsubscribe()

	s.ports.Search.OnQueryChange(query)

	var last driving.Snapshot
	deadline := time.NewTimer(searchWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
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

// convertResults maps ranked results to the wire shape.
func convertResults(results []domain.RankedResult, limit int) []SearchResultOutput {
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]SearchResultOutput, len(results))
	for i, r := range results {
		out[i] = SearchResultOutput{
			Name:   r.DisplayName,
			Path:   r.Path,
			Source: string(r.Source),
			Score:  r.Score,
		}
	}
	return out
}
