package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/yoink/internal/search"
	"github.com/standardbeagle/yoink/internal/searchtypes"
)

// SearchParams are the arguments of the search tool
type SearchParams struct {
	Query       string `json:"query"`
	Root        string `json:"root,omitempty"`
	Occurrences bool   `json:"occurrences,omitempty"`
}

// CandidateResult is one candidate in a search response
type CandidateResult struct {
	Path         string                   `json:"path"`
	IsDir        bool                     `json:"is_dir"`
	PathMatch    bool                     `json:"path_match"`
	ContentMatch bool                     `json:"content_match"`
	Tag          searchtypes.Tag          `json:"tag"`
	Occurrences  []searchtypes.Occurrence `json:"occurrences,omitempty"`
}

// SearchResponse is the payload of a successful search
type SearchResponse struct {
	Candidates []CandidateResult `json:"candidates"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params SearchParams
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return createErrorResponse("search", fmt.Errorf("invalid parameters: %w", err))
		}
	}

	root := s.resolveRoot(params.Root)
	result, err := s.engine.Search(ctx, root, params.Query, params.Occurrences)
	if err != nil {
		s.log.WithError(err).WithField("query", params.Query).Debug("search tool failed")
		return createErrorResponse("search", err)
	}

	return createJSONResponse(newSearchResponse(result))
}

func newSearchResponse(result *search.Result) *SearchResponse {
	resp := &SearchResponse{Candidates: make([]CandidateResult, 0, len(result.Candidates))}
	for _, c := range result.Candidates {
		resp.Candidates = append(resp.Candidates, CandidateResult{
			Path:         c.Path,
			IsDir:        c.IsDir,
			PathMatch:    c.PathMatch,
			ContentMatch: c.ContentMatch,
			Tag:          c.Tag(),
			Occurrences:  result.OccurrencesFor(c.Path),
		})
	}
	return resp
}
