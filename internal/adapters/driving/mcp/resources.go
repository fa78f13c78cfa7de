package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexhelvetia/lexsearch/internal/citation"
)

// uriScheme is the custom URI scheme for lexsearch resources.
const uriScheme = "lexsearch://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the statute translation table.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "statutes",
		Name:        "statutes",
		Description: "Supported federal statutes with abbreviations and names in all four languages",
		MIMEType:    "application/json",
	}, s.handleStatutesResource)
}

// statuteInfo is the JSON shape of one statute table row.
type statuteInfo struct {
	Code          string            `json:"code"`
	Abbreviations map[string]string `json:"abbreviations"`
	Names         map[string]string `json:"names"`
}

// handleStatutesResource returns the statute translation table.
func (s *Server) handleStatutesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var infos []statuteInfo
	for _, code := range citation.StatuteCodes() {
		info := statuteInfo{
			Code:          code,
			Abbreviations: make(map[string]string, len(citation.Languages)),
			Names:         make(map[string]string, len(citation.Languages)),
		}
		for _, lang := range citation.Languages {
			if abbrev, ok := citation.StatuteAbbrev(code, lang); ok {
				info.Abbreviations[string(lang)] = abbrev
			}
			if name, ok := citation.StatuteName(code, lang); ok {
				info.Names[string(lang)] = name
			}
		}
		infos = append(infos, info)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding statutes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
