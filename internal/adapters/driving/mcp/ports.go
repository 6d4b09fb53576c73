package mcp

import (
	"errors"

	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
)

// Ports holds the driving ports the MCP server exposes.
type Ports struct {
	Search driving.SearchController
}

// Validate checks that required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("ports is nil")
	}
	if p.Search == nil {
		return errors.New("search controller is required")
	}
	return nil
}
