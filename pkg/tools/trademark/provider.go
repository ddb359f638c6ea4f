// Package trademark implements the USPTO TSDR lookup tools.
package trademark

import (
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
)

// Provider groups the trademark tools around one TSDR client.
type Provider struct {
	Tools map[string]tools.Tool
}

// NewProvider creates every trademark tool.
func NewProvider(client *tsdr.Client) *Provider {
	return &Provider{
		Tools: map[string]tools.Tool{
			SearchBySerialName:       NewSearchBySerialTool(client),
			SearchByRegistrationName: NewSearchByRegistrationTool(client),
			StatusName:               NewStatusTool(client),
			ImageName:                NewImageTool(client),
			DocumentsName:            NewDocumentsTool(client),
		},
	}
}

// Register adds every tool to the registry.
func (p *Provider) Register(registry *tools.Registry) {
	for _, tool := range p.Tools {
		registry.RegisterTool(tool)
	}
}
