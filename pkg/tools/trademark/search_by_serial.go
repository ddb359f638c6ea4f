package trademark

import (
	"context"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// SearchBySerialName is the MCP name of the serial number lookup.
const SearchBySerialName = "search_by_serial"

// SearchBySerialTool fetches case status by application serial number.
type SearchBySerialTool struct {
	*tools.BaseTool
	client *tsdr.Client
}

// NewSearchBySerialTool creates the serial number lookup.
func NewSearchBySerialTool(client *tsdr.Client) *SearchBySerialTool {
	return &SearchBySerialTool{
		BaseTool: tools.NewBaseTool(
			SearchBySerialName,
			"Look up a trademark case by its application serial number and return the TSDR case status as JSON or XML.",
			validate.NewSchema(serialField(), formatField()),
		),
		client: client,
	}
}

// Run executes the lookup.
func (t *SearchBySerialTool) Run(ctx context.Context, args validate.Args) tools.Result {
	format := tsdr.Format(args.String(argFormat))

	body, err := t.client.CaseStatus(ctx, tsdr.Serial(args.String(argSerialNumber)), format)
	if err != nil {
		return tools.Failure(err)
	}

	return tools.Success(formatBody(body, format))
}
