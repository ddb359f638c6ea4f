package trademark

import (
	"context"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// SearchByRegistrationName is the MCP name of the registration number lookup.
const SearchByRegistrationName = "search_by_registration"

// SearchByRegistrationTool fetches case status by registration number.
type SearchByRegistrationTool struct {
	*tools.BaseTool
	client *tsdr.Client
}

// NewSearchByRegistrationTool creates the registration number lookup.
func NewSearchByRegistrationTool(client *tsdr.Client) *SearchByRegistrationTool {
	return &SearchByRegistrationTool{
		BaseTool: tools.NewBaseTool(
			SearchByRegistrationName,
			"Look up a registered trademark by its registration number and return the TSDR case status as JSON or XML.",
			validate.NewSchema(registrationField(), formatField()),
		),
		client: client,
	}
}

// Run executes the lookup.
func (t *SearchByRegistrationTool) Run(ctx context.Context, args validate.Args) tools.Result {
	format := tsdr.Format(args.String(argFormat))

	body, err := t.client.CaseStatus(ctx, tsdr.Registration(args.String(argRegistrationNumber)), format)
	if err != nil {
		return tools.Failure(err)
	}

	return tools.Success(formatBody(body, format))
}
