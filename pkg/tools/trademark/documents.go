package trademark

import (
	"context"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// DocumentsName is the MCP name of the document bundle link.
const DocumentsName = "documents"

// DocumentsTool builds the PDF document bundle URL. It makes no request.
type DocumentsTool struct {
	*tools.BaseTool
	client *tsdr.Client
}

// NewDocumentsTool creates the document bundle link tool.
func NewDocumentsTool(client *tsdr.Client) *DocumentsTool {
	return &DocumentsTool{
		BaseTool: tools.NewBaseTool(
			DocumentsName,
			"Get the download URL of the PDF bundle of all documents in a trademark case file.",
			validate.NewSchema(serialField()),
		),
		client: client,
	}
}

// Run returns the bundle URL.
func (t *DocumentsTool) Run(_ context.Context, args validate.Args) tools.Result {
	return tools.Success(t.client.DocumentsURL(args.String(argSerialNumber)))
}
