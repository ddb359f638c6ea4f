package trademark

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// ImageName is the MCP name of the mark image lookup.
const ImageName = "image"

// ImageTool returns the URL of the mark drawing when USPTO has one.
type ImageTool struct {
	*tools.BaseTool
	client *tsdr.Client
}

// NewImageTool creates the image lookup.
func NewImageTool(client *tsdr.Client) *ImageTool {
	return &ImageTool{
		BaseTool: tools.NewBaseTool(
			ImageName,
			"Get the URL of the trademark image (mark drawing) for an application serial number.",
			validate.NewSchema(serialField()),
		),
		client: client,
	}
}

// Run probes the image and returns its URL. Any non-2xx status is treated as
// "no image"; failing to reach USPTO at all is reported as an error.
func (t *ImageTool) Run(ctx context.Context, args validate.Args) tools.Result {
	serial := args.String(argSerialNumber)

	exists, status, err := t.client.ImageExists(ctx, serial)
	if err != nil {
		return tools.Failure(err)
	}

	if !exists {
		log.Debug("image probe returned no image", "serial", serial, "status", status)
		return tools.Success(fmt.Sprintf("No image found for serial number %s", serial))
	}

	return tools.Success(t.client.ImageURL(serial))
}
