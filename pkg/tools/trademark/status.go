package trademark

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// StatusName is the MCP name of the status page lookup.
const StatusName = "status"

// StatusTool summarizes the TSDR HTML status page of an application.
type StatusTool struct {
	*tools.BaseTool
	client *tsdr.Client
}

// NewStatusTool creates the status page lookup.
func NewStatusTool(client *tsdr.Client) *StatusTool {
	return &StatusTool{
		BaseTool: tools.NewBaseTool(
			StatusName,
			"Get the human-readable TSDR status page title for a trademark application and a link to the full status content.",
			validate.NewSchema(serialField()),
		),
		client: client,
	}
}

// Run fetches the status page and extracts its title.
func (t *StatusTool) Run(ctx context.Context, args validate.Args) tools.Result {
	serial := args.String(argSerialNumber)

	body, err := t.client.Content(ctx, serial)
	if err != nil {
		return tools.Failure(err)
	}

	title := pageTitle(body)
	if title == "" {
		title = "(no title found in status page)"
	}

	return tools.Success(fmt.Sprintf(
		"Trademark status for serial number %s\n\nTitle: %s\n\nFull status: %s",
		serial, title, t.client.ContentURL(serial),
	))
}

// pageTitle returns the whitespace-collapsed text of the first <title>.
func pageTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) != "title" {
				continue
			}
			if tokenizer.Next() != html.TextToken {
				return ""
			}
			return strings.Join(strings.Fields(string(tokenizer.Text())), " ")
		}
	}
}
