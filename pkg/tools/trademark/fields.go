package trademark

import (
	"bytes"
	"encoding/json"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

const (
	argSerialNumber       = "serialNumber"
	argRegistrationNumber = "registrationNumber"
	argFormat             = "format"
)

func serialField() validate.Field {
	return validate.Field{
		Name:        argSerialNumber,
		Description: "Trademark application serial number (8 digits, e.g. 72131351)",
		Required:    true,
		MinLength:   8,
		MaxLength:   8,
	}
}

func registrationField() validate.Field {
	return validate.Field{
		Name:        argRegistrationNumber,
		Description: "Trademark registration number (7 or 8 digits)",
		Required:    true,
		MinLength:   7,
		MaxLength:   8,
	}
}

func formatField() validate.Field {
	return validate.Field{
		Name:        argFormat,
		Description: "Response format: json or xml",
		Enum:        []string{string(tsdr.FormatJSON), string(tsdr.FormatXML)},
		Default:     string(tsdr.FormatJSON),
	}
}

// formatBody indents JSON bodies with two spaces and leaves key order intact.
// XML, and JSON that does not parse, is returned verbatim.
func formatBody(body []byte, format tsdr.Format) string {
	if format != tsdr.FormatJSON {
		return string(body)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		return string(body)
	}

	return out.String()
}
