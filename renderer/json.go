package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/pmevo-compat/mapper"
)

// JSONRenderer renders mapping reports in JSON format.
type JSONRenderer struct {
	arch    string
	profile string
}

type jsonReport struct {
	Arch    string `json:"arch"`
	Profile string `json:"profile"`
	*mapper.Report
}

func NewJSONRenderer(arch, profile string) Renderer {
	return &JSONRenderer{arch: arch, profile: profile}
}

func (r *JSONRenderer) Render(report *mapper.Report, output io.Writer) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Arch: r.arch, Profile: r.profile, Report: report})
}

func (r *JSONRenderer) Format() string {
	return "json"
}
