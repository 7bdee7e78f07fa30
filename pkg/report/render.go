package report

import (
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/pkg/errors"
)

// DefaultTemplate prints one line per reason, or a single line when
// nothing was found.
const DefaultTemplate = `{{ if .Rooted -}}
device appears to be rooted ({{ len .Reasons }} {{ if eq (len .Reasons) 1 }}reason{{ else }}reasons{{ end }}):
{{ range .Reasons }}  - {{ . }}
{{ end }}
{{- else -}}
no root indicators found
{{ end -}}`

func Render(w io.Writer, tpl string, r *detect.Report) error {
	t, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(tpl)
	if err != nil {
		return errors.Wrap(err, "failed to parse report template")
	}

	if err := t.Execute(w, r); err != nil {
		return errors.Wrap(err, "failed to render report")
	}

	return nil
}

// RenderFile renders the template stored in file. An empty file name
// selects DefaultTemplate.
func RenderFile(w io.Writer, file string, r *detect.Report) error {
	if file == "" {
		return Render(w, DefaultTemplate, r)
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "failed to read report template %s", file)
	}

	return Render(w, string(contents), r)
}
