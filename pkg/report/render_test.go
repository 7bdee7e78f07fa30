package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultTemplateClean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.RenderFile(&buf, "", &detect.Report{}))

	assert.Equal(t, "no root indicators found\n", buf.String())
}

func TestRenderDefaultTemplateRooted(t *testing.T) {
	var buf bytes.Buffer
	r := &detect.Report{
		Rooted:  true,
		Reasons: []string{"/sbin/su binary detected", "Path SU found"},
	}
	require.NoError(t, report.Render(&buf, report.DefaultTemplate, r))

	assert.Equal(t, "device appears to be rooted (2 reasons):\n  - /sbin/su binary detected\n  - Path SU found\n", buf.String())
}

func TestRenderFileWithSprigFunctions(t *testing.T) {
	tpl := filepath.Join(t.TempDir(), "report.tpl")
	require.NoError(t, os.WriteFile(tpl, []byte(`{{ .ID | upper }}:{{ .Reasons | join "," }}`), 0o644))

	var buf bytes.Buffer
	r := &detect.Report{ID: "abc", Reasons: []string{"a", "b"}}
	require.NoError(t, report.RenderFile(&buf, tpl, r))

	assert.Equal(t, "ABC:a,b", buf.String())
}

func TestRenderInvalidTemplate(t *testing.T) {
	err := report.Render(&bytes.Buffer{}, "{{ .Rooted ", &detect.Report{})
	assert.Error(t, err)
}

func TestRenderFileMissing(t *testing.T) {
	err := report.RenderFile(&bytes.Buffer{}, "/does/not/exist.tpl", &detect.Report{})
	assert.Error(t, err)
}
