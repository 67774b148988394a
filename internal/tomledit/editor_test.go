package tomledit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/pylint-tools/pylint-ruff-sync/pkg/shared/errors"
)

func newTestEditor() *Editor {
	return NewEditor(hclog.NewNullLogger(), DefaultTablePath, nil)
}

func TestRenderArray(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		comment CommentFunc
		want    string
	}{
		{
			name:  "empty array renders inline",
			items: nil,
			want:  `disable = []`,
		},
		{
			name:  "single element without comment renders inline",
			items: []string{"all"},
			want:  `disable = ["all"]`,
		},
		{
			name:  "multiple elements render one per line",
			items: []string{"all", "C0103"},
			want:  "disable = [\n  \"all\",\n  \"C0103\"\n]",
		},
		{
			name:    "comments attach after the element",
			items:   []string{"C0103", "W0613"},
			comment: func(item string) string { return "https://docs.example/" + item },
			want:    "disable = [\n  \"C0103\", # https://docs.example/C0103\n  \"W0613\" # https://docs.example/W0613\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderArray("disable", tt.items, tt.comment))
		})
	}
}

const sampleDoc = `[build-system]
requires = ["setuptools"] # keep me

[tool.pylint.messages_control]
max-line-length = 100
disable = ["all"]
enable = [
  "C0103", # old comment
  "W0613"
]

[tool.ruff]
line-length = 100
`

func TestApplyPreservesUnownedBytes(t *testing.T) {
	e := newTestEditor()

	out, err := e.Apply(sampleDoc, e.Render([]string{"E1101"}, []string{"all", "C0114"}, nil))
	require.NoError(t, err)

	assert.Contains(t, out, "[build-system]\nrequires = [\"setuptools\"] # keep me\n")
	assert.Contains(t, out, "max-line-length = 100\n")
	assert.Contains(t, out, "[tool.ruff]\nline-length = 100\n")
	assert.Contains(t, out, "disable = [\n  \"all\",\n  \"C0114\"\n]")
	assert.Contains(t, out, `enable = ["E1101"]`)
	assert.NotContains(t, out, "old comment")
}

func TestApplyIdempotent(t *testing.T) {
	e := newTestEditor()
	rendered := e.Render([]string{"E1101", "W0212"}, []string{"all"}, nil)

	once, err := e.Apply(sampleDoc, rendered)
	require.NoError(t, err)
	twice, err := e.Apply(once, rendered)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

// A missing disable key is inserted directly before the enable assignment so
// the written section always reads disable first.
func TestApplyInsertsDisableBeforeEnable(t *testing.T) {
	doc := `[tool.pylint.messages_control]
enable = ["C0103"] # managed below
`
	e := newTestEditor()

	out, err := e.Apply(doc, e.Render([]string{"C0103"}, []string{"all", "R0903"}, nil))
	require.NoError(t, err)

	assert.Equal(t, `[tool.pylint.messages_control]
disable = [
  "all",
  "R0903"
]
enable = ["C0103"] # managed below
`, out, "disable inserted before enable, comment after the array untouched")
}

func TestApplyTableWithoutOwnedKeys(t *testing.T) {
	doc := `[tool.pylint.messages_control]
max-line-length = 100

[tool.ruff]
line-length = 100
`
	e := newTestEditor()

	out, err := e.Apply(doc, e.Render(nil, []string{"all"}, nil))
	require.NoError(t, err)

	assert.Contains(t, out, "max-line-length = 100\ndisable = [\"all\"]\nenable = []\n")
	assert.Contains(t, out, "\n[tool.ruff]\nline-length = 100\n")
}

func TestApplyAppendsAbsentTable(t *testing.T) {
	doc := "[tool.ruff]\nline-length = 100\n"
	e := newTestEditor()

	out, err := e.Apply(doc, e.Render([]string{"C0103"}, []string{"all"}, nil))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, doc), "existing content stays byte-identical")
	assert.Contains(t, out, "\n\n"+banner+"\n[tool.pylint.messages_control]\ndisable = [\"all\"]\nenable = [\"C0103\"]\n")
}

func TestApplyQuotedHeaderPart(t *testing.T) {
	doc := "[tool.pylint.\"messages_control\"]\ndisable = [\"all\"]\n"
	e := newTestEditor()

	out, err := e.Apply(doc, e.Render(nil, []string{"all", "C0103"}, nil))
	require.NoError(t, err)
	assert.Contains(t, out, "\"C0103\"")
	assert.NotContains(t, out, banner, "quoted header anchors the existing table")
}

func TestApplyStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "nested array",
			doc:  "[tool.pylint.messages_control]\ndisable = [[\"all\"]]\n",
		},
		{
			name: "inline table element",
			doc:  "[tool.pylint.messages_control]\ndisable = [{code = \"all\"}]\n",
		},
		{
			name: "non-string element",
			doc:  "[tool.pylint.messages_control]\ndisable = [1, 2]\n",
		},
		{
			name: "non-array value",
			doc:  "[tool.pylint.messages_control]\ndisable = \"all\"\n",
		},
		{
			name: "unterminated array",
			doc:  "[tool.pylint.messages_control]\ndisable = [\"all\"",
		},
	}

	e := newTestEditor()
	rendered := e.Render(nil, []string{"all"}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Apply(tt.doc, rendered)
			require.Error(t, err)
			var structErr *sharederrors.StructureError
			assert.ErrorAs(t, err, &structErr)
		})
	}
}

func TestReadArrays(t *testing.T) {
	e := newTestEditor()

	disable, enable, err := e.ReadArrays(sampleDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"all"}, disable)
	assert.Equal(t, []string{"C0103", "W0613"}, enable)

	disable, enable, err = e.ReadArrays("[tool.ruff]\nline-length = 100\n")
	require.NoError(t, err)
	assert.Empty(t, disable)
	assert.Empty(t, enable)
}

func TestUpdateWritesAndDryRuns(t *testing.T) {
	e := newTestEditor()
	rendered := e.Render([]string{"E1101"}, []string{"all"}, nil)

	t.Run("dry run leaves the file untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pyproject.toml")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

		result, err := e.Update(context.Background(), path, rendered, true)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Contains(t, result.Diff, "+")

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleDoc, string(raw))
	})

	t.Run("real run writes the new document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pyproject.toml")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

		result, err := e.Update(context.Background(), path, rendered, false)
		require.NoError(t, err)
		assert.True(t, result.Changed)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `enable = ["E1101"]`)
	})

	t.Run("matching document reports no change", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pyproject.toml")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

		first, err := e.Update(context.Background(), path, rendered, false)
		require.NoError(t, err)
		require.True(t, first.Changed)

		second, err := e.Update(context.Background(), path, rendered, false)
		require.NoError(t, err)
		assert.False(t, second.Changed)
	})
}
