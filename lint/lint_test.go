package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/speclint/speclint/internal/types"
)

func TestNewWithDefaults(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("describe 'x', :b, :a do\nend\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "sort-metadata", issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestNewWithMissingConfigFile(t *testing.T) {
	engine, err := New(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewWithConfigFile(t *testing.T) {
	configContent := `
name: project lint
dialect:
  example_groups:
    regular:
      - epic
rules:
  sort-metadata:
    severity: error
  create-list:
    severity: off
`
	path := filepath.Join(t.TempDir(), ".speclint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	engine, err := New(path)
	require.NoError(t, err)

	// severity override applies, disabled rule stays silent and the
	// extended dialect vocabulary is recognized
	src := "epic 'x', :b, :a do\n  3.times { create(:user) }\nend\n"
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "sort-metadata", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestNewWithMalformedConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "rules: [\n"},
		{name: "unknown top-level key", content: "rulez:\n  sort-metadata:\n    severity: error\n"},
		{name: "invalid severity", content: "rules:\n  sort-metadata:\n    severity: loud\n"},
		{name: "empty dialect name", content: "dialect:\n  hooks:\n    - \"\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".speclint.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := New(path)
			assert.Error(t, err)
		})
	}
}

func TestProcessSources(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	sources := [][]byte{
		[]byte("describe 'x', :b, :a do\nend\n"),
		[]byte("describe 'y' do\nend\n"),
		[]byte("3.times { create(:user) }\n"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessSourcesParseFailureAborts(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	sources := [][]byte{[]byte("describe 'x' do\n")}
	_, err = ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	assert.Error(t, err)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_spec.rb"),
		[]byte("describe 'a', :b, :a do\nend\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_spec.rb"),
		[]byte("describe 'b' do\n  3.times { create(:user) }\nend\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("not ruby at all"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessPathSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a_spec.rb")
	require.NoError(t, os.WriteFile(path, []byte("describe 'a', :b, :a do\nend\n"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestProcessPathMissing(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, "no/such/path", ProcessFile)
	assert.Error(t, err)
}

func TestIsSpecFile(t *testing.T) {
	assert.True(t, IsSpecFile("spec/models/user_spec.rb"))
	assert.False(t, IsSpecFile("lib/user.rb"))
	assert.False(t, IsSpecFile("user_spec.rb.bak"))
}
