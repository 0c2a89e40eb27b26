package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/speclint/speclint/internal/types"
	"github.com/speclint/speclint/lint"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]tt.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]tt.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte) ([]tt.Issue, error) {
	args := m.Called(source)
	return args.Get(0).([]tt.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func TestRunAutoFix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_spec.rb")
	src := "3.times { create(:user) }\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	issues := []tt.Issue{
		{
			Rule:       "create-list",
			Filename:   path,
			Message:    "prefer create_list(:user, 3) over 3.times with a single create call",
			Autofix:    []tt.Fix{{Start: 0, End: 25, New: "create_list(:user, 3)"}},
			Confidence: 1.0,
		},
	}
	engine := new(mockLintEngine)
	engine.On("Run", path).Return(issues, nil)

	runAutoFix(context.Background(), zap.NewNop(), engine, []string{path}, false, 0.8)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "create_list(:user, 3)\n", string(content))
	engine.AssertExpectations(t)
}

func TestRunAutoFixDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_spec.rb")
	src := "3.times { create(:user) }\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	issues := []tt.Issue{
		{
			Rule:       "create-list",
			Filename:   path,
			Message:    "prefer create_list(:user, 3) over 3.times with a single create call",
			Autofix:    []tt.Fix{{Start: 0, End: 25, New: "create_list(:user, 3)"}},
			Confidence: 1.0,
		},
	}
	engine := new(mockLintEngine)
	engine.On("Run", path).Return(issues, nil)

	runAutoFix(context.Background(), zap.NewNop(), engine, []string{path}, true, 0.8)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestLintFlagNames(t *testing.T) {
	require.NotNil(t, lintCmd.Flags().Lookup("ignore-rules"))
	require.NotNil(t, lintCmd.Flags().Lookup("ignore-paths"))
	assert.Nil(t, lintCmd.Flags().Lookup("ignore"))
}

func TestPrintIssuesJSONOutput(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "issues.json")
	issues := []tt.Issue{
		{
			Rule:     "sort-metadata",
			Severity: tt.SeverityWarning,
			Filename: "user_spec.rb",
			Message:  "sort metadata alphabetically",
			Start:    tt.Position{Line: 1, Column: 15},
			End:      tt.Position{Line: 1, Column: 21},
		},
	}

	printIssues(zap.NewNop(), issues, true, outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded map[string][]tt.Issue
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded["user_spec.rb"], 1)
	assert.Equal(t, "sort-metadata", decoded["user_spec.rb"][0].Rule)
}

func TestInitConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".speclint.yaml")
	require.NoError(t, initConfigurationFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config lint.Config
	require.NoError(t, yaml.Unmarshal(data, &config))
	assert.Equal(t, "speclint", config.Name)
	assert.Equal(t, tt.SeverityWarning, config.Rules["sort-metadata"].Severity)
	assert.Equal(t, tt.SeverityWarning, config.Rules["let-before-examples"].Severity)
	assert.Equal(t, tt.SeverityWarning, config.Rules["create-list"].Severity)
}
