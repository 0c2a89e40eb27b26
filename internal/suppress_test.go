package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speclint/speclint/internal/parser"
)

func parseForSuppressions(t *testing.T, src string) *SuppressionManager {
	t.Helper()
	f, err := parser.Parse("test_spec.rb", []byte(src))
	require.NoError(t, err)
	return ParseSuppressions(f)
}

func TestParseSuppressions(t *testing.T) {
	src := `# speclint:disable
describe 'a', :b, :a do
  it 'works', :d, :c do # speclint:disable sort-metadata
  end
  # speclint:disable create-list, let-before-examples
  let(:user) { build(:user) }
end
`
	m := parseForSuppressions(t, src)

	// own-line directive guards the next line, for every rule
	assert.True(t, m.IsSuppressed(2, "sort-metadata"))
	assert.True(t, m.IsSuppressed(2, "create-list"))
	assert.False(t, m.IsSuppressed(1, "sort-metadata"))

	// trailing directive guards its own line, only for the named rule
	assert.True(t, m.IsSuppressed(3, "sort-metadata"))
	assert.False(t, m.IsSuppressed(3, "create-list"))

	// comma-separated rule list
	assert.True(t, m.IsSuppressed(6, "create-list"))
	assert.True(t, m.IsSuppressed(6, "let-before-examples"))
	assert.False(t, m.IsSuppressed(6, "sort-metadata"))
}

func TestIndentedOwnLineDirective(t *testing.T) {
	src := `describe 'a' do
  # speclint:disable sort-metadata
  it 'works', :b, :a do
  end
end
`
	m := parseForSuppressions(t, src)
	assert.True(t, m.IsSuppressed(3, "sort-metadata"))
	assert.False(t, m.IsSuppressed(2, "sort-metadata"))
}

func TestOrdinaryCommentsAreNotDirectives(t *testing.T) {
	src := `# plain comment
describe 'a', :b, :a do # another comment
end
`
	m := parseForSuppressions(t, src)
	assert.False(t, m.IsSuppressed(1, "sort-metadata"))
	assert.False(t, m.IsSuppressed(2, "sort-metadata"))
}

func TestSuppressionFiltersEngineIssues(t *testing.T) {
	src := `describe 'a', :b, :a do # speclint:disable sort-metadata
  3.times { create(:user) } # speclint:disable
end
`
	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestSuppressionLeavesOtherRulesActive(t *testing.T) {
	src := `describe 'a', :b, :a do # speclint:disable create-list
end
`
	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "sort-metadata", issues[0].Rule)
}
