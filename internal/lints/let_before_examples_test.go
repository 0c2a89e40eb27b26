package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speclint/speclint/internal/dialect"
	tt "github.com/speclint/speclint/internal/types"
)

func TestDetectLetAfterExamples(t *testing.T) {
	reg := dialect.Default()

	tests := []struct {
		name      string
		src       string
		wantRules int
		wantFixed string
	}{
		{
			name: "let after example",
			src: `describe 'user' do
  it 'works' do
  end
  let(:user) { build(:user) }
end
`,
			wantRules: 1,
			wantFixed: `describe 'user' do
  let(:user) { build(:user) }
  it 'works' do
  end
end
`,
		},
		{
			name: "attached comment moves with the declaration",
			src: `describe 'user' do
  it 'works' do
  end
  # memoized user
  let(:user) { build(:user) }
end
`,
			wantRules: 1,
			wantFixed: `describe 'user' do
  # memoized user
  let(:user) { build(:user) }
  it 'works' do
  end
end
`,
		},
		{
			name: "subject after nested group",
			src: `describe 'user' do
  context 'admin' do
  end
  subject { build(:admin) }
end
`,
			wantRules: 1,
			wantFixed: `describe 'user' do
  subject { build(:admin) }
  context 'admin' do
  end
end
`,
		},
		{
			name: "let after bare shared group include",
			src: `describe 'user' do
  include_examples 'auditable'
  let(:user) { build(:user) }
end
`,
			wantRules: 1,
			wantFixed: `describe 'user' do
  let(:user) { build(:user) }
  include_examples 'auditable'
end
`,
		},
		{
			name: "multiple helpers all move in order",
			src: `describe 'user' do
  it 'works' do
  end
  let(:a) { 1 }
  let(:b) { 2 }
end
`,
			wantRules: 2,
			wantFixed: `describe 'user' do
  let(:a) { 1 }
  let(:b) { 2 }
  it 'works' do
  end
end
`,
		},
		{
			name: "helpers before examples",
			src: `describe 'user' do
  let(:user) { build(:user) }
  subject { user }

  it 'works' do
  end
end
`,
		},
		{
			name: "group without examples",
			src: `describe 'user' do
  let(:user) { build(:user) }
end
`,
		},
		{
			name: "hook after example is not a helper",
			src: `describe 'user' do
  it 'works' do
  end
  before do
  end
end
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, tc.src)
			issues, err := DetectLetAfterExamples(f, reg, tt.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, issues, tc.wantRules)

			if tc.wantRules == 0 {
				return
			}
			require.NotEmpty(t, issues[0].Autofix)
			assert.Equal(t, tc.wantFixed, applyAutofixes(t, tc.src, issues))
		})
	}
}

func TestDetectLetAfterExamplesMessage(t *testing.T) {
	src := `describe 'user' do
  it 'works' do
  end
  let!(:account) { create(:account) }
end
`
	f := parseFile(t, src)
	issues, err := DetectLetAfterExamples(f, dialect.Default(), tt.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	assert.Equal(t, "let-before-examples", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "let!")
}

func TestDetectLetAfterExamplesNestedGroups(t *testing.T) {
	// each group body is checked on its own
	src := `describe 'outer' do
  let(:a) { 1 }

  context 'inner' do
    it 'works' do
    end
    let(:b) { 2 }
  end
end
`
	f := parseFile(t, src)
	issues, err := DetectLetAfterExamples(f, dialect.Default(), tt.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "let")

	want := `describe 'outer' do
  let(:a) { 1 }

  context 'inner' do
    let(:b) { 2 }
    it 'works' do
    end
  end
end
`
	assert.Equal(t, want, applyAutofixes(t, src, issues))
}
