package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	tests := []struct {
		name  string
		check func(string) bool
		yes   []string
		no    []string
	}{
		{
			name:  "example groups",
			check: reg.IsExampleGroup,
			yes:   []string{"describe", "context", "xdescribe", "fcontext", "feature"},
			no:    []string{"it", "let", "before", "Describe"},
		},
		{
			name:  "examples",
			check: reg.IsExample,
			yes:   []string{"it", "specify", "xit", "fit", "scenario", "pending"},
			no:    []string{"describe", "let"},
		},
		{
			name:  "hooks",
			check: reg.IsHook,
			yes:   []string{"before", "after", "around", "prepend_before"},
			no:    []string{"setup", "it"},
		},
		{
			name:  "shared group includes",
			check: reg.IsSharedGroupInclude,
			yes:   []string{"include_context", "include_examples", "it_behaves_like"},
			no:    []string{"include", "it"},
		},
		{
			name:  "helpers",
			check: reg.IsHelper,
			yes:   []string{"let", "let!", "subject", "subject!"},
			no:    []string{"lets", "before"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, name := range tc.yes {
				assert.True(t, tc.check(name), "expected %q to be in category", name)
			}
			for _, name := range tc.no {
				assert.False(t, tc.check(name), "expected %q to be outside category", name)
			}
		})
	}
}

func TestMetadataCarrier(t *testing.T) {
	reg := Default()

	assert.True(t, reg.IsMetadataCarrier("describe"))
	assert.True(t, reg.IsMetadataCarrier("it"))
	assert.True(t, reg.IsMetadataCarrier("before"))
	assert.True(t, reg.IsMetadataCarrier("include_examples"))
	assert.False(t, reg.IsMetadataCarrier("let"))
	assert.False(t, reg.IsMetadataCarrier("expect"))
}

func TestConfigExtendsDefaults(t *testing.T) {
	reg, err := New(Config{
		ExampleGroups: CategoryConfig{Regular: []string{"epic"}},
		Examples:      CategoryConfig{Focused: []string{"fstep"}},
		Hooks:         []string{"setup"},
		Helpers:       []string{"given"},
	})
	require.NoError(t, err)

	// new names are known
	assert.True(t, reg.IsExampleGroup("epic"))
	assert.True(t, reg.IsExample("fstep"))
	assert.True(t, reg.IsHook("setup"))
	assert.True(t, reg.IsHelper("given"))

	// defaults are still present
	assert.True(t, reg.IsExampleGroup("describe"))
	assert.True(t, reg.IsExample("it"))
	assert.True(t, reg.IsHook("before"))
	assert.True(t, reg.IsHelper("let"))
}

func TestEmptyNameRejected(t *testing.T) {
	_, err := New(Config{Hooks: []string{"before_all", ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hooks")
}

func TestCrossCategoryDuplicateRejected(t *testing.T) {
	_, err := New(Config{Hooks: []string{"it"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "examples")
	assert.Contains(t, err.Error(), "hooks")
}

func TestSameCategoryRelistingAllowed(t *testing.T) {
	reg, err := New(Config{Helpers: []string{"let"}})
	require.NoError(t, err)
	assert.True(t, reg.IsHelper("let"))
}
