// Package dialect resolves the configurable method-name vocabulary of the
// testing DSL. The registry is built once per run from defaults merged with
// the project configuration and is immutable afterwards, so it is safe to
// share across files processed in parallel.
package dialect

import "fmt"

// Config is the `dialect` section of the configuration file. Lists extend
// the built-in defaults; they never replace them.
type Config struct {
	ExampleGroups CategoryConfig     `yaml:"example_groups"`
	Examples      CategoryConfig     `yaml:"examples"`
	Hooks         []string           `yaml:"hooks"`
	SharedGroups  SharedGroupsConfig `yaml:"shared_groups"`
	Helpers       []string           `yaml:"helpers"`
}

// CategoryConfig splits a category into its regular, skipped and focused
// variants, mirroring how the DSL itself organizes them.
type CategoryConfig struct {
	Regular []string `yaml:"regular"`
	Skipped []string `yaml:"skipped"`
	Focused []string `yaml:"focused"`
}

func (c CategoryConfig) all() []string {
	out := make([]string, 0, len(c.Regular)+len(c.Skipped)+len(c.Focused))
	out = append(out, c.Regular...)
	out = append(out, c.Skipped...)
	out = append(out, c.Focused...)
	return out
}

// SharedGroupsConfig lists the methods that include shared contexts and
// shared examples into a group.
type SharedGroupsConfig struct {
	Context  []string `yaml:"context"`
	Examples []string `yaml:"examples"`
}

var defaultConfig = Config{
	ExampleGroups: CategoryConfig{
		Regular: []string{"describe", "context", "feature", "example_group"},
		Skipped: []string{"xdescribe", "xcontext", "xfeature"},
		Focused: []string{"fdescribe", "fcontext", "ffeature"},
	},
	Examples: CategoryConfig{
		Regular: []string{"it", "specify", "example", "scenario", "its"},
		Skipped: []string{"xit", "xspecify", "xexample", "xscenario", "skip", "pending"},
		Focused: []string{"fit", "fspecify", "fexample", "fscenario", "focus"},
	},
	Hooks: []string{"before", "after", "around", "prepend_before", "append_after"},
	SharedGroups: SharedGroupsConfig{
		Context:  []string{"include_context", "it_behaves_like", "it_should_behave_like"},
		Examples: []string{"include_examples"},
	},
	Helpers: []string{"let", "let!", "subject", "subject!"},
}

// Registry answers which method names belong to which DSL category.
type Registry struct {
	exampleGroups map[string]struct{}
	examples      map[string]struct{}
	hooks         map[string]struct{}
	includes      map[string]struct{}
	helpers       map[string]struct{}
}

// Default returns a registry for the built-in dialect.
func Default() *Registry {
	reg, err := New(Config{})
	if err != nil {
		// the built-in defaults always validate
		panic(err)
	}
	return reg
}

// New builds a registry from the defaults extended by cfg. A malformed
// configuration fails here, before any file is processed: empty names are
// rejected, as is the same name appearing in two different categories,
// since an ambiguous vocabulary would silently misclassify calls for the
// whole run. Re-listing a name within its own category is harmless.
func New(cfg Config) (*Registry, error) {
	reg := &Registry{
		exampleGroups: make(map[string]struct{}),
		examples:      make(map[string]struct{}),
		hooks:         make(map[string]struct{}),
		includes:      make(map[string]struct{}),
		helpers:       make(map[string]struct{}),
	}
	owner := make(map[string]string)
	add := func(dst map[string]struct{}, category string, names []string) error {
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("dialect: empty method name in %s", category)
			}
			if prev, ok := owner[name]; ok && prev != category {
				return fmt.Errorf("dialect: %q configured in both %s and %s", name, prev, category)
			}
			owner[name] = category
			dst[name] = struct{}{}
		}
		return nil
	}
	type entry struct {
		dst      map[string]struct{}
		category string
		names    []string
	}
	entries := []entry{
		{reg.exampleGroups, "example_groups", defaultConfig.ExampleGroups.all()},
		{reg.exampleGroups, "example_groups", cfg.ExampleGroups.all()},
		{reg.examples, "examples", defaultConfig.Examples.all()},
		{reg.examples, "examples", cfg.Examples.all()},
		{reg.hooks, "hooks", defaultConfig.Hooks},
		{reg.hooks, "hooks", cfg.Hooks},
		{reg.includes, "shared_groups", defaultConfig.SharedGroups.Context},
		{reg.includes, "shared_groups", defaultConfig.SharedGroups.Examples},
		{reg.includes, "shared_groups", cfg.SharedGroups.Context},
		{reg.includes, "shared_groups", cfg.SharedGroups.Examples},
		{reg.helpers, "helpers", defaultConfig.Helpers},
		{reg.helpers, "helpers", cfg.Helpers},
	}
	for _, e := range entries {
		if err := add(e.dst, e.category, e.names); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// IsExampleGroup reports whether name declares an example group.
func (r *Registry) IsExampleGroup(name string) bool {
	_, ok := r.exampleGroups[name]
	return ok
}

// IsExample reports whether name declares a single example.
func (r *Registry) IsExample(name string) bool {
	_, ok := r.examples[name]
	return ok
}

// IsHook reports whether name declares a hook.
func (r *Registry) IsHook(name string) bool {
	_, ok := r.hooks[name]
	return ok
}

// IsSharedGroupInclude reports whether name pulls a shared group into the
// current group.
func (r *Registry) IsSharedGroupInclude(name string) bool {
	_, ok := r.includes[name]
	return ok
}

// IsHelper reports whether name declares a memoized helper (`let` and
// friends).
func (r *Registry) IsHelper(name string) bool {
	_, ok := r.helpers[name]
	return ok
}

// IsMetadataCarrier reports whether a call named name can carry trailing
// metadata arguments.
func (r *Registry) IsMetadataCarrier(name string) bool {
	return r.IsExampleGroup(name) || r.IsExample(name) || r.IsHook(name) || r.IsSharedGroupInclude(name)
}
