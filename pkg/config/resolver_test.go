package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	ie "github.com/voidshard/platen/pkg/errors"
)

const testDefaults = `
label: ""
model: gpt-4o
run_output_dir: null
extra: {}
cache_dir: "/tmp/${label}"
page_range: [0, 0]
first_page: "${page_range.0}"
clear_cache: false
render:
  strategy: dynamic
  dpi: 300
`

func newTestResolver(t *testing.T) *Resolver {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	err := os.WriteFile(path, []byte(testDefaults), 0644)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewResolver(&Options{DefaultsPath: path})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResolveMerge(t *testing.T) {
	cases := []struct {
		Name      string
		Overrides map[string]interface{}
		Key       string
		Expect    interface{}
		ExpectErr error
	}{
		{
			Name:   "DefaultKept",
			Key:    "model",
			Expect: "gpt-4o",
		},
		{
			Name:      "TopLevelOverride",
			Overrides: map[string]interface{}{"model": "other"},
			Key:       "model",
			Expect:    "other",
		},
		{
			Name:      "UnknownTopLevel",
			Overrides: map[string]interface{}{"nope": 1},
			ExpectErr: ie.ErrConfiguration,
		},
		{
			Name:      "UnknownNested",
			Overrides: map[string]interface{}{"render": map[string]interface{}{"nope": 1}},
			ExpectErr: ie.ErrConfiguration,
		},
		{
			Name:      "ScalarOverMapping",
			Overrides: map[string]interface{}{"render": "flat"},
			ExpectErr: ie.ErrConfiguration,
		},
		{
			Name:      "NullDefaultIsFreeForm",
			Overrides: map[string]interface{}{"run_output_dir": "/data/out"},
			Key:       "run_output_dir",
			Expect:    "/data/out",
		},
		{
			Name:      "EmptyMappingIsFreeForm",
			Overrides: map[string]interface{}{"extra": map[string]interface{}{"anything": true}},
			Key:       "extra",
			Expect:    map[string]interface{}{"anything": true},
		},
		{
			Name:      "BooleanCoerced",
			Overrides: map[string]interface{}{"clear_cache": "true"},
			Key:       "clear_cache",
			Expect:    true,
		},
		{
			Name:      "BooleanNumeric",
			Overrides: map[string]interface{}{"clear_cache": 1},
			Key:       "clear_cache",
			Expect:    true,
		},
		{
			Name:      "BooleanInvalid",
			Overrides: map[string]interface{}{"clear_cache": "maybe"},
			ExpectErr: ie.ErrConfiguration,
		},
		{
			Name:      "InterpolatesMergedValue",
			Overrides: map[string]interface{}{"label": "run-1"},
			Key:       "cache_dir",
			Expect:    "/tmp/run-1",
		},
		{
			Name:   "WholeReferenceKeepsType",
			Key:    "first_page",
			Expect: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := newTestResolver(t)

			result, err := r.Resolve(c.Overrides)

			if c.ExpectErr != nil {
				assert.True(t, errors.Is(err, c.ExpectErr))
				assert.Nil(t, result)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.Expect, result[c.Key])
		})
	}
}

func TestResolveNestedMergeKeepsSiblings(t *testing.T) {
	r := newTestResolver(t)

	result, err := r.Resolve(map[string]interface{}{"render": map[string]interface{}{"dpi": 600}})

	assert.Nil(t, err)
	assert.Equal(t, map[string]interface{}{"strategy": "dynamic", "dpi": 600}, result["render"])
}

func TestResolveDoesNotMutateDefaults(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(map[string]interface{}{"render": map[string]interface{}{"dpi": 1}})
	assert.Nil(t, err)

	assert.Equal(t, 300, r.Defaults()["render"].(map[string]interface{})["dpi"])
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv("PLATEN_TEST_MODEL", "from-env")

	cases := []struct {
		Name      string
		Value     string
		Expect    interface{}
		ExpectErr error
	}{
		{"Set", "${env:PLATEN_TEST_MODEL}", "from-env", nil},
		{"SetWithDefault", "${env:PLATEN_TEST_MODEL,fallback}", "from-env", nil},
		{"UnsetWithDefault", "${env:PLATEN_TEST_UNSET,fallback}", "fallback", nil},
		{"Embedded", "m-${env:PLATEN_TEST_MODEL}-x", "m-from-env-x", nil},
		{"UnsetNoDefault", "${env:PLATEN_TEST_UNSET}", nil, ie.ErrConfiguration},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := newTestResolver(t)

			result, err := r.Resolve(map[string]interface{}{"model": c.Value})

			if c.ExpectErr != nil {
				assert.True(t, errors.Is(err, c.ExpectErr))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.Expect, result["model"])
		})
	}
}

func TestResolveReferenceErrors(t *testing.T) {
	cases := []struct {
		Name  string
		Value string
	}{
		{"Missing", "${does.not.exist}"},
		{"SelfCycle", "${model}"},
		{"BadIndex", "${page_range.9}"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := newTestResolver(t)

			_, err := r.Resolve(map[string]interface{}{"model": c.Value})

			assert.True(t, errors.Is(err, ie.ErrConfiguration))
		})
	}
}

func TestEmbeddedDefaultsResolve(t *testing.T) {
	r, err := NewResolver(nil)
	assert.Nil(t, err)

	result, err := r.Resolve(map[string]interface{}{
		"label":               "demo-1234abcd",
		"regenerate_sections": []interface{}{"s1"},
		"edit_sections":       map[string]interface{}{"s2": "shorter"},
	})

	assert.Nil(t, err)
	assert.Equal(t, "demo-1234abcd", result["label"])
	assert.Equal(t, []interface{}{"s1"}, result["regenerate_sections"])
	assert.Equal(t, map[string]interface{}{"s2": "shorter"}, result["edit_sections"])
	assert.Equal(t, false, result["clear_cache"])
	assert.Nil(t, result["run_output_dir"])
}

func TestMetadata(t *testing.T) {
	r, err := NewResolver(nil)
	assert.Nil(t, err)

	meta := r.Metadata()

	assert.Contains(t, meta.RenderStrategies, "dynamic")
	assert.Contains(t, meta.RenderStrategies, "two_column")
	assert.Equal(t, BooleanFlags, meta.BooleanFlags)
	assert.Equal(t, []string{"llm", "none"}, meta.Strategies["crop_strategy"])
	assert.Contains(t, meta.LayoutTypes, "text_only")
	assert.Equal(t, "gpt-4o", meta.Defaults["model"])
	assert.NotEmpty(t, meta.Notes["label"])
}
