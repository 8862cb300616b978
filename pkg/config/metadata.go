package config

import (
	"sort"

	"github.com/voidshard/platen/pkg/structs"
)

var (
	// StrategyOptions are the valid values of each per stage strategy key.
	StrategyOptions = map[string][]string{
		"crop_strategy":        {"llm", "none"},
		"glossary_strategy":    {"llm", "none"},
		"explanation_strategy": {"llm", "none"},
		"easy_read_strategy":   {"llm", "none"},
		"caption_strategy":     {"llm", "none"},
		"speech_strategy":      {"tts", "none"},
	}

	// BooleanFlags are keys coerced to booleans ("true", "1", etc.) on resolve.
	BooleanFlags = []string{"clear_cache", "print_available_models"}

	Notes = map[string]string{
		"label":               "Used to namespace the run output dir; a job suffix is appended to keep runs unique.",
		"pdf_path":            "Injected automatically from the uploaded file.",
		"page_range":          "Inclusive start/end; leave zeros to process the full document.",
		"regenerate_sections": "List of section IDs to regenerate from scratch. Set via the regenerate endpoint.",
		"edit_sections":       "Map of section ID to edit instruction. Set via the regenerate endpoint.",
	}
)

const dynamicRenderStrategy = "dynamic"

// Metadata describes the defaults & valid options for clients.
func (r *Resolver) Metadata() *structs.ConfigMetadata {
	defaults := r.Defaults()

	renders := map[string]bool{dynamicRenderStrategy: true}
	if rs, ok := defaults["render_strategies"].(map[string]interface{}); ok {
		for k := range rs {
			renders[k] = true
		}
	}
	names := []string{}
	for k := range renders {
		names = append(names, k)
	}
	sort.Strings(names)

	layouts, _ := defaults["layout_types"].(map[string]interface{})
	if layouts == nil {
		layouts = map[string]interface{}{}
	}

	strategies := map[string][]string{}
	for k, v := range StrategyOptions {
		strategies[k] = append([]string{}, v...)
	}
	notes := map[string]string{}
	for k, v := range Notes {
		notes[k] = v
	}

	return &structs.ConfigMetadata{
		Defaults:         defaults,
		Strategies:       strategies,
		RenderStrategies: names,
		LayoutTypes:      layouts,
		BooleanFlags:     append([]string{}, BooleanFlags...),
		Notes:            notes,
	}
}
