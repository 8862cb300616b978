package structs

// ConfigMetadata describes the default pipeline configuration so that clients
// can build forms / validate overrides before submitting a job.
type ConfigMetadata struct {
	Defaults         map[string]interface{} `json:"defaults"`
	Strategies       map[string][]string    `json:"strategies"`
	RenderStrategies []string               `json:"render_strategies"`
	LayoutTypes      map[string]interface{} `json:"layout_types"`
	BooleanFlags     []string               `json:"boolean_flags"`
	Notes            map[string]string      `json:"notes"`
}
