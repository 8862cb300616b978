package config

// Options for the Resolver.
type Options struct {
	// DefaultsPath is a YAML file to use in place of the built in defaults.
	DefaultsPath string
}
