package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	ie "github.com/voidshard/platen/pkg/errors"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

var (
	// ${a.b.c} or ${env:NAME} or ${env:NAME,default}
	refPattern = regexp.MustCompile(`\$\{([^${}]+)\}`)

	maxRefDepth = 32
)

// Resolver merges job overrides over the default pipeline configuration.
type Resolver struct {
	defaults map[string]interface{}
}

// NewResolver loads the defaults, either from opts.DefaultsPath or the built in file.
func NewResolver(opts *Options) (*Resolver, error) {
	if opts == nil {
		opts = &Options{}
	}

	raw := embeddedDefaults
	if opts.DefaultsPath != "" {
		data, err := os.ReadFile(opts.DefaultsPath)
		if err != nil {
			return nil, fmt.Errorf("%w failed to read defaults %s: %v", ie.ErrConfiguration, opts.DefaultsPath, err)
		}
		raw = data
	}

	defaults := map[string]interface{}{}
	err := yaml.Unmarshal(raw, &defaults)
	if err != nil {
		return nil, fmt.Errorf("%w defaults are not valid yaml: %v", ie.ErrConfiguration, err)
	}

	return &Resolver{defaults: normalize(defaults).(map[string]interface{})}, nil
}

// Defaults returns a copy of the unresolved default configuration.
func (r *Resolver) Defaults() map[string]interface{} {
	return deepCopy(r.defaults).(map[string]interface{})
}

// Resolve merges overrides over the defaults, coerces boolean flags & expands
// ${...} references. The result is a fresh plain map.
func (r *Resolver) Resolve(overrides map[string]interface{}) (map[string]interface{}, error) {
	merged := r.Defaults()
	if overrides == nil {
		overrides = map[string]interface{}{}
	}

	err := merge(merged, normalize(deepCopy(overrides)).(map[string]interface{}), "")
	if err != nil {
		return nil, err
	}

	for _, flag := range BooleanFlags {
		v, ok := merged[flag]
		if !ok || v == nil {
			continue
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("%w %s must be a boolean, got %v", ie.ErrConfiguration, flag, v)
		}
		merged[flag] = b
	}

	resolved, err := (&interpolation{root: merged, visiting: map[string]bool{}}).resolve(merged, 0)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]interface{}), nil
}

// merge writes over into base. Keys unknown to base are rejected unless base is
// free form at that point (a null or empty mapping default).
func merge(base, over map[string]interface{}, path string) error {
	for k, v := range over {
		keyPath := joinPath(path, k)

		current, ok := base[k]
		if !ok {
			return fmt.Errorf("%w unknown config key %s", ie.ErrConfiguration, keyPath)
		}

		currentMap, currentIsMap := current.(map[string]interface{})
		overMap, overIsMap := v.(map[string]interface{})

		switch {
		case current == nil:
			base[k] = v
		case currentIsMap && len(currentMap) == 0:
			base[k] = v
		case currentIsMap && overIsMap:
			err := merge(currentMap, overMap, keyPath)
			if err != nil {
				return err
			}
		case currentIsMap && v != nil:
			return fmt.Errorf("%w config key %s expects a mapping", ie.ErrConfiguration, keyPath)
		default:
			base[k] = v
		}
	}
	return nil
}

type interpolation struct {
	root     map[string]interface{}
	visiting map[string]bool
}

func (i *interpolation) resolve(v interface{}, depth int) (interface{}, error) {
	if depth > maxRefDepth {
		return nil, fmt.Errorf("%w config references nested too deeply", ie.ErrConfiguration)
	}

	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			rv, err := i.resolve(child, depth)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for idx, child := range t {
			rv, err := i.resolve(child, depth)
			if err != nil {
				return nil, err
			}
			out[idx] = rv
		}
		return out, nil
	case string:
		return i.expand(t, depth)
	default:
		return v, nil
	}
}

// expand replaces references in s. A string that is exactly one reference
// takes the referenced value's type.
func (i *interpolation) expand(s string, depth int) (interface{}, error) {
	matches := refPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		return i.lookup(s[matches[0][2]:matches[0][3]], depth)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		v, err := i.lookup(s[m[2]:m[3]], depth)
		if err != nil {
			return nil, err
		}
		if v != nil {
			b.WriteString(cast.ToString(v))
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

func (i *interpolation) lookup(ref string, depth int) (interface{}, error) {
	ref = strings.TrimSpace(ref)

	for _, prefix := range []string{"env:", "oc.env:"} {
		if strings.HasPrefix(ref, prefix) {
			name, fallback, hasFallback := strings.Cut(strings.TrimPrefix(ref, prefix), ",")
			name = strings.TrimSpace(name)
			value, ok := os.LookupEnv(name)
			if ok {
				return value, nil
			}
			if hasFallback {
				return strings.TrimSpace(fallback), nil
			}
			return nil, fmt.Errorf("%w environment variable %s is not set", ie.ErrConfiguration, name)
		}
	}

	if i.visiting[ref] {
		return nil, fmt.Errorf("%w config reference cycle at %s", ie.ErrConfiguration, ref)
	}

	var node interface{} = i.root
	for _, part := range strings.Split(ref, ".") {
		switch t := node.(type) {
		case map[string]interface{}:
			child, ok := t[part]
			if !ok {
				return nil, fmt.Errorf("%w config reference %s not found", ie.ErrConfiguration, ref)
			}
			node = child
		case []interface{}:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, fmt.Errorf("%w config reference %s not found", ie.ErrConfiguration, ref)
			}
			node = t[idx]
		default:
			return nil, fmt.Errorf("%w config reference %s not found", ie.ErrConfiguration, ref)
		}
	}

	i.visiting[ref] = true
	defer delete(i.visiting, ref)
	return i.resolve(node, depth+1)
}

// normalize converts yaml / json decoded values into map[string]interface{} &
// []interface{} throughout.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			out[cast.ToString(k)] = normalize(child)
		}
		return out
	case []interface{}:
		for idx, child := range t {
			t[idx] = normalize(child)
		}
		return t
	case []string:
		out := make([]interface{}, len(t))
		for idx, s := range t {
			out[idx] = s
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case nil:
		return nil
	default:
		return v
	}
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for idx, child := range t {
			out[idx] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
