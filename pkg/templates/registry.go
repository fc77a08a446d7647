package templates

import (
	"sort"

	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/logging"
)

// Registry maps template names to compiled templates. It stands in for
// the pipeline platform's template store: presets reference templates
// by name and resolve them here.
type Registry struct {
	root      string
	templates map[string]*Template
}

// NewRegistry creates an empty registry. root, if non-empty, is the
// project root that absolute paths are made relative to before
// template matching.
func NewRegistry(root string) *Registry {
	return &Registry{
		root:      root,
		templates: make(map[string]*Template),
	}
}

// Add compiles and registers a template under the given name.
// A template registered twice replaces the earlier entry.
func (r *Registry) Add(name, definition string, keys map[string]Key) (*Template, error) {
	logger := logging.GetLogger("templates")

	t, err := New(name, definition, keys, r.root)
	if err != nil {
		return nil, err
	}

	r.templates[name] = t
	logger.Debug().Str("template", name).Str("definition", definition).Msg("Registered template")
	return t, nil
}

// Get returns the template registered under name
func (r *Registry) Get(name string) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, errors.Newf(errors.ErrTemplateNotFound,
			"template '%s' is not defined in the configuration", name)
	}
	return t, nil
}

// Names returns the sorted names of all registered templates
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
