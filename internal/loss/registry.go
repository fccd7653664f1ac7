package loss

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Constructor creates a loss from options.
type Constructor func(opts Options) (Loss, error)

type registration struct {
	name    string
	aliases []string
	ctor    Constructor
}

// Registry maps case-insensitive loss names and aliases to constructors.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registration // keyed by lower-cased name or alias
	names   []*registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registration),
	}
}

// Register adds a constructor under name and any aliases. Keys are matched
// case-insensitively; reusing a key fails with ErrDuplicateLoss.
func (r *Registry) Register(name string, ctor Constructor, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg := &registration{name: name, aliases: aliases, ctor: ctor}
	keys := append([]string{name}, aliases...)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		key := strings.ToLower(k)
		if _, ok := r.entries[key]; ok || seen[key] {
			return errors.Wrapf(ErrDuplicateLoss, "%q", k)
		}
		seen[key] = true
	}
	for key := range seen {
		r.entries[key] = reg
	}
	r.names = append(r.names, reg)
	return nil
}

// Lookup returns the constructor registered under name or alias.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return reg.ctor, true
}

// Build constructs the loss registered under name with opts.
func (r *Registry) Build(name string, opts Options) (Loss, error) {
	ctor, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLoss, "%q, known losses are %q", name, r.Keys())
	}
	l, err := ctor(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s loss", name)
	}
	return l, nil
}

// Names returns the canonical registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	for i, reg := range r.names {
		out[i] = reg.name
	}
	sort.Strings(out)
	return out
}

// Aliases returns the aliases registered alongside name.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return append([]string(nil), reg.aliases...)
}

// Keys returns every accepted lower-cased lookup key, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Default is the registry used by the package-level Build and Register.
var Default = NewRegistry()

func init() {
	builtins := []struct {
		name    string
		ctor    Constructor
		aliases []string
	}{
		{"MeanSquaredError", func(o Options) (Loss, error) { return NewMeanSquaredError(o) }, []string{"MSE"}},
		{"MeanAbsoluteError", func(o Options) (Loss, error) { return NewMeanAbsoluteError(o) }, []string{"MAE"}},
		{"Hinge", func(o Options) (Loss, error) { return NewHinge(o) }, nil},
		{"CrossEntropy", func(o Options) (Loss, error) { return NewCrossEntropy(o) }, []string{"XE"}},
	}
	for _, b := range builtins {
		if err := Default.Register(b.name, b.ctor, b.aliases...); err != nil {
			panic(err.Error())
		}
	}
}

// Register adds a constructor to the default registry.
func Register(name string, ctor Constructor, aliases ...string) error {
	return Default.Register(name, ctor, aliases...)
}

// Build constructs a loss from the default registry by case-insensitive
// name or alias, e.g. "mse", "MeanSquaredError", "XE".
func Build(name string, opts Options) (Loss, error) {
	return Default.Build(name, opts)
}

// Names returns the canonical names in the default registry.
func Names() []string {
	return Default.Names()
}
