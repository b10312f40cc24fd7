// Package field - Registry of named fields
package field

import (
	"sync"

	"github.com/shopspring/decimal"

	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/internal/errors"
)

// Built-in field names
const (
	NameMemory      = "memory"
	NameMemoryBytes = "memory-bytes"
	NameCPU         = "cpu"
)

// Registry holds named fields in registration order
type Registry struct {
	mu     sync.RWMutex
	fields map[string]*Field
	order  []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		fields: make(map[string]*Field),
		order:  make([]string, 0),
	}
}

// NewBuiltinRegistry creates a registry holding the built-in fields
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, f := range Builtins() {
		// names are distinct constants
		_ = r.Register(f)
	}
	return r
}

// Register adds a field; names must be unique
func (r *Registry) Register(f *Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fields[f.Name()]; exists {
		return errors.Configf("field already registered: %s", f.Name())
	}
	r.fields[f.Name()] = f
	r.order = append(r.order, f.Name())
	return nil
}

// Replace adds a field or overrides one with the same name
func (r *Registry) Replace(f *Field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fields[f.Name()]; !exists {
		r.order = append(r.order, f.Name())
	}
	r.fields[f.Name()] = f
}

// Get returns a field by name
func (r *Registry) Get(name string) (*Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fields[name]
	if !ok {
		return nil, errors.NotFound("field", name)
	}
	return f, nil
}

// All returns the fields in registration order
func (r *Registry) All() []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// Names returns the field names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Builtins returns fresh instances of the built-in fields:
// memory (MiB..TiB, up to 1 TiB), memory-bytes (B..TiB, up to 1 TiB) and
// cpu (millicores and vCPU, up to 64 vCPU).
func Builtins() []*Field {
	tebibyte := decimal.NewFromInt(1 << 40)
	return []*Field{
		mustField(Options{
			Name:               NameMemory,
			Units:              units.Memory(),
			Rules:              types.ValidationRules{Min: decimal.Zero, Max: decimal.NewFromInt(1 << 20)},
			AllowMultipleUnits: true,
			DefaultUnitIndex:   1,
		}),
		mustField(Options{
			Name:               NameMemoryBytes,
			Units:              units.MemoryBytes(),
			Rules:              types.ValidationRules{Min: decimal.Zero, Max: tebibyte},
			AllowMultipleUnits: true,
			DefaultUnitIndex:   2,
		}),
		mustField(Options{
			Name:               NameCPU,
			Units:              units.CPU(),
			Rules:              types.ValidationRules{Min: decimal.Zero, Max: decimal.NewFromInt(64000)},
			AllowMultipleUnits: true,
			DefaultUnitIndex:   1,
		}),
	}
}

func mustField(opts Options) *Field {
	f, err := New(opts)
	if err != nil {
		panic(err)
	}
	return f
}
