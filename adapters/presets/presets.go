// Package presets loads field definitions from HCL, YAML, TOML or JSON files.
//
// An HCL preset looks like:
//
//	field "disk" {
//	  max                  = 2048
//	  allow_multiple_units = true
//	  default_unit         = "GiB"
//	  scale                = "memory"
//	}
//
//	field "replicas" {
//	  max = 500
//	  unit "pods" {
//	    step   = 1
//	    chunk  = 100
//	    factor = 1
//	  }
//	}
//
// The other syntaxes carry the same keys under a top-level fields list.
package presets

import (
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quantity-editor/core/field"
	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/internal/errors"
	"quantity-editor/internal/logging"
)

// File is the decoded content of a preset file
type File struct {
	Fields []FieldDef `hcl:"field,block" yaml:"fields" toml:"fields" json:"fields"`
}

// FieldDef describes one field. Exactly one of Scale and Units is set.
type FieldDef struct {
	Name               string    `hcl:"name,label" yaml:"name" toml:"name" json:"name"`
	Scale              string    `hcl:"scale,optional" yaml:"scale,omitempty" toml:"scale" json:"scale,omitempty"`
	Min                Number    `hcl:"min,optional" yaml:"min,omitempty" toml:"min" json:"min,omitempty"`
	Max                Number    `hcl:"max" yaml:"max" toml:"max" json:"max"`
	AllowMultipleUnits bool      `hcl:"allow_multiple_units,optional" yaml:"allow_multiple_units,omitempty" toml:"allow_multiple_units" json:"allow_multiple_units,omitempty"`
	DefaultUnit        string    `hcl:"default_unit,optional" yaml:"default_unit,omitempty" toml:"default_unit" json:"default_unit,omitempty"`
	Units              []UnitDef `hcl:"unit,block" yaml:"units,omitempty" toml:"units" json:"units,omitempty"`
}

// UnitDef describes one unit of a custom scale
type UnitDef struct {
	Symbol  string   `hcl:"symbol,label" yaml:"symbol" toml:"symbol" json:"symbol"`
	Step    Number   `hcl:"step" yaml:"step" toml:"step" json:"step"`
	Chunk   Number   `hcl:"chunk" yaml:"chunk" toml:"chunk" json:"chunk"`
	Factor  Number   `hcl:"factor" yaml:"factor" toml:"factor" json:"factor"`
	Aliases []string `hcl:"aliases,optional" yaml:"aliases,omitempty" toml:"aliases" json:"aliases,omitempty"`
}

// LoadFile decodes and builds every field in path
func LoadFile(path string) ([]*field.Field, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("preset file", path)
		}
		return nil, errors.Wrap(errors.TypeConfig, "read "+path, err)
	}

	file, err := Decode(src, path, format)
	if err != nil {
		return nil, err
	}

	fields, err := file.Build()
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, path, err)
	}

	logging.Info("loaded presets",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("fields", len(fields)))
	return fields, nil
}

// LoadInto loads path and registers its fields, replacing same-named ones
func LoadInto(reg *field.Registry, path string) error {
	fields, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, f := range fields {
		reg.Replace(f)
	}
	return nil
}

// Build validates every definition. Names must be unique within the file.
func (f *File) Build() ([]*field.Field, error) {
	if len(f.Fields) == 0 {
		return nil, errors.Config("no fields defined")
	}

	seen := make(map[string]bool, len(f.Fields))
	out := make([]*field.Field, 0, len(f.Fields))
	for _, def := range f.Fields {
		if seen[def.Name] {
			return nil, errors.Configf("field %q defined twice", def.Name)
		}
		seen[def.Name] = true

		built, err := def.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

// Build turns the definition into a field
func (d FieldDef) Build() (*field.Field, error) {
	if d.Name == "" {
		return nil, errors.Config("field without a name")
	}

	scale, err := d.scale()
	if err != nil {
		return nil, err
	}

	lower := decimal.Zero
	if d.Min != "" {
		if lower, err = parseNumber(d.Name, "min", d.Min); err != nil {
			return nil, err
		}
	}
	upper, err := parseNumber(d.Name, "max", d.Max)
	if err != nil {
		return nil, err
	}

	defaultUnit := scale.BaseIndex()
	if d.DefaultUnit != "" {
		idx, ok := scale.Lookup(d.DefaultUnit)
		if !ok {
			return nil, errors.Configf("field %q: default unit %q is not in the scale", d.Name, d.DefaultUnit)
		}
		defaultUnit = idx
	}

	return field.New(field.Options{
		Name:               d.Name,
		Units:              scale,
		Rules:              types.ValidationRules{Min: lower, Max: upper},
		AllowMultipleUnits: d.AllowMultipleUnits,
		DefaultUnitIndex:   defaultUnit,
	})
}

func (d FieldDef) scale() (*units.UnitConfig, error) {
	switch {
	case d.Scale != "" && len(d.Units) > 0:
		return nil, errors.Configf("field %q sets both scale and units", d.Name)
	case d.Scale != "":
		scale, err := units.ScaleByName(d.Scale)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "field %q", d.Name)
		}
		return scale, nil
	case len(d.Units) == 0:
		return nil, errors.Configf("field %q needs a scale or units", d.Name)
	}

	defs := make([]units.UnitDefinition, 0, len(d.Units))
	for _, u := range d.Units {
		step, err := parseNumber(d.Name, u.Symbol+".step", u.Step)
		if err != nil {
			return nil, err
		}
		chunk, err := parseNumber(d.Name, u.Symbol+".chunk", u.Chunk)
		if err != nil {
			return nil, err
		}
		factor, err := parseNumber(d.Name, u.Symbol+".factor", u.Factor)
		if err != nil {
			return nil, err
		}
		defs = append(defs, units.UnitDefinition{
			Symbol:    u.Symbol,
			Aliases:   u.Aliases,
			StepSize:  step,
			ChunkSize: chunk,
			Factor:    factor,
		})
	}
	return units.NewUnitConfig(d.Name, defs...)
}

func parseNumber(fieldName, key string, n Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, errors.Configf("field %q: %s is required", fieldName, key)
	}
	v, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, errors.Configf("field %q: %s = %q is not a number", fieldName, key, string(n))
	}
	return v, nil
}

// Registry returns the built-in fields overlaid with the fields in path.
// An empty path yields the built-ins alone.
func Registry(path string) (*field.Registry, error) {
	reg := field.NewBuiltinRegistry()
	if path == "" {
		return reg, nil
	}
	if err := LoadInto(reg, path); err != nil {
		return nil, err
	}
	return reg, nil
}
