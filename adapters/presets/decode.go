package presets

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"quantity-editor/internal/errors"
)

// Format is a preset file syntax
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the syntax from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.NotSupported("preset file extension of " + path)
}

// Decode reads field definitions; filename is used in diagnostics
func Decode(src []byte, filename string, format Format) (*File, error) {
	var out File

	switch format {
	case FormatHCL:
		if err := decodeHCL(src, filename, &out); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&out); err != nil {
			return nil, errors.Parsing("decode "+filename, err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(src), &out); err != nil {
			return nil, errors.Parsing("decode "+filename, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			return nil, errors.Parsing("decode "+filename, err)
		}
	default:
		return nil, errors.NotSupported("preset format " + string(format))
	}

	return &out, nil
}

func decodeHCL(src []byte, filename string, out *File) error {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return errors.Parsing("parse "+filename, diagError(diags))
	}

	if diags := gohcl.DecodeBody(file.Body, nil, out); diags.HasErrors() {
		return errors.Parsing("decode "+filename, diagError(diags))
	}
	return nil
}

// diagError keeps only error diagnostics, with their source line
func diagError(diags hcl.Diagnostics) error {
	var errs hcl.Diagnostics
	for _, diag := range diags {
		if diag.Severity == hcl.DiagError {
			errs = append(errs, diag)
		}
	}
	return errs
}
