package presets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Number is a decimal literal kept as text so no format rounds it through
// float64 on the way in. Files may write it quoted or bare.
type Number string

// UnmarshalJSON accepts 1048576 and "1048576"
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	*n = Number(num.String())
	return nil
}

// UnmarshalYAML keeps the scalar text as written
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	*n = Number(node.Value)
	return nil
}

// UnmarshalTOML accepts TOML integers, floats and strings
func (n *Number) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		*n = Number(val)
	case int64:
		*n = Number(strconv.FormatInt(val, 10))
	case float64:
		*n = Number(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("expected a number, got %T", v)
	}
	return nil
}
