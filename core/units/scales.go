package units

import (
	"sort"

	"github.com/shopspring/decimal"

	"quantity-editor/internal/errors"
)

// Built-in scale names
const (
	ScaleMemory      = "memory"
	ScaleMemoryBytes = "memory-bytes"
	ScaleCPU         = "cpu"
)

var (
	kibi = decimal.NewFromInt(1024)
	mebi = kibi.Mul(kibi)
	gibi = mebi.Mul(kibi)
	tebi = gibi.Mul(kibi)
)

// Memory is MiB, GiB, TiB with MiB as base unit
func Memory() *UnitConfig {
	return builtins[ScaleMemory]
}

// MemoryBytes is B, KiB, MiB, GiB, TiB with the byte as base unit
func MemoryBytes() *UnitConfig {
	return builtins[ScaleMemoryBytes]
}

// CPU is millicores and whole vCPUs with the millicore as base unit
func CPU() *UnitConfig {
	return builtins[ScaleCPU]
}

// ScaleByName returns a built-in scale
func ScaleByName(name string) (*UnitConfig, error) {
	cfg, ok := builtins[name]
	if !ok {
		return nil, errors.NotFound("scale", name)
	}
	return cfg, nil
}

// ScaleNames lists the built-in scales
func ScaleNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtins = map[string]*UnitConfig{
	ScaleMemory: mustScale(ScaleMemory,
		unit("MiB", "64", "1024", decimal.NewFromInt(1), "M", "Mi"),
		unit("GiB", "0.25", "1024", kibi, "G", "Gi"),
		unit("TiB", "0.25", "1024", mebi, "T", "Ti"),
	),
	ScaleMemoryBytes: mustScale(ScaleMemoryBytes,
		unit("B", "1", "1024", decimal.NewFromInt(1), "byte", "bytes"),
		unit("KiB", "1", "1024", kibi, "K", "Ki"),
		unit("MiB", "64", "1024", mebi, "M", "Mi"),
		unit("GiB", "0.25", "1024", gibi, "G", "Gi"),
		unit("TiB", "0.25", "1024", tebi, "T", "Ti"),
	),
	ScaleCPU: mustScale(ScaleCPU,
		unit("m", "100", "1000", decimal.NewFromInt(1), "millicores", "mcpu"),
		unit("vCPU", "0.25", "1000", decimal.NewFromInt(1000), "cpu", "cpus", "core", "cores", "vcpus"),
	),
}

func unit(symbol, step, chunk string, factor decimal.Decimal, aliases ...string) UnitDefinition {
	return UnitDefinition{
		Symbol:    symbol,
		Aliases:   aliases,
		StepSize:  decimal.RequireFromString(step),
		ChunkSize: decimal.RequireFromString(chunk),
		Factor:    factor,
	}
}

func mustScale(name string, defs ...UnitDefinition) *UnitConfig {
	cfg, err := NewUnitConfig(name, defs...)
	if err != nil {
		panic(err)
	}
	return cfg
}
