// Package cmd - parse, step and convert commands
package cmd

import (
	"github.com/spf13/cobra"

	"quantity-editor/core/field"
	"quantity-editor/core/output"
	"quantity-editor/core/types"
	"quantity-editor/internal/errors"
)

var (
	parseUnit string
	stepDown  bool
	stepTimes int
)

var parseCmd = &cobra.Command{
	Use:   "parse <text>...",
	Short: "Classify text the way the field's input does",
	Long: `Run each argument through the field's text handler and report whether it
is empty, partial, complete or invalid, with its canonical form and base value.

Bare numbers take the field's default unit, or --unit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var stepCmd = &cobra.Command{
	Use:   "step <value>",
	Short: "Press the increment or decrement button",
	Long: `Step a value up (or down with --down) one or more times. Stepping stops at
the first press the field rejects.`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

var convertCmd = &cobra.Command{
	Use:   "convert <value> <unit>",
	Short: "Switch a value to another unit of the field",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	parseCmd.Flags().StringVarP(&parseUnit, "unit", "u", "", "unit assumed for bare numbers")
	stepCmd.Flags().BoolVarP(&stepDown, "down", "d", false, "decrement instead of increment")
	stepCmd.Flags().IntVarP(&stepTimes, "times", "n", 1, "number of presses")
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := activeField()
	if err != nil {
		return err
	}

	unit := f.DefaultUnitIndex()
	if parseUnit != "" {
		if unit, err = f.UnitIndex(parseUnit); err != nil {
			return err
		}
	}

	report := &output.Report{Field: f.Name()}
	for _, text := range args {
		report.Entries = append(report.Entries, output.TextEntry(f, text, f.OnTextChangedIn(text, unit)))
	}
	return render(cmd, report)
}

func runStep(cmd *cobra.Command, args []string) error {
	if stepTimes < 1 {
		return errors.Input("--times must be at least 1")
	}

	f, err := activeField()
	if err != nil {
		return err
	}
	q, err := quantityArg(f, args[0])
	if err != nil {
		return err
	}

	dir := types.Increment
	if stepDown {
		dir = types.Decrement
	}

	report := &output.Report{Field: f.Name()}
	for i := 0; i < stepTimes; i++ {
		var res types.StepResult
		if dir == types.Increment {
			res = f.OnIncrement(q)
		} else {
			res = f.OnDecrement(q)
		}
		report.Entries = append(report.Entries, output.StepEntry(f, dir, q, res))
		if res.Rejected() {
			break
		}
		q = res.Quantity
	}
	return render(cmd, report)
}

func runConvert(cmd *cobra.Command, args []string) error {
	f, err := activeField()
	if err != nil {
		return err
	}
	q, err := quantityArg(f, args[0])
	if err != nil {
		return err
	}

	// an unknown symbol goes through as NoUnit and is reported as an
	// unsupported conversion
	target, err := f.UnitIndex(args[1])
	if err != nil {
		target = types.NoUnit
	}

	to, err := f.OnUnitSwitch(q, target)
	return render(cmd, &output.Report{
		Field:   f.Name(),
		Entries: []output.Entry{output.UnitEntry(f, q, to, err)},
	})
}

// quantityArg accepts complete text, including values outside the field's
// bounds so they can be stepped back in
func quantityArg(f *field.Field, text string) (types.Quantity, error) {
	res := f.OnTextChanged(text)
	if res.Quantity != nil {
		return *res.Quantity, nil
	}
	if res.Reason != types.KindNone {
		return types.Quantity{}, errors.Wrapf(errors.TypeInput, res.Reason, "%q", text)
	}
	return types.Quantity{}, errors.Newf(errors.TypeInput, "%q is %s", text, res.State)
}
