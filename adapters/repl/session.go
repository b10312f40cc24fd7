// Package repl is an interactive quantity field on the terminal.
//
// Typed text goes through the field's text handler, "+" and "-" press the
// step buttons and ":unit" flips the unit selector. The session keeps the
// last complete quantity the way a widget keeps its displayed value.
package repl

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"quantity-editor/core/field"
	"quantity-editor/core/format"
	"quantity-editor/core/types"
	"quantity-editor/core/ui"
	"quantity-editor/core/validation"
)

var commands = []string{":help", ":unit", ":field", ":fields", ":show", ":clear"}

// Session holds one field and its current value
type Session struct {
	reg   *field.Registry
	field *field.Field
	unit  int
	value *types.Quantity
	ui    *ui.Writer
}

// NewSession starts on the named field with nothing entered
func NewSession(reg *field.Registry, name string, w *ui.Writer) (*Session, error) {
	s := &Session{reg: reg, ui: w}
	if err := s.use(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Field returns the active field
func (s *Session) Field() *field.Field {
	return s.field
}

// Value returns the current quantity, if one has been entered
func (s *Session) Value() (types.Quantity, bool) {
	if s.value == nil {
		return types.Quantity{}, false
	}
	return *s.value, true
}

// Prompt shows the field and the selected unit
func (s *Session) Prompt() string {
	return s.field.Name() + " [" + s.field.Units().Unit(s.unit).Symbol + "]> "
}

// Handle runs one input line and reports whether the session is over
func (s *Session) Handle(line string) bool {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
	case input == "exit" || input == "quit":
		return true
	case input == "+":
		s.step(types.Increment)
	case input == "-":
		s.step(types.Decrement)
	case strings.HasPrefix(input, ":"):
		s.command(input)
	default:
		s.text(input)
	}
	return false
}

// Complete suggests commands, unit symbols and field names
func (s *Session) Complete(line string) []string {
	var candidates []string
	switch {
	case strings.HasPrefix(line, ":unit "):
		for _, sym := range s.field.Units().Symbols() {
			candidates = append(candidates, ":unit "+sym)
		}
	case strings.HasPrefix(line, ":field "):
		for _, name := range s.reg.Names() {
			candidates = append(candidates, ":field "+name)
		}
	default:
		candidates = commands
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Session) text(input string) {
	res := s.field.OnTextChangedIn(input, s.unit)
	switch res.State {
	case types.StateEmpty, types.StatePartial:
		s.ui.Info("incomplete: %q", input)
	case types.StateComplete:
		s.set(*res.Quantity)
		s.ui.Success("%s", s.describe(*res.Quantity))
	default:
		if res.Quantity == nil {
			s.ui.Error("%q: %s", input, res.Reason.Error())
			return
		}
		s.set(*res.Quantity)
		s.ui.Warning("%s: %s", s.describe(*res.Quantity), res.Reason.Error())
	}
}

// step starts from zero in the selected unit when nothing was entered
func (s *Session) step(dir types.Direction) {
	from := types.Quantity{Value: decimal.Zero, UnitIndex: s.unit}
	if s.value != nil {
		from = *s.value
	}

	var res types.StepResult
	if dir == types.Increment {
		res = s.field.OnIncrement(from)
	} else {
		res = s.field.OnDecrement(from)
	}

	if res.Rejected() {
		s.ui.Warning("%s: %s", s.describe(from), res.Message.Error())
		return
	}
	s.set(res.Quantity)
	s.ui.Success("%s", s.describe(res.Quantity))
	if res.UnitChanged {
		cfg := s.field.Units()
		s.ui.Debug("unit changed: %s -> %s", cfg.Unit(from.UnitIndex).Symbol, cfg.Unit(res.Quantity.UnitIndex).Symbol)
	}
}

func (s *Session) command(input string) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		s.help()
	case ":unit":
		s.switchUnit(arg)
	case ":field":
		if arg == "" {
			s.ui.Error("usage: :field <name>")
			return
		}
		if err := s.use(arg); err != nil {
			s.ui.Error("%v", err)
			return
		}
		s.ui.Info("field %s", arg)
	case ":fields":
		for _, n := range s.reg.Names() {
			marker := " "
			if n == s.field.Name() {
				marker = "*"
			}
			s.ui.Println("%s %s", marker, n)
		}
	case ":show":
		if s.value == nil {
			s.ui.Info("no value")
			return
		}
		s.ui.Println("%s", s.describe(*s.value))
	case ":clear":
		s.value = nil
		s.ui.Info("cleared")
	default:
		s.ui.Error("unknown command: %s (type :help for commands)", name)
	}
}

func (s *Session) switchUnit(symbol string) {
	if symbol == "" {
		s.ui.Error("usage: :unit <symbol>")
		return
	}
	idx, err := s.field.UnitIndex(symbol)
	if err != nil {
		s.ui.Error("%s: %s", symbol, types.UnitNotRecognized.Error())
		return
	}

	if s.value == nil {
		s.unit = idx
		return
	}

	q, err := s.field.OnUnitSwitch(*s.value, idx)
	if err != nil {
		s.ui.Error("%v", err)
		return
	}
	s.set(q)
	s.ui.Success("%s", s.describe(q))
}

func (s *Session) use(name string) error {
	f, err := s.reg.Get(name)
	if err != nil {
		return err
	}
	s.field = f
	s.unit = f.DefaultUnitIndex()
	s.value = nil
	return nil
}

func (s *Session) set(q types.Quantity) {
	s.value = &q
	s.unit = q.UnitIndex
}

// describe renders "2 GiB (2048 MiB)", or just the value in the base unit
func (s *Session) describe(q types.Quantity) string {
	cfg := s.field.Units()
	text := format.Format(q, cfg)
	if q.UnitIndex == cfg.BaseIndex() {
		return text
	}
	base := validation.ToBase(q, cfg).String() + " " + cfg.Unit(cfg.BaseIndex()).Symbol
	return text + " (" + base + ")"
}

func (s *Session) help() {
	s.ui.Println("Commands:")
	s.ui.Println("  <value> [unit]   Type a quantity, e.g. 512, 1.5 GiB, 2Gi")
	s.ui.Println("  +, -             Step up or down")
	s.ui.Println("  :unit <symbol>   Switch the unit, converting the value")
	s.ui.Println("  :field <name>    Switch to another field")
	s.ui.Println("  :fields          List fields")
	s.ui.Println("  :show            Show the current value")
	s.ui.Println("  :clear           Forget the current value")
	s.ui.Println("  exit, quit       Leave")
}
