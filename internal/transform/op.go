package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Op is a named point operation with its numeric arguments.
//
// Argument order per operation:
//   - invert: none
//   - threshold: t
//   - hue: degrees
//   - saturation: amount
//   - value: amount
//   - contrast: factor
//   - multiply: r, g, b
type Op struct {
	Name string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

type opSpec struct {
	arity int
	run   func(b *raster.Buffer, args []float64) error
}

var registry = map[string]opSpec{
	"invert": {0, func(b *raster.Buffer, _ []float64) error {
		return Invert(b)
	}},
	"threshold": {1, func(b *raster.Buffer, args []float64) error {
		t := args[0]
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: threshold %v must be an integer", raster.ErrParameterOutOfRange, t)
		}
		if t < 0 || t > 255 {
			return fmt.Errorf("%w: threshold %v not in 0-255", raster.ErrParameterOutOfRange, t)
		}
		return Threshold(b, int(t))
	}},
	"hue": {1, func(b *raster.Buffer, args []float64) error {
		return Hue(b, args[0])
	}},
	"saturation": {1, func(b *raster.Buffer, args []float64) error {
		return Saturation(b, args[0])
	}},
	"value": {1, func(b *raster.Buffer, args []float64) error {
		return Value(b, args[0])
	}},
	"contrast": {1, func(b *raster.Buffer, args []float64) error {
		return Contrast(b, args[0])
	}},
	"multiply": {3, func(b *raster.Buffer, args []float64) error {
		return Multiply(b, args[0], args[1], args[2])
	}},
}

// Ops returns the names of all supported operations in sorted order.
func Ops() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseOp builds an Op after checking the name and argument count.
func ParseOp(name string, args []float64) (Op, error) {
	op := Op{Name: name, Args: args}
	if err := op.check(); err != nil {
		return Op{}, err
	}
	return op, nil
}

func (o Op) check() error {
	spec, ok := registry[o.Name]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", raster.ErrParameterOutOfRange, o.Name)
	}
	if len(o.Args) != spec.arity {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d",
			raster.ErrParameterOutOfRange, o.Name, spec.arity, len(o.Args))
	}
	return nil
}

// Apply runs the operation on b in place.
func (o Op) Apply(b *raster.Buffer) error {
	if err := o.check(); err != nil {
		return err
	}
	return registry[o.Name].run(b, o.Args)
}

// String formats the operation as name(arg, ...).
func (o Op) String() string {
	s := o.Name + "("
	for i, a := range o.Args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g", a)
	}
	return s + ")"
}

// Pipeline is an ordered list of operations.
type Pipeline []Op

// Run applies every operation in order to a copy of src and returns the
// copy. src is never modified. If a step fails, Run reports which one and
// returns no raster.
func (p Pipeline) Run(src *raster.Buffer) (*raster.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	for i, op := range p {
		if err := op.check(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	out := src.Clone()
	for i, op := range p {
		if err := op.Apply(out); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, op, err)
		}
	}
	return out, nil
}
