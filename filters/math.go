package filters

import (
	"math"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

// numArith applies intOp when both input and the first argument coerce to
// integer, otherwise floatOp — the "numeric dispatch" rule §4.5 specifies
// for plus/minus/times/divided_by/modulo.
func numArith(name string, input *value.Value, args []render.FilterArg, intOp func(a, b int64) (int64, error), floatOp func(a, b float64) (float64, error)) (*value.Value, error) {
	other, ok := arg(args, 0)
	if !ok {
		return nil, fail(name, input, args, "expects one numeric argument")
	}
	if ai, bi, ok := bothIntCoerce(input, other); ok {
		r, err := intOp(ai, bi)
		if err != nil {
			return nil, ferr(name, input, args, err)
		}
		return value.Integer(r), nil
	}
	af, aok := input.ToFloat()
	bf, bok := other.ToFloat()
	if !aok || !bok {
		return nil, fail(name, input, args, "operands do not coerce to a number")
	}
	r, err := floatOp(af, bf)
	if err != nil {
		return nil, ferr(name, input, args, err)
	}
	return value.Float(r), nil
}

func plusFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return numArith("plus", input, args,
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil })
}

func minusFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return numArith("minus", input, args,
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
}

func timesFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return numArith("times", input, args,
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
}

func dividedByFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return numArith("divided_by", input, args,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			return a / b, nil
		},
		func(a, b float64) (float64, error) { return a / b, nil })
}

func moduloFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return numArith("modulo", input, args,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			return a % b, nil
		},
		func(a, b float64) (float64, error) { return math.Mod(a, b), nil })
}

var errDivideByZero = divideByZeroError{}

type divideByZeroError struct{}

func (divideByZeroError) Error() string { return "divide by zero" }

func absFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	if i, ok := input.ToInteger(); ok {
		if i < 0 {
			i = -i
		}
		return value.Integer(i), nil
	}
	f, ok := input.ToFloat()
	if !ok {
		return nil, fail("abs", input, args, "input does not coerce to a number")
	}
	return value.Float(math.Abs(f)), nil
}

func atLeastFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	other, ok := arg(args, 0)
	if !ok {
		return nil, fail("at_least", input, args, "expects one numeric argument")
	}
	if ai, bi, ok := bothIntCoerce(input, other); ok {
		if ai < bi {
			ai = bi
		}
		return value.Integer(ai), nil
	}
	af, _ := input.ToFloat()
	bf, _ := other.ToFloat()
	if af < bf {
		af = bf
	}
	return value.Float(af), nil
}

func atMostFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	other, ok := arg(args, 0)
	if !ok {
		return nil, fail("at_most", input, args, "expects one numeric argument")
	}
	if ai, bi, ok := bothIntCoerce(input, other); ok {
		if ai > bi {
			ai = bi
		}
		return value.Integer(ai), nil
	}
	af, _ := input.ToFloat()
	bf, _ := other.ToFloat()
	if af > bf {
		af = bf
	}
	return value.Float(af), nil
}

func roundFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	places := argInt(args, 0, 0)
	f, ok := input.ToFloat()
	if !ok {
		return nil, fail("round", input, args, "input does not coerce to a number")
	}
	mult := math.Pow(10, float64(places))
	r := math.Round(f*mult) / mult
	if places <= 0 {
		return value.Integer(int64(r)), nil
	}
	return value.Float(r), nil
}

func ceilFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	f, ok := input.ToFloat()
	if !ok {
		return nil, fail("ceil", input, args, "input does not coerce to a number")
	}
	return value.Integer(int64(math.Ceil(f))), nil
}

func floorFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	f, ok := input.ToFloat()
	if !ok {
		return nil, fail("floor", input, args, "input does not coerce to a number")
	}
	return value.Integer(int64(math.Floor(f))), nil
}
