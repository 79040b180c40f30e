package config

import (
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext is the scope available to expressions in a config file:
// the constants pi and e, and a small set of numeric and list functions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi": cty.NumberFloatVal(math.Pi),
			"e":  cty.NumberFloatVal(math.E),
		},
		Functions: map[string]function.Function{
			"abs":     stdlib.AbsoluteFunc,
			"ceil":    stdlib.CeilFunc,
			"concat":  stdlib.ConcatFunc,
			"floor":   stdlib.FloorFunc,
			"flatten": stdlib.FlattenFunc,
			"length":  stdlib.LengthFunc,
			"log":     stdlib.LogFunc,
			"max":     stdlib.MaxFunc,
			"min":     stdlib.MinFunc,
			"pow":     stdlib.PowFunc,
			"range":   stdlib.RangeFunc,
			"signum":  stdlib.SignumFunc,
		},
	}
}
