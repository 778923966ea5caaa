// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package seqinfer

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/wdamron/seqinfer/internal/util"
	"github.com/wdamron/seqinfer/ops"
	"github.com/wdamron/seqinfer/types"
)

// DefaultMaxIterations bounds the number of passes over a region, and the number of iterations
// over each loop body within a pass.
const DefaultMaxIterations = 64

// Context is a reusable context for refining the types of a region until a fixpoint is reached.
//
// A context cannot be used concurrently.
type Context struct {
	defaultDType  dtypes.DType
	maxIterations int
	logger        *slog.Logger

	orders      map[*ops.Region][]int
	failed      map[ops.Op]*Error
	diagnostics Errors
	passes      int
}

// Option configures a Context.
type Option func(*Context)

// WithDefaultDType sets the element type of empty sequences without a dtype attribute.
func WithDefaultDType(dtype dtypes.DType) Option {
	return func(c *Context) { c.defaultDType = dtype }
}

// WithMaxIterations sets the iteration limit. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithLogger sets the logger which receives debug records for each refined value and each pass.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Create a new inference context. A context may be reused for inference.
func NewContext(opts ...Option) *Context {
	c := &Context{
		defaultDType:  DefaultDType,
		maxIterations: DefaultMaxIterations,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) reset() {
	c.orders = make(map[*ops.Region][]int)
	c.failed = make(map[ops.Op]*Error)
	c.diagnostics, c.passes = nil, 0
}

// Get the failures reported by the most recent inference, in operation order.
func (c *Context) Diagnostics() Errors { return c.diagnostics }

// Get the number of passes over the root region made by the most recent inference.
func (c *Context) Passes() int { return c.passes }

// Infer refines the types of all values within r, including values within nested loop bodies,
// until no refinement rule changes any type.
//
// Failures are isolated to the failing operation: its result keeps its previous type, and
// inference continues for all other operations. If any operation failed, the returned error is
// an Errors list (also available from Diagnostics). Structural errors in r are returned as-is,
// before any type is changed.
func (c *Context) Infer(r *ops.Region) error {
	if err := ops.Validate(r); err != nil {
		return err
	}
	c.reset()
	for {
		if c.passes >= c.maxIterations {
			c.diagnostics = append(c.diagnostics, newError(NoFixpoint,
				"no fixpoint after "+strconv.Itoa(c.passes)+" passes"))
			break
		}
		c.passes++
		changed := c.inferRegion(r)
		c.logger.Debug("inference pass", "pass", c.passes, "changed", changed)
		if !changed {
			break
		}
	}
	ops.WalkOps(r, func(op ops.Op) {
		if err, ok := c.failed[op]; ok {
			c.diagnostics = append(c.diagnostics, err)
		}
	})
	if len(c.diagnostics) > 0 {
		return c.diagnostics
	}
	return nil
}

func (c *Context) fail(err *Error) {
	c.failed[err.Op] = err
	c.logger.Debug("refinement failed", "op", err.Op.OpName(), "kind", err.Kind.String(), "message", err.Message)
}

func (c *Context) commit(op ops.Op, v *ops.Value) {
	c.logger.Debug("refined", "op", op.OpName(), "value", v.Name, "type", types.TypeString(v.Type()))
}

func (c *Context) inferRegion(r *ops.Region) bool {
	changed := false
	for _, i := range c.order(r) {
		switch op := r.Ops[i].(type) {
		case ops.SequenceOp:
			refined, err := Refine(op, c.defaultDType)
			if err != nil {
				c.fail(err.(*Error))
				continue
			}
			delete(c.failed, op)
			if refined {
				c.commit(op, op.Result())
				changed = true
			}

		case *ops.Loop:
			if c.inferLoop(op) {
				changed = true
			}

		case *ops.External:
			// Result types are declared by the host.

		default:
			panic("unknown operation type: " + op.OpName())
		}
	}
	return changed
}

// inferLoop seeds the loop-carried arguments with the initial values, then re-runs the body and
// joins the yielded types into the arguments until neither changes.
func (c *Context) inferLoop(loop *ops.Loop) bool {
	body := loop.Body
	// Every join succeeds before any argument is rewritten.
	joined := make([]types.Type, len(body.Args))
	carry := func(from []*ops.Value) (bool, error) {
		for i, arg := range body.Args {
			t, err := types.JoinTypes(arg.Type(), from[i].Type())
			if err != nil {
				return false, &Error{Kind: carryErrorKind(arg.Type(), from[i].Type()), Op: loop,
					Message: "loop-carried value %" + arg.Name + ": " + err.Error()}
			}
			joined[i] = t
		}
		carried := false
		for i, arg := range body.Args {
			if !types.Equal(arg.Type(), joined[i]) {
				arg.SetType(joined[i])
				c.commit(loop, arg)
				carried = true
			}
		}
		return carried, nil
	}

	seeded, err := carry(loop.Inits)
	if err != nil {
		c.fail(err.(*Error))
		return false
	}
	changed := seeded
	delete(c.failed, loop)

	for iter := 0; ; iter++ {
		if iter >= c.maxIterations {
			c.fail(&Error{Kind: NoFixpoint, Op: loop,
				Message: "no fixpoint after " + strconv.Itoa(iter) + " iterations of the loop body"})
			break
		}
		bodyChanged := c.inferRegion(body)
		carried, err := carry(body.Yield)
		if err != nil {
			c.fail(err.(*Error))
			return changed || bodyChanged
		}
		if bodyChanged || carried {
			changed = true
		}
		if !carried {
			break
		}
	}

	for i, out := range loop.Outs {
		if t := body.Args[i].Type(); !types.Equal(out.Type(), t) {
			out.SetType(t)
			c.commit(loop, out)
			changed = true
		}
	}
	return changed
}

// carryErrorKind distinguishes element type mismatches from values of different kinds.
func carryErrorKind(a, b types.Type) ErrorKind {
	elemType := func(t types.Type) (dtypes.DType, string) {
		switch t := t.(type) {
		case *types.Tensor:
			return t.DType, t.TypeName()
		case *types.Sequence:
			return t.Elem.DType, t.TypeName()
		}
		return dtypes.InvalidDType, ""
	}
	ad, an := elemType(a)
	bd, bn := elemType(b)
	if an == bn && ad != bd {
		return DTypeMismatch
	}
	return InvalidOperand
}

// order returns the indexes of r's operations, ordered so that each operation follows the
// producers of the values it uses (including uses within nested regions).
func (c *Context) order(r *ops.Region) []int {
	if order, ok := c.orders[r]; ok {
		return order
	}
	producers := make(map[*ops.Value]int, len(r.Ops))
	for i, op := range r.Ops {
		for _, res := range op.Results() {
			producers[res] = i
		}
	}
	g := util.NewGraph(len(r.Ops))
	for i, op := range r.Ops {
		forEachUse(op, func(v *ops.Value) {
			if p, ok := producers[v]; ok && p != i {
				g.AddEdge(p, i)
			}
		})
	}
	order := g.TopoOrder()
	c.orders[r] = order
	return order
}

func forEachUse(op ops.Op, f func(*ops.Value)) {
	for _, v := range op.Operands() {
		f(v)
	}
	if loop, ok := op.(*ops.Loop); ok {
		for _, v := range loop.Body.Yield {
			f(v)
		}
		for _, inner := range loop.Body.Ops {
			forEachUse(inner, f)
		}
	}
}
