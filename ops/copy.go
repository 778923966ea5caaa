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

package ops

// CopyRegion returns a deep copy of r. Values defined within r are copied along with their
// current types; values used by r but defined outside of it are shared with the original.
func CopyRegion(r *Region) *Region {
	c := copier{values: make(map[*Value]*Value)}
	return c.region(r)
}

type copier struct {
	values map[*Value]*Value
}

func (c *copier) def(v *Value) *Value {
	if v == nil {
		return nil
	}
	next := &Value{Name: v.Name, declared: v.declared, inferred: v.inferred}
	c.values[v] = next
	return next
}

func (c *copier) use(v *Value) *Value {
	if v == nil {
		return nil
	}
	if next, ok := c.values[v]; ok {
		return next
	}
	return v
}

func (c *copier) defs(vs []*Value) []*Value {
	if vs == nil {
		return nil
	}
	next := make([]*Value, len(vs))
	for i, v := range vs {
		next[i] = c.def(v)
	}
	return next
}

func (c *copier) uses(vs []*Value) []*Value {
	if vs == nil {
		return nil
	}
	next := make([]*Value, len(vs))
	for i, v := range vs {
		next[i] = c.use(v)
	}
	return next
}

func (c *copier) region(r *Region) *Region {
	if r == nil {
		return nil
	}
	next := &Region{Args: c.defs(r.Args), Ops: make([]Op, 0, len(r.Ops))}
	// Results are defined before operands are remapped, so that uses which precede their
	// definition in r are remapped as well.
	for _, op := range r.Ops {
		c.defs(op.Results())
	}
	for _, op := range r.Ops {
		next.Ops = append(next.Ops, c.op(op))
	}
	next.Yield = c.uses(r.Yield)
	return next
}

func (c *copier) op(op Op) Op {
	switch op := op.(type) {
	case *SequenceEmpty:
		var dtype *int64
		if op.DType != nil {
			code := *op.DType
			dtype = &code
		}
		return &SequenceEmpty{dtype, c.use(op.Out)}

	case *SequenceConstruct:
		return &SequenceConstruct{c.uses(op.Inputs), c.use(op.Out)}

	case *SequenceInsert:
		return &SequenceInsert{c.use(op.Seq), c.use(op.Tensor), c.use(op.Position), c.use(op.Out)}

	case *SequenceErase:
		return &SequenceErase{c.use(op.Seq), c.use(op.Position), c.use(op.Out)}

	case *SequenceAt:
		return &SequenceAt{c.use(op.Seq), c.use(op.Position), c.use(op.Out)}

	case *SequenceLength:
		return &SequenceLength{c.use(op.Seq), c.use(op.Out)}

	case *External:
		return &External{op.Name, c.uses(op.Ins), c.uses(op.Outs)}

	case *Loop:
		inits := c.uses(op.Inits)
		outs := c.uses(op.Outs)
		return &Loop{inits, c.region(op.Body), outs}

	default:
		panic("unknown operation type: " + op.OpName())
	}
}
