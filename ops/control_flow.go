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

// Region is an ordered list of operations with arguments and yielded values. A region may
// use values defined within enclosing regions.
type Region struct {
	Args  []*Value
	Ops   []Op
	Yield []*Value
}

// NewRegion returns a region with the given arguments.
func NewRegion(args ...*Value) *Region {
	return &Region{Args: args}
}

// Append operations to the region.
func (r *Region) Add(ops ...Op) {
	r.Ops = append(r.Ops, ops...)
}

// Set the values yielded by the region.
func (r *Region) SetYield(values ...*Value) {
	r.Yield = values
}

// Loop runs Body repeatedly. Loop-carried values flow from Inits into the body arguments, from
// the body's yielded values back into the arguments of the next iteration, and finally into Outs.
//
// Inits, Body.Args, Body.Yield and Outs must all have the same length.
type Loop struct {
	Inits []*Value
	Body  *Region
	Outs  []*Value
}

// "Loop"
func (op *Loop) OpName() string     { return "Loop" }
func (op *Loop) Operands() []*Value { return op.Inits }
func (op *Loop) Results() []*Value  { return op.Outs }

// Carried returns the number of loop-carried values.
func (op *Loop) Carried() int { return len(op.Inits) }
