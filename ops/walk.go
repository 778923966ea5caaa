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

// WalkOps calls f for each operation in r, in order, descending into nested regions after
// visiting the operation which owns them.
func WalkOps(r *Region, f func(Op)) {
	if r == nil {
		return
	}
	for _, op := range r.Ops {
		walkOp(op, f)
	}
}

func walkOp(op Op, f func(Op)) {
	switch op := op.(type) {
	case *SequenceEmpty, *SequenceConstruct, *SequenceInsert, *SequenceErase, *SequenceAt, *SequenceLength, *External:
		f(op)

	case *Loop:
		f(op)
		WalkOps(op.Body, f)

	case nil:

	default:
		panic("unknown operation type: " + op.OpName())
	}
}

// WalkValues calls f for each value defined within r (arguments and results), including values
// defined within nested regions.
func WalkValues(r *Region, f func(*Value)) {
	if r == nil {
		return
	}
	for _, arg := range r.Args {
		f(arg)
	}
	for _, op := range r.Ops {
		for _, res := range op.Results() {
			f(res)
		}
		if loop, ok := op.(*Loop); ok {
			WalkValues(loop.Body, f)
		}
	}
}
