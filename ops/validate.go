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

import (
	"errors"
	"strconv"

	"github.com/hashicorp/go-set/v3"
)

// Validate checks the structure of r: every value is defined exactly once, every operand is
// defined within the same region or an enclosing region, required operands and results are
// present, and loops carry matching numbers of values.
//
// Operations within a region may appear in any order; inference orders them by their uses.
func Validate(r *Region) error {
	v := validator{defined: set.New[*Value](64)}
	return v.region(r, nil)
}

type validator struct {
	defined *set.Set[*Value]
}

func (v *validator) define(scope *set.Set[*Value], val *Value) error {
	if val == nil {
		return errors.New("missing value definition")
	}
	if !v.defined.Insert(val) {
		return errors.New("value %" + val.Name + " is defined more than once")
	}
	scope.Insert(val)
	return nil
}

func (v *validator) region(r *Region, enclosing []*set.Set[*Value]) error {
	if r == nil {
		return errors.New("missing region")
	}
	scope := set.New[*Value](len(r.Args) + len(r.Ops))
	for _, arg := range r.Args {
		if err := v.define(scope, arg); err != nil {
			return err
		}
	}
	for _, op := range r.Ops {
		if op == nil {
			return errors.New("missing operation")
		}
		for _, res := range op.Results() {
			if err := v.define(scope, res); err != nil {
				return errors.New(op.OpName() + ": " + err.Error())
			}
		}
	}
	scopes := append(enclosing[:len(enclosing):len(enclosing)], scope)
	inScope := func(val *Value) bool {
		for i := len(scopes) - 1; i >= 0; i-- {
			if scopes[i].Contains(val) {
				return true
			}
		}
		return false
	}
	for _, op := range r.Ops {
		if err := requiredOperands(op); err != nil {
			return errors.New(op.OpName() + ": " + err.Error())
		}
		for _, operand := range op.Operands() {
			if !inScope(operand) {
				return errors.New(op.OpName() + ": operand %" + operand.Name + " is not defined in scope")
			}
		}
		if loop, ok := op.(*Loop); ok {
			if err := v.region(loop.Body, scopes); err != nil {
				return errors.New("Loop: " + err.Error())
			}
			n := loop.Carried()
			if len(loop.Body.Args) != n || len(loop.Body.Yield) != n || len(loop.Outs) != n {
				return errors.New("Loop: mismatched loop-carried values: " + strconv.Itoa(n) + " initial, " +
					strconv.Itoa(len(loop.Body.Args)) + " arguments, " +
					strconv.Itoa(len(loop.Body.Yield)) + " yielded, " +
					strconv.Itoa(len(loop.Outs)) + " results")
			}
		}
	}
	for _, y := range r.Yield {
		if y == nil || !inScope(y) {
			return errors.New("yielded value is not defined in scope")
		}
	}
	return nil
}

func requiredOperands(op Op) error {
	missing := func(name string) error { return errors.New("missing " + name + " operand") }
	switch op := op.(type) {
	case *SequenceConstruct:
		if len(op.Inputs) == 0 {
			return errors.New("at least one input tensor is required")
		}
		for _, in := range op.Inputs {
			if in == nil {
				return missing("input")
			}
		}
	case *SequenceInsert:
		if op.Seq == nil {
			return missing("sequence")
		}
		if op.Tensor == nil {
			return missing("tensor")
		}
	case *SequenceErase:
		if op.Seq == nil {
			return missing("sequence")
		}
	case *SequenceAt:
		if op.Seq == nil {
			return missing("sequence")
		}
		if op.Position == nil {
			return missing("position")
		}
	case *SequenceLength:
		if op.Seq == nil {
			return missing("sequence")
		}
	case *Loop:
		for _, in := range op.Inits {
			if in == nil {
				return missing("initial")
			}
		}
	case *External:
		for _, in := range op.Ins {
			if in == nil {
				return missing("input")
			}
		}
	}
	return nil
}
