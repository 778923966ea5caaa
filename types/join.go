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

package types

import (
	"errors"
)

// Join returns the most specific tensor type which describes both a and b:
//
//   - if either shape is unranked, or the ranks differ, the result is unranked
//   - otherwise each dimension is static only if it is static and equal in both a and b
//
// Join never inspects or modifies element types; a and b must have equal element types.
// The result is never more specific than either argument, and may be a or b.
func Join(a, b *Tensor) *Tensor {
	if !a.Shape.ranked {
		return a
	}
	if !b.Shape.ranked {
		return b
	}
	rank := a.Shape.dims.Len()
	if rank != b.Shape.dims.Len() {
		return NewUnrankedTensor(a.DType)
	}
	var lb DimListBuilder
	for i := 0; i < rank; i++ {
		ad, bd := a.Shape.dims.Get(i), b.Shape.dims.Get(i)
		if ad == bd {
			if lb.b != nil {
				lb.Append(ad)
			}
			continue
		}
		if lb.b == nil {
			lb = NewDimListBuilder()
			for j := 0; j < i; j++ {
				lb.Append(a.Shape.dims.Get(j))
			}
		}
		lb.Append(DynamicDim)
	}
	if lb.b == nil {
		return a
	}
	return &Tensor{DType: a.DType, Shape: RankedShapeFromList(lb.Build())}
}

// Subsumes returns true if general is at least as general as specific: both have the same
// element type, and every tensor described by specific is also described by general.
func Subsumes(general, specific *Tensor) bool {
	if general.DType != specific.DType {
		return false
	}
	if !general.Shape.ranked {
		return true
	}
	if !specific.Shape.ranked || general.Shape.dims.Len() != specific.Shape.dims.Len() {
		return false
	}
	for i := 0; i < general.Shape.dims.Len(); i++ {
		gd := general.Shape.dims.Get(i)
		if gd.static && gd != specific.Shape.dims.Get(i) {
			return false
		}
	}
	return true
}

// JoinSequences returns the most specific sequence type which describes both a and b.
// An empty sequence carries no evidence about the shape of its elements, so its element
// summary does not take part in a join with a non-empty sequence. Lengths remain known only
// when they are equal.
func JoinSequences(a, b *Sequence) (*Sequence, error) {
	if a.Elem.DType != b.Elem.DType {
		return nil, errors.New("mismatched sequence element types: " + DTypeName(a.Elem.DType) + " and " + DTypeName(b.Elem.DType))
	}
	length := a.Len
	if a.Len != b.Len {
		length = UnknownLength
	}
	var elem *Tensor
	switch {
	case a.Len.IsEmpty() && !b.Len.IsEmpty():
		elem = b.Elem
	case b.Len.IsEmpty() && !a.Len.IsEmpty():
		elem = a.Elem
	default:
		elem = Join(a.Elem, b.Elem)
	}
	if length == a.Len && elem == a.Elem {
		return a, nil
	}
	return &Sequence{Elem: elem, Len: length}, nil
}

// JoinTypes joins two types assigned to the same value along different paths, e.g. the initial
// and loop-carried types of a loop argument. A nil type has not been inferred yet and joins as
// the other type.
func JoinTypes(a, b Type) (Type, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	switch a := a.(type) {
	case *Tensor:
		bt, ok := b.(*Tensor)
		if !ok {
			return nil, errors.New("cannot join " + TypeString(a) + " with " + TypeString(b))
		}
		if a.DType != bt.DType {
			return nil, errors.New("mismatched element types: " + DTypeName(a.DType) + " and " + DTypeName(bt.DType))
		}
		return Join(a, bt), nil
	case *Sequence:
		bs, ok := b.(*Sequence)
		if !ok {
			return nil, errors.New("cannot join " + TypeString(a) + " with " + TypeString(b))
		}
		return JoinSequences(a, bs)
	}
	return nil, errors.New("cannot join " + a.TypeName() + " with " + b.TypeName())
}
