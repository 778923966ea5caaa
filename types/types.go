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
	"github.com/gomlx/gopjrt/dtypes"
)

// Type is the base interface for all types which may be assigned to a value.
type Type interface {
	TypeName() string
}

func (t *Tensor) TypeName() string   { return "Tensor" }
func (t *Sequence) TypeName() string { return "Sequence" }

// Dim is the size of a single dimension of a ranked shape: either a static size or dynamic.
type Dim struct {
	size   int64
	static bool
}

// DynamicDim is a dimension whose size is not known statically.
var DynamicDim = Dim{}

// StaticDim returns a dimension with a statically known, non-negative size.
func StaticDim(size int64) Dim {
	if size < 0 {
		panic("negative static dimension")
	}
	return Dim{size: size, static: true}
}

func (d Dim) IsStatic() bool  { return d.static }
func (d Dim) IsDynamic() bool { return !d.static }

// Size returns the static size of d. The second result is false for dynamic dimensions.
func (d Dim) Size() (int64, bool) { return d.size, d.static }

// Shape is either unranked, or ranked with an ordered list of dimensions.
// The zero value is unranked.
type Shape struct {
	dims   DimList
	ranked bool
}

// UnrankedShape returns a shape with an unknown rank.
func UnrankedShape() Shape { return Shape{} }

// RankedShape returns a shape with len(dims) dimensions. A ranked shape with no dimensions is a scalar.
func RankedShape(dims ...Dim) Shape {
	return Shape{dims: NewDimList(dims...), ranked: true}
}

// RankedShapeFromList returns a ranked shape sharing the given dimension list.
func RankedShapeFromList(dims DimList) Shape {
	return Shape{dims: dims, ranked: true}
}

func (s Shape) IsRanked() bool { return s.ranked }

// Rank returns the number of dimensions of s, or -1 when s is unranked.
func (s Shape) Rank() int {
	if !s.ranked {
		return -1
	}
	return s.dims.Len()
}

// Dims returns the (immutable) dimension list of a ranked shape.
func (s Shape) Dims() DimList { return s.dims }

// Dim returns the i'th dimension of a ranked shape.
func (s Shape) Dim(i int) Dim { return s.dims.Get(i) }

// IsStatic returns true if s is ranked and every dimension is static.
func (s Shape) IsStatic() bool {
	if !s.ranked {
		return false
	}
	static := true
	s.dims.Range(func(_ int, d Dim) bool {
		static = d.static
		return static
	})
	return static
}

// Equal returns true if a and b describe the same shape.
func (s Shape) Equal(other Shape) bool {
	if s.ranked != other.ranked {
		return false
	}
	if !s.ranked {
		return true
	}
	if s.dims.Len() != other.dims.Len() {
		return false
	}
	for i := 0; i < s.dims.Len(); i++ {
		if s.dims.Get(i) != other.dims.Get(i) {
			return false
		}
	}
	return true
}

// Tensor describes a tensor by its scalar element type and its (possibly unknown) shape.
// Tensor values are never mutated after construction.
type Tensor struct {
	DType dtypes.DType
	Shape Shape
}

// NewTensor returns a ranked tensor type. Negative sizes are dynamic dimensions.
func NewTensor(dtype dtypes.DType, sizes ...int64) *Tensor {
	dims := make([]Dim, len(sizes))
	for i, size := range sizes {
		if size < 0 {
			dims[i] = DynamicDim
		} else {
			dims[i] = StaticDim(size)
		}
	}
	return &Tensor{DType: dtype, Shape: RankedShape(dims...)}
}

// NewUnrankedTensor returns a tensor type with an unknown rank.
func NewUnrankedTensor(dtype dtypes.DType) *Tensor {
	return &Tensor{DType: dtype, Shape: UnrankedShape()}
}

// NewScalarTensor returns a rank-0 tensor type.
func NewScalarTensor(dtype dtypes.DType) *Tensor {
	return &Tensor{DType: dtype, Shape: RankedShape()}
}

func (t *Tensor) IsRanked() bool { return t.Shape.ranked }

// Equal returns true if t and other have the same element type and shape.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.DType == other.DType && t.Shape.Equal(other.Shape)
}

// Length is the length of a sequence: either known statically or unknown.
type Length struct {
	n     int64
	known bool
}

// UnknownLength is the length of a sequence whose length is not known statically.
var UnknownLength = Length{}

// KnownLength returns a statically known, non-negative sequence length.
func KnownLength(n int64) Length {
	if n < 0 {
		panic("negative sequence length")
	}
	return Length{n: n, known: true}
}

func (l Length) IsKnown() bool { return l.known }

// Value returns the known length. The second result is false for unknown lengths.
func (l Length) Value() (int64, bool) { return l.n, l.known }

// IsEmpty returns true if the length is known to be zero.
func (l Length) IsEmpty() bool { return l.known && l.n == 0 }

// Inc returns the length after one insertion.
func (l Length) Inc() Length {
	if !l.known {
		return l
	}
	return Length{n: l.n + 1, known: true}
}

// Dec returns the length after one removal. Dec must not be called on a known-empty length.
func (l Length) Dec() Length {
	if !l.known {
		return l
	}
	if l.n == 0 {
		panic("decrement of empty sequence length")
	}
	return Length{n: l.n - 1, known: true}
}

// Sequence is a sequence of tensors. Elem summarizes the types of all tensors within the sequence.
type Sequence struct {
	Elem *Tensor
	Len  Length
}

// NewSequence returns a sequence type with the given element summary and length.
func NewSequence(elem *Tensor, length Length) *Sequence {
	return &Sequence{Elem: elem, Len: length}
}

// Equal returns true if s and other have equal element summaries and lengths.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.Len == other.Len && s.Elem.Equal(other.Elem)
}

// Equal returns true if a and b are the same type. Nil types are only equal to nil.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Tensor:
		bt, ok := b.(*Tensor)
		return ok && a.Equal(bt)
	case *Sequence:
		bs, ok := b.(*Sequence)
		return ok && a.Equal(bs)
	}
	return false
}
