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
	"github.com/benbjohnson/immutable"
)

var emptyList = immutable.NewList()

// EmptyDimList is the dimension list of a ranked scalar shape.
var EmptyDimList = DimList{emptyList}

// DimList is an immutable list of dimensions. Lists may be shared between shapes.
type DimList struct {
	l *immutable.List
}

// NewDimList returns a list containing dims, in order.
func NewDimList(dims ...Dim) DimList {
	if len(dims) == 0 {
		return EmptyDimList
	}
	b := NewDimListBuilder()
	for _, d := range dims {
		b.Append(d)
	}
	return b.Build()
}

func (l DimList) Len() int {
	if l.l == nil {
		return 0
	}
	return l.l.Len()
}

func (l DimList) Get(i int) Dim                { return l.l.Get(i).(Dim) }
func (l DimList) Slice(start, end int) DimList { return DimList{l.l.Slice(start, end)} }

// If f returns false, iteration will be stopped.
func (l DimList) Range(f func(int, Dim) bool) {
	if l.l == nil {
		return
	}
	iter := l.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Dim)) {
			return
		}
	}
}

// ToSlice copies the dimensions into a new slice.
func (l DimList) ToSlice() []Dim {
	dims := make([]Dim, 0, l.Len())
	l.Range(func(_ int, d Dim) bool {
		dims = append(dims, d)
		return true
	})
	return dims
}

func (l DimList) Builder() DimListBuilder {
	imm := l.l
	if imm == nil {
		imm = emptyList
	}
	return DimListBuilder{immutable.NewListBuilder(imm)}
}

// DimListBuilder enables in-place updates of a list before finalization.
type DimListBuilder struct {
	b *immutable.ListBuilder
}

func NewDimListBuilder() DimListBuilder {
	return DimListBuilder{immutable.NewListBuilder(emptyList)}
}

func (b DimListBuilder) Len() int         { return b.b.Len() }
func (b DimListBuilder) Append(d Dim)     { b.b.Append(d) }
func (b DimListBuilder) Set(i int, d Dim) { b.b.Set(i, d) }
func (b DimListBuilder) Build() DimList   { return DimList{b.b.List()} }
