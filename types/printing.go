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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// TypeString returns a string representation of a Type:
//
//   tensor<*xf32>               unranked
//   tensor<2x?xf32>             ranked, with a dynamic second dimension
//   tensor<i64>                 rank 0
//   seq<tensor<2x?xf32>, 3>     sequence with a known length
//   seq<tensor<*xf32>>          sequence with an unknown length
//
// A nil type is printed as `none`.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// ShapeString returns the dimensions of a shape as printed within a tensor type, without the
// element type (e.g. `2x?x`, `*x`, or an empty string for scalars).
func ShapeString(s Shape) string {
	p := newTypePrinter()
	shapeString(p, s)
	str := p.sb.String()
	p.Release()
	return str
}

func shapeString(p *typePrinter, s Shape) {
	if !s.ranked {
		p.sb.WriteString("*x")
		return
	}
	s.dims.Range(func(_ int, d Dim) bool {
		if d.static {
			p.sb.WriteString(strconv.FormatInt(d.size, 10))
		} else {
			p.sb.WriteByte('?')
		}
		p.sb.WriteByte('x')
		return true
	})
}

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case *Tensor:
		if t == nil {
			p.sb.WriteString("none")
			return
		}
		p.sb.WriteString("tensor<")
		shapeString(p, t.Shape)
		p.sb.WriteString(DTypeName(t.DType))
		p.sb.WriteByte('>')

	case *Sequence:
		if t == nil {
			p.sb.WriteString("none")
			return
		}
		p.sb.WriteString("seq<")
		typeString(p, t.Elem)
		if n, ok := t.Len.Value(); ok {
			p.sb.WriteString(", ")
			p.sb.WriteString(strconv.FormatInt(n, 10))
		}
		p.sb.WriteByte('>')

	case nil:
		p.sb.WriteString("none")
	}
}
