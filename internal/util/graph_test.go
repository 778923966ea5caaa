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

package util

import (
	"reflect"
	"testing"
)

func TestTopoOrderKeepsIndependentOrder(t *testing.T) {
	g := NewGraph(4)
	order := g.TopoOrder()
	if !reflect.DeepEqual(order, []int{0, 1, 2, 3}) {
		t.Fatalf("order: %v", order)
	}
}

func TestTopoOrderProducersFirst(t *testing.T) {
	// 3 -> 1 -> 0, 2 independent
	g := NewGraph(4)
	g.AddEdge(3, 1)
	g.AddEdge(1, 0)
	g.AddEdge(1, 0)
	if len(g[1]) != 1 {
		t.Fatalf("duplicate edge: %v", g[1])
	}
	order := g.TopoOrder()
	pos := make([]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	if pos[3] > pos[1] || pos[1] > pos[0] {
		t.Fatalf("order: %v", order)
	}
	if len(order) != 4 {
		t.Fatalf("order: %v", order)
	}
}

func TestSCCCycle(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	g.AddEdge(2, 3)
	sccs := g.SCC()
	if len(sccs) != 3 {
		t.Fatalf("sccs: %v", sccs)
	}
	order := g.TopoOrder()
	if !reflect.DeepEqual(order, []int{0, 1, 2, 3}) {
		t.Fatalf("order: %v", order)
	}
}
