// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package buf

import (
	"slices"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/spec"
)

func TestGridFromRowsAndMatrix(t *testing.T) {
	rows := [][]string{{"A", "B", "C"}, {"D", "E", "F"}}
	g, err := NewGridFromRows(rows)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	if g.Rows != 2 || g.Cols != 3 {
		t.Fatalf("unexpected shape %dx%d", g.Rows, g.Cols)
	}
	if g.At(1, 2) != "F" || g.At(0, 1) != "B" {
		t.Fatalf("At mismatch: %v", g.Cells)
	}
	m := g.Matrix()
	for r := range rows {
		if !slices.Equal(m[r], rows[r]) {
			t.Fatalf("row %d: want %v got %v", r, rows[r], m[r])
		}
	}
	// Matrix 是副本
	m[0][0] = "Z"
	if g.At(0, 0) != "A" {
		t.Fatalf("Matrix must return a copy")
	}
}

func TestGridFromRowsRejectsRagged(t *testing.T) {
	_, err := NewGridFromRows([][]string{{"A", "B"}, {"C"}})
	if !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = NewGridFromRows(nil)
	if !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for empty grid, got %v", err)
	}
}

func TestGridCountsAndSet(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, "A")
	g.Set(0, 1, "A")
	g.Set(1, 0, "B")
	g.Set(1, 1, "A")
	c := g.Counts()
	if c["A"] != 3 || c["B"] != 1 {
		t.Fatalf("unexpected counts %v", c)
	}
}

func TestSpinResultNames(t *testing.T) {
	sr := &SpinResult{
		Combinations: []*spec.WinCombination{{Name: "a"}, {Name: "b"}},
		AppliedBonus: []*spec.Symbol{{Name: "+500"}},
	}
	if !sr.IsWin() {
		t.Fatalf("expected win")
	}
	if !slices.Equal(sr.CombinationNames(), []string{"a", "b"}) {
		t.Fatalf("unexpected combination names %v", sr.CombinationNames())
	}
	if !slices.Equal(sr.BonusNames(), []string{"+500"}) {
		t.Fatalf("unexpected bonus names %v", sr.BonusNames())
	}
}
