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

package gen

import (
	"slices"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
)

// testSetting 建立 rows x cols 盤面，每格權重皆為 A:1 B:2 C:3，機率表長度為 cells。
func testSetting(rows, cols, cells int) *spec.GameSetting {
	table := make([]spec.CellDistribution, cells)
	for i := range table {
		table[i] = spec.CellDistribution{
			Row:    i / cols,
			Column: i % cols,
			Symbols: spec.OrderedMap[int]{
				{Key: "A", Value: 1},
				{Key: "B", Value: 2},
				{Key: "C", Value: 3},
			},
		}
	}
	return &spec.GameSetting{
		Rows:    rows,
		Columns: cols,
		Symbols: spec.OrderedMap[spec.Symbol]{
			{Key: "A", Value: spec.Symbol{RewardMultiplier: 5}},
			{Key: "B", Value: spec.Symbol{RewardMultiplier: 3}},
			{Key: "C", Value: spec.Symbol{RewardMultiplier: 1}},
		},
		Probabilities: spec.ProbabilitySetting{StandardSymbols: table},
	}
}

func TestGenerateShape(t *testing.T) {
	gs := testSetting(3, 4, 12)
	c := core.New(core.Default().New(11))
	mg, err := NewMatrixGenerator(c, gs)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	for range 200 {
		g := mg.Generate()
		m := g.Matrix()
		if len(m) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(m))
		}
		for r, row := range m {
			if len(row) != 4 {
				t.Fatalf("row %d: expected 4 cols, got %d", r, len(row))
			}
			for _, s := range row {
				if _, ok := gs.Symbol(s); !ok {
					t.Fatalf("generated symbol %q not in catalog", s)
				}
			}
		}
	}
}

func TestGenerateExactDraws(t *testing.T) {
	gs := testSetting(2, 2, 4)
	// 累積權重 A:[0,1) B:[1,3) C:[3,6)
	seq := core.NewSequence(0, 2, 3, 5)
	g, err := Generate(gs, core.New(seq))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{"A", "B", "C", "C"}
	if !slices.Equal(g.Cells, want) {
		t.Fatalf("want %v, got %v", want, g.Cells)
	}
	if seq.Remaining() != 0 {
		t.Fatalf("expected one draw per cell, %d left", seq.Remaining())
	}
}

func TestGenerateUsesLinearIndex(t *testing.T) {
	gs := testSetting(2, 2, 4)
	// 第 3 格（row 1, col 0）只允許 B
	gs.Probabilities.StandardSymbols[2].Symbols = spec.OrderedMap[int]{{Key: "B", Value: 7}}
	c := core.New(core.Default().New(5))
	mg, err := NewMatrixGenerator(c, gs)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	for range 100 {
		if got := mg.Generate().At(1, 0); got != "B" {
			t.Fatalf("cell (1,0) must always be B, got %q", got)
		}
	}
}

func TestGenerateRejectsShortTableBeforeDrawing(t *testing.T) {
	gs := testSetting(3, 3, 8)
	seq := core.NewSequence(0, 0, 0, 0, 0, 0, 0, 0, 0)
	_, err := Generate(gs, core.New(seq))
	if !errs.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if seq.Remaining() != 9 {
		t.Fatalf("no draw may happen before validation, %d consumed", 9-seq.Remaining())
	}
}

func TestGenerateRejectsNilCore(t *testing.T) {
	if _, err := NewMatrixGenerator(nil, testSetting(1, 1, 1)); !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
