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
	"github.com/zintix-labs/scratchlab/errs"
)

// Grid 盤面：rows x cols 的符號名稱，以 row*cols+col 平坦存放。
//
// 每次 Spin 都會建立新的 Grid，Spin 之後由呼叫端持有，不會被重用覆寫。
type Grid struct {
	Rows  int
	Cols  int
	Cells []string
}

// NewGrid 建立空盤面
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Cells: make([]string, rows*cols)}
}

// NewGridFromRows 由二維陣列建立盤面；每列長度必須一致。
func NewGridFromRows(rows [][]string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errs.InvalidArgf("grid must have at least one row and one column")
	}
	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, errs.InvalidArgf("grid row %d has %d cells, want %d", r, len(row), cols)
		}
		copy(g.Cells[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// At 回傳 (row, col) 的符號
func (g *Grid) At(row, col int) string {
	return g.Cells[row*g.Cols+col]
}

// Set 設定 (row, col) 的符號
func (g *Grid) Set(row, col int, symbol string) {
	g.Cells[row*g.Cols+col] = symbol
}

// Matrix 回傳二維陣列副本
func (g *Grid) Matrix() [][]string {
	out := make([][]string, g.Rows)
	for r := range g.Rows {
		out[r] = make([]string, g.Cols)
		copy(out[r], g.Cells[r*g.Cols:(r+1)*g.Cols])
	}
	return out
}

// Counts 回傳每個符號在盤面上出現的次數
func (g *Grid) Counts() map[string]int {
	counts := make(map[string]int, len(g.Cells))
	for _, s := range g.Cells {
		counts[s]++
	}
	return counts
}
