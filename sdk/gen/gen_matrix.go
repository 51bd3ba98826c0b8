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
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
)

// MatrixGenerator 保存生成盤面所需的狀態。
// 建立時即完成設定檢查，之後每次 Generate 都不會再失敗。
type MatrixGenerator struct {
	core  *core.Core
	Rows  int
	Cols  int
	cells []spec.CellDistribution
}

// NewMatrixGenerator 根據設定與核心亂數器建立生成器。
//
// 機率表長度不足、權重非正等設定錯誤會在這裡回傳，不會消耗任何亂數。
func NewMatrixGenerator(c *core.Core, gs *spec.GameSetting) (*MatrixGenerator, error) {
	if c == nil {
		return nil, errs.InvalidArgf("matrix generator requires a random source")
	}
	if gs == nil {
		return nil, errs.Configf("matrix generator requires a game setting")
	}
	if err := gs.Init(); err != nil {
		return nil, err
	}
	return &MatrixGenerator{
		core:  c,
		Rows:  gs.Rows,
		Cols:  gs.Columns,
		cells: gs.Cells(),
	}, nil
}

// Generate 產生一個新盤面：每格依 row*cols+col 對應的分佈各抽一次。
func (mg *MatrixGenerator) Generate() *buf.Grid {
	g := buf.NewGrid(mg.Rows, mg.Cols)
	for i := range mg.cells {
		cd := &mg.cells[i]
		g.Cells[i] = cd.Names[cd.Table.Pick(mg.core)]
	}
	return g
}

// Generate 便利函式：以設定與亂數器產生單一盤面
func Generate(gs *spec.GameSetting, c *core.Core) (*buf.Grid, error) {
	mg, err := NewMatrixGenerator(c, gs)
	if err != nil {
		return nil, err
	}
	return mg.Generate(), nil
}
