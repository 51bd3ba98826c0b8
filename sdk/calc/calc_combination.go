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

package calc

import (
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/spec"
)

// CombinationEvaluator 依中獎組合表判斷盤面觸發了哪些組合
type CombinationEvaluator struct {
	catalog []*spec.WinCombination
	hasFreq bool // 組合表中是否含有 frequency 類組合（決定是否需要統計全盤顆數）
}

// NewCombinationEvaluator 以設定中的組合表（依名稱排序）建立判斷器。
func NewCombinationEvaluator(gs *spec.GameSetting) (*CombinationEvaluator, error) {
	if err := gs.Init(); err != nil {
		return nil, err
	}
	return newEvaluator(gs.Catalog()), nil
}

func newEvaluator(catalog []*spec.WinCombination) *CombinationEvaluator {
	ce := &CombinationEvaluator{catalog: catalog}
	for _, wc := range catalog {
		if wc.Trigger.Kind == spec.TriggerFrequency {
			ce.hasFreq = true
			break
		}
	}
	return ce
}

// Evaluate 回傳觸發的組合，順序與組合表一致。
func (ce *CombinationEvaluator) Evaluate(grid *buf.Grid) []*spec.WinCombination {
	maxCount := 0
	if ce.hasFreq {
		maxCount = maxSymbolCount(grid)
	}
	hits := make([]*spec.WinCombination, 0, 4)
	for _, wc := range ce.catalog {
		if triggered(wc, grid, maxCount) {
			hits = append(hits, wc)
		}
	}
	return hits
}

// Evaluate 便利函式：以任意順序的組合表判斷盤面，輸出順序與傳入順序一致。
func Evaluate(grid *buf.Grid, catalog []*spec.WinCombination) []*spec.WinCombination {
	return newEvaluator(catalog).Evaluate(grid)
}

// ============================================================
// ** 以下內部方法 **
// ============================================================

func triggered(wc *spec.WinCombination, grid *buf.Grid, maxCount int) bool {
	switch wc.Trigger.Kind {
	case spec.TriggerFrequency:
		// 門檻看的是單一符號的原始顆數
		return wc.Trigger.Threshold > 0 && maxCount >= wc.Trigger.Threshold
	case spec.TriggerShape:
		for _, area := range wc.Trigger.Areas {
			if areaMatched(area, grid) {
				return true
			}
		}
		return false
	case spec.TriggerNone:
		return false
	default:
		return false
	}
}

// areaMatched 區域內所有座標的符號都與第一個座標相同；空區域不成立。
func areaMatched(area []spec.Coord, grid *buf.Grid) bool {
	if len(area) == 0 {
		return false
	}
	first := grid.At(area[0].Row, area[0].Col)
	for _, c := range area[1:] {
		if grid.At(c.Row, c.Col) != first {
			return false
		}
	}
	return true
}

func maxSymbolCount(grid *buf.Grid) int {
	best := 0
	for _, n := range grid.Counts() {
		if n > best {
			best = n
		}
	}
	return best
}
