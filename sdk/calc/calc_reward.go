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
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/spec"
)

// SymbolLookup 依名稱查詢符號；*spec.GameSetting 即滿足此介面。
type SymbolLookup interface {
	Symbol(name string) (*spec.Symbol, bool)
}

// RewardCalculator 將觸發組合與盤面上的 bonus 符號合成最終獎勵
type RewardCalculator struct {
	symbols SymbolLookup
}

// NewRewardCalculator 建立算分器
func NewRewardCalculator(symbols SymbolLookup) *RewardCalculator {
	return &RewardCalculator{symbols: symbols}
}

// Score 計算獎勵，並回傳實際套用的 bonus 符號（依盤面 row-major 首次出現順序）。
//
// 規則：
//  1. 每個觸發組合累加 bet x 組合倍數。
//  2. 只要至少有一個組合觸發，盤面上 multiply_reward / extra_bonus 的 bonus 符號各套用一次
//     （同名重複出現只算一次）；miss 沒有作用。沒有任何組合觸發時獎勵固定為 0。
//  3. 依首次出現順序套用：multiply_reward 乘上符號倍數，extra_bonus 加上 extra。
//
// 盤面上出現符號表沒有的名稱時回傳設定錯誤。
func (rc *RewardCalculator) Score(bet decimal.Decimal, hits []*spec.WinCombination, grid *buf.Grid) (decimal.Decimal, []*spec.Symbol, error) {
	bonus, err := rc.collectBonus(grid)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if len(hits) == 0 {
		return decimal.Zero, nil, nil
	}

	reward := decimal.Zero
	for _, wc := range hits {
		reward = reward.Add(bet.Mul(wc.Multiplier))
	}
	for _, s := range bonus {
		switch s.Impact {
		case spec.ImpactMultiplyReward:
			reward = reward.Mul(s.Multiplier)
		case spec.ImpactExtraBonus:
			reward = reward.Add(s.ExtraAmount)
		}
	}
	return reward, bonus, nil
}

// Score 便利函式
func Score(bet decimal.Decimal, hits []*spec.WinCombination, grid *buf.Grid, symbols SymbolLookup) (decimal.Decimal, []*spec.Symbol, error) {
	return NewRewardCalculator(symbols).Score(bet, hits, grid)
}

// collectBonus 掃描整個盤面：確認每格符號都存在，並依首次出現順序收集會影響獎勵的 bonus 符號。
func (rc *RewardCalculator) collectBonus(grid *buf.Grid) ([]*spec.Symbol, error) {
	var out []*spec.Symbol
	for i, name := range grid.Cells {
		s, ok := rc.symbols.Symbol(name)
		if !ok {
			return nil, errs.Configf("grid cell %d:%d holds symbol %q which is not in symbols", i/grid.Cols, i%grid.Cols, name)
		}
		if !s.AffectsReward() || containsSymbol(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func containsSymbol(list []*spec.Symbol, s *spec.Symbol) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
