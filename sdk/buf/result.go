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
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/spec"
)

// SpinResult 單次 Spin 的完整結果
type SpinResult struct {
	Bet           decimal.Decimal        // 本次押注
	Grid          *Grid                  // 盤面
	Reward        decimal.Decimal        // 最終獎勵
	Combinations  []*spec.WinCombination // 觸發的中獎組合（依名稱排序）
	AppliedBonus  []*spec.Symbol         // 實際套用的 bonus 符號（依盤面首次出現順序）
	StartCoreSnap []byte                 // Spin 開始前的 PRNG 狀態，可用於重播
}

// IsWin 回傳是否有任何中獎組合觸發
func (sr *SpinResult) IsWin() bool {
	return len(sr.Combinations) > 0
}

// CombinationNames 回傳觸發組合的名稱
func (sr *SpinResult) CombinationNames() []string {
	names := make([]string, len(sr.Combinations))
	for i, wc := range sr.Combinations {
		names[i] = wc.Name
	}
	return names
}

// BonusNames 回傳套用的 bonus 符號名稱
func (sr *SpinResult) BonusNames() []string {
	names := make([]string, len(sr.AppliedBonus))
	for i, s := range sr.AppliedBonus {
		names[i] = s.Name
	}
	return names
}
