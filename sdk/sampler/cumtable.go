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

// Package sampler 提供加權抽樣工具。
//
// 本檔案 (cumtable.go) 實作「累積權重掃描」抽樣：
//   - 抽一個 [0, total) 的整數 r
//   - 依固定順序逐項扣除權重，r 第一次變成負數的那一項即為結果
//
// 特性：
//   - 建表時間 O(n)，抽樣 O(n)，n 為選項數量（每格符號通常不到 20 種）。
//   - 只消耗一次 IntN，對同一個亂數序列，結果完全可重現。
package sampler

import (
	"math"

	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/core"
)

// Integers 定義所有底層實現為整數型別的集合
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// CumTable 累積權重抽樣表
//
// 舉例 : 權重 [3,5,2]，total = 10
//
// r ∈ [0,3) -> 0，r ∈ [3,8) -> 1，r ∈ [8,10) -> 2
type CumTable struct {
	weights []int
	total   int
}

// BuildCumTable 根據權重列表建立抽樣表。
//
// 任何權重 <= 0 或總和 <= 0 都回傳 KindConfig 錯誤，而不是 panic：權重來自設定檔。
func BuildCumTable[T Integers](src []T) (CumTable, error) {
	ws := make([]int, len(src))
	total := 0
	for i, v := range src {
		if v <= 0 {
			return CumTable{}, errs.Configf("weight[%d] must be positive, got %d", i, int64(v))
		}
		if uint64(v) > uint64(math.MaxInt) || total > math.MaxInt-int(v) {
			return CumTable{}, errs.Configf("total weight overflows int")
		}
		ws[i] = int(v)
		total += int(v)
	}
	if total <= 0 {
		return CumTable{}, errs.Configf("total weight must be positive, got %d", total)
	}
	return CumTable{weights: ws, total: total}, nil
}

// Total 回傳權重總和
func (t CumTable) Total() int { return t.total }

// Len 回傳選項數量
func (t CumTable) Len() int { return len(t.weights) }

// Weight 回傳第 i 項權重
func (t CumTable) Weight(i int) int { return t.weights[i] }

// Pick 透過 Core 抽出一個索引；空表回傳 -1
func (t CumTable) Pick(c *core.Core) int {
	if t.total <= 0 {
		return -1
	}
	return t.Locate(c.IntN(t.total))
}

// Locate 回傳 r 所落入的索引，r 必須在 [0, total) 內，否則回傳 -1
func (t CumTable) Locate(r int) int {
	if r < 0 || r >= t.total {
		return -1
	}
	for i, w := range t.weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return -1
}
