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

package stats

import "sort"

// WinBuckets 贏倍區間定義
type WinBuckets struct {
	bounds    []float64
	boundsStr []string
}

// WinBucket 依單局贏倍（reward / bet）定位區間
type WinBucket struct {
	bounds []float64
}

// Buckets
//
// 用來定位單局贏倍 -> DistRecord 位置
//
// 請勿修改預設值
//   - win區間: 贏倍區間 [0,0], (0,1), [1,2), [2,5), ..., [2000,10000), [10000, +inf)
var Buckets *WinBuckets = &WinBuckets{
	bounds:    []float64{0, 1, 2, 5, 10, 20, 50, 100, 300, 500, 1000, 2000, 10000},
	boundsStr: []string{"[0,0]", "(0,1)", "[1,2)", "[2,5)", "[5,10)", "[10,20)", "[20,50)", "[50,100)", "[100,300)", "[300,500)", "[500,1000)", "[1000,2000)", "[2000,10000)", "[10000,+inf)"},
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.boundsStr
}

// Len 區間數量
func (b *WinBuckets) Len() int {
	return len(b.boundsStr)
}

func (b *WinBuckets) GetBucket() *WinBucket {
	return &WinBucket{bounds: b.bounds}
}

// Index 回傳贏倍所在的區間索引；0 倍（含負值）固定落在第 0 格。
func (wb *WinBucket) Index(mult float64) int {
	if mult <= 0 {
		return 0
	}
	// 第一個 > mult 的邊界位置即為區間索引
	return sort.Search(len(wb.bounds), func(i int) bool { return wb.bounds[i] > mult })
}
