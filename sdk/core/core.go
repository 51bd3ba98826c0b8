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

package core

// PRNG 盤面生成使用的亂數來源。
//
// 每一格只會呼叫一次 IntN(total)，因此同一個狀態必然產生同一張盤面；
// Snapshot/Restore 讓任何一次 Spin 都能從保存的狀態重播。
type PRNG interface {
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(max int) int
	// Uint64 回傳 uint64 亂數，僅用於派生子 seed。
	Uint64() uint64
	// Snapshot 回傳目前內部狀態的序列化結果。
	Snapshot() ([]byte, error)
	// Restore 以 Snapshot 的結果覆寫內部狀態。
	Restore(state []byte) error
}

// PRNGFactory 以 seed 建立 PRNG；同一實作下 New(seed) 必須是決定性的。
type PRNGFactory interface {
	New(seed int64) PRNG
}

// DefaultPRNG 預設工廠，產生 PCG64。
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewPCG64(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 機台持有的亂數核心，生成器與取樣器只透過它取樣。
// 不是併發安全的，平行模擬時每個 worker 各自持有一個。
type Core struct {
	PRNG
}

func New(rng PRNG) *Core {
	return &Core{rng}
}
