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

// Package scratchlab 提供刮刮樂式單局（Spin）的組裝入口。
//
// 一局的流程固定為：依每格權重生成盤面 -> 比對中獎組合 -> 計算獎勵（含 bonus 符號）。
// Lab 持有已驗證的 GameSetting 與亂數核心工廠（PRNGFactory），負責建立：
//   - Machine：對外提供 Spin / Replay 的最小單位。
//   - Simulator：大量 Spin 並輸出 RTP 等統計報表。
//
// 設定檔的讀取屬於外部協作者（LoadFile / LoadFS / catalog），核心流程不做任何 I/O。
package scratchlab

import (
	"crypto/rand"
	"log/slog"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/logger"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
)

// Lab 組裝器：一份設定 + 一個 PRNG 工廠 + logger。
//
// Lab 本身不可變，可同時被多個 goroutine 用來建立 Machine / Simulator。
type Lab struct {
	gs  *spec.GameSetting
	cf  core.PRNGFactory
	log *slog.Logger
}

// New 建立 Lab；gs 會在這裡完成驗證，log 為 nil 時不輸出任何紀錄。
func New(gs *spec.GameSetting, cf core.PRNGFactory, log *slog.Logger) (*Lab, error) {
	if gs == nil {
		return nil, errs.Configf("game setting required")
	}
	if cf == nil {
		return nil, errs.NewFatal("core factory required")
	}
	if err := gs.Init(); err != nil {
		return nil, err
	}
	return &Lab{gs: gs, cf: cf, log: logger.OrSilent(log)}, nil
}

// Setting 回傳 Lab 使用的設定（唯讀）
func (l *Lab) Setting() *spec.GameSetting {
	return l.gs
}

// NewMachine 以 crypto/rand 產生的 seed 建立 Machine
func (l *Lab) NewMachine() (*Machine, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return l.NewMachineWithSeed(seed)
}

// NewMachineWithSeed 以指定 seed 建立 Machine；同設定同 seed 會得到相同的盤面序列。
func (l *Lab) NewMachineWithSeed(seed int64) (*Machine, error) {
	return newMachineWithSeed(l.gs, l.cf, seed, l.log)
}

func (l *Lab) NewSimulator() (*Simulator, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return l.NewSimulatorWithSeed(seed)
}

func (l *Lab) NewSimulatorWithSeed(seed int64) (*Simulator, error) {
	return newSimulatorWithSeed(l.gs, l.cf, seed, l.log)
}

// Spin 以指定的亂數來源跑一局。
//
// 這是不經過 Lab 的直接入口：rng 可以是 core.NewSequence 的固定序列，
// 因此同一份設定與同一組抽樣值必定得到相同結果。
//
// 每格只抽一次，固定序列至少要提供 rows*columns 個值；
// 序列耗盡時 core.Sequence 會 panic，視為呼叫端誤用而不是回傳錯誤。
func Spin(gs *spec.GameSetting, rng core.PRNG, bet decimal.Decimal) (*buf.SpinResult, error) {
	if gs == nil {
		return nil, errs.Configf("game setting required")
	}
	if rng == nil {
		return nil, errs.InvalidArgf("random source required")
	}
	m, err := newMachine(gs, rng, 0, nil)
	if err != nil {
		return nil, err
	}
	return m.Spin(bet)
}

func cryptoSeed() (int64, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return seed.Int64(), nil
}
