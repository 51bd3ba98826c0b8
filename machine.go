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

package scratchlab

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/logger"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/sdk/calc"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/sdk/gen"
	"github.com/zintix-labs/scratchlab/spec"
)

// Machine 封裝一台可對外提供 Spin 的機台。
//
// 對內持有 RNG（Core）與三個階段：MatrixGenerator -> CombinationEvaluator -> RewardCalculator。
// Spin / Replay 以 mutex 保護 Core 狀態；同一台 Machine 可被多個 goroutine 呼叫，但會序列化執行。
// 併發模擬請建立多台 Machine（見 Simulator）。
//
// initseed 只記錄出生時的 seed；任意一局的重現以 StartCoreSnap（Snapshot/Restore）為準。
type Machine struct {
	gameName string
	gs       *spec.GameSetting
	core     *core.Core
	gen      *gen.MatrixGenerator
	eval     *calc.CombinationEvaluator
	scorer   *calc.RewardCalculator
	log      *slog.Logger
	mu       sync.Mutex
	initseed int64
}

func newMachineWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64, log *slog.Logger) (*Machine, error) {
	return newMachine(gs, cf.New(seed), seed, log)
}

func newMachine(gs *spec.GameSetting, rng core.PRNG, seed int64, log *slog.Logger) (*Machine, error) {
	m := &Machine{
		gameName: gs.Name,
		gs:       gs,
		core:     core.New(rng),
		log:      logger.OrSilent(log),
		initseed: seed,
	}
	var err error
	if m.gen, err = gen.NewMatrixGenerator(m.core, gs); err != nil {
		return nil, err
	}
	if m.eval, err = calc.NewCombinationEvaluator(gs); err != nil {
		return nil, err
	}
	m.scorer = calc.NewRewardCalculator(gs)

	if mis := gs.PositionMismatches(); len(mis) > 0 {
		m.log.Debug("cell distributions addressed by index, declared row/column differ",
			slog.String("game", m.gameName), slog.Any("cells", mis))
	}
	return m, nil
}

// GameName 回傳設定名稱
func (m *Machine) GameName() string { return m.gameName }

// InitSeed 回傳出生 seed
func (m *Machine) InitSeed() int64 { return m.initseed }

// Spin 跑一局：生成盤面、比對組合、計算獎勵。
//
// bet 必須 >= 0，負數回傳 InvalidArgument。回傳結果的 StartCoreSnap 是本局開始前的 PRNG 狀態，
// 交給 Replay 即可重現同一局。任何階段的錯誤原樣回傳，不重試。
func (m *Machine) Spin(bet decimal.Decimal) (*buf.SpinResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := validBet(bet); err != nil {
		return nil, err
	}
	startsnap, err := m.core.Snapshot()
	if err != nil {
		return nil, errs.Wrap(err, "before snapshot error")
	}
	sr, err := m.spinInternal(bet)
	if err != nil {
		return nil, err
	}
	sr.StartCoreSnap = startsnap
	m.log.Debug("spin",
		slog.String("game", m.gameName),
		slog.String("bet", bet.String()),
		slog.String("reward", sr.Reward.String()),
		slog.Any("combinations", sr.CombinationNames()))
	return sr, nil
}

// Replay 從 snap（先前 Spin 回傳的 StartCoreSnap）重跑一局。
//
// 結束後 Core 會還原到呼叫前的狀態，不影響之後的 Spin 序列。
func (m *Machine) Replay(bet decimal.Decimal, snap []byte) (*buf.SpinResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := validBet(bet); err != nil {
		return nil, err
	}
	if len(snap) == 0 {
		return nil, errs.InvalidArgf("replay requires a start state")
	}
	rem, err := m.core.Snapshot()
	if err != nil {
		return nil, errs.Wrap(err, "before snapshot error")
	}
	if err := m.core.Restore(snap); err != nil {
		return nil, errs.InvalidArgf("restore core failed: %v", err)
	}
	sr, serr := m.spinInternal(bet)
	if err := m.core.Restore(rem); err != nil {
		return nil, errs.Wrap(err, "restore core back err")
	}
	if serr != nil {
		return nil, serr
	}
	sr.StartCoreSnap = append([]byte(nil), snap...)
	return sr, nil
}

// spinInternal 不加鎖、不取快照；模擬器每個 worker 各持一台 Machine 時直接使用。
func (m *Machine) spinInternal(bet decimal.Decimal) (*buf.SpinResult, error) {
	grid := m.gen.Generate()
	hits := m.eval.Evaluate(grid)
	reward, bonus, err := m.scorer.Score(bet, hits, grid)
	if err != nil {
		return nil, err
	}
	return &buf.SpinResult{
		Bet:          bet,
		Grid:         grid,
		Reward:       reward,
		Combinations: hits,
		AppliedBonus: bonus,
	}, nil
}

// SnapshotCore 取得 Core 狀態
func (m *Machine) SnapshotCore() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.core.Snapshot()
}

// RestoreCore 恢復 Core 狀態
func (m *Machine) RestoreCore(src []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.core.Restore(src)
}

func validBet(bet decimal.Decimal) error {
	if bet.IsNegative() {
		return errs.InvalidArgf("bet must not be negative, got %s", bet)
	}
	return nil
}
