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

package recorder

import (
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/spec"
	"github.com/zintix-labs/scratchlab/stats"
)

// SpinRecorder 遊戲紀錄員
//
// SpinRecorder 負責紀錄遊戲結果，並透過Done輸出統計報表。
// 一個 SpinRecorder 只給一個 goroutine 使用；併發模擬時每個 worker 各持一份，最後 Merge。
type SpinRecorder struct {
	GameName string
	Bet      decimal.Decimal
	gs       *spec.GameSetting
	betF     float64
	comboIdx map[string]int
	bonusIdx map[string]int
	cellIdx  []map[string]int
	Basic    *BasicRecord
	Dist     *DistRecord
	Hits     *HitRecord
}

// BasicRecord 基本遊戲資料紀錄
type BasicRecord struct {
	TotalBet     decimal.Decimal
	TotalWin     decimal.Decimal
	WinMultSum   float64
	WinMultSqSum float64 // 平方和
	MaxWinMult   float64
	WinRounds    int
	Rounds       int
}

// DistRecord 贏倍區間落點統計
type DistRecord struct {
	Bucket     *stats.WinBucket
	WinCollect []int
}

// HitRecord 組合、bonus 與每格符號的出現次數
type HitRecord struct {
	Combos []int   // 依 Catalog 順序
	Bonus  []int   // 依 bonusNames 順序
	Cells  [][]int // [格子][該格 Names 的索引]
}

// NewSpinRecorder 依設定與固定押注建立紀錄員。押注必須為正，否則 RTP 等倍數統計沒有意義。
func NewSpinRecorder(gs *spec.GameSetting, bet decimal.Decimal) (*SpinRecorder, error) {
	if gs == nil {
		return nil, errs.Configf("recorder requires a game setting")
	}
	if err := gs.Init(); err != nil {
		return nil, err
	}
	if !bet.IsPositive() {
		return nil, errs.InvalidArgf("simulation bet must be positive, got %s", bet)
	}
	s := &SpinRecorder{
		GameName: gs.Name,
		Bet:      bet,
		gs:       gs,
		betF:     bet.InexactFloat64(),
		comboIdx: make(map[string]int, len(gs.Catalog())),
		bonusIdx: make(map[string]int),
		Basic:    &BasicRecord{TotalBet: decimal.Zero, TotalWin: decimal.Zero},
		Dist: &DistRecord{
			Bucket:     stats.Buckets.GetBucket(),
			WinCollect: make([]int, stats.Buckets.Len()),
		},
	}
	for i, wc := range gs.Catalog() {
		s.comboIdx[wc.Name] = i
	}
	for _, name := range bonusNames(gs) {
		s.bonusIdx[name] = len(s.bonusIdx)
	}
	cells := gs.Cells()
	s.cellIdx = make([]map[string]int, len(cells))
	s.Hits = &HitRecord{
		Combos: make([]int, len(gs.Catalog())),
		Bonus:  make([]int, len(s.bonusIdx)),
		Cells:  make([][]int, len(cells)),
	}
	for i := range cells {
		s.cellIdx[i] = make(map[string]int, len(cells[i].Names))
		for j, name := range cells[i].Names {
			s.cellIdx[i][name] = j
		}
		s.Hits.Cells[i] = make([]int, len(cells[i].Names))
	}
	return s, nil
}

// MergeSpinRecorder 合併多個同設定、同押注的紀錄員
func MergeSpinRecorder(r []*SpinRecorder) (*SpinRecorder, error) {
	if len(r) == 0 {
		return nil, errs.NewFatal("merge spin record err : no recorder")
	}
	r0 := r[0]
	s, err := NewSpinRecorder(r0.gs, r0.Bet)
	if err != nil {
		return nil, err
	}
	for _, v := range r {
		if v.gs != r0.gs {
			return nil, errs.NewFatal("merge spin record err : different game setting")
		}
		if !v.Bet.Equal(r0.Bet) {
			return nil, errs.NewFatal("merge spin record err : different bet")
		}
		s.Basic.TotalBet = s.Basic.TotalBet.Add(v.Basic.TotalBet)
		s.Basic.TotalWin = s.Basic.TotalWin.Add(v.Basic.TotalWin)
		s.Basic.WinMultSum += v.Basic.WinMultSum
		s.Basic.WinMultSqSum += v.Basic.WinMultSqSum
		s.Basic.MaxWinMult = max(s.Basic.MaxWinMult, v.Basic.MaxWinMult)
		s.Basic.WinRounds += v.Basic.WinRounds
		s.Basic.Rounds += v.Basic.Rounds

		addInto(s.Dist.WinCollect, v.Dist.WinCollect)
		addInto(s.Hits.Combos, v.Hits.Combos)
		addInto(s.Hits.Bonus, v.Hits.Bonus)
		for i := range s.Hits.Cells {
			addInto(s.Hits.Cells[i], v.Hits.Cells[i])
		}
	}
	return s, nil
}

// Record 以單次 SpinResult 更新所有統計
func (s *SpinRecorder) Record(sr *buf.SpinResult) {
	s.recordBasic(sr)
	s.recordHits(sr)
}

// Done 輸出統計報表（已呼叫 StatReport.Done）
func (s *SpinRecorder) Done() *stats.StatReport {
	b := s.Basic
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			GameName:   s.GameName,
			Bet:        s.betF,
			TotalBet:   b.TotalBet.InexactFloat64(),
			TotalWin:   b.TotalWin.InexactFloat64(),
			MaxWinMult: b.MaxWinMult,
			WinRounds:  b.WinRounds,
			Rounds:     b.Rounds,
		},
		Mult: &stats.MultReport{
			TotalWinMult:      b.WinMultSum,
			TotalWinMultSqSum: b.WinMultSqSum,
		},
		Dist: &stats.DistReport{
			WinBucket:  stats.Buckets.WinBucketStr(),
			WinCollect: append([]int(nil), s.Dist.WinCollect...),
		},
	}

	for i, wc := range s.gs.Catalog() {
		report.Combos = append(report.Combos, stats.ComboReport{
			Name:       wc.Name,
			Multiplier: wc.RewardMultiplier,
			Hits:       s.Hits.Combos[i],
		})
	}
	for i, name := range bonusNames(s.gs) {
		sym, _ := s.gs.Symbol(name)
		report.Bonus = append(report.Bonus, stats.BonusReport{
			Name:    name,
			Impact:  sym.Impact.String(),
			Applied: s.Hits.Bonus[i],
		})
	}
	for i, cd := range s.gs.Cells() {
		report.Cells = append(report.Cells, stats.CellAudit{
			Cell:     cellLabel(i, s.gs.Columns),
			Symbols:  cd.Names,
			Weights:  cd.Symbols.Values(),
			Observed: append([]int(nil), s.Hits.Cells[i]...),
		})
	}
	report.Done()
	return report
}

// ============================================================
// ** 以下內部方法 **
// ============================================================

func (s *SpinRecorder) recordBasic(sr *buf.SpinResult) {
	mult := sr.Reward.InexactFloat64() / s.betF

	s.Basic.TotalBet = s.Basic.TotalBet.Add(sr.Bet)
	s.Basic.TotalWin = s.Basic.TotalWin.Add(sr.Reward)
	s.Basic.WinMultSum += mult
	s.Basic.WinMultSqSum += mult * mult
	if mult > s.Basic.MaxWinMult {
		s.Basic.MaxWinMult = mult
	}
	if sr.Reward.IsPositive() {
		s.Basic.WinRounds++
	}
	s.Basic.Rounds++
	s.Dist.WinCollect[s.Dist.Bucket.Index(mult)]++
}

func (s *SpinRecorder) recordHits(sr *buf.SpinResult) {
	for _, wc := range sr.Combinations {
		if i, ok := s.comboIdx[wc.Name]; ok {
			s.Hits.Combos[i]++
		}
	}
	for _, sym := range sr.AppliedBonus {
		if i, ok := s.bonusIdx[sym.Name]; ok {
			s.Hits.Bonus[i]++
		}
	}
	if sr.Grid == nil {
		return
	}
	for i, name := range sr.Grid.Cells {
		if i >= len(s.cellIdx) {
			break
		}
		if j, ok := s.cellIdx[i][name]; ok {
			s.Hits.Cells[i][j]++
		}
	}
}

// bonusNames 依符號表順序列出會影響獎勵的 bonus 符號
func bonusNames(gs *spec.GameSetting) []string {
	out := make([]string, 0, 4)
	for _, e := range gs.Symbols {
		if sym, ok := gs.Symbol(e.Key); ok && sym.AffectsReward() {
			out = append(out, e.Key)
		}
	}
	return out
}

func cellLabel(i, cols int) string {
	return spec.Coord{Row: i / cols, Col: i % cols}.String()
}

func addInto(dst, src []int) {
	for i := range dst {
		dst[i] += src[i]
	}
}
