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
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/recorder"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
	"github.com/zintix-labs/scratchlab/stats"
)

const capPrepare int = 100

// Simulator 以固定押注大量 Spin，驗證設定的經濟表現（RTP、波動、組合觸發率、格子抽樣分佈）。
//
// 每個 worker 各持一台 Machine（各自的 PRNG，seed 由 seedMaker 派生）與一個 SpinRecorder，
// 結束後合併。Simulator 本身不是併發安全的：同一時間只跑一個 Sim / SimMP。
type Simulator struct {
	GameName  string
	gs        *spec.GameSetting
	cf        core.PRNGFactory
	log       *slog.Logger
	initSeed  int64
	seedmaker *seedMaker
	mBuf      []*Machine               // 併發執行機台實例
	rBuf      []*recorder.SpinRecorder // 併發遊戲紀錄員
}

func newSimulatorWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64, log *slog.Logger) (*Simulator, error) {
	s := &Simulator{
		GameName:  gs.Name,
		gs:        gs,
		cf:        cf,
		log:       log,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		mBuf:      make([]*Machine, 1, capPrepare),
		rBuf:      make([]*recorder.SpinRecorder, 0, capPrepare),
	}
	m, err := newMachineWithSeed(gs, cf, s.initSeed, log)
	if err != nil {
		return nil, err
	}
	s.mBuf[0] = m
	return s, nil
}

// InitSeed 回傳模擬器的初始 seed；第一台機台直接使用此 seed。
func (s *Simulator) InitSeed() int64 { return s.initSeed }

// Sim 單線模擬器：以一台機台連續跑指定 round 並回傳統計結果與用時
func (s *Simulator) Sim(bet decimal.Decimal, round int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if round < 1 {
		return nil, 0, errs.InvalidArgf("round must > 0")
	}
	r, err := recorder.NewSpinRecorder(s.gs, bet)
	if err != nil {
		return nil, 0, err
	}
	s.rBuf = append(s.rBuf, r)
	m := s.mBuf[0]

	bar := newBar(round, showpb)
	for i := 0; i < round; i++ {
		sr, err := m.spinInternal(bet)
		if err != nil {
			bar.Finish()
			return nil, 0, err
		}
		r.Record(sr)
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	result := r.Done()
	s.logDone(result, used, 1)
	return result, used, nil
}

// SimMP 平行執行多個機台，總計 rounds*mp 次 spin，合併統計結果後 回傳統計結果與用時
func (s *Simulator) SimMP(bet decimal.Decimal, rounds int, mp int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, 0, errs.InvalidArgf("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.InvalidArgf("round must > 0")
	}
	for len(s.mBuf) < mp {
		m, err := newMachineWithSeed(s.gs, s.cf, s.seedmaker.next(), s.log)
		if err != nil {
			return nil, 0, err
		}
		s.mBuf = append(s.mBuf, m)
	}
	for len(s.rBuf) < mp {
		r, err := recorder.NewSpinRecorder(s.gs, bet)
		if err != nil {
			return nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := newBar(rounds*mp, showpb)
	failed := make([]error, mp)
	var stop atomic.Bool
	for i := 0; i < mp; i++ {
		go func(i int) {
			defer wg.Done()
			g := s.mBuf[i]
			st := s.rBuf[i]
			for r := 0; r < rounds && !stop.Load(); r++ {
				sr, err := g.spinInternal(bet)
				if err != nil {
					failed[i] = err
					stop.Store(true)
					return
				}
				st.Record(sr)
				bar.Increment()
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	for _, err := range failed {
		if err != nil {
			return nil, 0, err
		}
	}
	st, err := recorder.MergeSpinRecorder(s.rBuf[:mp])
	if err != nil {
		return nil, 0, err
	}
	result := st.Done()
	s.logDone(result, used, mp)
	return result, used, nil
}

func (s *Simulator) logDone(r *stats.StatReport, used time.Duration, workers int) {
	if s.log == nil {
		return
	}
	s.log.Info("simulation done",
		slog.String("game", s.GameName),
		slog.Int("rounds", r.Summary.Rounds),
		slog.Int("workers", workers),
		slog.Float64("rtp", r.Summary.RTP),
		slog.Duration("used", used))
	if c, ok := r.WorstCell(); ok && c.PValue < 1-stats.Confidence {
		s.log.Warn("cell sampling deviates from configured weights",
			slog.String("cell", c.Cell),
			slog.Float64("chi_square", c.ChiSquare),
			slog.Float64("p_value", c.PValue))
	}
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
}

func newBar(total int, show bool) *pb.ProgressBar {
	bar := pb.New(total)
	if !show {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以全週期 LCG（mod 2^63）推進 state，再用可逆的 mix63 打散。
// CAS 迴圈讓併發呼叫也各自拿到唯一的下一個 state。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
