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
	"io/fs"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/demo/demo_configs"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/spec"
)

func classic(t *testing.T) *spec.GameSetting {
	t.Helper()
	raw, err := fs.ReadFile(demo_configs.FS, demo_configs.Classic)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	gs, err := spec.GetGameSettingByJSON(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gs.Name = "classic_3x3"
	return gs
}

func filled(gs *spec.GameSetting, sym string) *buf.Grid {
	g := buf.NewGrid(gs.Rows, gs.Columns)
	for i := range g.Cells {
		g.Cells[i] = sym
	}
	return g
}

func winResult(gs *spec.GameSetting) *buf.SpinResult {
	five, _ := gs.Symbol("5x")
	return &buf.SpinResult{
		Bet:          decimal.NewFromInt(100),
		Grid:         filled(gs, "A"),
		Reward:       decimal.NewFromInt(200),
		Combinations: []*spec.WinCombination{gs.Catalog()[0]},
		AppliedBonus: []*spec.Symbol{five},
	}
}

func loseResult(gs *spec.GameSetting) *buf.SpinResult {
	return &buf.SpinResult{
		Bet:    decimal.NewFromInt(100),
		Grid:   filled(gs, "B"),
		Reward: decimal.Zero,
	}
}

func TestNewSpinRecorderRejectsBet(t *testing.T) {
	gs := classic(t)
	for _, bet := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		if _, err := NewSpinRecorder(gs, bet); !errs.IsInvalidArgument(err) {
			t.Fatalf("bet %s: expected invalid argument, got %v", bet, err)
		}
	}
	if _, err := NewSpinRecorder(nil, decimal.NewFromInt(1)); !errs.IsConfig(err) {
		t.Fatalf("nil setting must be a config error, got %v", err)
	}
}

func TestRecordAndDone(t *testing.T) {
	gs := classic(t)
	r, err := NewSpinRecorder(gs, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	r.Record(winResult(gs))
	r.Record(loseResult(gs))

	rep := r.Done()
	if rep.Summary.GameName != "classic_3x3" {
		t.Fatalf("unexpected game name %q", rep.Summary.GameName)
	}
	if rep.Summary.Rounds != 2 || rep.Summary.WinRounds != 1 || rep.Summary.NoWinRounds != 1 {
		t.Fatalf("unexpected rounds %+v", rep.Summary)
	}
	if rep.Summary.TotalBet != 200 || rep.Summary.TotalWin != 200 || rep.Summary.RTP != 1 {
		t.Fatalf("unexpected totals %+v", rep.Summary)
	}
	if rep.Summary.MaxWinMult != 2 || rep.Summary.HitRate != 0.5 {
		t.Fatalf("unexpected max/hit rate %+v", rep.Summary)
	}
	// 0 倍落在 [0,0]，2 倍落在 [2,5)
	if rep.Dist.WinCollect[0] != 1 || rep.Dist.WinCollect[3] != 1 {
		t.Fatalf("unexpected distribution %v", rep.Dist.WinCollect)
	}
	if rep.Combos[0].Name != gs.Catalog()[0].Name || rep.Combos[0].Hits != 1 || rep.Combos[0].Rate != 0.5 {
		t.Fatalf("unexpected combo report %+v", rep.Combos[0])
	}
	for _, b := range rep.Bonus {
		want := 0
		if b.Name == "5x" {
			want = 1
		}
		if b.Applied != want {
			t.Fatalf("bonus %s: want %d applied, got %d", b.Name, want, b.Applied)
		}
		if b.Name == "MISS" {
			t.Fatalf("MISS has no reward effect and must not be tracked")
		}
	}
	if len(rep.Cells) != 9 || rep.Cells[4].Cell != "1:1" {
		t.Fatalf("unexpected cell audit %+v", rep.Cells)
	}
	c0 := rep.Cells[0]
	seen := map[string]int{}
	for i, name := range c0.Symbols {
		seen[name] = c0.Observed[i]
	}
	if seen["A"] != 1 || seen["B"] != 1 {
		t.Fatalf("unexpected observed counts %v", seen)
	}
}

func TestMergeSpinRecorder(t *testing.T) {
	gs := classic(t)
	bet := decimal.NewFromInt(100)
	a, _ := NewSpinRecorder(gs, bet)
	b, _ := NewSpinRecorder(gs, bet)
	a.Record(winResult(gs))
	b.Record(loseResult(gs))
	b.Record(winResult(gs))

	m, err := MergeSpinRecorder([]*SpinRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Basic.Rounds != 3 || m.Basic.WinRounds != 2 {
		t.Fatalf("unexpected merged rounds %+v", m.Basic)
	}
	if !m.Basic.TotalWin.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("unexpected merged win %s", m.Basic.TotalWin)
	}
	if m.Hits.Combos[0] != 2 {
		t.Fatalf("unexpected merged combo hits %v", m.Hits.Combos)
	}

	other, _ := NewSpinRecorder(gs, decimal.NewFromInt(50))
	if _, err := MergeSpinRecorder([]*SpinRecorder{a, other}); err == nil {
		t.Fatalf("expected error merging different bets")
	}
	if _, err := MergeSpinRecorder(nil); err == nil {
		t.Fatalf("expected error merging nothing")
	}
}
