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

package sampler

import (
	"math"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/core"
)

// -----------------------------------------------------------------------------
// Helper Functions
// -----------------------------------------------------------------------------

// checkDistribution 驗證抽樣結果的分佈是否符合預期權重
func checkDistribution(t *testing.T, name string, weights []int, samples []int, tolerance float64) {
	t.Helper()
	totalW := 0
	for _, w := range weights {
		totalW += w
	}
	counts := make(map[int]int)
	for _, idx := range samples {
		counts[idx]++
	}
	totalSamples := len(samples)
	for i, w := range weights {
		expect := float64(w) / float64(totalW)
		actual := float64(counts[i]) / float64(totalSamples)
		if math.Abs(expect-actual) > tolerance {
			t.Errorf("[%s] idx %d: expect %.4f, got %.4f (tolerance %.4f)", name, i, expect, actual, tolerance)
		}
	}
}

// -----------------------------------------------------------------------------
// CumTable
// -----------------------------------------------------------------------------

func TestCumTableLocate(t *testing.T) {
	tb, err := BuildCumTable([]int{3, 5, 2})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tb.Total() != 10 || tb.Len() != 3 {
		t.Fatalf("unexpected total/len: %d/%d", tb.Total(), tb.Len())
	}
	want := []int{0, 0, 0, 1, 1, 1, 1, 1, 2, 2}
	for r, w := range want {
		if got := tb.Locate(r); got != w {
			t.Fatalf("Locate(%d): want %d, got %d", r, w, got)
		}
	}
	if tb.Locate(-1) != -1 || tb.Locate(10) != -1 {
		t.Fatalf("out-of-range Locate must return -1")
	}
}

func TestCumTablePickUsesOneDraw(t *testing.T) {
	tb, _ := BuildCumTable([]int{3, 5, 2})
	seq := core.NewSequence(0, 3, 7, 8, 9)
	c := core.New(seq)
	want := []int{0, 1, 1, 2, 2}
	for i, w := range want {
		if got := tb.Pick(c); got != w {
			t.Fatalf("pick %d: want %d, got %d", i, w, got)
		}
	}
	if seq.Remaining() != 0 {
		t.Fatalf("expected exactly one draw per pick, %d left", seq.Remaining())
	}
}

func TestCumTableDistribution(t *testing.T) {
	weights := []int{1, 2, 3, 4, 5, 6}
	tb, _ := BuildCumTable(weights)
	c := core.New(core.Default().New(1))
	n := 200000
	samples := make([]int, n)
	for i := range samples {
		samples[i] = tb.Pick(c)
	}
	checkDistribution(t, "cumtable", weights, samples, 0.005)
}

func TestBuildCumTableRejectsBadWeights(t *testing.T) {
	cases := map[string][]int{
		"empty":    {},
		"zero":     {1, 0, 2},
		"negative": {3, -1},
	}
	for name, ws := range cases {
		_, err := BuildCumTable(ws)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !errs.IsConfig(err) {
			t.Fatalf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestCumTableEmptyPick(t *testing.T) {
	var tb CumTable
	c := core.New(core.NewSequence())
	if got := tb.Pick(c); got != -1 {
		t.Fatalf("expected -1 for empty table, got %d", got)
	}
}
