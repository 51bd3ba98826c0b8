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

package demo

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
)

func TestDemoSettings(t *testing.T) {
	if !slices.Equal(Names(), []string{"classic_3x3", "wide_4x5"}) {
		t.Fatalf("unexpected demo names %v", Names())
	}
	gs, err := Setting("")
	if err != nil {
		t.Fatalf("default setting: %v", err)
	}
	if gs.Name != Default {
		t.Fatalf("want %s, got %s", Default, gs.Name)
	}
	if _, err := Setting("nope"); !errs.IsInvalidArgument(err) {
		t.Fatalf("unknown demo must be an invalid argument, got %v", err)
	}
}

func TestDemoLabSpins(t *testing.T) {
	for _, name := range Names() {
		lab, err := NewLab(name, nil)
		if err != nil {
			t.Fatalf("%s: new lab: %v", name, err)
		}
		m, err := lab.NewMachineWithSeed(1)
		if err != nil {
			t.Fatalf("%s: machine: %v", name, err)
		}
		gs := lab.Setting()
		for i := 0; i < 200; i++ {
			sr, err := m.Spin(decimal.NewFromInt(100))
			if err != nil {
				t.Fatalf("%s: spin %d: %v", name, i, err)
			}
			if sr.Grid.Rows != gs.Rows || sr.Grid.Cols != gs.Columns {
				t.Fatalf("%s: unexpected grid shape %dx%d", name, sr.Grid.Rows, sr.Grid.Cols)
			}
			for _, s := range sr.Grid.Cells {
				if _, ok := gs.Symbol(s); !ok {
					t.Fatalf("%s: symbol %q not in catalog", name, s)
				}
			}
			if sr.Reward.IsNegative() {
				t.Fatalf("%s: negative reward %s", name, sr.Reward)
			}
		}
	}
}
