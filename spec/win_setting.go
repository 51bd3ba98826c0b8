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

package spec

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
)

// Group 定義中獎組合的形態
type Group uint8

const (
	GroupUnknown Group = iota
	GroupSameSymbols
	GroupHorizontal
	GroupVertical
	GroupDiagonalLTR
	GroupDiagonalRTL
)

var groupMap = map[string]Group{
	"same_symbols":                  GroupSameSymbols,
	"horizontally_linear_symbols":   GroupHorizontal,
	"vertically_linear_symbols":     GroupVertical,
	"ltr_diagonally_linear_symbols": GroupDiagonalLTR,
	"rtl_diagonally_linear_symbols": GroupDiagonalRTL,
}

func ParseGroup(s string) (Group, bool) {
	g, ok := groupMap[s]
	return g, ok
}

// IsGroupShape 回傳是否屬於座標形狀類（水平、垂直、兩種斜線）
func IsGroupShape(g Group) bool {
	return g == GroupHorizontal || g == GroupVertical || g == GroupDiagonalLTR || g == GroupDiagonalRTL
}

// TriggerKind 觸發判斷方式
type TriggerKind uint8

const (
	TriggerNone      TriggerKind = iota // 永不觸發
	TriggerFrequency                    // 全盤單一符號出現次數 >= Threshold
	TriggerShape                        // 任一 Area 內所有座標符號相同
)

// Coord 盤面座標
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return strconv.Itoa(c.Row) + ":" + strconv.Itoa(c.Col)
}

// ParseCoord 解析 "row:col" 格式的座標字串
func ParseCoord(s string) (Coord, error) {
	r, c, ok := strings.Cut(s, ":")
	if !ok {
		return Coord{}, errs.Configf("invalid coordinate %q: want \"row:col\"", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return Coord{}, errs.Configf("invalid coordinate %q: bad row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Coord{}, errs.Configf("invalid coordinate %q: bad column", s)
	}
	return Coord{Row: row, Col: col}, nil
}

// Trigger 為中獎組合的判斷方式與其參數。
//
// Frequency 只使用 Threshold；Shape 只使用 Areas。
type Trigger struct {
	Kind      TriggerKind
	Threshold int
	Areas     [][]Coord
}

// WinCombination 描述一個中獎組合
type WinCombination struct {
	Name             string          `yaml:"-"                       json:"-"`
	RewardMultiplier float64         `yaml:"reward_multiplier"       json:"reward_multiplier"`
	When             string          `yaml:"when"                    json:"when"`
	Count            int             `yaml:"count,omitempty"         json:"count,omitempty"`
	GroupStr         string          `yaml:"group"                   json:"group"`
	CoveredAreas     [][]string      `yaml:"covered_areas,omitempty" json:"covered_areas,omitempty"`
	Group            Group           `yaml:"-"                       json:"-"`
	Trigger          Trigger         `yaml:"-"                       json:"-"`
	Multiplier       decimal.Decimal `yaml:"-"                       json:"-"`
	initFlag         bool
}

// Init 解析 group 並建立 Trigger，同時檢查座標是否落在 rows x cols 盤面內。
func (wc *WinCombination) Init(rows, cols int) error {
	if wc.initFlag {
		return nil
	}
	if wc.Name == "" {
		return errs.Configf("win combination name is empty")
	}
	g, ok := ParseGroup(wc.GroupStr)
	if !ok {
		return errs.Configf("win combination %s: unknown group %q", wc.Name, wc.GroupStr)
	}
	if wc.RewardMultiplier < 0 {
		return errs.Configf("win combination %s: reward_multiplier must not be negative", wc.Name)
	}
	wc.Group = g

	switch {
	case g == GroupSameSymbols:
		if wc.When != "" && wc.When != "same_symbols" {
			return errs.Configf("win combination %s: when %q does not match group %s", wc.Name, wc.When, wc.GroupStr)
		}
		if wc.Count < 1 {
			return errs.Configf("win combination %s: count must >= 1, got %d", wc.Name, wc.Count)
		}
		wc.Trigger = Trigger{Kind: TriggerFrequency, Threshold: wc.Count}
	case IsGroupShape(g):
		if wc.When != "" && wc.When != "linear_symbols" {
			return errs.Configf("win combination %s: when %q does not match group %s", wc.Name, wc.When, wc.GroupStr)
		}
		if len(wc.CoveredAreas) == 0 {
			return errs.Configf("win combination %s: covered_areas is empty", wc.Name)
		}
		areas := make([][]Coord, len(wc.CoveredAreas))
		for i, area := range wc.CoveredAreas {
			if len(area) == 0 {
				return errs.Configf("win combination %s: covered_areas[%d] is empty", wc.Name, i)
			}
			areas[i] = make([]Coord, len(area))
			for j, s := range area {
				c, err := ParseCoord(s)
				if err != nil {
					return errs.WrapWithExtra(err, "parse covered area failed", wc.Name)
				}
				if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
					return errs.Configf("win combination %s: coordinate %q out of %dx%d grid", wc.Name, s, rows, cols)
				}
				areas[i][j] = c
			}
		}
		wc.Trigger = Trigger{Kind: TriggerShape, Areas: areas}
	}

	wc.Multiplier = decimal.NewFromFloat(wc.RewardMultiplier)
	wc.initFlag = true
	return nil
}
