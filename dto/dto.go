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

package dto

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/zintix-labs/scratchlab/corefmt"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
)

// SpinResult 對外輸出的單局結果
type SpinResult struct {
	Game                       string     `json:"game,omitempty"               yaml:"game,omitempty"`
	Matrix                     [][]string `json:"matrix"                       yaml:"matrix"`
	Bet                        float64    `json:"bet"                          yaml:"bet"`
	Reward                     float64    `json:"reward"                       yaml:"reward"`
	AppliedWinningCombinations []string   `json:"applied_winning_combinations" yaml:"applied_winning_combinations"`
	AppliedBonusSymbols        []string   `json:"applied_bonus_symbols"        yaml:"applied_bonus_symbols"`
	State                      SpinState  `json:"spin_state"                   yaml:"spin_state"`
}

// SpinState 局前 PRNG 狀態；帶回 SpinRequest.StartState 即可重播同一局。
type SpinState struct {
	StartCoreSnapB64U string `json:"start_b64u" yaml:"start_b64u"`
}

// NewSpinResultDTO 將內部結果轉成可序列化的 DTO（深拷貝盤面）
func NewSpinResultDTO(game string, sr *buf.SpinResult) (SpinResult, error) {
	if sr == nil || sr.Grid == nil {
		return SpinResult{}, errs.NewWarn("spin result is nil")
	}
	return SpinResult{
		Game:                       game,
		Matrix:                     sr.Grid.Matrix(),
		Bet:                        sr.Bet.InexactFloat64(),
		Reward:                     sr.Reward.InexactFloat64(),
		AppliedWinningCombinations: sr.CombinationNames(),
		AppliedBonusSymbols:        sr.BonusNames(),
		State: SpinState{
			StartCoreSnapB64U: corefmt.EncodeBase64URL(sr.StartCoreSnap),
		},
	}, nil
}

// Render 依格式（json / yaml）輸出 SpinResult
func Render(w io.Writer, format string, res SpinResult) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml", "yml":
		return corefmt.WriteReadableYAML(w, &res)
	default:
		return errs.InvalidArgf("unknown output format %q: want json or yaml", format)
	}
}
