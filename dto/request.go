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
	"errors"
	"io"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/corefmt"
	"github.com/zintix-labs/scratchlab/errs"
)

// maxRequestBytes 請求本體大小上限
const maxRequestBytes = 1 << 20

// SpinRequest 以 JSON 描述一次 Spin 的輸入。
//
//   - bet：押注額，數字或字串皆可（"0.10" 可保留精度）。
//   - start_state.start_b64u：可選；帶入先前回傳的局前狀態即重播該局。
type SpinRequest struct {
	Bet        json.Number `json:"bet"`
	StartState *SpinState  `json:"start_state,omitempty"`
}

// DecodeSpinRequest 從 r 解碼 SpinRequest；未知欄位、多餘資料一律拒絕。
func DecodeSpinRequest(r io.Reader) (*SpinRequest, error) {
	if r == nil {
		return nil, errs.InvalidArgf("nil request reader")
	}
	dec := json.NewDecoder(io.LimitReader(r, maxRequestBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	req := new(SpinRequest)
	if err := dec.Decode(req); err != nil {
		return nil, errs.InvalidArgf("decode spin request failed: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errs.InvalidArgf("spin request must contain a single JSON object")
	}
	return req, nil
}

// Parse 取得押注與（可選的）局前 PRNG 狀態
func (r *SpinRequest) Parse() (decimal.Decimal, []byte, error) {
	if r.Bet == "" {
		return decimal.Zero, nil, errs.InvalidArgf("bet is required")
	}
	bet, err := decimal.NewFromString(r.Bet.String())
	if err != nil {
		return decimal.Zero, nil, errs.InvalidArgf("invalid bet %q", r.Bet)
	}
	if r.StartState == nil || r.StartState.StartCoreSnapB64U == "" {
		return bet, nil, nil
	}
	snap, err := corefmt.DecodeBase64URL(r.StartState.StartCoreSnapB64U)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return bet, snap, nil
}
