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

// Package runcfg 收攏 cmd/ 下工具程式共用的執行設定：環境變數預設值、押注與 seed 解析、結束碼。
//
// 優先序：flag > 環境變數 > 內建預設。
package runcfg

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
)

// Env 可由環境變數提供的預設值
type Env struct {
	Config  string `env:"SCRATCHLAB_CONFIG"`
	Bet     string `env:"SCRATCHLAB_BET"      envDefault:"1"`
	Seed    int64  `env:"SCRATCHLAB_SEED"     envDefault:"-1"`
	LogMode string `env:"SCRATCHLAB_LOG_MODE" envDefault:"dev"`
	Format  string `env:"SCRATCHLAB_FORMAT"`
}

// Exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1 // 設定內容或讀取失敗
	ExitInvalidArg = 2 // 參數錯誤（flag / 押注 / 格式）
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvFrom 與 ParseEnv 相同，但從給定的 map 讀取（測試用）。
func ParseEnvFrom(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv 讀取環境變數預設值；格式錯誤視為參數錯誤。
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, errs.InvalidArgf("%v", err)
	}
	return e, nil
}

// ParseBet 解析十進位押注字串；空字串、非數字或負數回傳 InvalidArgument。
func ParseBet(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errs.InvalidArgf("betting amount is required")
	}
	bet, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.InvalidArgf("invalid betting amount %q", s)
	}
	if bet.IsNegative() {
		return decimal.Zero, errs.InvalidArgf("betting amount must not be negative, got %s", s)
	}
	return bet, nil
}

// ResolveSeed seed < 0 時改用 crypto/rand 產生
func ResolveSeed(seed int64) (int64, error) {
	if seed >= 0 {
		return seed, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return n.Int64(), nil
}

// ExitCode 依錯誤分類決定結束碼
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errs.IsInvalidArgument(err):
		return ExitInvalidArg
	default:
		return ExitFailure
	}
}

// Report 紀錄錯誤並在 w 印出一行描述，回傳對應的結束碼；err 為 nil 時回傳 ExitOK。
func Report(log *slog.Logger, w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	kind := errs.KindOf(err).String()
	if kind == "" {
		kind = "unknown"
	}
	if log != nil {
		log.Error("run failed", slog.String("kind", kind), slog.Any("err", err))
	}
	fmt.Fprintln(w, "error:", Describe(err))
	return ExitCode(err)
}

// Describe 回傳給終端使用者的一行錯誤描述（最內層 *errs.E 的訊息）。
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if e, ok := cur.(*errs.E); ok {
			msg = e.Message
			if e.Extra != "" {
				msg += " (" + e.Extra + ")"
			}
		}
	}
	return msg
}
