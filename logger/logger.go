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

// Package logger 組裝工具程式使用的 *slog.Logger。
//
// 所有模式都寫到 stderr（或呼叫端指定的 io.Writer），stdout 只留給結果輸出。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/zintix-labs/scratchlab/errs"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev     LogMode = iota // 文字格式，debug 等級
	ModeProd                   // JSON 格式，info 等級
	ModeSilence                // 全部丟棄
)

var modeMap = map[string]LogMode{
	"dev":     ModeDev,
	"prod":    ModeProd,
	"silence": ModeSilence,
}

func (m LogMode) String() string {
	for k, v := range modeMap {
		if v == m {
			return k
		}
	}
	return "unknown"
}

// ParseLogMode 解析 flag / env 上的模式字串（不分大小寫），空字串視為 dev。
func ParseLogMode(s string) (LogMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeDev, nil
	}
	m, ok := modeMap[s]
	if !ok {
		return ModeDev, errs.InvalidArgf("unknown log mode %q (want dev, prod or silence)", s)
	}
	return m, nil
}

// NewDefaultLogger returns a *slog.Logger built from LogMode defaults, writing to stderr.
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(os.Stderr, mode))
}

// NewLoggerTo 與 NewDefaultLogger 相同，但寫到指定的 w。
func NewLoggerTo(w io.Writer, mode LogMode) *slog.Logger {
	return slog.New(buildHandler(w, mode))
}

// NewLogger wraps a Handler into a *slog.Logger.
// 呼叫者自行組裝 Handler（JSON/Text/ReplaceAttr/LevelVar...）；nil 時使用 dev 預設。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(os.Stderr, ModeDev)
	}
	return slog.New(h)
}

// Silent 回傳丟棄所有紀錄的 logger
func Silent() *slog.Logger {
	return slog.New(buildHandler(io.Discard, ModeSilence))
}

// OrSilent 在 l 為 nil 時回傳 Silent()
func OrSilent(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Silent()
	}
	return l
}

// WithRunID 產生一組 run_id 並掛到 logger 上，回傳新的 logger 與 id。
func WithRunID(l *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return OrSilent(l).With(slog.String("run_id", id)), id
}

func buildHandler(w io.Writer, logmode LogMode) slog.Handler {
	switch logmode {
	case ModeDev:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
