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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Kind : 錯誤分類，讓呼叫端可以區分「設定錯誤」「參數錯誤」「讀取錯誤」
type Kind uint8

const (
	KindNone            Kind = iota
	KindConfig               // 設定內容不合法（盤面太大、權重為零、座標越界、未知符號）
	KindInvalidArgument      // 呼叫參數不合法（負押注）
	KindIO                   // 設定來源無法讀取或格式錯誤
)

var kindMap = map[Kind]string{
	KindNone:            "",
	KindConfig:          "config",
	KindInvalidArgument: "invalid_argument",
	KindIO:              "io",
}

func (k Kind) String() string {
	return kindMap[k]
}

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；ErrLv 為嚴重度；Kind 為錯誤分類。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
	Kind    Kind
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s", ErrLv(e.ErrLv))
	if e.Kind != KindNone {
		base += " kind=" + e.Kind.String()
	}
	base += " " + e.Message
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// New 依錯誤等級建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Configf 建立設定錯誤。設定錯誤一律視為 Fatal：重試不會改變結果。
func Configf(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), ErrLv: Fatal, Kind: KindConfig}
}

// InvalidArgf 建立參數錯誤（Warn 等級，屬於呼叫端可修正的請求問題）。
func InvalidArgf(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), ErrLv: Warn, Kind: KindInvalidArgument}
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定訊息包裝底層錯誤，建立一個 *E。
//
// 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv 與 Kind。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	errLv, kind := Fatal, KindNone
	if e, ok := AsErr(cause); ok {
		errLv, kind = e.ErrLv, e.Kind
	}
	return &E{Message: msg, Cause: cause, ErrLv: errLv, Kind: kind}
}

// WrapWithExtra 與 Wrap 相同，另外附加上下文。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := Wrap(cause, msg)
	r.Extra = extra
	return r
}

// WrapIO 將讀取/解析來源時的錯誤標記為 KindIO。
//
// 若 cause 已經帶有分類（例如解析後的設定驗證失敗為 KindConfig），保留原分類。
func WrapIO(cause error, msg string) *E {
	r := Wrap(cause, msg)
	if r.Kind == KindNone {
		r.Kind = KindIO
		r.ErrLv = Fatal
	}
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// KindOf 回傳錯誤鏈上第一個有分類的 *E 的 Kind。
func KindOf(err error) Kind {
	for err != nil {
		var e *E
		if !errors.As(err, &e) {
			return KindNone
		}
		if e.Kind != KindNone {
			return e.Kind
		}
		err = e.Cause
	}
	return KindNone
}

func IsConfig(err error) bool          { return KindOf(err) == KindConfig }
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
func IsIO(err error) bool              { return KindOf(err) == KindIO }
