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
	"io/fs"
	"strings"
	"testing"
)

func TestKindSurvivesWrap(t *testing.T) {
	base := Configf("weight must be positive")
	w := Wrap(base, "init failed")
	if w.ErrLv != Fatal || w.Kind != KindConfig {
		t.Fatalf("wrap must keep level and kind, got %v/%v", w.ErrLv, w.Kind)
	}
	outer := fmt.Errorf("outer: %w", WrapWithExtra(w, "load", "demo"))
	if !IsConfig(outer) {
		t.Fatalf("kind must be visible through fmt wrapping")
	}
	if !errors.Is(outer, base) {
		t.Fatalf("errors.Is must reach the base error")
	}
}

func TestWrapIO(t *testing.T) {
	e := WrapIO(fs.ErrNotExist, "read failed")
	if !IsIO(e) || e.ErrLv != Fatal {
		t.Fatalf("expected fatal io error, got %v", e)
	}
	// 已有分類者保留原分類
	e = WrapIO(InvalidArgf("bad"), "read failed")
	if !IsInvalidArgument(e) || e.ErrLv != Warn {
		t.Fatalf("expected invalid argument to survive, got %v", e)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("x")) != KindNone || KindOf(nil) != KindNone {
		t.Fatalf("plain errors carry no kind")
	}
	// 第一個有分類的 *E 決定結果
	e := Wrap(NewFatal("no kind"), "outer")
	if KindOf(e) != KindNone {
		t.Fatalf("expected no kind, got %v", KindOf(e))
	}
}

func TestErrorString(t *testing.T) {
	e := WrapWithExtra(InvalidArgf("bet is negative"), "spin failed", "bet=-1")
	s := e.Error()
	for _, want := range []string{"errlv=warn", "kind=invalid_argument", "spin failed", "extra: bet=-1", "cause:"} {
		if !strings.Contains(s, want) {
			t.Fatalf("error string %q missing %q", s, want)
		}
	}
	if ErrLv(ErrLevel(99)) != "" {
		t.Fatalf("unknown level must render empty")
	}
}
