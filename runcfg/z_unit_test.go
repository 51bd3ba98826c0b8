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

package runcfg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
)

func TestParseEnvFrom(t *testing.T) {
	var e Env
	err := ParseEnvFrom(&e, map[string]string{
		"SCRATCHLAB_CONFIG":   "game.json",
		"SCRATCHLAB_SEED":     "42",
		"SCRATCHLAB_LOG_MODE": "prod",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if e.Config != "game.json" || e.Seed != 42 || e.LogMode != "prod" || e.Bet != "1" {
		t.Fatalf("unexpected env %+v", e)
	}

	var d Env
	if err := ParseEnvFrom(&d, map[string]string{}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if d.Seed != -1 || d.LogMode != "dev" {
		t.Fatalf("unexpected defaults %+v", d)
	}

	if err := ParseEnvFrom(&d, map[string]string{"SCRATCHLAB_SEED": "abc"}); err == nil {
		t.Fatalf("expected error for bad seed")
	}
}

func TestParseBet(t *testing.T) {
	bet, err := ParseBet(" 0.10 ")
	if err != nil || bet.String() != "0.1" {
		t.Fatalf("unexpected bet %s (%v)", bet, err)
	}
	if bet, err := ParseBet("0"); err != nil || !bet.IsZero() {
		t.Fatalf("zero bet is valid: %v", err)
	}
	for _, s := range []string{"", "abc", "-1"} {
		if _, err := ParseBet(s); !errs.IsInvalidArgument(err) {
			t.Fatalf("ParseBet(%q): expected invalid argument, got %v", s, err)
		}
	}
}

func TestResolveSeed(t *testing.T) {
	if s, _ := ResolveSeed(7); s != 7 {
		t.Fatalf("explicit seed must be kept")
	}
	s, err := ResolveSeed(-1)
	if err != nil || s < 0 {
		t.Fatalf("unexpected random seed %d (%v)", s, err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errs.InvalidArgf("bad bet"), ExitInvalidArg},
		{errs.Configf("bad weight"), ExitFailure},
		{errs.WrapIO(fmt.Errorf("missing"), "read"), ExitFailure},
		{fmt.Errorf("wrapped: %w", errs.InvalidArgf("x")), ExitInvalidArg},
	}
	for i, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("case %d: want %d got %d", i, tc.want, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	err := errs.WrapWithExtra(errs.Configf("weight must be positive"), "parse game setting failed", "game.json")
	if got := Describe(err); got != "weight must be positive" {
		t.Fatalf("unexpected description %q", got)
	}
	if Describe(nil) != "" {
		t.Fatalf("nil error must describe as empty")
	}
}

func TestReport(t *testing.T) {
	var b strings.Builder
	if code := Report(nil, &b, nil); code != ExitOK || b.Len() != 0 {
		t.Fatalf("nil error must be silent and exit 0")
	}
	code := Report(nil, &b, errs.Configf("insufficient cell distributions"))
	if code != ExitFailure || !strings.Contains(b.String(), "insufficient cell distributions") {
		t.Fatalf("unexpected report %d %q", code, b.String())
	}
}
