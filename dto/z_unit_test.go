package dto

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/corefmt"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/buf"
	"github.com/zintix-labs/scratchlab/spec"
)

func testResult(t *testing.T) *buf.SpinResult {
	t.Helper()
	g, err := buf.NewGridFromRows([][]string{{"A", "A", "B"}, {"A", "+1000", "A"}, {"A", "C", "D"}})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return &buf.SpinResult{
		Bet:           decimal.NewFromInt(100),
		Grid:          g,
		Reward:        decimal.NewFromInt(1200),
		Combinations:  []*spec.WinCombination{{Name: "same_symbol_5_times"}},
		AppliedBonus:  []*spec.Symbol{{Name: "+1000"}},
		StartCoreSnap: []byte{1, 2, 3},
	}
}

func TestSpinResultJSON(t *testing.T) {
	res, err := NewSpinResultDTO("classic_3x3", testResult(t))
	if err != nil {
		t.Fatalf("dto: %v", err)
	}
	var b bytes.Buffer
	if err := Render(&b, "json", res); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got struct {
		Matrix   [][]string `json:"matrix"`
		Reward   float64    `json:"reward"`
		Combos   []string   `json:"applied_winning_combinations"`
		Bonus    []string   `json:"applied_bonus_symbols"`
		SpinStat struct {
			Start string `json:"start_b64u"`
		} `json:"spin_state"`
	}
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("output must be valid json: %v\n%s", err, b.String())
	}
	if got.Reward != 1200 {
		t.Fatalf("reward must be a number 1200, got %v", got.Reward)
	}
	if len(got.Matrix) != 3 || got.Matrix[1][1] != "+1000" {
		t.Fatalf("unexpected matrix %v", got.Matrix)
	}
	if len(got.Combos) != 1 || got.Combos[0] != "same_symbol_5_times" {
		t.Fatalf("unexpected combinations %v", got.Combos)
	}
	if len(got.Bonus) != 1 || got.Bonus[0] != "+1000" {
		t.Fatalf("unexpected bonus %v", got.Bonus)
	}
	if got.SpinStat.Start != corefmt.EncodeBase64URL([]byte{1, 2, 3}) {
		t.Fatalf("unexpected start state %q", got.SpinStat.Start)
	}
}

func TestSpinResultWireKeys(t *testing.T) {
	res, err := NewSpinResultDTO("", testResult(t))
	if err != nil {
		t.Fatalf("dto: %v", err)
	}
	var b bytes.Buffer
	if err := Render(&b, "json", res); err != nil {
		t.Fatalf("render: %v", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b.Bytes(), &top); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"applied_bonus_symbols", "applied_winning_combinations", "bet", "matrix", "reward", "spin_state"}
	if got := slices.Sorted(maps.Keys(top)); !slices.Equal(got, want) {
		t.Fatalf("unexpected keys: want %v got %v", want, got)
	}
	var st map[string]string
	if err := json.Unmarshal(top["spin_state"], &st); err != nil {
		t.Fatalf("decode spin_state: %v", err)
	}
	if _, ok := st["start_b64u"]; !ok || len(st) != 1 {
		t.Fatalf("unexpected spin_state %v", st)
	}
}

func TestSpinResultYAMLAndUnknownFormat(t *testing.T) {
	res, _ := NewSpinResultDTO("", testResult(t))
	var b bytes.Buffer
	if err := Render(&b, "yaml", res); err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	if !strings.Contains(b.String(), "[A, A, B]") || strings.Contains(b.String(), "game:") {
		t.Fatalf("unexpected yaml:\n%s", b.String())
	}
	if err := Render(&b, "xml", res); !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestNilResult(t *testing.T) {
	if _, err := NewSpinResultDTO("x", nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestDecodeSpinRequest(t *testing.T) {
	snap := corefmt.EncodeBase64URL([]byte{9, 8, 7})
	req, err := DecodeSpinRequest(strings.NewReader(`{"bet":"0.10","start_state":{"start_b64u":"` + snap + `"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bet, got, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bet.Equal(decimal.RequireFromString("0.1")) {
		t.Fatalf("unexpected bet %s", bet)
	}
	if !bytes.Equal(got, []byte{9, 8, 7}) {
		t.Fatalf("unexpected snapshot %v", got)
	}

	req, err = DecodeSpinRequest(strings.NewReader(`{"bet":100}`))
	if err != nil {
		t.Fatalf("decode numeric bet: %v", err)
	}
	bet, got, err = req.Parse()
	if err != nil || !bet.Equal(decimal.NewFromInt(100)) || got != nil {
		t.Fatalf("unexpected parse result %s %v %v", bet, got, err)
	}
}

func TestDecodeSpinRequestRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"bet":1,"unknown":true}`,
		"trailing data": `{"bet":1} {"bet":2}`,
		"not json":      `bet=1`,
	}
	for name, body := range cases {
		if _, err := DecodeSpinRequest(strings.NewReader(body)); !errs.IsInvalidArgument(err) {
			t.Fatalf("%s: expected invalid argument, got %v", name, err)
		}
	}
	req, _ := DecodeSpinRequest(strings.NewReader(`{}`))
	if _, _, err := req.Parse(); !errs.IsInvalidArgument(err) {
		t.Fatalf("missing bet: expected invalid argument, got %v", err)
	}
}
