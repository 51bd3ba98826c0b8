package spec

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/scratchlab/errs"
)

// SymbolKind 符號種類
type SymbolKind uint8

const (
	SymbolStandard SymbolKind = iota
	SymbolBonus
)

var symbolKindMap = map[string]SymbolKind{
	"":         SymbolStandard,
	"standard": SymbolStandard,
	"bonus":    SymbolBonus,
}

func ParseSymbolKind(s string) (SymbolKind, bool) {
	k, ok := symbolKindMap[s]
	return k, ok
}

func (k SymbolKind) String() string {
	if k == SymbolBonus {
		return "bonus"
	}
	return "standard"
}

// Impact bonus 符號對獎勵的作用（只對 bonus 種類有意義）
type Impact uint8

const (
	ImpactNone Impact = iota
	ImpactMultiplyReward
	ImpactExtraBonus
	ImpactMiss
)

var impactMap = map[string]Impact{
	"":                ImpactNone,
	"multiply_reward": ImpactMultiplyReward,
	"extra_bonus":     ImpactExtraBonus,
	"miss":            ImpactMiss,
}

var impactStr = map[Impact]string{
	ImpactNone:           "none",
	ImpactMultiplyReward: "multiply_reward",
	ImpactExtraBonus:     "extra_bonus",
	ImpactMiss:           "miss",
}

func ParseImpact(s string) (Impact, bool) {
	i, ok := impactMap[s]
	return i, ok
}

func (i Impact) String() string { return impactStr[i] }

// Symbol 描述符號表中的一個符號。
//
// RewardMultiplier：standard 符號為賠付倍數；multiply_reward 的 bonus 符號為總獎勵乘數。
// Extra：只有 extra_bonus 會用到，為直接加到總獎勵的金額。
type Symbol struct {
	Name             string          `yaml:"-"                           json:"-"`
	RewardMultiplier float64         `yaml:"reward_multiplier"           json:"reward_multiplier"`
	TypeStr          string          `yaml:"type"                        json:"type"`
	ImpactStr        string          `yaml:"impact,omitempty"            json:"impact,omitempty"`
	Extra            int             `yaml:"extra,omitempty"             json:"extra,omitempty"`
	Kind             SymbolKind      `yaml:"-"                           json:"-"`
	Impact           Impact          `yaml:"-"                           json:"-"`
	Multiplier       decimal.Decimal `yaml:"-"                           json:"-"`
	ExtraAmount      decimal.Decimal `yaml:"-"                           json:"-"`
	initFlag         bool
}

// Init 檢查設定並賦值
func (s *Symbol) Init() error {
	if s.initFlag {
		return nil
	}
	if s.Name == "" {
		return errs.Configf("symbol name is empty")
	}
	kind, ok := ParseSymbolKind(s.TypeStr)
	if !ok {
		return errs.Configf("symbol %s: unknown type %q", s.Name, s.TypeStr)
	}
	impact, ok := ParseImpact(s.ImpactStr)
	if !ok {
		return errs.Configf("symbol %s: unknown impact %q", s.Name, s.ImpactStr)
	}
	if kind == SymbolStandard && impact != ImpactNone {
		return errs.Configf("symbol %s: impact %q is only allowed on bonus symbols", s.Name, s.ImpactStr)
	}
	if s.RewardMultiplier < 0 {
		return errs.Configf("symbol %s: reward_multiplier must not be negative, got %v", s.Name, s.RewardMultiplier)
	}
	if s.Extra < 0 {
		return errs.Configf("symbol %s: extra must not be negative, got %d", s.Name, s.Extra)
	}
	s.Kind = kind
	s.Impact = impact
	s.Multiplier = decimal.NewFromFloat(s.RewardMultiplier)
	s.ExtraAmount = decimal.NewFromInt(int64(s.Extra))
	s.initFlag = true
	return nil
}

// IsBonus 回傳是否為 bonus 種類
func (s *Symbol) IsBonus() bool { return s.Kind == SymbolBonus }

// AffectsReward 回傳 bonus 符號是否會改變總獎勵（multiply_reward / extra_bonus）
func (s *Symbol) AffectsReward() bool {
	return s.Kind == SymbolBonus && (s.Impact == ImpactMultiplyReward || s.Impact == ImpactExtraBonus)
}

func (s *Symbol) String() string {
	if s.Kind == SymbolBonus {
		return fmt.Sprintf("%s(bonus,%s)", s.Name, s.Impact)
	}
	return fmt.Sprintf("%s(x%v)", s.Name, s.RewardMultiplier)
}
