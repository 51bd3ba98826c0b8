package spec

import (
	"slices"
	"strings"

	"github.com/zintix-labs/scratchlab/errs"
)

// GameSetting 為一份完整的遊戲設定：盤面大小、符號表、每格權重、中獎組合表。
//
// 解析後呼叫 Init 做一次性的嚴格檢查；之後整份設定只讀，可被多台 Machine 共用。
type GameSetting struct {
	Name            string                     `yaml:"-"                json:"-"`
	Columns         int                        `yaml:"columns"          json:"columns"`
	Rows            int                        `yaml:"rows"             json:"rows"`
	Symbols         OrderedMap[Symbol]         `yaml:"symbols"          json:"symbols"`
	Probabilities   ProbabilitySetting         `yaml:"probabilities"    json:"probabilities"`
	WinCombinations OrderedMap[WinCombination] `yaml:"win_combinations" json:"win_combinations"`

	symbolIndex map[string]*Symbol
	catalog     []*WinCombination
	mismatch    []int
	initFlag    bool
}

// Init 初始化所有子設定並執行檢查。重複呼叫不會重做。
func (gs *GameSetting) Init() error {
	if gs.initFlag {
		return nil
	}
	if gs.Rows < 1 || gs.Columns < 1 {
		return errs.Configf("invalid grid dimensions: rows=%d columns=%d", gs.Rows, gs.Columns)
	}
	if err := gs.initSymbols(); err != nil {
		return err
	}
	if err := gs.initProbabilities(); err != nil {
		return err
	}
	if err := gs.initCombinations(); err != nil {
		return err
	}
	gs.initFlag = true
	return nil
}

// Symbol 依名稱查詢符號（Init 之後可用）
func (gs *GameSetting) Symbol(name string) (*Symbol, bool) {
	s, ok := gs.symbolIndex[name]
	return s, ok
}

// Catalog 回傳依名稱排序的中獎組合表（Init 之後可用）
func (gs *GameSetting) Catalog() []*WinCombination {
	return gs.catalog
}

// Cells 回傳 row*columns+col 對應的前 rows*columns 個格子設定
func (gs *GameSetting) Cells() []CellDistribution {
	return gs.Probabilities.StandardSymbols[:gs.CellCount()]
}

// CellCount 回傳盤面格數
func (gs *GameSetting) CellCount() int {
	return gs.Rows * gs.Columns
}

// PositionMismatches 回傳宣告的 row/column 與其索引位置不一致的格子索引。
func (gs *GameSetting) PositionMismatches() []int {
	return gs.mismatch
}

// ============================================================
// ** 以下內部方法 **
// ============================================================

func (gs *GameSetting) initSymbols() error {
	if len(gs.Symbols) == 0 {
		return errs.Configf("symbols is empty")
	}
	gs.symbolIndex = make(map[string]*Symbol, len(gs.Symbols))
	for i := range gs.Symbols {
		e := &gs.Symbols[i]
		e.Value.Name = e.Key
		if err := e.Value.Init(); err != nil {
			return err
		}
		gs.symbolIndex[e.Key] = &e.Value
	}
	return nil
}

func (gs *GameSetting) initProbabilities() error {
	cells := gs.Probabilities.StandardSymbols
	need := gs.CellCount()
	if len(cells) < need {
		return errs.Configf("insufficient cell distributions for requested grid size: have %d, need %d (%dx%d)", len(cells), need, gs.Rows, gs.Columns)
	}
	gs.mismatch = gs.mismatch[:0]
	for i := range cells[:need] {
		cd := &cells[i]
		if err := cd.Init(); err != nil {
			return err
		}
		for _, name := range cd.Names {
			if _, ok := gs.symbolIndex[name]; !ok {
				return errs.Configf("cell %d (%d:%d): symbol %q not in symbols", i, cd.Row, cd.Column, name)
			}
		}
		if cd.Row*gs.Columns+cd.Column != i {
			gs.mismatch = append(gs.mismatch, i)
		}
	}
	// 超出盤面的多餘格子不會被抽樣，但引用的符號仍須存在
	for i := need; i < len(cells); i++ {
		for _, name := range cells[i].Symbols.Keys() {
			if _, ok := gs.symbolIndex[name]; !ok {
				return errs.Configf("cell %d: symbol %q not in symbols", i, name)
			}
		}
	}
	if bd := gs.Probabilities.BonusSymbols; bd != nil {
		for _, e := range bd.Symbols {
			s, ok := gs.symbolIndex[e.Key]
			if !ok {
				return errs.Configf("bonus_symbols: symbol %q not in symbols", e.Key)
			}
			if !s.IsBonus() {
				return errs.Configf("bonus_symbols: symbol %q is not of type bonus", e.Key)
			}
			if e.Value <= 0 {
				return errs.Configf("bonus_symbols: weight of %q must be positive, got %d", e.Key, e.Value)
			}
		}
	}
	return nil
}

func (gs *GameSetting) initCombinations() error {
	gs.catalog = make([]*WinCombination, 0, len(gs.WinCombinations))
	for i := range gs.WinCombinations {
		e := &gs.WinCombinations[i]
		e.Value.Name = e.Key
		if err := e.Value.Init(gs.Rows, gs.Columns); err != nil {
			return err
		}
		gs.catalog = append(gs.catalog, &e.Value)
	}
	slices.SortFunc(gs.catalog, func(a, b *WinCombination) int {
		return strings.Compare(a.Name, b.Name)
	})
	return nil
}
