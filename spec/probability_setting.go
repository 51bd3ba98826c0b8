package spec

import (
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/sdk/sampler"
)

// CellDistribution 描述單一格子的符號權重。
//
// Row / Column 僅供閱讀；實際定位一律以 row*columns+col 作為 StandardSymbols 的索引。
type CellDistribution struct {
	Row      int              `yaml:"row"     json:"row"`
	Column   int              `yaml:"column"  json:"column"`
	Symbols  OrderedMap[int]  `yaml:"symbols" json:"symbols"`
	Names    []string         `yaml:"-"       json:"-"`
	Table    sampler.CumTable `yaml:"-"       json:"-"`
	initFlag bool
}

// Init 建立抽樣表
func (cd *CellDistribution) Init() error {
	if cd.initFlag {
		return nil
	}
	if len(cd.Symbols) == 0 {
		return errs.Configf("cell (%d,%d): total weight must be positive, got 0", cd.Row, cd.Column)
	}
	tb, err := sampler.BuildCumTable(cd.Symbols.Values())
	if err != nil {
		return errs.WrapWithExtra(err, "build cell distribution failed", cellName(cd.Row, cd.Column))
	}
	cd.Names = cd.Symbols.Keys()
	cd.Table = tb
	cd.initFlag = true
	return nil
}

// BonusDistribution 為 probabilities.bonus_symbols 區塊。
type BonusDistribution struct {
	Symbols OrderedMap[int] `yaml:"symbols" json:"symbols"`
}

// ProbabilitySetting 為 probabilities 區塊
type ProbabilitySetting struct {
	StandardSymbols []CellDistribution `yaml:"standard_symbols"        json:"standard_symbols"`
	BonusSymbols    *BonusDistribution `yaml:"bonus_symbols,omitempty" json:"bonus_symbols,omitempty"`
}

func cellName(row, col int) string {
	return Coord{Row: row, Col: col}.String()
}
