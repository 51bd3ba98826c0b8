package stats

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/zintix-labs/scratchlab/corefmt"
	"github.com/zintix-labs/scratchlab/errs"
)

// StatReportRender 定義輸出行為
type StatReportRender interface {
	Write(w io.Writer, r *StatReport) error
}

// Json渲染
type JsonStatReportRender struct{}

func (jr *JsonStatReportRender) Write(w io.Writer, r *StatReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML渲染
type YAMLStatReportRender struct{}

func (yr *YAMLStatReportRender) Write(w io.Writer, r *StatReport) error {
	// 不管欄位，只要是陣列（YAML Sequence），就維持外層預設展開；
	// 只有「最內層的一維陣列」或「本身就是一維陣列」時才輸出成 flow style：[..., ...]
	return corefmt.WriteReadableYAML(w, r)
}

// 表格渲染（終端機閱讀用，不含用時）
type TableStatReportRender struct{}

func (tr *TableStatReportRender) Write(w io.Writer, r *StatReport) error {
	sk, sm := r.fmtBasic()
	if _, err := io.WriteString(w, fmtTable(r.Summary.GameName, sk, sm)); err != nil {
		return err
	}
	if len(r.Combos) == 0 {
		return nil
	}
	ck, cm := r.fmtCombos()
	_, err := io.WriteString(w, fmtTable("Win Combinations", ck, cm))
	return err
}

// RenderFor 依格式名稱（table / json / yaml）取得渲染器
func RenderFor(format string) (StatReportRender, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return &TableStatReportRender{}, nil
	case "json":
		return &JsonStatReportRender{}, nil
	case "yaml", "yml":
		return &YAMLStatReportRender{}, nil
	default:
		return nil, errs.InvalidArgf("unknown report format %q: want table, json or yaml", format)
	}
}
