package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Confidence 報表使用的信賴水準
const Confidence = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// StatReport 遊戲統計報告
type StatReport struct {
	Summary *SummaryReport `json:"Summary"          yaml:"Summary"`
	Mult    *MultReport    `json:"Mult"             yaml:"Mult"`
	Dist    *DistReport    `json:"Dist"             yaml:"Dist"`
	Combos  []ComboReport  `json:"Combos,omitempty" yaml:"Combos,omitempty"`
	Bonus   []BonusReport  `json:"Bonus,omitempty"  yaml:"Bonus,omitempty"`
	Cells   []CellAudit    `json:"Cells,omitempty"  yaml:"Cells,omitempty"`
	isDone  bool
}

type SummaryReport struct {
	GameName    string  `json:"GameName"    yaml:"GameName"`
	Bet         float64 `json:"Bet"         yaml:"Bet"`
	TotalBet    float64 `json:"TotalBet"    yaml:"TotalBet"`
	TotalWin    float64 `json:"TotalWin"    yaml:"TotalWin"`
	RTP         float64 `json:"RTP"         yaml:"RTP"`
	RtpCI       CI      `json:"RtpCI"       yaml:"RtpCI"`
	Std         float64 `json:"Std"         yaml:"Std"`
	Cv          float64 `json:"Cv"          yaml:"Cv"`
	MaxWinMult  float64 `json:"MaxWinMult"  yaml:"MaxWinMult"`
	WinRounds   int     `json:"WinRounds"   yaml:"WinRounds"`
	NoWinRounds int     `json:"NoWinRounds" yaml:"NoWinRounds"`
	HitRate     float64 `json:"HitRate"     yaml:"HitRate"`
	Rounds      int     `json:"Rounds"      yaml:"Rounds"`
}

// MultReport 贏倍統計（單局贏分 / 押注）
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"      yaml:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum" yaml:"TotalWinMultSqSum"` // 平方和
}

// DistReport 分數區間落點統計
type DistReport struct {
	WinBucket  []string  `json:"WinBucket"  yaml:"WinBucket"`
	WinCollect []int     `json:"WinCollect" yaml:"WinCollect"`
	WinDist    []float64 `json:"WinDist"    yaml:"WinDist"`
}

// ComboReport 單一中獎組合的觸發統計
type ComboReport struct {
	Name       string  `json:"Name"       yaml:"Name"`
	Multiplier float64 `json:"Multiplier" yaml:"Multiplier"`
	Hits       int     `json:"Hits"       yaml:"Hits"`
	Rate       float64 `json:"Rate"       yaml:"Rate"`
	RateCI     CI      `json:"RateCI"     yaml:"RateCI"`
}

// BonusReport 單一 bonus 符號被套用的次數
type BonusReport struct {
	Name    string  `json:"Name"    yaml:"Name"`
	Impact  string  `json:"Impact"  yaml:"Impact"`
	Applied int     `json:"Applied" yaml:"Applied"`
	Rate    float64 `json:"Rate"    yaml:"Rate"`
}

// CellAudit 單一格子的抽樣稽核：觀察次數與設定權重的適合度檢定
type CellAudit struct {
	Cell      string   `json:"Cell"      yaml:"Cell"`
	Symbols   []string `json:"Symbols"   yaml:"Symbols"`
	Weights   []int    `json:"Weights"   yaml:"Weights"`
	Observed  []int    `json:"Observed"  yaml:"Observed"`
	ChiSquare float64  `json:"ChiSquare" yaml:"ChiSquare"`
	DF        int      `json:"DF"        yaml:"DF"`
	PValue    float64  `json:"PValue"    yaml:"PValue"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 紀錄過程只累加計數與和，統計完成後呼叫 Done 一次性計算衍生欄位。
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.RTP = s.Rtp()
	s.Summary.RtpCI = s.Ci()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()
	if s.Summary.Rounds > 0 {
		s.Summary.HitRate = float64(s.Summary.WinRounds) / float64(s.Summary.Rounds)
	}
	s.Summary.NoWinRounds = s.Summary.Rounds - s.Summary.WinRounds

	if s.Dist != nil {
		s.Dist.WinDist = make([]float64, len(s.Dist.WinCollect))
		if s.Summary.Rounds > 0 {
			rf := float64(s.Summary.Rounds)
			for i, c := range s.Dist.WinCollect {
				s.Dist.WinDist[i] = float64(c) / rf
			}
		}
	}
	for i := range s.Combos {
		c := &s.Combos[i]
		c.Rate, c.RateCI = proportionCICP(c.Hits, s.Summary.Rounds, Confidence)
	}
	for i := range s.Bonus {
		b := &s.Bonus[i]
		if s.Summary.Rounds > 0 {
			b.Rate = float64(b.Applied) / float64(s.Summary.Rounds)
		}
	}
	for i := range s.Cells {
		c := &s.Cells[i]
		c.ChiSquare, c.DF, c.PValue = chiSquareGOF(c.Observed, c.Weights)
	}
	s.isDone = true
}

// Rtp 回傳整體 RTP（總贏分 / 總押注）
func (s *StatReport) Rtp() float64 {
	if s.Summary.Rounds == 0 || s.Summary.TotalBet == 0 {
		return 0
	}
	return s.Summary.TotalWin / s.Summary.TotalBet
}

// Std 回傳單局贏倍的樣本標準差
func (s *StatReport) Std() float64 {
	if s.Summary.Rounds < 2 {
		return 0
	}
	rounds := float64(s.Summary.Rounds)

	winMultPow := s.Mult.TotalWinMult * s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - winMultPow/rounds) / (rounds - 1)

	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳單局贏倍的變異係數
func (s *StatReport) Cv() float64 {
	rtp := s.Rtp()
	if rtp <= 0 {
		return 0
	}
	return s.Std() / rtp
}

// Ci 回傳 RTP 的常態近似信賴區間
func (s *StatReport) Ci() CI {
	rtp := s.Rtp()
	se := float64(0)
	if s.Summary.Rounds > 1 {
		se = s.Std() / math.Sqrt(float64(s.Summary.Rounds))
	}
	z := zScore(Confidence)
	return CI{
		Lo: max(rtp-z*se, 0.0),
		Hi: rtp + z*se,
	}
}

// WorstCell 回傳 p 值最小的格子稽核結果；沒有任何格子時回傳 false。
func (s *StatReport) WorstCell() (CellAudit, bool) {
	if len(s.Cells) == 0 {
		return CellAudit{}, false
	}
	worst := s.Cells[0]
	for _, c := range s.Cells[1:] {
		if c.PValue < worst.PValue {
			worst = c
		}
	}
	return worst, true
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 輸出用時與表格摘要到 w
func (s *StatReport) StdOut(w io.Writer, ut time.Duration) {
	s.Done()
	fmt.Fprint(w, formatDuration(ut, s.Summary.Rounds))
	sk, sm := s.fmtBasic()
	fmt.Fprintln(w, fmtTable(s.Summary.GameName, sk, sm))
	if len(s.Combos) > 0 {
		ck, cm := s.fmtCombos()
		fmt.Fprintln(w, fmtTable("Win Combinations", ck, cm))
	}
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, spins int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(spins) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nsps : %d spins/sec\n", sec, sps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nsps : %d spins/sec\n", m, s, sps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nsps : %d spins/sec\n", h, m, s, sps)
}

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Game Name":    p.Sprintf("%s", s.Summary.GameName),
		"Bet":          p.Sprintf("%v", s.Summary.Bet),
		"Total Rounds": p.Sprintf("%d", s.Summary.Rounds),
		"Total RTP":    p.Sprintf("%.2f %%", 100.0*s.Summary.RTP),
		"RTP 95% CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.RtpCI.Lo, 100.0*s.Summary.RtpCI.Hi),
		"Total Bet":    p.Sprintf("%.2f", s.Summary.TotalBet),
		"Total Win":    p.Sprintf("%.2f", s.Summary.TotalWin),
		"Hit Rate":     p.Sprintf("%.2f %%", 100.0*s.Summary.HitRate),
		"NoWin Rounds": p.Sprintf("%d", s.Summary.NoWinRounds),
		"Max Win Mult": p.Sprintf("%.2f", s.Summary.MaxWinMult),
		"STD":          p.Sprintf("%.3f", s.Summary.Std),
		"CV":           p.Sprintf("%.3f", s.Summary.Cv),
	}
	keys := []string{"Game Name", "Bet", "Total Rounds", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "Hit Rate", "NoWin Rounds", "Max Win Mult", "STD", "CV"}
	if c, ok := s.WorstCell(); ok {
		basic["Worst Cell"] = p.Sprintf("%s p=%.4f", c.Cell, c.PValue)
		keys = append(keys, "Worst Cell")
	}
	return keys, basic
}

func (s *StatReport) fmtCombos() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := make([]string, len(s.Combos))
	msg := make(map[string]string, len(s.Combos))
	for i, c := range s.Combos {
		keys[i] = c.Name
		msg[c.Name] = p.Sprintf("%d (%.4f%% [%.4f%%,%.4f%%])", c.Hits, 100*c.Rate, 100*c.RateCI.Lo, 100*c.RateCI.Hi)
	}
	return keys, msg
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
