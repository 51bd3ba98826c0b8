package core

import (
	"encoding/binary"
	"fmt"

	"github.com/zintix-labs/scratchlab/errs"
)

// Sequence 依序回放固定的抽樣結果，用於需要精確控制盤面的測試與重播。
//
// IntN(n) 會回傳下一個預設值；若預設值不在 [0,n) 或序列已用完會 panic，
// 這代表測試資料與設定不一致，不應被默默修正。
type Sequence struct {
	draws []int
	pos   int
}

// NewSequence 建立固定序列
func NewSequence(draws ...int) *Sequence {
	return &Sequence{draws: draws}
}

// IntN 回傳下一個預設值
func (s *Sequence) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	v := s.next()
	if v < 0 || v >= max {
		panic(fmt.Sprintf("core.Sequence: draw #%d = %d out of range [0,%d)", s.pos-1, v, max))
	}
	return v
}

// Uint64 回傳下一個預設值（轉成 uint64）
func (s *Sequence) Uint64() uint64 {
	return uint64(s.next())
}

// Remaining 回傳尚未使用的數量
func (s *Sequence) Remaining() int {
	return len(s.draws) - s.pos
}

// Snapshot 保存目前讀取位置
func (s *Sequence) Snapshot() ([]byte, error) {
	return binary.AppendUvarint(nil, uint64(s.pos)), nil
}

// Restore 還原讀取位置
func (s *Sequence) Restore(b []byte) error {
	pos, n := binary.Uvarint(b)
	if n <= 0 {
		return errs.NewWarn("core.Sequence: malformed snapshot")
	}
	if pos > uint64(len(s.draws)) {
		return errs.Warnf("core.Sequence: snapshot position %d beyond %d draws", pos, len(s.draws))
	}
	s.pos = int(pos)
	return nil
}

func (s *Sequence) next() int {
	if s.pos >= len(s.draws) {
		panic(fmt.Sprintf("core.Sequence: exhausted after %d draws", len(s.draws)))
	}
	v := s.draws[s.pos]
	s.pos++
	return v
}
