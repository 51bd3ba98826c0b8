// Package core implements the random sources used by the matrix generator.
//
// The PCG algorithm is designed by Melissa O'Neill; the generator itself is
// math/rand/v2's PCG, seeded through splitmix64.

package core

import (
	r2 "math/rand/v2"
)

// PCG64 亂數產生器
type PCG64 struct {
	src *r2.PCG
	rng *r2.Rand
}

// NewPCG64 以指定 seed 建立新的 PCG64 實例。
func NewPCG64(seed int64) *PCG64 {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xDA942042E4DD58B5)
	src := r2.NewPCG(hi, lo)
	return &PCG64{src: src, rng: r2.New(src)}
}

// Uint64 回傳非負整數uint64亂數
func (p *PCG64) Uint64() uint64 {
	return p.src.Uint64()
}

// IntN 產出[0,n) 的整數，若 max <= 0 回傳 -1
func (p *PCG64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return p.rng.IntN(max)
}

// Snapshot 回傳 PCG 內部狀態。r2.Rand 本身不帶狀態，只需保存 src。
func (p *PCG64) Snapshot() ([]byte, error) {
	return p.src.MarshalBinary()
}

// Restore 還原 Snapshot 取得的狀態
func (p *PCG64) Restore(b []byte) error {
	return p.src.UnmarshalBinary(b)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
