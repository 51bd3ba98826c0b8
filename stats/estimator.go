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

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// zScore 雙尾信賴水準對應的常態分位數（0.95 -> 1.96）
func zScore(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
}

// chiSquareGOF Pearson 適合度檢定：observed 與依 weights 比例的期望次數比較。
//
// 回傳統計量、自由度與右尾 p 值；只有一個類別或無樣本時 p 值為 1。
func chiSquareGOF(observed []int, weights []int) (stat float64, df int, pValue float64) {
	n := 0
	for _, o := range observed {
		n += o
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	if n == 0 || total == 0 || len(weights) < 2 {
		return 0, 0, 1
	}
	for i, w := range weights {
		exp := float64(n) * float64(w) / float64(total)
		d := float64(observed[i]) - exp
		stat += d * d / exp
	}
	df = len(weights) - 1
	pValue = distuv.ChiSquared{K: float64(df)}.Survival(stat)
	if math.IsNaN(pValue) {
		pValue = 0
	}
	return stat, df, pValue
}
