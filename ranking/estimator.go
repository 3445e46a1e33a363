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

package ranking

import (
	"fmt"
	"sort"

	"github.com/zintix-labs/roletalab/wheel"
	"gonum.org/v1/gonum/stat"
)

// SegmentStat 單一分類「已關閉段長」的敘述統計。
//
// 注意：只統計已關閉的段（與 Ledger 的摺入語意一致）；尾端開著的段不算。
// 純敘述性（mean/std/quantile），不做任何機率模型。
type SegmentStat struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
	Max  int     `json:"max"`
}

// SegmentSummary 單一分類的 streak 與 gap 段長分布。
type SegmentSummary struct {
	Category string      `json:"tipo"`
	Streaks  SegmentStat `json:"seq"`
	Gaps     SegmentStat `json:"aus"`
}

// EstimateSegments 對完整序列重新掃描，收集每個分類的已關閉段長並做
// 敘述統計。這是 replay 工具的離線分析：Ledger 本身刻意不保存段長
// 歷史（增量平均），只有拿著完整序列的呼叫端才能算出分位數。
func EstimateSegments(seq []int) []SegmentSummary {
	type runs struct {
		streaks []float64
		gaps    []float64
		active  bool
		length  int
	}
	byCat := make(map[string]*runs, len(wheel.Categories))
	for _, c := range wheel.Categories {
		byCat[c.Name] = &runs{}
	}

	for _, n := range seq {
		active := make(map[string]bool, 7)
		for _, name := range wheel.Memberships(n) {
			active[name] = true
		}
		for _, c := range wheel.Categories {
			r := byCat[c.Name]
			if active[c.Name] == r.active {
				r.length++
				continue
			}
			if r.length > 0 {
				if r.active {
					r.streaks = append(r.streaks, float64(r.length))
				} else {
					r.gaps = append(r.gaps, float64(r.length))
				}
			}
			r.active = active[c.Name]
			r.length = 1
		}
	}

	out := make([]SegmentSummary, 0, len(wheel.Categories))
	for _, c := range wheel.Categories {
		r := byCat[c.Name]
		out = append(out, SegmentSummary{
			Category: c.Name,
			Streaks:  summarize(r.streaks),
			Gaps:     summarize(r.gaps),
		})
	}
	return out
}

func summarize(xs []float64) SegmentStat {
	if len(xs) == 0 {
		return SegmentStat{}
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return SegmentStat{
		N:    len(sorted),
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  int(sorted[len(sorted)-1]),
	}
}

// SegmentsOut 把段長統計輸出成簡易對齊文字（replay CLI 用）。
func SegmentsOut(sums []SegmentSummary) string {
	s := fmt.Sprintf("%-16s %26s %26s\n", "Tipo", "Seq n/mean/p90/max", "Aus n/mean/p90/max")
	for _, sum := range sums {
		s += fmt.Sprintf("%-16s %6d %6.2f %6.1f %6d %6d %6.2f %6.1f %6d\n",
			sum.Category,
			sum.Streaks.N, sum.Streaks.Mean, sum.Streaks.P90, sum.Streaks.Max,
			sum.Gaps.N, sum.Gaps.Mean, sum.Gaps.P90, sum.Gaps.Max,
		)
	}
	return s
}
