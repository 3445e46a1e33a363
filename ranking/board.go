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

// Package ranking 把 Ledger 輸出組成兩張排序表（缺席榜 / 連續榜）。
//
// 表格是純資料轉換：分級 -> 排序 -> 渲染；渲染器與 stats 報表同款
// （text / JSON / YAML 三種 Render）。
package ranking

import (
	"math"
	"sort"

	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/wheel"
)

// Row 排序表的一列。Current 在缺席榜是 current gap、連續榜是 current streak；
// Mean/Max 取對應的歷史統計。
type Row struct {
	Category string  `json:"tipo"`
	Axis     string  `json:"grupo"`
	Current  int     `json:"atual"`
	Mean     float64 `json:"media"`
	Max      int     `json:"max"`
	Tier     string  `json:"sinal"`
	Reason   string  `json:"motivo"`

	tier signal.Tier
}

// Signal 還原本列的分級 enum（渲染用字串之外的程式介面）。
func (r Row) Signal() signal.Tier { return r.tier }

// Board 一輪評估的完整輸出：兩張排序表。
type Board struct {
	Absence    []Row `json:"ausencia"`
	Continuity []Row `json:"continuidade"`
}

// Build 由 RunState 與持久統計組表。
//
// 排序鍵（由強到弱）：
//   - 缺席榜：缺席分級嚴重度 desc、current gap desc、歷史最大 gap desc。
//   - 連續榜：連續分級嚴重度 desc、current streak desc、歷史最大 streak desc。
//
// 全部同分時維持 wheel.Categories 的固定順序（stable sort）。
func Build(states ledger.RunStates, recs ledger.Records, cls *signal.Classifier) *Board {
	b := &Board{
		Absence:    make([]Row, 0, len(wheel.Categories)),
		Continuity: make([]Row, 0, len(wheel.Categories)),
	}
	for _, c := range wheel.Categories {
		st := states[c.Name]
		rec := recs[c.Name]

		abs := cls.Absence(c.Axis, st.Gap())
		b.Absence = append(b.Absence, Row{
			Category: c.Name,
			Axis:     c.Axis.String(),
			Current:  st.Gap(),
			Mean:     round2(rec.MeanGap),
			Max:      rec.MaxGap,
			Tier:     abs.Tier.String(),
			Reason:   abs.Reason,
			tier:     abs.Tier,
		})

		cont := cls.Continuity(c.Axis, st.Streak())
		b.Continuity = append(b.Continuity, Row{
			Category: c.Name,
			Axis:     c.Axis.String(),
			Current:  st.Streak(),
			Mean:     round2(rec.MeanStreak),
			Max:      rec.MaxStreak,
			Tier:     cont.Tier.String(),
			Reason:   cont.Reason,
			tier:     cont.Tier,
		})
	}
	sortRows(b.Absence)
	sortRows(b.Continuity)
	return b
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.tier.Severity() != b.tier.Severity() {
			return a.tier.Severity() > b.tier.Severity()
		}
		if a.Current != b.Current {
			return a.Current > b.Current
		}
		return a.Max > b.Max
	})
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
