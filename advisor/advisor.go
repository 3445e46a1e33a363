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

// Package advisor 由排序表挑出每輪的兩個建議。
//
// 挑選是確定性的查表/取最小運算，沒有任何機率成分：
//   - 主建議（valor）：看缺席榜。軸依固定優先序掃描
//     {Cavalos, Setor, Dúzia, Coluna, Metade, Paridade, Cor}，
//     第一個有非中立候選的軸勝出（嚴格優先序，不是全域最大）。
//   - 副建議（barata）：看連續榜，限定便宜軸
//     {Cor, Paridade, Coluna, Dúzia, Metade}，取分級最嚴重者，
//     同分以 current streak 較長者優先。
//
// 曝險由選定的風險配置決定（每軸上限 + 每號碼單位），
// Cavalos 固定覆蓋 12 個號碼、Setor 依扇區實際大小並先夾上限。
package advisor

import (
	"fmt"

	"github.com/zintix-labs/roletalab/ranking"
	"github.com/zintix-labs/roletalab/rules"
	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/wheel"
)

// 主建議的軸優先序。嚴格優先：前面的軸只要有候選就不再看後面。
var primaryOrder = []string{"Cavalos", "Setor", "Dúzia", "Coluna", "Metade", "Paridade", "Cor"}

// 副建議限定的便宜軸。
var secondaryAxes = map[string]bool{
	"Cor": true, "Paridade": true, "Coluna": true, "Dúzia": true, "Metade": true,
}

// Suggestion 一則建議：行動文字 + 理由文字（面板兩行顯示）。
type Suggestion struct {
	Action string `json:"acao"`
	Reason string `json:"racional"`
}

// Advisor 持有風險配置集合。建構後唯讀，可併發使用。
type Advisor struct {
	ps *rules.ProfileSet
}

// New 以給定配置集合建立 Advisor。ps 為 nil 時使用內建預設。
func New(ps *rules.ProfileSet) *Advisor {
	if ps == nil {
		ps = rules.DefaultProfiles()
	}
	return &Advisor{ps: ps}
}

// ProfileSet 取目前裝載的配置集合。
func (a *Advisor) ProfileSet() *rules.ProfileSet {
	return a.ps
}

// Suggest 回傳（主建議, 副建議）。榜上沒有可用候選時對應項為 nil
// （呼叫端顯示「目前沒有觸發」）。profile 查無名稱時回退預設配置。
func (a *Advisor) Suggest(b *ranking.Board, profile string) (*Suggestion, *Suggestion) {
	p, _ := a.ps.Get(profile)
	return a.primary(b.Absence, p), a.secondary(b.Continuity, p)
}

// ============================================================
// ** 主建議（缺席） **
// ============================================================

func (a *Advisor) primary(absence []ranking.Row, p rules.Profile) *Suggestion {
	for _, axis := range primaryOrder {
		var best *ranking.Row
		for i := range absence {
			r := &absence[i]
			if r.Axis != axis || r.Signal().IsNeutral() {
				continue
			}
			// 榜已按嚴重度/缺席長度排序，第一個命中即該軸最強候選。
			best = r
			break
		}
		if best == nil {
			continue
		}
		return a.buildPrimary(best, axis, p)
	}
	return nil
}

func (a *Advisor) buildPrimary(r *ranking.Row, axis string, p rules.Profile) *Suggestion {
	var (
		action  string
		expo    int
		covered int
	)
	switch axis {
	case "Cavalos":
		// 馬組固定覆蓋 12 個號碼
		stake := stakeFor(p, "Cavalos")
		covered = 12
		expo = min(p.CapExpo["Cavalos"], covered*stake)
		action = fmt.Sprintf("Apostar CAVALOS no grupo %s — cobrir ~%d nº × %du (exposição %du / R$%.2f)",
			r.Category, covered, stake, expo, float64(expo)*a.ps.Unidade)
	case "Setor":
		stake := stakeFor(p, "Setor")
		size := wheel.SectorSize[r.Category]
		if size == 0 {
			size = 12
		}
		covered = min(size, p.CapExpo["Setor"]) // 先夾上限再乘單位
		expo = covered * stake
		action = fmt.Sprintf("Apostar SETOR %s — cobrir ~%d nº × %du (exposição %du / R$%.2f)",
			r.Category, covered, stake, expo, float64(expo)*a.ps.Unidade)
	default:
		expo = min(1, p.CapExpo[axis])
		action = fmt.Sprintf("Apostar %s — %du (R$%.2f)", r.Category, expo, float64(expo)*a.ps.Unidade)
	}

	var rationale string
	switch r.Signal() {
	case signal.Opposite:
		rationale = fmt.Sprintf("Ausência média superada → apostar OPOSTO (%s).", r.Reason)
	default:
		rationale = fmt.Sprintf("Ausência alongada → retorno do AUSENTE (%s).", r.Reason)
	}
	rationale += fmt.Sprintf(" | Aus: %d • Média: %.2f • Máx: %d", r.Current, r.Mean, r.Max)

	return &Suggestion{Action: action, Reason: rationale}
}

// ============================================================
// ** 副建議（連續） **
// ============================================================

func (a *Advisor) secondary(continuity []ranking.Row, p rules.Profile) *Suggestion {
	var best *ranking.Row
	for i := range continuity {
		r := &continuity[i]
		if !secondaryAxes[r.Axis] {
			continue
		}
		// 榜已按（嚴重度, current streak）排序，限定軸後取第一個即可。
		best = r
		break
	}
	if best == nil {
		return nil
	}

	expo := min(1, p.CapExpo[best.Axis])
	var reason string
	if best.Signal().IsNeutral() {
		reason = fmt.Sprintf("Seguir %s (%d ≤ média %.2f)", best.Category, best.Current, best.Mean)
	} else {
		reason = fmt.Sprintf("Quebrar %s (%d seguidas; média %.2f)", best.Category, best.Current, best.Mean)
	}
	reason += fmt.Sprintf(" | Seq: %d • Máx: %d", best.Current, best.Max)

	return &Suggestion{
		Action: fmt.Sprintf("%s — %du (R$%.2f)", best.Category, expo, float64(expo)*a.ps.Unidade),
		Reason: reason,
	}
}

func stakeFor(p rules.Profile, axis string) int {
	if s, ok := p.StakePerNo[axis]; ok && s > 0 {
		return s
	}
	return 1
}
