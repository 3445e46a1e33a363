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

// Package signal 實作規則式分級器（Signal Classifier）。
//
// 分級器是純函數：給定分類所屬的軸與一個純量（current streak 或
// current gap），查靜態門檻表回傳離散的建議分級（Tier）與人類可讀的
// 理由字串。所有入口都是 total function：查無規則或低於門檻一律回退
// neutral，不會回傳 error。
//
// 兩張獨立規則表：
//   - Continuity（連續）：四級 neutral / medium / strong / extreme，全軸適用。
//   - Absence（缺席）：Cor/Paridade/Metade 沿用同軸的連續門檻但改掛
//     return_* 標籤；Setor/Coluna/Dúzia/Cavalos 走三級絕對刻度
//     neutral / opposite / return。
package signal

import (
	"fmt"

	"github.com/zintix-labs/roletalab/rules"
	"github.com/zintix-labs/roletalab/wheel"
)

// Tier 建議分級 enum。數值大小即嚴重度排序（排序、挑選皆依賴此序）。
type Tier uint8

const (
	Neutral Tier = iota
	// Continuity 軸
	Medium
	Strong
	Extreme
	// Absence（Cor/Paridade/Metade 形態）
	ReturnMedium
	ReturnStrong
	ReturnExtreme
	// Absence（Setor/Coluna/Dúzia/Cavalos 形態）
	Opposite
	Return
)

var tierNames = map[Tier]string{
	Neutral:       "neutro",
	Medium:        "quebrar_médio",
	Strong:        "quebrar_forte",
	Extreme:       "quebrar_extremo",
	ReturnMedium:  "retorno_médio",
	ReturnStrong:  "retorno_forte",
	ReturnExtreme: "retorno_extremo",
	Opposite:      "oposto",
	Return:        "retorno",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "neutro"
}

// Severity 回傳同一張表內可比較的嚴重度。
//
// 連續表：neutral < medium < strong < extreme。
// 缺席表：neutral < return_médio < return_forte < return_extremo，
// 與 neutral < oposto < retorno。兩個缺席形態不會出現在同一軸，
// 因此跨形態的數值只需單調即可。
func (t Tier) Severity() int {
	switch t {
	case Neutral:
		return 0
	case Medium, ReturnMedium, Opposite:
		return 1
	case Strong, ReturnStrong:
		return 2
	case Extreme, ReturnExtreme:
		return 3
	case Return:
		return 4
	}
	return 0
}

// IsNeutral 便捷判斷。
func (t Tier) IsNeutral() bool { return t == Neutral }

// Signal 一次分級的結果：分級 + 理由（給面板直接顯示）。
type Signal struct {
	Tier   Tier
	Reason string
}

// ============================================================
// ** 分級入口 **
// ============================================================

// Classifier 持有一份規則表（由 rules 解碼而來）。
// 規則表在組裝階段決定後不再變動，Classifier 可安全併發使用。
type Classifier struct {
	rs *rules.RuleSet
}

// New 以給定規則表建立分級器。rs 為 nil 時使用內建預設表。
func New(rs *rules.RuleSet) *Classifier {
	if rs == nil {
		rs = rules.Default()
	}
	return &Classifier{rs: rs}
}

// Continuity 依「目前連續長度」分級。適用全部 7 軸。
func (c *Classifier) Continuity(axis wheel.Axis, streak int) Signal {
	r, ok := c.rs.Continuity[axis.String()]
	if !ok {
		return Signal{Tier: Neutral}
	}
	switch {
	case streak <= r.NeutroMax:
		return Signal{Tier: Neutral, Reason: fmt.Sprintf("Neutro até %d", r.NeutroMax)}
	case streak >= r.Med[0] && streak <= r.Med[1]:
		return Signal{Tier: Medium, Reason: "Quebrar sequência (médio)"}
	case streak >= r.Forte[0] && streak <= r.Forte[1]:
		return Signal{Tier: Strong, Reason: "Quebra forte"}
	case streak >= r.ExtIni:
		return Signal{Tier: Extreme, Reason: "Quebra extrema"}
	}
	return Signal{Tier: Neutral}
}

// Absence 依「目前缺席長度」分級。
//
// Cor/Paridade/Metade：沿用同軸連續門檻、改掛 return_* 標籤
// （理由的敘事是「缺席者的回歸已到期」）。
// 其餘軸：三級絕對刻度 neutral(≤4) / oposto(5..fim) / retorno(≥min)。
func (c *Classifier) Absence(axis wheel.Axis, gap int) Signal {
	switch axis {
	case wheel.AxisCor, wheel.AxisParidade, wheel.AxisMetade:
		r, ok := c.rs.Continuity[axis.String()]
		if !ok {
			return Signal{Tier: Neutral}
		}
		switch {
		case gap <= r.NeutroMax:
			return Signal{Tier: Neutral, Reason: "Ausência neutra"}
		case gap >= r.Med[0] && gap <= r.Med[1]:
			return Signal{Tier: ReturnMedium, Reason: fmt.Sprintf("Retorno (ausência ~média %d–%d)", r.Med[0], r.Med[1])}
		case gap >= r.Forte[0] && gap <= r.Forte[1]:
			return Signal{Tier: ReturnStrong, Reason: fmt.Sprintf("Retorno forte (%d–%d)", r.Forte[0], r.Forte[1])}
		case gap >= r.ExtIni:
			return Signal{Tier: ReturnExtreme, Reason: fmt.Sprintf("Retorno extremo (%d+)", r.ExtIni)}
		}
		return Signal{Tier: Neutral}
	default:
		r, ok := c.rs.Absence[axis.String()]
		if !ok {
			return Signal{Tier: Neutral}
		}
		switch {
		case gap <= r.Neutro:
			return Signal{Tier: Neutral, Reason: fmt.Sprintf("Neutro até %d", r.Neutro)}
		case gap >= r.OpostoIni && gap <= r.OpostoFim:
			return Signal{Tier: Opposite, Reason: fmt.Sprintf("Apostar OPOSTO (%d–%d)", r.OpostoIni, r.OpostoFim)}
		case gap >= r.RetornoMin:
			return Signal{Tier: Return, Reason: fmt.Sprintf("Quebrar ausência (≥ %d)", r.RetornoMin)}
		}
		return Signal{Tier: Neutral}
	}
}
