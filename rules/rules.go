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

// Package rules 持有可設定的門檻表與風險配置，並負責由 fs.FS 解碼。
//
// 設計重點：
//   - 規則不寫死在分級器內：signal / advisor 只面向這裡解碼出來的結構。
//   - 設定來源一律以 fs.FS 注入（go:embed 預設值、os.DirFS 本機覆寫皆可）。
//   - 解碼採嚴格模式（KnownFields）：多寫/拼錯欄位直接報錯，避免靜默丟資料。
package rules

import (
	"fmt"

	"github.com/zintix-labs/roletalab/errs"
)

// ContinuityRule 單一軸的連續（streak）四級門檻。
// 形態：neutral(≤NeutroMax) / medium(Med) / strong(Forte) / extreme(≥ExtIni)。
type ContinuityRule struct {
	NeutroMax int    `yaml:"neutro_max" json:"neutro_max"`
	Med       [2]int `yaml:"med"        json:"med"`
	Forte     [2]int `yaml:"forte"      json:"forte"`
	ExtIni    int    `yaml:"ext_ini"    json:"ext_ini"`
}

// AbsenceRule 單一軸的缺席（gap）三級絕對刻度。
// 只適用 Setor/Coluna/Dúzia/Cavalos；Cor/Paridade/Metade 沿用連續表。
type AbsenceRule struct {
	Neutro     int `yaml:"neutro"      json:"neutro"`
	OpostoIni  int `yaml:"oposto_ini"  json:"oposto_ini"`
	OpostoFim  int `yaml:"oposto_fim"  json:"oposto_fim"`
	RetornoMin int `yaml:"retorno_min" json:"retorno_min"`
}

// RuleSet 全部軸的規則表，key 為軸名（Cor/Paridade/.../Setor）。
type RuleSet struct {
	Continuity map[string]ContinuityRule `yaml:"continuidade" json:"continuidade"`
	Absence    map[string]AbsenceRule    `yaml:"ausencia"     json:"ausencia"`
}

var continuityAxes = []string{"Cor", "Paridade", "Metade", "Dúzia", "Coluna", "Cavalos", "Setor"}
var absenceAxes = []string{"Setor", "Coluna", "Dúzia", "Cavalos"}

// Valid 執行最基本的規則表檢查：軸齊備、門檻單調。
func (rs *RuleSet) Valid() error {
	for _, ax := range continuityAxes {
		r, ok := rs.Continuity[ax]
		if !ok {
			return errs.Fatalf("rules: missing continuity axis %q", ax)
		}
		if !(r.NeutroMax < r.Med[0] && r.Med[0] <= r.Med[1] &&
			r.Med[1] < r.Forte[0] && r.Forte[0] <= r.Forte[1] &&
			r.Forte[1] < r.ExtIni) {
			return errs.Fatalf("rules: continuity axis %q thresholds not monotonic", ax)
		}
	}
	for _, ax := range absenceAxes {
		r, ok := rs.Absence[ax]
		if !ok {
			return errs.Fatalf("rules: missing absence axis %q", ax)
		}
		if !(r.Neutro < r.OpostoIni && r.OpostoIni <= r.OpostoFim && r.OpostoFim < r.RetornoMin) {
			return errs.Fatalf("rules: absence axis %q thresholds not monotonic", ax)
		}
	}
	return nil
}

// ============================================================
// ** 風險配置 **
// ============================================================

// Profile 單一風險配置：每軸曝險上限、每號碼押注單位與敘事係數。
type Profile struct {
	SoftMult   float64        `yaml:"soft_mult"        json:"soft_mult"`
	ForteMult  float64        `yaml:"forte_mult"       json:"forte_mult"`
	ExtremoPct float64        `yaml:"extremo_pct"      json:"extremo_pct"`
	CapExpo    map[string]int `yaml:"cap_expo"         json:"cap_expo"`
	StakePerNo map[string]int `yaml:"stake_por_numero" json:"stake_por_numero"`
}

// ProfileSet 具名風險配置集合（Conservador / Moderado / Agressivo）。
type ProfileSet struct {
	// Unidade 1u 的現金面額（R$）。只影響顯示，不影響選擇邏輯。
	Unidade  float64            `yaml:"unidade"  json:"unidade"`
	Profiles map[string]Profile `yaml:"perfis"   json:"perfis"`
}

// DefaultProfileName 未指定時採用的配置。
const DefaultProfileName = "Moderado"

// Valid 檢查每個配置的軸向曝險上限齊備且為正。
func (ps *ProfileSet) Valid() error {
	if len(ps.Profiles) == 0 {
		return errs.NewFatal("rules: empty profile set")
	}
	if ps.Unidade <= 0 {
		return errs.NewFatal("rules: unidade must be positive")
	}
	if _, ok := ps.Profiles[DefaultProfileName]; !ok {
		return errs.Fatalf("rules: default profile %q missing", DefaultProfileName)
	}
	for name, p := range ps.Profiles {
		for _, ax := range continuityAxes {
			capExpo, ok := p.CapExpo[ax]
			if !ok {
				return errs.Fatalf("rules: profile %q missing cap for axis %q", name, ax)
			}
			if capExpo < 1 {
				return errs.Fatalf("rules: profile %q cap for axis %q must be >= 1", name, ax)
			}
		}
		for ax, stake := range p.StakePerNo {
			if stake < 1 {
				return errs.Fatalf("rules: profile %q stake for axis %q must be >= 1", name, ax)
			}
		}
	}
	return nil
}

// Get 取具名配置；查無名稱時回退預設配置。
func (ps *ProfileSet) Get(name string) (Profile, string) {
	if p, ok := ps.Profiles[name]; ok {
		return p, name
	}
	return ps.Profiles[DefaultProfileName], DefaultProfileName
}

func (p Profile) String() string {
	return fmt.Sprintf("Profile{cap=%v stake=%v}", p.CapExpo, p.StakePerNo)
}
