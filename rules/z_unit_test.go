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

package rules_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/roletalab/rules"
)

func TestDefaultRuleSet(t *testing.T) {
	rs := rules.Default()
	if err := rs.Valid(); err != nil {
		t.Fatalf("default rule set invalid: %v", err)
	}

	cor := rs.Continuity["Cor"]
	if cor.NeutroMax != 2 || cor.Med != [2]int{3, 5} || cor.Forte != [2]int{6, 9} || cor.ExtIni != 10 {
		t.Errorf("Cor continuity rule = %+v", cor)
	}
	cav := rs.Continuity["Cavalos"]
	if cav.NeutroMax != 1 || cav.ExtIni != 5 {
		t.Errorf("Cavalos continuity rule = %+v", cav)
	}
	setor := rs.Absence["Setor"]
	if setor.Neutro != 4 || setor.OpostoFim != 22 || setor.RetornoMin != 23 {
		t.Errorf("Setor absence rule = %+v", setor)
	}
}

func TestDefaultProfiles(t *testing.T) {
	ps := rules.DefaultProfiles()
	if err := ps.Valid(); err != nil {
		t.Fatalf("default profiles invalid: %v", err)
	}
	for _, name := range []string{"Conservador", "Moderado", "Agressivo"} {
		if _, ok := ps.Profiles[name]; !ok {
			t.Errorf("missing profile %q", name)
		}
	}
	ag := ps.Profiles["Agressivo"]
	if ag.CapExpo["Cavalos"] != 12 || ag.StakePerNo["Cavalos"] != 2 {
		t.Errorf("Agressivo profile = %+v", ag)
	}
}

func TestProfileFallback(t *testing.T) {
	ps := rules.DefaultProfiles()
	p, name := ps.Get("Inexistente")
	if name != rules.DefaultProfileName {
		t.Errorf("fallback name = %q, want %q", name, rules.DefaultProfileName)
	}
	if p.CapExpo["Cavalos"] != 9 {
		t.Errorf("fallback profile = %+v, want Moderado", p)
	}
	if _, name := ps.Get("Agressivo"); name != "Agressivo" {
		t.Error("known profile must not fall back")
	}
}

// 嚴格解碼：拼錯/多寫欄位直接報錯。
func TestLoadRuleSetStrict(t *testing.T) {
	fsys := fstest.MapFS{
		"rules.yaml": {Data: []byte(`
continuidade:
  Cor: { neutro_max: 2, med: [3, 5], forte: [6, 9], ext_ini: 10, typo_field: 1 }
`)},
	}
	if _, err := rules.LoadRuleSet(fsys, "rules.yaml"); err == nil {
		t.Fatal("unknown field must be rejected")
	}
}

// 單調性檢查：med 起點必須高於 neutro_max。
func TestLoadRuleSetMonotonic(t *testing.T) {
	broken := `
continuidade:
  Setor:    { neutro_max: 5, med: [3, 5], forte: [6, 7], ext_ini: 8 }
  Cor:      { neutro_max: 2, med: [3, 5], forte: [6, 9], ext_ini: 10 }
  Paridade: { neutro_max: 2, med: [3, 5], forte: [6, 9], ext_ini: 10 }
  Metade:   { neutro_max: 2, med: [3, 5], forte: [6, 9], ext_ini: 10 }
  Coluna:   { neutro_max: 2, med: [3, 4], forte: [5, 6], ext_ini: 7 }
  Dúzia:    { neutro_max: 2, med: [3, 4], forte: [5, 6], ext_ini: 7 }
  Cavalos:  { neutro_max: 1, med: [2, 3], forte: [4, 4], ext_ini: 5 }
ausencia:
  Setor:   { neutro: 4, oposto_ini: 5, oposto_fim: 22, retorno_min: 23 }
  Coluna:  { neutro: 4, oposto_ini: 5, oposto_fim: 15, retorno_min: 16 }
  Dúzia:   { neutro: 4, oposto_ini: 5, oposto_fim: 15, retorno_min: 16 }
  Cavalos: { neutro: 4, oposto_ini: 5, oposto_fim: 10, retorno_min: 11 }
`
	fsys := fstest.MapFS{"rules.yaml": {Data: []byte(broken)}}
	_, err := rules.LoadRuleSet(fsys, "rules.yaml")
	if err == nil {
		t.Fatal("non-monotonic thresholds must be rejected")
	}
	if !strings.Contains(err.Error(), "Setor") {
		t.Errorf("error should name the broken axis, got: %v", err)
	}
}

func TestLoadRuleSetJSON(t *testing.T) {
	raw := `{
  "continuidade": {
    "Setor":    {"neutro_max": 2, "med": [3, 5], "forte": [6, 7], "ext_ini": 8},
    "Cor":      {"neutro_max": 2, "med": [3, 5], "forte": [6, 9], "ext_ini": 10},
    "Paridade": {"neutro_max": 2, "med": [3, 5], "forte": [6, 9], "ext_ini": 10},
    "Metade":   {"neutro_max": 2, "med": [3, 5], "forte": [6, 9], "ext_ini": 10},
    "Coluna":   {"neutro_max": 2, "med": [3, 4], "forte": [5, 6], "ext_ini": 7},
    "Dúzia":    {"neutro_max": 2, "med": [3, 4], "forte": [5, 6], "ext_ini": 7},
    "Cavalos":  {"neutro_max": 1, "med": [2, 3], "forte": [4, 4], "ext_ini": 5}
  },
  "ausencia": {
    "Setor":   {"neutro": 4, "oposto_ini": 5, "oposto_fim": 22, "retorno_min": 23},
    "Coluna":  {"neutro": 4, "oposto_ini": 5, "oposto_fim": 15, "retorno_min": 16},
    "Dúzia":   {"neutro": 4, "oposto_ini": 5, "oposto_fim": 15, "retorno_min": 16},
    "Cavalos": {"neutro": 4, "oposto_ini": 5, "oposto_fim": 10, "retorno_min": 11}
  }
}`
	fsys := fstest.MapFS{"rules.json": {Data: []byte(raw)}}
	rs, err := rules.LoadRuleSet(fsys, "rules.json")
	if err != nil {
		t.Fatalf("json load failed: %v", err)
	}
	if rs.Continuity["Setor"].ExtIni != 8 {
		t.Errorf("Setor ext_ini = %d, want 8", rs.Continuity["Setor"].ExtIni)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	fsys := fstest.MapFS{"rules.toml": {Data: []byte("x = 1")}}
	if _, err := rules.LoadRuleSet(fsys, "rules.toml"); err == nil {
		t.Fatal("unsupported extension must be rejected")
	}
}

func TestProfileSetValid(t *testing.T) {
	ps := &rules.ProfileSet{
		Unidade: 1,
		Profiles: map[string]rules.Profile{
			"Moderado": {
				CapExpo: map[string]int{"Cor": 3, "Paridade": 3, "Metade": 3},
			},
		},
	}
	// 缺 Dúzia/Coluna/Cavalos/Setor 的曝險上限
	if err := ps.Valid(); err == nil {
		t.Fatal("incomplete cap table must be rejected")
	}

	ps2 := &rules.ProfileSet{Unidade: 1, Profiles: map[string]rules.Profile{}}
	if err := ps2.Valid(); err == nil {
		t.Fatal("empty profile set must be rejected")
	}
}
