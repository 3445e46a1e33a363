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

package signal_test

import (
	"testing"

	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/wheel"
)

// 顏色軸連續門檻：neutro ≤2，médio 3–5，forte 6–9，extremo ≥10。
func TestContinuityCorBoundaries(t *testing.T) {
	cls := signal.New(nil)
	cases := []struct {
		streak int
		want   signal.Tier
	}{
		{0, signal.Neutral},
		{2, signal.Neutral},
		{3, signal.Medium},
		{5, signal.Medium},
		{6, signal.Strong},
		{9, signal.Strong},
		{10, signal.Extreme},
		{50, signal.Extreme},
	}
	for _, c := range cases {
		got := cls.Continuity(wheel.AxisCor, c.streak)
		if got.Tier != c.want {
			t.Errorf("Continuity(Cor, %d) = %s, want %s", c.streak, got.Tier, c.want)
		}
	}
}

// 扇區軸連續門檻比顏色軸更緊：neutro ≤2，médio 3–5，forte 6–7，extremo ≥8。
func TestContinuitySetorBoundaries(t *testing.T) {
	cls := signal.New(nil)
	cases := []struct {
		streak int
		want   signal.Tier
	}{
		{2, signal.Neutral},
		{3, signal.Medium},
		{5, signal.Medium},
		{6, signal.Strong},
		{7, signal.Strong},
		{8, signal.Extreme},
	}
	for _, c := range cases {
		got := cls.Continuity(wheel.AxisSetor, c.streak)
		if got.Tier != c.want {
			t.Errorf("Continuity(Setor, %d) = %s, want %s", c.streak, got.Tier, c.want)
		}
	}
}

// 馬組軸：neutro ≤1，médio 2–3，forte 4，extremo ≥5。
func TestContinuityCavalosBoundaries(t *testing.T) {
	cls := signal.New(nil)
	cases := []struct {
		streak int
		want   signal.Tier
	}{
		{1, signal.Neutral},
		{2, signal.Medium},
		{3, signal.Medium},
		{4, signal.Strong},
		{5, signal.Extreme},
	}
	for _, c := range cases {
		got := cls.Continuity(wheel.AxisCavalos, c.streak)
		if got.Tier != c.want {
			t.Errorf("Continuity(Cavalos, %d) = %s, want %s", c.streak, got.Tier, c.want)
		}
	}
}

// Cor/Paridade/Metade 的缺席沿用連續門檻、改掛 return_* 標籤。
func TestAbsenceFlatAxes(t *testing.T) {
	cls := signal.New(nil)
	for _, axis := range []wheel.Axis{wheel.AxisCor, wheel.AxisParidade, wheel.AxisMetade} {
		cases := []struct {
			gap  int
			want signal.Tier
		}{
			{2, signal.Neutral},
			{3, signal.ReturnMedium},
			{5, signal.ReturnMedium},
			{6, signal.ReturnStrong},
			{9, signal.ReturnStrong},
			{10, signal.ReturnExtreme},
		}
		for _, c := range cases {
			got := cls.Absence(axis, c.gap)
			if got.Tier != c.want {
				t.Errorf("Absence(%s, %d) = %s, want %s", axis, c.gap, got.Tier, c.want)
			}
		}
	}
}

// 絕對刻度軸的缺席分級。Setor：neutro ≤4，oposto 5–22，retorno ≥23。
func TestAbsenceSetorBoundaries(t *testing.T) {
	cls := signal.New(nil)
	cases := []struct {
		gap  int
		want signal.Tier
	}{
		{0, signal.Neutral},
		{4, signal.Neutral},
		{5, signal.Opposite},
		{22, signal.Opposite},
		{23, signal.Return},
		{40, signal.Return},
	}
	for _, c := range cases {
		got := cls.Absence(wheel.AxisSetor, c.gap)
		if got.Tier != c.want {
			t.Errorf("Absence(Setor, %d) = %s, want %s", c.gap, got.Tier, c.want)
		}
	}
}

// Coluna/Dúzia：oposto 5–15，retorno ≥16。Cavalos：oposto 5–10，retorno ≥11。
func TestAbsenceNarrowAxes(t *testing.T) {
	cls := signal.New(nil)

	for _, axis := range []wheel.Axis{wheel.AxisColuna, wheel.AxisDuzia} {
		if got := cls.Absence(axis, 15); got.Tier != signal.Opposite {
			t.Errorf("Absence(%s, 15) = %s, want oposto", axis, got.Tier)
		}
		if got := cls.Absence(axis, 16); got.Tier != signal.Return {
			t.Errorf("Absence(%s, 16) = %s, want retorno", axis, got.Tier)
		}
	}

	if got := cls.Absence(wheel.AxisCavalos, 10); got.Tier != signal.Opposite {
		t.Errorf("Absence(Cavalos, 10) = %s, want oposto", got.Tier)
	}
	if got := cls.Absence(wheel.AxisCavalos, 11); got.Tier != signal.Return {
		t.Errorf("Absence(Cavalos, 11) = %s, want retorno", got.Tier)
	}
}

func TestSeverityMonotonic(t *testing.T) {
	cont := []signal.Tier{signal.Neutral, signal.Medium, signal.Strong, signal.Extreme}
	for i := 1; i < len(cont); i++ {
		if cont[i].Severity() <= cont[i-1].Severity() {
			t.Errorf("severity not increasing at %s", cont[i])
		}
	}
	abs := []signal.Tier{signal.Neutral, signal.ReturnMedium, signal.ReturnStrong, signal.ReturnExtreme}
	for i := 1; i < len(abs); i++ {
		if abs[i].Severity() <= abs[i-1].Severity() {
			t.Errorf("severity not increasing at %s", abs[i])
		}
	}
	if !(signal.Neutral.Severity() < signal.Opposite.Severity() &&
		signal.Opposite.Severity() < signal.Return.Severity()) {
		t.Error("absolute-scale severities not monotonic")
	}
}

func TestTierLabels(t *testing.T) {
	cases := map[signal.Tier]string{
		signal.Neutral:       "neutro",
		signal.Medium:        "quebrar_médio",
		signal.Strong:        "quebrar_forte",
		signal.Extreme:       "quebrar_extremo",
		signal.ReturnMedium:  "retorno_médio",
		signal.ReturnStrong:  "retorno_forte",
		signal.ReturnExtreme: "retorno_extremo",
		signal.Opposite:      "oposto",
		signal.Return:        "retorno",
	}
	for tier, want := range cases {
		if tier.String() != want {
			t.Errorf("%d.String() = %q, want %q", tier, tier.String(), want)
		}
	}
}
