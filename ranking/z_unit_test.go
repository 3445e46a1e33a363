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

package ranking_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/ranking"
	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/wheel"
)

func build(states ledger.RunStates) *ranking.Board {
	return ranking.Build(states, ledger.NewRecords(), signal.New(nil))
}

func TestBoardSize(t *testing.T) {
	b := build(ledger.RunStates{})
	if len(b.Absence) != len(wheel.Categories) || len(b.Continuity) != len(wheel.Categories) {
		t.Fatalf("board sizes = %d/%d, want %d",
			len(b.Absence), len(b.Continuity), len(wheel.Categories))
	}
}

// 連續榜：嚴重度 desc，再 current streak desc。
func TestContinuitySorting(t *testing.T) {
	b := build(ledger.RunStates{
		"Dúzia 1":     {Active: true, Length: 8}, // extremo
		"Vermelho":    {Active: true, Length: 7}, // forte
		"Metade 1-18": {Active: true, Length: 4}, // médio
		"Par":         {Active: true, Length: 3}, // médio，current 較短
	})

	got := []string{
		b.Continuity[0].Category,
		b.Continuity[1].Category,
		b.Continuity[2].Category,
		b.Continuity[3].Category,
	}
	want := []string{"Dúzia 1", "Vermelho", "Metade 1-18", "Par"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("continuity order = %v, want %v", got, want)
		}
	}
}

// 缺席榜：retorno > oposto > neutro。
func TestAbsenceSorting(t *testing.T) {
	b := build(ledger.RunStates{
		"Tiers":    {Active: false, Length: 25}, // retorno
		"Coluna 2": {Active: false, Length: 10}, // oposto
	})

	if b.Absence[0].Category != "Tiers" || b.Absence[1].Category != "Coluna 2" {
		t.Fatalf("absence order = %s, %s", b.Absence[0].Category, b.Absence[1].Category)
	}
	if b.Absence[0].Tier != "retorno" || b.Absence[1].Tier != "oposto" {
		t.Errorf("tier labels = %s, %s", b.Absence[0].Tier, b.Absence[1].Tier)
	}
}

// 全中立時維持 wheel.Categories 的固定順序（stable sort）。
func TestNeutralKeepsWheelOrder(t *testing.T) {
	b := build(ledger.RunStates{})
	for i, c := range wheel.Categories {
		if b.Absence[i].Category != c.Name {
			t.Fatalf("absence[%d] = %s, want %s", i, b.Absence[i].Category, c.Name)
		}
	}
}

// Row.Mean 取自持久統計並取兩位小數。
func TestBoardMeanFromRecords(t *testing.T) {
	recs := ledger.NewRecords()
	recs["Vermelho"] = ledger.Record{MeanGap: 2.666666, MaxGap: 7, GapCount: 3}
	b := ranking.Build(ledger.RunStates{}, recs, signal.New(nil))

	for _, r := range b.Absence {
		if r.Category != "Vermelho" {
			continue
		}
		if math.Abs(r.Mean-2.67) > 1e-9 || r.Max != 7 {
			t.Errorf("Vermelho absence row = %+v", r)
		}
		return
	}
	t.Fatal("Vermelho row missing")
}

func TestTextRender(t *testing.T) {
	b := build(ledger.RunStates{"Vermelho": {Active: true, Length: 7}})
	var buf bytes.Buffer
	render := &ranking.TextBoardRender{}
	if err := render.Write(&buf, b); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Ranking de Ausência") || !strings.Contains(out, "Ranking de Continuidade") {
		t.Error("table titles missing")
	}
	if !strings.Contains(out, "Vermelho") || !strings.Contains(out, "quebrar_forte") {
		t.Error("row content missing")
	}
}

func TestJsonRender(t *testing.T) {
	b := build(ledger.RunStates{"Tiers": {Active: false, Length: 25}})
	var buf bytes.Buffer
	render := &ranking.JsonBoardRender{}
	if err := render.Write(&buf, b); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Absence []struct {
			Tipo  string `json:"tipo"`
			Sinal string `json:"sinal"`
		} `json:"ausencia"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Absence[0].Tipo != "Tiers" || decoded.Absence[0].Sinal != "retorno" {
		t.Errorf("json first absence row = %+v", decoded.Absence[0])
	}
}

// 估計器只統計已關閉的段，與 Ledger 的摺入語意一致。
func TestEstimateSegments(t *testing.T) {
	// 紅紅黑紅黑：Vermelho 關閉段 streak [2, 1]、gap [1]；尾端 gap 開著不算
	seq := []int{1, 3, 2, 5, 4}
	sums := ranking.EstimateSegments(seq)

	var verm *ranking.SegmentSummary
	for i := range sums {
		if sums[i].Category == "Vermelho" {
			verm = &sums[i]
			break
		}
	}
	if verm == nil {
		t.Fatal("Vermelho summary missing")
	}
	if verm.Streaks.N != 2 || verm.Streaks.Max != 2 {
		t.Errorf("streak stat = %+v, want n=2 max=2", verm.Streaks)
	}
	if math.Abs(verm.Streaks.Mean-1.5) > 1e-9 {
		t.Errorf("streak mean = %f, want 1.5", verm.Streaks.Mean)
	}
	if verm.Gaps.N != 1 || verm.Gaps.Max != 1 {
		t.Errorf("gap stat = %+v, want n=1 max=1", verm.Gaps)
	}
}

func TestEstimateSegmentsEmpty(t *testing.T) {
	sums := ranking.EstimateSegments(nil)
	if len(sums) != len(wheel.Categories) {
		t.Fatalf("summaries = %d, want %d", len(sums), len(wheel.Categories))
	}
	for _, s := range sums {
		if s.Streaks.N != 0 || s.Gaps.N != 0 {
			t.Errorf("%s: empty sequence should have no segments", s.Category)
		}
	}
}
