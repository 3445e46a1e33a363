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

// Package wheel 定義歐式輪盤的靜態分類結構（Single Source of Truth / SSOT）。
//
// 監控的分類共 17 個 Category，分屬 7 個 Axis：
//  1. Cor（顏色）：Vermelho / Preto
//  2. Paridade（奇偶）：Par / Ímpar
//  3. Metade（上下半）：Metade 1-18 / Metade 19-36
//  4. Dúzia（打）：Dúzia 1 / 2 / 3
//  5. Coluna（列）：Coluna 1 / 2 / 3
//  6. Cavalos（馬組，尾數組）：1-4-7 / 2-5-8 / 3-6-9
//  7. Setor（輪盤扇區）：Voisins / Tiers / Orphelins
//
// 0 是特例：沒有顏色/奇偶/上下半/打/列/馬組，但屬於 Voisins 扇區。
//
// 本包只負責「號碼 -> 分類」的靜態映射，不持有任何狀態；
// 串流統計（連續/缺席）一律由 ledger 處理。
package wheel

// Axis 分類軸 enum
type Axis uint8

const (
	AxisCor Axis = iota
	AxisParidade
	AxisMetade
	AxisDuzia
	AxisColuna
	AxisCavalos
	AxisSetor
)

var axisNames = map[Axis]string{
	AxisCor:      "Cor",
	AxisParidade: "Paridade",
	AxisMetade:   "Metade",
	AxisDuzia:    "Dúzia",
	AxisColuna:   "Coluna",
	AxisCavalos:  "Cavalos",
	AxisSetor:    "Setor",
}

func (a Axis) String() string {
	if s, ok := axisNames[a]; ok {
		return s
	}
	return "Outro"
}

// Category 單一分類。Name 是對外（儲存文件 / API）的固定字串，請勿改動。
type Category struct {
	Name string
	Axis Axis
}

// Categories 固定的 17 個監控分類，順序即對外輸出表格的基準順序。
var Categories = []Category{
	{Name: "Vermelho", Axis: AxisCor},
	{Name: "Preto", Axis: AxisCor},
	{Name: "Par", Axis: AxisParidade},
	{Name: "Ímpar", Axis: AxisParidade},
	{Name: "Metade 1-18", Axis: AxisMetade},
	{Name: "Metade 19-36", Axis: AxisMetade},
	{Name: "Dúzia 1", Axis: AxisDuzia},
	{Name: "Dúzia 2", Axis: AxisDuzia},
	{Name: "Dúzia 3", Axis: AxisDuzia},
	{Name: "Coluna 1", Axis: AxisColuna},
	{Name: "Coluna 2", Axis: AxisColuna},
	{Name: "Coluna 3", Axis: AxisColuna},
	{Name: "Cavalos 1-4-7", Axis: AxisCavalos},
	{Name: "Cavalos 2-5-8", Axis: AxisCavalos},
	{Name: "Cavalos 3-6-9", Axis: AxisCavalos},
	{Name: "Voisins", Axis: AxisSetor},
	{Name: "Tiers", Axis: AxisSetor},
	{Name: "Orphelins", Axis: AxisSetor},
}

// SectorSize 扇區涵蓋的號碼數（含 Voisins 的 0）。
// 請勿修改預設值：這是輪盤的實體排列，advisor 的曝險計算依賴它。
var SectorSize = map[string]int{
	"Voisins":   17,
	"Tiers":     12,
	"Orphelins": 8,
}

// MinNumber / MaxNumber 合法號碼範圍（歐式單零輪盤）。
const (
	MinNumber = 0
	MaxNumber = 36
)

var reds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// 扇區依實體輪盤排列定義（號碼 -> 扇區名）。
var sectors = func() map[int]string {
	m := make(map[int]string, 37)
	for _, n := range []int{22, 18, 29, 7, 28, 12, 35, 3, 26, 0, 32, 15, 19, 4, 21, 2, 25} {
		m[n] = "Voisins"
	}
	for _, n := range []int{27, 13, 36, 11, 30, 8, 23, 10, 5, 24, 16, 33} {
		m[n] = "Tiers"
	}
	for _, n := range []int{1, 20, 14, 31, 9, 17, 34, 6} {
		m[n] = "Orphelins"
	}
	return m
}()

// InRange 回報 n 是否為合法輪盤號碼。
func InRange(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// Memberships 回傳號碼 n 所屬的全部分類名稱。
//
// 合約：
//   - n 必須已通過 InRange 檢查；對範圍外的輸入回傳 nil。
//   - 0 只屬於 Voisins。
//   - 非 0 號碼屬於恰好一個顏色、一個奇偶、一個上下半、一打、一列、
//     一個馬組（尾數 0 除外）與至多一個扇區。
func Memberships(n int) []string {
	if !InRange(n) {
		return nil
	}
	out := make([]string, 0, 7)
	if reds[n] {
		out = append(out, "Vermelho")
	} else if n != 0 {
		out = append(out, "Preto")
	}
	if n != 0 {
		if n%2 == 0 {
			out = append(out, "Par")
		} else {
			out = append(out, "Ímpar")
		}
		if n <= 18 {
			out = append(out, "Metade 1-18")
		} else {
			out = append(out, "Metade 19-36")
		}
		switch {
		case n <= 12:
			out = append(out, "Dúzia 1")
		case n <= 24:
			out = append(out, "Dúzia 2")
		default:
			out = append(out, "Dúzia 3")
		}
		out = append(out, colName((n-1)%3+1))
		if h := horseGroup(n); h != "" {
			out = append(out, h)
		}
	}
	if s, ok := sectors[n]; ok {
		out = append(out, s)
	}
	return out
}

// AxisOf 回傳分類名稱所屬的軸。未知名稱回傳 false。
func AxisOf(name string) (Axis, bool) {
	a, ok := axisByName[name]
	return a, ok
}

var axisByName = func() map[string]Axis {
	m := make(map[string]Axis, len(Categories))
	for _, c := range Categories {
		m[c.Name] = c.Axis
	}
	return m
}()

func colName(i int) string {
	switch i {
	case 1:
		return "Coluna 1"
	case 2:
		return "Coluna 2"
	default:
		return "Coluna 3"
	}
}

// horseGroup 以尾數決定馬組；尾數 0（10/20/30）不屬於任何馬組。
func horseGroup(n int) string {
	switch n % 10 {
	case 1, 4, 7:
		return "Cavalos 1-4-7"
	case 2, 5, 8:
		return "Cavalos 2-5-8"
	case 3, 6, 9:
		return "Cavalos 3-6-9"
	}
	return ""
}
