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

// Package ledger 實作連續/缺席累計器（Streak/Gap Ledger）。
//
// Ledger 對「完整的開獎序列」做單次線性掃描，對 17 個分類各自維護一個
// 小型狀態機（Active/Inactive + 段長），並在段「關閉」時（分類由活轉閒
// 或由閒轉活）把段長摺入持久統計（最大值與增量平均）。
//
// 語意重點（segment completed，不是 point-in-time snapshot）：
//   - 尾端仍開著的段永遠不摺入持久紀錄，只反映在 RunState。
//   - 平均以增量式 (mean*count+v)/(count+1) 維護，不保存歷史段長。
//   - Ledger 對任何範圍內的序列是 total function，沒有失敗模式；
//     範圍檢查屬於輸入層（session）的責任。
package ledger

import "github.com/zintix-labs/roletalab/wheel"

// Record 單一分類的持久統計。
//
// 不變量：MeanStreak 恰為至今「已關閉」的 StreakCount 個連續段長的算術
// 平均（Gap 同理）。只會在段關閉時變動；清除（Clear）以外不會歸零。
type Record struct {
	MaxStreak   int     `json:"seq_max"   yaml:"seq_max"`
	MeanStreak  float64 `json:"seq_media" yaml:"seq_media"`
	StreakCount int     `json:"seq_n"     yaml:"seq_n"`
	MaxGap      int     `json:"aus_max"   yaml:"aus_max"`
	MeanGap     float64 `json:"aus_media" yaml:"aus_media"`
	GapCount    int     `json:"aus_n"     yaml:"aus_n"`
}

// Records 以分類名稱為 key 的持久統計文件（§儲存文件的記憶體形態）。
type Records map[string]Record

// NewRecords 為全部 17 個分類建立零值紀錄。
func NewRecords() Records {
	rs := make(Records, len(wheel.Categories))
	for _, c := range wheel.Categories {
		rs[c.Name] = Record{}
	}
	return rs
}

// Hydrate 補齊缺漏分類（零值），並丟棄未知分類的殘留 key。
// 外部文件可能是部分遷移或手動編輯過的，讀入後一律走這裡正規化。
func Hydrate(rs Records) Records {
	out := make(Records, len(wheel.Categories))
	for _, c := range wheel.Categories {
		out[c.Name] = rs[c.Name]
	}
	return out
}

// Clear 將每個分類的持久統計全數歸零（操作員動作，對應「清除記憶」）。
func Clear(rs Records) {
	for k := range rs {
		rs[k] = Record{}
	}
}

// ============================================================
// ** RunState **
// ============================================================

// RunState 單一分類在掃描後的暫態：尾端開著的段。
//
// 以 tagged state 表示「streak 與 gap 恰一個非零」的不變量：
// Active 時 Length 是 current streak，Inactive 時是 current gap。
// 空序列時 Length == 0（兩者皆零的唯一情況）。
type RunState struct {
	Active bool
	Length int
}

// Streak 回傳 current streak（Inactive 時為 0）。
func (s RunState) Streak() int {
	if s.Active {
		return s.Length
	}
	return 0
}

// Gap 回傳 current gap（Active 時為 0）。
func (s RunState) Gap() int {
	if !s.Active {
		return s.Length
	}
	return 0
}

// RunStates 以分類名稱為 key 的暫態集合。由單次評估 pass 持有，
// 渲染後即丟棄（不持久化）。
type RunStates map[string]RunState

// ============================================================
// ** Replay **
// ============================================================

// Replay 對完整序列做一次線性掃描，就地更新 rs 並回傳每個分類的 RunState。
//
// 合約：
//   - seq 內的值必須已通過 wheel.InRange 驗證；Replay 本身不驗證也不失敗。
//   - rs 會被就地變更（摺入已關閉段）；呼叫端負責「讀一次、寫一次」的
//     快照語意（讀檔 -> Replay -> 寫檔）。
//   - RunState 是序列與分類映射的純函數，與 rs 先前內容無關。
func Replay(seq []int, rs Records) RunStates {
	w := NewWalker(rs)
	for _, n := range seq {
		w.Step(n)
	}
	return w.States()
}

// Walker 逐號推進的掃描器。Replay 是它的一次性包裝；需要邊推進邊回報
// 進度的呼叫端（replay CLI）直接持有 Walker。
type Walker struct {
	rs     Records
	states RunStates
}

// NewWalker 以 rs 為摺入目標建立掃描器。rs 會被就地變更。
func NewWalker(rs Records) *Walker {
	states := make(RunStates, len(wheel.Categories))
	for _, c := range wheel.Categories {
		states[c.Name] = RunState{}
	}
	return &Walker{rs: rs, states: states}
}

// Step 推進一個開獎號碼：活轉閒/閒轉活時把關閉的段摺入紀錄。
func (w *Walker) Step(n int) {
	active := make(map[string]bool, 7)
	for _, name := range wheel.Memberships(n) {
		active[name] = true
	}
	for _, c := range wheel.Categories {
		st := w.states[c.Name]
		if active[c.Name] {
			if !st.Active && st.Length > 0 {
				// gap 段關閉
				rec := w.rs[c.Name]
				rec.foldGap(st.Length)
				w.rs[c.Name] = rec
			}
			if st.Active {
				st.Length++
			} else {
				st = RunState{Active: true, Length: 1}
			}
		} else {
			if st.Active && st.Length > 0 {
				// streak 段關閉
				rec := w.rs[c.Name]
				rec.foldStreak(st.Length)
				w.rs[c.Name] = rec
			}
			if st.Active {
				st = RunState{Active: false, Length: 1}
			} else {
				st.Length++
			}
		}
		w.states[c.Name] = st
	}
}

// States 目前的暫態集合（直接引用，呼叫端不應在掃描途中變更）。
func (w *Walker) States() RunStates {
	return w.states
}

func (r *Record) foldStreak(length int) {
	if length > r.MaxStreak {
		r.MaxStreak = length
	}
	r.MeanStreak, r.StreakCount = foldMean(r.MeanStreak, r.StreakCount, length)
}

func (r *Record) foldGap(length int) {
	if length > r.MaxGap {
		r.MaxGap = length
	}
	r.MeanGap, r.GapCount = foldMean(r.MeanGap, r.GapCount, length)
}

// foldMean 增量平均：(mean*n + v) / (n+1)。
func foldMean(mean float64, n int, v int) (float64, int) {
	return (mean*float64(n) + float64(v)) / float64(n+1), n + 1
}
