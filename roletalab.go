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

// Package roletalab 提供輪盤連續/缺席追蹤引擎的「組裝入口（assembler）」。
//
// Roletalab 把四個地基組裝在一起，對外提供完整的評估 pass：
//  1. RuleSet / ProfileSet：門檻表與風險配置（rules，可由 fs.FS 注入覆寫）。
//  2. Store：每位使用者的持久統計文件（SQLite 或檔案）。
//  3. session.Manager：跨請求累積的開獎序列與顯示狀態。
//  4. Classifier / Advisor：純函數層，分級與建議。
//
// 一次 Board() 評估 pass 的流程（read-once / write-once 快照語意）：
//
//	讀文件 -> 舊格式遷移 -> Ledger 全序列重掃（摺入已關閉段）
//	       -> 寫回文件 -> 分級 -> 排序 -> 兩則建議
//
// 核心全程單執行緒、同步；併發控制只存在於 session 與 HTTP 邊界。
package roletalab

import (
	"context"

	"github.com/zintix-labs/roletalab/advisor"
	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/ranking"
	"github.com/zintix-labs/roletalab/rules"
	"github.com/zintix-labs/roletalab/session"
	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/store"
)

// Roletalab 組裝器。建構完成後規則層唯讀，可安全併發使用。
type Roletalab struct {
	cls  *signal.Classifier
	adv  *advisor.Advisor
	st   store.Store
	sess *session.Manager
}

// New 建立一個 Roletalab instance。
//
// 參數要求（合約的一部分）：
//   - st 不能為 nil：沒有持久層就無法維護歷史最大/平均。
//   - rs / ps 可為 nil，此時使用內建預設表（與原面板相同的數值）。
func New(rs *rules.RuleSet, ps *rules.ProfileSet, st store.Store) (*Roletalab, error) {
	if st == nil {
		return nil, errs.NewFatal("store required")
	}
	if rs == nil {
		rs = rules.Default()
	}
	if ps == nil {
		ps = rules.DefaultProfiles()
	}
	return &Roletalab{
		cls:  signal.New(rs),
		adv:  advisor.New(ps),
		st:   st,
		sess: session.NewManager(),
	}, nil
}

// BoardResult 一輪評估的完整輸出。
type BoardResult struct {
	Board     *ranking.Board      `json:"ranking"`
	Primary   *advisor.Suggestion `json:"sugestao_principal,omitempty"`
	Secondary *advisor.Suggestion `json:"sugestao_complementar,omitempty"`
	Rounds    int                 `json:"rodadas"`
	Profile   string              `json:"perfil"`
}

// Append 驗證並追加一批開獎號碼到 uid 的序列（整批成功或整批拒絕）。
func (l *Roletalab) Append(uid string, nums []int) error {
	if uid == "" {
		return errs.NewWarn("uid is required")
	}
	return l.sess.Append(uid, nums)
}

// Board 執行一次完整評估 pass 並回傳兩張排序表與兩則建議。
//
// 行為：
//   - 序列不足 session.MinHistory 時回 Warn（面板提示「再多輸入幾個號碼」）。
//   - 若 session 帶著 reset-view 標記，本次顯示的 current streak/gap 一律
//     歸零（分級隨之全中立），標記消耗後下一輪恢復正常。持久統計照常摺入。
func (l *Roletalab) Board(ctx context.Context, uid string, profile string) (*BoardResult, error) {
	if uid == "" {
		return nil, errs.NewWarn("uid is required")
	}
	seq := l.sess.Sequence(uid)
	if len(seq) < session.MinHistory {
		return nil, errs.Warnf("insira ao menos %d números para construir os rankings", session.MinHistory)
	}

	recs, err := l.st.Load(ctx, uid)
	if err != nil {
		return nil, err
	}
	states := ledger.Replay(seq, recs)
	if err := l.st.Save(ctx, uid, recs); err != nil {
		return nil, err
	}

	if l.sess.TakeResetView(uid) {
		for k := range states {
			states[k] = ledger.RunState{}
		}
	}

	board := ranking.Build(states, recs, l.cls)
	primary, secondary := l.adv.Suggest(board, profile)
	_, name := l.Profiles().Get(profile)

	return &BoardResult{
		Board:     board,
		Primary:   primary,
		Secondary: secondary,
		Rounds:    len(seq),
		Profile:   name,
	}, nil
}

// ResetView 標記下一次 Board 的顯示計數歸零（不動序列與持久統計）。
func (l *Roletalab) ResetView(uid string) {
	l.sess.MarkResetView(uid)
}

// Clear 將 uid 的全部持久統計歸零（操作員動作「limpar memória」）。
// 序列與 RunState 不受影響：下一次 Board 會對同一序列重新評估。
func (l *Roletalab) Clear(ctx context.Context, uid string) error {
	if uid == "" {
		return errs.NewWarn("uid is required")
	}
	return l.st.Clear(ctx, uid)
}

// Document 讀出 uid 的原始文件（已正規化）。
func (l *Roletalab) Document(ctx context.Context, uid string) (ledger.Records, error) {
	if uid == "" {
		return nil, errs.NewWarn("uid is required")
	}
	return l.st.Load(ctx, uid)
}

// PutDocument 整份替換 uid 的文件（hydrate 後寫入）。
func (l *Roletalab) PutDocument(ctx context.Context, uid string, recs ledger.Records) error {
	if uid == "" {
		return errs.NewWarn("uid is required")
	}
	return l.st.Save(ctx, uid, ledger.Hydrate(recs))
}

// Rounds 回傳 uid 目前累積的開獎數。
func (l *Roletalab) Rounds(uid string) int {
	return l.sess.Len(uid)
}

// Profiles 取目前裝載的風險配置集合。
func (l *Roletalab) Profiles() *rules.ProfileSet {
	return l.adv.ProfileSet()
}

// Close 釋放持久層資源。
func (l *Roletalab) Close() error {
	return l.st.Close()
}
