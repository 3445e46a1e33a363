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

// Package session 管理每位使用者的開獎序列與顯示狀態。
//
// 序列是 append-only、跨請求累積的記憶體狀態；持久統計在 store，
// 序列本身刻意不持久化（與原面板的工作階段語意一致）。
//
// 輸入驗證是唯一的使用者錯誤面：非數字 token 或範圍外號碼導致
// 「整批拒絕」（不部分套用），序列保持不動，回 Warn。
package session

import (
	"strconv"
	"strings"
	"sync"

	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/wheel"
)

// MinHistory 組表所需的最少開獎數（不足時面板只提示，不出表）。
const MinHistory = 5

// ParseNumbers 解析「23, 8, 17」這類逗號分隔輸入。
// 全批驗證：任何 token 非法即整批拒絕。沒解析出任何號碼
//（空字串、只有逗號/空白）也算 Warn，追加零個號碼沒有意義。
func ParseNumbers(input string) ([]int, error) {
	fields := strings.Split(input, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errs.Warnf("entrada inválida: %q (use apenas números 0–36)", f)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errs.NewWarn("nenhum número informado")
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate 檢查一批號碼是否全部在 [0,36]。
func Validate(nums []int) error {
	for _, v := range nums {
		if !wheel.InRange(v) {
			return errs.Warnf("número fora do intervalo 0–36: %d", v)
		}
	}
	return nil
}

// ============================================================
// ** Session / Manager **
// ============================================================

// Session 單一使用者的暫態。
type Session struct {
	mu        sync.Mutex
	seq       []int
	resetView bool
}

// Manager 以 uid 為 key 管理 Session。
// 外部合約是單 writer per uid，但 HTTP 層本身併發，仍各自持鎖。
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) get(uid string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	if !ok {
		s = &Session{}
		m.sessions[uid] = s
	}
	return s
}

// Append 驗證並追加一批號碼。驗證失敗時整批拒絕、序列不動。
func (m *Manager) Append(uid string, nums []int) error {
	if err := Validate(nums); err != nil {
		return err
	}
	s := m.get(uid)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = append(s.seq, nums...)
	return nil
}

// Sequence 回傳序列的快照（副本；呼叫端可放心長時間持有）。
func (m *Manager) Sequence(uid string) []int {
	s := m.get(uid)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.seq))
	copy(out, s.seq)
	return out
}

// Len 回傳目前序列長度。
func (m *Manager) Len(uid string) int {
	s := m.get(uid)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seq)
}

// MarkResetView 標記「下一次組表把顯示中的連續/缺席歸零」。
// 只影響顯示，不動序列與持久統計。
func (m *Manager) MarkResetView(uid string) {
	s := m.get(uid)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetView = true
}

// TakeResetView 取出並清掉 reset 標記（一次性，只影響單次渲染）。
func (m *Manager) TakeResetView(uid string) bool {
	s := m.get(uid)
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.resetView
	s.resetView = false
	return v
}
