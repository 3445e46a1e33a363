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

// Package store 持久化每位使用者的分類統計文件（key-value document）。
//
// 文件形狀：{分類名: {seq_max, seq_media, seq_n, aus_max, aus_media, aus_n}}。
// 評估 pass 開始前整份讀入、結束後整份寫回（read-once / write-once）。
//
// 舊格式遷移：歷史版本的文件是 {分類名: 整數}（只存最大連續）。
// Load 時透明升級：整數作為初始 seq_max，其餘欄位歸零。
// 判定規則（刻意保守）：
//   - 空文件不是舊格式：直接 hydrate 成全零紀錄。
//   - 只有「每個值都是純整數」才視為舊格式；混合/部分遷移的文件視為
//     新格式，缺欄位以零補齊（與 Hydrate 的正規化一致）。
package store

import (
	"context"
	"encoding/json"

	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/ledger"
)

// Store 持久層合約。外部系統保證同一 uid 最多一個 writer；
// 實作只需提供一致的整份讀寫。
type Store interface {
	// Load 讀入整份文件（含舊格式遷移與 hydrate）。uid 不存在時回傳全零紀錄。
	Load(ctx context.Context, uid string) (ledger.Records, error)
	// Save 整份寫回。
	Save(ctx context.Context, uid string, recs ledger.Records) error
	// Clear 將該 uid 的全部持久統計歸零（保留文件本身）。
	Clear(ctx context.Context, uid string) error
	Close() error
}

// DecodeDocument 把原始 JSON 文件解成紀錄集，並回報是否經過舊格式升級。
func DecodeDocument(raw []byte) (ledger.Records, bool, error) {
	if len(raw) == 0 {
		return ledger.NewRecords(), false, nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, errs.Wrap(err, "store: document is not a json object")
	}
	if len(doc) == 0 {
		return ledger.NewRecords(), false, nil
	}

	if legacy, ok := sniffLegacy(doc); ok {
		recs := ledger.NewRecords()
		for name, v := range legacy {
			if _, known := recs[name]; known {
				recs[name] = ledger.Record{MaxStreak: v}
			}
		}
		return recs, true, nil
	}

	recs := make(ledger.Records, len(doc))
	for name, rawRec := range doc {
		var rec ledger.Record
		// 容忍缺欄位（零值補齊）；非物件值直接視為文件損壞。
		if err := json.Unmarshal(rawRec, &rec); err != nil {
			return nil, false, errs.Wrap(err, "store: bad record for category "+name)
		}
		recs[name] = rec
	}
	return ledger.Hydrate(recs), false, nil
}

// EncodeDocument 把紀錄集編成 JSON 文件。
func EncodeDocument(recs ledger.Records) ([]byte, error) {
	raw, err := json.Marshal(recs)
	if err != nil {
		return nil, errs.Wrap(err, "store: encode document failed")
	}
	return raw, nil
}

// sniffLegacy 只有在「每個值都是純 JSON 整數」時才回報舊格式。
func sniffLegacy(doc map[string]json.RawMessage) (map[string]int, bool) {
	out := make(map[string]int, len(doc))
	for name, raw := range doc {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false
		}
		out[name] = v
	}
	return out, true
}
