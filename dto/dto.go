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

// Package dto 定義 HTTP 邊界的請求/回應結構與嚴格解碼。
//
// 這裡只負責 decode 與基本型別轉換；號碼範圍、序列長度等業務合法性
// 由 session / 核心層決定。
package dto

import "github.com/zintix-labs/roletalab/ledger"

// DrawsResult 追加成功後的回應：目前累積的開獎數。
type DrawsResult struct {
	UID    string `json:"uid"`
	Rounds int    `json:"rodadas"`
}

// AckResult reset-view / clear 的回應。
type AckResult struct {
	UID string `json:"uid"`
	Ok  bool   `json:"ok"`
}

// StoreResult GET /v1/store 的回應。舊格式文件在讀取時已完成遷移，
// 這裡永遠輸出目前格式。
type StoreResult struct {
	UID     string         `json:"uid"`
	Records ledger.Records `json:"memoria"`
}
