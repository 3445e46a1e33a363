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

package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/session"
	"github.com/zintix-labs/roletalab/wheel"
)

// 防止 body 過大（預設 1MiB）
const maxBody = 1 << 20

// DrawsRequest 追加一批開獎號碼。
//
// Numbers 與 Raw 擇一提供：
//   - numeros：JSON 整數陣列，例如 [23, 8, 17]。
//   - texto：逗號分隔字串，例如 "23, 8, 17"（面板文字框的原始輸入）。
//
// 兩者同時提供視為 request 格式錯誤（避免雙重語意）。號碼範圍的合法性
// 校驗不在這裡做；由 session 層整批檢查。
type DrawsRequest struct {
	UID     string `json:"uid"`
	Numbers []int  `json:"numeros,omitempty"`
	Raw     string `json:"texto,omitempty"`
}

// DecodeDrawsRequest 會把 HTTP 請求解碼成 DrawsRequest。
//
// 支援：
//   - GET：從 query string 讀取（uid/numeros，numeros 為逗號分隔字串）。
//     僅建議用於簡單測試；正式輸入使用 POST。
//   - POST：從 JSON body 反序列化。DisallowUnknownFields()，嚴格拒絕未知欄位。
func DecodeDrawsRequest(r *http.Request) (*DrawsRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(DrawsRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.UID = q.Get("uid")
		req.Raw = q.Get("numeros")
		return req, nil

	case http.MethodPost:
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		if len(req.Numbers) > 0 && req.Raw != "" {
			return nil, errs.NewWarn("numeros and texto are mutually exclusive")
		}
		return req, nil

	default:
		return nil, fmt.Errorf("method not allowed")
	}
}

// Parse 把請求正規化成一批待驗證的號碼。
// 空輸入（兩個欄位都缺）回 Warn：追加零個號碼沒有意義。
func (dr *DrawsRequest) Parse() ([]int, error) {
	if dr.Raw != "" {
		return session.ParseNumbers(dr.Raw)
	}
	if len(dr.Numbers) == 0 {
		return nil, errs.NewWarn("nenhum número informado")
	}
	return dr.Numbers, nil
}

// BoardRequest 取排序表。GET only。
type BoardRequest struct {
	UID     string
	Profile string // 風險配置名稱；缺省時服務端回退預設配置
}

// DecodeBoardRequest 從 query string 解碼（uid/perfil）。
func DecodeBoardRequest(r *http.Request) (*BoardRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	if r.Method != http.MethodGet {
		return nil, fmt.Errorf("method not allowed")
	}
	q := r.URL.Query()
	return &BoardRequest{
		UID:     q.Get("uid"),
		Profile: q.Get("perfil"),
	}, nil
}

// UserRequest 只帶 uid 的操作（reset-view / clear / store 讀取）。
type UserRequest struct {
	UID string `json:"uid"`
}

// DecodeUserRequest GET 走 query，POST 走 JSON body（嚴格解碼）。
func DecodeUserRequest(r *http.Request) (*UserRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(UserRequest)

	switch r.Method {
	case http.MethodGet:
		req.UID = r.URL.Query().Get("uid")
		return req, nil

	case http.MethodPost:
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return req, nil

	default:
		return nil, fmt.Errorf("method not allowed")
	}
}

// PutStoreRequest 整份替換使用者的持久統計文件。
//
// memoria 的格式與 GET /v1/store 的輸出相同（17 個分類各六個欄位）；
// 缺漏的分類由服務端補零，未知分類視為 request 格式錯誤。
type PutStoreRequest struct {
	UID     string         `json:"uid"`
	Records ledger.Records `json:"memoria"`
}

// DecodePutStoreRequest PUT only，JSON body 嚴格解碼。
func DecodePutStoreRequest(r *http.Request) (*PutStoreRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	if r.Method != http.MethodPut {
		return nil, fmt.Errorf("method not allowed")
	}
	body := io.LimitReader(r.Body, maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	req := new(PutStoreRequest)
	if err := dec.Decode(req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if req.Records == nil {
		return nil, errs.NewWarn("memoria is required")
	}
	for name := range req.Records {
		if _, ok := wheel.AxisOf(name); !ok {
			return nil, errs.Warnf("categoria desconhecida: %q", name)
		}
	}
	return req, nil
}
