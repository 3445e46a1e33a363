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

package dto_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/roletalab/dto"
)

func TestDecodeDrawsRequestPost(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/draws",
		strings.NewReader(`{"uid": "ana", "numeros": [23, 8, 17]}`))
	req, err := dto.DecodeDrawsRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if req.UID != "ana" || len(req.Numbers) != 3 || req.Numbers[0] != 23 {
		t.Errorf("decoded = %+v", req)
	}

	nums, err := req.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(nums) != 3 {
		t.Errorf("parsed = %v", nums)
	}
}

func TestDecodeDrawsRequestRawText(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/draws",
		strings.NewReader(`{"uid": "ana", "texto": "23, 8, 17"}`))
	req, err := dto.DecodeDrawsRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	nums, err := req.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(nums) != 3 || nums[2] != 17 {
		t.Errorf("parsed = %v", nums)
	}
}

// 嚴格解碼：未知欄位直接拒絕。
func TestDecodeDrawsRequestUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/draws",
		strings.NewReader(`{"uid": "ana", "numbers": [1]}`))
	if _, err := dto.DecodeDrawsRequest(r); err == nil {
		t.Fatal("unknown field must be rejected")
	}
}

// numeros 與 texto 互斥（避免雙重語意）。
func TestDecodeDrawsRequestMutuallyExclusive(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/draws",
		strings.NewReader(`{"uid": "ana", "numeros": [1], "texto": "2"}`))
	if _, err := dto.DecodeDrawsRequest(r); err == nil {
		t.Fatal("numeros+texto must be rejected")
	}
}

func TestDrawsRequestParseEmpty(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/draws", strings.NewReader(`{"uid": "ana"}`))
	req, err := dto.DecodeDrawsRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := req.Parse(); err == nil {
		t.Fatal("empty batch must be rejected")
	}
}

func TestDecodeDrawsRequestGetQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/draws?uid=ana&numeros=5,12,0", nil)
	req, err := dto.DecodeDrawsRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	nums, err := req.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(nums) != 3 || nums[0] != 5 {
		t.Errorf("parsed = %v", nums)
	}
}

func TestDecodeBoardRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/board?uid=ana&perfil=Agressivo", nil)
	req, err := dto.DecodeBoardRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if req.UID != "ana" || req.Profile != "Agressivo" {
		t.Errorf("decoded = %+v", req)
	}

	if _, err := dto.DecodeBoardRequest(httptest.NewRequest("POST", "/v1/board", nil)); err == nil {
		t.Error("board is GET only")
	}
}

func TestDecodeUserRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/clear", strings.NewReader(`{"uid": "ana"}`))
	req, err := dto.DecodeUserRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if req.UID != "ana" {
		t.Errorf("decoded = %+v", req)
	}

	g := httptest.NewRequest("GET", "/v1/store?uid=bia", nil)
	req, err = dto.DecodeUserRequest(g)
	if err != nil {
		t.Fatal(err)
	}
	if req.UID != "bia" {
		t.Errorf("decoded = %+v", req)
	}
}

func TestDecodePutStoreRequest(t *testing.T) {
	body := `{"uid": "ana", "memoria": {"Vermelho": {"seq_max": 4, "seq_media": 2, "seq_n": 2, "aus_max": 0, "aus_media": 0, "aus_n": 0}}}`
	r := httptest.NewRequest("PUT", "/v1/store", strings.NewReader(body))
	req, err := dto.DecodePutStoreRequest(r)
	if err != nil {
		t.Fatal(err)
	}
	if req.Records["Vermelho"].MaxStreak != 4 {
		t.Errorf("decoded = %+v", req.Records["Vermelho"])
	}
}

// 未知分類名視為 request 格式錯誤。
func TestDecodePutStoreRequestUnknownCategory(t *testing.T) {
	body := `{"uid": "ana", "memoria": {"Fantasma": {"seq_max": 1}}}`
	r := httptest.NewRequest("PUT", "/v1/store", strings.NewReader(body))
	if _, err := dto.DecodePutStoreRequest(r); err == nil {
		t.Fatal("unknown category must be rejected")
	}
}

func TestDecodePutStoreRequestMissingBody(t *testing.T) {
	r := httptest.NewRequest("PUT", "/v1/store", strings.NewReader(`{"uid": "ana"}`))
	if _, err := dto.DecodePutStoreRequest(r); err == nil {
		t.Fatal("memoria is required")
	}
}
