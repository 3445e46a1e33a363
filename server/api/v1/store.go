package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zintix-labs/roletalab/dto"
	"github.com/zintix-labs/roletalab/server/httperr"
)

// Store 讀出使用者的持久統計文件（舊格式會在讀取時完成遷移）。
func (c *LabHandler) Store(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeUserRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(q.Context(), 5*time.Second)
	defer cancel()

	recs, err := c.lab.Document(ctx, req.UID)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	result := dto.StoreResult{UID: req.UID, Records: recs}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// PutStore 整份替換使用者的持久統計文件（缺漏分類補零）。
func (c *LabHandler) PutStore(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodePutStoreRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(q.Context(), 5*time.Second)
	defer cancel()

	if err := c.lab.PutDocument(ctx, req.UID, req.Records); err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.AckResult{UID: req.UID, Ok: true})
}
