package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zintix-labs/roletalab/dto"
	"github.com/zintix-labs/roletalab/server/httperr"
)

// Board 執行一次完整評估 pass：
//
//	讀文件 -> 遷移 -> Ledger 重掃 -> 寫回 -> 分級 -> 排序 -> 建議
//
// 序列不足時回 400（Warn）；持久層故障回 500（Fatal）。
func (c *LabHandler) Board(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeBoardRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// 請求解析完成，設置超時 context
	ctx := q.Context()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := c.lab.Board(ctx, req.UID, req.Profile)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// ResetView 標記下一次 Board 的顯示計數歸零（不動序列與持久統計）。
func (c *LabHandler) ResetView(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeUserRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UID == "" {
		http.Error(w, "uid is required", http.StatusBadRequest)
		return
	}

	c.lab.ResetView(req.UID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.AckResult{UID: req.UID, Ok: true})
}

// Clear 將使用者的全部持久統計歸零。
func (c *LabHandler) Clear(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeUserRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(q.Context(), 5*time.Second)
	defer cancel()

	if err := c.lab.Clear(ctx, req.UID); err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.AckResult{UID: req.UID, Ok: true})
}
