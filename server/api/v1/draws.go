package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/roletalab"
	"github.com/zintix-labs/roletalab/dto"
	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/server/httperr"
	"github.com/zintix-labs/roletalab/server/svrcfg"
)

// Draws 追加一批開獎號碼（整批成功或整批拒絕，拒絕時序列不變）。
func (c *LabHandler) Draws(w http.ResponseWriter, q *http.Request) {
	// 請求方法、結構體校驗
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := dto.DecodeDrawsRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	nums, err := req.Parse()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	if err := c.lab.Append(req.UID, nums); err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	result := dto.DrawsResult{UID: req.UID, Rounds: c.lab.Rounds(req.UID)}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// ============================================================
// ** LabHandler **
// ============================================================

type LabHandler struct {
	lab *roletalab.Roletalab
}

func NewLabHandler(sCfg *svrcfg.SvrCfg) (*LabHandler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("build lab handler error: lab is required")
	}
	return &LabHandler{lab: sCfg.Lab}, nil
}
