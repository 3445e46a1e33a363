// Package dev 提供 RoletaLab 的「內部 Dev Panel」HTTP endpoints。
//
// 目的（ explain the why ）：
//   - 給分析師 / 後端在開發期快速驗證：輸入一串開獎號碼，立即看兩張排序表與建議。
//   - Board 以純文字表格回傳（等寬字型直接貼 terminal / chat 都對齊）。
//
// 注意（ contract ）：
//   - 這不是 production API；它偏向 debug / tooling，行為允許更寬鬆。
//   - 這裡的錯誤處理走 `httperr.Errs`（以 errs.Warn/errs.Fatal 對應 HTTP response）。
package dev

import (
	"net/http"

	"github.com/zintix-labs/roletalab/dto"
	"github.com/zintix-labs/roletalab/ranking"
	"github.com/zintix-labs/roletalab/server/httperr"
	"github.com/zintix-labs/roletalab/server/netsvr"
	"github.com/zintix-labs/roletalab/server/svrcfg"
)

// Register 註冊 Dev Panel 的 routes。
//
// Routes：
//   - GET  /dev        ：Dev Panel HTML（內嵌 JS）。
//   - POST /dev/draws  ：追加號碼（與 /v1/draws 相同格式）。
//   - GET  /dev/board  ：純文字排序表（text/plain）。
//
// 依賴（dependency）：
//   - 需要 cfg.Lab 已被上層組裝完成並注入；否則會回 errs.Fatal。
func Register(svr netsvr.NetRouter, cfg *svrcfg.SvrCfg) {
	svr.Get("/dev", devPage)
	svr.Post("/dev/draws", devDraws(cfg))
	svr.Get("/dev/board", devBoard(cfg))
}

func devPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(devPageHTML))
}

func devDraws(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, q *http.Request) {
		req, err := dto.DecodeDrawsRequest(q)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		nums, err := req.Parse()
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		if err := cfg.Lab.Append(req.UID, nums); err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}
}

func devBoard(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, q *http.Request) {
		req, err := dto.DecodeBoardRequest(q)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		br, err := cfg.Lab.Board(q.Context(), req.UID, req.Profile)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		render := &ranking.TextBoardRender{}
		if err := render.Write(w, br.Board); err != nil {
			httperr.Errs(w, err)
			return
		}
		if br.Primary != nil {
			_, _ = w.Write([]byte("\n>> " + br.Primary.Action + "\n   " + br.Primary.Reason + "\n"))
		}
		if br.Secondary != nil {
			_, _ = w.Write([]byte("\n>> " + br.Secondary.Action + "\n   " + br.Secondary.Reason + "\n"))
		}
	}
}

const devPageHTML = `<!doctype html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8" />
  <title>RoletaLab Dev</title>
  <style>
    body { font-family: -apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif; background:#0f172a; color:#e2e8f0; margin:0; }
    .wrap { max-width: 980px; margin: 24px auto; padding: 16px 20px; background:#111827; border:1px solid #1f2937; border-radius:12px; }
    h1 { margin: 0 0 16px; font-size: 22px; }
    .grid { display:grid; grid-template-columns: 2fr 1fr 1fr; gap:12px; margin-bottom:12px; }
    label { display:flex; flex-direction:column; gap:6px; font-size: 13px; color:#cbd5e1; }
    input, select { background:#0b1224; color:#e2e8f0; border:1px solid #1f2738; border-radius:8px; padding:10px 12px; font-size:14px; }
    .actions { display:flex; gap:10px; justify-content:flex-end; margin: 8px 0 14px; }
    button { cursor:pointer; border:none; border-radius:10px; padding:10px 14px; font-weight:600; }
    #btn-add { background:#38bdf8; color:#0b1224; }
    #btn-board { background:#22c55e; color:#0b1224; }
    #out { background:#0b1224; border:1px solid #1f2738; border-radius:12px; padding:14px; min-height:220px; overflow:auto; font-family: ui-monospace, Menlo, Consolas, monospace; white-space:pre; }
    .info { font-size:13px; color:#94a3b8; align-self:center; margin-right:auto; }
    .info.warn { color:#f87171; font-weight:600; }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>RoletaLab Dev Panel</h1>
    <div class="grid">
      <label>Números (ex.: 23, 8, 17)
        <input id="nums" type="text" placeholder="23, 8, 17" />
      </label>
      <label>UID
        <input id="uid" type="text" value="dev" />
      </label>
      <label>Perfil
        <select id="perfil">
          <option>Conservador</option>
          <option selected>Moderado</option>
          <option>Agressivo</option>
        </select>
      </label>
    </div>
    <div class="actions">
      <span class="info" id="info"></span>
      <button id="btn-add">Adicionar</button>
      <button id="btn-board">Rankings</button>
    </div>
    <pre id="out"></pre>
  </div>
<script>
const out = document.getElementById('out');
const info = document.getElementById('info');
function setInfo(msg, warn) { info.textContent = msg; info.className = warn ? 'info warn' : 'info'; }
async function add() {
  const uid = document.getElementById('uid').value;
  const texto = document.getElementById('nums').value;
  const res = await fetch('/dev/draws', { method:'POST', headers:{'Content-Type':'application/json'}, body: JSON.stringify({uid, texto}) });
  const body = await res.text();
  if (!res.ok) { setInfo(body.trim(), true); return; }
  document.getElementById('nums').value = '';
  setInfo('adicionado');
  board();
}
async function board() {
  const uid = document.getElementById('uid').value;
  const perfil = document.getElementById('perfil').value;
  const res = await fetch('/dev/board?uid=' + encodeURIComponent(uid) + '&perfil=' + encodeURIComponent(perfil));
  const body = await res.text();
  if (!res.ok) { setInfo(body.trim(), true); return; }
  setInfo('');
  out.textContent = body;
}
document.getElementById('btn-add').addEventListener('click', add);
document.getElementById('btn-board').addEventListener('click', board);
document.getElementById('nums').addEventListener('keydown', e => { if (e.key === 'Enter') add(); });
</script>
</body>
</html>`
