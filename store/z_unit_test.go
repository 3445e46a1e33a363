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

package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/store"
	"github.com/zintix-labs/roletalab/wheel"
	_ "modernc.org/sqlite"
)

// 舊格式：{分類名: 整數}。整數升級為 seq_max，其餘欄位歸零。
func TestDecodeLegacyDocument(t *testing.T) {
	raw := []byte(`{"Vermelho": 7, "Preto": 3, "Tiers": 12}`)
	recs, migrated, err := store.DecodeDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !migrated {
		t.Fatal("expected legacy migration")
	}
	if recs["Vermelho"].MaxStreak != 7 || recs["Tiers"].MaxStreak != 12 {
		t.Errorf("migrated records = %+v", recs)
	}
	if recs["Vermelho"].StreakCount != 0 || recs["Vermelho"].MeanStreak != 0 {
		t.Error("legacy migration must zero-fill the remaining fields")
	}
	// 未提及的分類補零
	if recs["Par"] != (ledger.Record{}) {
		t.Error("unmentioned category should be zero")
	}
	if len(recs) != len(wheel.Categories) {
		t.Errorf("document size = %d, want %d", len(recs), len(wheel.Categories))
	}
}

// 空文件不是舊格式。
func TestDecodeEmptyNotLegacy(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(`{}`)} {
		recs, migrated, err := store.DecodeDocument(raw)
		if err != nil {
			t.Fatal(err)
		}
		if migrated {
			t.Error("empty document must not be treated as legacy")
		}
		if len(recs) != len(wheel.Categories) {
			t.Errorf("document size = %d, want %d", len(recs), len(wheel.Categories))
		}
	}
}

// 混合值（部分整數、部分物件）不是舊格式：以新格式解、缺欄位補零。
func TestDecodeMixedNotLegacy(t *testing.T) {
	raw := []byte(`{"Vermelho": {"seq_max": 4}, "Preto": {}}`)
	recs, migrated, err := store.DecodeDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if migrated {
		t.Fatal("partial document must not be treated as legacy")
	}
	if recs["Vermelho"].MaxStreak != 4 {
		t.Errorf("Vermelho = %+v", recs["Vermelho"])
	}
	if recs["Preto"] != (ledger.Record{}) {
		t.Errorf("Preto should be zero-filled, got %+v", recs["Preto"])
	}
}

func TestDecodeCorrupt(t *testing.T) {
	if _, _, err := store.DecodeDocument([]byte(`[1,2,3]`)); err == nil {
		t.Error("non-object document must fail")
	}
	if _, _, err := store.DecodeDocument([]byte(`{"Vermelho": "sete"}`)); err == nil {
		t.Error("string record must fail")
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	recs := ledger.NewRecords()
	recs["Vermelho"] = ledger.Record{MaxStreak: 5, MeanStreak: 2.5, StreakCount: 4, MaxGap: 9, MeanGap: 3.25, GapCount: 8}

	raw, err := store.EncodeDocument(recs)
	if err != nil {
		t.Fatal(err)
	}
	got, migrated, err := store.DecodeDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if migrated {
		t.Error("current format misdetected as legacy")
	}
	if got["Vermelho"] != recs["Vermelho"] {
		t.Errorf("roundtrip lost data: %+v", got["Vermelho"])
	}
}

// ============================================================
// ** FileStore **
// ============================================================

func TestFileStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// 不存在的 uid → 全零文件
	recs, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if recs["Vermelho"] != (ledger.Record{}) {
		t.Fatal("fresh uid should load zero records")
	}

	recs["Vermelho"] = ledger.Record{MaxStreak: 6, MeanStreak: 3, StreakCount: 2}
	if err := s.Save(ctx, "ana", recs); err != nil {
		t.Fatal(err)
	}

	back, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if back["Vermelho"].MaxStreak != 6 {
		t.Errorf("persisted record = %+v", back["Vermelho"])
	}

	// Clear 歸零但文件保留
	if err := s.Clear(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	cleared, err := s.Load(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if cleared["Vermelho"] != (ledger.Record{}) {
		t.Errorf("clear left residue: %+v", cleared["Vermelho"])
	}
}

// uid 之間互不干擾（hex 檔名，含特殊字元的 uid 也安全）。
func TestFileStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	a := ledger.NewRecords()
	a["Par"] = ledger.Record{MaxStreak: 3}
	if err := s.Save(ctx, "user/a", a); err != nil {
		t.Fatal(err)
	}

	b, err := s.Load(ctx, "user/b")
	if err != nil {
		t.Fatal(err)
	}
	if b["Par"].MaxStreak != 0 {
		t.Error("uid isolation broken")
	}
}

// ============================================================
// ** SQLiteStore **
// ============================================================

func TestSQLiteLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "lab.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	recs, err := s.Load(ctx, "bruno")
	if err != nil {
		t.Fatal(err)
	}
	recs["Tiers"] = ledger.Record{MaxGap: 19, MeanGap: 8.5, GapCount: 2}
	if err := s.Save(ctx, "bruno", recs); err != nil {
		t.Fatal(err)
	}

	back, err := s.Load(ctx, "bruno")
	if err != nil {
		t.Fatal(err)
	}
	if back["Tiers"] != recs["Tiers"] {
		t.Errorf("persisted record = %+v", back["Tiers"])
	}

	if err := s.Clear(ctx, "bruno"); err != nil {
		t.Fatal(err)
	}
	cleared, err := s.Load(ctx, "bruno")
	if err != nil {
		t.Fatal(err)
	}
	if cleared["Tiers"] != (ledger.Record{}) {
		t.Errorf("clear left residue: %+v", cleared["Tiers"])
	}
}

// 舊格式列在第一次 Load 時升級並立即寫回。
// WAL 是 DSN pragma 給的；沒生效的話併發讀寫會撞 SQLITE_BUSY。
func TestSQLiteWALEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.db")
	s, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSQLiteLegacyMigration(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lab.db")
	s, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	_, err = db.Exec(`INSERT INTO stores (user_id, data, updated_at) VALUES (?, ?, 0)`,
		"legado", `{"Vermelho": 8, "Coluna 2": 4}`)
	if err != nil {
		t.Fatal(err)
	}

	recs, err := s.Load(ctx, "legado")
	if err != nil {
		t.Fatal(err)
	}
	if recs["Vermelho"].MaxStreak != 8 || recs["Coluna 2"].MaxStreak != 4 {
		t.Errorf("migrated records = %+v", recs)
	}

	// 升級已寫回：原始列不再是整數形式
	var raw string
	if err := db.QueryRow(`SELECT data FROM stores WHERE user_id = ?`, "legado").Scan(&raw); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(raw, "seq_max") {
		t.Errorf("migration not persisted: %s", raw)
	}
}

func TestFileStoreEmptyUID(t *testing.T) {
	s, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Load(context.Background(), ""); err == nil {
		t.Error("empty uid must be rejected")
	}
	if err := s.Save(context.Background(), "", ledger.NewRecords()); err == nil {
		t.Error("empty uid must be rejected")
	}
}
