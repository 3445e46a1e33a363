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

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/ledger"
	_ "modernc.org/sqlite"
)

// SQLiteStore 以 SQLite 保存文件：一個 uid 一列，文件整份存在 JSON 欄。
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stores (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// OpenSQLite 開啟（必要時建立）SQLite 文件庫。
// WAL + busy_timeout：服務層是併發的，即使單 writer 合約成立，
// 讀寫交錯仍需要 WAL 避免 SQLITE_BUSY。
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.NewFatal("store: sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "store: open sqlite failed")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(err, "store: ping sqlite failed")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(err, "store: create schema failed")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, uid string) (ledger.Records, error) {
	if uid == "" {
		return nil, errs.NewWarn("store: uid is required")
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM stores WHERE user_id = ?`, uid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.NewRecords(), nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "store: load failed")
	}
	recs, migrated, err := DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	if migrated {
		// 升級後立即寫回，之後的讀取就不再走 sniff 路徑。
		if err := s.Save(ctx, uid, recs); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *SQLiteStore) Save(ctx context.Context, uid string, recs ledger.Records) error {
	if uid == "" {
		return errs.NewWarn("store: uid is required")
	}
	raw, err := EncodeDocument(recs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO stores (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		uid, string(raw), time.Now().UTC().UnixMilli())
	if err != nil {
		return errs.Wrap(err, "store: save failed")
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, uid string) error {
	recs, err := s.Load(ctx, uid)
	if err != nil {
		return err
	}
	ledger.Clear(recs)
	return s.Save(ctx, uid, recs)
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
