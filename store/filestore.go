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
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/ledger"
)

// FileStore 一個 uid 一個 JSON 檔的本機儲存（開發/單機部署用的退路）。
type FileStore struct {
	dir string
}

// OpenFile 開啟（必要時建立）檔案文件庫目錄。
func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errs.NewFatal("store: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "store: mkdir failed")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(ctx context.Context, uid string) (ledger.Records, error) {
	if uid == "" {
		return nil, errs.NewWarn("store: uid is required")
	}
	raw, err := os.ReadFile(s.path(uid))
	if os.IsNotExist(err) {
		return ledger.NewRecords(), nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "store: read file failed")
	}
	recs, migrated, err := DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	if migrated {
		if err := s.Save(ctx, uid, recs); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *FileStore) Save(_ context.Context, uid string, recs ledger.Records) error {
	if uid == "" {
		return errs.NewWarn("store: uid is required")
	}
	raw, err := EncodeDocument(recs)
	if err != nil {
		return err
	}
	// 先寫 tmp 再 rename，避免寫到一半的文件被下一次 Load 讀到。
	tmp := s.path(uid) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errs.Wrap(err, "store: write file failed")
	}
	if err := os.Rename(tmp, s.path(uid)); err != nil {
		return errs.Wrap(err, "store: rename failed")
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context, uid string) error {
	recs, err := s.Load(ctx, uid)
	if err != nil {
		return err
	}
	ledger.Clear(recs)
	return s.Save(ctx, uid, recs)
}

func (s *FileStore) Close() error { return nil }

// path 以 hex 編碼 uid 作為檔名，避免任意字元污染路徑。
func (s *FileStore) path(uid string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(uid))+".json")
}
