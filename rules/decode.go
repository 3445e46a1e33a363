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

package rules

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zintix-labs/roletalab/errs"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

var (
	defaultOnce     sync.Once
	defaultRules    *RuleSet
	defaultProfiles *ProfileSet
)

// Default 回傳內建預設規則表（defaults/rules.yaml）。
//
// 內嵌設定在編譯期就固定，解碼失敗屬於建置錯誤，直接 panic。
func Default() *RuleSet {
	loadDefaults()
	return defaultRules
}

// DefaultProfiles 回傳內建預設風險配置（defaults/perfis.yaml）。
func DefaultProfiles() *ProfileSet {
	loadDefaults()
	return defaultProfiles
}

func loadDefaults() {
	defaultOnce.Do(func() {
		rs, err := LoadRuleSet(defaultsFS, "defaults/rules.yaml")
		if err != nil {
			panic(err)
		}
		ps, err := LoadProfileSet(defaultsFS, "defaults/perfis.yaml")
		if err != nil {
			panic(err)
		}
		defaultRules = rs
		defaultProfiles = ps
	})
}

// LoadRuleSet 由 fs.FS 讀入並驗證規則表。副檔名決定解碼器
// （.yaml/.yml/.json），其餘一律拒絕。
func LoadRuleSet(fsys fs.FS, name string) (*RuleSet, error) {
	rs := new(RuleSet)
	if err := decodeFile(fsys, name, rs); err != nil {
		return nil, err
	}
	if err := rs.Valid(); err != nil {
		return nil, err
	}
	return rs, nil
}

// LoadProfileSet 由 fs.FS 讀入並驗證風險配置。
func LoadProfileSet(fsys fs.FS, name string) (*ProfileSet, error) {
	ps := new(ProfileSet)
	if err := decodeFile(fsys, name, ps); err != nil {
		return nil, err
	}
	if err := ps.Valid(); err != nil {
		return nil, err
	}
	return ps, nil
}

func decodeFile[T any](fsys fs.FS, name string, out *T) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errs.Wrap(err, "rules: read config failed: "+name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return decodeYAML(raw, out)
	case ".json":
		return decodeJSON(raw, out)
	default:
		return errs.Fatalf("rules: unsupported config format: %q", name)
	}
}

// decodeYAML 嚴格解碼：KnownFields(true)，多寫/拼錯欄位就報錯。
func decodeYAML[T any](raw []byte, out *T) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errs.Wrap(err, "rules: yaml decode failed")
	}
	return nil
}

func decodeJSON[T any](raw []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errs.Wrap(err, "rules: json decode failed")
	}
	return nil
}
