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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zintix-labs/roletalab"
	"github.com/zintix-labs/roletalab/errs"
	"github.com/zintix-labs/roletalab/rules"
	"github.com/zintix-labs/roletalab/server"
	"github.com/zintix-labs/roletalab/server/logger"
	"github.com/zintix-labs/roletalab/server/netsvr"
	"github.com/zintix-labs/roletalab/server/svrcfg"
	"github.com/zintix-labs/roletalab/store"
)

// This command is intentionally a "lab server" entrypoint for the roletalab repo.
// It enables all developer endpoints by default.
// For production deployments, use a separate scaffold project and run ModeProd.
func main() {
	cfg := new(config)
	flag.StringVar(&cfg.Addr, "addr", ":5808", "listen address")
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.StringVar(&cfg.Backend, "store", "sqlite", "store backend: sqlite|file")
	flag.StringVar(&cfg.DBPath, "db", "roletalab.db", "sqlite database path (store=sqlite)")
	flag.StringVar(&cfg.Dir, "dir", "roletalab-data", "data directory (store=file)")
	flag.StringVar(&cfg.Rules, "rules", "", "optional YAML/JSON rule table override")
	flag.StringVar(&cfg.Perfis, "perfis", "", "optional YAML/JSON risk profile override")
	flag.Parse()

	sCfg, st, ah, err := cfg.build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()
	// 關站時把 async buffer 裡的 log 排乾
	defer ah.Close()

	server.RunWithSvr(sCfg, netsvr.NewChiServer(cfg.Addr))
}

type config struct {
	Addr    string
	LogMode string
	Backend string
	DBPath  string
	Dir     string
	Rules   string
	Perfis  string
}

func (cfg *config) build() (*svrcfg.SvrCfg, store.Store, *logger.AsyncHandler, error) {
	log, ah := logger.NewAsync(4096, cfg.norm())

	rs, ps, err := cfg.tables()
	if err != nil {
		return nil, nil, nil, err
	}

	var st store.Store
	switch cfg.Backend {
	case "sqlite":
		st, err = store.OpenSQLite(cfg.DBPath)
	case "file":
		st, err = store.OpenFile(cfg.Dir)
	default:
		err = errs.Fatalf("unknown store backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	lab, err := roletalab.New(rs, ps, st)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	return &svrcfg.SvrCfg{Log: log, Lab: lab}, st, ah, nil
}

// tables 載入規則表與風險配置；未指定路徑時使用內建預設表。
func (cfg *config) tables() (*rules.RuleSet, *rules.ProfileSet, error) {
	var rs *rules.RuleSet
	var ps *rules.ProfileSet
	var err error
	if cfg.Rules != "" {
		dir, name := splitPath(cfg.Rules)
		rs, err = rules.LoadRuleSet(os.DirFS(dir), name)
		if err != nil {
			return nil, nil, err
		}
	}
	if cfg.Perfis != "" {
		dir, name := splitPath(cfg.Perfis)
		ps, err = rules.LoadProfileSet(os.DirFS(dir), name)
		if err != nil {
			return nil, nil, err
		}
	}
	return rs, ps, nil
}

func splitPath(p string) (dir, name string) {
	dir, name = filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	return dir, name
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
