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

// replay 離線重掃工具：讀入一個號碼檔（逗號/空白/換行分隔皆可），
// 重建兩張排序表與建議，並輸出已關閉段長的分佈摘要。
//
//	replay -file draws.txt -perfil Agressivo -out text
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/roletalab/advisor"
	"github.com/zintix-labs/roletalab/ledger"
	"github.com/zintix-labs/roletalab/ranking"
	"github.com/zintix-labs/roletalab/rules"
	"github.com/zintix-labs/roletalab/session"
	"github.com/zintix-labs/roletalab/signal"
	"github.com/zintix-labs/roletalab/wheel"
)

func main() {
	var (
		file   string
		perfil string
		out    string
		noEst  bool
		noBar  bool
	)
	flag.StringVar(&file, "file", "-", "numbers file ('-' = stdin)")
	flag.StringVar(&perfil, "perfil", rules.DefaultProfileName, "risk profile name")
	flag.StringVar(&out, "out", "text", "output format: text|json|yaml")
	flag.BoolVar(&noEst, "no-est", false, "skip segment-length summary")
	flag.BoolVar(&noBar, "no-bar", false, "disable progress bar")
	flag.Parse()

	seq, err := readNumbers(file)
	if err != nil {
		log.Fatal(err)
	}
	if len(seq) < session.MinHistory {
		log.Fatalf("need at least %d numbers, got %d", session.MinHistory, len(seq))
	}

	recs := ledger.NewRecords()
	walker := ledger.NewWalker(recs)

	var bar *pb.ProgressBar
	if !noBar {
		bar = pb.StartNew(len(seq))
	}
	for _, n := range seq {
		walker.Step(n)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	cls := signal.New(rules.Default())
	board := ranking.Build(walker.States(), recs, cls)
	adv := advisor.New(rules.DefaultProfiles())
	primary, secondary := adv.Suggest(board, perfil)

	render, err := pickRender(out)
	if err != nil {
		log.Fatal(err)
	}
	if err := render.Write(os.Stdout, board); err != nil {
		log.Fatal(err)
	}
	if out == "text" {
		if primary != nil {
			fmt.Printf("\n>> %s\n   %s\n", primary.Action, primary.Reason)
		}
		if secondary != nil {
			fmt.Printf("\n>> %s\n   %s\n", secondary.Action, secondary.Reason)
		}
		if !noEst {
			fmt.Println()
			fmt.Print(ranking.SegmentsOut(ranking.EstimateSegments(seq)))
		}
	}
}

func pickRender(out string) (ranking.BoardRender, error) {
	switch out {
	case "text":
		return &ranking.TextBoardRender{}, nil
	case "json":
		return &ranking.JsonBoardRender{}, nil
	case "yaml":
		return &ranking.YAMLBoardRender{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", out)
	}
}

// readNumbers 接受任意混用的逗號/空白/換行分隔。
func readNumbers(file string) ([]int, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var seq []int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		for _, tok := range strings.FieldsFunc(sc.Text(), func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == ';'
		}) {
			n, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("invalid number %q: %w", tok, err)
			}
			if !wheel.InRange(n) {
				return nil, fmt.Errorf("number out of range [%d, %d]: %d", wheel.MinNumber, wheel.MaxNumber, n)
			}
			seq = append(seq, n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return seq, nil
}
