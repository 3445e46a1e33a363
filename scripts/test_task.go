package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// cleanCache 對應 go clean -testcache。
// fatal 控制失敗時要不要直接結束（一般測試允許繼續跑）。
func cleanCache(fatal bool) {
	cmd := exec.Command("go", "clean", "-testcache")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		PrintRed(fmt.Sprintf("go clean -testcache failed: %v", err))
		if fatal {
			os.Exit(1)
		}
	}
}

// streamTest 跑 go test 並逐行著色輸出。
// stderr 併入 stdout（等同 shell 的 2>&1），編譯錯誤也吃得到。
// keep 回傳 false 的行直接丟掉。
func streamTest(args []string, keep func(string) bool) error {
	cmd := exec.Command("go", args...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		PrintRed(fmt.Sprintf("failed to get stdout pipe: %v", err))
		os.Exit(1)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		PrintRed(fmt.Sprintf("Error starting go test: %v", err))
		os.Exit(1)
	}

	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		default:
			fmt.Println(line)
		}
	}
	return cmd.Wait()
}

// runTest：精簡模式。只留 ok / FAIL 摘要行，
// 另外放行 build/setup failed，否則編譯掛掉時畫面會一片空白。
func runTest() {
	PrintGreen("running tests")
	cleanCache(false)

	err := streamTest([]string{"test", "./...", "-cover", "-count=1"}, func(line string) bool {
		return strings.HasPrefix(line, "ok") ||
			strings.HasPrefix(line, "FAIL") ||
			strings.Contains(line, "build failed") ||
			strings.Contains(line, "setup failed")
	})
	if err != nil {
		PrintRed("\nTests Finished with Errors\n")
		os.Exit(1)
	}
}

// runTestAll：全量 + coverage，輸出不過濾。
func runTestAll() {
	PrintGreen("running tests (all with coverage)")
	cleanCache(true)

	cmd := exec.Command("go", "test", "./...", "-cover")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		PrintRed("\nTests (with coverage) finished with errors\n")
		os.Exit(1)
	}
}

// runTestDetail：verbose 模式，只濾掉 [no test files] 的噪音。
func runTestDetail() {
	PrintGreen("running tests (detail)")
	cleanCache(true)

	err := streamTest([]string{"test", "./...", "-v", "-count=1"}, func(line string) bool {
		return !strings.Contains(line, "[no test files]")
	})
	if err != nil {
		PrintRed("\nTests (detail) finished with errors\n")
		os.Exit(1)
	}
}
