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

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// 優雅關閉的時間上限；超時的元件由其實作自行決定要不要硬退。
const shutdownGrace = 5 * time.Second

// App 統一管理一組 Component：並行啟動，收到 OS 終止信號或
// 任一元件出錯時協調整體的優雅關閉。
type App struct {
	comps []Component
}

// New 建立空的 App。
func New() *App { return &App{} }

// NewWith 建立 App 並一次註冊多個元件。
func NewWith(comps ...Component) *App {
	app := New()
	for _, c := range comps {
		app.Register(c)
	}
	return app
}

// Register 註冊元件；Run 時納入管理。
func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// Run 以 goroutine 並行啟動所有元件，然後阻塞等待兩種退出路徑：
//   - OS 終止信號（SIGINT/SIGTERM）：優雅關閉後回 nil。
//   - 任一元件的 Run 返回錯誤：優雅關閉後回傳該錯誤。
//
// 前提：Component.Run 是阻塞呼叫，代表元件的整個生命週期。
func (a *App) Run() error {
	// 只關心第一個錯誤；buffer 撐滿避免其餘 goroutine 卡住。
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		a.gracefulShutdown(shutdownGrace)
		return nil
	case err := <-errCh:
		a.gracefulShutdown(shutdownGrace)
		return err
	}
}

// gracefulShutdown 在期限內依註冊順序呼叫各元件的 Shutdown。
func (a *App) gracefulShutdown(td time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), td)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown err: %v\n", err)
		}
	}
}
