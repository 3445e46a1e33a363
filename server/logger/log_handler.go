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

// Package logger 組裝 log/slog：依 LogMode 建立預設 handler，
// 並提供 AsyncHandler 把任何 slog.Handler 變成非阻塞寫出。
//
// 兩種注入方式：
//   - 直接拿 *slog.Logger：NewDefaultLogger / NewDefaultAsyncLogger / NewAsync。
//   - 自行組裝 slog.Handler（JSON/Text/ReplaceAttr/LevelVar...）再交給
//     NewLogger 或 NewAsyncHandler 包裝。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// LogMode 控制預設 handler 的輸出格式與等級。
type LogMode uint8

const (
	ModeDev     LogMode = iota // Text + stderr + Debug
	ModeProd                   // JSON + stdout + Info（給 Loki / Promtail）
	ModeSilence                // 全部丟棄
)

// NewDefaultLogger 依 LogMode 建同步 *slog.Logger。
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode))
}

// NewDefaultAsyncLogger 依 LogMode 建非同步 *slog.Logger（buffer 8192）。
func NewDefaultAsyncLogger(mode LogMode) *slog.Logger {
	return slog.New(NewAsyncHandler(buildHandler(mode), 8192))
}

// NewLogger 把呼叫端自組的 Handler 包成 *slog.Logger；nil 時退回 Dev 預設。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev)
	}
	return slog.New(h)
}

// AsyncHandler 是 slog.Handler 的非阻塞 wrapper：
//   - Handle 只做 enqueue，背景 goroutine 再逐筆呼叫 next.Handle。
//   - buffer 滿時直接丟棄（drop），不把 I/O 延遲傳回請求路徑。
//
// 注意 slog.Logger 本來就忽略 Handle 的回傳錯誤；要處理寫出失敗
// 請在 next handler 內自行包裝。
type AsyncHandler struct {
	next slog.Handler
	d    *asyncDispatcher
}

// WithAttrs/WithGroup 產生的衍生 handler 共用同一個 dispatcher，
// 所以 asyncItem 必須攜帶自己的 next handler。
type asyncDispatcher struct {
	ch     chan asyncItem
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup

	// buffer 滿而丟棄的筆數，可拿去觀測告警。
	dropCount atomic.Uint64
}

type asyncItem struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler 包裝 next。buf 是隊列長度：越大越不容易 drop，
// 代價是記憶體與 shutdown 時的 drain 時間。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}

	d := &asyncDispatcher{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.worker()

	return &AsyncHandler{next: next, d: d}
}

func (h *AsyncHandler) Ready() bool {
	return (h != nil && h.d != nil)
}

// Dropped 回傳因 buffer 滿被丟棄的 log 筆數。
func (h *AsyncHandler) Dropped() uint64 {
	if h == nil || h.d == nil {
		return 0
	}
	return h.d.dropCount.Load()
}

// Close 停收新 log 並把隊列裡的存貨 drain 完。
// 不屬於 slog.Handler 介面；持有 *AsyncHandler 的組裝端才呼叫得到。
func (h *AsyncHandler) Close() {
	if h == nil || h.d == nil {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case it := <-d.ch:
			it.emit()
		case <-d.closed:
			d.drain()
			return
		}
	}
}

// drain 把 channel 清空後返回。
func (d *asyncDispatcher) drain() {
	for {
		select {
		case it := <-d.ch:
			it.emit()
		default:
			return
		}
	}
}

func (it asyncItem) emit() {
	if it.handler != nil {
		_ = it.handler.Handle(it.ctx, it.rec)
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h == nil || h.d == nil {
		return nil
	}

	// Close() 之後不再收新 log
	select {
	case <-h.d.closed:
		h.d.dropCount.Add(1)
		return nil
	default:
	}

	// Clone 複製 attributes，Record 的內部引用跨 goroutine 才安全。
	it := asyncItem{ctx: ctx, rec: r.Clone(), handler: h.next}

	select {
	case h.d.ch <- it:
		return nil
	default:
		h.d.dropCount.Add(1)
		return nil
	}
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

// NewAsync 依 LogMode 組預設 handler 再套 AsyncHandler。
// 回傳 *AsyncHandler 讓組裝端可以在 shutdown 時 Close() drain。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	base := buildHandler(mode)
	ah := NewAsyncHandler(base, buf)
	return slog.New(ah), ah
}

func buildHandler(logmode LogMode) slog.Handler {
	switch logmode {
	case ModeDev:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
