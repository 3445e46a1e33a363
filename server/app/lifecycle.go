// Package app 管理長駐元件的啟動與關閉流程。
package app

import "context"

// Component 是任何具備完整生命週期的長駐元件（HTTP server、
// background worker 等）。
//   - Run() 阻塞到元件停止為止，正常結束回 nil。
//   - Shutdown(ctx) 要求優雅關閉；實作需遵守 ctx 的 deadline。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}
