package netsvr

import (
	"net/http"

	"github.com/zintix-labs/roletalab/server/app"
)

// NetSvr 是「路由 + 啟停」的完整抽象，只給最外層 main 持有。
// 實作同時滿足 app.Component，可直接交給 app.App 管生命週期。
// 換 http 框架時只要提供相容 net/http handler 的新實作。
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter 只描述路由行為，刻意不含 Run/Shutdown：
// handler 與子模組只拿得到 NetRouter，無法誤觸 server 啟停。
type NetRouter interface {
	// middleware
	Use(middleware func(http.Handler) http.Handler)

	// 路由註冊
	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	// 群組路由；回呼內仍然只看到 NetRouter
	Group(path string, fn func(NetRouter))
}
