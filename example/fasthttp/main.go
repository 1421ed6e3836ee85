package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/quicklog"
	"github.com/lixenwraith/quicklog/compat"
)

func main() {
	err := quicklog.InitWithDefaults(
		"directory=/var/log/fasthttp",
		"name=web",
		"rollover_period=6 hours",
		"buffer_size=2048",
	)
	if err != nil {
		panic(err)
	}
	defer quicklog.Shutdown(2 * time.Second)

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		quicklog.Default(),
		compat.WithDefaultLevel(quicklog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	access := quicklog.Default().Component("access")

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(ctx)
			access.Info(string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode())
		},
		Logger: fasthttpAdapter,

		Name:              "QuickLogServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		quicklog.Fatal("server exited:", err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) string {
	if strings.Contains(msg, "connection cannot be served") {
		return quicklog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return quicklog.LevelError
	}

	return compat.DetectLogLevel(msg)
}
