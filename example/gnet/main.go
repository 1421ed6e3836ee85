package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/quicklog"
	"github.com/lixenwraith/quicklog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	conns *quicklog.Component
}

func (es *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	es.conns.Info("open", c.RemoteAddr())
	return nil, gnet.None
}

func (es *echoServer) OnClose(c gnet.Conn, err error) gnet.Action {
	if err != nil {
		es.conns.Warning("close", c.RemoteAddr(), err)
	} else {
		es.conns.Info("close", c.RemoteAddr())
	}
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	engine, err := quicklog.NewBuilder().
		Directory("/var/log/gnet").
		Name("echo").
		RolloverPeriod("1 day@00:00").
		Build()
	if err != nil {
		panic(err)
	}
	defer engine.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(engine)

	err = gnet.Run(
		&echoServer{conns: engine.Component("conn")},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		engine.Fatal("gnet exited:", err)
	}
}
