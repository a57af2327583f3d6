// Package metrics owns the prometheus registry and its exposition endpoint.
package metrics

import (
	"net"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zkceremonies/setupboard/log"
)

// Registry collects all setupboard metrics, including the store-call series
// registered by the client's prometheus option.
var Registry = prometheus.NewRegistry()

var bound = false

func bindMetrics() {
	if bound {
		return
	}
	bound = true
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Start serves the metrics endpoint on bind in the background. Returns the
// listener, or nil if binding failed (metrics are optional; a failure is
// logged, not fatal).
func Start(l log.Logger, bind string) net.Listener {
	bindMetrics()

	lis, err := net.Listen("tcp", bind)
	if err != nil {
		l.Warnw("metrics listen failed", "bind", bind, "err", err)
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))
	mux.HandleFunc("/debug/gc", func(w http.ResponseWriter, _ *http.Request) {
		runtime.GC()
		w.Write([]byte("GC run complete"))
	})

	srv := http.Server{Addr: lis.Addr().String(), Handler: mux}
	go func() {
		l.Warnw("metrics server stopped", "err", srv.Serve(lis))
	}()
	return lis
}
