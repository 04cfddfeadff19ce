package root

import (
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// startMetricsServer serves the prometheus metrics in the background
// for the whole lifetime of the process.
func startMetricsServer(address string) {
	promMux := http.NewServeMux()
	promMux.Handle("/metrics", promhttp.Handler())
	promSrv := &http.Server{
		Addr:              address,
		Handler:           promMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		err := promSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("cannot serve prometheus metrics")
		}
	}()
	log.Infof("serving prometheus metrics at http://%s/metrics", address)
}
