package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sisu-network/lib/log"
)

const (
	MetricsPath = "/metrics"

	shutdownTimeout = 5 * time.Second
)

// NewRpcServer registers the api under its namespace.
func NewRpcServer(api *ApiHandler) (*rpc.Server, error) {
	handler := rpc.NewServer()
	if err := handler.RegisterName(ApiNamespace, api); err != nil {
		return nil, err
	}

	return handler, nil
}

type Server struct {
	handler       *rpc.Server
	gatherer      prometheus.Gatherer
	listenAddress string
}

// NewServer creates a server listening on all interfaces at port. A nil gatherer disables the
// metrics endpoint.
func NewServer(handler *rpc.Server, gatherer prometheus.Gatherer, port int) *Server {
	return &Server{
		handler:       handler,
		gatherer:      gatherer,
		listenAddress: fmt.Sprintf("0.0.0.0:%d", port),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.gatherer != nil {
		mux.Handle(MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("/", s.handler)

	return mux
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.listenAddress)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler()}
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shut down server, err = ", err)
		}
		s.handler.Stop()
	}()

	log.Info("Running server at ", s.listenAddress)
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
