package network

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sisu-network/lib/log"
	"golang.org/x/net/context/ctxhttp"
)

const (
	DefaultTimeout = 5 * time.Second
)

// Http executes a single request and returns the body of a 2xx response. Requests are never
// retried here; callers that want another attempt issue another call.
type Http interface {
	Do(req *http.Request, timeout time.Duration) ([]byte, error)
}

type DefaultHttp struct {
	client  *http.Client
	metrics *Metrics
}

func NewHttp() Http {
	return NewHttpWithMetrics(nil)
}

// NewHttpWithMetrics returns an Http that reports every request to metrics. A nil metrics is
// allowed.
func NewHttpWithMetrics(metrics *Metrics) Http {
	return &DefaultHttp{
		client:  &http.Client{},
		metrics: metrics,
	}
}

func (d *DefaultHttp) Do(req *http.Request, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()

	start := time.Now()
	buf, err := d.do(ctx, req)
	d.metrics.observe(req.Method, err, time.Since(start))

	if err != nil {
		log.Verbose("Request failed ", req.Method, " ", req.URL.String(), " err = ", err)
	}

	return buf, err
}

func (d *DefaultHttp) do(ctx context.Context, req *http.Request) ([]byte, error) {
	url := req.URL.String()

	resp, err := ctxhttp.Do(ctx, d.client, req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, NewError(ErrKindTimeout, req.Method, url, err)
		}
		return nil, NewError(ErrKindNetwork, req.Method, url, err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, NewError(ErrKindTimeout, req.Method, url, err)
		}
		return nil, NewError(ErrKindNetwork, req.Method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError(req.Method, url, resp.StatusCode, buf)
	}

	return buf, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
