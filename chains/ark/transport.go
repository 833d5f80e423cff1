package ark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/network"
	"github.com/sisu-network/lib/log"
)

const (
	ApiVersionHeader = "API-Version"
	ApiVersion       = "2"

	DefaultRequestTimeout = 5 * time.Second
	PostTimeout           = 5 * time.Second
)

type transport struct {
	networkHttp network.Http
	host        string
	timeout     time.Duration
}

func (t *transport) url(host, path string, params url.Values) string {
	if host == "" {
		host = t.host
	}

	u := strings.TrimRight(host, "/") + "/api/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return u
}

// do sends one request and returns the raw body. withVersion adds the API-Version header that
// every /api call carries.
func (t *transport) do(ctx context.Context, method, u string, body interface{}, withVersion bool,
	timeout time.Duration) ([]byte, error) {
	var reader *bytes.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(bz)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return nil, network.NewError(network.ErrKindNetwork, method, u, err)
	}

	if withVersion {
		req.Header.Set(ApiVersionHeader, ApiVersion)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Verbose(method, " ", u)

	return t.networkHttp.Do(req, timeout)
}

// get fetches an /api path and decodes the response envelope. An empty host means the client's
// default host, a zero timeout the default request timeout.
func (t *transport) get(ctx context.Context, path string, params url.Values, host string,
	timeout time.Duration) (*types.ResponseWrapper, string, error) {
	if timeout <= 0 {
		timeout = t.timeout
	}

	u := t.url(host, path, params)
	bz, err := t.do(ctx, http.MethodGet, u, nil, true, timeout)
	if err != nil {
		return nil, u, err
	}

	wrapper, err := decodeEnvelope(http.MethodGet, u, bz)
	return wrapper, u, err
}

func (t *transport) post(ctx context.Context, path string, body interface{}, host string) ([]byte, string, error) {
	u := t.url(host, path, nil)
	bz, err := t.do(ctx, http.MethodPost, u, body, true, PostTimeout)

	return bz, u, err
}

func decodeEnvelope(method, u string, bz []byte) (*types.ResponseWrapper, error) {
	wrapper := &types.ResponseWrapper{}
	if err := json.Unmarshal(bz, wrapper); err != nil {
		return nil, network.NewMalformedError(method, u, err)
	}

	return wrapper, nil
}

// fetch issues a GET and runs the response through normalize. Normalization failures are
// reported as malformed responses of that request.
func fetch[T any](ctx context.Context, t *transport, path string, params url.Values, host string,
	timeout time.Duration, normalize func(*types.ResponseWrapper) (T, error)) (T, error) {
	var empty T

	wrapper, u, err := t.get(ctx, path, params, host, timeout)
	if err != nil {
		return empty, err
	}

	result, err := normalize(wrapper)
	if err != nil {
		return empty, network.NewMalformedError(http.MethodGet, u, fmt.Errorf("%s: %w", path, err))
	}

	return result, nil
}
