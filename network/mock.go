package network

import (
	"net/http"
	"time"
)

type MockHttp struct {
	DoFunc func(req *http.Request, timeout time.Duration) ([]byte, error)
}

func (m *MockHttp) Do(req *http.Request, timeout time.Duration) ([]byte, error) {
	if m.DoFunc != nil {
		return m.DoFunc(req, timeout)
	}

	return nil, nil
}
