package types

import "encoding/json"

// ResponseWrapper is the envelope of every node API answer.
type ResponseWrapper struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta,omitempty"`
}

type Meta struct {
	Count      int64           `json:"count"`
	PageCount  int64           `json:"pageCount"`
	TotalCount json.RawMessage `json:"totalCount"`
	Next       string          `json:"next,omitempty"`
	Previous   string          `json:"previous,omitempty"`
	Self       string          `json:"self,omitempty"`
	First      string          `json:"first,omitempty"`
	Last       string          `json:"last,omitempty"`
}
