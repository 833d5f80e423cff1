package types

import (
	"encoding/json"
	"strings"
)

const (
	VoteAddPrefix    = "+"
	VoteRemovePrefix = "-"
)

type Transaction struct {
	ID              string `json:"id"`
	BlockID         string `json:"blockId,omitempty"`
	Version         int    `json:"version,omitempty"`
	Type            int    `json:"type"`
	TypeGroup       int    `json:"typeGroup,omitempty"`
	Amount          Amount `json:"amount"`
	Fee             Amount `json:"fee"`
	Nonce           Amount `json:"nonce"`
	Sender          string `json:"sender,omitempty"`
	SenderID        string `json:"senderId"`
	SenderPublicKey string `json:"senderPublicKey,omitempty"`
	Recipient       string `json:"recipient,omitempty"`
	RecipientID     string `json:"recipientId"`
	Signature       string `json:"signature,omitempty"`
	VendorField     string `json:"vendorField,omitempty"`
	Confirmations   int64  `json:"confirmations"`
	Timestamp       int64  `json:"timestamp"`
	Asset           *Asset `json:"asset,omitempty"`
}

type Asset struct {
	Votes []string        `json:"votes,omitempty"`
	Raw   json.RawMessage `json:"-"`
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	type votesOnly struct {
		Votes []string `json:"votes"`
	}

	v := votesOnly{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	a.Votes = v.Votes
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}

	type votesOnly struct {
		Votes []string `json:"votes,omitempty"`
	}
	return json.Marshal(votesOnly{Votes: a.Votes})
}

type TransactionList struct {
	Success      bool           `json:"success"`
	Transactions []*Transaction `json:"transactions"`
	Count        string         `json:"count"`
}

// Vote is one action of a vote asset.
type Vote struct {
	PublicKey string
	Remove    bool
}

// ParseVote decodes a vote asset entry. A key without a marker is an addition.
func ParseVote(s string) Vote {
	switch {
	case strings.HasPrefix(s, VoteRemovePrefix):
		return Vote{PublicKey: s[len(VoteRemovePrefix):], Remove: true}
	case strings.HasPrefix(s, VoteAddPrefix):
		return Vote{PublicKey: s[len(VoteAddPrefix):]}
	}

	return Vote{PublicKey: s}
}

func (v Vote) String() string {
	if v.Remove {
		return VoteRemovePrefix + v.PublicKey
	}

	return VoteAddPrefix + v.PublicKey
}

// TransactionPostResponse is what a peer answers to a broadcast.
type TransactionPostResponse struct {
	Data struct {
		Accept    []string `json:"accept"`
		Broadcast []string `json:"broadcast"`
		Excess    []string `json:"excess"`
		Invalid   []string `json:"invalid"`
	} `json:"data"`
	Errors map[string]TransactionPostError `json:"errors,omitempty"`
}

type TransactionPostError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Accepted reports whether the transaction with id was accepted by the peer.
func (r *TransactionPostResponse) Accepted(id string) bool {
	for _, a := range r.Data.Accept {
		if a == id {
			return true
		}
	}

	return false
}
