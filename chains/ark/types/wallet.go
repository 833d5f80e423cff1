package types

import "encoding/json"

type Wallet struct {
	Address    string          `json:"address"`
	PublicKey  string          `json:"publicKey,omitempty"`
	Username   string          `json:"username,omitempty"`
	Balance    Amount          `json:"balance"`
	Nonce      Amount          `json:"nonce"`
	IsDelegate bool            `json:"isDelegate"`
	IsResigned bool            `json:"isResigned,omitempty"`
	Vote       string          `json:"vote,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// HasVote reports whether the wallet attributes name a delegate. The authoritative answer
// comes from the vote history, this is only what the node indexed.
func (w *Wallet) HasVote() bool {
	return w.Vote != ""
}

// WalletVote is the current vote of a wallet. A nil Delegate means the wallet is not voting.
type WalletVote struct {
	Success  bool      `json:"success"`
	Delegate *Delegate `json:"delegate"`
}

// Delegates returns the vote as a list with at most one entry.
func (v *WalletVote) Delegates() []*Delegate {
	if v == nil || v.Delegate == nil {
		return []*Delegate{}
	}

	return []*Delegate{v.Delegate}
}
