package server

import (
	"context"
	"encoding/json"

	"github.com/sisu-network/arkeyes/chains/ark"
	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/core"
)

const (
	ApiNamespace = "ark"
)

// ApiHandler exposes the node client over JSON-RPC. Method names are served under the ark
// namespace, e.g. GetWallet is ark_getWallet.
type ApiHandler struct {
	client  ark.Client
	scanner core.PeerScanner
}

func NewApi(client ark.Client, scanner core.PeerScanner) *ApiHandler {
	return &ApiHandler{
		client:  client,
		scanner: scanner,
	}
}

// Empty function for checking health only.
func (api *ApiHandler) CheckHealth() {
}

// Host returns the node host requests are sent to.
func (api *ApiHandler) Host() string {
	return api.client.Host()
}

func (api *ApiHandler) GetWallet(ctx context.Context, address string) (*types.Wallet, error) {
	return api.client.GetWallet(ctx, address)
}

func (api *ApiHandler) GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error) {
	return api.client.GetWalletVotes(ctx, address)
}

func (api *ApiHandler) GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error) {
	return api.client.GetTransactionList(ctx, address)
}

func (api *ApiHandler) GetTransactionFees(ctx context.Context) (*types.FeesResponse, error) {
	return api.client.GetTransactionFees(ctx)
}

// GetDelegates returns a page of delegates. opts may be omitted.
func (api *ApiHandler) GetDelegates(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
	return api.client.GetDelegateList(ctx, opts)
}

func (api *ApiHandler) GetDelegate(ctx context.Context, publicKey string) (*types.Delegate, error) {
	return api.client.GetDelegateByPublicKey(ctx, publicKey)
}

func (api *ApiHandler) GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error) {
	return api.client.GetPeerConfig(ctx, ip, port, protocol)
}

func (api *ApiHandler) PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
	protocol string) (*types.TransactionPostResponse, error) {
	return api.client.PostTransaction(ctx, tx, peer, protocol)
}

func (api *ApiHandler) ScanPeers(ctx context.Context) (*core.ScanResult, error) {
	return api.scanner.Scan(ctx)
}
