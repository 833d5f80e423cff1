package ark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/config"
	"github.com/sisu-network/arkeyes/network"
	"github.com/sisu-network/lib/log"
)

// Client is the typed operation set over a node's wallet API. Every call is a single
// request/response snapshot; nothing is cached.
type Client interface {
	Host() string

	GetWallet(ctx context.Context, address string) (*types.Wallet, error)
	GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error)
	GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error)
	GetTransactionFees(ctx context.Context) (*types.FeesResponse, error)
	GetBlockchain(ctx context.Context) (*types.Blockchain, error)

	GetNodeCrypto(ctx context.Context, host string) (*types.NodeCrypto, error)
	GetNodeConfiguration(ctx context.Context, host string) (*types.NodeConfiguration, error)
	GetPeerSyncing(ctx context.Context, host string, timeout time.Duration) (*types.SyncStatus, error)
	GetPeerList(ctx context.Context) (*types.PeerList, error)
	GetPeer(ctx context.Context, ip string, host string, timeout time.Duration) (*types.Peer, error)
	GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error)

	PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
		protocol string) (*types.TransactionPostResponse, error)

	GetDelegateList(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error)
	GetDelegateByPublicKey(ctx context.Context, publicKey string) (*types.Delegate, error)
}

var (
	_ Client     = (*DefaultClient)(nil)
	_ VoteSource = (*DefaultClient)(nil)
	_ PeerProber = (*DefaultClient)(nil)
)

type DefaultClient struct {
	transport *transport
	votes     *VoteResolver
	endpoints *EndpointResolver
}

func NewClient(cfg *config.Ark, networkHttp network.Http) *DefaultClient {
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	c := &DefaultClient{
		transport: &transport{
			networkHttp: networkHttp,
			host:        cfg.CurrentHost(),
			timeout:     timeout,
		},
	}
	c.votes = NewVoteResolver(c)
	c.endpoints = NewEndpointResolver(c, cfg.WalletApiPort, cfg.ProbeTimeout(), cfg.MaxDiscoveryDepth)

	return c
}

func (c *DefaultClient) Host() string {
	return c.transport.host
}

func (c *DefaultClient) GetWallet(ctx context.Context, address string) (*types.Wallet, error) {
	return fetch(ctx, c.transport, "wallets/"+url.PathEscape(address), nil, "", 0,
		func(w *types.ResponseWrapper) (*types.Wallet, error) {
			return NormalizeWallet(w.Data)
		})
}

// GetWalletVotes returns the current vote of a wallet, resolved from its vote history.
func (c *DefaultClient) GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error) {
	return c.votes.ResolveCurrentVote(ctx, address)
}

// GetVoteHistory returns the vote transactions of a wallet, newest first.
func (c *DefaultClient) GetVoteHistory(ctx context.Context, address string) ([]*types.Transaction, error) {
	params := url.Values{}
	params.Set("orderBy", "timestamp:desc")

	list, err := fetch(ctx, c.transport, "wallets/"+url.PathEscape(address)+"/votes", params, "", 0,
		func(w *types.ResponseWrapper) (*types.TransactionList, error) {
			return NormalizeTransactions(w.Data, w.Meta)
		})
	if err != nil {
		return nil, err
	}

	return list.Transactions, nil
}

func (c *DefaultClient) GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error) {
	params := url.Values{}
	params.Set("orderBy", "timestamp:desc")

	return fetch(ctx, c.transport, "wallets/"+url.PathEscape(address)+"/transactions", params, "", 0,
		func(w *types.ResponseWrapper) (*types.TransactionList, error) {
			return NormalizeTransactions(w.Data, w.Meta)
		})
}

func (c *DefaultClient) GetTransactionFees(ctx context.Context) (*types.FeesResponse, error) {
	return fetch(ctx, c.transport, "transactions/fees", nil, "", 0,
		func(w *types.ResponseWrapper) (*types.FeesResponse, error) {
			return NormalizeFees(w.Data)
		})
}

func (c *DefaultClient) GetBlockchain(ctx context.Context) (*types.Blockchain, error) {
	return fetch(ctx, c.transport, "blockchain", nil, "", 0,
		func(w *types.ResponseWrapper) (*types.Blockchain, error) {
			return NormalizeBlockchain(w.Data)
		})
}

func (c *DefaultClient) GetNodeCrypto(ctx context.Context, host string) (*types.NodeCrypto, error) {
	return fetch(ctx, c.transport, "node/configuration/crypto", nil, host, 0,
		func(w *types.ResponseWrapper) (*types.NodeCrypto, error) {
			return NormalizeNodeCrypto(w.Data)
		})
}

func (c *DefaultClient) GetNodeConfiguration(ctx context.Context, host string) (*types.NodeConfiguration, error) {
	return fetch(ctx, c.transport, "node/configuration", nil, host, 0,
		func(w *types.ResponseWrapper) (*types.NodeConfiguration, error) {
			return NormalizeNodeConfiguration(w.Data)
		})
}

func (c *DefaultClient) GetPeerSyncing(ctx context.Context, host string, timeout time.Duration) (*types.SyncStatus, error) {
	return fetch(ctx, c.transport, "node/syncing", nil, host, timeout,
		func(w *types.ResponseWrapper) (*types.SyncStatus, error) {
			return NormalizeSyncStatus(w.Data)
		})
}

func (c *DefaultClient) GetPeerList(ctx context.Context) (*types.PeerList, error) {
	return fetch(ctx, c.transport, "peers", nil, "", 0,
		func(w *types.ResponseWrapper) (*types.PeerList, error) {
			return NormalizePeerList(w.Data)
		})
}

func (c *DefaultClient) GetPeer(ctx context.Context, ip string, host string, timeout time.Duration) (*types.Peer, error) {
	return fetch(ctx, c.transport, "peers/"+url.PathEscape(ip), nil, host, timeout,
		func(w *types.ResponseWrapper) (*types.Peer, error) {
			return NormalizePeer(w.Data)
		})
}

func (c *DefaultClient) GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error) {
	return c.endpoints.ResolvePeerConfig(ctx, ip, port, protocol)
}

// ProbeConfig fetches the wallet API configuration served at baseUrl/config. Only a decodable
// answer carrying a data object counts as a configured wallet API.
func (c *DefaultClient) ProbeConfig(ctx context.Context, baseUrl string, timeout time.Duration) (*types.PeerConfig, error) {
	u := baseUrl + "/config"

	bz, err := c.transport.do(ctx, http.MethodGet, u, nil, false, timeout)
	if err != nil {
		return nil, err
	}

	wrapper, err := decodeEnvelope(http.MethodGet, u, bz)
	if err != nil {
		return nil, err
	}

	nodeCfg, err := NormalizeNodeConfiguration(wrapper.Data)
	if err != nil {
		return nil, network.NewMalformedError(http.MethodGet, u, err)
	}

	return &types.PeerConfig{Data: *nodeCfg}, nil
}

// PostTransaction broadcasts a signed transaction to the given peer rather than the client's
// default host.
func (c *DefaultClient) PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
	protocol string) (*types.TransactionPostResponse, error) {
	if peer == nil || peer.IP == "" {
		return nil, ErrNoPeer
	}
	if !types.IsValidPort(peer.Port) {
		return nil, fmt.Errorf("invalid peer port %d", peer.Port)
	}
	if protocol == "" {
		protocol = ProtocolHttp
	}
	if protocol != ProtocolHttp && protocol != ProtocolHttps {
		return nil, ErrInvalidProtocol
	}
	if !json.Valid(tx) {
		return nil, fmt.Errorf("transaction is not valid json")
	}

	body := map[string][]json.RawMessage{
		"transactions": {tx},
	}

	bz, u, err := c.transport.post(ctx, "transactions", body, baseUrl(protocol, peer.IP, peer.Port))
	if err != nil {
		log.Error("Failed to post transaction to ", peer.IP, ", err = ", err)
		return nil, err
	}

	response := &types.TransactionPostResponse{}
	if err := json.Unmarshal(bz, response); err != nil {
		return nil, network.NewMalformedError(http.MethodPost, u, err)
	}

	return response, nil
}

// GetDelegateList returns one page of delegates. A nil opts asks for the first 100 by rank.
func (c *DefaultClient) GetDelegateList(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
	o := types.DefaultDelegateListOptions()
	if opts != nil {
		if opts.Page > 0 {
			o.Page = opts.Page
		}
		if opts.Limit > 0 {
			o.Limit = opts.Limit
		}
		if opts.OrderBy != "" {
			o.OrderBy = opts.OrderBy
		}
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(o.Page))
	params.Set("limit", strconv.Itoa(o.Limit))
	params.Set("orderBy", o.OrderBy)

	return fetch(ctx, c.transport, "delegates", params, "", 0,
		func(w *types.ResponseWrapper) (*types.DelegateList, error) {
			return NormalizeDelegateList(w.Data, w.Meta)
		})
}

// GetDelegateByPublicKey returns nil without a request when publicKey is empty.
func (c *DefaultClient) GetDelegateByPublicKey(ctx context.Context, publicKey string) (*types.Delegate, error) {
	if publicKey == "" {
		return nil, nil
	}

	return fetch(ctx, c.transport, "delegates/"+url.PathEscape(publicKey), nil, "", 0,
		func(w *types.ResponseWrapper) (*types.Delegate, error) {
			return NormalizeDelegate(w.Data)
		})
}
