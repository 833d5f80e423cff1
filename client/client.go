package client

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/core"
	"github.com/sisu-network/lib/log"
)

const (
	RetryTime = 10 * time.Second
)

var (
	ErrServerNotConnected = errors.New("arkeyes server is not connected")
)

// Client talks to a running arkeyes server over JSON-RPC.
type Client interface {
	TryDial(ctx context.Context) error
	Close()

	CheckHealth(ctx context.Context) error
	GetWallet(ctx context.Context, address string) (*types.Wallet, error)
	GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error)
	GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error)
	GetTransactionFees(ctx context.Context) (*types.FeesResponse, error)
	GetDelegates(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error)
	GetDelegate(ctx context.Context, publicKey string) (*types.Delegate, error)
	GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error)
	PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
		protocol string) (*types.TransactionPostResponse, error)
	ScanPeers(ctx context.Context) (*core.ScanResult, error)
}

type DefaultClient struct {
	client    *rpc.Client
	url       string
	retryTime time.Duration
}

func NewClient(url string) Client {
	return &DefaultClient{
		url:       url,
		retryTime: RetryTime,
	}
}

// NewClientWithRpc wraps an already connected rpc client.
func NewClientWithRpc(rpcClient *rpc.Client) Client {
	return &DefaultClient{
		client:    rpcClient,
		retryTime: RetryTime,
	}
}

// TryDial dials the server until it answers a health check or ctx is done.
func (c *DefaultClient) TryDial(ctx context.Context) error {
	log.Info("Trying to dial arkeyes server")

	for {
		log.Info("Dialing...", c.url)
		var err error
		c.client, err = rpc.DialContext(ctx, c.url)
		if err == nil {
			if err = c.CheckHealth(ctx); err == nil {
				break
			}
			c.client.Close()
			c.client = nil
		}
		log.Error("Cannot connect to arkeyes server, err = ", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryTime):
		}
	}

	log.Info("Arkeyes server is connected")
	return nil
}

func (c *DefaultClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *DefaultClient) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if c.client == nil {
		return ErrServerNotConnected
	}

	err := c.client.CallContext(ctx, result, method, args...)
	if err != nil {
		log.Verbose("Call ", method, " failed, err = ", err)
	}

	return err
}

func (c *DefaultClient) CheckHealth(ctx context.Context) error {
	var r interface{}
	return c.call(ctx, &r, "ark_checkHealth")
}

func (c *DefaultClient) GetWallet(ctx context.Context, address string) (*types.Wallet, error) {
	wallet := &types.Wallet{}
	if err := c.call(ctx, wallet, "ark_getWallet", address); err != nil {
		return nil, err
	}

	return wallet, nil
}

func (c *DefaultClient) GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error) {
	vote := &types.WalletVote{}
	if err := c.call(ctx, vote, "ark_getWalletVotes", address); err != nil {
		return nil, err
	}

	return vote, nil
}

func (c *DefaultClient) GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error) {
	list := &types.TransactionList{}
	if err := c.call(ctx, list, "ark_getTransactionList", address); err != nil {
		return nil, err
	}

	return list, nil
}

func (c *DefaultClient) GetTransactionFees(ctx context.Context) (*types.FeesResponse, error) {
	fees := &types.FeesResponse{}
	if err := c.call(ctx, fees, "ark_getTransactionFees"); err != nil {
		return nil, err
	}

	return fees, nil
}

func (c *DefaultClient) GetDelegates(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
	list := &types.DelegateList{}
	if err := c.call(ctx, list, "ark_getDelegates", opts); err != nil {
		return nil, err
	}

	return list, nil
}

// GetDelegate returns nil when the server has no delegate for publicKey.
func (c *DefaultClient) GetDelegate(ctx context.Context, publicKey string) (*types.Delegate, error) {
	var delegate *types.Delegate
	if err := c.call(ctx, &delegate, "ark_getDelegate", publicKey); err != nil {
		return nil, err
	}

	return delegate, nil
}

func (c *DefaultClient) GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error) {
	cfg := &types.PeerConfig{}
	if err := c.call(ctx, cfg, "ark_getPeerConfig", ip, port, protocol); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *DefaultClient) PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
	protocol string) (*types.TransactionPostResponse, error) {
	response := &types.TransactionPostResponse{}
	if err := c.call(ctx, response, "ark_postTransaction", tx, peer, protocol); err != nil {
		return nil, err
	}

	return response, nil
}

func (c *DefaultClient) ScanPeers(ctx context.Context) (*core.ScanResult, error) {
	result := &core.ScanResult{}
	if err := c.call(ctx, result, "ark_scanPeers"); err != nil {
		return nil, err
	}

	return result, nil
}
