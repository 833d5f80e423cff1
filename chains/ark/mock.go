package ark

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sisu-network/arkeyes/chains/ark/types"
)

var _ Client = (*MockClient)(nil)

type MockClient struct {
	HostFunc                   func() string
	GetWalletFunc              func(ctx context.Context, address string) (*types.Wallet, error)
	GetWalletVotesFunc         func(ctx context.Context, address string) (*types.WalletVote, error)
	GetTransactionListFunc     func(ctx context.Context, address string) (*types.TransactionList, error)
	GetTransactionFeesFunc     func(ctx context.Context) (*types.FeesResponse, error)
	GetBlockchainFunc          func(ctx context.Context) (*types.Blockchain, error)
	GetNodeCryptoFunc          func(ctx context.Context, host string) (*types.NodeCrypto, error)
	GetNodeConfigurationFunc   func(ctx context.Context, host string) (*types.NodeConfiguration, error)
	GetPeerSyncingFunc         func(ctx context.Context, host string, timeout time.Duration) (*types.SyncStatus, error)
	GetPeerListFunc            func(ctx context.Context) (*types.PeerList, error)
	GetPeerFunc                func(ctx context.Context, ip string, host string, timeout time.Duration) (*types.Peer, error)
	GetPeerConfigFunc          func(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error)
	PostTransactionFunc        func(ctx context.Context, tx json.RawMessage, peer *types.Peer, protocol string) (*types.TransactionPostResponse, error)
	GetDelegateListFunc        func(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error)
	GetDelegateByPublicKeyFunc func(ctx context.Context, publicKey string) (*types.Delegate, error)
}

func (m *MockClient) Host() string {
	if m.HostFunc != nil {
		return m.HostFunc()
	}

	return ""
}

func (m *MockClient) GetWallet(ctx context.Context, address string) (*types.Wallet, error) {
	if m.GetWalletFunc != nil {
		return m.GetWalletFunc(ctx, address)
	}

	return nil, nil
}

func (m *MockClient) GetWalletVotes(ctx context.Context, address string) (*types.WalletVote, error) {
	if m.GetWalletVotesFunc != nil {
		return m.GetWalletVotesFunc(ctx, address)
	}

	return nil, nil
}

func (m *MockClient) GetTransactionList(ctx context.Context, address string) (*types.TransactionList, error) {
	if m.GetTransactionListFunc != nil {
		return m.GetTransactionListFunc(ctx, address)
	}

	return nil, nil
}

func (m *MockClient) GetTransactionFees(ctx context.Context) (*types.FeesResponse, error) {
	if m.GetTransactionFeesFunc != nil {
		return m.GetTransactionFeesFunc(ctx)
	}

	return nil, nil
}

func (m *MockClient) GetBlockchain(ctx context.Context) (*types.Blockchain, error) {
	if m.GetBlockchainFunc != nil {
		return m.GetBlockchainFunc(ctx)
	}

	return nil, nil
}

func (m *MockClient) GetNodeCrypto(ctx context.Context, host string) (*types.NodeCrypto, error) {
	if m.GetNodeCryptoFunc != nil {
		return m.GetNodeCryptoFunc(ctx, host)
	}

	return nil, nil
}

func (m *MockClient) GetNodeConfiguration(ctx context.Context, host string) (*types.NodeConfiguration, error) {
	if m.GetNodeConfigurationFunc != nil {
		return m.GetNodeConfigurationFunc(ctx, host)
	}

	return nil, nil
}

func (m *MockClient) GetPeerSyncing(ctx context.Context, host string, timeout time.Duration) (*types.SyncStatus, error) {
	if m.GetPeerSyncingFunc != nil {
		return m.GetPeerSyncingFunc(ctx, host, timeout)
	}

	return nil, nil
}

func (m *MockClient) GetPeerList(ctx context.Context) (*types.PeerList, error) {
	if m.GetPeerListFunc != nil {
		return m.GetPeerListFunc(ctx)
	}

	return nil, nil
}

func (m *MockClient) GetPeer(ctx context.Context, ip string, host string, timeout time.Duration) (*types.Peer, error) {
	if m.GetPeerFunc != nil {
		return m.GetPeerFunc(ctx, ip, host, timeout)
	}

	return nil, nil
}

func (m *MockClient) GetPeerConfig(ctx context.Context, ip string, port int, protocol string) (*types.PeerConfig, error) {
	if m.GetPeerConfigFunc != nil {
		return m.GetPeerConfigFunc(ctx, ip, port, protocol)
	}

	return nil, nil
}

func (m *MockClient) PostTransaction(ctx context.Context, tx json.RawMessage, peer *types.Peer,
	protocol string) (*types.TransactionPostResponse, error) {
	if m.PostTransactionFunc != nil {
		return m.PostTransactionFunc(ctx, tx, peer, protocol)
	}

	return nil, nil
}

func (m *MockClient) GetDelegateList(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
	if m.GetDelegateListFunc != nil {
		return m.GetDelegateListFunc(ctx, opts)
	}

	return nil, nil
}

func (m *MockClient) GetDelegateByPublicKey(ctx context.Context, publicKey string) (*types.Delegate, error) {
	if m.GetDelegateByPublicKeyFunc != nil {
		return m.GetDelegateByPublicKeyFunc(ctx, publicKey)
	}

	return nil, nil
}
