package ark

import (
	"context"
	"fmt"
	"testing"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/stretchr/testify/require"
)

func rankedDelegates(n int) []*types.Delegate {
	delegates := make([]*types.Delegate, n)
	for i := range delegates {
		delegates[i] = &types.Delegate{
			Username:  fmt.Sprintf("delegate_%d", i+1),
			PublicKey: fmt.Sprintf("pk%d", i+1),
			Rate:      i + 1,
		}
	}

	return delegates
}

func TestPartitionDelegates(t *testing.T) {
	t.Parallel()

	delegates := rankedDelegates(102)

	active, standby := PartitionDelegates(delegates, 51)
	require.Equal(t, 51, len(active))
	require.Equal(t, 51, len(standby))
	require.Equal(t, 51, active[50].Rate)
	require.Equal(t, 52, standby[0].Rate)

	active, standby = PartitionDelegates(delegates[:10], 51)
	require.Equal(t, 10, len(active))
	require.Empty(t, standby)

	active, standby = PartitionDelegates(delegates, -1)
	require.Empty(t, active)
	require.Equal(t, 102, len(standby))
}

func TestNewVoteIntent(t *testing.T) {
	t.Parallel()

	current := &types.WalletVote{Success: true, Delegate: &types.Delegate{PublicKey: "pk1"}}
	keys := types.WalletKeys{Key: "secret words", SecondKey: "second"}
	fee := types.NewAmount(100000000)

	intent, err := NewVoteIntent(current, &types.Delegate{PublicKey: "pk2"}, keys, fee)
	require.Nil(t, err)
	require.Equal(t, types.VoteTypeAdd, intent.Type)
	require.Equal(t, "+pk2", intent.Asset())
	require.Equal(t, "second", intent.SecondPassphrase)
	require.Equal(t, int64(100000000), intent.Fee.Int64())

	intent, err = NewVoteIntent(current, &types.Delegate{PublicKey: "pk1"}, keys, fee)
	require.Nil(t, err)
	require.Equal(t, types.VoteTypeRemove, intent.Type)
	require.Equal(t, "-pk1", intent.Asset())

	intent, err = NewVoteIntent(&types.WalletVote{Success: true}, &types.Delegate{PublicKey: "pk1"}, keys, fee)
	require.Nil(t, err)
	require.Equal(t, types.VoteTypeAdd, intent.Type)

	_, err = NewVoteIntent(current, nil, keys, fee)
	require.Error(t, err)

	_, err = NewVoteIntent(current, &types.Delegate{PublicKey: "pk2"}, types.WalletKeys{}, fee)
	require.Error(t, err)
}

func TestTotalForged(t *testing.T) {
	t.Parallel()

	supply, err := types.ParseAmount("12500123400000000")
	require.Nil(t, err)
	premined, err := types.ParseAmount("12500000000000000")
	require.Nil(t, err)

	require.Equal(t, "123400000000", TotalForged(supply, premined).String())
	require.Equal(t, int64(0), TotalForged(types.NewAmount(0), premined).Int64())
}

func TestFetchDelegates(t *testing.T) {
	t.Parallel()

	all := rankedDelegates(130)

	var pages []int
	client := &MockClient{
		GetDelegateListFunc: func(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
			pages = append(pages, opts.Page)
			require.Equal(t, maxDelegatePageSize, opts.Limit)
			require.Equal(t, "rank:asc", opts.OrderBy)

			start := (opts.Page - 1) * opts.Limit
			end := start + opts.Limit
			if start > len(all) {
				start = len(all)
			}
			if end > len(all) {
				end = len(all)
			}

			return &types.DelegateList{Success: true, Delegates: all[start:end], TotalCount: len(all)}, nil
		},
	}

	delegates, err := FetchDelegates(context.Background(), client, 102)
	require.Nil(t, err)
	require.Equal(t, 102, len(delegates))
	require.Equal(t, []int{1, 2}, pages)
	require.Nil(t, types.ValidateRanks(delegates))

	pages = nil
	delegates, err = FetchDelegates(context.Background(), client, 500)
	require.Nil(t, err)
	require.Equal(t, 130, len(delegates))
	require.Equal(t, []int{1, 2}, pages)

	failing := &MockClient{
		GetDelegateListFunc: func(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
			return nil, fmt.Errorf("node unavailable")
		},
	}
	_, err = FetchDelegates(context.Background(), failing, 51)
	require.Error(t, err)
}

func TestFetchDelegates_NoCount(t *testing.T) {
	t.Parallel()

	calls := 0
	client := &MockClient{
		GetDelegateListFunc: func(ctx context.Context, opts *types.DelegateListOptions) (*types.DelegateList, error) {
			calls++
			return &types.DelegateList{Success: true}, nil
		},
	}

	for _, count := range []int{0, -2} {
		delegates, err := FetchDelegates(context.Background(), client, count)
		require.Nil(t, err)
		require.NotNil(t, delegates)
		require.Empty(t, delegates)
	}
	require.Equal(t, 0, calls)
}

func voteIntentClient(current *types.WalletVote) *MockClient {
	return &MockClient{
		GetWalletVotesFunc: func(ctx context.Context, address string) (*types.WalletVote, error) {
			return current, nil
		},
		GetDelegateByPublicKeyFunc: func(ctx context.Context, publicKey string) (*types.Delegate, error) {
			if publicKey == "missing" {
				return nil, nil
			}
			return &types.Delegate{Username: "genesis_" + publicKey, PublicKey: publicKey}, nil
		},
		GetTransactionFeesFunc: func(ctx context.Context) (*types.FeesResponse, error) {
			return &types.FeesResponse{Success: true, Fees: types.Fees{Vote: types.NewAmount(100000000)}}, nil
		},
	}
}

func TestResolveVoteIntent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	keys := types.WalletKeys{Key: "secret words"}
	client := voteIntentClient(&types.WalletVote{Success: true, Delegate: &types.Delegate{PublicKey: "pk1"}})

	intent, err := ResolveVoteIntent(ctx, client, "DAddr", "pk2", keys)
	require.Nil(t, err)
	require.Equal(t, types.VoteTypeAdd, intent.Type)
	require.Equal(t, "+pk2", intent.Asset())
	require.Equal(t, int64(100000000), intent.Fee.Int64())

	intent, err = ResolveVoteIntent(ctx, client, "DAddr", "pk1", keys)
	require.Nil(t, err)
	require.Equal(t, "-pk1", intent.Asset())

	_, err = ResolveVoteIntent(ctx, client, "DAddr", "missing", keys)
	require.Error(t, err)

	_, err = ResolveVoteIntent(ctx, client, "DAddr", "pk2", types.WalletKeys{})
	require.Error(t, err)

	// A wallet without a vote can only add one.
	intent, err = ResolveVoteIntent(ctx, voteIntentClient(&types.WalletVote{Success: true}), "DAddr", "pk1", keys)
	require.Nil(t, err)
	require.Equal(t, types.VoteTypeAdd, intent.Type)
}

func TestForgedSupply(t *testing.T) {
	t.Parallel()

	premined, err := types.ParseAmount("12500000000000000")
	require.Nil(t, err)
	supply, err := types.ParseAmount("12500123400000000")
	require.Nil(t, err)

	client := &MockClient{
		GetBlockchainFunc: func(ctx context.Context) (*types.Blockchain, error) {
			return &types.Blockchain{Height: 10, Supply: supply}, nil
		},
	}
	forged, err := ForgedSupply(context.Background(), client, premined)
	require.Nil(t, err)
	require.Equal(t, "123400000000", forged.String())

	failing := &MockClient{
		GetBlockchainFunc: func(ctx context.Context) (*types.Blockchain, error) {
			return nil, fmt.Errorf("node unavailable")
		},
	}
	_, err = ForgedSupply(context.Background(), failing, premined)
	require.Error(t, err)
}
