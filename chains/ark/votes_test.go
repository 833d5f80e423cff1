package ark

import (
	"context"
	"errors"
	"testing"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/arkeyes/network"
	"github.com/stretchr/testify/require"
)

type mockVoteSource struct {
	history      []*types.Transaction
	historyErr   error
	delegates    map[string]*types.Delegate
	delegateErr  error
	lookedUpKeys []string
}

func (m *mockVoteSource) GetVoteHistory(ctx context.Context, address string) ([]*types.Transaction, error) {
	return m.history, m.historyErr
}

func (m *mockVoteSource) GetDelegateByPublicKey(ctx context.Context, publicKey string) (*types.Delegate, error) {
	m.lookedUpKeys = append(m.lookedUpKeys, publicKey)
	if m.delegateErr != nil {
		return nil, m.delegateErr
	}

	return m.delegates[publicKey], nil
}

func voteTx(votes ...string) *types.Transaction {
	return &types.Transaction{Type: 3, Asset: &types.Asset{Votes: votes}}
}

func TestResolveCurrentVote(t *testing.T) {
	t.Parallel()

	d1 := &types.Delegate{Username: "d1", PublicKey: "pk1", Rate: 4}
	d2 := &types.Delegate{Username: "d2", PublicKey: "pk2", Rate: 9}
	delegates := map[string]*types.Delegate{"pk1": d1, "pk2": d2}

	t.Run("no history", func(t *testing.T) {
		source := &mockVoteSource{history: []*types.Transaction{}, delegates: delegates}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, err)
		require.True(t, vote.Success)
		require.Nil(t, vote.Delegate)
		require.Empty(t, source.lookedUpKeys)
	})

	t.Run("latest is removal", func(t *testing.T) {
		source := &mockVoteSource{
			history:   []*types.Transaction{voteTx("-pk1"), voteTx("+pk2")},
			delegates: delegates,
		}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, err)
		require.Nil(t, vote.Delegate)
		require.Empty(t, vote.Delegates())
		require.Empty(t, source.lookedUpKeys)
	})

	t.Run("latest is addition", func(t *testing.T) {
		source := &mockVoteSource{
			history:   []*types.Transaction{voteTx("+pk2"), voteTx("-pk1"), voteTx("+pk1")},
			delegates: delegates,
		}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, err)
		require.Equal(t, d2, vote.Delegate)
		require.Equal(t, []string{"pk2"}, source.lookedUpKeys)
	})

	t.Run("only the first action of the newest transaction counts", func(t *testing.T) {
		source := &mockVoteSource{
			history:   []*types.Transaction{voteTx("+pk1", "-pk2")},
			delegates: delegates,
		}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, err)
		require.Equal(t, d1, vote.Delegate)
	})

	t.Run("history failure is not no vote", func(t *testing.T) {
		cause := network.NewError(network.ErrKindTimeout, "GET", "http://node/api/wallets/DAddr/votes", context.DeadlineExceeded)
		source := &mockVoteSource{historyErr: cause}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, vote)
		require.Error(t, err)

		var voteErr *VoteResolutionError
		require.True(t, errors.As(err, &voteErr))
		require.Equal(t, VoteStageHistory, voteErr.Stage)
		require.True(t, network.IsTimeout(err))
	})

	t.Run("delegate lookup failure", func(t *testing.T) {
		source := &mockVoteSource{
			history:     []*types.Transaction{voteTx("+pk1")},
			delegateErr: network.NewStatusError("GET", "http://node/api/delegates/pk1", 404, nil),
		}

		vote, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Nil(t, vote)

		var voteErr *VoteResolutionError
		require.True(t, errors.As(err, &voteErr))
		require.Equal(t, VoteStageDelegate, voteErr.Stage)
		require.True(t, network.IsStatus(err, 404))
	})

	t.Run("newest transaction without votes", func(t *testing.T) {
		source := &mockVoteSource{history: []*types.Transaction{{Type: 3}}}

		_, err := NewVoteResolver(source).ResolveCurrentVote(context.Background(), "DAddr")
		require.Error(t, err)
	})
}
