package ark

import (
	"context"
	"fmt"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/sisu-network/lib/log"
)

// VoteSource is what the vote resolver needs from a node: the vote transactions of a wallet,
// newest first, and delegate lookup by public key.
type VoteSource interface {
	GetVoteHistory(ctx context.Context, address string) ([]*types.Transaction, error)
	GetDelegateByPublicKey(ctx context.Context, publicKey string) (*types.Delegate, error)
}

type VoteResolver struct {
	source VoteSource
}

func NewVoteResolver(source VoteSource) *VoteResolver {
	return &VoteResolver{source: source}
}

// ResolveCurrentVote returns the delegate the wallet currently votes for. Vote state is last
// writer wins, so only the first action of the newest vote transaction is looked at. An empty
// history and a latest action that removes a vote both mean "not voting".
func (r *VoteResolver) ResolveCurrentVote(ctx context.Context, address string) (*types.WalletVote, error) {
	history, err := r.source.GetVoteHistory(ctx, address)
	if err != nil {
		log.Error("Failed to get vote history of ", address, ", err = ", err)
		return nil, NewVoteResolutionError(address, VoteStageHistory, err)
	}

	if len(history) == 0 {
		return &types.WalletVote{Success: true}, nil
	}

	latest := history[0]
	if latest == nil || latest.Asset == nil || len(latest.Asset.Votes) == 0 {
		return nil, NewVoteResolutionError(address, VoteStageHistory,
			fmt.Errorf("latest vote transaction has no vote asset"))
	}

	vote := types.ParseVote(latest.Asset.Votes[0])
	if vote.Remove {
		log.Verbose("Latest vote of ", address, " removes ", vote.PublicKey)
		return &types.WalletVote{Success: true}, nil
	}

	if vote.PublicKey == "" {
		return nil, NewVoteResolutionError(address, VoteStageHistory,
			fmt.Errorf("latest vote has no delegate public key"))
	}

	delegate, err := r.source.GetDelegateByPublicKey(ctx, vote.PublicKey)
	if err != nil {
		log.Error("Failed to get voted delegate ", vote.PublicKey, ", err = ", err)
		return nil, NewVoteResolutionError(address, VoteStageDelegate, err)
	}

	return &types.WalletVote{
		Success:  true,
		Delegate: delegate,
	}, nil
}
