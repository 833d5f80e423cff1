package ark

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/sisu-network/arkeyes/chains/ark/types"
)

const (
	maxDelegatePageSize = 100
)

// PartitionDelegates splits a rank-ordered list into the block producing seats and the rest.
func PartitionDelegates(delegates []*types.Delegate, activeSeats int) (active, standby []*types.Delegate) {
	if activeSeats < 0 {
		activeSeats = 0
	}
	if activeSeats > len(delegates) {
		activeSeats = len(delegates)
	}

	return delegates[:activeSeats], delegates[activeSeats:]
}

func IsSameDelegate(vote *types.WalletVote, publicKey string) bool {
	return vote != nil && vote.Delegate != nil && vote.Delegate.PublicKey == publicKey
}

// NewVoteIntent describes the vote transaction for selecting a delegate. Selecting the delegate
// the wallet already votes for withdraws the vote.
func NewVoteIntent(current *types.WalletVote, selected *types.Delegate, keys types.WalletKeys,
	fee types.Amount) (*types.VoteIntent, error) {
	if selected == nil || selected.PublicKey == "" {
		return nil, errors.New("no delegate selected")
	}
	if keys.Key == "" {
		return nil, errors.New("passphrase is required")
	}

	voteType := types.VoteTypeAdd
	if IsSameDelegate(current, selected.PublicKey) {
		voteType = types.VoteTypeRemove
	}

	return &types.VoteIntent{
		DelegatePublicKey: selected.PublicKey,
		Passphrase:        keys.Key,
		SecondPassphrase:  keys.SecondKey,
		Fee:               fee,
		Type:              voteType,
	}, nil
}

// ResolveVoteIntent looks up the current vote of address, the delegate with publicKey and the
// vote fee, and builds the intent for voting that delegate.
func ResolveVoteIntent(ctx context.Context, client Client, address, publicKey string,
	keys types.WalletKeys) (*types.VoteIntent, error) {
	current, err := client.GetWalletVotes(ctx, address)
	if err != nil {
		return nil, err
	}

	selected, err := client.GetDelegateByPublicKey(ctx, publicKey)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, fmt.Errorf("delegate %s not found", publicKey)
	}

	fees, err := client.GetTransactionFees(ctx)
	if err != nil {
		return nil, err
	}

	return NewVoteIntent(current, selected, keys, fees.Fees.Vote)
}

// ForgedSupply reads the current supply from the node and returns the part produced by delegates.
func ForgedSupply(ctx context.Context, client Client, premined types.Amount) (*big.Int, error) {
	chain, err := client.GetBlockchain(ctx)
	if err != nil {
		return nil, err
	}

	return TotalForged(chain.Supply, premined), nil
}

// TotalForged is the part of the supply produced by delegates.
func TotalForged(supply, premined types.Amount) *big.Int {
	if supply.IsZero() {
		return big.NewInt(0)
	}

	return new(big.Int).Sub(supply.Int(), premined.Int())
}

// FetchDelegates pages through the delegate list by rank until count delegates are collected or
// the node has no more.
func FetchDelegates(ctx context.Context, client Client, count int) ([]*types.Delegate, error) {
	if count <= 0 {
		return []*types.Delegate{}, nil
	}

	delegates := make([]*types.Delegate, 0, count)

	for page := 1; len(delegates) < count; page++ {
		limit := count - len(delegates)
		if limit > maxDelegatePageSize {
			limit = maxDelegatePageSize
		}

		list, err := client.GetDelegateList(ctx, &types.DelegateListOptions{
			Page:    page,
			Limit:   maxDelegatePageSize,
			OrderBy: types.DefaultDelegateListOptions().OrderBy,
		})
		if err != nil {
			return nil, err
		}

		if len(list.Delegates) < limit {
			limit = len(list.Delegates)
		}
		delegates = append(delegates, list.Delegates[:limit]...)

		if len(list.Delegates) < maxDelegatePageSize || (list.TotalCount > 0 && page*maxDelegatePageSize >= list.TotalCount) {
			break
		}
	}

	return delegates, nil
}
