package ark

import (
	"encoding/json"
	"testing"

	"github.com/sisu-network/arkeyes/chains/ark/types"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDelegate(t *testing.T) {
	t.Parallel()

	t.Run("full payload", func(t *testing.T) {
		data := json.RawMessage(`{
			"username": "genesis_1",
			"address": "D61mfSggzbvQgTUe6JhYKH2doHaqJ3Dyib",
			"publicKey": "03287bfebba4c7881a0509717e71b34b63f31e40021c321f89ae04f84be6d6ac37",
			"votes": "300000000000000",
			"rank": 1,
			"blocks": {"produced": 4521, "missed": 12, "last": {"id": "abc"}},
			"production": {"approval": 1.08, "productivity": 99.73}
		}`)

		delegate, err := NormalizeDelegate(data)
		require.Nil(t, err)
		require.Equal(t, "genesis_1", delegate.Username)
		require.Equal(t, "D61mfSggzbvQgTUe6JhYKH2doHaqJ3Dyib", delegate.Address)
		require.Equal(t, 1, delegate.Rate)
		require.Equal(t, int64(4521), delegate.ProducedBlocks)
		require.Equal(t, int64(12), delegate.MissedBlocks)
		require.Equal(t, 1.08, delegate.Approval)
		require.Equal(t, 99.73, delegate.Productivity)
		require.Equal(t, "300000000000000", delegate.Votes.String())
	})

	t.Run("no blocks and no production", func(t *testing.T) {
		data := json.RawMessage(`{"username": "standby", "address": "DAddr", "publicKey": "02ab", "rank": 60}`)

		delegate, err := NormalizeDelegate(data)
		require.Nil(t, err)
		require.Equal(t, 60, delegate.Rate)
		require.Equal(t, int64(0), delegate.ProducedBlocks)
		require.Equal(t, int64(0), delegate.MissedBlocks)
		require.Equal(t, float64(0), delegate.Approval)
		require.Equal(t, float64(0), delegate.Productivity)
	})

	t.Run("blocks without missed", func(t *testing.T) {
		data := json.RawMessage(`{"username": "d", "rank": 3, "blocks": {"produced": 7}, "production": {}}`)

		delegate, err := NormalizeDelegate(data)
		require.Nil(t, err)
		require.Equal(t, int64(7), delegate.ProducedBlocks)
		require.Equal(t, int64(0), delegate.MissedBlocks)
		require.Equal(t, float64(0), delegate.Approval)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := NormalizeDelegate(json.RawMessage(`null`))
		require.Error(t, err)
	})
}

func TestNormalizeDelegateList(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`[
		{"username": "a", "publicKey": "pa", "rank": 1, "blocks": {"produced": 1, "missed": 0}},
		{"username": "b", "publicKey": "pb", "rank": 2}
	]`)
	meta := &types.Meta{TotalCount: json.RawMessage(`"253"`)}

	list, err := NormalizeDelegateList(data, meta)
	require.Nil(t, err)
	require.True(t, list.Success)
	require.Equal(t, 253, list.TotalCount)
	require.Equal(t, 2, len(list.Delegates))
	require.Equal(t, "b", list.Delegates[1].Username)
	require.Nil(t, types.ValidateRanks(list.Delegates))
}

func TestNormalizeFees(t *testing.T) {
	t.Parallel()

	expected := types.Fees{
		Send:            types.NewAmount(10),
		Vote:            types.NewAmount(100),
		SecondSignature: types.NewAmount(500),
		Delegate:        types.NewAmount(2500),
		MultiSignature:  types.NewAmount(500),
	}

	t.Run("grouped", func(t *testing.T) {
		data := json.RawMessage(`{
			"1": {"transfer": 10, "vote": 100, "secondSignature": 500, "delegateRegistration": 2500, "multiSignature": 500},
			"2": {"businessRegistration": 5000000000}
		}`)

		fees, err := NormalizeFees(data)
		require.Nil(t, err)
		require.True(t, fees.Success)
		require.Equal(t, expected, fees.Fees)
	})

	t.Run("flat with string amounts", func(t *testing.T) {
		data := json.RawMessage(`{"transfer": "10", "vote": "100", "secondSignature": "500", "delegateRegistration": "2500", "multiSignature": "500"}`)

		fees, err := NormalizeFees(data)
		require.Nil(t, err)
		require.Equal(t, expected, fees.Fees)
	})

	t.Run("missing categories default to zero", func(t *testing.T) {
		fees, err := NormalizeFees(json.RawMessage(`{"1": {"transfer": 10}}`))
		require.Nil(t, err)
		require.Equal(t, int64(10), fees.Fees.Send.Int64())
		require.True(t, fees.Fees.MultiSignature.IsZero())
	})
}

func TestNormalizeTransactions(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`[{
		"id": "tx1",
		"type": 3,
		"amount": "0",
		"fee": "100000000",
		"sender": "DSender",
		"recipient": "DRecipient",
		"senderPublicKey": "02aa",
		"asset": {"votes": ["+02bb"]},
		"confirmations": 10,
		"timestamp": {"epoch": 67233048, "unix": 1557334248, "human": "2019-05-08T16:50:48.000Z"}
	}, {
		"id": "tx2",
		"type": 0,
		"amount": 250000000,
		"sender": "DSender",
		"recipient": "DOther",
		"timestamp": 67233000
	}]`)
	meta := &types.Meta{TotalCount: json.RawMessage(`42`)}

	list, err := NormalizeTransactions(data, meta)
	require.Nil(t, err)
	require.True(t, list.Success)
	require.Equal(t, "42", list.Count)
	require.Equal(t, 2, len(list.Transactions))

	tx := list.Transactions[0]
	require.Equal(t, "DRecipient", tx.RecipientID)
	require.Equal(t, "DSender", tx.SenderID)
	require.Equal(t, int64(67233048), tx.Timestamp)
	require.Equal(t, []string{"+02bb"}, tx.Asset.Votes)
	require.Equal(t, int64(100000000), tx.Fee.Int64())

	require.Equal(t, int64(67233000), list.Transactions[1].Timestamp)
	require.Equal(t, int64(250000000), list.Transactions[1].Amount.Int64())
}

func TestNormalizeWallet(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{
		"address": "DAddr",
		"publicKey": "02aa",
		"balance": "1000000000000",
		"nonce": "12",
		"isDelegate": true,
		"vote": "02bb",
		"attributes": {"delegate": {"username": "me"}}
	}`)

	wallet, err := NormalizeWallet(data)
	require.Nil(t, err)
	require.Equal(t, "DAddr", wallet.Address)
	require.Equal(t, "1000000000000", wallet.Balance.String())
	require.Equal(t, int64(12), wallet.Nonce.Int64())
	require.True(t, wallet.IsDelegate)
	require.True(t, wallet.HasVote())

	fresh, err := NormalizeWallet(json.RawMessage(`{"address": "DNew", "balance": 0}`))
	require.Nil(t, err)
	require.Equal(t, "", fresh.PublicKey)
	require.True(t, fresh.Nonce.IsZero())

	_, err = NormalizeWallet(nil)
	require.Error(t, err)
}

func TestNormalizePassthrough(t *testing.T) {
	t.Parallel()

	status, err := NormalizeSyncStatus(json.RawMessage(`{"syncing": false, "blocks": -1, "height": 9876, "id": "blk"}`))
	require.Nil(t, err)
	require.True(t, status.Success)
	require.Equal(t, int64(9876), status.Height)

	peers, err := NormalizePeerList(json.RawMessage(`[{"ip": "1.2.3.4", "port": 4001, "ports": {"@arkecosystem/core-api": 4003}}]`))
	require.Nil(t, err)
	require.True(t, peers.Success)
	require.Equal(t, 4003, peers.Peers[0].Ports["@arkecosystem/core-api"])

	cfg, err := NormalizeNodeConfiguration(json.RawMessage(`{
		"nethash": "2a44f340d76ffc3df204c5f38cd355b7496c9065a1ade2ef92071436bd72e867",
		"token": "DARK",
		"ports": {"@arkecosystem/core-wallet-api": "4040", "@arkecosystem/core-webhooks": -1}
	}`))
	require.Nil(t, err)
	require.Equal(t, "DARK", cfg.Token)
	port, ok := cfg.Ports.FindPlugin(WalletApiPlugin)
	require.True(t, ok)
	require.Equal(t, 4040, port)

	_, err = NormalizeSyncStatus(nil)
	require.Error(t, err)
}

func TestNormalizeLists_MissingData(t *testing.T) {
	t.Parallel()

	for _, data := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(` `)} {
		_, err := NormalizeTransactions(data, nil)
		require.Error(t, err)

		_, err = NormalizeDelegateList(data, nil)
		require.Error(t, err)

		_, err = NormalizePeerList(data)
		require.Error(t, err)
	}

	// An empty array is a valid empty list.
	txs, err := NormalizeTransactions(json.RawMessage(`[]`), nil)
	require.Nil(t, err)
	require.Empty(t, txs.Transactions)
	require.Equal(t, "0", txs.Count)

	delegates, err := NormalizeDelegateList(json.RawMessage(`[]`), nil)
	require.Nil(t, err)
	require.Empty(t, delegates.Delegates)

	peers, err := NormalizePeerList(json.RawMessage(`[]`))
	require.Nil(t, err)
	require.Empty(t, peers.Peers)
}
