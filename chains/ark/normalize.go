package ark

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sisu-network/arkeyes/chains/ark/types"
)

// TransactionGroupStandard is the fee group key of core transactions on nodes that partition
// fees by transaction group.
const TransactionGroupStandard = "1"

type rawDelegate struct {
	Username  string       `json:"username"`
	Address   string       `json:"address"`
	PublicKey string       `json:"publicKey"`
	Rank      int          `json:"rank"`
	Votes     types.Amount `json:"votes"`
	Blocks    *struct {
		Produced int64 `json:"produced"`
		Missed   int64 `json:"missed"`
	} `json:"blocks"`
	Production *struct {
		Approval     float64 `json:"approval"`
		Productivity float64 `json:"productivity"`
	} `json:"production"`
}

type rawTransaction struct {
	types.Transaction
	Timestamp *rawTimestamp `json:"timestamp"`
}

// rawTimestamp accepts the {"epoch": n, "unix": n, "human": s} object of v2 nodes as well as a
// bare epoch number.
type rawTimestamp struct {
	Epoch int64 `json:"epoch"`
}

func (t *rawTimestamp) UnmarshalJSON(data []byte) error {
	if n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64); err == nil {
		t.Epoch = n
		return nil
	}

	type plain rawTimestamp
	return json.Unmarshal(data, (*plain)(t))
}

type rawFees struct {
	Transfer             types.Amount `json:"transfer"`
	Vote                 types.Amount `json:"vote"`
	SecondSignature      types.Amount `json:"secondSignature"`
	DelegateRegistration types.Amount `json:"delegateRegistration"`
	MultiSignature       types.Amount `json:"multiSignature"`
}

func NormalizeWallet(data json.RawMessage) (*types.Wallet, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("wallet response has no data")
	}

	wallet := &types.Wallet{}
	if err := json.Unmarshal(data, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

func NormalizeDelegate(data json.RawMessage) (*types.Delegate, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("delegate response has no data")
	}

	raw := &rawDelegate{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	return formatDelegate(raw), nil
}

func formatDelegate(raw *rawDelegate) *types.Delegate {
	delegate := &types.Delegate{
		Username:  raw.Username,
		Address:   raw.Address,
		PublicKey: raw.PublicKey,
		Rate:      raw.Rank,
		Votes:     raw.Votes,
	}

	if raw.Blocks != nil {
		delegate.ProducedBlocks = raw.Blocks.Produced
		delegate.MissedBlocks = raw.Blocks.Missed
	}

	if raw.Production != nil {
		delegate.Approval = raw.Production.Approval
		delegate.Productivity = raw.Production.Productivity
	}

	return delegate
}

func NormalizeDelegateList(data json.RawMessage, meta *types.Meta) (*types.DelegateList, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("delegate list response has no data")
	}

	raws := make([]*rawDelegate, 0)
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	list := &types.DelegateList{
		Success:   true,
		Delegates: make([]*types.Delegate, 0, len(raws)),
	}
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		list.Delegates = append(list.Delegates, formatDelegate(raw))
	}

	total, err := totalCount(meta)
	if err != nil {
		return nil, err
	}
	list.TotalCount = int(total)

	return list, nil
}

func NormalizeTransactions(data json.RawMessage, meta *types.Meta) (*types.TransactionList, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("transaction list response has no data")
	}

	raws := make([]*rawTransaction, 0)
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	list := &types.TransactionList{
		Success:      true,
		Transactions: make([]*types.Transaction, 0, len(raws)),
	}
	for _, raw := range raws {
		if raw == nil {
			continue
		}

		tx := raw.Transaction
		tx.RecipientID = raw.Recipient
		tx.SenderID = raw.Sender
		if raw.Timestamp != nil {
			tx.Timestamp = raw.Timestamp.Epoch
		}
		list.Transactions = append(list.Transactions, &tx)
	}

	total, err := totalCount(meta)
	if err != nil {
		return nil, err
	}
	list.Count = strconv.FormatInt(total, 10)

	return list, nil
}

func NormalizeFees(data json.RawMessage) (*types.FeesResponse, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("fee response has no data")
	}

	groups := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}

	payload := data
	if standard, ok := groups[TransactionGroupStandard]; ok {
		payload = standard
	}

	raw := &rawFees{}
	if err := json.Unmarshal(payload, raw); err != nil {
		return nil, err
	}

	return &types.FeesResponse{
		Success: true,
		Fees: types.Fees{
			Send:            raw.Transfer,
			Vote:            raw.Vote,
			SecondSignature: raw.SecondSignature,
			Delegate:        raw.DelegateRegistration,
			MultiSignature:  raw.MultiSignature,
		},
	}, nil
}

type rawBlockchain struct {
	Block struct {
		Height int64  `json:"height"`
		Id     string `json:"id"`
	} `json:"block"`
	Supply types.Amount `json:"supply"`
}

func NormalizeBlockchain(data json.RawMessage) (*types.Blockchain, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("blockchain response has no data")
	}

	raw := &rawBlockchain{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	return &types.Blockchain{
		Height:  raw.Block.Height,
		BlockId: raw.Block.Id,
		Supply:  raw.Supply,
	}, nil
}

func NormalizeSyncStatus(data json.RawMessage) (*types.SyncStatus, error) {
	status := &types.SyncStatus{}
	if err := unmarshalData(data, status); err != nil {
		return nil, err
	}
	status.Success = true

	return status, nil
}

func NormalizePeerList(data json.RawMessage) (*types.PeerList, error) {
	if isEmpty(data) {
		return nil, fmt.Errorf("peer list response has no data")
	}

	peers := make([]*types.Peer, 0)
	if err := json.Unmarshal(data, &peers); err != nil {
		return nil, err
	}

	return &types.PeerList{
		Success: true,
		Peers:   peers,
	}, nil
}

func NormalizePeer(data json.RawMessage) (*types.Peer, error) {
	peer := &types.Peer{}
	if err := unmarshalData(data, peer); err != nil {
		return nil, err
	}

	return peer, nil
}

func NormalizeNodeConfiguration(data json.RawMessage) (*types.NodeConfiguration, error) {
	cfg := &types.NodeConfiguration{}
	if err := unmarshalData(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func NormalizeNodeCrypto(data json.RawMessage) (*types.NodeCrypto, error) {
	crypto := &types.NodeCrypto{}
	if err := unmarshalData(data, crypto); err != nil {
		return nil, err
	}

	return crypto, nil
}

func unmarshalData(data json.RawMessage, v interface{}) error {
	if isEmpty(data) {
		return fmt.Errorf("response has no data")
	}

	return json.Unmarshal(data, v)
}

func totalCount(meta *types.Meta) (int64, error) {
	if meta == nil || isEmpty(meta.TotalCount) {
		return 0, nil
	}

	s := strings.Trim(string(meta.TotalCount), `"`)
	total, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid totalCount %s", string(meta.TotalCount))
	}

	return total, nil
}

func isEmpty(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null"
}
