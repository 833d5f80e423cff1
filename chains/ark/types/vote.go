package types

type VoteType int

const (
	VoteTypeAdd VoteType = iota
	VoteTypeRemove
)

func (t VoteType) String() string {
	if t == VoteTypeRemove {
		return "remove"
	}

	return "add"
}

// WalletKeys is the passphrase material handed to the transaction builder. It never leaves the
// process through this module.
type WalletKeys struct {
	Key       string
	SecondKey string
}

// VoteIntent is everything the transaction builder needs to shape a vote transaction.
type VoteIntent struct {
	DelegatePublicKey string
	Passphrase        string
	SecondPassphrase  string
	Fee               Amount
	Type              VoteType
}

// Asset returns the vote asset entry this intent produces.
func (v *VoteIntent) Asset() string {
	return Vote{PublicKey: v.DelegatePublicKey, Remove: v.Type == VoteTypeRemove}.String()
}
