package types

// Blockchain is the chain tip and the current coin supply.
type Blockchain struct {
	Height  int64  `json:"height"`
	BlockId string `json:"blockId"`
	Supply  Amount `json:"supply"`
}
