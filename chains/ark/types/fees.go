package types

// Fees are the static fee amounts per transaction category.
type Fees struct {
	Send            Amount `json:"send"`
	Vote            Amount `json:"vote"`
	SecondSignature Amount `json:"secondsignature"`
	Delegate        Amount `json:"delegate"`
	MultiSignature  Amount `json:"multisignature"`
}

type FeesResponse struct {
	Success bool `json:"success"`
	Fees    Fees `json:"fees"`
}
