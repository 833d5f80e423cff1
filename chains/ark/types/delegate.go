package types

import "fmt"

type Delegate struct {
	Username       string  `json:"username"`
	Address        string  `json:"address"`
	PublicKey      string  `json:"publicKey"`
	Rate           int     `json:"rate"`
	Votes          Amount  `json:"votes"`
	ProducedBlocks int64   `json:"producedBlocks"`
	MissedBlocks   int64   `json:"missedBlocks"`
	Approval       float64 `json:"approval"`
	Productivity   float64 `json:"productivity"`
}

type DelegateList struct {
	Success    bool        `json:"success"`
	Delegates  []*Delegate `json:"delegates"`
	TotalCount int         `json:"totalCount"`
}

// DelegateListOptions are the query parameters of a delegate page.
type DelegateListOptions struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	OrderBy string `json:"orderBy"`
}

func DefaultDelegateListOptions() DelegateListOptions {
	return DelegateListOptions{
		Page:    1,
		Limit:   100,
		OrderBy: "rank:asc",
	}
}

// ValidateRanks checks that the ranked delegates of a list ordered by rank carry unique ranks
// that increase by one from the first entry. Delegates without a rank are ignored.
func ValidateRanks(delegates []*Delegate) error {
	expected := 0
	for _, d := range delegates {
		if d == nil || d.Rate == 0 {
			continue
		}

		if expected == 0 {
			expected = d.Rate
		}

		if d.Rate != expected {
			return fmt.Errorf("delegate %s has rank %d, expected %d", d.Username, d.Rate, expected)
		}
		expected++
	}

	return nil
}
