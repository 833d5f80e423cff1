package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// Amount is an integer quantity in base units (arktoshi). Nodes serialize amounts either as
// JSON numbers or as numeric strings depending on their version; both decode here. A missing
// or null amount is zero.
type Amount struct {
	v big.Int
}

func NewAmount(v int64) Amount {
	a := Amount{}
	a.v.SetInt64(v)
	return a
}

func ParseAmount(s string) (Amount, error) {
	a := Amount{}
	if _, ok := a.v.SetString(s, 10); !ok {
		return Amount{}, fmt.Errorf("Invalid amount %q", s)
	}

	return a, nil
}

func (a Amount) Int() *big.Int {
	return new(big.Int).Set(&a.v)
}

func (a Amount) Int64() int64 {
	return a.v.Int64()
}

func (a Amount) IsZero() bool {
	return a.v.Sign() == 0
}

func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

func (a Amount) String() string {
	return a.v.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.v.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.v.SetInt64(0)
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			a.v.SetInt64(0)
			return nil
		}
		data = []byte(s)
	}

	// Some nodes emit whole amounts in exponent form (1e+21).
	if _, ok := a.v.SetString(string(data), 10); ok {
		return nil
	}

	f, _, err := big.ParseFloat(string(data), 10, 256, big.ToZero)
	if err != nil {
		return fmt.Errorf("Invalid amount %s", string(data))
	}
	f.Int(&a.v)

	return nil
}
