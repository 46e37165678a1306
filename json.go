// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// numberJSON is the canonical machine-readable form of a Number: the
// scaled integer plus the Format's bit layout.
type numberJSON struct {
	Scaled string `json:"s"`
	Int    int    `json:"i"`
	Frac   int    `json:"f"`
}

// MarshalJSON marshals the value together with its Format,
// so that UnmarshalJSON reconstructs an equal Number.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(numberJSON{
		Scaled: n.val.String(),
		Int:    n.f.intBits,
		Frac:   n.f.fracBits,
	})
}

// UnmarshalJSON reconstructs a Number marshaled by MarshalJSON.
func (n *Number) UnmarshalJSON(data []byte) error {
	var d numberJSON
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	val, ok := new(big.Int).SetString(d.Scaled, 10)
	if !ok {
		return fmt.Errorf("bad scaled value %q", d.Scaled)
	}
	var (
		f   *Format
		err error
	)
	if d.Int == Unbounded {
		f, err = NewUnbounded(d.Frac)
	} else {
		f, err = NewFormat(d.Int, d.Frac)
	}
	if err != nil {
		return err
	}
	num, err := f.FromScaled(val)
	if err != nil {
		return err
	}
	*n = num
	return nil
}
