// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"strings"

	"github.com/pkg/errors"
)

// BitVector is a list of wire states, one per chip input or output.
//
type BitVector []bool

// ParseBits parses a string of '0' and '1' characters into a BitVector.
// Underscores are ignored and may be used as separators.
//
func ParseBits(s string) (BitVector, error) {
	v := make(BitVector, 0, len(s))
	col := 0
	for _, r := range s {
		col++
		switch r {
		case '0':
			v = append(v, false)
		case '1':
			v = append(v, true)
		case '_':
		default:
			return nil, errors.Errorf("in %q at pos %d: invalid bit %q", s, col, r)
		}
	}
	return v, nil
}

// Bits returns the n lowest bits of u, most significant bit first.
//
func Bits(u uint64, n int) BitVector {
	v := make(BitVector, n)
	for i := range v {
		v[n-i-1] = u&(1<<uint(i)) != 0
	}
	return v
}

// Uint64 returns the value of v, v[0] being the most significant bit.
//
func (v BitVector) Uint64() uint64 {
	var u uint64
	for _, b := range v {
		u <<= 1
		if b {
			u |= 1
		}
	}
	return u
}

func (v BitVector) String() string {
	var b strings.Builder
	b.Grow(len(v))
	for _, s := range v {
		if s {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Equal returns true if v and w hold the same bits.
//
func (v BitVector) Equal(w BitVector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}
