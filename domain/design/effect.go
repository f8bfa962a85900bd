package design

import (
	"math/bits"
	"strings"
)

// EffectIndex is a subset of factors encoded as a bitmask. 0 is the grand
// mean, a single bit is a main effect, several bits an interaction.
type EffectIndex uint32

// Letters renders the factor subset in ascending bit order, bit p as 'A'+p.
// The grand mean renders as the empty string.
func (e EffectIndex) Letters() string {
	var b strings.Builder
	for pos := 0; pos < MaxFactors; pos++ {
		if e&(1<<pos) != 0 {
			b.WriteByte(byte('A' + pos))
		}
	}
	return b.String()
}

// Label is Letters with the grand mean shown as "0".
func (e EffectIndex) Label() string {
	if e == 0 {
		return "0"
	}
	return e.Letters()
}

func (e EffectIndex) String() string { return e.Label() }

// Order returns the interaction order of an effect: 0 for the mean, 1 for a
// main effect, 2 for a two-factor interaction and so on.
func (e EffectIndex) Order() int {
	return bits.OnesCount32(uint32(e))
}

// ParseEffect converts a letter string such as "AC" back to its index.
// Letters may appear in any order; duplicates and non A-Z characters are rejected.
func ParseEffect(s string) (EffectIndex, bool) {
	if s == "0" {
		return 0, true
	}
	if s == "" {
		return 0, false
	}
	var e EffectIndex
	for _, c := range strings.ToUpper(s) {
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		bit := EffectIndex(1) << (c - 'A')
		if e&bit != 0 {
			return 0, false
		}
		e |= bit
	}
	return e, true
}
