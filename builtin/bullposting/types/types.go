// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"fmt"
	"strings"

	"github.com/bullchain/bullchain/bull"
)

// PostID is the blake2b-256 digest of a post's content.
type PostID = bull.Bytes32

// PostIDOf derives the id of the given content.
func PostIDOf(content []byte) PostID {
	return bull.Blake2b(content)
}

// Direction is the side a vote backs, and the outcome of a resolved post.
type Direction uint8

const (
	Bullish Direction = iota
	Bearish
	Tie
)

func (d Direction) Valid() bool {
	return d <= Tie
}

func (d Direction) String() string {
	switch d {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	case Tie:
		return "tie"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection parses the case-insensitive name of a direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "bullish", "bull":
		return Bullish, nil
	case "bearish", "bear":
		return Bearish, nil
	case "tie":
		return Tie, nil
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
