// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bullposting

import (
	"fmt"

	"github.com/bullchain/bullchain/builtin/bullposting/resolution"
)

// Style selects how a reward or slash is computed from the bond.
type Style string

const (
	StyleFlat        Style = "flat"
	StyleCoefficient Style = "coefficient"
)

// Config is fixed at genesis.
type Config struct {
	RewardStyle       Style  `yaml:"rewardStyle" json:"rewardStyle"`
	FlatReward        uint64 `yaml:"flatReward" json:"flatReward"`
	RewardCoefficient uint32 `yaml:"rewardCoefficient" json:"rewardCoefficient"` // percent of bond, clamped to 100

	SlashStyle       Style  `yaml:"slashStyle" json:"slashStyle"`
	FlatSlash        uint64 `yaml:"flatSlash" json:"flatSlash"`
	SlashCoefficient uint32 `yaml:"slashCoefficient" json:"slashCoefficient"` // percent of bond, clamped to 100

	VotingPeriod   uint32 `yaml:"votingPeriod" json:"votingPeriod"` // blocks
	BondMinimum    uint64 `yaml:"bondMinimum" json:"bondMinimum"`
	VoteMinimum    uint64 `yaml:"voteMinimum" json:"voteMinimum"`
	MaxVoters      uint32 `yaml:"maxVoters" json:"maxVoters"`
	StorageRent    uint64 `yaml:"storageRent" json:"storageRent"`
	MaxInputLength uint32 `yaml:"maxInputLength" json:"maxInputLength"`
	UnfreezeLimit  uint32 `yaml:"unfreezeLimit" json:"unfreezeLimit"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		RewardStyle:       StyleCoefficient,
		FlatReward:        500,
		RewardCoefficient: 100,
		SlashStyle:        StyleCoefficient,
		FlatSlash:         500,
		SlashCoefficient:  100,
		VotingPeriod:      1000,
		BondMinimum:       50,
		VoteMinimum:       50,
		MaxVoters:         2000,
		StorageRent:       100,
		MaxInputLength:    2000,
		UnfreezeLimit:     1000,
	}
}

func (c *Config) Validate() error {
	for name, style := range map[string]Style{"rewardStyle": c.RewardStyle, "slashStyle": c.SlashStyle} {
		if style != StyleFlat && style != StyleCoefficient {
			return fmt.Errorf("%s: unknown style %q", name, style)
		}
	}
	if c.MaxVoters == 0 {
		return fmt.Errorf("maxVoters must be positive")
	}
	if c.MaxInputLength == 0 {
		return fmt.Errorf("maxInputLength must be positive")
	}
	if c.UnfreezeLimit == 0 {
		return fmt.Errorf("unfreezeLimit must be positive")
	}
	return nil
}

func (c *Config) rewardPolicy() resolution.Policy {
	if c.RewardStyle == StyleFlat {
		return resolution.Flat{Value: c.FlatReward}
	}
	return resolution.Coefficient{Percent: c.RewardCoefficient, Capped: true}
}

func (c *Config) slashPolicy() resolution.Policy {
	if c.SlashStyle == StyleFlat {
		return resolution.Flat{Value: c.FlatSlash, Capped: true}
	}
	return resolution.Coefficient{Percent: c.SlashCoefficient, Capped: true}
}
