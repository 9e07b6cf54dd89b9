// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/state"
)

// Builder helper to build genesis state.
type Builder struct {
	name       string
	stateProcs []func(state *state.State) error
}

// Name set the genesis name, mixed into the genesis id.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs the state processes on st and computes the genesis id.
func (b *Builder) Build(st *state.State) (id bull.Bytes32, err error) {
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return bull.Bytes32{}, errors.Wrap(err, "state process")
		}
	}
	changes := st.Stage().Hash()
	return bull.Blake2b([]byte(b.name), changes.Bytes()), nil
}
