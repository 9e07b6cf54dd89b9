// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin"
	"github.com/bullchain/bullchain/builtin/balances"
	"github.com/bullchain/bullchain/builtin/bullposting"
	"github.com/bullchain/bullchain/builtin/gascharger"
	"github.com/bullchain/bullchain/builtin/reverts"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/state"
	"github.com/bullchain/bullchain/tx"
)

var logger = log.WithContext("pkg", "runtime")

// ErrUnknownKind is returned for a clause naming no module operation.
var ErrUnknownKind = reverts.New("UnknownKind", "unknown clause kind")

// ErrOutOfWeight is returned when a clause consumes more than the weight limit.
var ErrOutOfWeight = reverts.New("OutOfWeight", "weight limit exceeded")

// Config holds the parameters of the builtin modules.
type Config struct {
	Bullposting bullposting.Config `yaml:"bullposting" json:"bullposting"`
	MaxFreezes  uint32             `yaml:"maxFreezes" json:"maxFreezes"`
}

// Runtime is to support clause execution.
type Runtime struct {
	state       *state.State
	config      Config
	blockNumber uint32
	weightLimit uint64
}

// New create a Runtime object.
func New(state *state.State, config Config, blockNumber uint32) *Runtime {
	return &Runtime{
		state:       state,
		config:      config,
		blockNumber: blockNumber,
		weightLimit: bull.BlockWeightLimit,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) BlockNumber() uint32 { return rt.blockNumber }

// SetWeightLimit sets the weight one clause may consume. Returns this runtime.
func (rt *Runtime) SetWeightLimit(limit uint64) *Runtime {
	rt.weightLimit = limit
	return rt
}

// ExecuteClause executes the clause on behalf of origin. A reverted clause leaves
// the state untouched and is reported in the receipt; the returned error is
// reserved for storage failures.
func (rt *Runtime) ExecuteClause(origin bull.Address, clause *tx.Clause) (*tx.Receipt, error) {
	var (
		checkpoint = rt.state.NewCheckpoint()
		charger    = gascharger.New(rt.weightLimit)
		bal        = builtin.Balances.Native(rt.state, rt.config.MaxFreezes, charger.Charge)
		module     = builtin.Bullposting.Native(rt.state, bal, rt.config.Bullposting, charger.Charge)
	)

	err := rt.dispatch(module, origin, clause)
	if err == nil && charger.Exceeded() {
		err = ErrOutOfWeight
	}

	receipt := &tx.Receipt{
		Origin:     origin,
		WeightUsed: bull.ClauseWeight + charger.TotalGas(),
		Events:     []*tx.Event{},
	}
	kind := string(clause.Kind())
	if err != nil {
		rt.state.RevertTo(checkpoint)
		if !reverts.IsRevertErr(err) {
			metricClauseCount().AddWithLabel(1, map[string]string{"kind": kind, "status": "error"})
			return nil, errors.Wrapf(err, "execute %v", clause.Kind())
		}
		receipt.Reverted = true
		receipt.Error = reverts.KindOf(err)
		receipt.Message = err.Error()
		logger.Debug("clause reverted", "origin", origin, "kind", kind, "error", receipt.Error, "weight", charger.Breakdown())
		metricClauseCount().AddWithLabel(1, map[string]string{"kind": kind, "status": "reverted"})
		metricWeightUsed().ObserveWithLabels(int64(receipt.WeightUsed), map[string]string{"kind": kind})
		return receipt, nil
	}

	for _, ev := range module.Events() {
		converted, err := convertEvent(ev)
		if err != nil {
			rt.state.RevertTo(checkpoint)
			return nil, err
		}
		receipt.Events = append(receipt.Events, converted)
	}
	metricClauseCount().AddWithLabel(1, map[string]string{"kind": kind, "status": "success"})
	metricWeightUsed().ObserveWithLabels(int64(receipt.WeightUsed), map[string]string{"kind": kind})
	return receipt, nil
}

func (rt *Runtime) dispatch(module *bullposting.Bullposting, origin bull.Address, clause *tx.Clause) error {
	content := clause.Content()
	switch clause.Kind() {
	case tx.KindSubmitPost:
		return module.SubmitPost(origin, content, clause.Amount(), rt.blockNumber)
	case tx.KindSubmitVote:
		return module.SubmitVote(origin, content, clause.Amount(), clause.Direction(), rt.blockNumber)
	case tx.KindUpdateVote:
		return module.UpdateVote(origin, content, clause.Amount(), clause.Direction(), rt.blockNumber)
	case tx.KindResolveVoting:
		_, err := module.ResolveVoting(origin, content, rt.blockNumber)
		return err
	case tx.KindEndPost:
		_, err := module.EndPost(origin, content)
		return err
	default:
		return ErrUnknownKind
	}
}

func convertEvent(ev bullposting.Event) (*tx.Event, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, errors.Wrapf(err, "encode event %v", ev.Name())
	}
	out := &tx.Event{
		Name:   ev.Name(),
		PostID: ev.Post(),
		Data:   data,
	}
	if acc := ev.Account(); !acc.IsZero() {
		out.Account = &acc
	}
	return out, nil
}

// Custodian returns a read view of the balances module.
func (rt *Runtime) Custodian() *balances.Balances {
	return builtin.Balances.Native(rt.state, rt.config.MaxFreezes, nil)
}

// Module returns a read view of the bullposting module.
func (rt *Runtime) Module() *bullposting.Bullposting {
	return builtin.Bullposting.Native(rt.state, rt.Custodian(), rt.config.Bullposting, nil)
}
