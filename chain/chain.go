// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/cache"
	"github.com/bullchain/bullchain/genesis"
	"github.com/bullchain/bullchain/kv"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/logdb"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/runtime"
	"github.com/bullchain/bullchain/state"
	"github.com/bullchain/bullchain/tx"
)

var (
	logger = log.WithContext("pkg", "chain")

	errNotFound = errors.New("not found")
)

// IsNotFound returns whether the error indicates a missing block.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// Chain is the ledger enclosing the modules. Calls are applied one at a time,
// each sealed into its own block at best+1.
//
// It's thread-safe.
type Chain struct {
	lock       sync.RWMutex
	stater     *state.Stater
	blockStore kv.Store
	propStore  kv.Store
	logDB      *logdb.LogDB
	config     runtime.Config

	genesis *Block
	best    *Block
	blocks  *cache.LRU
	tick    chan struct{}
}

// New opens the chain stored in db, or initializes it from gen.
func New(db kv.Store, logDB *logdb.LogDB, gen *genesis.Genesis) (*Chain, error) {
	blocks, err := cache.NewLRU(256)
	if err != nil {
		return nil, err
	}
	c := &Chain{
		stater:     state.NewStater(db),
		blockStore: kv.Bucket(blockStoreName).NewStore(db),
		propStore:  kv.Bucket(propStoreName).NewStore(db),
		logDB:      logDB,
		config:     gen.Config(),
		blocks:     blocks,
		tick:       make(chan struct{}),
	}

	bestNum, err := loadBestBlockNum(c.propStore)
	if err != nil {
		if !c.propStore.IsNotFound(err) {
			return nil, err
		}
		if err := c.initGenesis(gen); err != nil {
			return nil, errors.Wrap(err, "init genesis")
		}
		return c, nil
	}

	if c.genesis, err = loadBlock(c.blockStore, 0); err != nil {
		return nil, errors.Wrap(err, "load genesis block")
	}
	if err := c.checkGenesis(gen); err != nil {
		return nil, err
	}
	if c.best, err = loadBlock(c.blockStore, bestNum); err != nil {
		return nil, errors.Wrap(err, "load best block")
	}
	if err := c.syncLogDB(); err != nil {
		return nil, errors.Wrap(err, "sync log db")
	}
	metricBestBlockNumber().Set(int64(bestNum))
	return c, nil
}

func (c *Chain) initGenesis(gen *genesis.Genesis) error {
	st := c.stater.NewState()
	genesisID, err := gen.Build(st)
	if err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	b := &Block{Header: Header{StateHash: genesisID}}
	if err := c.writeBlock(b); err != nil {
		return err
	}
	c.genesis = b
	c.best = b
	logger.Info("initialized genesis", "name", gen.Name(), "id", b.ID())
	return nil
}

// checkGenesis rebuilds the genesis in a scratch state, and compares it with the stored one.
func (c *Chain) checkGenesis(gen *genesis.Genesis) error {
	mem, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer mem.Close()

	genesisID, err := gen.Build(state.New(mem))
	if err != nil {
		return err
	}
	if genesisID != c.genesis.Header.StateHash {
		return errors.New("genesis mismatch")
	}
	return nil
}

// syncLogDB drops events of blocks after best, and reindexes the blocks newer than the log db.
func (c *Chain) syncLogDB() error {
	newest, err := c.logDB.NewestBlockNumber()
	if err != nil {
		return err
	}
	w := c.logDB.NewWriter()
	if newest > c.best.Number() {
		logger.Warn("log db ahead of chain, truncating", "logdb", newest, "best", c.best.Number())
		return w.Truncate(c.best.Number() + 1)
	}
	for num := newest + 1; num <= c.best.Number(); num++ {
		b, err := loadBlock(c.blockStore, num)
		if err != nil {
			return err
		}
		w.Write(num, blockEvents(b))
	}
	return w.Commit()
}

func blockEvents(b *Block) []*logdb.Event {
	var events []*logdb.Event
	for _, r := range b.Receipts {
		for _, ev := range r.Events {
			events = append(events, &logdb.Event{
				Origin:  r.Origin,
				Name:    ev.Name,
				PostID:  ev.PostID,
				Account: ev.Account,
				Data:    ev.Data,
			})
		}
	}
	return events
}

func (c *Chain) writeBlock(b *Block) error {
	bulk := c.blockStore.Bulk()
	if err := saveBlock(bulk, b); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return err
	}
	if err := saveBestBlockNum(c.propStore, b.Number()); err != nil {
		return err
	}
	metricBestBlockNumber().Set(int64(b.Number()))
	return nil
}

// Config returns the module parameters.
func (c *Chain) Config() runtime.Config {
	return c.config
}

// GenesisBlock returns genesis block.
func (c *Chain) GenesisBlock() *Block {
	return c.genesis
}

// BestBlock returns the newest block.
func (c *Chain) BestBlock() *Block {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.best
}

// NewTicker returns a channel closed once a newer best block is sealed.
func (c *Chain) NewTicker() <-chan struct{} {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tick
}

// GetBlock returns the block at num.
func (c *Chain) GetBlock(num uint32) (*Block, error) {
	if num > c.BestBlock().Number() {
		return nil, errNotFound
	}
	b, err := c.blocks.GetOrLoad(num, func(any) (any, error) {
		return loadBlock(c.blockStore, num)
	})
	if changed, hit, miss := c.blocks.Stats(); changed {
		metricBlockCacheStats().Set(hit * 1000 / (hit + miss))
	}
	if err != nil {
		if c.blockStore.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	return b.(*Block), nil
}

// View runs fn with a read only runtime over the state of the best block.
func (c *Chain) View(fn func(rt *runtime.Runtime, best *Block) error) error {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return fn(runtime.New(c.stater.NewState(), c.config, c.best.Number()), c.best)
}

// Apply executes the clause for origin in a new block. A reverted clause still
// seals a block, with the revert recorded in the receipt.
func (c *Chain) Apply(origin bull.Address, clause *tx.Clause) (*tx.Receipt, *Block, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	b, err := c.seal([]*Call{{origin, clause}})
	if err != nil {
		return nil, nil, err
	}
	return b.Receipts[0], b, nil
}

// Advance seals n empty blocks, returning the new best block.
func (c *Chain) Advance(n uint32) (*Block, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for range n {
		if _, err := c.seal(nil); err != nil {
			return nil, err
		}
	}
	return c.best, nil
}

func (c *Chain) seal(calls []*Call) (*Block, error) {
	var (
		num = c.best.Number() + 1
		st  = c.stater.NewState()
		rt  = runtime.New(st, c.config, num)
	)
	b := &Block{
		Header: Header{
			Number:   num,
			ParentID: c.best.ID(),
		},
		Calls:    calls,
		Receipts: tx.Receipts{},
	}
	for _, call := range calls {
		receipt, err := rt.ExecuteClause(call.Origin, call.Clause)
		if err != nil {
			return nil, err
		}
		b.Receipts = append(b.Receipts, receipt)
	}
	b.Header.WeightUsed = b.Receipts.WeightUsed()

	stage := st.Stage()
	b.Header.StateHash = stage.Hash()
	if err := stage.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	if err := c.writeBlock(b); err != nil {
		return nil, errors.Wrap(err, "write block")
	}
	c.best = b
	close(c.tick)
	c.tick = make(chan struct{})

	if events := blockEvents(b); len(events) > 0 {
		w := c.logDB.NewWriter()
		w.Write(num, events)
		if err := w.Commit(); err != nil {
			return nil, errors.Wrap(err, "index events")
		}
	}
	logger.Debug("sealed block", "number", num, "id", b.ID(), "calls", len(calls), "weight", b.Header.WeightUsed)
	return b, nil
}
