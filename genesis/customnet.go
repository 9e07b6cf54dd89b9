// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bullchain/bullchain/builtin/bullposting"
	"github.com/bullchain/bullchain/runtime"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name     string         `yaml:"name"`
	Modules  runtime.Config `yaml:"modules"`
	Accounts []Account      `yaml:"accounts"`
}

// DefaultCustomGenesis returns a custom genesis with default module parameters.
func DefaultCustomGenesis() *CustomGenesis {
	return &CustomGenesis{
		Name:    "customnet",
		Modules: runtime.Config{Bullposting: bullposting.DefaultConfig()},
	}
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Name == "" {
		return nil, errors.New("name must not be empty")
	}
	seen := make(map[string]bool)
	for _, acc := range gen.Accounts {
		key := acc.Address.String()
		if seen[key] {
			return nil, errors.Errorf("duplicated account %v", key)
		}
		seen[key] = true
	}
	return newGenesis(gen.Name, gen.Modules, gen.Accounts)
}

// ParseCustomGenesis decodes a yaml genesis. Omitted module parameters keep their defaults.
func ParseCustomGenesis(data []byte) (*CustomGenesis, error) {
	gen := DefaultCustomGenesis()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return gen, nil
}

// LoadCustomGenesis reads a yaml genesis file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseCustomGenesis(data)
}

// Marshal encodes the genesis as yaml.
func (gen *CustomGenesis) Marshal() ([]byte, error) {
	return yaml.Marshal(gen)
}
