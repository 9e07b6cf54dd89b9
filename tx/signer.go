// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
)

// Sign signs a clause with the given private key, returning the 65 bytes signature.
func Sign(clause *Clause, pk *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(clause.SigningHash().Bytes(), pk)
	if err != nil {
		return nil, fmt.Errorf("unable to sign clause: %w", err)
	}
	return sig, nil
}

// MustSign signs a clause and panics on failure.
func MustSign(clause *Clause, pk *ecdsa.PrivateKey) []byte {
	sig, err := Sign(clause, pk)
	if err != nil {
		panic(err)
	}
	return sig
}

// Origin recovers the signer of the clause.
func Origin(clause *Clause, sig []byte) (bull.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return bull.Address{}, errors.New("invalid signature length")
	}
	pub, err := crypto.SigToPub(clause.SigningHash().Bytes(), sig)
	if err != nil {
		return bull.Address{}, errors.Wrap(err, "recover origin")
	}
	return bull.Address(crypto.PubkeyToAddress(*pub)), nil
}
