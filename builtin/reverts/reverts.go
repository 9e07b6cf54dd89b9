// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a precondition failure reported back to the caller.
// The state of the failing call is always discarded.
type ErrRevert struct {
	kind    string
	message string
}

// New creates a revert error of the given kind.
func New(kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the stable name of the error, e.g. "PostAlreadyExists".
func (e *ErrRevert) Kind() string {
	return e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or "" if err is not a revert.
func KindOf(err error) string {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return ""
}
