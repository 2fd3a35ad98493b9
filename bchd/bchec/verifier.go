// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bchec provides signature verification over secp256k1 for the
// script interpreter.  Both ECDSA (DER encoded) and Schnorr (64-byte)
// signature encodings are handled; the interpreter does not distinguish
// them.
package bchec

import (
	"errors"
	"fmt"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// Error kinds the interpreter maps onto its own taxonomy.  Anything else
// returned from Verify is an "other" failure.
var (
	// ErrInvalidPubKey is wrapped when the public key bytes do not parse
	// as a point on the curve.
	ErrInvalidPubKey = errors.New("invalid public key")

	// ErrInvalidSignatureFormat is wrapped when the signature bytes do not
	// parse in the encoding selected by their length (Schnorr for 64 bytes,
	// DER ECDSA otherwise).
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
)

// Verifier checks a signature over a message digest for a public key.  A
// (false, nil) result means the signature is well-formed but does not
// validate; errors are reserved for malformed inputs.
type Verifier interface {
	Verify(pubKey, msg, sig []byte) (bool, error)
}

// schnorrSignatureSize is the length of a raw Schnorr signature; signatures
// of that exact length verify as Schnorr, everything else as DER ECDSA.
const schnorrSignatureSize = 64

// Secp256k1Verifier verifies ECDSA and Schnorr signatures over the
// secp256k1 curve.  It is stateless and safe for concurrent use.
type Secp256k1Verifier struct{}

// NewVerifier returns a secp256k1-backed Verifier.
func NewVerifier() *Secp256k1Verifier {
	return &Secp256k1Verifier{}
}

// Verify checks sig over msg for pubKey.  An empty signature is well-formed
// and verifies as false.
func (v *Secp256k1Verifier) Verify(pubKey, msg, sig []byte) (bool, error) {
	if len(sig) == 0 {
		return false, nil
	}

	parsedKey, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
	}

	if len(sig) == schnorrSignatureSize {
		schnorrSig, err := schnorr.ParseSignature(sig)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
		}
		return schnorrSig.Verify(msg, parsedKey), nil
	}

	ecdsaSig, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
	}
	return ecdsaSig.Verify(msg, parsedKey), nil
}

// A compile-time assertion to ensure Secp256k1Verifier implements the
// Verifier interface.
var _ Verifier = (*Secp256k1Verifier)(nil)
