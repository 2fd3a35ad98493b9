// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bchec

import (
	"bytes"
	"testing"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func TestVerifyECDSA(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pubKey := privKey.PubKey().SerializeCompressed()
	msg := chainhash.HashB([]byte("spend authorization"))

	sig := ecdsa.Sign(privKey, msg).Serialize()

	verifier := NewVerifier()
	valid, err := verifier.Verify(pubKey, msg, sig)
	require.NoError(t, err)
	assert.True(t, valid)

	// A different message does not verify but is not an error.
	otherMsg := chainhash.HashB([]byte("something else"))
	valid, err = verifier.Verify(pubKey, otherMsg, sig)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifySchnorr(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pubKey := privKey.PubKey().SerializeCompressed()
	msg := chainhash.HashB([]byte("schnorr spend"))

	sig, err := schnorr.Sign(privKey, msg)
	require.NoError(t, err)
	sigBytes := sig.Serialize()
	require.Len(t, sigBytes, schnorrSignatureSize)

	verifier := NewVerifier()
	valid, err := verifier.Verify(pubKey, msg, sigBytes)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyEmptySignature(t *testing.T) {
	verifier := NewVerifier()
	valid, err := verifier.Verify([]byte{0x02}, nil, nil)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyInvalidPubKey(t *testing.T) {
	verifier := NewVerifier()
	_, err := verifier.Verify([]byte{0x01, 0x02, 0x03}, make([]byte, 32),
		bytes.Repeat([]byte{0x30}, 70))
	assert.ErrorIs(t, err, ErrInvalidPubKey)
}

func TestVerifyInvalidSignatureFormat(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pubKey := privKey.PubKey().SerializeCompressed()

	verifier := NewVerifier()

	// Garbage that is neither a 64-byte Schnorr signature nor DER.
	_, err = verifier.Verify(pubKey, make([]byte, 32),
		bytes.Repeat([]byte{0xff}, 70))
	assert.ErrorIs(t, err, ErrInvalidSignatureFormat)
}
