// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"crypto/sha1"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Sha1 returns the SHA-1 digest of the array, recording the source as the
// digest's preimage.
func Sha1(a *ByteArray) *ByteArray {
	digest := sha1.Sum(a.Data())
	return a.Apply(digest[:], FunctionSha1)
}

// Ripemd160 returns the RIPEMD-160 digest of the array.
func Ripemd160(a *ByteArray) *ByteArray {
	hasher := ripemd160.New()
	hasher.Write(a.Data())
	return a.Apply(hasher.Sum(nil), FunctionRipemd160)
}

// Sha256 returns the SHA-256 digest of the array.
func Sha256(a *ByteArray) *ByteArray {
	return a.Apply(chainhash.HashB(a.Data()), FunctionSha256)
}

// Sha256d returns the double SHA-256 digest of the array.
func Sha256d(a *ByteArray) *ByteArray {
	return a.Apply(chainhash.DoubleHashB(a.Data()), FunctionHash256)
}

// Hash160 returns RIPEMD-160(SHA-256(data)) of the array.
func Hash160(a *ByteArray) *ByteArray {
	hasher := ripemd160.New()
	hasher.Write(chainhash.HashB(a.Data()))
	return a.Apply(hasher.Sum(nil), FunctionHash160)
}
