// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bchsuite/bchscript/bchd/script"
)

// SigHashFlags represents hash type bits at the end of a signature.
type SigHashFlags byte

// Hash type bits from the end of a signature.
const (
	SigHashAll          SigHashFlags = 0x01
	SigHashNone         SigHashFlags = 0x02
	SigHashSingle       SigHashFlags = 0x03
	SigHashForkID       SigHashFlags = 0x40
	SigHashAnyOneCanPay SigHashFlags = 0x80

	// sigHashMask defines the number of bits of the hash type which is
	// used to identify which outputs are signed.
	sigHashMask = 0x1f
)

// DefaultSigHashFlags is the flag byte assumed when a signature is empty.
const DefaultSigHashFlags = SigHashAll | SigHashForkID

// le32 returns a named byte array holding a 4-byte little-endian value.
func le32(name string, v uint32) *script.ByteArray {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return script.NamedByteArray(name, buf[:])
}

// le64 returns a named byte array holding an 8-byte little-endian value.
func le64(name string, v uint64) *script.ByteArray {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return script.NamedByteArray(name, buf[:])
}

// hashPrevouts returns the double SHA-256 of all input outpoints, or 32 zero
// bytes when the flags exempt them from the digest.
func (t *Tx) hashPrevouts(flags SigHashFlags) *script.ByteArray {
	if flags&SigHashAnyOneCanPay != 0 {
		return script.NamedByteArray("hashPrevouts", make([]byte, 32))
	}
	var w bytes.Buffer
	for _, input := range t.inputs {
		serializeOutPoint(&w, &input.PrevOut)
	}
	digest := chainhash.DoubleHashB(w.Bytes())
	return script.NamedByteArray("hashPrevouts", digest)
}

// hashSequence returns the double SHA-256 of all input sequence numbers, or
// 32 zero bytes when the flags exempt them.
func (t *Tx) hashSequence(flags SigHashFlags) *script.ByteArray {
	baseType := flags & sigHashMask
	if flags&SigHashAnyOneCanPay != 0 ||
		baseType == SigHashSingle || baseType == SigHashNone {

		return script.NamedByteArray("hashSequence", make([]byte, 32))
	}
	var w bytes.Buffer
	for _, input := range t.inputs {
		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], input.Sequence)
		w.Write(seq[:])
	}
	digest := chainhash.DoubleHashB(w.Bytes())
	return script.NamedByteArray("hashSequence", digest)
}

// hashOutputs returns the double SHA-256 of the outputs covered by the
// flags: all outputs normally, only the matching output for SIGHASH_SINGLE,
// 32 zero bytes otherwise.
func (t *Tx) hashOutputs(flags SigHashFlags, inputIdx int) (*script.ByteArray, error) {
	var w bytes.Buffer
	switch flags & sigHashMask {
	case SigHashSingle:
		if inputIdx >= len(t.outputs) {
			return script.NamedByteArray("hashOutputs", make([]byte, 32)), nil
		}
		if err := serializeOutput(&w, t.outputs[inputIdx]); err != nil {
			return nil, err
		}
	case SigHashNone:
		return script.NamedByteArray("hashOutputs", make([]byte, 32)), nil
	default:
		for _, output := range t.outputs {
			if err := serializeOutput(&w, output); err != nil {
				return nil, err
			}
		}
	}
	digest := chainhash.DoubleHashB(w.Bytes())
	return script.NamedByteArray("hashOutputs", digest), nil
}

// preimage assembles the BIP143-style sighash preimage for one input and one
// flag byte.  The preimage is built by concatenating named parts so that a
// debugger can expand the chain a signed message was derived from.
func (t *Tx) preimage(inputIdx int, flags SigHashFlags) (*script.ByteArray, error) {
	input := t.inputs[inputIdx]

	var outPoint bytes.Buffer
	serializeOutPoint(&outPoint, &input.PrevOut)

	rawLockScript, err := input.LockScript.Serialize()
	if err != nil {
		return nil, err
	}
	var scriptCode bytes.Buffer
	writeVarBytes(&scriptCode, rawLockScript)

	hashOutputs, err := t.hashOutputs(flags, inputIdx)
	if err != nil {
		return nil, err
	}

	result := le32("nVersion", uint32(t.version)).
		Concat(t.hashPrevouts(flags)).
		Concat(t.hashSequence(flags)).
		Concat(script.NamedByteArray("outpoint", outPoint.Bytes())).
		Concat(script.NamedByteArray("scriptCode", scriptCode.Bytes())).
		Concat(le64("value", uint64(input.Value))).
		Concat(le32("nSequence", input.Sequence)).
		Concat(hashOutputs).
		Concat(le32("nLockTime", t.lockTime)).
		Concat(le32("sighashType", uint32(flags)))

	return result.Named("preimage"), nil
}

// Preimages returns the sighash preimages for every input and each of the
// requested flag bytes, indexed [inputIdx][flagIdx].  The interpreter treats
// the result as opaque; it only hashes the bytes.
func (t *Tx) Preimages(flags []SigHashFlags) ([][]*script.ByteArray, error) {
	preimages := make([][]*script.ByteArray, len(t.inputs))
	for inputIdx := range t.inputs {
		preimages[inputIdx] = make([]*script.ByteArray, len(flags))
		for flagIdx, flag := range flags {
			preimage, err := t.preimage(inputIdx, flag)
			if err != nil {
				return nil, err
			}
			preimages[inputIdx][flagIdx] = preimage
		}
	}
	return preimages, nil
}
