// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bchsuite/bchscript/bchd/script"
)

// OutPoint identifies a previous transaction output.
type OutPoint struct {
	TxHash chainhash.Hash
	Vout   uint32
}

// TxInput is one input of a transaction.  Script is the unlocking script
// supplied by the spender; LockScript is the script of the output being
// spent and must be populated for the input to be interpretable.  Value is
// the amount of the spent output in satoshi and participates in the sighash
// preimage.
type TxInput struct {
	PrevOut    OutPoint
	Script     *script.Script
	Sequence   uint32
	LockScript *script.Script
	Value      int64
	IsP2SH     bool
}

// TxOutput is one output of a transaction.
type TxOutput struct {
	Value  uint64
	Script *script.Script
}

// UnhashedTx is a transaction under construction.  Hashed freezes it into a
// Tx once all inputs and outputs are in place.
type UnhashedTx struct {
	Version  int32
	Inputs   []*TxInput
	Outputs  []*TxOutput
	LockTime uint32
}

// Tx is a hashed, read-only transaction.  It may be shared by any number of
// interpreters concurrently.
type Tx struct {
	version  int32
	lockTime uint32
	inputs   []*TxInput
	outputs  []*TxOutput
	raw      []byte
	hash     chainhash.Hash
}

// Hashed serializes the transaction, derives its hash, and flags
// pay-to-script-hash inputs from the form of their lock scripts.
func (u *UnhashedTx) Hashed() (*Tx, error) {
	for _, input := range u.Inputs {
		if input.LockScript != nil {
			input.IsP2SH = script.IsPayToScriptHash(input.LockScript)
		}
	}

	raw, err := serializeTx(u.Version, u.Inputs, u.Outputs, u.LockTime)
	if err != nil {
		return nil, err
	}

	return &Tx{
		version:  u.Version,
		lockTime: u.LockTime,
		inputs:   u.Inputs,
		outputs:  u.Outputs,
		raw:      raw,
		hash:     chainhash.DoubleHashH(raw),
	}, nil
}

// Version returns the transaction version.
func (t *Tx) Version() int32 {
	return t.version
}

// LockTime returns the transaction lock time.
func (t *Tx) LockTime() uint32 {
	return t.lockTime
}

// Inputs returns the transaction inputs.  Callers must treat them as
// read-only.
func (t *Tx) Inputs() []*TxInput {
	return t.inputs
}

// Outputs returns the transaction outputs.  Callers must treat them as
// read-only.
func (t *Tx) Outputs() []*TxOutput {
	return t.outputs
}

// Hash returns the transaction hash (double SHA-256 of the serialization).
func (t *Tx) Hash() chainhash.Hash {
	return t.hash
}

// Serialize returns the raw transaction bytes.
func (t *Tx) Serialize() []byte {
	return t.raw
}

// writeVarInt writes a bitcoin variable-length integer.
func writeVarInt(w *bytes.Buffer, n uint64) {
	switch {
	case n < 0xfd:
		w.WriteByte(byte(n))
	case n <= 0xffff:
		w.WriteByte(0xfd)
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(n))
		w.Write(buf[:])
	case n <= 0xffffffff:
		w.WriteByte(0xfe)
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n))
		w.Write(buf[:])
	default:
		w.WriteByte(0xff)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		w.Write(buf[:])
	}
}

// writeVarBytes writes a varint-prefixed byte string.
func writeVarBytes(w *bytes.Buffer, b []byte) {
	writeVarInt(w, uint64(len(b)))
	w.Write(b)
}

// serializeOutPoint writes the 36-byte outpoint.
func serializeOutPoint(w *bytes.Buffer, prevOut *OutPoint) {
	w.Write(prevOut.TxHash[:])
	var vout [4]byte
	binary.LittleEndian.PutUint32(vout[:], prevOut.Vout)
	w.Write(vout[:])
}

// serializeOutput writes the 8-byte value and varint-prefixed script of one
// output.
func serializeOutput(w *bytes.Buffer, output *TxOutput) error {
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], output.Value)
	w.Write(value[:])

	rawScript, err := output.Script.Serialize()
	if err != nil {
		return err
	}
	writeVarBytes(w, rawScript)
	return nil
}

// serializeTx writes the canonical transaction wire format.
func serializeTx(version int32, inputs []*TxInput, outputs []*TxOutput,
	lockTime uint32) ([]byte, error) {

	var w bytes.Buffer

	var ver [4]byte
	binary.LittleEndian.PutUint32(ver[:], uint32(version))
	w.Write(ver[:])

	writeVarInt(&w, uint64(len(inputs)))
	for i, input := range inputs {
		if input.Script == nil {
			return nil, fmt.Errorf("input %d has no unlocking script", i)
		}
		serializeOutPoint(&w, &input.PrevOut)
		rawScript, err := input.Script.Serialize()
		if err != nil {
			return nil, err
		}
		writeVarBytes(&w, rawScript)

		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], input.Sequence)
		w.Write(seq[:])
	}

	writeVarInt(&w, uint64(len(outputs)))
	for _, output := range outputs {
		if err := serializeOutput(&w, output); err != nil {
			return nil, err
		}
	}

	var lock [4]byte
	binary.LittleEndian.PutUint32(lock[:], lockTime)
	w.Write(lock[:])

	return w.Bytes(), nil
}
