// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"encoding/hex"
	"fmt"
)

// Function tags how a byte array was derived from its preimage arrays.  The
// tag is debugger metadata only.
type Function int

// The known byte array derivations.
const (
	FunctionPlain Function = iota
	FunctionConcat
	FunctionSlice
	FunctionReverse
	FunctionToDataSig
	FunctionSha1
	FunctionRipemd160
	FunctionSha256
	FunctionHash160
	FunctionHash256
	FunctionSerialize
)

// functionStrings houses the human-readable function names.
var functionStrings = map[Function]string{
	FunctionPlain:     "Plain",
	FunctionConcat:    "Concat",
	FunctionSlice:     "Slice",
	FunctionReverse:   "Reverse",
	FunctionToDataSig: "ToDataSig",
	FunctionSha1:      "Sha1",
	FunctionRipemd160: "Ripemd160",
	FunctionSha256:    "Sha256",
	FunctionHash160:   "Hash160",
	FunctionHash256:   "Hash256",
	FunctionSerialize: "Serialize",
}

// String returns the function tag as a human-readable name.
func (f Function) String() string {
	if s, ok := functionStrings[f]; ok {
		return s
	}
	return "Unknown"
}

// ByteArray is an immutable byte sequence carrying optional provenance: a
// symbolic name, the function that derived it, and the array(s) it was
// derived from.  The preimage references form a DAG; provenance is threaded
// through operations but never influences execution results.
//
// The backing bytes must not be mutated after construction.
type ByteArray struct {
	data     []byte
	name     string
	function Function
	preimage []*ByteArray
}

// NewByteArray returns a plain byte array with no provenance.
func NewByteArray(data []byte) *ByteArray {
	return &ByteArray{data: data}
}

// NamedByteArray returns a plain byte array carrying a symbolic name.
func NamedByteArray(name string, data []byte) *ByteArray {
	return &ByteArray{data: data, name: name}
}

// Data returns the backing bytes.  Callers must treat them as read-only.
func (a *ByteArray) Data() []byte {
	return a.data
}

// Len returns the number of bytes.
func (a *ByteArray) Len() int {
	return len(a.data)
}

// Hex returns the bytes as a lowercase hex string.
func (a *ByteArray) Hex() string {
	return hex.EncodeToString(a.data)
}

// Name returns the symbolic name, or the empty string when unnamed.
func (a *ByteArray) Name() string {
	return a.name
}

// Function returns the derivation tag.
func (a *ByteArray) Function() Function {
	return a.function
}

// Preimage returns the arrays this one was derived from, or nil.
func (a *ByteArray) Preimage() []*ByteArray {
	return a.preimage
}

// HasPreimage reports whether the array records any parent arrays.
func (a *ByteArray) HasPreimage() bool {
	return len(a.preimage) > 0
}

// Named returns a copy of the array carrying the given name (which may be
// empty to clear it).  The data and provenance are shared.
func (a *ByteArray) Named(name string) *ByteArray {
	clone := *a
	clone.name = name
	return &clone
}

// Concat returns the concatenation a ++ other, recording both operands as
// the preimage.
func (a *ByteArray) Concat(other *ByteArray) *ByteArray {
	data := make([]byte, 0, len(a.data)+len(other.data))
	data = append(data, a.data...)
	data = append(data, other.data...)
	return &ByteArray{
		data:     data,
		function: FunctionConcat,
		preimage: []*ByteArray{a, other},
	}
}

// Split cuts the array at idx, returning the left part (bytes [0, idx)) and
// the right part (bytes [idx, len)).  Both halves record the source array as
// their preimage.
func (a *ByteArray) Split(idx int) (*ByteArray, *ByteArray, error) {
	if idx < 0 || idx > len(a.data) {
		return nil, nil, fmt.Errorf(
			"invalid split index %d for array of length %d", idx, len(a.data))
	}
	left := &ByteArray{
		data:     a.data[:idx],
		function: FunctionSlice,
		preimage: []*ByteArray{a},
	}
	right := &ByteArray{
		data:     a.data[idx:],
		function: FunctionSlice,
		preimage: []*ByteArray{a},
	}
	return left, right, nil
}

// Apply returns a new array holding data derived from this one via the given
// function, recording this array as the preimage.
func (a *ByteArray) Apply(data []byte, function Function) *ByteArray {
	return &ByteArray{
		data:     data,
		function: function,
		preimage: []*ByteArray{a},
	}
}

// Reverse returns the byte-reversed array tagged with FunctionReverse.
func (a *ByteArray) Reverse() *ByteArray {
	reversed := make([]byte, len(a.data))
	for i, b := range a.data {
		reversed[len(a.data)-1-i] = b
	}
	return a.Apply(reversed, FunctionReverse)
}
