// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

// Integer is a script number.  Script numbers are signed 64-bit values with
// a sign-magnitude little-endian byte encoding (see EncodeInt).
type Integer int64

// StackItemDelta annotates how a stack slot changed during the most recent
// interpreter step.  Deltas are transient debugger metadata and never affect
// execution semantics.
type StackItemDelta int

// The possible per-slot annotations.
const (
	DeltaUntouched StackItemDelta = iota
	DeltaAdded
	DeltaRemoved
	DeltaMoved
	DeltaMovedIndirectly
)

// deltaStrings houses the human-readable delta names.
var deltaStrings = map[StackItemDelta]string{
	DeltaUntouched:       "Untouched",
	DeltaAdded:           "Added",
	DeltaRemoved:         "Removed",
	DeltaMoved:           "Moved",
	DeltaMovedIndirectly: "MovedIndirectly",
}

// String returns the delta as a human-readable name.
func (d StackItemDelta) String() string {
	if s, ok := deltaStrings[d]; ok {
		return s
	}
	return "Unknown"
}

// ValueKind identifies which variant a StackValue holds.
type ValueKind int

// The three stack value variants.
const (
	KindInteger ValueKind = iota
	KindBoolean
	KindByteArray
)

// StackValue is the polymorphic value the interpreter pushes onto and pops
// from its stacks.  Exactly one variant is populated; booleans are kept
// distinct from the integers 0 and 1 until an opcode coerces them.
type StackValue struct {
	kind    ValueKind
	num     Integer
	boolean bool
	array   *ByteArray
}

// IntegerValue returns a StackValue holding a script number.
func IntegerValue(num Integer) StackValue {
	return StackValue{kind: KindInteger, num: num}
}

// BooleanValue returns a StackValue holding a boolean.
func BooleanValue(boolean bool) StackValue {
	return StackValue{kind: KindBoolean, boolean: boolean}
}

// ByteArrayValue returns a StackValue holding a byte array.
func ByteArrayValue(array *ByteArray) StackValue {
	return StackValue{kind: KindByteArray, array: array}
}

// Kind returns which variant the value holds.
func (v StackValue) Kind() ValueKind {
	return v.kind
}

// Integer returns the held script number.  Only valid when Kind is
// KindInteger.
func (v StackValue) Integer() Integer {
	return v.num
}

// Boolean returns the held boolean.  Only valid when Kind is KindBoolean.
func (v StackValue) Boolean() bool {
	return v.boolean
}

// Array returns the held byte array.  Only valid when Kind is KindByteArray.
func (v StackValue) Array() *ByteArray {
	return v.array
}

// ToBool projects the value to a boolean the way the final script verdict
// does: integers are true when non-zero, byte arrays are true when
// non-empty.  Unlike the boolean pop during execution this projection does
// not require minimal encoding.
func (v StackValue) ToBool() bool {
	switch v.kind {
	case KindInteger:
		return v.num != 0
	case KindBoolean:
		return v.boolean
	default:
		return v.array.Len() > 0
	}
}
