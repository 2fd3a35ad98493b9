// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/bchsuite/bchscript/bchd/script"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.  The set is
// closed; every failure an evaluation can produce carries one of these
// codes.
const (
	// ErrStackEmpty is returned when an opcode pops from an empty stack.
	ErrStackEmpty ErrorCode = iota

	// ErrInvalidDataType is returned when a pop finds a value of a type
	// the opcode cannot coerce, including byte arrays that are not
	// minimally encoded integers.
	ErrInvalidDataType

	// ErrInvalidOpcode is returned when the op stream carries a byte that
	// was tagged invalid at parse time.
	ErrInvalidOpcode

	// ErrNotImplemented is returned when the dispatcher reaches an opcode
	// with no dedicated handler and no behavior table entry.
	ErrNotImplemented

	// ErrScriptFinished is returned when RunNextOp is called after the
	// instruction pointer passed the end of the lock script.
	ErrScriptFinished

	// ErrUnbalancedConditionals is returned for OP_ELSE or OP_ENDIF
	// without a matching OP_IF.
	ErrUnbalancedConditionals

	// ErrVerifyFailed is returned when OP_VERIFY, OP_NUMEQUALVERIFY or
	// OP_CHECKLOCKTIMEVERIFY observes a falsy condition.
	ErrVerifyFailed

	// ErrEqualVerifyFailed is returned when OP_EQUALVERIFY observes
	// unequal operands.
	ErrEqualVerifyFailed

	// ErrInvalidDepth is returned when the OP_PICK/OP_ROLL argument is
	// negative or deeper than the stack.
	ErrInvalidDepth

	// ErrInvalidInteger is returned on numeric overflow or an
	// out-of-range construction.
	ErrInvalidInteger

	// ErrInvalidConversion is returned when an integer cannot be
	// converted to an index.
	ErrInvalidConversion

	// ErrInvalidPubKey is returned when the ECC verifier reports an
	// invalid public key.
	ErrInvalidPubKey

	// ErrInvalidSignatureFormat is returned when the ECC verifier reports
	// a malformed signature.
	ErrInvalidSignatureFormat

	// ErrInvalidSignature is returned when a non-empty signature fails
	// validation.
	ErrInvalidSignature

	// ErrOpcodeMsg is returned for any other opcode-local failure, such
	// as division by zero or a byte length mismatch.
	ErrOpcodeMsg

	numErrorCodes
)

// errorCodeStrings houses the human-readable error code names.
var errorCodeStrings = map[ErrorCode]string{
	ErrStackEmpty:             "ErrStackEmpty",
	ErrInvalidDataType:        "ErrInvalidDataType",
	ErrInvalidOpcode:          "ErrInvalidOpcode",
	ErrNotImplemented:         "ErrNotImplemented",
	ErrScriptFinished:         "ErrScriptFinished",
	ErrUnbalancedConditionals: "ErrUnbalancedConditionals",
	ErrVerifyFailed:           "ErrVerifyFailed",
	ErrEqualVerifyFailed:      "ErrEqualVerifyFailed",
	ErrInvalidDepth:           "ErrInvalidDepth",
	ErrInvalidInteger:         "ErrInvalidInteger",
	ErrInvalidConversion:      "ErrInvalidConversion",
	ErrInvalidPubKey:          "ErrInvalidPubKey",
	ErrInvalidSignatureFormat: "ErrInvalidSignatureFormat",
	ErrInvalidSignature:       "ErrInvalidSignature",
	ErrOpcodeMsg:              "ErrOpcodeMsg",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script evaluation failure.  Besides the code and a
// one-line description, a variant carries the context needed to render a
// diagnostic: the offending opcode, the byte arrays involved, or an integer
// argument, depending on the code.
type Error struct {
	ErrorCode   ErrorCode
	Description string

	// Opcode is populated for ErrUnbalancedConditionals and ErrOpcodeMsg.
	Opcode script.Opcode

	// Bytes carries operand byte arrays: the pubkey for ErrInvalidPubKey,
	// the signature for ErrInvalidSignatureFormat, (msg, sig) for
	// ErrInvalidSignature, and both operands for ErrEqualVerifyFailed.
	Bytes []*script.ByteArray

	// Num carries the integer argument for ErrInvalidDepth and the raw
	// byte for ErrInvalidOpcode.
	Num int64
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// opcodeError creates an Error attributed to a specific opcode.
func opcodeError(c ErrorCode, code script.Opcode, desc string) Error {
	return Error{
		ErrorCode:   c,
		Description: fmt.Sprintf("%v: %s", code, desc),
		Opcode:      code,
	}
}

// IsErrorCode returns whether or not the provided error is a script error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
