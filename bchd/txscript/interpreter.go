// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/bchsuite/bchscript/bchd/bchec"
	"github.com/bchsuite/bchscript/bchd/script"
	"github.com/bchsuite/bchscript/bchd/wire"
)

// Interpreter is the virtual machine that evaluates a lock script against
// the data pushed by an unlocking script in the context of one transaction
// input.
//
// The transaction and the ECC verifier are shared read-only and may back any
// number of interpreters concurrently; the stacks are owned exclusively by
// one interpreter, which must be confined to a single goroutine.  An
// interpreter is not reusable after the evaluation completes.
type Interpreter struct {
	// The following fields are set when the interpreter is created and
	// must not be changed afterwards.
	//
	// tx identifies the transaction that contains the input whose lock
	// script is being executed.
	//
	// inputIdx identifies the input index within the transaction.
	//
	// lockScript and isP2SH are snapshotted from the input at
	// construction time.
	//
	// ecc performs signature verification for the checksig opcodes.
	tx         *wire.Tx
	inputIdx   int
	lockScript *script.Script
	isP2SH     bool
	ecc        bchec.Verifier

	// The following fields track the current execution state.
	//
	// stack and altStack are the two data stacks; the top of each is the
	// last element.
	//
	// execStack records the truth value of each nested conditional; the
	// machine is executing iff every entry is true.
	//
	// instructionPointer indexes the next op of the lock script.
	stack              []StackItem
	altStack           []StackItem
	execStack          []bool
	instructionPointer int

	logger *zap.Logger
}

// New returns an interpreter for the given input of a hashed transaction.
// The input must carry both its unlocking script and the lock script of the
// output it spends.
func New(tx *wire.Tx, inputIdx int, ecc bchec.Verifier) (*Interpreter, error) {
	if inputIdx < 0 || inputIdx >= len(tx.Inputs()) {
		return nil, fmt.Errorf("transaction input index %d is negative or >= %d",
			inputIdx, len(tx.Inputs()))
	}
	input := tx.Inputs()[inputIdx]
	if input.LockScript == nil {
		return nil, fmt.Errorf("input %d has no lock script", inputIdx)
	}
	if input.Script == nil {
		return nil, fmt.Errorf("input %d has no unlocking script", inputIdx)
	}

	return &Interpreter{
		tx:         tx,
		inputIdx:   inputIdx,
		lockScript: input.LockScript,
		isP2SH:     input.IsP2SH,
		ecc:        ecc,
		logger:     zap.NewNop(),
	}, nil
}

// SetLogger installs a logger used for per-step debug tracing.  Tracing has
// no effect on execution.
func (in *Interpreter) SetLogger(logger *zap.Logger) {
	in.logger = logger
}

// Stack returns a snapshot of the main stack, bottom first.
func (in *Interpreter) Stack() []StackItem {
	return append([]StackItem(nil), in.stack...)
}

// AltStack returns a snapshot of the alt stack, bottom first.
func (in *Interpreter) AltStack() []StackItem {
	return append([]StackItem(nil), in.altStack...)
}

// ExecStack returns a snapshot of the conditional execution stack.
func (in *Interpreter) ExecStack() []bool {
	return append([]bool(nil), in.execStack...)
}

// InstructionPointer returns the index of the next lock script op.
func (in *Interpreter) InstructionPointer() int {
	return in.instructionPointer
}

// IsFinished reports whether the instruction pointer has passed the last op
// of the lock script.
func (in *Interpreter) IsFinished() bool {
	return in.instructionPointer >= in.lockScript.Len()
}

// PushInputData executes the ops of the input's unlocking script, feeding
// the stack for the lock script.  For a pay-to-script-hash input the final
// push is the redeem script, which is consumed elsewhere, so it is skipped.
// The ops run through the regular dispatcher, so any opcode in the unlocking
// script produces the same errors it would in the lock script.
func (in *Interpreter) PushInputData() error {
	ops := in.tx.Inputs()[in.inputIdx].Script.Ops()
	if in.isP2SH && len(ops) > 0 {
		ops = ops[:len(ops)-1]
	}
	for i := range ops {
		if err := in.runOp(&ops[i]); err != nil {
			return err
		}
	}
	return nil
}

// RunNextOp executes one op of the lock script.  The instruction pointer is
// advanced only when the op succeeds, so a failing op can still be
// inspected.
func (in *Interpreter) RunNextOp() error {
	if in.IsFinished() {
		return scriptError(ErrScriptFinished,
			"attempt to step past the end of the lock script")
	}
	ops := in.lockScript.Ops()
	op := &ops[in.instructionPointer]
	if err := in.runOp(op); err != nil {
		return err
	}
	in.instructionPointer++

	if checked := in.logger.Check(zap.DebugLevel, "step"); checked != nil {
		checked.Write(
			zap.Int("ip", in.instructionPointer),
			zap.Int("stack_depth", len(in.stack)),
			zap.Int("alt_depth", len(in.altStack)),
		)
	}
	return nil
}

// Run drives the evaluation to completion and projects the bottom stack
// item to the final verdict.  The projection is looser than the boolean pop
// during execution: a byte array is true whenever it is non-empty.
func (in *Interpreter) Run() (bool, error) {
	for !in.IsFinished() {
		if err := in.RunNextOp(); err != nil {
			return false, err
		}
	}
	if len(in.stack) == 0 {
		return false, scriptError(ErrStackEmpty,
			"stack empty at end of script execution")
	}
	return in.stack[0].ToBool(), nil
}

// pop removes and returns the top item of the main stack.
func (in *Interpreter) pop() (StackItem, error) {
	if len(in.stack) == 0 {
		return StackItem{}, scriptError(ErrStackEmpty,
			"attempt to pop from an empty stack")
	}
	item := in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
	return item, nil
}

// popBool pops the top item coerced to a boolean.  Byte arrays do not
// coerce.
func (in *Interpreter) popBool() (bool, error) {
	item, err := in.pop()
	if err != nil {
		return false, err
	}
	switch item.Data.Kind() {
	case script.KindByteArray:
		return false, scriptError(ErrInvalidDataType,
			"cannot interpret byte array as boolean")
	case script.KindInteger:
		return item.Data.Integer() != 0, nil
	default:
		return item.Data.Boolean(), nil
	}
}

// popInt pops the top item coerced to a script number.  A byte array must
// be a minimally encoded number in range.
func (in *Interpreter) popInt() (script.Integer, error) {
	item, err := in.pop()
	if err != nil {
		return 0, err
	}
	switch item.Data.Kind() {
	case script.KindByteArray:
		num, err := script.DecodeInt(item.Data.Array().Data(), true)
		switch {
		case errors.Is(err, script.ErrNonMinimalNumber):
			return 0, scriptError(ErrInvalidDataType,
				"byte array is not a minimally encoded number")
		case err != nil:
			return 0, scriptError(ErrInvalidInteger, err.Error())
		}
		return num, nil
	case script.KindInteger:
		return item.Data.Integer(), nil
	default:
		if item.Data.Boolean() {
			return 1, nil
		}
		return 0, nil
	}
}

// popByteArray pops the top item coerced to a byte array using the
// canonical script encodings for numbers and booleans.
func (in *Interpreter) popByteArray() (*script.ByteArray, error) {
	item, err := in.pop()
	if err != nil {
		return nil, err
	}
	switch item.Data.Kind() {
	case script.KindByteArray:
		return item.Data.Array(), nil
	case script.KindInteger:
		return script.NewByteArray(script.EncodeInt(item.Data.Integer())), nil
	default:
		return script.NewByteArray(script.EncodeBool(item.Data.Boolean())), nil
	}
}

// popDepthToIdx pops a stack depth (0 = top) and converts it to an index
// into the stack slice.
func (in *Interpreter) popDepthToIdx() (int, error) {
	depth, err := in.popInt()
	if err != nil {
		return 0, err
	}
	if depth < 0 || int(depth) >= len(in.stack) {
		return 0, Error{
			ErrorCode:   ErrInvalidDepth,
			Description: fmt.Sprintf("invalid stack depth %d", int64(depth)),
			Num:         int64(depth),
		}
	}
	return len(in.stack) - 1 - int(depth), nil
}

// pushTaggedData pushes a value produced by the op, labeling and annotating
// the new slot.
func (in *Interpreter) pushTaggedData(op *script.TaggedOp, data script.StackValue) {
	in.pushTaggedDataIdx(op, data, 0)
}

// pushTaggedDataIdx pushes the idx'th value produced by the op.  The name
// comes from the op's pushed names; byte arrays additionally carry it as
// provenance.  The delta comes from the opcode's behavior table entry and
// defaults to added.
func (in *Interpreter) pushTaggedDataIdx(op *script.TaggedOp, data script.StackValue, idx int) {
	name := op.PushedName(idx)
	if data.Kind() == script.KindByteArray {
		data = script.ByteArrayValue(data.Array().Named(name))
	}

	delta := script.DeltaAdded
	switch op.Op.Kind() {
	case script.OpKindCode:
		if behavior, ok := script.BehaviorOf(op.Op.Code()); ok &&
			idx < len(behavior.Deltas) {

			delta = behavior.Deltas[idx]
		}
	case script.OpKindInvalid:
		delta = script.DeltaUntouched
	}

	in.stack = append(in.stack, StackItem{Data: data, Name: name, Delta: delta})
}

// runOp dispatches one op.  At the start of every step the deltas of all
// surviving items are reset so consumers can attribute changes to exactly
// this op; ops in a suppressed conditional branch are skipped without
// touching the stacks.
func (in *Interpreter) runOp(op *script.TaggedOp) error {
	for i := range in.stack {
		in.stack[i].Delta = script.DeltaUntouched
	}
	for i := range in.altStack {
		in.altStack[i].Delta = script.DeltaUntouched
	}

	isExecuted := true
	for _, entry := range in.execStack {
		if !entry {
			isExecuted = false
			break
		}
	}

	isConditional := op.Op.Kind() == script.OpKindCode &&
		(op.Op.Code() == script.OP_IF || op.Op.Code() == script.OP_ELSE ||
			op.Op.Code() == script.OP_ENDIF)
	if !isExecuted && !isConditional {
		return nil
	}

	switch op.Op.Kind() {
	case script.OpKindPushBoolean:
		in.pushTaggedData(op, script.BooleanValue(op.Op.Boolean()))
		return nil
	case script.OpKindPushInteger:
		in.pushTaggedData(op, script.IntegerValue(op.Op.Integer()))
		return nil
	case script.OpKindPushByteArray:
		in.pushTaggedData(op, script.ByteArrayValue(op.Op.Array()))
		return nil
	case script.OpKindInvalid:
		return Error{
			ErrorCode:   ErrInvalidOpcode,
			Description: fmt.Sprintf("invalid opcode 0x%02x", op.Op.InvalidByte()),
			Num:         int64(op.Op.InvalidByte()),
		}
	default:
		return in.runOpcode(op, op.Op.Code(), isExecuted)
	}
}

// addChecked returns a + b or ErrInvalidInteger on overflow of the script
// numeric range.
func addChecked(a, b script.Integer) (script.Integer, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, scriptError(ErrInvalidInteger,
			fmt.Sprintf("integer overflow computing %d + %d", int64(a), int64(b)))
	}
	return a + b, nil
}

// subChecked returns a - b or ErrInvalidInteger on overflow.
func subChecked(a, b script.Integer) (script.Integer, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, scriptError(ErrInvalidInteger,
			fmt.Sprintf("integer overflow computing %d - %d", int64(a), int64(b)))
	}
	return a - b, nil
}

// negChecked returns -a or ErrInvalidInteger for the one unrepresentable
// case.
func negChecked(a script.Integer) (script.Integer, error) {
	if a == math.MinInt64 {
		return 0, scriptError(ErrInvalidInteger,
			fmt.Sprintf("integer overflow negating %d", int64(a)))
	}
	return -a, nil
}

// runOpcode performs execution of a single opcode.
func (in *Interpreter) runOpcode(op *script.TaggedOp, opcode script.Opcode,
	isExecuted bool) error {

	switch opcode {
	case script.OP_PICK:
		itemIdx, err := in.popDepthToIdx()
		if err != nil {
			return err
		}
		item := in.stack[itemIdx]
		item.Delta = script.DeltaAdded
		in.stack = append(in.stack, item)

	case script.OP_ROLL:
		itemIdx, err := in.popDepthToIdx()
		if err != nil {
			return err
		}
		for i := itemIdx; i < len(in.stack); i++ {
			in.stack[i].Delta = script.DeltaMovedIndirectly
		}
		item := in.stack[itemIdx]
		in.stack = append(in.stack[:itemIdx], in.stack[itemIdx+1:]...)
		item.Delta = script.DeltaMoved
		in.stack = append(in.stack, item)

	case script.OP_TOALTSTACK:
		item, err := in.pop()
		if err != nil {
			return err
		}
		in.altStack = append(in.altStack, item)

	case script.OP_FROMALTSTACK:
		if len(in.altStack) == 0 {
			return scriptError(ErrStackEmpty,
				"attempt to pop from an empty alt stack")
		}
		item := in.altStack[len(in.altStack)-1]
		in.altStack = in.altStack[:len(in.altStack)-1]
		in.pushTaggedData(op, item.Data)

	case script.OP_CAT:
		first, err := in.popByteArray()
		if err != nil {
			return err
		}
		second, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(second.Concat(first)))

	case script.OP_SPLIT:
		splitIdx, err := in.popInt()
		if err != nil {
			return err
		}
		if splitIdx < 0 {
			return scriptError(ErrInvalidConversion,
				fmt.Sprintf("negative split index %d", int64(splitIdx)))
		}
		top, err := in.popByteArray()
		if err != nil {
			return err
		}
		left, right, err := top.Split(int(splitIdx))
		if err != nil {
			return opcodeError(ErrOpcodeMsg, script.OP_SPLIT, err.Error())
		}
		in.pushTaggedDataIdx(op, script.ByteArrayValue(left), 0)
		in.pushTaggedDataIdx(op, script.ByteArrayValue(right), 1)

	case script.OP_NUM2BIN:
		nBytes, err := in.popInt()
		if err != nil {
			return err
		}
		num, err := in.popInt()
		if err != nil {
			return err
		}
		encoded, err := script.IntToBytesWidth(num, nBytes)
		if err != nil {
			return opcodeError(ErrOpcodeMsg, script.OP_NUM2BIN, err.Error())
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.NewByteArray(encoded)))

	case script.OP_BIN2NUM:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		num, err := script.DecodeInt(array.Data(), false)
		if err != nil {
			return scriptError(ErrInvalidInteger, err.Error())
		}
		in.pushTaggedData(op, script.IntegerValue(num))

	case script.OP_SIZE:
		if len(in.stack) == 0 {
			return scriptError(ErrStackEmpty,
				"attempt to read the top of an empty stack")
		}
		top := in.stack[len(in.stack)-1].Data
		if top.Kind() != script.KindByteArray {
			return scriptError(ErrInvalidDataType,
				"OP_SIZE requires a byte array on top of the stack")
		}
		in.pushTaggedData(op, script.IntegerValue(script.Integer(top.Array().Len())))

	case script.OP_SHA1:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.Sha1(array)))

	case script.OP_RIPEMD160:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.Ripemd160(array)))

	case script.OP_SHA256:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.Sha256(array)))

	case script.OP_HASH160:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.Hash160(array)))

	case script.OP_HASH256:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.Sha256d(array)))

	case script.OP_EQUAL, script.OP_EQUALVERIFY:
		first, err := in.popByteArray()
		if err != nil {
			return err
		}
		second, err := in.popByteArray()
		if err != nil {
			return err
		}
		equal := bytes.Equal(first.Data(), second.Data())
		if opcode == script.OP_EQUALVERIFY {
			if !equal {
				return Error{
					ErrorCode:   ErrEqualVerifyFailed,
					Description: "OP_EQUALVERIFY operands differ",
					Bytes:       []*script.ByteArray{first, second},
				}
			}
		} else {
			in.pushTaggedData(op, script.BooleanValue(equal))
		}

	case script.OP_NUMEQUAL, script.OP_NUMEQUALVERIFY:
		first, err := in.popInt()
		if err != nil {
			return err
		}
		second, err := in.popInt()
		if err != nil {
			return err
		}
		equal := first == second
		if opcode == script.OP_NUMEQUALVERIFY {
			if !equal {
				return scriptError(ErrVerifyFailed,
					"OP_NUMEQUALVERIFY operands differ")
			}
		} else {
			in.pushTaggedData(op, script.BooleanValue(equal))
		}

	case script.OP_NOT:
		boolean, err := in.popBool()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.BooleanValue(!boolean))

	case script.OP_0NOTEQUAL:
		num, err := in.popInt()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.BooleanValue(num != 0))

	case script.OP_LESSTHAN, script.OP_LESSTHANOREQUAL,
		script.OP_GREATERTHAN, script.OP_GREATERTHANOREQUAL:

		// b is popped first; comparisons evaluate a OP b.
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		var result bool
		switch opcode {
		case script.OP_LESSTHAN:
			result = a < b
		case script.OP_LESSTHANOREQUAL:
			result = a <= b
		case script.OP_GREATERTHAN:
			result = a > b
		default:
			result = a >= b
		}
		in.pushTaggedData(op, script.BooleanValue(result))

	case script.OP_MIN, script.OP_MAX:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		result := a
		if (opcode == script.OP_MIN) == (b < a) {
			result = b
		}
		in.pushTaggedData(op, script.IntegerValue(result))

	case script.OP_WITHIN:
		max, err := in.popInt()
		if err != nil {
			return err
		}
		min, err := in.popInt()
		if err != nil {
			return err
		}
		value, err := in.popInt()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.BooleanValue(min <= value && value < max))

	case script.OP_BOOLAND, script.OP_BOOLOR:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		var result bool
		if opcode == script.OP_BOOLAND {
			result = a != 0 && b != 0
		} else {
			result = a != 0 || b != 0
		}
		in.pushTaggedData(op, script.BooleanValue(result))

	case script.OP_1ADD, script.OP_1SUB:
		num, err := in.popInt()
		if err != nil {
			return err
		}
		var result script.Integer
		if opcode == script.OP_1ADD {
			result, err = addChecked(num, 1)
		} else {
			result, err = subChecked(num, 1)
		}
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.IntegerValue(result))

	case script.OP_NEGATE:
		num, err := in.popInt()
		if err != nil {
			return err
		}
		result, err := negChecked(num)
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.IntegerValue(result))

	case script.OP_ABS:
		num, err := in.popInt()
		if err != nil {
			return err
		}
		if num < 0 {
			if num, err = negChecked(num); err != nil {
				return err
			}
		}
		in.pushTaggedData(op, script.IntegerValue(num))

	case script.OP_ADD:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		result, err := addChecked(a, b)
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.IntegerValue(result))

	case script.OP_SUB:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		result, err := subChecked(a, b)
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.IntegerValue(result))

	case script.OP_DIV:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		if b == 0 {
			return opcodeError(ErrOpcodeMsg, script.OP_DIV, "Division by 0")
		}
		if a == math.MinInt64 && b == -1 {
			return scriptError(ErrInvalidInteger,
				fmt.Sprintf("integer overflow computing %d / %d", int64(a), int64(b)))
		}
		in.pushTaggedData(op, script.IntegerValue(a/b))

	case script.OP_MOD:
		b, err := in.popInt()
		if err != nil {
			return err
		}
		a, err := in.popInt()
		if err != nil {
			return err
		}
		if b == 0 {
			return opcodeError(ErrOpcodeMsg, script.OP_MOD, "Modulo by 0")
		}
		if a == math.MinInt64 && b == -1 {
			in.pushTaggedData(op, script.IntegerValue(0))
			break
		}
		in.pushTaggedData(op, script.IntegerValue(a%b))

	case script.OP_AND, script.OP_OR, script.OP_XOR:
		first, err := in.popByteArray()
		if err != nil {
			return err
		}
		second, err := in.popByteArray()
		if err != nil {
			return err
		}
		if first.Len() != second.Len() {
			return opcodeError(ErrOpcodeMsg, opcode, fmt.Sprintf(
				"byte arrays are not the same length: %d vs %d",
				second.Len(), first.Len()))
		}
		result := make([]byte, first.Len())
		for i := range result {
			switch opcode {
			case script.OP_AND:
				result[i] = second.Data()[i] & first.Data()[i]
			case script.OP_OR:
				result[i] = second.Data()[i] | first.Data()[i]
			default:
				result[i] = second.Data()[i] ^ first.Data()[i]
			}
		}
		in.pushTaggedData(op, script.ByteArrayValue(script.NewByteArray(result)))

	case script.OP_REVERSEBYTES:
		array, err := in.popByteArray()
		if err != nil {
			return err
		}
		in.pushTaggedData(op, script.ByteArrayValue(array.Reverse()))

	case script.OP_IF:
		// A suppressed branch must not consume data, so the condition is
		// only popped when the machine is executing.
		condition := false
		if isExecuted {
			var err error
			if condition, err = in.popBool(); err != nil {
				return err
			}
		}
		in.execStack = append(in.execStack, condition)

	case script.OP_ELSE:
		if len(in.execStack) == 0 {
			return opcodeError(ErrUnbalancedConditionals, script.OP_ELSE,
				"OP_ELSE without matching OP_IF")
		}
		in.execStack[len(in.execStack)-1] = !in.execStack[len(in.execStack)-1]

	case script.OP_ENDIF:
		if len(in.execStack) == 0 {
			return opcodeError(ErrUnbalancedConditionals, script.OP_ENDIF,
				"OP_ENDIF without matching OP_IF")
		}
		in.execStack = in.execStack[:len(in.execStack)-1]

	case script.OP_VERIFY:
		item, err := in.pop()
		if err != nil {
			return err
		}
		if !item.ToBool() {
			return scriptError(ErrVerifyFailed, "OP_VERIFY failed")
		}

	case script.OP_CHECKSIG, script.OP_CHECKSIGVERIFY,
		script.OP_CHECKDATASIG, script.OP_CHECKDATASIGVERIFY:

		return in.checkSig(op, opcode)

	case script.OP_CODESEPARATOR:
		// The preimage interface is pre-computed per input and flag, so
		// separator scope is not modeled at this level.

	case script.OP_CHECKLOCKTIMEVERIFY:
		lockTime, err := in.popInt()
		if err != nil {
			return err
		}
		if lockTime < 0 || uint64(in.tx.LockTime()) < uint64(lockTime) {
			return scriptError(ErrVerifyFailed, fmt.Sprintf(
				"transaction lock time %d is below required %d",
				in.tx.LockTime(), int64(lockTime)))
		}
		// The operand stays available to the rest of the script.
		in.pushTaggedData(op, script.IntegerValue(lockTime))

	case script.OP_CHECKSEQUENCEVERIFY:
		// Deliberately a no-op hole; relative lock time semantics need a
		// decision before production use.

	case script.OP_NOP:

	default:
		return in.runTableOpcode(opcode)
	}
	return nil
}

// runTableOpcode executes a pure permutation opcode from its behavior table
// entry: the consumed window is drained off the top of the stack and
// re-pushed according to the output order, cloning repeated indices.
func (in *Interpreter) runTableOpcode(opcode script.Opcode) error {
	behavior, ok := script.BehaviorOf(opcode)
	if !ok || behavior.OutputOrder == nil {
		return scriptError(ErrNotImplemented,
			fmt.Sprintf("opcode %v is not implemented", opcode))
	}
	if len(in.stack) < behavior.InputArity {
		return scriptError(ErrStackEmpty, fmt.Sprintf(
			"%v needs %d stack items, have %d",
			opcode, behavior.InputArity, len(in.stack)))
	}

	window := make([]StackItem, behavior.InputArity)
	copy(window, in.stack[len(in.stack)-behavior.InputArity:])
	in.stack = in.stack[:len(in.stack)-behavior.InputArity]

	for i, srcIdx := range behavior.OutputOrder {
		item := window[srcIdx]
		item.Delta = behavior.Deltas[i]
		in.stack = append(in.stack, item)
	}
	return nil
}

// checkSig implements the four signature opcodes.  For the transaction
// variants the last byte of the signature selects the sighash flags and the
// signed message is the double SHA-256 of the input's preimage; for the data
// variants the message is the single SHA-256 of explicit data.
func (in *Interpreter) checkSig(op *script.TaggedOp, opcode script.Opcode) error {
	pubKey, err := in.popByteArray()
	if err != nil {
		return err
	}

	var msg, sigSer *script.ByteArray
	switch opcode {
	case script.OP_CHECKSIG, script.OP_CHECKSIGVERIFY:
		sig, err := in.popByteArray()
		if err != nil {
			return err
		}
		sigBytes := sig.Data()
		flags := wire.DefaultSigHashFlags
		rawSig := sigBytes
		if len(sigBytes) > 0 {
			flags = wire.SigHashFlags(sigBytes[len(sigBytes)-1])
			rawSig = sigBytes[:len(sigBytes)-1]
		}

		preimages, err := in.tx.Preimages([]wire.SigHashFlags{flags})
		if err != nil {
			return opcodeError(ErrOpcodeMsg, opcode, err.Error())
		}
		msg = script.Sha256d(preimages[in.inputIdx][0])
		sigSer = sig.Apply(rawSig, script.FunctionToDataSig)

	default:
		msgData, err := in.popByteArray()
		if err != nil {
			return err
		}
		msg = script.Sha256(msgData)
		if sigSer, err = in.popByteArray(); err != nil {
			return err
		}
	}

	validity, err := in.ecc.Verify(pubKey.Data(), msg.Data(), sigSer.Data())
	switch {
	case errors.Is(err, bchec.ErrInvalidPubKey):
		return Error{
			ErrorCode:   ErrInvalidPubKey,
			Description: "invalid public key",
			Bytes:       []*script.ByteArray{pubKey},
		}
	case errors.Is(err, bchec.ErrInvalidSignatureFormat):
		return Error{
			ErrorCode:   ErrInvalidSignatureFormat,
			Description: "invalid signature format",
			Bytes:       []*script.ByteArray{sigSer},
		}
	case err != nil:
		return opcodeError(ErrOpcodeMsg, opcode, err.Error())
	}

	if opcode == script.OP_CHECKSIG || opcode == script.OP_CHECKDATASIG {
		if !validity && sigSer.Len() > 0 {
			// An empty signature legitimately means "false but
			// well-formed"; a non-empty one that fails to validate is an
			// error.
			return Error{
				ErrorCode:   ErrInvalidSignature,
				Description: "non-empty signature failed validation",
				Bytes:       []*script.ByteArray{msg, sigSer},
			}
		}
		in.pushTaggedData(op, script.BooleanValue(validity))
		return nil
	}

	if !validity {
		return Error{
			ErrorCode:   ErrInvalidSignature,
			Description: "signature failed validation",
			Bytes:       []*script.ByteArray{msg, sigSer},
		}
	}
	return nil
}
