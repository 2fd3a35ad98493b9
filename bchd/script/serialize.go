// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"encoding/binary"
	"fmt"
)

// dataPush returns the minimal raw-script encoding for a data push.  The
// smallest possible opcode is always used: OP_0 for the empty push, the
// small-integer opcodes for single bytes they can represent, direct pushes
// up to 75 bytes, and the OP_PUSHDATA family beyond that.
func dataPush(data []byte) []byte {
	switch {
	case len(data) == 0:
		return []byte{byte(OP_0)}
	case len(data) == 1 && data[0] >= 1 && data[0] <= 16:
		return []byte{byte(OP_1) + data[0] - 1}
	case len(data) == 1 && data[0] == 0x81:
		return []byte{byte(OP_1NEGATE)}
	case len(data) <= 75:
		return append([]byte{byte(len(data))}, data...)
	case len(data) <= 0xff:
		return append([]byte{byte(OP_PUSHDATA1), byte(len(data))}, data...)
	case len(data) <= 0xffff:
		prefix := []byte{byte(OP_PUSHDATA2), 0, 0}
		binary.LittleEndian.PutUint16(prefix[1:], uint16(len(data)))
		return append(prefix, data...)
	default:
		prefix := []byte{byte(OP_PUSHDATA4), 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(prefix[1:], uint32(len(data)))
		return append(prefix, data...)
	}
}

// SerializeOp returns the raw script bytes for a single op.
func SerializeOp(op Op) ([]byte, error) {
	switch op.Kind() {
	case OpKindCode:
		return []byte{byte(op.Code())}, nil
	case OpKindPushBoolean:
		return dataPush(EncodeBool(op.Boolean())), nil
	case OpKindPushInteger:
		return dataPush(EncodeInt(op.Integer())), nil
	case OpKindPushByteArray:
		return dataPush(op.Array().Data()), nil
	case OpKindInvalid:
		return []byte{op.InvalidByte()}, nil
	default:
		return nil, fmt.Errorf("unknown op kind %d", op.Kind())
	}
}

// SerializeOps returns the raw script bytes for an op stream.
func SerializeOps(ops []TaggedOp) ([]byte, error) {
	var raw []byte
	for i := range ops {
		opBytes, err := SerializeOp(ops[i].Op)
		if err != nil {
			return nil, err
		}
		raw = append(raw, opBytes...)
	}
	return raw, nil
}

// Serialize returns the raw script bytes for the script.
func (s *Script) Serialize() ([]byte, error) {
	return SerializeOps(s.ops)
}
