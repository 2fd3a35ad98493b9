// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bchsuite/bchscript/bchd/script"
)

// The op type discriminators used in the JSON form.
const (
	opTypeCode      = "code"
	opTypeInt       = "int"
	opTypeBool      = "bool"
	opTypeByteArray = "bytearray"
	opTypeInvalid   = "invalid"
)

type srcSnippetJSON struct {
	MaxWidth uint32 `json:"max_width"`
	Code     string `json:"code"`
}

type opJSON struct {
	Type string `json:"type"`

	Code    string `json:"code,omitempty"`
	Int     *int64 `json:"int,omitempty"`
	Bool    *bool  `json:"bool,omitempty"`
	Hex     *string `json:"hex,omitempty"`
	Invalid *byte  `json:"invalid,omitempty"`

	PushedNames    []string `json:"pushed_names,omitempty"`
	AltPushedNames []string `json:"alt_pushed_names,omitempty"`

	SrcFile   string           `json:"src_file,omitempty"`
	SrcLine   uint32           `json:"src_line,omitempty"`
	SrcColumn uint32           `json:"src_column,omitempty"`
	SrcCode   []srcSnippetJSON `json:"src_code,omitempty"`
}

type txInputJSON struct {
	PrevTxHash string   `json:"prev_tx_hash"`
	PrevVout   uint32   `json:"prev_vout"`
	Script     []opJSON `json:"script"`
	Sequence   uint32   `json:"sequence"`
	LockScript []opJSON `json:"lock_script,omitempty"`
	Value      int64    `json:"value"`
}

type txOutputJSON struct {
	Value  uint64   `json:"value"`
	Script []opJSON `json:"script"`
}

type txJSON struct {
	Version  int32          `json:"version"`
	Inputs   []txInputJSON  `json:"inputs"`
	Outputs  []txOutputJSON `json:"outputs"`
	LockTime uint32         `json:"lock_time"`
}

// opToJSON converts one tagged op to its JSON form.
func opToJSON(op *script.TaggedOp) opJSON {
	result := opJSON{
		PushedNames:    op.PushedNames,
		AltPushedNames: op.AltPushedNames,
		SrcFile:        op.SrcFile,
		SrcLine:        op.SrcLine,
		SrcColumn:      op.SrcColumn,
	}
	for _, snippet := range op.SrcCode {
		result.SrcCode = append(result.SrcCode, srcSnippetJSON{
			MaxWidth: snippet.MaxWidth,
			Code:     snippet.Code,
		})
	}

	switch op.Op.Kind() {
	case script.OpKindCode:
		result.Type = opTypeCode
		result.Code = op.Op.Code().String()
	case script.OpKindPushInteger:
		result.Type = opTypeInt
		num := int64(op.Op.Integer())
		result.Int = &num
	case script.OpKindPushBoolean:
		result.Type = opTypeBool
		boolean := op.Op.Boolean()
		result.Bool = &boolean
	case script.OpKindPushByteArray:
		result.Type = opTypeByteArray
		hexStr := op.Op.Array().Hex()
		result.Hex = &hexStr
	case script.OpKindInvalid:
		result.Type = opTypeInvalid
		raw := op.Op.InvalidByte()
		result.Invalid = &raw
	}
	return result
}

// opFromJSON converts one JSON op back to a tagged op.
func opFromJSON(in *opJSON) (script.TaggedOp, error) {
	result := script.TaggedOp{
		PushedNames:    in.PushedNames,
		AltPushedNames: in.AltPushedNames,
		SrcFile:        in.SrcFile,
		SrcLine:        in.SrcLine,
		SrcColumn:      in.SrcColumn,
	}
	for _, snippet := range in.SrcCode {
		result.SrcCode = append(result.SrcCode, script.SrcSnippet{
			MaxWidth: snippet.MaxWidth,
			Code:     snippet.Code,
		})
	}

	switch in.Type {
	case opTypeCode:
		code, ok := script.ParseOpcode(in.Code)
		if !ok {
			return result, fmt.Errorf("unknown opcode %q", in.Code)
		}
		result.Op = script.CodeOp(code)
	case opTypeInt:
		if in.Int == nil {
			return result, fmt.Errorf("int op without value")
		}
		result.Op = script.PushIntegerOp(script.Integer(*in.Int))
	case opTypeBool:
		if in.Bool == nil {
			return result, fmt.Errorf("bool op without value")
		}
		result.Op = script.PushBooleanOp(*in.Bool)
	case opTypeByteArray:
		if in.Hex == nil {
			return result, fmt.Errorf("bytearray op without data")
		}
		data, err := hex.DecodeString(*in.Hex)
		if err != nil {
			return result, fmt.Errorf("invalid bytearray hex: %w", err)
		}
		result.Op = script.PushByteArrayOp(script.NewByteArray(data))
	case opTypeInvalid:
		if in.Invalid == nil {
			return result, fmt.Errorf("invalid op without raw byte")
		}
		result.Op = script.InvalidOp(*in.Invalid)
	default:
		return result, fmt.Errorf("unknown op type %q", in.Type)
	}
	return result, nil
}

// scriptToJSON converts a script to its JSON op list, or nil.
func scriptToJSON(s *script.Script) []opJSON {
	if s == nil {
		return nil
	}
	ops := s.Ops()
	result := make([]opJSON, len(ops))
	for i := range ops {
		result[i] = opToJSON(&ops[i])
	}
	return result
}

// scriptFromJSON converts a JSON op list back to a script, or nil for an
// absent list.
func scriptFromJSON(ops []opJSON) (*script.Script, error) {
	if ops == nil {
		return nil, nil
	}
	taggedOps := make([]script.TaggedOp, len(ops))
	for i := range ops {
		op, err := opFromJSON(&ops[i])
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		taggedOps[i] = op
	}
	return script.NewScript(taggedOps), nil
}

// TxToJSON renders the transaction, including full script op streams and
// debugger metadata, as JSON.
func TxToJSON(t *Tx) ([]byte, error) {
	out := txJSON{
		Version:  t.version,
		LockTime: t.lockTime,
		Inputs:   make([]txInputJSON, len(t.inputs)),
		Outputs:  make([]txOutputJSON, len(t.outputs)),
	}
	for i, input := range t.inputs {
		out.Inputs[i] = txInputJSON{
			PrevTxHash: input.PrevOut.TxHash.String(),
			PrevVout:   input.PrevOut.Vout,
			Script:     scriptToJSON(input.Script),
			Sequence:   input.Sequence,
			LockScript: scriptToJSON(input.LockScript),
			Value:      input.Value,
		}
	}
	for i, output := range t.outputs {
		out.Outputs[i] = txOutputJSON{
			Value:  output.Value,
			Script: scriptToJSON(output.Script),
		}
	}
	return json.Marshal(&out)
}

// TxFromJSON parses a transaction from its JSON form.  The result still
// needs to be frozen with Hashed before it can be interpreted.
func TxFromJSON(data []byte) (*UnhashedTx, error) {
	var in txJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}

	result := &UnhashedTx{
		Version:  in.Version,
		LockTime: in.LockTime,
	}
	for i := range in.Inputs {
		prevHash, err := chainhash.NewHashFromStr(in.Inputs[i].PrevTxHash)
		if err != nil {
			return nil, fmt.Errorf("input %d: invalid prev tx hash: %w", i, err)
		}
		unlocking, err := scriptFromJSON(in.Inputs[i].Script)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		lockScript, err := scriptFromJSON(in.Inputs[i].LockScript)
		if err != nil {
			return nil, fmt.Errorf("input %d lock script: %w", i, err)
		}
		result.Inputs = append(result.Inputs, &TxInput{
			PrevOut: OutPoint{
				TxHash: *prevHash,
				Vout:   in.Inputs[i].PrevVout,
			},
			Script:     unlocking,
			Sequence:   in.Inputs[i].Sequence,
			LockScript: lockScript,
			Value:      in.Inputs[i].Value,
		})
	}
	for i := range in.Outputs {
		outputScript, err := scriptFromJSON(in.Outputs[i].Script)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		result.Outputs = append(result.Outputs, &TxOutput{
			Value:  in.Outputs[i].Value,
			Script: outputScript,
		})
	}
	return result, nil
}
