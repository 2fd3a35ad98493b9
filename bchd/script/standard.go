// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

const (
	// hash160Size is the size of a RIPEMD-160 digest, the payload of a
	// pay-to-script-hash lock script.
	hash160Size = 20
)

// IsPayToScriptHash returns whether the script is in the standard
// pay-to-script-hash form: OP_HASH160 <20-byte hash> OP_EQUAL.  Inputs
// locked by such a script carry their redeem script as the final push of
// the unlocking script.
func IsPayToScriptHash(s *Script) bool {
	ops := s.Ops()
	if len(ops) != 3 {
		return false
	}
	if ops[0].Op.Kind() != OpKindCode || ops[0].Op.Code() != OP_HASH160 {
		return false
	}
	if ops[1].Op.Kind() != OpKindPushByteArray ||
		ops[1].Op.Array().Len() != hash160Size {

		return false
	}
	return ops[2].Op.Kind() == OpKindCode && ops[2].Op.Code() == OP_EQUAL
}
