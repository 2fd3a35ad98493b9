// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements a step-executable interpreter for the Bitcoin
Cash script language.

The interpreter evaluates a lock script against the data pushed by an
unlocking script in the context of one signed transaction input, producing
either a final boolean verdict or a typed Error.  It can be driven to
completion with Run or single-stepped with RunNextOp while the observable
stacks are read between steps, which is what a step debugger does:

	vm, err := txscript.New(tx, 0, bchec.NewVerifier())
	if err != nil { ... }
	if err := vm.PushInputData(); err != nil { ... }
	for !vm.IsFinished() {
		if err := vm.RunNextOp(); err != nil { ... }
		inspect(vm.Stack(), vm.AltStack())
	}

Every stack slot carries a transient delta annotation describing how it
changed during the most recent step, along with an optional symbolic name
inherited from the producing op.  Neither affects execution results.

The interpreter is single-threaded, synchronous and non-blocking.  The
transaction and the ECC verifier are shared read-only; each interpreter
instance must be confined to one goroutine.
*/
package txscript
