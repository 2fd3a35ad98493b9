// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/bchsuite/bchscript/bchd/script"

// StackItem is what the interpreter stacks actually hold: a value plus the
// debugger overlay.  Name is the symbolic label inherited from the producing
// op; Delta describes how the slot changed during the most recent step and
// is reset to untouched at the start of every step.
type StackItem struct {
	Data  script.StackValue
	Name  string
	Delta script.StackItemDelta
}

// ToBool projects the item to the loose boolean used for the final script
// verdict.
func (item StackItem) ToBool() bool {
	return item.Data.ToBool()
}
