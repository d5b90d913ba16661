package tulip

import (
	"github.com/neotulip/tulip-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// dailyPriceIncrement is the price of one token base unit (in the
	// smallest GAS denomination) added for every day elapsed since the
	// first entrance into sale state.
	dailyPriceIncrement = 10_000_000
	// maxPriceGrowthDays caps the escalation, the price plateaus at
	// maxPriceGrowthDays * dailyPriceIncrement.
	maxPriceGrowthDays = 12

	// maxTokensPerAddress limits how many base units a single buyer may
	// accumulate through the sale: 1000 whole tokens.
	maxTokensPerAddress = 1000 * 100_000_000

	// ownerCutPercent of every spent payment is pushed to the owner, the
	// rest goes to the bank.
	ownerCutPercent = 5
)

// Storage keys of the fixed price override.
const (
	fixedPriceKey   = "fixedPrice"
	priceIsFixedKey = "priceIsFixed"
)

// TokenPriceInWei returns the current price of one token base unit in the
// smallest GAS denomination. A fixed override wins unconditionally;
// otherwise the price grows by dailyPriceIncrement for every day since the
// first entrance into sale state (the entrance day counts as one) and
// plateaus after maxPriceGrowthDays. Before the sale has ever started the
// price is 0.
func TokenPriceInWei() int {
	ctx := storage.GetReadOnlyContext()
	return tokenPriceInWei(ctx)
}

// SetAndFixTokenPriceInWei pins the token price to the given value,
// suppressing time-based escalation until unfixed. Can be invoked by the
// owner or by the delegated price setter.
func SetAndFixTokenPriceInWei(price int) {
	ctx := storage.GetContext()
	checkPriceAuthority(ctx)

	if price < 0 {
		panic(ErrNegativeAmount)
	}

	storage.Put(ctx, fixedPriceKey, price)
	storage.Put(ctx, priceIsFixedKey, true)
}

// UnfixTokenPriceInWei clears the fixed price override, returning to the
// time-based price. Idempotent. Can be invoked by the owner or by the
// delegated price setter.
func UnfixTokenPriceInWei() {
	ctx := storage.GetContext()
	checkPriceAuthority(ctx)

	storage.Delete(ctx, fixedPriceKey)
	storage.Delete(ctx, priceIsFixedKey)
}

// OnNEP17Payment is a callback for the NEP-17 compatible native GAS
// contract: any GAS arriving at the contract address buys tokens at the
// current price. Any other NEP-17 token is rejected. Tokens are credited
// to the buyer before any GAS leaves the contract; the spent part is split
// 5% to the owner and 95% to the bank immediately, change that buys no
// whole base unit at the current price is credited to the buyer's pending
// withdrawal instead of being sent back.
//
// Produces Transfer and Purchase notifications.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic(ErrGasOnly)
	}

	ctx := storage.GetContext()
	buyTokens(ctx, from, amount)
}

// ByTokens is an explicit purchase entry: it pulls the given amount of GAS
// from the buyer (with the buyer's witness) into the contract, which
// triggers the same purchase path as a direct GAS send.
func ByTokens(buyer interop.Hash160, spend int) {
	common.CheckWitness(buyer)

	if spend <= 0 {
		panic(ErrInsufficientPayment)
	}

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(buyer, self, spend, nil) {
		panic(ErrGasTransferFailed)
	}
}

// Withdraw sends the caller's pending refund out. The pending record is
// zeroed before GAS leaves the contract, so reentering from a payment
// callback finds nothing owed.
//
// Produces Withdrawal notification.
func Withdraw(user interop.Hash160) {
	common.CheckWitness(user)

	ctx := storage.GetContext()
	key := pendingKey(user)

	amount := common.GetIntOrZero(ctx, key)
	if amount <= 0 {
		panic(ErrNothingToWithdraw)
	}

	storage.Delete(ctx, key)

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, user, amount, nil) {
		panic(ErrGasTransferFailed)
	}

	runtime.Notify("Withdrawal", user, amount)
}

// PendingWithdrawals returns the amount of GAS owed to the account and not
// yet pulled.
func PendingWithdrawals(acc interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, pendingKey(acc))
}

// buyTokens runs inside the GAS receive callback, i.e. the payment has
// already been credited to the contract GAS balance.
func buyTokens(ctx storage.Context, buyer interop.Hash160, amount int) {
	if getState(ctx) != stateSale {
		panic(ErrWrongState)
	}

	price := tokenPriceInWei(ctx)
	if price <= 0 {
		panic(ErrPriceNotSet)
	}
	if amount < price {
		panic(ErrInsufficientPayment)
	}

	requested := amount / price

	free := maxTokensPerAddress - getBalance(ctx, buyer)
	if free <= 0 {
		panic(ErrCapReached)
	}

	granted := requested
	if granted > free {
		granted = free
	}

	self := runtime.GetExecutingScriptHash()
	if getBalance(ctx, self) < granted {
		panic(ErrSoldOut)
	}

	// Ledger first: a reentrant call from any payout below must already
	// see the buyer credited and the inventory debited.
	transfer(ctx, self, buyer, granted)

	spent := granted * price
	ownerCut := spent * ownerCutPercent / 100
	bankCut := spent - ownerCut

	if ownerCut > 0 && !gas.Transfer(self, getOwner(ctx), ownerCut, nil) {
		panic(ErrGasTransferFailed)
	}
	if bankCut > 0 && !gas.Transfer(self, storage.Get(ctx, bankKey).(interop.Hash160), bankCut, nil) {
		panic(ErrGasTransferFailed)
	}

	refund := amount - spent
	if refund > 0 {
		key := pendingKey(buyer)
		storage.Put(ctx, key, common.GetIntOrZero(ctx, key)+refund)
	}

	runtime.Notify("Purchase", buyer, granted, spent, refund)
	runtime.Log("tokens sold")
}

func tokenPriceInWei(ctx storage.Context) int {
	if storage.Get(ctx, priceIsFixedKey) != nil {
		return common.GetIntOrZero(ctx, []byte(fixedPriceKey))
	}

	first := common.GetIntOrZero(ctx, []byte(firstEntranceKey))
	if first == 0 {
		return 0
	}

	days := (runtime.GetTime()-first)/msPerDay + 1
	if days > maxPriceGrowthDays {
		days = maxPriceGrowthDays
	}

	return days * dailyPriceIncrement
}

// checkPriceAuthority allows the owner and the delegated price setter
// through, honoring the disowned flag.
func checkPriceAuthority(ctx storage.Context) {
	if storage.Get(ctx, disownedKey) != nil {
		panic(ErrDisowned)
	}

	if runtime.CheckWitness(getOwner(ctx)) {
		return
	}

	setter := storage.Get(ctx, priceSetterKey)
	if setter != nil && runtime.CheckWitness(setter.(interop.Hash160)) {
		return
	}

	panic(ErrPriceAuthority)
}

func pendingKey(acc interop.Hash160) []byte {
	return append([]byte{prefixPending}, acc...)
}
