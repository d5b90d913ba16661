package tulip

import (
	"github.com/neotulip/tulip-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Name returns the human-readable token name.
func Name() string {
	return name
}

// Symbol is a NEP-17 standard method that returns the token symbol.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the token precision.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of
// minted tokens, 0 before init.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, []byte(supplyKey))
}

// BalanceOf is a NEP-17 standard method that returns the token balance of
// the specified account.
func BalanceOf(acc interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, acc)
}

// Allowance returns the amount of tokens the spender may move on behalf of
// the owner via transferFrom.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getAllowance(ctx, owner, spender)
}

// Transfer moves tokens from one account to another. Can be invoked only
// by the owner of the 'from' account. The zero address and the contract
// itself are rejected as recipients. No recipient callback is ever made,
// use TransferAndCall for notifying transfers.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	transfer(ctx, from, to, amount)
	return true
}

// TransferAndCall moves tokens exactly as Transfer does and then invokes
// the onTokenTransfer method of the recipient contract with the sender,
// the amount and the attached data. The ledger is updated before the
// callback runs, so reentrant calls observe final balances. The whole
// invocation faults when the recipient is not a contract or does not
// expose the callback.
//
// Produces Transfer notification.
func TransferAndCall(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	transfer(ctx, from, to, amount)
	callRecipient(to, from, amount, data)
	return true
}

// TransferAllAndCall sends the whole balance of the 'from' account through
// the TransferAndCall path.
//
// Produces Transfer notification.
func TransferAllAndCall(from, to interop.Hash160, data interface{}) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	amount := getBalance(ctx, from)
	transfer(ctx, from, to, amount)
	callRecipient(to, from, amount, data)
	return true
}

// Approve sets the allowance of the spender over the caller's tokens. A
// nonzero allowance can not be overwritten with another nonzero value in a
// single step, it must be reset to zero first. Use IncreaseApproval and
// DecreaseApproval for incremental adjustments.
//
// Produces Approval notification.
func Approve(from, spender interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	requireUsableSpender(spender)
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	if amount != 0 && getAllowance(ctx, from, spender) != 0 {
		panic(ErrNonZeroApproval)
	}

	setAllowance(ctx, from, spender, amount)
	runtime.Notify("Approval", from, spender, amount)
	return true
}

// IncreaseApproval raises the spender allowance by delta without the
// zero-reset requirement of Approve.
//
// Produces Approval notification.
func IncreaseApproval(from, spender interop.Hash160, delta int) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	requireUsableSpender(spender)
	if delta < 0 {
		panic(ErrNegativeAmount)
	}

	amount := getAllowance(ctx, from, spender) + delta
	setAllowance(ctx, from, spender, amount)
	runtime.Notify("Approval", from, spender, amount)
	return true
}

// DecreaseApproval lowers the spender allowance by delta, flooring at
// zero. Never fails on underflow.
//
// Produces Approval notification.
func DecreaseApproval(from, spender interop.Hash160, delta int) bool {
	ctx := storage.GetContext()
	requireUsableAddress(from)
	requireUsableSpender(spender)
	if delta < 0 {
		panic(ErrNegativeAmount)
	}

	amount := getAllowance(ctx, from, spender) - delta
	if amount < 0 {
		amount = 0
	}
	setAllowance(ctx, from, spender, amount)
	runtime.Notify("Approval", from, spender, amount)
	return true
}

// TransferFrom moves tokens from the 'from' account using the allowance
// previously granted to the spender. Can be invoked only by the spender.
//
// Produces Transfer notification.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	requireUsableAddress(spender)

	allowed := getAllowance(ctx, from, spender)
	if allowed < amount {
		panic(ErrInsufficientAllowance)
	}

	transfer(ctx, from, to, amount)
	setAllowance(ctx, from, spender, allowed-amount)
	return true
}

// transfer is the bookkeeping core shared by every transfer variant and
// the sale escrow. It performs no caller authorization.
func transfer(ctx storage.Context, from, to interop.Hash160, amount int) {
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	if len(to) != interop.Hash160Len || isZeroAddress(to) ||
		common.BytesEqual(to, runtime.GetExecutingScriptHash()) {
		panic(ErrBadRecipient)
	}

	balance := getBalance(ctx, from)
	if balance < amount {
		panic(ErrInsufficientBalance)
	}

	setBalance(ctx, from, balance-amount)
	setBalance(ctx, to, getBalance(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
}

// callRecipient notifies the recipient contract about an incoming
// transfer. The recipient must be a deployed contract exposing
// onTokenTransfer, otherwise the invocation faults and the transfer is
// rolled back with it.
func callRecipient(to interop.Hash160, from interop.Hash160, amount int, data interface{}) {
	if management.GetContract(to) == nil {
		panic(ErrNotContractRecipient)
	}

	contract.Call(to, "onTokenTransfer", contract.All, from, amount, data)
}

// requireUsableAddress checks that the address is witnessed by the
// transaction or belongs to the directly calling contract.
func requireUsableAddress(addr interop.Hash160) {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return
		}

		if common.BytesEqual(runtime.GetCallingScriptHash(), addr) {
			return
		}
	}

	panic(common.ErrWitnessFailed)
}

func requireUsableSpender(spender interop.Hash160) {
	if len(spender) != interop.Hash160Len || isZeroAddress(spender) ||
		common.BytesEqual(spender, runtime.GetExecutingScriptHash()) {
		panic(ErrBadSpender)
	}
}

func balanceKey(acc interop.Hash160) []byte {
	return append([]byte{prefixBalance}, acc...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{prefixAllowance}, owner...), spender...)
}

func getBalance(ctx storage.Context, acc interop.Hash160) int {
	return common.GetIntOrZero(ctx, balanceKey(acc))
}

func setBalance(ctx storage.Context, acc interop.Hash160, amount int) {
	common.PutIntOrDelete(ctx, balanceKey(acc), amount)
}

func getAllowance(ctx storage.Context, owner, spender interop.Hash160) int {
	return common.GetIntOrZero(ctx, allowanceKey(owner, spender))
}

func setAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	common.PutIntOrDelete(ctx, allowanceKey(owner, spender), amount)
}
