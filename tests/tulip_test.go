package tests

import (
	"encoding/json"
	"path"
	"testing"

	"github.com/neotulip/tulip-contract/common"
	"github.com/neotulip/tulip-contract/tulip"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	totalSupply = int64(10_000_000_000_000_000)
	ownerSupply = int64(7_000_000_000_000_000)
	saleSupply  = int64(3_000_000_000_000_000)
)

func initTulip(t *testing.T, c *neotest.ContractInvoker) {
	c.Invoke(t, stackitem.Null{}, "init")
}

func TestTulipDeployDefaults(t *testing.T) {
	c, owner := newTulipInvoker(t)

	c.Invoke(t, "Tulip", "name")
	c.Invoke(t, "TLP", "symbol")
	c.Invoke(t, 8, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, tulip.StateNamePreSale, "state")
	c.Invoke(t, owner.ScriptHash().BytesBE(), "bank")
	c.Invoke(t, stackitem.Null{}, "priceSetter")
	c.Invoke(t, 0, "firstEntranceToSaleStateUNIX")
	c.Invoke(t, 0, "tokenPriceInWei")
	c.Invoke(t, common.Version, "version")
}

func TestTulipInit(t *testing.T) {
	c, owner := newTulipInvoker(t)

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "init")

	initTulip(t, c)

	c.Invoke(t, totalSupply, "totalSupply")
	c.Invoke(t, ownerSupply, "balanceOf", owner.ScriptHash())
	c.Invoke(t, saleSupply, "balanceOf", c.Hash)
	c.Invoke(t, saleSupply, "allowance", c.Hash, owner.ScriptHash())
	c.Invoke(t, 0, "firstEntranceToSaleStateUNIX")
	c.Invoke(t, 0, "tokenPriceInWei")

	c.InvokeFail(t, tulip.ErrAlreadyInitialized, "init")
}

func TestTulipUpdate(t *testing.T) {
	c, _ := newTulipInvoker(t)

	ctr := neotest.CompileFile(t, c.CommitteeHash, tulipPath, path.Join(tulipPath, "config.yml"))
	script, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	manifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "update", script, manifest, nil)

	// The same code carries the same version, so the migration guard must
	// reject the redeployment.
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", script, manifest, nil)
}

func TestTulipSetState(t *testing.T) {
	c, _ := newTulipInvoker(t)
	initTulip(t, c)

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "setState", tulip.StateNameSale)
	c.InvokeFail(t, tulip.ErrUnknownState, "setState", "not a valid state")

	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePreSale)
	c.Invoke(t, tulip.StateNamePreSale, "state")
	c.Invoke(t, 0, "firstEntranceToSaleStateUNIX")

	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePublicUse)
	c.Invoke(t, tulip.StateNamePublicUse, "state")
	c.Invoke(t, 0, "firstEntranceToSaleStateUNIX")

	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
	c.Invoke(t, tulip.StateNameSale, "state")

	first := int64(c.TopBlock(t).Timestamp)
	c.Invoke(t, first, "firstEntranceToSaleStateUNIX")

	// Leaving and reentering sale state must keep the original anchor.
	advanceChainTime(t, c, msPerDay)
	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePreSale)
	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
	c.Invoke(t, first, "firstEntranceToSaleStateUNIX")
}

func TestTulipOwnerAccessWindow(t *testing.T) {
	t.Run("no expiry before first sale entrance", func(t *testing.T) {
		c, _ := newTulipInvoker(t)
		initTulip(t, c)

		advanceChainTime(t, c, 145*msPerDay)
		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
	})

	t.Run("no expiry within the window", func(t *testing.T) {
		c, _ := newTulipInvoker(t)
		initTulip(t, c)

		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
		advanceChainTime(t, c, 140*msPerDay)
		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePublicUse)
	})

	t.Run("no expiry outside of public use", func(t *testing.T) {
		c, _ := newTulipInvoker(t)
		initTulip(t, c)

		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
		advanceChainTime(t, c, 145*msPerDay)
		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePublicUse)
	})

	t.Run("expired in public use", func(t *testing.T) {
		c, _ := newTulipInvoker(t)
		initTulip(t, c)

		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
		c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePublicUse)
		advanceChainTime(t, c, 145*msPerDay)
		c.InvokeFail(t, tulip.ErrAccessExpired, "setState", tulip.StateNamePublicUse)

		// Renouncing control remains possible, the window curtails
		// lifecycle transitions only.
		c.Invoke(t, stackitem.Null{}, "disown")
	})
}

func TestTulipDisown(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	stranger := c.NewAccount(t)

	c.InvokeFail(t, tulip.ErrDisownWrongState, "disown")
	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNameSale)
	c.InvokeFail(t, tulip.ErrDisownWrongState, "disown")

	c.Invoke(t, stackitem.Null{}, "setState", tulip.StateNamePublicUse)
	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "disown")
	c.Invoke(t, stackitem.Null{}, "disown")

	c.InvokeFail(t, tulip.ErrDisowned, "setState", tulip.StateNamePublicUse)
	c.InvokeFail(t, tulip.ErrDisowned, "setBank", stranger.ScriptHash())
	c.InvokeFail(t, tulip.ErrDisowned, "setPriceSetter", stranger.ScriptHash())
	c.InvokeFail(t, tulip.ErrDisowned, "setAndFixTokenPriceInWei", 1)
	c.InvokeFail(t, tulip.ErrDisowned, "unfixTokenPriceInWei")
	c.InvokeFail(t, tulip.ErrDisowned, "disown")

	// The ledger keeps working without the owner.
	c.Invoke(t, true, "transfer", owner.ScriptHash(), stranger.ScriptHash(), 100)
	c.Invoke(t, 100, "balanceOf", stranger.ScriptHash())
}

func TestTulipSetBank(t *testing.T) {
	c, _ := newTulipInvoker(t)
	initTulip(t, c)

	bank := c.NewAccount(t)
	stranger := c.NewAccount(t)

	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "setBank", bank.ScriptHash())
	c.InvokeFail(t, tulip.ErrBadBank, "setBank", util.Uint160{})
	c.InvokeFail(t, tulip.ErrBadBank, "setBank", c.Hash)

	c.Invoke(t, stackitem.Null{}, "setBank", bank.ScriptHash())
	c.Invoke(t, bank.ScriptHash().BytesBE(), "bank")
}

func TestTulipSetPriceSetter(t *testing.T) {
	c, _ := newTulipInvoker(t)
	initTulip(t, c)

	setter := c.NewAccount(t)
	stranger := c.NewAccount(t)

	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "setPriceSetter", setter.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "priceSetter")
	c.Invoke(t, stackitem.Null{}, "setPriceSetter", setter.ScriptHash())
	c.Invoke(t, setter.ScriptHash().BytesBE(), "priceSetter")
}

func TestTulipTransfer(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	holder := c.NewAccount(t)
	cHolder := c.WithSigners(holder)

	c.Invoke(t, true, "transfer", owner.ScriptHash(), holder.ScriptHash(), 100)
	c.Invoke(t, 100, "balanceOf", holder.ScriptHash())
	c.Invoke(t, ownerSupply-100, "balanceOf", owner.ScriptHash())

	cHolder.InvokeFail(t, tulip.ErrBadRecipient, "transfer", holder.ScriptHash(), util.Uint160{}, 10)
	cHolder.InvokeFail(t, tulip.ErrBadRecipient, "transfer", holder.ScriptHash(), c.Hash, 10)
	cHolder.InvokeFail(t, tulip.ErrInsufficientBalance, "transfer", holder.ScriptHash(), owner.ScriptHash(), 1000)
	cHolder.InvokeFail(t, tulip.ErrNegativeAmount, "transfer", holder.ScriptHash(), owner.ScriptHash(), -1)

	// A transfer must carry the witness of its sender.
	c.InvokeFail(t, common.ErrWitnessFailed, "transfer", holder.ScriptHash(), owner.ScriptHash(), 10)
}

func TestTulipApprove(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	spender := c.NewAccount(t)

	c.InvokeFail(t, tulip.ErrBadSpender, "approve", owner.ScriptHash(), util.Uint160{}, 100)
	c.InvokeFail(t, tulip.ErrBadSpender, "approve", owner.ScriptHash(), c.Hash, 100)
	c.InvokeFail(t, tulip.ErrNegativeAmount, "approve", owner.ScriptHash(), spender.ScriptHash(), -1)

	c.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 1000)
	c.Invoke(t, 1000, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// A nonzero allowance must go through zero before changing.
	c.InvokeFail(t, tulip.ErrNonZeroApproval, "approve", owner.ScriptHash(), spender.ScriptHash(), 2000)
	c.Invoke(t, 1000, "allowance", owner.ScriptHash(), spender.ScriptHash())

	c.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 0)
	c.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 2000)
	c.Invoke(t, 2000, "allowance", owner.ScriptHash(), spender.ScriptHash())
}

func TestTulipIncreaseDecreaseApproval(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	spender := c.NewAccount(t)

	c.Invoke(t, 0, "allowance", owner.ScriptHash(), spender.ScriptHash())
	c.Invoke(t, true, "increaseApproval", owner.ScriptHash(), spender.ScriptHash(), 50)
	c.Invoke(t, 50, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// No zero-reset requirement on the incremental path.
	c.Invoke(t, true, "increaseApproval", owner.ScriptHash(), spender.ScriptHash(), 150)
	c.Invoke(t, 200, "allowance", owner.ScriptHash(), spender.ScriptHash())

	c.Invoke(t, true, "decreaseApproval", owner.ScriptHash(), spender.ScriptHash(), 50)
	c.Invoke(t, 150, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// Decreasing below zero floors at zero instead of failing.
	c.Invoke(t, true, "decreaseApproval", owner.ScriptHash(), spender.ScriptHash(), 500)
	c.Invoke(t, 0, "allowance", owner.ScriptHash(), spender.ScriptHash())
}

func TestTulipTransferFrom(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	spender := c.NewAccount(t)
	cSpender := c.WithSigners(spender)

	c.Invoke(t, true, "approve", owner.ScriptHash(), spender.ScriptHash(), 1000)

	cSpender.InvokeFail(t, tulip.ErrBadRecipient, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), util.Uint160{}, 100)
	cSpender.InvokeFail(t, tulip.ErrBadRecipient, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), c.Hash, 100)
	cSpender.InvokeFail(t, tulip.ErrInsufficientAllowance, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), spender.ScriptHash(), 2000)

	cSpender.Invoke(t, true, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), spender.ScriptHash(), 600)
	c.Invoke(t, 600, "balanceOf", spender.ScriptHash())
	c.Invoke(t, 400, "allowance", owner.ScriptHash(), spender.ScriptHash())

	cSpender.InvokeFail(t, tulip.ErrInsufficientAllowance, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), spender.ScriptHash(), 600)
}

// The allowance granted at init lets the owner recover unsold inventory
// with an ordinary transferFrom.
func TestTulipRecoverInventory(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	c.Invoke(t, true, "transferFrom", owner.ScriptHash(), c.Hash, owner.ScriptHash(), saleSupply)
	c.Invoke(t, 0, "balanceOf", c.Hash)
	c.Invoke(t, totalSupply, "balanceOf", owner.ScriptHash())
	c.Invoke(t, 0, "allowance", c.Hash, owner.ScriptHash())
}

func TestTulipTransferAndCall(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	recv := deployAuxContract(t, c.Executor, tokenRecvPath)
	cRecv := c.CommitteeInvoker(recv)
	data := []byte("ahoy")

	t.Run("notifies the recipient", func(t *testing.T) {
		c.Invoke(t, true, "transferAndCall", owner.ScriptHash(), recv, 100, data)
		c.Invoke(t, 100, "balanceOf", recv)

		// The balances recorded inside the callback are the post-transfer
		// ones, the ledger moves before the recipient hears about it.
		cRecv.Invoke(t, true, "calledFallback")
		cRecv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
			stackitem.Make(100),
			stackitem.NewByteArray(data),
			stackitem.Make(ownerSupply - 100),
			stackitem.Make(100),
		}), "get")
	})

	t.Run("plain transfer does not notify", func(t *testing.T) {
		c2, owner2 := newTulipInvoker(t)
		initTulip(t, c2)
		recv2 := deployAuxContract(t, c2.Executor, tokenRecvPath)

		c2.Invoke(t, true, "transfer", owner2.ScriptHash(), recv2, 100)
		c2.Invoke(t, 100, "balanceOf", recv2)
		c2.CommitteeInvoker(recv2).Invoke(t, false, "calledFallback")
	})

	t.Run("incompatible recipient", func(t *testing.T) {
		plain := deployAuxContract(t, c.Executor, plainRecvPath)
		c.InvokeFail(t, "method not found", "transferAndCall", owner.ScriptHash(), plain, 100, data)
		c.Invoke(t, 0, "balanceOf", plain)
	})

	t.Run("non-contract recipient", func(t *testing.T) {
		acc := c.NewAccount(t)
		c.InvokeFail(t, tulip.ErrNotContractRecipient, "transferAndCall", owner.ScriptHash(), acc.ScriptHash(), 100, data)
	})
}

func TestTulipTransferAllAndCall(t *testing.T) {
	c, owner := newTulipInvoker(t)
	initTulip(t, c)

	recv := deployAuxContract(t, c.Executor, tokenRecvPath)

	c.Invoke(t, true, "transferAllAndCall", owner.ScriptHash(), recv, []byte{})
	c.Invoke(t, 0, "balanceOf", owner.ScriptHash())
	c.Invoke(t, ownerSupply, "balanceOf", recv)

	c.CommitteeInvoker(recv).Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
		stackitem.Make(ownerSupply),
		stackitem.NewByteArray([]byte{}),
		stackitem.Make(0),
		stackitem.Make(ownerSupply),
	}), "get")
}
