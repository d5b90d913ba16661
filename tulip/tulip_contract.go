package tulip

import (
	"github.com/neotulip/tulip-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Contract states. The sale lifecycle starts in presale, the owner moves it
// to sale and eventually to public use; moving back is allowed while the
// owner retains access.
const (
	statePreSale = iota
	stateSale
	statePublicUse
)

// State names as they appear in the public API.
const (
	StateNamePreSale   = "PreSale"
	StateNameSale      = "Sale"
	StateNamePublicUse = "PublicUse"
)

const (
	name     = "Tulip"
	symbol   = "TLP"
	decimals = 8

	// totalSupply is minted once by init: 70% to the owner, 30% to the
	// contract itself as sale inventory.
	totalSupply = 10_000_000_000_000_000
	ownerSupply = 7_000_000_000_000_000
	saleSupply  = totalSupply - ownerSupply

	msPerDay = 86_400_000

	// ownerAccessDuration limits the administrative reach of the owner:
	// once this much time has passed since the first entrance into sale
	// state AND the contract is already in public use, setState is
	// permanently rejected.
	ownerAccessDuration = 144 * msPerDay
)

// Singleton storage keys.
const (
	ownerKey         = "owner"
	bankKey          = "bank"
	priceSetterKey   = "priceSetter"
	stateKey         = "state"
	firstEntranceKey = "firstEntranceToSale"
	supplyKey        = "totalSupply"
	disownedKey      = "disowned"
)

// Prefixes of per-account storage records.
const (
	prefixBalance   byte = 0x01
	prefixAllowance byte = 0x02
	prefixPending   byte = 0x03
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	owner := data.(interop.Hash160)
	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, ownerKey, owner)
	storage.Put(ctx, bankKey, owner)
	storage.Put(ctx, stateKey, statePreSale)

	runtime.Log("tulip contract deployed")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner while the contract is not disowned.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetContext()
	checkAdmin(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("tulip contract updated")
}

// Init mints the fixed token supply: 70% to the owner and 30% to the
// contract itself as sale inventory. The owner also receives an allowance
// for the whole inventory so unsold tokens can be recovered with an
// ordinary transferFrom. Can be invoked only once and only by the owner.
func Init() {
	ctx := storage.GetContext()
	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)

	if storage.Get(ctx, supplyKey) != nil {
		panic(ErrAlreadyInitialized)
	}

	self := runtime.GetExecutingScriptHash()

	storage.Put(ctx, supplyKey, totalSupply)
	setBalance(ctx, owner, ownerSupply)
	setBalance(ctx, self, saleSupply)
	setAllowance(ctx, self, owner, saleSupply)

	runtime.Notify("Transfer", interop.Hash160(nil), owner, ownerSupply)
	runtime.Notify("Transfer", interop.Hash160(nil), self, saleSupply)
	runtime.Log("tulip token minted")
}

// SetState moves the contract lifecycle into the named state, one of
// "PreSale", "Sale" or "PublicUse". Can be invoked only by the owner and
// only while the owner access window has not expired. The first transition
// into sale state captures the current block time as the pricing anchor,
// subsequent transitions leave it untouched.
func SetState(name string) {
	ctx := storage.GetContext()
	checkOwnerAccess(ctx)

	target := stateFromName(name)

	if target == stateSale && common.GetIntOrZero(ctx, []byte(firstEntranceKey)) == 0 {
		storage.Put(ctx, firstEntranceKey, runtime.GetTime())
	}

	storage.Put(ctx, stateKey, target)
	runtime.Notify("StateChanged", name)
	runtime.Log("state changed to " + name)
}

// SetBank changes the address receiving 95% of sale proceeds. Can be
// invoked only by the owner. The zero address and the contract itself are
// rejected, sale payouts to the contract would strand the funds.
func SetBank(addr interop.Hash160) {
	ctx := storage.GetContext()
	checkAdmin(ctx)

	if len(addr) != interop.Hash160Len || isZeroAddress(addr) ||
		common.BytesEqual(addr, runtime.GetExecutingScriptHash()) {
		panic(ErrBadBank)
	}

	storage.Put(ctx, bankKey, addr)
}

// SetPriceSetter delegates the right to fix and unfix the token price to
// the given address. Can be invoked only by the owner.
func SetPriceSetter(addr interop.Hash160) {
	ctx := storage.GetContext()
	checkAdmin(ctx)

	if len(addr) != interop.Hash160Len {
		panic("incorrect length of price setter script hash")
	}

	storage.Put(ctx, priceSetterKey, addr)
}

// Disown irreversibly revokes all administrative privileges. Can be
// invoked only by the owner and only after the contract has reached public
// use state.
func Disown() {
	ctx := storage.GetContext()
	checkAdmin(ctx)

	if getState(ctx) != statePublicUse {
		panic(ErrDisownWrongState)
	}

	storage.Put(ctx, disownedKey, true)
	runtime.Notify("Disowned")
	runtime.Log("tulip contract disowned")
}

// State returns the name of the current lifecycle state.
func State() string {
	ctx := storage.GetReadOnlyContext()
	return stateName(getState(ctx))
}

// Bank returns the address receiving 95% of sale proceeds.
func Bank() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, bankKey).(interop.Hash160)
}

// PriceSetter returns the delegated price authority or null when it was
// never set.
func PriceSetter() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, priceSetterKey).(interop.Hash160)
}

// FirstEntranceToSaleStateUNIX returns the block time (milliseconds) of the
// first transition into sale state or 0 when the sale has not started yet.
func FirstEntranceToSaleStateUNIX() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, []byte(firstEntranceKey))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// checkAdmin guards administrative methods: the caller must witness as the
// owner and the contract must not be disowned.
func checkAdmin(ctx storage.Context) {
	if storage.Get(ctx, disownedKey) != nil {
		panic(ErrDisowned)
	}

	common.CheckOwnerWitness(getOwner(ctx))
}

// checkOwnerAccess additionally enforces the owner access window on top of
// checkAdmin. The window expires only when the first entrance into sale
// state happened more than ownerAccessDuration ago while the contract
// already sits in public use state; until then the owner keeps full
// administrative reach.
func checkOwnerAccess(ctx storage.Context) {
	checkAdmin(ctx)

	first := common.GetIntOrZero(ctx, []byte(firstEntranceKey))
	if first != 0 && runtime.GetTime()-first > ownerAccessDuration &&
		getState(ctx) == statePublicUse {
		panic(ErrAccessExpired)
	}
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func getState(ctx storage.Context) int {
	return common.GetIntOrZero(ctx, []byte(stateKey))
}

func stateFromName(name string) int {
	switch name {
	case StateNamePreSale:
		return statePreSale
	case StateNameSale:
		return stateSale
	case StateNamePublicUse:
		return statePublicUse
	default:
		panic(ErrUnknownState)
	}
}

func stateName(state int) string {
	switch state {
	case stateSale:
		return StateNameSale
	case statePublicUse:
		return StateNamePublicUse
	default:
		return StateNamePreSale
	}
}

func isZeroAddress(addr interop.Hash160) bool {
	for i := 0; i < len(addr); i++ {
		if addr[i] != 0 {
			return false
		}
	}
	return true
}
