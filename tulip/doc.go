/*
Tulip contract is a fixed-supply fungible token with a built-in time-gated
sale, deployed as a single self-contained Neo contract.

The token is NEP-17-shaped (name Tulip, symbol TLP, 8 decimals) with one extension: the
transferAndCall family notifies recipient contracts about incoming
transfers through their onTokenTransfer method, failing atomically when the
recipient does not expose it. Plain transfer never notifies anybody.

The lifecycle runs through three states: PreSale, Sale and PublicUse. The
owner drives transitions with setState; the first entrance into Sale is
remembered forever and anchors both the token price and the owner access
window. The price starts at one daily increment per token base unit and
grows by the same increment every day, capping after twelve days; the owner
or a delegated price setter may pin it to a fixed value instead.

GAS sent to the contract during Sale buys tokens at the current price,
limited by a per-address cap. The spent part is split immediately, 5% to
the owner and 95% to the bank; change is credited to the buyer's pending
withdrawal and has to be pulled explicitly with withdraw. Once the
contract reaches PublicUse the owner may disown it, irrevocably disabling
every administrative method; 144 days after the sale started an owner
sitting in PublicUse loses setState anyway.

# Contract notifications

Transfer notification. This is NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification, produced by approve, increaseApproval and
decreaseApproval with the resulting allowance.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

StateChanged notification, produced by setState.

	StateChanged:
	  - name: state
	    type: String

Purchase notification, produced for every successful token purchase.

	Purchase:
	  - name: buyer
	    type: Hash160
	  - name: tokens
	    type: Integer
	  - name: spent
	    type: Integer
	  - name: refund
	    type: Integer

Withdrawal notification, produced when a pending refund is pulled.

	Withdrawal:
	  - name: user
	    type: Hash160
	  - name: amount
	    type: Integer

Disowned notification, produced once when the owner renounces control.

	Disowned
*/
package tulip
