package tulip

// Panic messages thrown by the contract. Kept as exported constants so that
// client code and tests can match faults against them.
const (
	// ErrDisowned is thrown by every administrative method after the
	// contract has been disowned.
	ErrDisowned = "contract is disowned"
	// ErrAccessExpired is thrown by setState when the owner access window
	// has elapsed in public use state.
	ErrAccessExpired = "owner access window has expired"
	// ErrPriceAuthority is thrown by price methods when the caller is
	// neither the owner nor the designated price setter.
	ErrPriceAuthority = "price authority witness check failed"
	// ErrUnknownState is thrown by setState on an unrecognized state name.
	ErrUnknownState = "unknown state name"
	// ErrAlreadyInitialized is thrown by init on repeated calls.
	ErrAlreadyInitialized = "contract is already initialized"
	// ErrDisownWrongState is thrown by disown outside of public use state.
	ErrDisownWrongState = "disown is allowed in public use state only"

	// ErrBadRecipient is thrown on transfers to the zero address, to the
	// contract itself or to a script hash of invalid length.
	ErrBadRecipient = "invalid recipient address"
	// ErrBadSpender is thrown on approvals for the zero address, the
	// contract itself or a script hash of invalid length.
	ErrBadSpender = "invalid spender address"
	// ErrBadBank is thrown by setBank on the zero address or the contract
	// own address.
	ErrBadBank = "invalid bank address"
	// ErrNegativeAmount is thrown on any negative token or GAS amount.
	ErrNegativeAmount = "negative amount"
	// ErrInsufficientBalance is thrown when the sender does not hold
	// enough tokens.
	ErrInsufficientBalance = "insufficient token balance"
	// ErrInsufficientAllowance is thrown by transferFrom when the spender
	// allowance does not cover the amount.
	ErrInsufficientAllowance = "insufficient allowance"
	// ErrNonZeroApproval is thrown by approve when the current allowance
	// is nonzero and the new value is nonzero too.
	ErrNonZeroApproval = "allowance must be reset to zero first"
	// ErrNotContractRecipient is thrown by notifying transfers when the
	// recipient is not a deployed contract.
	ErrNotContractRecipient = "recipient is not a deployed contract"

	// ErrGasOnly is thrown when some NEP-17 token other than GAS is sent
	// to the contract.
	ErrGasOnly = "only GAS is accepted for purchase"
	// ErrWrongState is thrown by the purchase path outside of sale state.
	ErrWrongState = "sale is not active"
	// ErrPriceNotSet is thrown by the purchase path when the current token
	// price is not defined or fixed at zero.
	ErrPriceNotSet = "token price is not defined"
	// ErrInsufficientPayment is thrown when the attached GAS does not
	// cover even a single token base unit.
	ErrInsufficientPayment = "payment is below the token price"
	// ErrCapReached is thrown when the buyer balance is already at the per
	// address cap.
	ErrCapReached = "tokens per address cap reached"
	// ErrSoldOut is thrown when the sale inventory cannot cover the
	// granted amount.
	ErrSoldOut = "not enough tokens left for sale"
	// ErrNothingToWithdraw is thrown by withdraw with no pending refund.
	ErrNothingToWithdraw = "nothing to withdraw"
	// ErrGasTransferFailed is thrown when an outgoing GAS transfer is
	// rejected by the native GAS contract.
	ErrGasTransferFailed = "failed to transfer GAS, aborting"
)
