package plainrecv

// Plainrecv deliberately exposes no onTokenTransfer method, notifying
// transfers to it must fail.

func Verify() bool {
	return true
}
