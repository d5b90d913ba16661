package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	tulipPath      = "../tulip"
	tokenRecvPath  = "../internal/testcontracts/tokenrecv"
	plainRecvPath  = "../internal/testcontracts/plainrecv"
	greedyRecvPath = "../internal/testcontracts/greedyrecv"

	msPerDay = 86_400_000
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// newTulipInvoker deploys the token contract owned by a fresh account and
// returns an invoker signed by that owner. Keeping the owner off the
// committee makes GAS payout assertions exact, the committee balance moves
// with every produced block.
func newTulipInvoker(t *testing.T) (*neotest.ContractInvoker, neotest.Signer) {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	c := neotest.CompileFile(t, e.CommitteeHash, tulipPath, path.Join(tulipPath, "config.yml"))
	e.DeployContract(t, c, owner.ScriptHash())

	return e.CommitteeInvoker(c.Hash).WithSigners(owner), owner
}

func deployAuxContract(t *testing.T, e *neotest.Executor, ctrPath string) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func gasInvoker(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	h, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)
	return e.CommitteeInvoker(h)
}

// fundGAS transfers GAS from the validator to the given account.
func fundGAS(t *testing.T, e *neotest.Executor, to util.Uint160, amount int64) {
	g := gasInvoker(t, e).WithSigners(e.Validator)
	g.Invoke(t, true, "transfer", e.Validator.ScriptHash(), to, amount, nil)
}

func gasBalance(t *testing.T, e *neotest.Executor, acc util.Uint160) int64 {
	return e.Chain.GetUtilityTokenBalance(acc).Int64()
}

// advanceChainTime adds an empty block timestamped the given amount of
// milliseconds after the current top one. Invocations executed afterwards
// observe at least that block time.
func advanceChainTime(t *testing.T, c *neotest.ContractInvoker, ms uint64) {
	b := c.NewUnsignedBlock(t)
	b.Timestamp = c.TopBlock(t).Timestamp + ms
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))
}
