// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/migrate/pkg/artifacts"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/key"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	auctionABI = `[{"type":"constructor","inputs":[{"name":"reserve","type":"uint256"}]}]`
	noCtorABI  = `[]`
)

func mustABI(t *testing.T, raw string) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(raw))
	require.NoError(t, err)
	return parsed
}

type mapResolver map[string]*artifacts.Artifact

func (m mapResolver) Resolve(name string) (*artifacts.Artifact, error) {
	if a, ok := m[name]; ok {
		return a, nil
	}
	return nil, constants.ErrArtifactNotFound
}

type deployCall struct {
	from     common.Address
	bytecode []byte
	params   []interface{}
	deadline bool
}

func stubChain(t *testing.T, deployErr error, receipt *types.Receipt, waitErr error) *[]deployCall {
	t.Helper()
	origDeploy, origWait := deployContract, waitMined
	t.Cleanup(func() {
		deployContract, waitMined = origDeploy, origWait
	})
	calls := &[]deployCall{}
	deployContract = func(
		opts *bind.TransactOpts,
		_ abi.ABI,
		bytecode []byte,
		_ bind.ContractBackend,
		params ...interface{},
	) (common.Address, *types.Transaction, *bind.BoundContract, error) {
		_, hasDeadline := opts.Context.Deadline()
		*calls = append(*calls, deployCall{from: opts.From, bytecode: bytecode, params: params, deadline: hasDeadline})
		if deployErr != nil {
			return common.Address{}, nil, nil, deployErr
		}
		tx := types.NewTx(&types.LegacyTx{Nonce: uint64(len(*calls)), Data: bytecode})
		return common.HexToAddress("0xAA"), tx, nil, nil
	}
	waitMined = func(context.Context, bind.DeployBackend, *types.Transaction) (*types.Receipt, error) {
		return receipt, waitErr
	}
	return calls
}

func newTestDeployer(t *testing.T) *EVMDeployer {
	t.Helper()
	pk, err := key.ParsePrivateKey(testKey)
	require.NoError(t, err)
	return &EVMDeployer{
		key:     pk,
		chainID: big.NewInt(1337),
		resolver: mapResolver{
			"Test721": {ContractName: "Test721", ABI: mustABI(t, noCtorABI), Bytecode: []byte{0x60, 0x80}},
			"Auction": {ContractName: "Auction", ABI: mustABI(t, auctionABI), Bytecode: []byte{0x60, 0x81}},
		},
		timeout: time.Minute,
		log:     luxlog.NewNoOpLogger(),
	}
}

func TestDeploySuccess(t *testing.T) {
	require := require.New(t)
	contractAddr := common.HexToAddress("0xBEEF")
	calls := stubChain(t, nil, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		ContractAddress: contractAddr,
		BlockNumber:     big.NewInt(7),
	}, nil)

	d := newTestDeployer(t)
	inst, err := d.Deploy(context.Background(), "Test721")
	require.NoError(err)
	require.Equal("Test721", inst.Name)
	require.Equal(contractAddr, inst.Address)
	require.Equal(uint64(7), inst.BlockNumber)
	require.NotEqual(common.Hash{}, inst.TxHash)

	require.Len(*calls, 1)
	call := (*calls)[0]
	require.Equal(key.Address(d.key), call.from)
	require.Equal([]byte{0x60, 0x80}, call.bytecode)
	require.Empty(call.params)
	require.True(call.deadline)
}

func TestDeployConstructorArgs(t *testing.T) {
	require := require.New(t)
	calls := stubChain(t, nil, &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(8),
	}, nil)

	d := newTestDeployer(t)
	inst, err := d.Deploy(context.Background(), "Auction", big.NewInt(1))
	require.NoError(err)
	// no receipt address, the precomputed one is used
	require.Equal(common.HexToAddress("0xAA"), inst.Address)
	require.Len(*calls, 1)
	require.Equal([]interface{}{big.NewInt(1)}, (*calls)[0].params)
}

func TestDeployRejectsBadConstructorArgs(t *testing.T) {
	require := require.New(t)
	calls := stubChain(t, nil, nil, nil)
	d := newTestDeployer(t)

	_, err := d.Deploy(context.Background(), "Test721", big.NewInt(1))
	require.ErrorContains(err, "failed to pack constructor arguments")
	_, err = d.Deploy(context.Background(), "Auction")
	require.ErrorContains(err, "failed to pack constructor arguments")
	require.Empty(*calls)
}

func TestDeployUnknownArtifact(t *testing.T) {
	calls := stubChain(t, nil, nil, nil)
	_, err := newTestDeployer(t).Deploy(context.Background(), "Missing")
	require.ErrorIs(t, err, constants.ErrArtifactNotFound)
	require.Empty(t, *calls)
}

func TestDeploySubmitFailure(t *testing.T) {
	bogus := errors.New("insufficient funds for gas * price + value")
	stubChain(t, bogus, nil, nil)
	_, err := newTestDeployer(t).Deploy(context.Background(), "Test721")
	require.ErrorIs(t, err, bogus)
	require.Contains(t, err.Error(), "tx failed to be submitted")
}

func TestDeployWaitFailure(t *testing.T) {
	stubChain(t, nil, nil, context.DeadlineExceeded)
	_, err := newTestDeployer(t).Deploy(context.Background(), "Test721")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, err.Error(), "txHash=")
}

func TestDeployReverted(t *testing.T) {
	stubChain(t, nil, &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(3)}, nil)
	_, err := newTestDeployer(t).Deploy(context.Background(), "Test721")
	require.ErrorIs(t, err, ErrCreationReverted)
}

func TestOptions(t *testing.T) {
	require := require.New(t)
	d := &EVMDeployer{timeout: constants.DeployTimeout}
	WithTimeout(0)(d)
	require.Equal(constants.DeployTimeout, d.timeout)
	WithTimeout(time.Second)(d)
	require.Equal(time.Second, d.timeout)
	WithLogger(nil)(d)
	require.Nil(d.log)
}

func TestTransactionError(t *testing.T) {
	require := require.New(t)
	bogus := errors.New("bogus")
	err := TransactionError(nil, bogus, "deploying %s", "Test721")
	require.ErrorIs(err, bogus)
	require.Equal("deploying Test721: bogus (tx failed to be submitted)", err.Error())

	tx := types.NewTx(&types.LegacyTx{Nonce: 1})
	err = TransactionError(tx, bogus, "deploying %s", "Auction")
	require.Equal("deploying Auction: bogus (txHash="+tx.Hash().String()+")", err.Error())
}
