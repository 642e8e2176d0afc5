// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/ethclient"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/migrate/pkg/artifacts"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/ux"
)

var ErrCreationReverted = errors.New("contract creation reverted")

// Instance is the handle of a deployed contract.
type Instance struct {
	Name        string
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}

// Deployer deploys a named contract artifact and returns its instance.
type Deployer interface {
	Deploy(ctx context.Context, name string, args ...interface{}) (*Instance, error)
}

// ArtifactResolver resolves a contract name to its artifact.
type ArtifactResolver interface {
	Resolve(name string) (*artifacts.Artifact, error)
}

// Backend is the part of an EVM client the deployer needs.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// overridable in tests
var (
	deployContract = bind.DeployContract
	waitMined      = bind.WaitMined
)

type EVMDeployer struct {
	backend  Backend
	key      *ecdsa.PrivateKey
	chainID  *big.Int
	resolver ArtifactResolver
	timeout  time.Duration
	log      luxlog.Logger
	// spinner destination while waiting for the receipt; nil disables it
	waitOut io.Writer
}

type Option func(*EVMDeployer)

func WithTimeout(timeout time.Duration) Option {
	return func(d *EVMDeployer) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func WithLogger(log luxlog.Logger) Option {
	return func(d *EVMDeployer) {
		if log != nil {
			d.log = log
		}
	}
}

func WithWaitOutput(w io.Writer) Option {
	return func(d *EVMDeployer) {
		d.waitOut = w
	}
}

// DialEVMDeployer connects to rpcURL and returns a deployer signing with key.
func DialEVMDeployer(
	ctx context.Context,
	rpcURL string,
	key *ecdsa.PrivateKey,
	resolver ArtifactResolver,
	opts ...Option,
) (*EVMDeployer, error) {
	dialCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	d, err := NewEVMDeployer(dialCtx, client, key, resolver, opts...)
	if err != nil {
		client.Close()
		return nil, err
	}
	return d, nil
}

// NewEVMDeployer builds a deployer over an existing backend.
func NewEVMDeployer(
	ctx context.Context,
	backend Backend,
	key *ecdsa.PrivateKey,
	resolver ArtifactResolver,
	opts ...Option,
) (*EVMDeployer, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	d := &EVMDeployer{
		backend:  backend,
		key:      key,
		chainID:  chainID,
		resolver: resolver,
		timeout:  constants.DeployTimeout,
		log:      luxlog.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *EVMDeployer) ChainID() *big.Int {
	return new(big.Int).Set(d.chainID)
}

// Deploy resolves name, submits its creation transaction and blocks until
// it is mined or the deploy timeout elapses.
func (d *EVMDeployer) Deploy(ctx context.Context, name string, args ...interface{}) (*Instance, error) {
	art, err := d.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	// reject bad constructor arguments before anything is signed
	if _, err := art.PackConstructor(args...); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	auth, err := bind.NewKeyedTransactorWithChainID(d.key, d.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	address, tx, _, err := deployContract(auth, art.ABI, art.Bytecode, d.backend, args...)
	if err != nil {
		return nil, TransactionError(tx, err, "failure deploying %s", name)
	}
	d.log.Info("contract creation submitted", "contract", name, "tx", tx.Hash().Hex(), "from", auth.From.Hex())

	stop := func() {}
	if d.waitOut != nil {
		stop = ux.StartSpinner(d.waitOut, fmt.Sprintf("waiting for %s deployment", name))
	}
	receipt, err := waitMined(ctx, d.backend, tx)
	stop()
	if err != nil {
		return nil, TransactionError(tx, err, "failure waiting for %s deployment", name)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, TransactionError(tx, ErrCreationReverted, "failure deploying %s", name)
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}
	inst := &Instance{
		Name:        name,
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	d.log.Info("contract deployed", "contract", name, "address", address.Hex(), "block", inst.BlockNumber)
	return inst, nil
}

func (d *EVMDeployer) Close() {
	if d.backend != nil {
		d.backend.Close()
	}
}
