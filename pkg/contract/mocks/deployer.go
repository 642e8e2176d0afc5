// Code generated manually for testing. Update as needed.

package mocks

import (
	"context"

	"github.com/luxfi/migrate/pkg/contract"
	"github.com/stretchr/testify/mock"
)

// Deployer is a mock implementation of contract.Deployer
type Deployer struct {
	mock.Mock
}

func (m *Deployer) Deploy(ctx context.Context, name string, args ...interface{}) (*contract.Instance, error) {
	callArgs := append([]interface{}{ctx, name}, args...)
	ret := m.Called(callArgs...)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*contract.Instance), ret.Error(1)
}

var _ contract.Deployer = (*Deployer)(nil)
