package molecule

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) Compute(mol *Molecule) (Descriptors, error) {
	args := m.Called(mol)
	return args.Get(0).(Descriptors), args.Error(1)
}

func TestService_Interpret(t *testing.T) {
	svc := NewService(nil, nil)

	res, err := svc.Interpret(context.Background(), "CCO")
	require.NoError(t, err)
	require.NotNil(t, res.Molecule)
	assert.Equal(t, 1, res.Descriptors.HDonors)
	assert.InDelta(t, 46.069, res.Descriptors.MolecularWeight, 1e-3)
}

func TestService_Interpret_InvalidStructure(t *testing.T) {
	svc := NewService(nil, nil)

	res, err := svc.Interpret(context.Background(), "InvalidSMILES")
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidSMILES))
}

func TestService_Interpret_CalculatorFailure(t *testing.T) {
	calc := new(mockCalculator)
	calc.On("Compute", mock.AnythingOfType("*molecule.Molecule")).
		Return(Descriptors{}, stderrors.New("boom"))

	svc := NewService(calc, nil)
	_, err := svc.Interpret(context.Background(), "CC")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidSMILES))
	calc.AssertExpectations(t)
}

func TestService_Interpret_UsesCalculator(t *testing.T) {
	want := Descriptors{MolecularWeight: 600, LogP: 6, HDonors: 1, HAcceptors: 2}
	calc := new(mockCalculator)
	calc.On("Compute", mock.Anything).Return(want, nil)

	svc := NewService(calc, nil)
	res, err := svc.Interpret(context.Background(), "CC")
	require.NoError(t, err)
	assert.Equal(t, want, res.Descriptors)
}

func TestService_CancelledContext(t *testing.T) {
	svc := NewService(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Interpret(ctx, "CC")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.Depict(ctx, nil, 200)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Depict(t *testing.T) {
	svc := NewService(nil, nil)
	res, err := svc.Interpret(context.Background(), "c1ccccc1O")
	require.NoError(t, err)

	png, err := svc.Depict(context.Background(), res.Molecule, 150)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.Depict(context.Background(), nil, 150)
	assert.True(t, errors.IsCode(err, errors.CodeDepictionFailed))
}

//Personal.AI order the ending
