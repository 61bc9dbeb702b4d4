package commands_test

import (
	"testing"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"

	"github.com/stretchr/testify/require"
)

func newReturnCase(t *testing.T) *rescase.Case {
	t.Helper()

	aggregate, err := rescase.NewCase(
		kernel.NewUUID(), kernel.NewUUID(), "damaged", "", nil, false, time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func newExchangeCase(t *testing.T) *rescase.Case {
	t.Helper()

	aggregate, err := rescase.NewCase(
		kernel.NewUUID(), kernel.NewUUID(), "size_mismatch", "", nil, true, time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func newFulfillmentCase(t *testing.T) *rescase.Case {
	t.Helper()

	aggregate := newExchangeCase(t)
	number, err := kernel.NewTrackNumber("EX-100200")
	require.NoError(t, err)
	require.NoError(t, aggregate.AttachExchangeParcel(kernel.NewUUID(), number))
	return aggregate
}

func newClosedCase(t *testing.T) *rescase.Case {
	t.Helper()

	aggregate := newReturnCase(t)
	require.NoError(t, aggregate.Close(time.Now().UTC()))
	return aggregate
}

func newClosedFulfillmentCase(t *testing.T) *rescase.Case {
	t.Helper()

	aggregate := newFulfillmentCase(t)
	require.NoError(t, aggregate.ConfirmReceipt(time.Now().UTC()))
	require.NoError(t, aggregate.Close(time.Now().UTC()))
	return aggregate
}
