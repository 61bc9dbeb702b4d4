package rescase_test

import (
	"testing"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenReturnCase(t *testing.T) *rescase.Case {
	t.Helper()
	c, err := rescase.NewCase(
		kernel.NewUUID(), kernel.NewUUID(),
		"size_mismatch", "", nil, false, time.Now())
	require.NoError(t, err)
	return c
}

func newOpenExchangeCase(t *testing.T) *rescase.Case {
	t.Helper()
	c, err := rescase.NewCase(
		kernel.NewUUID(), kernel.NewUUID(),
		"damaged", "", nil, true, time.Now())
	require.NoError(t, err)
	return c
}

func newExchangeInProgressCase(t *testing.T) *rescase.Case {
	t.Helper()
	c := newOpenExchangeCase(t)
	number, err := kernel.NewTrackNumber("EX-1")
	require.NoError(t, err)
	require.NoError(t, c.AttachExchangeParcel(kernel.NewUUID(), number))
	return c
}

func TestDerivePermissions_OpenReturn(t *testing.T) {
	c := newOpenReturnCase(t)

	p := rescase.DerivePermissions(c)

	assert.True(t, p.AllowLaunchExchange)
	assert.True(t, p.AllowConvertToExchange)
	assert.True(t, p.AllowUpdateReverseTrack)
	assert.True(t, p.AllowConfirmReceipt)
	assert.True(t, p.AllowClose)
	assert.False(t, p.AllowCreateExchangeParcel)
	assert.False(t, p.AllowConvertToReturn)
}

func TestDerivePermissions_OpenExchange(t *testing.T) {
	c := newOpenExchangeCase(t)

	p := rescase.DerivePermissions(c)

	assert.False(t, p.AllowLaunchExchange)
	assert.False(t, p.AllowConvertToExchange)
	assert.True(t, p.AllowCreateExchangeParcel)
	assert.True(t, p.AllowConvertToReturn)
	assert.True(t, p.AllowUpdateReverseTrack)
	assert.True(t, p.AllowConfirmReceipt)
	assert.False(t, p.AllowClose, "exchange without confirmed receipt cannot be closed")
}

func TestDerivePermissions_ExchangeInProgress(t *testing.T) {
	c := newExchangeInProgressCase(t)

	p := rescase.DerivePermissions(c)

	assert.False(t, p.AllowCreateExchangeParcel, "parcel already linked")
	assert.True(t, p.AllowConvertToReturn)
	assert.False(t, p.AllowClose, "receipt not confirmed yet")

	require.NoError(t, c.ConfirmReceipt(time.Now()))
	p = rescase.DerivePermissions(c)
	assert.True(t, p.AllowClose)
	assert.False(t, p.AllowConfirmReceipt, "receipt already confirmed")
}

func TestDerivePermissions_Closed(t *testing.T) {
	c := newOpenReturnCase(t)
	require.NoError(t, c.Close(time.Now()))

	p := rescase.DerivePermissions(c)

	assert.Equal(t, rescase.Permissions{}, p, "a closed case allows nothing")
}

func TestDerivePermissions_BlockedCancel(t *testing.T) {
	c := newExchangeInProgressCase(t)
	c.BlockCancel(rescase.ReasonCancelBlockedByDispatch)

	p := rescase.DerivePermissions(c)

	assert.False(t, p.AllowConvertToReturn)
	assert.Equal(t, rescase.ReasonCancelBlockedByDispatch, c.CancelUnavailableReason())
}

// Deriving twice on an unchanged case yields identical permissions: the
// derivation is a pure function of the case row.
func TestDerivePermissions_Pure(t *testing.T) {
	cases := []*rescase.Case{
		newOpenReturnCase(t),
		newOpenExchangeCase(t),
		newExchangeInProgressCase(t),
	}

	for _, c := range cases {
		first := rescase.DerivePermissions(c)
		second := rescase.DerivePermissions(c)

		assert.Equal(t, first, second, c.State().String())
	}
}

func TestDerivePermissions_NilCase(t *testing.T) {
	assert.Equal(t, rescase.Permissions{}, rescase.DerivePermissions(nil))
}
