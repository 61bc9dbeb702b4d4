package projection_test

import (
	"testing"
	"time"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturnCase(t *testing.T) *rescase.Case {
	t.Helper()
	c, err := rescase.NewCase(
		kernel.NewUUID(), kernel.NewUUID(),
		"size_mismatch", "too small", nil, false, time.Now())
	require.NoError(t, err)
	return c
}

func TestFromCase_OpenReturn(t *testing.T) {
	c := newReturnCase(t)

	s := projection.FromCase(c)

	assert.Equal(t, c.ID().String(), s.CaseID)
	assert.Equal(t, c.ParcelID().String(), s.ParcelID)
	assert.Equal(t, "OPEN_RETURN", s.State)
	assert.Equal(t, "Return requested", s.StateLabel)
	assert.Equal(t, "size_mismatch", s.Reason)
	assert.Equal(t, "Size mismatch", s.ReasonLabel)
	assert.Equal(t, "too small", s.Comment)
	assert.True(t, s.Permissions.AllowLaunchExchange)
	assert.True(t, s.Permissions.AllowClose)
	assert.False(t, s.Permissions.AllowCreateExchangeParcel)
	assert.Nil(t, s.ExchangeParcel)
	assert.EqualValues(t, 1, s.Version)
	assert.Equal(t, "Add the reverse track number so the returned shipment can be traced", s.Hint)
	assert.Empty(t, s.Warnings)
	assert.NotNil(t, s.Warnings, "warnings serializes as [] rather than null")
}

func TestFromCase_HintClearedByReverseTrack(t *testing.T) {
	c := newReturnCase(t)
	track, err := kernel.NewTrackNumber("RR-1")
	require.NoError(t, err)
	require.NoError(t, c.UpdateReverseTrack(&track, nil))

	s := projection.FromCase(c)

	assert.Empty(t, s.Hint)
	assert.Equal(t, "RR-1", s.ReverseTrackNumber)
}

func TestFromCase_OpenExchange(t *testing.T) {
	c := newReturnCase(t)
	require.NoError(t, c.LaunchExchange(time.Now()))

	s := projection.FromCase(c)

	assert.Equal(t, "OPEN_EXCHANGE", s.State)
	assert.Equal(t, "Exchange approved", s.StateLabel)
	assert.NotNil(t, s.DecisionAt)
	assert.True(t, s.Permissions.AllowCreateExchangeParcel)
	assert.Equal(t,
		"Confirm receipt of the returned goods before creating the exchange parcel", s.Hint)
	assert.Contains(t, s.Warnings,
		"The case cannot be closed until receipt of the returned goods is confirmed")
}

func TestFromCase_ExchangeInProgress(t *testing.T) {
	c := newReturnCase(t)
	require.NoError(t, c.LaunchExchange(time.Now()))
	number, err := kernel.NewTrackNumber("EX-9")
	require.NoError(t, err)
	exchangeParcelID := kernel.NewUUID()
	require.NoError(t, c.AttachExchangeParcel(exchangeParcelID, number))

	s := projection.FromCase(c)

	assert.Equal(t, "EXCHANGE_IN_PROGRESS", s.State)
	require.NotNil(t, s.ExchangeParcel)
	assert.Equal(t, exchangeParcelID.String(), s.ExchangeParcel.ID)
	assert.Equal(t, "EX-9", s.ExchangeParcel.Number)
	assert.Equal(t, "Preparing for dispatch", s.ExchangeParcel.StatusLabel)
	assert.False(t, s.Permissions.AllowCreateExchangeParcel)
	assert.Empty(t, s.Hint, "no receipt hint once the parcel exists")
}

func TestFromCase_BlockedCancel(t *testing.T) {
	c := newReturnCase(t)
	require.NoError(t, c.LaunchExchange(time.Now()))
	number, err := kernel.NewTrackNumber("EX-9")
	require.NoError(t, err)
	require.NoError(t, c.AttachExchangeParcel(kernel.NewUUID(), number))
	c.BlockCancel(rescase.ReasonCancelBlockedByDispatch)

	s := projection.FromCase(c)

	assert.Equal(t, rescase.ReasonCancelBlockedByDispatch, s.CancelUnavailableReason)
	assert.False(t, s.Permissions.AllowConvertToReturn)
	assert.Equal(t, "Dispatched", s.ExchangeParcel.StatusLabel)
	assert.Contains(t, s.Warnings,
		"Cancelling the exchange is unavailable: "+rescase.ReasonCancelBlockedByDispatch)
}

func TestFromCase_Closed(t *testing.T) {
	c := newReturnCase(t)
	require.NoError(t, c.Close(time.Now()))

	s := projection.FromCase(c)

	assert.Equal(t, "CLOSED", s.State)
	assert.Equal(t, "Closed", s.StateLabel)
	assert.NotNil(t, s.ClosedAt)
	assert.Equal(t, projection.PermissionSet{}, s.Permissions)
	assert.Empty(t, s.Hint)
}

func TestReasonLabel(t *testing.T) {
	assert.Equal(t, "Damaged in transit", projection.ReasonLabel("damaged"))
	assert.Equal(t, "Wrong item delivered", projection.ReasonLabel("wrong_item"))
	assert.Equal(t, "my own words", projection.ReasonLabel("my own words"))
}

func TestStateLabel_Unknown(t *testing.T) {
	assert.Equal(t, "Unknown", projection.StateLabel(rescase.Unknown))
}
