package rescase_test

import (
	"testing"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCase(t *testing.T) {
	t.Run("return request starts in OpenReturn", func(t *testing.T) {
		id := kernel.NewUUID()
		parcelID := kernel.NewUUID()
		requestedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		c, err := rescase.NewCase(id, parcelID, "size_mismatch", "too small", nil, false, requestedAt)

		require.NoError(t, err)
		assert.True(t, c.ID().IsEqual(id))
		assert.True(t, c.ParcelID().IsEqual(parcelID))
		assert.Equal(t, rescase.OpenReturn, c.State())
		assert.Equal(t, "size_mismatch", c.Reason())
		assert.Equal(t, "too small", c.Comment())
		assert.Equal(t, requestedAt, c.RequestedAt())
		assert.False(t, c.ReceiptConfirmed())
		assert.Nil(t, c.ClosedAt())
		assert.Nil(t, c.ExchangeParcelID())
		assert.EqualValues(t, 1, c.Version())
	})

	t.Run("exchange request starts in OpenExchange", func(t *testing.T) {
		c, err := rescase.NewCase(
			kernel.NewUUID(), kernel.NewUUID(), "damaged", "", nil, true, time.Now())

		require.NoError(t, err)
		assert.Equal(t, rescase.OpenExchange, c.State())
	})

	t.Run("reason is required", func(t *testing.T) {
		_, err := rescase.NewCase(
			kernel.NewUUID(), kernel.NewUUID(), "", "", nil, false, time.Now())

		require.ErrorIs(t, err, rescase.ErrReasonIsRequired)
	})

	t.Run("requestedAt is required", func(t *testing.T) {
		_, err := rescase.NewCase(
			kernel.NewUUID(), kernel.NewUUID(), "damaged", "", nil, false, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid ids rejected", func(t *testing.T) {
		var zero kernel.UUID
		_, err := rescase.NewCase(zero, kernel.NewUUID(), "damaged", "", nil, false, time.Now())
		require.Error(t, err)

		_, err = rescase.NewCase(kernel.NewUUID(), zero, "damaged", "", nil, false, time.Now())
		require.Error(t, err)
	})
}

func TestCase_Validate(t *testing.T) {
	t.Run("constructed case is valid", func(t *testing.T) {
		require.NoError(t, newOpenReturnCase(t).Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var c rescase.Case
		require.ErrorIs(t, c.Validate(), rescase.ErrCaseIsNotConstructed)
	})

	t.Run("nil fails", func(t *testing.T) {
		var c *rescase.Case
		require.ErrorIs(t, c.Validate(), rescase.ErrCaseIsNotConstructed)
	})
}

func TestCase_LaunchExchange(t *testing.T) {
	t.Run("open return becomes open exchange", func(t *testing.T) {
		c := newOpenReturnCase(t)
		now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

		require.NoError(t, c.LaunchExchange(now))

		assert.Equal(t, rescase.OpenExchange, c.State())
		require.NotNil(t, c.DecisionAt())
		assert.Equal(t, now, *c.DecisionAt())
		assert.EqualValues(t, 2, c.Version())
	})

	t.Run("retry is a no-op success", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.LaunchExchange(time.Now()))
		version := c.Version()

		require.NoError(t, c.LaunchExchange(time.Now()))

		assert.Equal(t, rescase.OpenExchange, c.State())
		assert.Equal(t, version, c.Version(), "no-op must not bump the version")
	})

	t.Run("closed case rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))

		require.ErrorIs(t, c.LaunchExchange(time.Now()), errs.ErrCaseClosed)
	})
}

func TestCase_AttachExchangeParcel(t *testing.T) {
	number, err := kernel.NewTrackNumber("EX-100")
	require.NoError(t, err)

	t.Run("links parcel and starts fulfillment", func(t *testing.T) {
		c := newOpenExchangeCase(t)
		parcelID := kernel.NewUUID()

		require.NoError(t, c.AttachExchangeParcel(parcelID, number))

		assert.Equal(t, rescase.ExchangeInProgress, c.State())
		require.NotNil(t, c.ExchangeParcelID())
		assert.True(t, c.ExchangeParcelID().IsEqual(parcelID))
		require.NotNil(t, c.ExchangeParcelNumber())
		assert.Equal(t, "EX-100", c.ExchangeParcelNumber().String())
	})

	t.Run("retry with parcel already linked is a no-op success", func(t *testing.T) {
		c := newExchangeInProgressCase(t)
		linked := *c.ExchangeParcelID()
		version := c.Version()

		require.NoError(t, c.AttachExchangeParcel(kernel.NewUUID(), number))

		assert.True(t, c.ExchangeParcelID().IsEqual(linked), "first linkage wins")
		assert.Equal(t, version, c.Version())
	})

	t.Run("open return rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)

		err := c.AttachExchangeParcel(kernel.NewUUID(), number)

		require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)
	})

	t.Run("closed case rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))

		require.ErrorIs(t, c.AttachExchangeParcel(kernel.NewUUID(), number), errs.ErrCaseClosed)
	})
}

func TestCase_ConvertToReturn(t *testing.T) {
	t.Run("open exchange reopens as return", func(t *testing.T) {
		c := newOpenExchangeCase(t)

		require.NoError(t, c.ConvertToReturn())

		assert.Equal(t, rescase.OpenReturn, c.State())
		assert.Nil(t, c.ExchangeParcelID())
	})

	t.Run("in-progress exchange detaches the parcel", func(t *testing.T) {
		c := newExchangeInProgressCase(t)

		require.NoError(t, c.ConvertToReturn())

		assert.Equal(t, rescase.OpenReturn, c.State())
		assert.Nil(t, c.ExchangeParcelID())
		assert.Nil(t, c.ExchangeParcelNumber())
		assert.Empty(t, c.CancelUnavailableReason())
	})

	t.Run("retry on open return is a no-op success", func(t *testing.T) {
		c := newOpenExchangeCase(t)
		require.NoError(t, c.ConvertToReturn())
		version := c.Version()

		require.NoError(t, c.ConvertToReturn())

		assert.Equal(t, version, c.Version())
	})

	t.Run("dispatched exchange parcel blocks conversion", func(t *testing.T) {
		c := newExchangeInProgressCase(t)
		c.BlockCancel(rescase.ReasonCancelBlockedByDispatch)

		err := c.ConvertToReturn()

		require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)
		assert.Contains(t, err.Error(), rescase.ReasonCancelBlockedByDispatch)
		assert.Equal(t, rescase.ExchangeInProgress, c.State())
	})

	t.Run("closed case rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))

		require.ErrorIs(t, c.ConvertToReturn(), errs.ErrCaseClosed)
	})
}

func TestCase_Close(t *testing.T) {
	t.Run("open return closes freely", func(t *testing.T) {
		c := newOpenReturnCase(t)
		now := time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)

		require.NoError(t, c.Close(now))

		assert.Equal(t, rescase.Closed, c.State())
		require.NotNil(t, c.ClosedAt())
		assert.Equal(t, now, *c.ClosedAt())
	})

	t.Run("exchange without receipt cannot close", func(t *testing.T) {
		c := newExchangeInProgressCase(t)

		err := c.Close(time.Now())

		require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)
		assert.Nil(t, c.ClosedAt())
	})

	t.Run("exchange closes after receipt confirmation", func(t *testing.T) {
		c := newExchangeInProgressCase(t)
		require.NoError(t, c.ConfirmReceipt(time.Now()))

		require.NoError(t, c.Close(time.Now()))

		assert.Equal(t, rescase.Closed, c.State())
		assert.NotNil(t, c.ClosedAt())
	})

	t.Run("closing twice fails with case closed", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))

		require.ErrorIs(t, c.Close(time.Now()), errs.ErrCaseClosed)
	})
}

func TestCase_UpdateReverseTrack(t *testing.T) {
	t.Run("sets track and comment", func(t *testing.T) {
		c := newOpenReturnCase(t)
		track, err := kernel.NewTrackNumber("RR-42")
		require.NoError(t, err)
		comment := "dropped at pickup point"

		require.NoError(t, c.UpdateReverseTrack(&track, &comment))

		require.NotNil(t, c.ReverseTrack())
		assert.Equal(t, "RR-42", c.ReverseTrack().String())
		assert.Equal(t, comment, c.Comment())
	})

	t.Run("nil arguments leave fields untouched", func(t *testing.T) {
		c := newOpenReturnCase(t)
		track, err := kernel.NewTrackNumber("RR-42")
		require.NoError(t, err)
		require.NoError(t, c.UpdateReverseTrack(&track, nil))
		version := c.Version()

		require.NoError(t, c.UpdateReverseTrack(nil, nil))

		assert.Equal(t, "RR-42", c.ReverseTrack().String())
		assert.Equal(t, version, c.Version())
	})

	t.Run("identical values do not bump the version", func(t *testing.T) {
		c := newOpenReturnCase(t)
		track, err := kernel.NewTrackNumber("RR-42")
		require.NoError(t, err)
		require.NoError(t, c.UpdateReverseTrack(&track, nil))
		version := c.Version()

		require.NoError(t, c.UpdateReverseTrack(&track, nil))

		assert.Equal(t, version, c.Version())
	})

	t.Run("closed case rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))
		track, err := kernel.NewTrackNumber("RR-42")
		require.NoError(t, err)

		require.ErrorIs(t, c.UpdateReverseTrack(&track, nil), errs.ErrCaseClosed)
	})
}

func TestCase_ConfirmReceipt(t *testing.T) {
	t.Run("confirms once", func(t *testing.T) {
		c := newOpenReturnCase(t)
		now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

		require.NoError(t, c.ConfirmReceipt(now))

		assert.True(t, c.ReceiptConfirmed())
		require.NotNil(t, c.ReceiptConfirmedAt())
		assert.Equal(t, now, *c.ReceiptConfirmedAt())
	})

	t.Run("confirmation is monotonic", func(t *testing.T) {
		c := newOpenReturnCase(t)
		first := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
		require.NoError(t, c.ConfirmReceipt(first))
		version := c.Version()

		require.NoError(t, c.ConfirmReceipt(first.Add(time.Hour)))

		assert.True(t, c.ReceiptConfirmed())
		assert.Equal(t, first, *c.ReceiptConfirmedAt(), "first confirmation wins")
		assert.Equal(t, version, c.Version())
	})

	t.Run("closed case rejects", func(t *testing.T) {
		c := newOpenReturnCase(t)
		require.NoError(t, c.Close(time.Now()))

		require.ErrorIs(t, c.ConfirmReceipt(time.Now()), errs.ErrCaseClosed)
	})
}

func TestRestoreCase(t *testing.T) {
	t.Run("roundtrip through restore params", func(t *testing.T) {
		original := newExchangeInProgressCase(t)
		require.NoError(t, original.ConfirmReceipt(time.Now()))

		restored, err := rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:                   original.ID(),
			ParcelID:             original.ParcelID(),
			State:                original.State(),
			Reason:               original.Reason(),
			Comment:              original.Comment(),
			RequestedAt:          original.RequestedAt(),
			DecisionAt:           original.DecisionAt(),
			ClosedAt:             original.ClosedAt(),
			ReverseTrack:         original.ReverseTrack(),
			ReceiptConfirmed:     original.ReceiptConfirmed(),
			ReceiptConfirmedAt:   original.ReceiptConfirmedAt(),
			ExchangeParcelID:     original.ExchangeParcelID(),
			ExchangeParcelNumber: original.ExchangeParcelNumber(),
			Version:              original.Version(),
		})

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.State(), restored.State())
		assert.Equal(t, original.Version(), restored.Version())
		assert.Equal(t, rescase.DerivePermissions(original), rescase.DerivePermissions(restored))
	})

	t.Run("closedAt must match terminal state", func(t *testing.T) {
		now := time.Now()
		_, err := rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:          kernel.NewUUID(),
			ParcelID:    kernel.NewUUID(),
			State:       rescase.OpenReturn,
			Reason:      "damaged",
			RequestedAt: now,
			ClosedAt:    &now,
			Version:     1,
		})
		require.Error(t, err)

		_, err = rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:          kernel.NewUUID(),
			ParcelID:    kernel.NewUUID(),
			State:       rescase.Closed,
			Reason:      "damaged",
			RequestedAt: now,
			Version:     1,
		})
		require.Error(t, err)
	})

	t.Run("exchange parcel linkage must match state", func(t *testing.T) {
		id := kernel.NewUUID()
		_, err := rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:               kernel.NewUUID(),
			ParcelID:         kernel.NewUUID(),
			State:            rescase.OpenReturn,
			Reason:           "damaged",
			RequestedAt:      time.Now(),
			ExchangeParcelID: &id,
			Version:          1,
		})
		require.Error(t, err)

		_, err = rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:          kernel.NewUUID(),
			ParcelID:    kernel.NewUUID(),
			State:       rescase.ExchangeInProgress,
			Reason:      "damaged",
			RequestedAt: time.Now(),
			Version:     1,
		})
		require.Error(t, err)
	})

	t.Run("receipt timestamp must accompany the flag", func(t *testing.T) {
		_, err := rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:               kernel.NewUUID(),
			ParcelID:         kernel.NewUUID(),
			State:            rescase.OpenReturn,
			Reason:           "damaged",
			RequestedAt:      time.Now(),
			ReceiptConfirmed: true,
			Version:          1,
		})
		require.Error(t, err)
	})

	t.Run("version below one is invalid", func(t *testing.T) {
		_, err := rescase.RestoreCase(rescase.RestoreCaseParams{
			ID:          kernel.NewUUID(),
			ParcelID:    kernel.NewUUID(),
			State:       rescase.OpenReturn,
			Reason:      "damaged",
			RequestedAt: time.Now(),
			Version:     0,
		})
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

// Full lifecycle: return -> exchange -> parcel created -> receipt -> closed.
func TestCase_ExchangeLifecycle(t *testing.T) {
	c := newOpenReturnCase(t)

	require.NoError(t, c.LaunchExchange(time.Now()))
	assert.Equal(t, rescase.OpenExchange, c.State())
	assert.True(t, rescase.DerivePermissions(c).AllowCreateExchangeParcel)

	number, err := kernel.NewTrackNumber("EX-7")
	require.NoError(t, err)
	require.NoError(t, c.AttachExchangeParcel(kernel.NewUUID(), number))
	assert.Equal(t, rescase.ExchangeInProgress, c.State())
	assert.False(t, rescase.DerivePermissions(c).AllowCreateExchangeParcel)

	require.ErrorIs(t, c.Close(time.Now()), errs.ErrTransitionNotAllowed)

	require.NoError(t, c.ConfirmReceipt(time.Now()))
	require.NoError(t, c.Close(time.Now()))
	assert.Equal(t, rescase.Closed, c.State())
	assert.NotNil(t, c.ClosedAt())
}
