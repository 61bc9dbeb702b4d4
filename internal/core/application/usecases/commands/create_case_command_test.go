package commands_test

import (
	"testing"
	"time"

	"returns/internal/core/application/usecases/commands"
	"returns/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCaseCommand_Success(t *testing.T) {
	parcelID := kernel.NewUUID()
	track, err := kernel.NewTrackNumber("RX-42")
	require.NoError(t, err)
	requestedAt := time.Now().UTC()

	cmd, err := commands.NewCreateCaseCommand(
		parcelID, "damaged", "cracked screen", &track, true, "key-1", requestedAt)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.ParcelID().IsEqual(parcelID))
	assert.Equal(t, "damaged", cmd.Reason())
	assert.Equal(t, "cracked screen", cmd.Comment())
	assert.Equal(t, "RX-42", cmd.ReverseTrack().String())
	assert.True(t, cmd.IsExchange())
	assert.Equal(t, "key-1", cmd.IdempotencyKey())
	assert.Equal(t, requestedAt, cmd.RequestedAt())
}

func TestNewCreateCaseCommand_ValidationErrors(t *testing.T) {
	parcelID := kernel.NewUUID()
	now := time.Now().UTC()

	tests := []struct {
		name     string
		parcelID kernel.UUID
		reason   string
		key      string
		wantErr  error
	}{
		{"empty reason", parcelID, "", "key-1", commands.ErrReasonIsRequired},
		{"empty idempotency key", parcelID, "damaged", "", commands.ErrIdempotencyKeyIsRequired},
		{"invalid parcel id", kernel.UUID{}, "damaged", "key-1", kernel.ErrUUIDIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateCaseCommand(
				tt.parcelID, tt.reason, "", nil, false, tt.key, now)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateCaseCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateCaseCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCaseCommandIsNotConstructed)
}

func TestCreateCaseCommand_Fingerprint(t *testing.T) {
	parcelID := kernel.NewUUID()

	first, err := commands.NewCreateCaseCommand(
		parcelID, "damaged", "note", nil, false, "key-1", time.Now().UTC())
	require.NoError(t, err)

	// Same payload retried later with a fresh timestamp must replay cleanly.
	retry, err := commands.NewCreateCaseCommand(
		parcelID, "damaged", "note", nil, false, "key-1", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), retry.Fingerprint())

	changed, err := commands.NewCreateCaseCommand(
		parcelID, "damaged", "note", nil, true, "key-1", time.Now().UTC())
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), changed.Fingerprint())
}
