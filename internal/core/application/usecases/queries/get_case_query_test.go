package queries_test

import (
	"testing"

	"returns/internal/core/application/usecases/queries"
	"returns/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCaseQuery(t *testing.T) {
	parcelID := kernel.NewUUID()
	caseID := kernel.NewUUID()

	query, err := queries.NewGetCaseQuery(parcelID, caseID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ParcelID().IsEqual(parcelID))
	assert.True(t, query.CaseID().IsEqual(caseID))

	_, err = queries.NewGetCaseQuery(kernel.UUID{}, caseID)
	require.Error(t, err)

	_, err = queries.NewGetCaseQuery(parcelID, kernel.UUID{})
	require.Error(t, err)
}

func TestGetCaseQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetCaseQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetCaseQueryIsNotConstructed)
}

func TestNewGetCaseHistoryQuery(t *testing.T) {
	parcelID := kernel.NewUUID()

	query, err := queries.NewGetCaseHistoryQuery(parcelID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ParcelID().IsEqual(parcelID))

	_, err = queries.NewGetCaseHistoryQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetCaseHistoryQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetCaseHistoryQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetCaseHistoryQueryIsNotConstructed)
}
