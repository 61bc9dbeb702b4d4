// Package http exposes the case resolution engine over its REST API. Every
// command responds with the full case snapshot, so clients resynchronize
// from any response without a follow-up read.
package http

import (
	"errors"
	"net/http"
	"time"

	"returns/internal/core/application/usecases/commands"
	"returns/internal/core/application/usecases/queries"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createCaseHandler         commands.CreateCaseCommandHandler
	launchExchangeHandler     commands.LaunchExchangeCommandHandler
	createExchangeParcel      commands.CreateExchangeParcelCommandHandler
	convertToReturnHandler    commands.ConvertToReturnCommandHandler
	closeCaseHandler          commands.CloseCaseCommandHandler
	updateReverseTrackHandler commands.UpdateReverseTrackCommandHandler
	confirmReceiptHandler     commands.ConfirmReceiptCommandHandler

	// Query handlers
	getCaseHandler        queries.GetCaseQueryHandler
	getCaseHistoryHandler queries.GetCaseHistoryQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createCaseHandler commands.CreateCaseCommandHandler,
	launchExchangeHandler commands.LaunchExchangeCommandHandler,
	createExchangeParcel commands.CreateExchangeParcelCommandHandler,
	convertToReturnHandler commands.ConvertToReturnCommandHandler,
	closeCaseHandler commands.CloseCaseCommandHandler,
	updateReverseTrackHandler commands.UpdateReverseTrackCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	getCaseHandler queries.GetCaseQueryHandler,
	getCaseHistoryHandler queries.GetCaseHistoryQueryHandler,
) *Server {
	return &Server{
		createCaseHandler:         createCaseHandler,
		launchExchangeHandler:     launchExchangeHandler,
		createExchangeParcel:      createExchangeParcel,
		convertToReturnHandler:    convertToReturnHandler,
		closeCaseHandler:          closeCaseHandler,
		updateReverseTrackHandler: updateReverseTrackHandler,
		confirmReceiptHandler:     confirmReceiptHandler,
		getCaseHandler:            getCaseHandler,
		getCaseHistoryHandler:     getCaseHistoryHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	parcels := e.Group("/api/v1/parcels/:parcelId")

	parcels.POST("/cases", s.CreateCase)
	parcels.GET("/cases", s.GetCaseHistory)
	parcels.GET("/cases/:caseId", s.GetCase)
	parcels.POST("/cases/:caseId/exchange", s.LaunchExchange)
	parcels.POST("/cases/:caseId/exchange-parcel", s.CreateExchangeParcel)
	parcels.POST("/cases/:caseId/convert-to-return", s.ConvertToReturn)
	parcels.POST("/cases/:caseId/close", s.CloseCase)
	parcels.POST("/cases/:caseId/receipt", s.ConfirmReceipt)
	parcels.PATCH("/cases/:caseId/reverse-track", s.UpdateReverseTrack)
}

// ErrorResponse is the error body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateCaseRequest is the body of POST /cases. The idempotency key travels
// in the Idempotency-Key header, not the body.
type CreateCaseRequest struct {
	Reason             string  `json:"reason"`
	Comment            string  `json:"comment"`
	ReverseTrackNumber *string `json:"reverseTrackNumber"`
	IsExchange         bool    `json:"isExchange"`
}

// UpdateReverseTrackRequest is the body of PATCH /reverse-track. Absent
// fields keep their current values.
type UpdateReverseTrackRequest struct {
	ReverseTrackNumber *string `json:"reverseTrackNumber"`
	Comment            *string `json:"comment"`
}

// CreateCase handles POST /api/v1/parcels/:parcelId/cases.
func (s *Server) CreateCase(ctx echo.Context) error {
	parcelID, err := routeUUID(ctx, "parcelId")
	if err != nil {
		return respondError(ctx, err)
	}

	var request CreateCaseRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var reverseTrack *kernel.TrackNumber
	if request.ReverseTrackNumber != nil {
		track, trackErr := kernel.NewTrackNumber(*request.ReverseTrackNumber)
		if trackErr != nil {
			return respondError(ctx, trackErr)
		}
		reverseTrack = &track
	}

	cmd, err := commands.NewCreateCaseCommand(
		parcelID,
		request.Reason,
		request.Comment,
		reverseTrack,
		request.IsExchange,
		ctx.Request().Header.Get("Idempotency-Key"),
		time.Now().UTC(),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.createCaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, snapshot)
}

// GetCase handles GET /api/v1/parcels/:parcelId/cases/:caseId.
func (s *Server) GetCase(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCaseQuery(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.getCaseHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetCaseHistory handles GET /api/v1/parcels/:parcelId/cases.
func (s *Server) GetCaseHistory(ctx echo.Context) error {
	parcelID, err := routeUUID(ctx, "parcelId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCaseHistoryQuery(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getCaseHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

// LaunchExchange handles POST /api/v1/parcels/:parcelId/cases/:caseId/exchange.
func (s *Server) LaunchExchange(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewLaunchExchangeCommand(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.launchExchangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// CreateExchangeParcel handles POST /api/v1/parcels/:parcelId/cases/:caseId/exchange-parcel.
func (s *Server) CreateExchangeParcel(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateExchangeParcelCommand(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.createExchangeParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// ConvertToReturn handles POST /api/v1/parcels/:parcelId/cases/:caseId/convert-to-return.
func (s *Server) ConvertToReturn(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConvertToReturnCommand(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.convertToReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// CloseCase handles POST /api/v1/parcels/:parcelId/cases/:caseId/close.
func (s *Server) CloseCase(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCloseCaseCommand(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.closeCaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// ConfirmReceipt handles POST /api/v1/parcels/:parcelId/cases/:caseId/receipt.
func (s *Server) ConfirmReceipt(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmReceiptCommand(parcelID, caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.confirmReceiptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// UpdateReverseTrack handles PATCH /api/v1/parcels/:parcelId/cases/:caseId/reverse-track.
func (s *Server) UpdateReverseTrack(ctx echo.Context) error {
	parcelID, caseID, err := caseRouteIDs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request UpdateReverseTrackRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var reverseTrack *kernel.TrackNumber
	if request.ReverseTrackNumber != nil {
		track, trackErr := kernel.NewTrackNumber(*request.ReverseTrackNumber)
		if trackErr != nil {
			return respondError(ctx, trackErr)
		}
		reverseTrack = &track
	}

	cmd, err := commands.NewUpdateReverseTrackCommand(parcelID, caseID, reverseTrack, request.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.updateReverseTrackHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

func caseRouteIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	parcelID, err := routeUUID(ctx, "parcelId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	caseID, err := routeUUID(ctx, "caseId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return parcelID, caseID, nil
}

func routeUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

// respondError maps an application error to its HTTP status. Domain refusals
// are conflicts, validation failures are bad requests, a reused key with a
// different payload is unprocessable, and anything else is treated as a
// temporary infrastructure failure.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusServiceUnavailable

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIdempotencyConflict):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrNotEligible),
		errors.Is(err, errs.ErrCaseClosed),
		errors.Is(err, errs.ErrTransitionNotAllowed),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case isValidationError(err):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func isValidationError(err error) bool {
	if errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return true
	}

	// Command and query constructor guard failures.
	return errors.Is(err, commands.ErrReasonIsRequired) ||
		errors.Is(err, commands.ErrIdempotencyKeyIsRequired) ||
		errors.Is(err, commands.ErrNothingToUpdate) ||
		errors.Is(err, kernel.ErrUUIDIsNotConstructed)
}
