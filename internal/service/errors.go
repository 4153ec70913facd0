package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/events"
	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/storage"
)

// validationErrors are caused by the request content, never by the server.
var validationErrors = []error{
	money.ErrInvalidAmount,
	money.ErrOverflow,
	money.ErrPrecisionOverflow,
	calculator.ErrEmptyDebtorSet,
	calculator.ErrUnknownPersonReference,
	calculator.ErrDuplicatePerson,
	calculator.ErrSelfSettlement,
	calculator.ErrInvalidWeight,
}

// connectError maps storage and ledger errors to Connect status codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrPersonInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// publish hands an event to the publisher once the mutation is committed.
// A failed publish is logged and counted; the RPC still succeeds.
func publish(ctx context.Context, publisher events.Publisher, eventType, groupID, entityID string) {
	err := publisher.Publish(ctx, events.NewLedgerEvent(eventType, groupID, entityID))
	metrics.ObserveEvent(eventType, err)
	if err != nil {
		slog.Warn("Failed to publish ledger event",
			"type", eventType,
			"group_id", groupID,
			"entity_id", entityID,
			"error", err,
		)
	}
}
