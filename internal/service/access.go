package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// tripAccess resolves records on behalf of the calling user. Every lookup
// checks that the record's trip belongs to the caller.
type tripAccess struct {
	store storage.Store
}

func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// trip loads a trip owned by the caller.
func (a tripAccess) trip(ctx context.Context, tripID string) (*models.Trip, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if tripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	trip, err := a.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if trip.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return trip, nil
}

// participant loads a participant whose trip is owned by the caller.
func (a tripAccess) participant(ctx context.Context, participantID string) (*models.Participant, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	if participantID == "" {
		return nil, invalidArgument("participant_id required")
	}

	p, err := a.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := a.trip(ctx, p.TripID); err != nil {
		return nil, err
	}
	return p, nil
}

// receipt loads a receipt whose trip is owned by the caller.
func (a tripAccess) receipt(ctx context.Context, receiptID string) (*models.ReceiptWithItems, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	if receiptID == "" {
		return nil, invalidArgument("receipt_id required")
	}

	r, err := a.store.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := a.trip(ctx, r.TripID); err != nil {
		return nil, err
	}
	return r, nil
}

// ledger is everything the calculator needs about one trip.
type ledger struct {
	participants []models.Participant
	receipts     []models.ReceiptWithItems
}

// selfID returns the owner's participant ID, or "" if the trip has none.
func (l ledger) selfID() string {
	for _, p := range l.participants {
		if p.IsSelf {
			return p.ID
		}
	}
	return ""
}

// loadLedger fetches a trip's participants and receipts concurrently.
func (a tripAccess) loadLedger(ctx context.Context, tripID string) (ledger, error) {
	var l ledger
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		participants, err := a.store.ListParticipantsByTrip(gctx, tripID)
		if err != nil {
			return fmt.Errorf("load participants: %w", err)
		}
		l.participants = participants
		return nil
	})
	g.Go(func() error {
		receipts, err := a.store.ListReceiptsByTrip(gctx, tripID)
		if err != nil {
			return fmt.Errorf("load receipts: %w", err)
		}
		l.receipts = receipts
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger{}, toConnectError(err)
	}
	return l, nil
}
