package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/server/models"
	"github.com/pkolesov/launchbook/internal/server/repositories/launches"
	"github.com/pkolesov/launchbook/internal/server/repositories/trips"
)

// BookingResult reports the outcome of a booking mutation. Success is
// false when any requested launch could not be booked; Message explains
// either way.
type BookingResult struct {
	Success bool
	Message string
}

type BookingService struct {
	launches launches.Repository
	trips    trips.Repository
}

func NewBookingService(launchRepo launches.Repository, tripRepo trips.Repository) *BookingService {
	return &BookingService{launches: launchRepo, trips: tripRepo}
}

func (s *BookingService) Launches(ctx context.Context) ([]models.Launch, error) {
	list, err := s.launches.List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return list, nil
}

func (s *BookingService) BookTrips(ctx context.Context, userID string, launchIDs []string) (*BookingResult, error) {

	if len(launchIDs) == 0 {
		return &BookingResult{Success: false, Message: "no launches specified"}, nil
	}

	booked, err := s.trips.Book(ctx, userID, launchIDs)
	if err != nil {
		return nil, common.ErrInternal
	}

	if len(booked) == len(launchIDs) {
		return &BookingResult{
			Success: true,
			Message: "trips booked successfully",
		}, nil
	}

	bookedSet := make(map[string]bool, len(booked))
	for _, id := range booked {
		bookedSet[id] = true
	}
	var failed []string
	for _, id := range launchIDs {
		if !bookedSet[id] {
			failed = append(failed, id)
		}
	}

	return &BookingResult{
		Success: false,
		Message: fmt.Sprintf("the following launches couldn't be booked: %s", strings.Join(failed, ", ")),
	}, nil
}

func (s *BookingService) CancelTrip(ctx context.Context, userID string, launchID string) (*BookingResult, error) {

	err := s.trips.Cancel(ctx, userID, launchID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &BookingResult{Success: false, Message: fmt.Sprintf("launch %s is not booked", launchID)}, nil
		}
		return nil, common.ErrInternal
	}

	return &BookingResult{Success: true, Message: fmt.Sprintf("launch %s cancelled", launchID)}, nil
}

func (s *BookingService) BookedTrips(ctx context.Context, userID string) ([]models.Launch, error) {
	list, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}
	return list, nil
}
