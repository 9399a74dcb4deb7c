package app

import "context"

// DayScheduleUseCase builds the merged timeline for one day.
type DayScheduleUseCase interface {
	DaySchedule(ctx context.Context, req DayScheduleRequest) (*DayScheduleResponse, error)
}

// CanPlaceUseCase dry-runs one candidate against a stored day.
type CanPlaceUseCase interface {
	CanPlace(ctx context.Context, req CanPlaceRequest) (*CanPlaceResponse, error)
}

// AutoFillUseCase bulk-adds candidates that fit a day.
type AutoFillUseCase interface {
	AutoFill(ctx context.Context, req AutoFillRequest) (*AutoFillResponse, error)
}
