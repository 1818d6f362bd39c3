package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

// RoomDirectory is the slice of the room registry the lifecycle engine
// needs: resolving a room and seeing its status.
type RoomDirectory interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

type CreateRequest struct {
	UserID       string
	RoomID       string
	GuestName    string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// UpdateRequest patches a subset of booking fields. Nil means "leave as is".
type UpdateRequest struct {
	GuestName    *string
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	RoomID       *string
}

func (r UpdateRequest) empty() bool {
	return r.GuestName == nil && r.CheckInDate == nil && r.CheckOutDate == nil && r.RoomID == nil
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	// GetByID returns the booking if the caller owns it or is an admin.
	GetByID(ctx context.Context, id, callerUserID string, isAdmin bool) (*Booking, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	ListAll(ctx context.Context, page, pageSize int) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Booking, error)
	Cancel(ctx context.Context, id, callerUserID string) (*Booking, error)
	// SetStatus is the administrative override. It applies no ownership,
	// cutoff or overlap re-check; the storage constraint still rejects a
	// change that would produce two overlapping active bookings.
	SetStatus(ctx context.Context, id string, status string) (*Booking, error)
}

type service struct {
	repo     Repository
	rooms    RoomDirectory
	notifier Notifier
	now      func() time.Time
}

// Option customizes the service; used by tests to pin the clock.
type Option func(*service)

// WithClock overrides the time source used for the cancellation cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repo Repository, rooms RoomDirectory, notifier Notifier, opts ...Option) Service {
	s := &service{
		repo:     repo,
		rooms:    rooms,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Presence. The HTTP layer binds required fields already; re-checking
	// here keeps the engine safe for any other caller.
	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" || req.RoomID == "" || req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return nil, ErrMissingFields
	}

	// 2. Ordering, strictly: a zero-night stay is meaningless under the
	// half-open range semantics.
	if !req.CheckInDate.Before(req.CheckOutDate) {
		return nil, ErrInvalidDateRange
	}

	// 3. Room must exist and be open for booking.
	rm, err := s.availableRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	// 4. Overlap fast path. The exclusion constraint re-checks atomically on
	// insert, so a race between two requests cannot double-book.
	if err := s.ensureNoOverlap(ctx, rm.ID, req.CheckInDate, req.CheckOutDate, ""); err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:       req.UserID,
		RoomID:       rm.ID,
		GuestName:    guestName,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Status:       DefaultStatus,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	b.RoomNumber = rm.RoomNumber
	b.RoomType = string(rm.RoomType)
	b.PricePerNight = rm.PricePerNight

	// Confirmation is fire-and-forget: a notification failure is logged and
	// never surfaced to the caller, and it never rolls back the booking.
	go func(b Booking, rm room.Room) {
		if err := s.notifier.BookingCreated(context.WithoutCancel(ctx), &b, &rm); err != nil {
			log.Printf("booking %s: confirmation dispatch failed: %v", b.ID, err)
		}
	}(*b, *rm)

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, callerUserID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListByUser(ctx, userID, page, pageSize)
}

func (s *service) ListAll(ctx context.Context, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListAll(ctx, page, pageSize)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}
	if b.Status.IsTerminal() {
		return nil, terminalStateError("update", b.Status)
	}
	if req.empty() {
		return nil, ErrNoUpdateFields
	}

	if req.GuestName != nil {
		name := strings.TrimSpace(*req.GuestName)
		if name == "" {
			return nil, ErrMissingFields
		}
		b.GuestName = name
	}

	// Merge patched dates onto the existing ones, then validate the
	// resulting pair: patching one side must not silently invert the range
	// against the untouched sibling.
	newCheckIn := b.CheckInDate
	newCheckOut := b.CheckOutDate
	if req.CheckInDate != nil {
		newCheckIn = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		newCheckOut = *req.CheckOutDate
	}
	if !newCheckIn.Before(newCheckOut) {
		return nil, ErrInvalidDateRange
	}

	newRoomID := b.RoomID
	if req.RoomID != nil {
		rm, err := s.availableRoom(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		newRoomID = rm.ID
	}

	// Conflict check on the resulting room and dates, ignoring this
	// booking's own row.
	if err := s.ensureNoOverlap(ctx, newRoomID, newCheckIn, newCheckOut, b.ID); err != nil {
		return nil, err
	}

	b.RoomID = newRoomID
	b.CheckInDate = newCheckIn
	b.CheckOutDate = newCheckOut

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Cancel(ctx context.Context, id, callerUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}
	if b.Status.IsTerminal() {
		return nil, terminalStateError("cancel", b.Status)
	}

	cutoff := b.CheckInDate.Add(-CancellationCutoff)
	if !s.now().Before(cutoff) {
		return nil, ErrCancellationLate
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status string) (*Booking, error) {
	newStatus, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Status = newStatus
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// availableRoom resolves a room and requires it to be open for booking.
// Both "missing" and "taken out of service" collapse into one failure kind
// so callers cannot probe which rooms exist.
func (s *service) availableRoom(ctx context.Context, roomID string) (*room.Room, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}
	if rm.Status != room.StatusAvailable {
		return nil, ErrRoomUnavailable
	}
	return rm, nil
}

func (s *service) ensureNoOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) error {
	conflict, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrDateConflict
	}
	return nil
}

// terminalStateError names the status blocking the operation so the client
// can render an actionable message.
func terminalStateError(op string, st Status) error {
	return apperror.Wrap(ErrTerminalState, http.StatusBadRequest,
		fmt.Sprintf("cannot %s a booking that is already %s", op, st))
}
