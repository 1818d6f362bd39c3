package room_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

type fakeRepo struct {
	mu    sync.Mutex
	rooms map[string]*room.Room
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rooms: make(map[string]*room.Room)}
}

func (f *fakeRepo) Create(_ context.Context, rm *room.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.rooms {
		if existing.RoomNumber == rm.RoomNumber {
			return room.ErrNumberTaken
		}
	}

	f.seq++
	rm.ID = fmt.Sprintf("room-%d", f.seq)
	rm.CreatedAt = time.Now()
	rm.UpdatedAt = rm.CreatedAt

	clone := *rm
	f.rooms[rm.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*room.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	clone := *rm
	return &clone, nil
}

func (f *fakeRepo) GetByNumber(_ context.Context, number int) (*room.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rm := range f.rooms {
		if rm.RoomNumber == number {
			clone := *rm
			return &clone, nil
		}
	}
	return nil, room.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, filter room.Filter) ([]*room.Room, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*room.Room
	for _, rm := range f.rooms {
		if filter.RoomType != "" && string(rm.RoomType) != filter.RoomType {
			continue
		}
		if filter.Status != "" && string(rm.Status) != filter.Status {
			continue
		}
		clone := *rm
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, rm *room.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rooms[rm.ID]; !ok {
		return room.ErrNotFound
	}
	rm.UpdatedAt = time.Now()
	clone := *rm
	f.rooms[rm.ID] = &clone
	return nil
}

func (f *fakeRepo) AddImages(_ context.Context, id string, urls []string) (*room.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	rm.Images = append(rm.Images, urls...)
	clone := *rm
	return &clone, nil
}

// fakeChecker stands in for the booking repository's upcoming-bookings probe.
type fakeChecker struct {
	busy bool
}

func (f *fakeChecker) HasUpcomingBookings(_ context.Context, _ string, _ time.Time) (bool, error) {
	return f.busy, nil
}

func newService(checker *fakeChecker) (room.Service, *fakeRepo) {
	repo := newFakeRepo()
	return room.NewService(repo, checker), repo
}

func TestCreateRoom(t *testing.T) {
	svc, _ := newService(&fakeChecker{})
	ctx := context.Background()

	t.Run("success with defaults", func(t *testing.T) {
		rm, err := svc.Create(ctx, room.CreateRequest{
			RoomNumber:    101,
			RoomType:      "Single",
			PricePerNight: 1200,
			Capacity:      2,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, rm.ID)
		assert.Equal(t, room.TypeSingle, rm.RoomType)
		assert.Equal(t, room.StatusAvailable, rm.Status, "status defaults to Available")
	})

	t.Run("duplicate number", func(t *testing.T) {
		_, err := svc.Create(ctx, room.CreateRequest{
			RoomNumber:    101,
			RoomType:      "Double",
			PricePerNight: 1800,
			Capacity:      4,
		})
		assert.ErrorIs(t, err, room.ErrNumberTaken)
	})

	cases := []struct {
		name    string
		req     room.CreateRequest
		wantErr error
	}{
		{
			name:    "non-positive number",
			req:     room.CreateRequest{RoomNumber: 0, RoomType: "Single", PricePerNight: 100, Capacity: 1},
			wantErr: room.ErrInvalidNumber,
		},
		{
			name:    "unknown type",
			req:     room.CreateRequest{RoomNumber: 102, RoomType: "Penthouse", PricePerNight: 100, Capacity: 1},
			wantErr: room.ErrInvalidType,
		},
		{
			name:    "negative price",
			req:     room.CreateRequest{RoomNumber: 102, RoomType: "Single", PricePerNight: -1, Capacity: 1},
			wantErr: room.ErrInvalidPrice,
		},
		{
			name:    "zero capacity",
			req:     room.CreateRequest{RoomNumber: 102, RoomType: "Single", PricePerNight: 100, Capacity: 0},
			wantErr: room.ErrInvalidCapacity,
		},
		{
			name:    "unknown status",
			req:     room.CreateRequest{RoomNumber: 102, RoomType: "Single", PricePerNight: 100, Capacity: 1, Status: "Haunted"},
			wantErr: room.ErrInvalidStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateRoom(t *testing.T) {
	svc, _ := newService(&fakeChecker{})
	ctx := context.Background()

	rm, err := svc.Create(ctx, room.CreateRequest{
		RoomNumber:    201,
		RoomType:      "Double",
		PricePerNight: 1800,
		Capacity:      4,
	})
	require.NoError(t, err)

	t.Run("patch is applied", func(t *testing.T) {
		price := 2100.0
		roomType := "Family"
		got, err := svc.Update(ctx, rm.ID, room.UpdateRequest{
			PricePerNight: &price,
			RoomType:      &roomType,
		})
		require.NoError(t, err)

		assert.Equal(t, 2100.0, got.PricePerNight)
		assert.Equal(t, room.TypeFamily, got.RoomType)
		assert.Equal(t, 201, got.RoomNumber, "untouched fields survive")
	})

	t.Run("invalid patch values are rejected", func(t *testing.T) {
		bad := -5.0
		_, err := svc.Update(ctx, rm.ID, room.UpdateRequest{PricePerNight: &bad})
		assert.ErrorIs(t, err, room.ErrInvalidPrice)

		zero := 0
		_, err = svc.Update(ctx, rm.ID, room.UpdateRequest{Capacity: &zero})
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})

	t.Run("unknown room", func(t *testing.T) {
		n := 300
		_, err := svc.Update(ctx, "room-999", room.UpdateRequest{RoomNumber: &n})
		assert.ErrorIs(t, err, room.ErrNotFound)
	})
}

func TestSetRoomStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("refused while future bookings exist", func(t *testing.T) {
		svc, _ := newService(&fakeChecker{busy: true})
		rm, err := svc.Create(ctx, room.CreateRequest{RoomNumber: 301, RoomType: "Single", PricePerNight: 900, Capacity: 2})
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, rm.ID, "Under Maintenance")
		assert.ErrorIs(t, err, room.ErrUpcomingBookings)

		got, err := svc.GetByID(ctx, rm.ID)
		require.NoError(t, err)
		assert.Equal(t, room.StatusAvailable, got.Status, "status is unchanged after refusal")
	})

	t.Run("allowed once the calendar is clear", func(t *testing.T) {
		svc, _ := newService(&fakeChecker{busy: false})
		rm, err := svc.Create(ctx, room.CreateRequest{RoomNumber: 302, RoomType: "Single", PricePerNight: 900, Capacity: 2})
		require.NoError(t, err)

		got, err := svc.SetStatus(ctx, rm.ID, "Under Maintenance")
		require.NoError(t, err)
		assert.Equal(t, room.StatusUnderMaintenance, got.Status)
	})

	t.Run("returning to Available skips the booking check", func(t *testing.T) {
		svc, _ := newService(&fakeChecker{busy: true})
		rm, err := svc.Create(ctx, room.CreateRequest{RoomNumber: 303, RoomType: "Single", PricePerNight: 900, Capacity: 2, Status: "Disabled"})
		require.NoError(t, err)

		got, err := svc.SetStatus(ctx, rm.ID, "Available")
		require.NoError(t, err)
		assert.Equal(t, room.StatusAvailable, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newService(&fakeChecker{})
		rm, err := svc.Create(ctx, room.CreateRequest{RoomNumber: 304, RoomType: "Single", PricePerNight: 900, Capacity: 2})
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, rm.ID, "Haunted")
		assert.ErrorIs(t, err, room.ErrInvalidStatus)
	})
}

func TestParseStatus(t *testing.T) {
	// "Under Maintenance" contains a space, which is why parsing is explicit
	// instead of a binding tag.
	st, err := room.ParseStatus("Under Maintenance")
	require.NoError(t, err)
	assert.Equal(t, room.StatusUnderMaintenance, st)

	_, err = room.ParseStatus("under maintenance")
	assert.ErrorIs(t, err, room.ErrInvalidStatus)
}
