package service

import (
	"context"
	"testing"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWaitlist(clock *stepClock) (*waitlistService, AppointmentService) {
	customers := repository.NewCustomerRepository(repository.SeedCustomers())
	employees := repository.NewEmployeeRepository(repository.SeedEmployees())
	catalog := repository.NewSeededCatalogRepository()
	appts := NewAppointmentService(
		repository.NewAppointmentRepository(repository.SeedAppointments()),
		customers, employees, catalog,
	)
	w := NewWaitlistService(repository.NewWaitlistRepository(repository.SeedWaitlist()), appts, customers, employees, catalog).(*waitlistService)
	w.now = clock.now
	return w, appts
}

func TestWaitlist_ListOrdersByPriorityThenAge(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)}
	w, _ := newWaitlist(clock)
	ctx := context.Background()

	_, err := w.Add(ctx, dto.WaitlistRequest{CustomerName: "Tom", Phone: "111", PreferredService: "s6", Priority: "low"})
	require.NoError(t, err)
	clock.advance(time.Minute)
	later, err := w.Add(ctx, dto.WaitlistRequest{
		CustomerName: "Nina", Phone: "222", PreferredService: "s5", Priority: "high", PreferredDate: "2024-01-25",
	})
	require.NoError(t, err)

	resp, err := w.List(ctx)
	require.NoError(t, err)
	ids := make([]string, len(resp.Entries))
	for i, e := range resp.Entries {
		ids[i] = e.ID
	}
	require.Len(t, ids, 4)
	assert.Equal(t, []string{"w1", later.ID, "w2"}, ids[:3])
	assert.Equal(t, "Tom", resp.Entries[3].CustomerName)

	assert.Equal(t, 4, resp.Summary.Total)
	assert.Equal(t, map[string]int{"high": 2, "normal": 1, "low": 1}, resp.Summary.ByPriority)
	assert.Equal(t, 2, resp.Summary.Today)

	assert.Equal(t, "Hair Coloring", resp.Entries[0].ServiceName)
	assert.Equal(t, "Mike Chen", resp.Entries[0].PreferredEmployeeName)
}

func TestWaitlist_AddDefaultsAndValidation(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)}
	w, _ := newWaitlist(clock)
	ctx := context.Background()

	e, err := w.Add(ctx, dto.WaitlistRequest{
		CustomerName: " Ana ", Phone: "333", PreferredService: "facial treatment", PreferredEmployeeID: "any",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", e.CustomerName)
	assert.Equal(t, "s5", e.ServiceID)
	assert.Empty(t, e.PreferredEmployeeID)
	assert.Equal(t, "normal", e.Priority)
	assert.Equal(t, "anytime", e.TimeFrame)
	assert.Equal(t, clock.t, e.AddedAt)

	_, err = w.Add(ctx, dto.WaitlistRequest{CustomerName: "Ana", Phone: "333", PreferredService: "Massage"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = w.Add(ctx, dto.WaitlistRequest{CustomerName: "Ana", Phone: "333", PreferredService: "s1", PreferredEmployeeID: "e99"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = w.Add(ctx, dto.WaitlistRequest{CustomerName: "Ana", Phone: "333", PreferredService: "s1", PreferredDate: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = w.Add(ctx, dto.WaitlistRequest{CustomerName: "Ana", Phone: "333", PreferredService: "s1", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = w.Add(ctx, dto.WaitlistRequest{CustomerName: "  ", Phone: "333", PreferredService: "s1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWaitlist_Remove(t *testing.T) {
	w, _ := newWaitlist(&stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	require.NoError(t, w.Remove(ctx, "w2"))
	assert.ErrorIs(t, w.Remove(ctx, "w2"), repository.ErrNotFound)

	resp, err := w.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "w1", resp.Entries[0].ID)
}

func TestWaitlist_ConvertBooksAndDropsEntry(t *testing.T) {
	w, appts := newWaitlist(&stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	a, err := w.Convert(ctx, "w1", dto.ConvertWaitlistRequest{CustomerID: "c3", Time: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-25", a.Date)
	assert.Equal(t, "e2", a.EmployeeID)
	assert.Equal(t, []string{"s3"}, a.ServiceIDs)
	assert.Equal(t, 120, a.DurationMinutes)
	assert.Equal(t, "scheduled", a.Status)
	assert.Equal(t, "Booked from waitlist", a.Notes)

	got, err := appts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lisa Chen", got.CustomerName)

	_, err = w.Convert(ctx, "w1", dto.ConvertWaitlistRequest{CustomerID: "c3", Time: "09:00"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	resp, err := w.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.Total)
}

func TestWaitlist_ConvertFailureKeepsEntry(t *testing.T) {
	w, _ := newWaitlist(&stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	// w2 has no preferred stylist and its phone matches no customer.
	_, err := w.Convert(ctx, "w2", dto.ConvertWaitlistRequest{CustomerID: "c1", Time: "13:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = w.Convert(ctx, "w2", dto.ConvertWaitlistRequest{EmployeeID: "e4", Time: "13:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = w.Convert(ctx, "w2", dto.ConvertWaitlistRequest{CustomerID: "c1", EmployeeID: "e4", Time: "1pm"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := w.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "w2", resp.Entries[1].ID)

	a, err := w.Convert(ctx, "w2", dto.ConvertWaitlistRequest{CustomerID: "c1", EmployeeID: "e4", Time: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-24", a.Date)
	assert.Equal(t, 45, a.DurationMinutes)
}

func TestWaitlist_ConvertMatchesCustomerByPhone(t *testing.T) {
	w, _ := newWaitlist(&stepClock{t: time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	e, err := w.Add(ctx, dto.WaitlistRequest{
		CustomerName: "Lisa", Phone: "+91-90123-45680", PreferredService: "s7", PreferredEmployeeID: "e3",
	})
	require.NoError(t, err)

	_, err = w.Convert(ctx, e.ID, dto.ConvertWaitlistRequest{Time: "17:00"})
	assert.ErrorIs(t, err, ErrInvalidInput, "no date on the entry or the request")

	a, err := w.Convert(ctx, e.ID, dto.ConvertWaitlistRequest{Date: "2024-01-27", Time: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, "c3", a.CustomerID)
	assert.Equal(t, "Priya Sharma", a.EmployeeName)
}
