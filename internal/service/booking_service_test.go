package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hall-booking-service/internal/domain"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/service"
	"github.com/spec-kit/hall-booking-service/internal/slots"
)

const (
	ownerID    = int64(9)
	strangerID = int64(2)
	hallID     = int64(5)
)

func newBookingFixture() (*service.BookingService, *fakeHallRepo, *fakeBookingRepo, *recordingDispatcher) {
	halls := newFakeHallRepo(domain.Hall{ID: hallID, OwnerID: ownerID, Name: "Grand Hall"})
	bookings := newFakeBookingRepo()
	dispatcher := &recordingDispatcher{}
	svc := service.NewBookingService(service.BookingDependencies{
		HallRepo:    halls,
		BookingRepo: bookings,
		Slots:       slots.Default(),
		Dispatcher:  dispatcher,
	})
	return svc, halls, bookings, dispatcher
}

func pricingInput(price *float64) service.PricingInput {
	return service.PricingInput{
		HallID:      hallID,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotKeyword: "pm",
		PlusPrice:   price,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestSetSlotPriceCreates(t *testing.T) {
	svc, _, bookings, dispatcher := newBookingFixture()

	booking, created, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1000)))
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, hallID, booking.HallID)
	assert.Equal(t, ownerID, booking.UserID)
	assert.Equal(t, "13:00", booking.StartTime)
	assert.Equal(t, "17:00", booking.EndTime)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	require.NotNil(t, booking.PlusPrice)
	assert.Equal(t, float64(1000), *booking.PlusPrice)
	assert.Equal(t, 1, bookings.upsertCalls)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventBookingCreated, published[0].Type)
}

func TestSetSlotPriceRepeatUpdatesPriceOnly(t *testing.T) {
	svc, _, bookings, dispatcher := newBookingFixture()

	first, created, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1000)))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1500)))
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.BookingStatusPending, second.Status)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.StartTime, second.StartTime)
	require.NotNil(t, second.PlusPrice)
	assert.Equal(t, float64(1500), *second.PlusPrice)

	// still one row for the natural key
	assert.Len(t, bookings.byKey, 1)

	published := dispatcher.published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventBookingRepriced, published[1].Type)
}

func TestSetSlotPriceClearsPrice(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, _, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1000)))
	require.NoError(t, err)

	booking, created, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(nil))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, booking.PlusPrice)
}

func TestSetSlotPriceForbiddenForNonOwner(t *testing.T) {
	svc, _, bookings, _ := newBookingFixture()

	_, _, err := svc.SetSlotPrice(context.Background(), strangerID, pricingInput(floatPtr(1000)))
	require.Error(t, err)
	assertDomainCode(t, err, "FORBIDDEN")
	assert.Zero(t, bookings.upsertCalls)
}

func TestSetSlotPriceUnknownHall(t *testing.T) {
	svc, _, bookings, _ := newBookingFixture()

	input := pricingInput(floatPtr(1000))
	input.HallID = 404

	_, _, err := svc.SetSlotPrice(context.Background(), ownerID, input)
	require.Error(t, err)
	assertDomainCode(t, err, "NOT_FOUND")
	assert.Zero(t, bookings.upsertCalls)
}

func TestSetSlotPriceInvalidSlotWritesNothing(t *testing.T) {
	svc, _, bookings, dispatcher := newBookingFixture()

	input := pricingInput(floatPtr(1000))
	input.SlotKeyword = "midnight"

	_, _, err := svc.SetSlotPrice(context.Background(), ownerID, input)
	require.Error(t, err)
	assertDomainCode(t, err, "VALIDATION_FAILED")
	assert.Zero(t, bookings.upsertCalls)
	assert.Empty(t, dispatcher.published())
}

func TestSetSlotPriceCreateRaceMapsToConflict(t *testing.T) {
	svc, _, bookings, _ := newBookingFixture()
	bookings.loseCreateRace = true

	_, _, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1000)))
	require.Error(t, err)
	assertDomainCode(t, err, "CONFLICT")
}

func TestCreateAndListHalls(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	hall, err := svc.CreateHall(context.Background(), ownerID, "Annex", "Downtown", 120)
	require.NoError(t, err)
	assert.NotZero(t, hall.ID)
	assert.Equal(t, ownerID, hall.OwnerID)

	halls, err := svc.ListOwnerHalls(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, halls, 2)

	none, err := svc.ListOwnerHalls(context.Background(), strangerID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListUserBookings(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, _, err := svc.SetSlotPrice(context.Background(), ownerID, pricingInput(floatPtr(1000)))
	require.NoError(t, err)

	mine, err := svc.ListUserBookings(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListUserBookings(context.Background(), strangerID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
