package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/domain"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings  BookingRepository
	rooms     RoomRepository
	roomTypes RoomTypeRepository
	items     ServiceItemRepository
	lines     ServiceLineRepository
	users     UserRepository
	notifs    Notifier
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	roomTypes RoomTypeRepository,
	items ServiceItemRepository,
	lines ServiceLineRepository,
	users UserRepository,
	notifs Notifier,
) *Service {
	return &Service{
		bookings:  bookings,
		rooms:     rooms,
		roomTypes: roomTypes,
		items:     items,
		lines:     lines,
		users:     users,
		notifs:    notifs,
	}
}

// Search returns the rooms that can host the stay, ordered by room id.
// An inverted date range is rejected, not treated as "no results".
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]RoomOffer, error) {
	checkIn, checkOut, err := parseStayRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", domain.ErrValidation)
	}

	rooms, err := s.rooms.ListAvailable(ctx, req.Guests, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	roomIDs := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	active, err := s.bookings.ActiveByRooms(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[int64][]domain.Booking, len(rooms))
	for _, b := range active {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	types := make(map[int64]*domain.RoomType)
	nights := domain.Nights(checkIn, checkOut)

	offers := make([]RoomOffer, 0, len(rooms))
	for _, room := range rooms {
		if hasOverlap(byRoom[room.ID], checkIn, checkOut) {
			continue
		}

		rt, ok := types[room.RoomTypeID]
		if !ok {
			rt, err = s.roomTypes.GetByID(ctx, room.RoomTypeID)
			if err != nil {
				return nil, err
			}
			types[room.RoomTypeID] = rt
		}

		offers = append(offers, RoomOffer{
			Room:     room,
			RoomType: *rt,
			Nights:   nights,
			Total:    roundMoney(float64(nights) * rt.BaseRate),
		})
	}
	return offers, nil
}

// CreateBooking validates the request, confirms the room is free at the
// instant of booking and inserts the pending booking together with all
// initial service lines. Any failure along the way, including an unknown
// service id, leaves no partial booking behind.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, checkOut, err := parseStayRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", domain.ErrValidation)
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, asValidation(err, "unknown user")
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, asValidation(err, "unknown room")
	}
	if room.Status != domain.RoomAvailable {
		return nil, fmt.Errorf("%w: room is not bookable", domain.ErrValidation)
	}

	rt, err := s.roomTypes.GetByID(ctx, room.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if req.Guests > rt.Capacity {
		return nil, fmt.Errorf("%w: room type holds at most %d guests", domain.ErrValidation, rt.Capacity)
	}

	existing, err := s.bookings.ActiveByRoom(ctx, req.RoomID, 0)
	if err != nil {
		return nil, err
	}
	if hasOverlap(existing, checkIn, checkOut) {
		return nil, fmt.Errorf("%w: room is not available for the selected dates", domain.ErrConflict)
	}

	selection := make([]Selection, 0, len(req.Services))
	lines := make([]domain.ServiceLine, 0, len(req.Services))
	for _, sel := range req.Services {
		if sel.Quantity < 1 {
			return nil, fmt.Errorf("%w: service quantity must be at least 1", domain.ErrValidation)
		}
		item, err := s.items.GetByID(ctx, sel.ServiceItemID)
		if err != nil {
			return nil, asValidation(err, "unknown service")
		}
		selection = append(selection, Selection{Item: *item, Quantity: sel.Quantity})
		lines = append(lines, domain.ServiceLine{
			ServiceItemID: item.ID,
			Quantity:      sel.Quantity,
			LineTotal:     LineTotal(*item, sel.Quantity),
		})
	}

	quote := BuildQuote(rt, checkIn, checkOut, selection)

	b := &domain.Booking{
		UserID:   req.UserID,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Status:   domain.BookingPending,
		Total:    quote.Total,
	}

	if err := s.bookings.CreateWithLines(ctx, b, lines); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.BookingCreated(b)
	}
	return b, nil
}

// Quote prices a stay without touching the ledger.
func (s *Service) Quote(ctx context.Context, roomTypeID int64, checkInStr, checkOutStr string, services []ServiceSelection) (*Quote, error) {
	checkIn, checkOut, err := parseStayRange(checkInStr, checkOutStr)
	if err != nil {
		return nil, err
	}

	rt, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		return nil, asValidation(err, "unknown room type")
	}

	selection := make([]Selection, 0, len(services))
	for _, sel := range services {
		if sel.Quantity < 1 {
			return nil, fmt.Errorf("%w: service quantity must be at least 1", domain.ErrValidation)
		}
		item, err := s.items.GetByID(ctx, sel.ServiceItemID)
		if err != nil {
			return nil, asValidation(err, "unknown service")
		}
		selection = append(selection, Selection{Item: *item, Quantity: sel.Quantity})
	}

	q := BuildQuote(rt, checkIn, checkOut, selection)
	return &q, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := s.lines.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Lines = lines
	return b, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	return s.bookings.ListByRoom(ctx, roomID)
}

// CancelBooking marks the booking cancelled. Only the owner or a staff
// actor may cancel, and only from a non-terminal state. Cancellation is
// a ledger fact: the room's own status field is untouched, and the room
// immediately stops counting the stay for overlap checks.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID != actorID && !actorRole.CanManageBookings() {
		return nil, domain.ErrForbidden
	}
	if b.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.bookings.Cancel(ctx, bookingID, time.Now().UTC()); err != nil {
		return nil, err
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		s.notifs.BookingCancelled(b)
	}
	return b, nil
}

// SetStatus applies a manual status change. There is no transition graph
// beyond the terminal guard: terminal states cannot be left.
func (s *Service) SetStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, status)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// AttachService adds a service line and rewrites the booking total,
// recomputed from scratch over the current lines.
func (s *Service) AttachService(ctx context.Context, bookingID, serviceItemID int64, quantity int) (*domain.ServiceLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: service quantity must be at least 1", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	item, err := s.items.GetByID(ctx, serviceItemID)
	if err != nil {
		return nil, asValidation(err, "unknown service")
	}

	rt, err := s.roomTypeForBooking(ctx, b)
	if err != nil {
		return nil, err
	}

	existing, err := s.lines.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	line := domain.ServiceLine{
		BookingID:     bookingID,
		ServiceItemID: item.ID,
		Quantity:      quantity,
		LineTotal:     LineTotal(*item, quantity),
	}

	newTotal := recomputeTotal(rt, b.CheckIn, b.CheckOut, append(existing, line))
	if err := s.lines.Attach(ctx, &line, newTotal); err != nil {
		return nil, err
	}
	return &line, nil
}

// DetachService removes one line and rewrites the booking total the same
// way attach does.
func (s *Service) DetachService(ctx context.Context, lineID int64) error {
	line, err := s.lines.GetByID(ctx, lineID)
	if err != nil {
		return err
	}

	b, err := s.bookings.GetByID(ctx, line.BookingID)
	if err != nil {
		return err
	}
	if b.Status.Terminal() {
		return domain.ErrInvalidTransition
	}

	rt, err := s.roomTypeForBooking(ctx, b)
	if err != nil {
		return err
	}

	existing, err := s.lines.ListByBooking(ctx, b.ID)
	if err != nil {
		return err
	}
	remaining := make([]domain.ServiceLine, 0, len(existing))
	for _, l := range existing {
		if l.ID != lineID {
			remaining = append(remaining, l)
		}
	}

	newTotal := recomputeTotal(rt, b.CheckIn, b.CheckOut, remaining)
	return s.lines.Detach(ctx, lineID, b.ID, newTotal)
}

func (s *Service) roomTypeForBooking(ctx context.Context, b *domain.Booking) (*domain.RoomType, error) {
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	return s.roomTypes.GetByID(ctx, room.RoomTypeID)
}

func hasOverlap(existing []domain.Booking, checkIn, checkOut time.Time) bool {
	for _, b := range existing {
		if domain.Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func parseStayRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := parseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	return checkIn, checkOut, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func asValidation(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	return err
}
