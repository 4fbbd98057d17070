package memory

import (
	"maps"

	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

type state struct {
	seq uint

	users         map[uint]models.User
	clients       map[uint]models.Client
	organizers    map[uint]models.Organizer
	suppliers     map[uint]models.Supplier
	services      map[uint]models.Service
	events        map[uint]models.Event
	bookings      map[uint]models.Booking
	reviews       map[uint]models.Review
	notifications map[uint]models.Notification
	payouts       map[uint]models.Payout
}

func newState() *state {
	return &state{
		users:         map[uint]models.User{},
		clients:       map[uint]models.Client{},
		organizers:    map[uint]models.Organizer{},
		suppliers:     map[uint]models.Supplier{},
		services:      map[uint]models.Service{},
		events:        map[uint]models.Event{},
		bookings:      map[uint]models.Booking{},
		reviews:       map[uint]models.Review{},
		notifications: map[uint]models.Notification{},
		payouts:       map[uint]models.Payout{},
	}
}

// clone copies every table. Rows are values, so the copy is isolated as long
// as nobody writes through a row's pointer fields.
func (s *state) clone() *state {
	return &state{
		seq:           s.seq,
		users:         maps.Clone(s.users),
		clients:       maps.Clone(s.clients),
		organizers:    maps.Clone(s.organizers),
		suppliers:     maps.Clone(s.suppliers),
		services:      maps.Clone(s.services),
		events:        maps.Clone(s.events),
		bookings:      maps.Clone(s.bookings),
		reviews:       maps.Clone(s.reviews),
		notifications: maps.Clone(s.notifications),
		payouts:       maps.Clone(s.payouts),
	}
}

// next hands out ids from one sequence shared by all tables.
func (s *state) next() uint {
	s.seq++
	return s.seq
}
