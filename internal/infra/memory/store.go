package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// Store is an in-process store.Repository. A transaction holds a single
// global lock, which also gives FOR UPDATE semantics for free.
type Store struct {
	mu  *sync.Mutex
	st  *state
	tx  bool
	now func() time.Time
}

var _ store.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		mu:  &sync.Mutex{},
		st:  newState(),
		now: time.Now,
	}
}

func (s *Store) Transaction(
	ctx context.Context,
	fn func(tx store.Repository) error,
) error {
	if !s.tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	work := s.st.clone()
	child := &Store{mu: s.mu, st: work, tx: true, now: s.now}

	if err := fn(child); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	*s.st = *work
	return nil
}

// with runs fn against the current state, locking unless already in a tx.
func (s *Store) with(fn func(st *state) error) error {
	if !s.tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// --------------------------------------------------
// Users / Clients
// --------------------------------------------------

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	var out models.User
	err := s.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return store.ErrNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetClient(_ context.Context, id uint) (*models.Client, error) {
	var out models.Client
	err := s.with(func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return store.ErrNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetClientByUser(_ context.Context, userID uint) (*models.Client, error) {
	var out *models.Client
	err := s.with(func(st *state) error {
		for _, c := range st.clients {
			if c.UserID == userID {
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

// --------------------------------------------------
// Providers
// --------------------------------------------------

func organizerRecord(o models.Organizer) *provider.Record {
	return &provider.Record{
		Ref:           provider.Organizer(o.ID),
		UserID:        o.UserID,
		Name:          o.BusinessName,
		Active:        o.IsActive,
		AverageRating: o.AverageRating,
		TotalReviews:  o.TotalReviews,
	}
}

func supplierRecord(sp models.Supplier) *provider.Record {
	return &provider.Record{
		Ref:           provider.Supplier(sp.ID),
		UserID:        sp.UserID,
		Name:          sp.BusinessName,
		Active:        sp.IsActive,
		AverageRating: sp.AverageRating,
		TotalReviews:  sp.TotalReviews,
	}
}

func (s *Store) ResolveProvider(_ context.Context, ref provider.Ref) (*provider.Record, error) {
	var out *provider.Record
	err := s.with(func(st *state) error {
		switch ref.Kind {
		case provider.KindOrganizer:
			if o, ok := st.organizers[ref.ID]; ok {
				out = organizerRecord(o)
				return nil
			}
		case provider.KindSupplier:
			if sp, ok := st.suppliers[ref.ID]; ok {
				out = supplierRecord(sp)
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *Store) GetProviderByUser(
	_ context.Context,
	kind provider.Kind,
	userID uint,
) (*provider.Record, error) {
	var out *provider.Record
	err := s.with(func(st *state) error {
		switch kind {
		case provider.KindOrganizer:
			for _, o := range st.organizers {
				if o.UserID == userID {
					out = organizerRecord(o)
					return nil
				}
			}
		case provider.KindSupplier:
			for _, sp := range st.suppliers {
				if sp.UserID == userID {
					out = supplierRecord(sp)
					return nil
				}
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *Store) ListProviders(_ context.Context) ([]provider.Ref, error) {
	var refs []provider.Ref
	err := s.with(func(st *state) error {
		for id := range st.organizers {
			refs = append(refs, provider.Organizer(id))
		}
		for id := range st.suppliers {
			refs = append(refs, provider.Supplier(id))
		}
		return nil
	})
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].ID < refs[j].ID
	})
	return refs, err
}

func (s *Store) SaveProviderRating(
	_ context.Context,
	ref provider.Ref,
	agg rating.Aggregate,
) error {
	return s.with(func(st *state) error {
		switch ref.Kind {
		case provider.KindOrganizer:
			o, ok := st.organizers[ref.ID]
			if !ok {
				return store.ErrNotFound
			}
			o.AverageRating, o.TotalReviews = agg.Average, agg.Total
			st.organizers[ref.ID] = o
		case provider.KindSupplier:
			sp, ok := st.suppliers[ref.ID]
			if !ok {
				return store.ErrNotFound
			}
			sp.AverageRating, sp.TotalReviews = agg.Average, agg.Total
			st.suppliers[ref.ID] = sp
		default:
			return store.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	var out models.Service
	err := s.with(func(st *state) error {
		svc, ok := st.services[id]
		if !ok {
			return store.ErrNotFound
		}
		out = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListServiceIDsByProvider(_ context.Context, ref provider.Ref) ([]uint, error) {
	var ids []uint
	err := s.with(func(st *state) error {
		for id, svc := range st.services {
			if svc.ProviderID == ref.ID && svc.ProviderType == string(ref.Kind) {
				ids = append(ids, id)
			}
		}
		return nil
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, err
}

func (s *Store) SaveServiceRating(_ context.Context, serviceID uint, agg rating.Aggregate) error {
	return s.with(func(st *state) error {
		svc, ok := st.services[serviceID]
		if !ok {
			return store.ErrNotFound
		}
		svc.AverageRating, svc.TotalReviews = agg.Average, agg.Total
		st.services[serviceID] = svc
		return nil
	})
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (s *Store) GetEvent(_ context.Context, id uint) (*models.Event, error) {
	var out models.Event
	err := s.with(func(st *state) error {
		ev, ok := st.events[id]
		if !ok {
			return store.ErrNotFound
		}
		out = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetEventForUpdate(ctx context.Context, id uint) (*models.Event, error) {
	return s.GetEvent(ctx, id)
}

func (s *Store) CreateEvent(_ context.Context, ev *models.Event) error {
	return s.with(func(st *state) error {
		ev.ID = st.next()
		s.stamp(&ev.CreatedAt, &ev.UpdatedAt)
		st.events[ev.ID] = *ev
		return nil
	})
}

func (s *Store) UpdateEvent(_ context.Context, ev *models.Event) error {
	return s.with(func(st *state) error {
		if _, ok := st.events[ev.ID]; !ok {
			return store.ErrNotFound
		}
		ev.UpdatedAt = s.now()
		st.events[ev.ID] = *ev
		return nil
	})
}

func (s *Store) DeleteEvent(_ context.Context, id uint) error {
	return s.with(func(st *state) error {
		if _, ok := st.events[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.events, id)
		return nil
	})
}

func (s *Store) CountBookingsByEvent(_ context.Context, eventID uint) (int64, error) {
	var n int64
	err := s.with(func(st *state) error {
		for _, b := range st.bookings {
			if b.EventID != nil && *b.EventID == eventID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *Store) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	var out models.Booking
	err := s.with(func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return store.ErrNotFound
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions already hold the store mutex, so row locks are plain reads.
func (s *Store) ResolveProviderForUpdate(ctx context.Context, ref provider.Ref) (*provider.Record, error) {
	return s.ResolveProvider(ctx, ref)
}

func (s *Store) GetBookingForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	return s.GetBooking(ctx, id)
}

func sameTriple(b models.Booking, serviceID, clientID, eventID uint) bool {
	return b.ServiceID != nil && *b.ServiceID == serviceID &&
		b.ClientID != nil && *b.ClientID == clientID &&
		b.EventID != nil && *b.EventID == eventID
}

func (s *Store) FindBooking(
	_ context.Context,
	serviceID uint,
	clientID uint,
	eventID uint,
) (*models.Booking, error) {
	var out *models.Booking
	err := s.with(func(st *state) error {
		for _, b := range st.bookings {
			if sameTriple(b, serviceID, clientID, eventID) {
				out = &b
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	return s.with(func(st *state) error {
		if b.ServiceID != nil && b.ClientID != nil && b.EventID != nil {
			for _, other := range st.bookings {
				if sameTriple(other, *b.ServiceID, *b.ClientID, *b.EventID) {
					return store.ErrDuplicate
				}
			}
		}
		b.ID = st.next()
		s.stamp(&b.CreatedAt, &b.UpdatedAt)
		st.bookings[b.ID] = *b
		return nil
	})
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking) error {
	return s.with(func(st *state) error {
		if _, ok := st.bookings[b.ID]; !ok {
			return store.ErrNotFound
		}
		b.UpdatedAt = s.now()
		st.bookings[b.ID] = *b
		return nil
	})
}

func (s *Store) ListBookingsByEvent(_ context.Context, eventID uint) ([]models.Booking, error) {
	var out []models.Booking
	err := s.with(func(st *state) error {
		for _, b := range st.bookings {
			if b.EventID != nil && *b.EventID == eventID {
				out = append(out, b)
			}
		}
		return nil
	})
	sortBookings(out)
	return out, err
}

func (s *Store) ListBookingsByProvider(
	_ context.Context,
	ref provider.Ref,
	status string,
) ([]models.Booking, error) {
	var out []models.Booking
	err := s.with(func(st *state) error {
		for _, b := range st.bookings {
			if b.ProviderID != ref.ID || b.ProviderType != string(ref.Kind) {
				continue
			}
			if status != "" && b.Status != status {
				continue
			}
			out = append(out, b)
		}
		return nil
	})
	sortBookings(out)
	return out, err
}

func sortBookings(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID < bs[j].ID })
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (s *Store) GetReview(_ context.Context, id uint) (*models.Review, error) {
	var out models.Review
	err := s.with(func(st *state) error {
		r, ok := st.reviews[id]
		if !ok {
			return store.ErrNotFound
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetReviewByBooking(_ context.Context, bookingID uint) (*models.Review, error) {
	var out *models.Review
	err := s.with(func(st *state) error {
		for _, r := range st.reviews {
			if r.BookingID != nil && *r.BookingID == bookingID {
				out = &r
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *Store) CreateReview(_ context.Context, r *models.Review) error {
	return s.with(func(st *state) error {
		if r.BookingID != nil {
			for _, other := range st.reviews {
				if other.BookingID != nil && *other.BookingID == *r.BookingID {
					return store.ErrDuplicate
				}
			}
		}
		r.ID = st.next()
		s.stamp(&r.CreatedAt, &r.UpdatedAt)
		st.reviews[r.ID] = *r
		return nil
	})
}

func (s *Store) UpdateReview(_ context.Context, r *models.Review) error {
	return s.with(func(st *state) error {
		if _, ok := st.reviews[r.ID]; !ok {
			return store.ErrNotFound
		}
		st.reviews[r.ID] = *r
		return nil
	})
}

func (s *Store) DeleteReview(_ context.Context, id uint) error {
	return s.with(func(st *state) error {
		if _, ok := st.reviews[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.reviews, id)
		return nil
	})
}

func (s *Store) ApprovedRatingsForProvider(_ context.Context, ref provider.Ref) ([]int, error) {
	return s.approvedRatings(func(b models.Booking) bool {
		return b.ProviderID == ref.ID && b.ProviderType == string(ref.Kind)
	})
}

func (s *Store) ApprovedRatingsForService(_ context.Context, serviceID uint) ([]int, error) {
	return s.approvedRatings(func(b models.Booking) bool {
		return b.ServiceID != nil && *b.ServiceID == serviceID
	})
}

func (s *Store) approvedRatings(match func(models.Booking) bool) ([]int, error) {
	var out []int
	err := s.with(func(st *state) error {
		for _, r := range st.reviews {
			if !r.IsApproved || r.BookingID == nil {
				continue
			}
			b, ok := st.bookings[*r.BookingID]
			if ok && match(b) {
				out = append(out, r.Rating)
			}
		}
		return nil
	})
	return out, err
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func isConversationNotification(n models.Notification) bool {
	return n.Type == string(notification.TypeMessage) &&
		n.ReferenceType != nil && *n.ReferenceType == notification.RefConversation &&
		n.ReferenceID != nil
}

func (s *Store) GetNotification(_ context.Context, id uint) (*models.Notification, error) {
	var out models.Notification
	err := s.with(func(st *state) error {
		n, ok := st.notifications[id]
		if !ok {
			return store.ErrNotFound
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) FindMessageNotification(
	_ context.Context,
	userID uint,
	conversationID uint,
) (*models.Notification, error) {
	var out *models.Notification
	err := s.with(func(st *state) error {
		for _, n := range st.notifications {
			if n.UserID == userID && isConversationNotification(n) && *n.ReferenceID == conversationID {
				out = &n
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	return s.with(func(st *state) error {
		if isConversationNotification(*n) {
			for _, other := range st.notifications {
				if other.UserID == n.UserID && isConversationNotification(other) &&
					*other.ReferenceID == *n.ReferenceID {
					return store.ErrDuplicate
				}
			}
		}
		n.ID = st.next()
		if n.CreatedAt.IsZero() {
			n.CreatedAt = s.now()
		}
		st.notifications[n.ID] = *n
		return nil
	})
}

func (s *Store) UpdateNotification(_ context.Context, n *models.Notification) error {
	return s.with(func(st *state) error {
		if _, ok := st.notifications[n.ID]; !ok {
			return store.ErrNotFound
		}
		st.notifications[n.ID] = *n
		return nil
	})
}

func (s *Store) DeleteNotification(_ context.Context, id uint) error {
	return s.with(func(st *state) error {
		if _, ok := st.notifications[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.notifications, id)
		return nil
	})
}

func (s *Store) MarkAllNotificationsRead(_ context.Context, userID uint, at time.Time) (int64, error) {
	var n int64
	err := s.with(func(st *state) error {
		for id, nt := range st.notifications {
			if nt.UserID != userID || nt.IsRead {
				continue
			}
			readAt := at
			nt.IsRead, nt.ReadAt = true, &readAt
			st.notifications[id] = nt
			n++
		}
		return nil
	})
	return n, err
}

func (s *Store) CountUnreadNotifications(_ context.Context, userID uint) (int64, error) {
	var n int64
	err := s.with(func(st *state) error {
		for _, nt := range st.notifications {
			if nt.UserID == userID && !nt.IsRead {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) ListNotifications(_ context.Context, userID uint, limit int) ([]models.Notification, error) {
	var out []models.Notification
	err := s.with(func(st *state) error {
		for _, nt := range st.notifications {
			if nt.UserID == userID {
				out = append(out, nt)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// --------------------------------------------------
// Payouts
// --------------------------------------------------

func (s *Store) CreatePayout(_ context.Context, p *models.Payout) error {
	return s.with(func(st *state) error {
		p.ID = st.next()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		st.payouts[p.ID] = *p
		return nil
	})
}

func (s *Store) SumPayouts(_ context.Context, payeeUserID uint, status string) (float64, error) {
	var sum float64
	err := s.with(func(st *state) error {
		for _, p := range st.payouts {
			if p.PayeeUserID == payeeUserID && p.Status == status {
				sum += p.Amount
			}
		}
		return nil
	})
	return sum, err
}

func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
