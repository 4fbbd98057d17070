package memory

import (
	"sort"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// Seeding and inspection helpers for dev mode and tests. Records owned by
// collaborators (users, profiles, services) have no create path in the core.

func (s *Store) AddUser(u models.User) models.User {
	_ = s.with(func(st *state) error {
		u.ID = st.next()
		s.stamp(&u.CreatedAt, &u.UpdatedAt)
		st.users[u.ID] = u
		return nil
	})
	return u
}

func (s *Store) AddClient(c models.Client) models.Client {
	_ = s.with(func(st *state) error {
		c.ID = st.next()
		s.stamp(&c.CreatedAt, &c.UpdatedAt)
		st.clients[c.ID] = c
		return nil
	})
	return c
}

func (s *Store) AddOrganizer(o models.Organizer) models.Organizer {
	_ = s.with(func(st *state) error {
		o.ID = st.next()
		s.stamp(&o.CreatedAt, &o.UpdatedAt)
		st.organizers[o.ID] = o
		return nil
	})
	return o
}

func (s *Store) AddSupplier(sp models.Supplier) models.Supplier {
	_ = s.with(func(st *state) error {
		sp.ID = st.next()
		s.stamp(&sp.CreatedAt, &sp.UpdatedAt)
		st.suppliers[sp.ID] = sp
		return nil
	})
	return sp
}

func (s *Store) AddService(svc models.Service) models.Service {
	_ = s.with(func(st *state) error {
		svc.ID = st.next()
		s.stamp(&svc.CreatedAt, &svc.UpdatedAt)
		st.services[svc.ID] = svc
		return nil
	})
	return svc
}

// SetProviderActive flips the active flag of an organizer or supplier.
func (s *Store) SetProviderActive(ref provider.Ref, active bool) bool {
	var ok bool
	_ = s.with(func(st *state) error {
		switch ref.Kind {
		case provider.KindOrganizer:
			var o models.Organizer
			if o, ok = st.organizers[ref.ID]; ok {
				o.IsActive = active
				st.organizers[ref.ID] = o
			}
		case provider.KindSupplier:
			var sp models.Supplier
			if sp, ok = st.suppliers[ref.ID]; ok {
				sp.IsActive = active
				st.suppliers[ref.ID] = sp
			}
		}
		return nil
	})
	return ok
}

func (s *Store) Organizer(id uint) (models.Organizer, bool) {
	var o models.Organizer
	var ok bool
	_ = s.with(func(st *state) error {
		o, ok = st.organizers[id]
		return nil
	})
	return o, ok
}

func (s *Store) Supplier(id uint) (models.Supplier, bool) {
	var sp models.Supplier
	var ok bool
	_ = s.with(func(st *state) error {
		sp, ok = st.suppliers[id]
		return nil
	})
	return sp, ok
}

func (s *Store) Notifications() []models.Notification {
	var out []models.Notification
	_ = s.with(func(st *state) error {
		for _, n := range st.notifications {
			out = append(out, n)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Reviews() []models.Review {
	var out []models.Review
	_ = s.with(func(st *state) error {
		for _, r := range st.reviews {
			out = append(out, r)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
