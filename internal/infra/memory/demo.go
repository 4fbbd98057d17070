package memory

import (
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// Demo is a small marketplace: one client, one organizer, one supplier, an
// admin and one approved service per provider.
type Demo struct {
	ClientUser models.User
	Client     models.Client

	OrganizerUser models.User
	Organizer     models.Organizer

	SupplierUser models.User
	Supplier     models.Supplier

	AdminUser models.User

	OrganizerService models.Service
	SupplierService  models.Service
}

func SeedDemo(s *Store) Demo {
	var d Demo

	d.ClientUser = s.AddUser(models.User{
		Email: "ana@example.com", FirstName: "Ana", LastName: "Silva",
		Role: string(actor.RoleClient), IsActive: true,
	})
	d.Client = s.AddClient(models.Client{UserID: d.ClientUser.ID})

	d.OrganizerUser = s.AddUser(models.User{
		Email: "olivia@acme.test", FirstName: "Olivia", LastName: "Reis",
		Role: string(actor.RoleOrganizer), IsActive: true,
	})
	d.Organizer = s.AddOrganizer(models.Organizer{
		UserID: d.OrganizerUser.ID, BusinessName: "Acme Events", IsActive: true,
	})

	d.SupplierUser = s.AddUser(models.User{
		Email: "sam@bloom.test", FirstName: "Sam", LastName: "Costa",
		Role: string(actor.RoleSupplier), IsActive: true,
	})
	d.Supplier = s.AddSupplier(models.Supplier{
		UserID: d.SupplierUser.ID, BusinessName: "Bloom Florals",
		ServiceCategory: "Flowers", IsActive: true,
	})

	d.AdminUser = s.AddUser(models.User{
		Email: "admin@example.com", FirstName: "Admin",
		Role: string(actor.RoleAdmin), IsActive: true,
	})

	d.OrganizerService = s.AddService(models.Service{
		ProviderID: d.Organizer.ID, ProviderType: string(provider.KindOrganizer),
		Name: "Full wedding planning", Category: "Planning", Price: 1500,
		IsActive: true, IsApproved: true,
	})
	d.SupplierService = s.AddService(models.Service{
		ProviderID: d.Supplier.ID, ProviderType: string(provider.KindSupplier),
		Name: "Table flowers", Category: "Flowers", Price: 800,
		IsActive: true, IsApproved: true,
	})

	return d
}

func (d Demo) ClientActor() actor.Actor {
	return actor.Actor{UserID: d.ClientUser.ID, Role: actor.RoleClient}
}

func (d Demo) OrganizerActor() actor.Actor {
	return actor.Actor{UserID: d.OrganizerUser.ID, Role: actor.RoleOrganizer}
}

func (d Demo) SupplierActor() actor.Actor {
	return actor.Actor{UserID: d.SupplierUser.ID, Role: actor.RoleSupplier}
}

func (d Demo) AdminActor() actor.Actor {
	return actor.Actor{UserID: d.AdminUser.ID, Role: actor.RoleAdmin}
}

// NotificationsFor filters the stored notifications by recipient.
func (s *Store) NotificationsFor(userID uint) []models.Notification {
	var out []models.Notification
	for _, n := range s.Notifications() {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
