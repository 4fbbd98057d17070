package provider

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

// Kind tags which provider table a reference points at.
type Kind string

const (
	KindOrganizer Kind = "Organizer"
	KindSupplier  Kind = "Supplier"
)

// Ref is Provider = Organizer(id) | Supplier(id).
type Ref struct {
	Kind Kind
	ID   uint
}

func Organizer(id uint) Ref { return Ref{Kind: KindOrganizer, ID: id} }

func Supplier(id uint) Ref { return Ref{Kind: KindSupplier, ID: id} }

// Parse builds a Ref from the stored (id, type) pair.
func Parse(kind string, id uint) (Ref, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: k, ID: id}, nil
}

func ParseKind(s string) (Kind, error) {
	switch {
	case strings.EqualFold(s, string(KindOrganizer)):
		return KindOrganizer, nil
	case strings.EqualFold(s, string(KindSupplier)):
		return KindSupplier, nil
	}
	return "", httperr.ErrValidation("invalid_provider_type", fmt.Sprintf("unknown provider type %q", s))
}

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Path is the URL segment used by the provider's dashboard.
func (k Kind) Path() string {
	return strings.ToLower(string(k))
}

// KindForRole maps a provider role to its table.
func KindForRole(r actor.Role) (Kind, bool) {
	switch r {
	case actor.RoleOrganizer:
		return KindOrganizer, true
	case actor.RoleSupplier:
		return KindSupplier, true
	}
	return "", false
}

// Record is the resolved provider row, whichever table it came from.
type Record struct {
	Ref           Ref
	UserID        uint
	Name          string
	Active        bool
	AverageRating float64
	TotalReviews  int
}

// OwnedBy reports whether a is the user behind this provider.
func (r Record) OwnedBy(a actor.Actor) bool {
	k, ok := KindForRole(a.Role)
	return ok && k == r.Ref.Kind && r.UserID == a.UserID
}
