package notification

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
)

type Type string

const (
	TypeBooking     Type = "Booking"
	TypeMessage     Type = "Message"
	TypeEventUpdate Type = "EventUpdate"
	TypeReview      Type = "Review"
	TypePayout      Type = "Payout"
)

// Reference types.
const (
	RefBooking      = "Booking"
	RefEvent        = "Event"
	RefConversation = "Conversation"
	RefReview       = "Review"
	RefPayout       = "Payout"
)

const ClientBookingsURL = "/client/bookings"

func ProviderBookingURL(kind provider.Kind, bookingID uint) string {
	return fmt.Sprintf("/%s/bookings/details/%d", kind.Path(), bookingID)
}

func ClientEventURL(eventID uint) string {
	return fmt.Sprintf("/client/events/details/%d", eventID)
}

func OrganizerEventURL(eventID uint) string {
	return fmt.Sprintf("/organizer/events/details/%d", eventID)
}

// MessageURL sends the recipient to the conversation inside their dashboard.
func MessageURL(role actor.Role, conversationID uint) string {
	switch role {
	case actor.RoleClient, actor.RoleOrganizer, actor.RoleSupplier:
		return fmt.Sprintf("/%s/messages?conversation=%d", strings.ToLower(string(role)), conversationID)
	}
	return fmt.Sprintf("/messages?conversation=%d", conversationID)
}

func MessageText(unread int, sender string) (title, message string) {
	if unread > 1 {
		return "New Message", fmt.Sprintf("You have %d new messages from %s", unread, sender)
	}
	return "New Message", fmt.Sprintf("You have a new message from %s", sender)
}
