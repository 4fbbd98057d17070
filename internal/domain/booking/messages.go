package booking

import "fmt"

// ClientMessage is what the client sees when the provider side moves a booking.
func ClientMessage(s Status, providerName string) (title, message string) {
	switch s {
	case StatusConfirmed:
		return "Booking Confirmed", fmt.Sprintf("%s has confirmed your booking!", providerName)
	case StatusCompleted:
		return "Booking Completed", fmt.Sprintf("Your booking with %s has been completed", providerName)
	case StatusCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your booking with %s has been cancelled", providerName)
	case StatusRejected:
		return "Booking Rejected", fmt.Sprintf("%s has declined your booking request", providerName)
	}
	return "Booking Status Updated",
		fmt.Sprintf("Your booking status with %s has been updated to %s", providerName, s)
}

// ProviderMessage is what the provider sees when the client side moves a booking.
func ProviderMessage(s Status, clientName string) (title, message string) {
	switch s {
	case StatusConfirmed:
		return "Booking Confirmed", fmt.Sprintf("Your booking with %s has been confirmed", clientName)
	case StatusCompleted:
		return "Booking Completed", fmt.Sprintf("Your booking with %s has been marked as completed", clientName)
	case StatusCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your booking with %s has been cancelled", clientName)
	}
	return "Booking Status Updated",
		fmt.Sprintf("Your booking with %s has been updated to %s", clientName, s)
}

func NewRequestMessage(clientName string) (title, message string) {
	return "New Booking Request", fmt.Sprintf("%s has sent you a booking request", clientName)
}
