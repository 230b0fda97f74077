package inventory

import (
	"github.com/phoneshop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePhone = "Phone"

// Event type constants
const (
	EventTypePhoneRegistered = "PhoneRegistered"
	EventTypePhoneSold       = "PhoneSold"
	EventTypePhoneReturned   = "PhoneReturned"
)

// PhoneRegisteredEvent is raised when a phone enters inventory
type PhoneRegisteredEvent struct {
	shared.BaseDomainEvent
	IMEI  string `json:"imei"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// NewPhoneRegisteredEvent creates a new PhoneRegisteredEvent
func NewPhoneRegisteredEvent(phone *Phone) *PhoneRegisteredEvent {
	return &PhoneRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePhoneRegistered, AggregateTypePhone, phone.ID),
		IMEI:            phone.IMEI,
		Brand:           phone.Brand,
		Model:           phone.Model,
	}
}

// PhoneSoldEvent is raised when a phone is flipped to sold by sale creation
type PhoneSoldEvent struct {
	shared.BaseDomainEvent
	IMEI string `json:"imei"`
}

// NewPhoneSoldEvent creates a new PhoneSoldEvent
func NewPhoneSoldEvent(phone *Phone) *PhoneSoldEvent {
	return &PhoneSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePhoneSold, AggregateTypePhone, phone.ID),
		IMEI:            phone.IMEI,
	}
}

// PhoneReturnedEvent is raised when a deleted sale returns a phone to stock
type PhoneReturnedEvent struct {
	shared.BaseDomainEvent
	IMEI string `json:"imei"`
}

// NewPhoneReturnedEvent creates a new PhoneReturnedEvent
func NewPhoneReturnedEvent(phone *Phone) *PhoneReturnedEvent {
	return &PhoneReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePhoneReturned, AggregateTypePhone, phone.ID),
		IMEI:            phone.IMEI,
	}
}
