package domain

// ContactField names an optional field the contact store should populate.
type ContactField string

// Contact fields that may be requested from a contact store.
const (
	// ContactFieldPhoneNumbers includes phone numbers in listed contacts.
	ContactFieldPhoneNumbers ContactField = "phoneNumbers"
)

// String returns the string representation.
func (f ContactField) String() string {
	return string(f)
}

// PhoneNumber is a single number attached to a contact.
type PhoneNumber struct {
	Number string `json:"number"`
	Label  string `json:"label,omitempty"`
}

// Contact is a read-only address book entry.
// Roster never creates or mutates contacts.
type Contact struct {
	// ID is the store's opaque identifier for the contact.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// PhoneNumbers is ordered as returned by the store.
	PhoneNumbers []PhoneNumber `json:"phoneNumbers,omitempty"`
}

// HasField reports whether fields contains f.
func HasField(fields []ContactField, f ContactField) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}
