package models

// Collection identifies a logical category of synchronized items.
// The set of collections is fixed by the server; the client mirrors each one
// independently with its own sync cursor.
type Collection string

const (
	CollectionEmail    Collection = "email"
	CollectionCalendar Collection = "calendar"
	CollectionContacts Collection = "contacts"
)

// Collections lists every collection the client mirrors, in the order they
// are pulled and drained.
var Collections = []Collection{CollectionEmail, CollectionCalendar, CollectionContacts}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionEmail, CollectionCalendar, CollectionContacts:
		return true
	}
	return false
}

func (c Collection) String() string {
	return string(c)
}
