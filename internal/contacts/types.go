package contacts

// LabeledValue is one phone number or email address on a contact.
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Address is reserved; addresses are not read from the store yet and the
// list is always empty.
type Address struct {
	Label      string `json:"label"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Contact is a person card as read from the store.
type Contact struct {
	ID         string         `json:"id"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	FullName   string         `json:"fullName"`
	Nickname   string         `json:"nickname,omitempty"`
	Company    string         `json:"company,omitempty"`
	JobTitle   string         `json:"jobTitle,omitempty"`
	Department string         `json:"department,omitempty"`
	Note       string         `json:"note,omitempty"`
	Birthday   string         `json:"birthday,omitempty"`
	Phones     []LabeledValue `json:"phones"`
	Emails     []LabeledValue `json:"emails"`
	Addresses  []Address      `json:"addresses"`
	Groups     []string       `json:"groups"`
}

// Group is a contact group with the member count computed at read time.
type Group struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactCount int    `json:"contactCount"`
}

// PermissionStatus reports whether the store is reachable, with one detail
// line per checked capability.
type PermissionStatus struct {
	Contacts bool     `json:"contacts"`
	Details  []string `json:"details"`
}

// MutationResult is returned by every write operation.
type MutationResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewContact holds the fields accepted when creating a contact. Empty fields
// are written as empty strings.
type NewContact struct {
	FirstName string
	LastName  string
	Company   string
	JobTitle  string
	Phones    []LabeledValue
	Emails    []LabeledValue
	Note      string
}

// ContactUpdate is a sparse update: nil fields are left untouched.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	Company   *string
	JobTitle  *string
	Nickname  *string
	Note      *string
}

// Empty reports whether no field is set.
func (u ContactUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Company == nil &&
		u.JobTitle == nil && u.Nickname == nil && u.Note == nil
}

// ListOptions controls ListContacts.
type ListOptions struct {
	Limit int
	Group string
}

// SearchOptions controls SearchContacts.
type SearchOptions struct {
	Query string
	Limit int
}

const defaultLabel = "other"

// normalize enforces the invariants the JSON output relies on: derived full
// name, defaulted labels and non-nil lists.
func (c *Contact) normalize() {
	c.FullName = c.FirstName + " " + c.LastName
	c.Phones = normalizeLabels(c.Phones)
	c.Emails = normalizeLabels(c.Emails)
	if c.Addresses == nil {
		c.Addresses = []Address{}
	}
	if c.Groups == nil {
		c.Groups = []string{}
	}
}

func normalizeLabels(values []LabeledValue) []LabeledValue {
	if values == nil {
		return []LabeledValue{}
	}
	for i := range values {
		if values[i].Label == "" {
			values[i].Label = defaultLabel
		}
	}
	return values
}

func failed(err error) MutationResult {
	return MutationResult{Success: false, Error: err.Error()}
}
