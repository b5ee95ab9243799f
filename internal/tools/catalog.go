package tools

import (
	"context"
	"sync"

	"github.com/neboloop/nebo-contacts/internal/contacts"
)

// Service is the set of contact operations the tools call.
type Service interface {
	CheckPermissions(ctx context.Context) (contacts.PermissionStatus, error)
	ListContacts(ctx context.Context, opts contacts.ListOptions) ([]contacts.Contact, error)
	GetContact(ctx context.Context, id string) (*contacts.Contact, error)
	SearchContacts(ctx context.Context, opts contacts.SearchOptions) ([]contacts.Contact, error)
	CreateContact(ctx context.Context, c contacts.NewContact) contacts.MutationResult
	UpdateContact(ctx context.Context, id string, u contacts.ContactUpdate) contacts.MutationResult
	DeleteContact(ctx context.Context, id string) contacts.MutationResult
	ListGroups(ctx context.Context) ([]contacts.Group, error)
	CreateGroup(ctx context.Context, name string) contacts.MutationResult
	DeleteGroup(ctx context.Context, name string) contacts.MutationResult
	AddToGroup(ctx context.Context, contactID, group string) contacts.MutationResult
	RemoveFromGroup(ctx context.Context, contactID, group string) contacts.MutationResult
	OpenApp(ctx context.Context) contacts.MutationResult
	OpenContact(ctx context.Context, id string) contacts.MutationResult
}

// Handler runs one tool against the service with coerced arguments.
type Handler func(ctx context.Context, svc Service, args Args) (any, error)

// Descriptor declares one callable tool.
type Descriptor struct {
	Name        string
	Title       string
	Description string
	ReadOnly    bool
	Destructive bool
	Fields      []Field
	Handler     Handler
}

// notFound is the payload returned by get_contact for an unknown identifier.
type notFound struct {
	Error string `json:"error"`
}

var (
	contactIDField = Field{Name: "contact_id", Kind: KindString, Required: true, NonEmpty: true,
		Description: "Contact identifier as returned by list_contacts or search_contacts"}
	groupNameField = Field{Name: "group_name", Kind: KindString, Required: true, NonEmpty: true,
		Description: "Exact group name"}
)

// Catalog returns the fixed, ordered tool list. The slice is shared and must
// not be modified.
var Catalog = sync.OnceValue(func() []Descriptor {
	return []Descriptor{
		{
			Name:        "check_permissions",
			Title:       "Check Permissions",
			Description: "Check whether this server is allowed to access Contacts.",
			ReadOnly:    true,
			Handler: func(ctx context.Context, svc Service, _ Args) (any, error) {
				return svc.CheckPermissions(ctx)
			},
		},
		{
			Name:        "list_contacts",
			Title:       "List Contacts",
			Description: "List contacts, optionally only the members of one group.",
			ReadOnly:    true,
			Fields: []Field{
				{Name: "limit", Kind: KindNumber, Description: "Maximum number of contacts to return (default 100)"},
				{Name: "group", Kind: KindString, Description: "Only list members of this group"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.ListContacts(ctx, contacts.ListOptions{Limit: a.Int("limit"), Group: a.String("group")})
			},
		},
		{
			Name:        "get_contact",
			Title:       "Get Contact",
			Description: "Get full details of one contact by identifier.",
			ReadOnly:    true,
			Fields:      []Field{contactIDField},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				c, err := svc.GetContact(ctx, a.String("contact_id"))
				if err != nil {
					return nil, err
				}
				if c == nil {
					return notFound{Error: "Contact not found"}, nil
				}
				return c, nil
			},
		},
		{
			Name:  "search_contacts",
			Title: "Search Contacts",
			Description: "Search contacts by name, company, nickname, phone number or email. " +
				"Matching is a case-insensitive substring match. Results omit group membership.",
			ReadOnly: true,
			Fields: []Field{
				{Name: "query", Kind: KindString, Required: true, NonEmpty: true, Description: "Text to search for"},
				{Name: "limit", Kind: KindNumber, Description: "Maximum number of results (default 50)"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.SearchContacts(ctx, contacts.SearchOptions{Query: a.String("query"), Limit: a.Int("limit")})
			},
		},
		{
			Name:        "create_contact",
			Title:       "Create Contact",
			Description: "Create a new contact with optional phones and emails.",
			Fields: []Field{
				{Name: "first_name", Kind: KindString, Description: "First name"},
				{Name: "last_name", Kind: KindString, Description: "Last name"},
				{Name: "company", Kind: KindString, Description: "Company name"},
				{Name: "job_title", Kind: KindString, Description: "Job title"},
				{Name: "phones", Kind: KindLabeledValues, Description: "Phone numbers, e.g. [{\"label\":\"mobile\",\"value\":\"555-1234\"}]"},
				{Name: "emails", Kind: KindLabeledValues, Description: "Email addresses, e.g. [{\"label\":\"work\",\"value\":\"jane@example.com\"}]"},
				{Name: "note", Kind: KindString, Description: "Free-form note, may span multiple lines"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.CreateContact(ctx, contacts.NewContact{
					FirstName: a.String("first_name"),
					LastName:  a.String("last_name"),
					Company:   a.String("company"),
					JobTitle:  a.String("job_title"),
					Phones:    a.LabeledValues("phones"),
					Emails:    a.LabeledValues("emails"),
					Note:      a.String("note"),
				}), nil
			},
		},
		{
			Name:        "update_contact",
			Title:       "Update Contact",
			Description: "Update fields of an existing contact. Only the fields given are changed.",
			Fields: []Field{
				contactIDField,
				{Name: "first_name", Kind: KindString, Description: "New first name"},
				{Name: "last_name", Kind: KindString, Description: "New last name"},
				{Name: "company", Kind: KindString, Description: "New company name"},
				{Name: "job_title", Kind: KindString, Description: "New job title"},
				{Name: "nickname", Kind: KindString, Description: "New nickname"},
				{Name: "note", Kind: KindString, Description: "New note, replaces the existing one"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.UpdateContact(ctx, a.String("contact_id"), contacts.ContactUpdate{
					FirstName: a.OptString("first_name"),
					LastName:  a.OptString("last_name"),
					Company:   a.OptString("company"),
					JobTitle:  a.OptString("job_title"),
					Nickname:  a.OptString("nickname"),
					Note:      a.OptString("note"),
				}), nil
			},
		},
		{
			Name:        "delete_contact",
			Title:       "Delete Contact",
			Description: "Permanently delete a contact.",
			Destructive: true,
			Fields:      []Field{contactIDField},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.DeleteContact(ctx, a.String("contact_id")), nil
			},
		},
		{
			Name:        "list_groups",
			Title:       "List Groups",
			Description: "List contact groups with their member counts.",
			ReadOnly:    true,
			Handler: func(ctx context.Context, svc Service, _ Args) (any, error) {
				return svc.ListGroups(ctx)
			},
		},
		{
			Name:        "create_group",
			Title:       "Create Group",
			Description: "Create a new, empty contact group.",
			Fields: []Field{
				{Name: "name", Kind: KindString, Required: true, NonEmpty: true, Description: "Group name"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.CreateGroup(ctx, a.String("name")), nil
			},
		},
		{
			Name:        "delete_group",
			Title:       "Delete Group",
			Description: "Delete a contact group. Its members are kept.",
			Destructive: true,
			Fields: []Field{
				{Name: "name", Kind: KindString, Required: true, NonEmpty: true, Description: "Group name"},
			},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.DeleteGroup(ctx, a.String("name")), nil
			},
		},
		{
			Name:        "add_to_group",
			Title:       "Add To Group",
			Description: "Add a contact to an existing group.",
			Fields:      []Field{contactIDField, groupNameField},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.AddToGroup(ctx, a.String("contact_id"), a.String("group_name")), nil
			},
		},
		{
			Name:        "remove_from_group",
			Title:       "Remove From Group",
			Description: "Remove a contact from a group. The contact itself is kept.",
			Fields:      []Field{contactIDField, groupNameField},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.RemoveFromGroup(ctx, a.String("contact_id"), a.String("group_name")), nil
			},
		},
		{
			Name:        "open_contacts_app",
			Title:       "Open Contacts",
			Description: "Open the Contacts application.",
			Handler: func(ctx context.Context, svc Service, _ Args) (any, error) {
				return svc.OpenApp(ctx), nil
			},
		},
		{
			Name:        "open_contact",
			Title:       "Open Contact",
			Description: "Open the Contacts application showing one contact.",
			Fields:      []Field{contactIDField},
			Handler: func(ctx context.Context, svc Service, a Args) (any, error) {
				return svc.OpenContact(ctx, a.String("contact_id")), nil
			},
		},
	}
})
