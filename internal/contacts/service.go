package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neboloop/nebo-contacts/internal/logging"
	"github.com/neboloop/nebo-contacts/internal/osascript"
)

const (
	DefaultAppName     = "Contacts"
	DefaultListLimit   = 100
	DefaultSearchLimit = 50
)

// ErrNoUpdates is reported when an update carries no fields.
var ErrNoUpdates = errors.New("No updates provided")

// Option configures a Service
type Option func(*Service)

// WithAppName targets a different scriptable application name.
func WithAppName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.appName = name
		}
	}
}

// WithListLimit sets the default maximum for ListContacts.
func WithListLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.listLimit = n
		}
	}
}

// WithSearchLimit sets the default maximum for SearchContacts.
func WithSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// Service exposes the Contacts application. It holds no mutable state, so a
// single instance can serve concurrent calls.
type Service struct {
	runner      osascript.Runner
	launcher    osascript.Launcher
	appName     string
	listLimit   int
	searchLimit int
}

// NewService creates a Service that runs scripts through runner and opens
// the application through launcher.
func NewService(runner osascript.Runner, launcher osascript.Launcher, opts ...Option) *Service {
	s := &Service{
		runner:      runner,
		launcher:    launcher,
		appName:     DefaultAppName,
		listLimit:   DefaultListLimit,
		searchLimit: DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) run(ctx context.Context, script *osascript.Script) (string, error) {
	return s.runner.Run(ctx, script.String())
}

// CheckPermissions tests access to the store with a read-only count. A permission
// failure is an expected answer here, so it is reported in the status
// rather than returned. Any other failure (timeout, missing interpreter)
// is returned as is.
func (s *Service) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	out, err := s.run(ctx, permissionScript(s.appName))
	switch {
	case err == nil:
		return PermissionStatus{
			Contacts: true,
			Details:  []string{fmt.Sprintf("contacts: access granted (%s people)", strings.TrimSpace(out))},
		}, nil
	case errors.Is(err, osascript.ErrPermissionDenied):
		return PermissionStatus{Details: []string{"contacts: " + err.Error()}}, nil
	default:
		logging.Warnf("[Contacts] permission check failed: %v", err)
		return PermissionStatus{}, err
	}
}

// ListContacts returns up to opts.Limit contacts, optionally restricted to
// the members of opts.Group.
func (s *Service) ListContacts(ctx context.Context, opts ListOptions) ([]Contact, error) {
	if opts.Limit <= 0 {
		opts.Limit = s.listLimit
	}
	out, err := s.run(ctx, listContactsScript(s.appName, opts))
	if err != nil {
		return nil, err
	}
	contacts, err := osascript.Decode[[]Contact](out)
	if err != nil {
		return nil, err
	}
	if len(contacts) > opts.Limit {
		contacts = contacts[:opts.Limit]
	}
	for i := range contacts {
		contacts[i].normalize()
	}
	return contacts, nil
}

// GetContact looks a contact up by identifier. It returns nil, nil when no
// contact has that identifier.
func (s *Service) GetContact(ctx context.Context, id string) (*Contact, error) {
	out, err := s.run(ctx, getContactScript(s.appName, id))
	if err != nil {
		return nil, err
	}
	if osascript.IsNull(out) {
		return nil, nil
	}
	c, err := osascript.Decode[Contact](out)
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, nil
	}
	c.normalize()
	return &c, nil
}

// SearchContacts returns contacts whose name, company, nickname, phone or
// email contains the query. Results do not carry group membership.
func (s *Service) SearchContacts(ctx context.Context, opts SearchOptions) ([]Contact, error) {
	if opts.Limit <= 0 {
		opts.Limit = s.searchLimit
	}
	out, err := s.run(ctx, searchContactsScript(s.appName, opts))
	if err != nil {
		return nil, err
	}
	found, err := osascript.Decode[[]Contact](out)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(found))
	results := make([]Contact, 0, len(found))
	for _, c := range found {
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
		}
		c.normalize()
		c.Groups = []string{}
		c.Addresses = []Address{}
		results = append(results, c)
		if len(results) == opts.Limit {
			break
		}
	}
	return results, nil
}

// CreateContact creates a contact with its phones and emails in input
// order. Nothing is committed unless the whole script reaches its save.
func (s *Service) CreateContact(ctx context.Context, c NewContact) MutationResult {
	out, err := s.run(ctx, createContactScript(s.appName, c))
	if err != nil {
		return failed(err)
	}
	id, err := osascript.Decode[string](out)
	if err != nil {
		return failed(err)
	}
	return MutationResult{Success: true, ID: id}
}

// UpdateContact assigns only the fields present in u.
func (s *Service) UpdateContact(ctx context.Context, id string, u ContactUpdate) MutationResult {
	if u.Empty() {
		return failed(ErrNoUpdates)
	}
	return s.mutate(ctx, updateContactScript(s.appName, id, u))
}

// DeleteContact removes a contact by identifier.
func (s *Service) DeleteContact(ctx context.Context, id string) MutationResult {
	return s.mutate(ctx, deleteContactScript(s.appName, id))
}

func (s *Service) mutate(ctx context.Context, script *osascript.Script) MutationResult {
	if _, err := s.run(ctx, script); err != nil {
		return failed(err)
	}
	return MutationResult{Success: true}
}
