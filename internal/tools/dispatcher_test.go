package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/nebo-contacts/internal/contacts"
	"github.com/neboloop/nebo-contacts/internal/osascript"
)

type countingRunner struct {
	mu      sync.Mutex
	out     string
	err     error
	scripts []string
}

func (r *countingRunner) Run(_ context.Context, script string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script)
	return r.out, r.err
}

func (r *countingRunner) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scripts)
}

type nopLauncher struct{ apps []string }

func (l *nopLauncher) Launch(_ context.Context, app string) error {
	l.apps = append(l.apps, app)
	return nil
}

func newTestDispatcher(out string, err error) (*Dispatcher, *countingRunner, *nopLauncher) {
	r := &countingRunner{out: out, err: err}
	l := &nopLauncher{}
	return NewDispatcher(contacts.NewService(r, l)), r, l
}

func TestCallUnknownTool(t *testing.T) {
	d, r, _ := newTestDispatcher("", nil)
	res := d.Call(context.Background(), "frobnicate", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "Unknown tool: frobnicate")
	assert.Zero(t, r.calls())
}

func TestCallRequiredFieldsNeverInvokeRunner(t *testing.T) {
	cases := map[string]string{
		"get_contact":       "contact_id",
		"search_contacts":   "query",
		"update_contact":    "contact_id",
		"delete_contact":    "contact_id",
		"create_group":      "name",
		"delete_group":      "name",
		"add_to_group":      "contact_id",
		"remove_from_group": "contact_id",
		"open_contact":      "contact_id",
	}
	for tool, field := range cases {
		t.Run(tool, func(t *testing.T) {
			d, r, _ := newTestDispatcher("[]", nil)
			res := d.Call(context.Background(), tool, map[string]any{})
			assert.True(t, res.IsError)
			assert.Contains(t, res.Text, field)
			assert.Contains(t, res.Text, "required")
			assert.Zero(t, r.calls())
		})
	}
}

func TestCallRequiredFieldWrongType(t *testing.T) {
	d, r, _ := newTestDispatcher("null", nil)
	res := d.Call(context.Background(), "get_contact", map[string]any{"contact_id": 42.0})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: contact_id is required", res.Text)
	assert.Zero(t, r.calls())
}

func TestCallAddToGroupNeedsGroupName(t *testing.T) {
	d, r, _ := newTestDispatcher("ok", nil)
	res := d.Call(context.Background(), "add_to_group", map[string]any{"contact_id": "P1"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "group_name is required")
	assert.Zero(t, r.calls())
}

func TestCallListContactsNoArguments(t *testing.T) {
	d, _, _ := newTestDispatcher("[]", nil)
	res := d.Call(context.Background(), "list_contacts", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, "[]", res.Text)
}

func TestCallGetContactNotFound(t *testing.T) {
	d, _, _ := newTestDispatcher("null", nil)
	res := d.Call(context.Background(), "get_contact", map[string]any{"contact_id": "ABC123"})
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"error":"Contact not found"}`, res.Text)
}

func TestCallSearchContacts(t *testing.T) {
	d, _, _ := newTestDispatcher(`[{"id":"J1","firstName":"John","lastName":"Doe"}]`, nil)
	res := d.Call(context.Background(), "search_contacts", map[string]any{"query": "john"})
	require.False(t, res.IsError, res.Text)

	var got []contacts.Contact
	require.NoError(t, json.Unmarshal([]byte(res.Text), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].FirstName)
}

func TestCallSearchEmptyQueryRejected(t *testing.T) {
	d, r, _ := newTestDispatcher("[]", nil)
	res := d.Call(context.Background(), "search_contacts", map[string]any{"query": ""})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "query is required")
	assert.Zero(t, r.calls())
}

func TestCallCreateContact(t *testing.T) {
	d, r, _ := newTestDispatcher("NEW123", nil)
	res := d.Call(context.Background(), "create_contact", map[string]any{
		"first_name": "Jane",
		"phones":     []any{map[string]any{"label": "mobile", "value": "555-1234"}},
	})
	require.False(t, res.IsError, res.Text)
	assert.JSONEq(t, `{"success":true,"id":"NEW123"}`, res.Text)
	require.Equal(t, 1, r.calls())
	assert.Contains(t, r.scripts[0], `value: "555-1234"`)
}

func TestCallUpdateWithNoFields(t *testing.T) {
	d, r, _ := newTestDispatcher("ok", nil)
	res := d.Call(context.Background(), "update_contact", map[string]any{"contact_id": "P1", "company": 12.0})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "No updates provided")
	assert.Zero(t, r.calls())
}

func TestCallRunnerFailureIsTagged(t *testing.T) {
	d, _, _ := newTestDispatcher("", osascript.ErrPermissionDenied)
	res := d.Call(context.Background(), "list_groups", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "grant Contacts access")
}

func TestCallCheckPermissionsSwallowsDenied(t *testing.T) {
	d, _, _ := newTestDispatcher("", osascript.ErrPermissionDenied)
	res := d.Call(context.Background(), "check_permissions", nil)
	assert.False(t, res.IsError)

	var st contacts.PermissionStatus
	require.NoError(t, json.Unmarshal([]byte(res.Text), &st))
	assert.False(t, st.Contacts)
	assert.Len(t, st.Details, 1)
}

func TestCallCheckPermissionsTagsOtherFailures(t *testing.T) {
	d, r, _ := newTestDispatcher("", osascript.ErrTimeout)
	res := d.Call(context.Background(), "check_permissions", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "Error: script timed out")
	assert.Equal(t, 1, r.calls())
}

func TestCallOpenApp(t *testing.T) {
	d, r, l := newTestDispatcher("", nil)
	res := d.Call(context.Background(), "open_contacts_app", nil)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"success":true}`, res.Text)
	assert.Equal(t, []string{"Contacts"}, l.apps)
	assert.Zero(t, r.calls())
}

func TestCallOutputIsIndented(t *testing.T) {
	d, _, _ := newTestDispatcher(`[{"id":"G1","name":"Friends","contactCount":2}]`, nil)
	res := d.Call(context.Background(), "list_groups", nil)
	assert.Equal(t, "[\n  {\n    \"id\": \"G1\",\n    \"name\": \"Friends\",\n    \"contactCount\": 2\n  }\n]", res.Text)
}

type panicService struct{ Service }

func (panicService) ListGroups(context.Context) ([]contacts.Group, error) {
	panic("boom")
}

func TestCallRecoversPanic(t *testing.T) {
	d := NewDispatcher(panicService{})
	res := d.Call(context.Background(), "list_groups", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "panicked: boom")
}
