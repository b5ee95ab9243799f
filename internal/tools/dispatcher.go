package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neboloop/nebo-contacts/internal/contacts"
	"github.com/neboloop/nebo-contacts/internal/logging"
)

// Result is the text returned to the protocol host. IsError marks failures
// so the host can tell them apart from normal output.
type Result struct {
	Text    string
	IsError bool
}

// UnknownToolError is returned for a name that is not in the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

// Dispatcher routes named calls with untyped arguments to the service.
type Dispatcher struct {
	svc     Service
	catalog []Descriptor
	index   map[string]int
}

// NewDispatcher creates a dispatcher over the fixed catalog.
func NewDispatcher(svc Service) *Dispatcher {
	catalog := Catalog()
	index := make(map[string]int, len(catalog))
	for i, d := range catalog {
		index[d.Name] = i
	}
	return &Dispatcher{svc: svc, catalog: catalog, index: index}
}

// Tools returns the catalog in declaration order.
func (d *Dispatcher) Tools() []Descriptor {
	return d.catalog
}

// Lookup returns the descriptor for name.
func (d *Dispatcher) Lookup(name string) (Descriptor, bool) {
	i, ok := d.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return d.catalog[i], true
}

// Call validates the arguments, runs the tool and renders its result as
// indented JSON. It never returns a Go error: every failure, including a
// panic in a handler, becomes an error Result.
func (d *Dispatcher) Call(ctx context.Context, name string, raw map[string]any) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("[Dispatcher] PANIC in tool %s: %v", name, r)
			res = errorResult(fmt.Errorf("tool %s panicked: %v", name, r))
		}
		logging.Debugf("[Dispatcher] %s done in %s isError=%v", name, time.Since(start).Round(time.Millisecond), res.IsError)
	}()

	desc, ok := d.Lookup(name)
	if !ok {
		return errorResult(&UnknownToolError{Name: name})
	}
	args, err := Coerce(desc.Fields, raw)
	if err != nil {
		return errorResult(err)
	}
	out, err := desc.Handler(ctx, d.svc, args)
	if err != nil {
		return errorResult(err)
	}

	text, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	isError := false
	if m, ok := out.(contacts.MutationResult); ok && !m.Success {
		isError = true
	}
	return Result{Text: string(text), IsError: isError}
}

func errorResult(err error) Result {
	return Result{Text: "Error: " + err.Error(), IsError: true}
}
