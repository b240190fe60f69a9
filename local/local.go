// Package local provides the built-in "local" provider: a bookkeeping
// backend that records submissions in a SQLite ledger on the host and
// reports them back through the standard operations. It does not execute
// circuits, and it ignores tokens.
//
// Importing the package registers the backend, so
//
//	import _ "github.com/qop-dev/qop/local"
//
// is enough to make the "local" provider dispatchable.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qop-dev/qop"
)

const (
	providerName = "local"
	// DeviceName is the single device the backend exposes.
	DeviceName = "default"

	defaultShots = 1024
	stateDone    = "completed"
)

var defaultDevice = qop.MustDevice(providerName + qop.Sep + DeviceName)

// Backend implements qop.Backend over a task ledger. It deliberately does
// not implement the property, resubmit, or remove capabilities; those
// operations fail with qop.ErrUnsupportedProvider for this provider.
type Backend struct {
	mu     sync.Mutex
	path   string
	ledger *Ledger
}

// Verify interface compliance at compile time.
var (
	_ qop.Backend   = (*Backend)(nil)
	_ qop.Describer = (*Backend)(nil)
)

func init() {
	qop.Register(New())
}

// New returns a backend over the default ledger path.
func New() *Backend {
	return &Backend{}
}

// NewAt returns a backend over the given ledger path. Use ":memory:" for
// an ephemeral ledger.
func NewAt(path string) *Backend {
	return &Backend{path: path}
}

// DefaultLedgerPath returns the default ledger location, honoring the
// QOP_LOCAL_DB override.
func DefaultLedgerPath() string {
	if p := os.Getenv("QOP_LOCAL_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".qop", "local.db")
	}
	return filepath.Join(home, ".qop", "local.db")
}

// handle opens the ledger on first use so that importing the package never
// touches the filesystem by itself.
func (b *Backend) handle() (*Ledger, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ledger == nil {
		path := b.path
		if path == "" {
			path = DefaultLedgerPath()
		}
		l, err := OpenLedger(path)
		if err != nil {
			return nil, err
		}
		b.ledger = l
	}
	return b.ledger, nil
}

// Close closes the underlying ledger if it was opened.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ledger == nil {
		return nil
	}
	err := b.ledger.Close()
	b.ledger = nil
	return err
}

// Name returns the provider identifier.
func (b *Backend) Name() string {
	return providerName
}

// Description describes the backend in provider listings.
func (b *Backend) Description() string {
	return "records submissions in a local ledger without executing them"
}

// ListDevices reports the single built-in device. Tokens and filters are
// ignored.
func (b *Backend) ListDevices(ctx context.Context, token string, filters qop.Params) ([]qop.DeviceInfo, error) {
	return []qop.DeviceInfo{{
		Device: defaultDevice,
		State:  "available",
	}}, nil
}

// SubmitTask records the submission and returns its handle. The task is
// complete as soon as it is recorded.
func (b *Backend) SubmitTask(ctx context.Context, req qop.SubmitRequest) (qop.Task, error) {
	l, err := b.handle()
	if err != nil {
		return qop.Task{}, err
	}
	dev := req.Device
	if dev.IsZero() {
		dev = defaultDevice
	}
	shots := req.Shots
	if shots < 0 {
		shots = defaultShots
	}
	rec := record{
		ID:      uuid.NewString(),
		Device:  dev.String(),
		State:   stateDone,
		Shots:   shots,
		Source:  req.Source,
		Params:  req.Params,
		Results: map[string]int64{},
		Created: time.Now().UTC(),
	}
	if err := l.insert(ctx, rec); err != nil {
		return qop.Task{}, err
	}
	return qop.NewTask(rec.ID, dev), nil
}

// TaskDetails returns the ledger record for a task.
func (b *Backend) TaskDetails(ctx context.Context, task qop.Task, token string) (qop.TaskDetails, error) {
	l, err := b.handle()
	if err != nil {
		return qop.TaskDetails{}, err
	}
	rec, err := l.get(ctx, task.ID())
	if err != nil {
		return qop.TaskDetails{}, err
	}
	dev, err := qop.ParseDevice(rec.Device, qop.Provider{})
	if err != nil {
		return qop.TaskDetails{}, err
	}
	return qop.TaskDetails{
		Task:    qop.NewTask(rec.ID, dev),
		Device:  dev,
		State:   rec.State,
		Shots:   rec.Shots,
		Source:  rec.Source,
		Created: rec.Created,
		Results: rec.Results,
		Extra:   qop.Params(rec.Params),
	}, nil
}

// ListTasks returns handles for recorded tasks, newest first. A "state"
// filter restricts the listing to tasks in that state; a "limit" filter
// caps the number of returned tasks.
func (b *Backend) ListTasks(ctx context.Context, req qop.TasksRequest) ([]qop.Task, error) {
	l, err := b.handle()
	if err != nil {
		return nil, err
	}
	device := ""
	if !req.Device.IsZero() {
		device = req.Device.String()
	}
	state := ""
	if s, ok := req.Filters["state"].(string); ok {
		state = s
	}
	limit, err := limitFilter(req.Filters)
	if err != nil {
		return nil, err
	}
	recs, err := l.list(ctx, device, state, limit)
	if err != nil {
		return nil, err
	}
	tasks := make([]qop.Task, 0, len(recs))
	for _, rec := range recs {
		dev, err := qop.ParseDevice(rec.Device, qop.Provider{})
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, qop.NewTask(rec.ID, dev))
	}
	return tasks, nil
}

// limitFilter extracts the "limit" filter as a row cap. Absent or
// non-positive means unlimited. Library callers pass ints; the CLI passes
// the flag value through as a string.
func limitFilter(filters qop.Params) (int, error) {
	switch v := filters["limit"].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("bad limit filter %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("bad limit filter %v (want a number)", v)
	}
}
