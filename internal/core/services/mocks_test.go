package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/core/domain"
)

var errStorage = errors.New("storage unavailable")

// mockPermissionService implements driven.PermissionService for testing.
type mockPermissionService struct {
	mu       sync.Mutex
	states   map[domain.PermissionKind]domain.PermissionState
	err      error
	requests []domain.PermissionKind

	RequestFunc func(ctx context.Context, kind domain.PermissionKind) (domain.PermissionState, error)
}

func grantAll() *mockPermissionService {
	return &mockPermissionService{states: map[domain.PermissionKind]domain.PermissionState{
		domain.PermissionCamera:   domain.PermissionGranted,
		domain.PermissionContacts: domain.PermissionGranted,
	}}
}

func denyAll() *mockPermissionService {
	return &mockPermissionService{states: map[domain.PermissionKind]domain.PermissionState{
		domain.PermissionCamera:   domain.PermissionDenied,
		domain.PermissionContacts: domain.PermissionDenied,
	}}
}

func (m *mockPermissionService) Request(ctx context.Context, kind domain.PermissionKind) (domain.PermissionState, error) {
	m.mu.Lock()
	m.requests = append(m.requests, kind)
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, kind)
	}
	if m.err != nil {
		return domain.PermissionUnknown, m.err
	}
	return m.states[kind], nil
}

// mockAcquirer implements driven.ImageAcquirer for testing.
type mockAcquirer struct {
	mu           sync.Mutex
	pickCalls    int
	captureCalls int
	lastConfig   domain.AcquisitionConfig

	result *domain.AcquisitionResult
	err    error
}

func acquiring(uri string) *mockAcquirer {
	return &mockAcquirer{result: &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: uri}},
	}}
}

func (m *mockAcquirer) PickFromLibrary(_ context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickCalls++
	m.lastConfig = cfg
	return m.result, m.err
}

func (m *mockAcquirer) CaptureFromCamera(_ context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captureCalls++
	m.lastConfig = cfg
	return m.result, m.err
}

func (m *mockAcquirer) calls() (pick, capture int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pickCalls, m.captureCalls
}

// stubStore wraps the memory store with injectable failures and gates.
type stubStore struct {
	*memory.KeyValueStore

	getErr    error
	setErr    error
	removeErr error

	// setGate and removeGate, when non-nil, block the operation until closed.
	setGate    chan struct{}
	removeGate chan struct{}

	// removeStarted is closed when Remove begins.
	removeStarted chan struct{}
	startOnce     sync.Once

	GetFunc func(ctx context.Context, key string) (string, bool, error)

	mu  sync.Mutex
	ops []string
}

func newStubStore() *stubStore {
	return &stubStore{KeyValueStore: memory.NewKeyValueStore()}
}

func (s *stubStore) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
}

func (s *stubStore) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ops))
	copy(out, s.ops)
	return out
}

func (s *stubStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, key)
	}
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.KeyValueStore.Get(ctx, key)
}

func (s *stubStore) Set(ctx context.Context, key, value string) error {
	if s.setGate != nil {
		<-s.setGate
	}
	s.record("set:" + value)
	if s.setErr != nil {
		return s.setErr
	}
	return s.KeyValueStore.Set(ctx, key, value)
}

func (s *stubStore) Remove(ctx context.Context, key string) error {
	if s.removeStarted != nil {
		s.startOnce.Do(func() { close(s.removeStarted) })
	}
	if s.removeGate != nil {
		<-s.removeGate
	}
	s.record("remove")
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.KeyValueStore.Remove(ctx, key)
}

// mockContactStore implements driven.ContactStore for testing.
type mockContactStore struct {
	contacts   []domain.Contact
	err        error
	calls      int
	lastFields []domain.ContactField
}

func (m *mockContactStore) ListContacts(_ context.Context, fields []domain.ContactField) ([]domain.Contact, error) {
	m.calls++
	m.lastFields = fields
	return m.contacts, m.err
}

// staticOverrides implements driven.SettingsOverrides for testing.
type staticOverrides struct {
	apply func(*domain.AppSettings)
	err   error
}

func (o staticOverrides) Apply(settings *domain.AppSettings) error {
	if o.err != nil {
		return o.err
	}
	if o.apply != nil {
		o.apply(settings)
	}
	return nil
}
