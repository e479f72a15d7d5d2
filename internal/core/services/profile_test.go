package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/core/domain"
)

func newInitializedProfile(
	t *testing.T,
	perms *mockPermissionService,
	acq *mockAcquirer,
	store interface {
		Get(context.Context, string) (string, bool, error)
		Set(context.Context, string, string) error
		Remove(context.Context, string) error
	},
) *ProfileService {
	t.Helper()
	service := NewProfileService(perms, acq, store)
	require.NoError(t, service.Initialize(context.Background()))
	t.Cleanup(func() { _ = service.Close() })
	return service
}

func storedImage(t *testing.T, store *memory.KeyValueStore) (string, bool) {
	t.Helper()
	val, found, err := store.Get(context.Background(), domain.ProfileImageKey)
	require.NoError(t, err)
	return val, found
}

func TestNewProfileService(t *testing.T) {
	service := NewProfileService(nil, nil, nil)

	require.NotNil(t, service)
	assert.NotNil(t, service.queue)
	assert.Equal(t, domain.DefaultAcquisitionConfig(), service.config)

	state := service.State()
	assert.False(t, state.Ready)
	assert.Nil(t, state.Image)
	assert.Equal(t, domain.PermissionUnknown, state.CameraPermission)
}

// Empty storage, no image after initialization.
func TestProfileService_Initialize_EmptyStorage(t *testing.T) {
	store := memory.NewKeyValueStore()
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	state := service.State()
	assert.True(t, state.Ready)
	assert.False(t, state.HasImage())
	assert.Equal(t, domain.PermissionGranted, state.CameraPermission)
}

func TestProfileService_Initialize_LoadsStoredImage(t *testing.T) {
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(context.Background(), domain.ProfileImageKey, "file://stored.jpg"))

	service := newInitializedProfile(t, denyAll(), &mockAcquirer{}, store)

	state := service.State()
	require.True(t, state.HasImage())
	assert.Equal(t, "file://stored.jpg", state.Image.URI)
	assert.Equal(t, domain.PermissionDenied, state.CameraPermission)
}

func TestProfileService_Initialize_ReadFailureIsSwallowed(t *testing.T) {
	store := newStubStore()
	store.getErr = errStorage

	service := NewProfileService(grantAll(), &mockAcquirer{}, store)
	err := service.Initialize(context.Background())

	require.NoError(t, err)
	state := service.State()
	assert.True(t, state.Ready)
	assert.False(t, state.HasImage())
}

func TestProfileService_Initialize_PermissionErrorMeansDenied(t *testing.T) {
	perms := &mockPermissionService{err: errors.New("camera service crashed")}

	service := newInitializedProfile(t, perms, &mockAcquirer{}, memory.NewKeyValueStore())

	assert.Equal(t, domain.PermissionDenied, service.State().CameraPermission)
}

func TestProfileService_Initialize_UnknownPermissionMeansDenied(t *testing.T) {
	perms := &mockPermissionService{states: map[domain.PermissionKind]domain.PermissionState{}}

	service := newInitializedProfile(t, perms, &mockAcquirer{}, memory.NewKeyValueStore())

	assert.Equal(t, domain.PermissionDenied, service.State().CameraPermission)
}

func TestProfileService_Initialize_NilPermissionServiceMeansDenied(t *testing.T) {
	service := NewProfileService(nil, &mockAcquirer{}, memory.NewKeyValueStore())
	require.NoError(t, service.Initialize(context.Background()))

	assert.Equal(t, domain.PermissionDenied, service.State().CameraPermission)
}

func TestProfileService_Initialize_StepsRunConcurrently(t *testing.T) {
	permissionAsked := make(chan struct{})
	loadStarted := make(chan struct{})

	// Each step waits for the other to have started, so a sequential
	// initialization would time out.
	perms := &mockPermissionService{
		RequestFunc: func(ctx context.Context, _ domain.PermissionKind) (domain.PermissionState, error) {
			close(permissionAsked)
			select {
			case <-loadStarted:
				return domain.PermissionGranted, nil
			case <-time.After(2 * time.Second):
				return domain.PermissionUnknown, errors.New("load never started")
			}
		},
	}
	store := newStubStore()
	store.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		close(loadStarted)
		select {
		case <-permissionAsked:
			return "file://concurrent.jpg", true, nil
		case <-time.After(2 * time.Second):
			return "", false, errors.New("permission never asked")
		}
	}

	service := newInitializedProfile(t, perms, &mockAcquirer{}, store)

	state := service.State()
	assert.Equal(t, domain.PermissionGranted, state.CameraPermission)
	require.True(t, state.HasImage())
	assert.Equal(t, "file://concurrent.jpg", state.Image.URI)
}

func TestProfileService_Initialize_RunsOnce(t *testing.T) {
	perms := grantAll()
	service := newInitializedProfile(t, perms, &mockAcquirer{}, memory.NewKeyValueStore())

	require.NoError(t, service.Initialize(context.Background()))
	require.NoError(t, service.Initialize(context.Background()))

	assert.Len(t, perms.requests, 1)
}

func TestProfileService_Initialize_CancelledContext(t *testing.T) {
	perms := &mockPermissionService{
		RequestFunc: func(ctx context.Context, _ domain.PermissionKind) (domain.PermissionState, error) {
			<-ctx.Done()
			return domain.PermissionUnknown, ctx.Err()
		},
	}
	service := NewProfileService(perms, &mockAcquirer{}, memory.NewKeyValueStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := service.Initialize(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, service.State().Ready)
}

func TestProfileService_Initialize_RetriesAfterCancellation(t *testing.T) {
	perms := grantAll()
	perms.RequestFunc = func(ctx context.Context, _ domain.PermissionKind) (domain.PermissionState, error) {
		if err := ctx.Err(); err != nil {
			return domain.PermissionUnknown, err
		}
		return domain.PermissionGranted, nil
	}
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(context.Background(), domain.ProfileImageKey, "file://me.jpg"))
	service := NewProfileService(perms, &mockAcquirer{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, service.Initialize(ctx), context.Canceled)

	require.NoError(t, service.Initialize(context.Background()))

	state := service.State()
	assert.True(t, state.Ready)
	assert.Equal(t, domain.PermissionGranted, state.CameraPermission)
	require.True(t, state.HasImage())
	assert.Equal(t, "file://me.jpg", state.Image.URI)
}

func TestProfileService_Initialize_WaiterGivesUpWithItsContext(t *testing.T) {
	release := make(chan struct{})
	perms := grantAll()
	perms.RequestFunc = func(context.Context, domain.PermissionKind) (domain.PermissionState, error) {
		<-release
		return domain.PermissionGranted, nil
	}
	service := NewProfileService(perms, &mockAcquirer{}, memory.NewKeyValueStore())

	first := make(chan error, 1)
	go func() { first <- service.Initialize(context.Background()) }()
	require.Eventually(t, func() bool {
		perms.mu.Lock()
		defer perms.mu.Unlock()
		return len(perms.requests) == 1
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, service.Initialize(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-first)
	assert.True(t, service.State().Ready)
}

// A library pick updates memory and storage.
func TestProfileService_PickFromLibrary(t *testing.T) {
	store := memory.NewKeyValueStore()
	acq := acquiring("file://a.jpg")
	service := newInitializedProfile(t, denyAll(), acq, store)

	outcome, err := service.PickFromLibrary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	assert.Equal(t, "file://a.jpg", service.State().Image.URI)

	require.NoError(t, service.Flush(context.Background()))
	val, found := storedImage(t, store)
	assert.True(t, found)
	assert.Equal(t, "file://a.jpg", val)
	assert.NoError(t, service.LastPersistError())
}

func TestProfileService_PickFromLibrary_UsesProfileConfig(t *testing.T) {
	acq := acquiring("file://a.jpg")
	service := newInitializedProfile(t, denyAll(), acq, memory.NewKeyValueStore())

	_, err := service.PickFromLibrary(context.Background())
	require.NoError(t, err)

	assert.True(t, acq.lastConfig.AllowsEditing)
	assert.Equal(t, domain.AspectRatio{Width: 4, Height: 3}, acq.lastConfig.Aspect)
	assert.Equal(t, 1.0, acq.lastConfig.Quality)
}

func TestProfileService_PickFromLibrary_IgnoresCameraPermission(t *testing.T) {
	acq := acquiring("file://a.jpg")
	service := newInitializedProfile(t, denyAll(), acq, memory.NewKeyValueStore())

	outcome, err := service.PickFromLibrary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	pick, _ := acq.calls()
	assert.Equal(t, 1, pick)
}

func TestProfileService_PickFromLibrary_AcquisitionError(t *testing.T) {
	store := memory.NewKeyValueStore()
	acq := &mockAcquirer{err: errors.New("picker crashed")}
	service := newInitializedProfile(t, grantAll(), acq, store)

	outcome, err := service.PickFromLibrary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "picker crashed")
	assert.Equal(t, domain.OutcomeFailed, outcome)
	assert.False(t, service.State().HasImage())
	assert.Equal(t, 0, store.Len())
}

func TestProfileService_PickFromLibrary_NilAcquirer(t *testing.T) {
	service := NewProfileService(grantAll(), nil, memory.NewKeyValueStore())
	require.NoError(t, service.Initialize(context.Background()))

	outcome, err := service.PickFromLibrary(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Equal(t, domain.OutcomeFailed, outcome)
}

// Capture then load from storage returns the captured URI.
func TestProfileService_CaptureFromCamera_PersistenceRoundTrip(t *testing.T) {
	store := memory.NewKeyValueStore()
	service := newInitializedProfile(t, grantAll(), acquiring("file://camera/u.jpg"), store)

	outcome, err := service.CaptureFromCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	require.NoError(t, service.Flush(context.Background()))

	reloaded := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)
	require.True(t, reloaded.State().HasImage())
	assert.Equal(t, "file://camera/u.jpg", reloaded.State().Image.URI)
}

// Capture while denied never reaches the acquirer.
func TestProfileService_CaptureFromCamera_DeniedIsRejected(t *testing.T) {
	store := newStubStore()
	acq := acquiring("file://never.jpg")
	service := newInitializedProfile(t, denyAll(), acq, store)

	outcome, err := service.CaptureFromCamera(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePermissionRejected, outcome)
	_, capture := acq.calls()
	assert.Equal(t, 0, capture)
	assert.False(t, service.State().HasImage())
	require.NoError(t, service.Flush(context.Background()))
	assert.Empty(t, store.recorded())
}

func TestProfileService_CaptureFromCamera_BeforeInitializeIsRejected(t *testing.T) {
	acq := acquiring("file://never.jpg")
	service := NewProfileService(grantAll(), acq, memory.NewKeyValueStore())

	outcome, err := service.CaptureFromCamera(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePermissionRejected, outcome)
	_, capture := acq.calls()
	assert.Equal(t, 0, capture)
}

func TestProfileService_CaptureFromCamera_Cancelled(t *testing.T) {
	store := memory.NewKeyValueStore()
	acq := &mockAcquirer{result: domain.CancelledResult()}
	service := newInitializedProfile(t, grantAll(), acq, store)

	outcome, err := service.CaptureFromCamera(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCancelled, outcome)
	assert.False(t, service.State().HasImage())
}

// A cancelled result changes neither memory nor storage.
func TestProfileService_HandleAcquisitionResult_Cancelled(t *testing.T) {
	store := newStubStore()
	require.NoError(t, store.KeyValueStore.Set(context.Background(), domain.ProfileImageKey, "file://keep.jpg"))
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	outcome := service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Cancelled: true,
		Assets:    []domain.Asset{{URI: "file://ignored.jpg"}},
	})

	assert.Equal(t, domain.OutcomeCancelled, outcome)
	assert.Equal(t, "file://keep.jpg", service.State().Image.URI)
	require.NoError(t, service.Flush(context.Background()))
	assert.Empty(t, store.recorded())
}

func TestProfileService_HandleAcquisitionResult_NoAssets(t *testing.T) {
	store := newStubStore()
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	assert.Equal(t, domain.OutcomeCancelled, service.HandleAcquisitionResult(context.Background(), nil))
	assert.Equal(t, domain.OutcomeCancelled,
		service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{}))
	assert.Equal(t, domain.OutcomeCancelled,
		service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{Assets: []domain.Asset{{}}}))

	assert.False(t, service.State().HasImage())
	assert.Empty(t, store.recorded())
}

func TestProfileService_HandleAcquisitionResult_TakesFirstAsset(t *testing.T) {
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, memory.NewKeyValueStore())

	service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://first.jpg"}, {URI: "file://second.jpg"}},
	})

	assert.Equal(t, "file://first.jpg", service.State().Image.URI)
}

func TestProfileService_HandleAcquisitionResult_DoesNotWaitForWrite(t *testing.T) {
	store := newStubStore()
	store.setGate = make(chan struct{})
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	outcome := service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://slow.jpg"}},
	})

	assert.Equal(t, domain.OutcomeUpdated, outcome)
	assert.Equal(t, "file://slow.jpg", service.State().Image.URI)
	assert.True(t, service.queue.Pending(domain.ProfileImageKey))

	close(store.setGate)
	require.NoError(t, service.Flush(context.Background()))
	assert.Equal(t, []string{"set:file://slow.jpg"}, store.recorded())
}

func TestProfileService_HandleAcquisitionResult_WriteFailureIsRecorded(t *testing.T) {
	store := newStubStore()
	store.setErr = errStorage
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://a.jpg"}},
	})
	require.NoError(t, service.Flush(context.Background()))

	assert.Eventually(t, func() bool {
		return errors.Is(service.LastPersistError(), errStorage)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "file://a.jpg", service.State().Image.URI)
}

// Delete clears both storage and memory.
func TestProfileService_DeleteImage(t *testing.T) {
	store := memory.NewKeyValueStore()
	service := newInitializedProfile(t, grantAll(), acquiring("file://a.jpg"), store)
	_, err := service.PickFromLibrary(context.Background())
	require.NoError(t, err)

	require.NoError(t, service.DeleteImage(context.Background()))

	assert.False(t, service.State().HasImage())
	_, found := storedImage(t, store)
	assert.False(t, found)
}

func TestProfileService_DeleteImage_WhenUnset(t *testing.T) {
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, memory.NewKeyValueStore())

	assert.NoError(t, service.DeleteImage(context.Background()))
	assert.False(t, service.State().HasImage())
}

func TestProfileService_DeleteImage_StorageFailureKeepsImage(t *testing.T) {
	store := newStubStore()
	store.removeErr = errStorage
	require.NoError(t, store.KeyValueStore.Set(context.Background(), domain.ProfileImageKey, "file://keep.jpg"))
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	err := service.DeleteImage(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	require.True(t, service.State().HasImage())
	assert.Equal(t, "file://keep.jpg", service.State().Image.URI)
}

func TestProfileService_DeleteImage_CancelledContextKeepsImage(t *testing.T) {
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(context.Background(), domain.ProfileImageKey, "file://keep.jpg"))
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := service.DeleteImage(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, service.State().HasImage())
	val, found := storedImage(t, store)
	assert.True(t, found)
	assert.Equal(t, "file://keep.jpg", val)
}

func TestProfileService_DeleteImage_CancelWhileQueuedBehindWrite(t *testing.T) {
	store := newStubStore()
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)
	store.setGate = make(chan struct{})

	service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://a.jpg"}},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := service.DeleteImage(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, service.State().HasImage())

	close(store.setGate)
	require.NoError(t, service.Flush(context.Background()))

	assert.Equal(t, []string{"set:file://a.jpg"}, store.recorded(), "the cancelled removal never reaches the store")
	require.True(t, service.State().HasImage())
	assert.Equal(t, "file://a.jpg", service.State().Image.URI)
	val, found, err := store.KeyValueStore.Get(context.Background(), domain.ProfileImageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "file://a.jpg", val)
}

// A delete issued while a pick's write is still in flight must not be
// undone when that write lands.
func TestProfileService_DeleteAfterPick_WriteCannotResurrect(t *testing.T) {
	store := newStubStore()
	store.setGate = make(chan struct{})
	service := newInitializedProfile(t, grantAll(), acquiring("file://a.jpg"), store)

	_, err := service.PickFromLibrary(context.Background())
	require.NoError(t, err)

	deleted := make(chan error, 1)
	go func() { deleted <- service.DeleteImage(context.Background()) }()

	// Let the pick's write land only after delete has been queued.
	time.Sleep(20 * time.Millisecond)
	close(store.setGate)

	require.NoError(t, <-deleted)
	require.NoError(t, service.Flush(context.Background()))

	assert.Equal(t, []string{"set:file://a.jpg", "remove"}, store.recorded())
	assert.False(t, service.State().HasImage())
	_, found, err := store.KeyValueStore.Get(context.Background(), domain.ProfileImageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

// A pick that lands while a delete is in flight wins in both places.
func TestProfileService_PickDuringDelete_NewImageSurvives(t *testing.T) {
	store := newStubStore()
	require.NoError(t, store.KeyValueStore.Set(context.Background(), domain.ProfileImageKey, "file://old.jpg"))
	store.removeGate = make(chan struct{})
	store.removeStarted = make(chan struct{})
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	deleted := make(chan error, 1)
	go func() { deleted <- service.DeleteImage(context.Background()) }()
	<-store.removeStarted

	service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://new.jpg"}},
	})
	close(store.removeGate)

	require.NoError(t, <-deleted)
	require.NoError(t, service.Flush(context.Background()))

	require.True(t, service.State().HasImage())
	assert.Equal(t, "file://new.jpg", service.State().Image.URI)
	val, found, err := store.KeyValueStore.Get(context.Background(), domain.ProfileImageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "file://new.jpg", val)
}

// After any burst of picks, storage and memory agree on the last one.
func TestProfileService_ConcurrentPicks_StorageMatchesMemory(t *testing.T) {
	store := memory.NewKeyValueStore()
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
				Assets: []domain.Asset{{URI: fmt.Sprintf("file://%d.jpg", i)}},
			})
		}(i)
	}
	wg.Wait()
	require.NoError(t, service.Flush(context.Background()))

	state := service.State()
	require.True(t, state.HasImage())
	val, found := storedImage(t, store)
	assert.True(t, found)
	assert.Equal(t, state.Image.URI, val)
}

func TestProfileService_SequentialPicks_Overwrite(t *testing.T) {
	store := newStubStore()
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, store)

	for _, uri := range []string{"file://1.jpg", "file://2.jpg", "file://3.jpg"} {
		service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
			Assets: []domain.Asset{{URI: uri}},
		})
	}
	require.NoError(t, service.Flush(context.Background()))

	assert.Equal(t, []string{"set:file://1.jpg", "set:file://2.jpg", "set:file://3.jpg"}, store.recorded())
	assert.Equal(t, "file://3.jpg", service.State().Image.URI)
}

func TestProfileService_State_ReturnsCopy(t *testing.T) {
	service := newInitializedProfile(t, grantAll(), &mockAcquirer{}, memory.NewKeyValueStore())
	service.HandleAcquisitionResult(context.Background(), &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: "file://a.jpg"}},
	})

	state := service.State()
	state.Image.URI = "file://tampered.jpg"

	assert.Equal(t, "file://a.jpg", service.State().Image.URI)
}
