package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileImageController = (*ProfileService)(nil)

// ProfileService owns the profile photo reference, gates capture behind
// camera permission, and keeps the key-value store in step with memory.
//
// Every mutation bumps generation while holding mu, and every persistence
// write is submitted to the queue under the same lock, so storage order
// always matches memory order.
type ProfileService struct {
	permissions driven.PermissionService
	acquirer    driven.ImageAcquirer
	queue       *WriteQueue
	store       driven.KeyValueStore
	config      domain.AcquisitionConfig

	startup *initGate

	mu               sync.RWMutex
	image            *domain.ProfileImageRef
	cameraPermission domain.PermissionState
	ready            bool
	generation       uint64

	// writeSeq orders background write results so a slow earlier failure
	// never overwrites the outcome of a later write.
	writeSeq   uint64
	persistSeq uint64
	persistErr error
	recorders  sync.WaitGroup
}

// NewProfileService creates a profile service.
func NewProfileService(
	permissions driven.PermissionService,
	acquirer driven.ImageAcquirer,
	store driven.KeyValueStore,
) *ProfileService {
	return &ProfileService{
		permissions: permissions,
		acquirer:    acquirer,
		queue:       NewWriteQueue(store),
		store:       store,
		config:      domain.DefaultAcquisitionConfig(),
		startup:     newInitGate(),
	}
}

// Initialize loads the stored image and requests camera permission
// concurrently. Both steps swallow their own failures; only context
// cancellation is returned, and a cancelled run is retried by the next
// call. Once a run succeeds later calls return nil at once.
func (s *ProfileService) Initialize(ctx context.Context) error {
	if err := s.startup.Do(ctx, s.initialize); err != nil {
		return fmt.Errorf("initialize profile: %w", err)
	}
	return nil
}

func (s *ProfileService) initialize(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loadStoredImage(gctx) })
	g.Go(func() error { return s.checkCameraPermission(gctx) })

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	state := s.State()
	logger.Debug("profile: ready (image set: %t, camera: %s)", state.HasImage(), state.CameraPermission)
	return nil
}

// loadStoredImage reads the persisted reference. A failed read leaves the
// image unset.
func (s *ProfileService) loadStoredImage(ctx context.Context) error {
	if s.store == nil {
		logger.Warn("profile: no key-value store configured")
		return nil
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	if err := s.queue.Wait(ctx, domain.ProfileImageKey); err != nil {
		return err
	}

	value, found, err := s.store.Get(ctx, domain.ProfileImageKey)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("profile: loading %s from storage: %v", domain.ProfileImageKey, err)
		return nil
	}
	if !found || value == "" {
		logger.Debug("profile: no stored image")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// A pick or delete landed while loading; it is newer than storage was.
		return nil
	}
	s.image = &domain.ProfileImageRef{URI: value}
	return nil
}

// checkCameraPermission asks for camera access. Errors fail safe to denied.
func (s *ProfileService) checkCameraPermission(ctx context.Context) error {
	state := domain.PermissionDenied

	if s.permissions != nil {
		got, err := s.permissions.Request(ctx, domain.PermissionCamera)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Warn("profile: camera permission request failed, treating as denied: %v", err)
		case got.IsGranted():
			state = domain.PermissionGranted
		}
	}

	s.mu.Lock()
	s.cameraPermission = state
	s.mu.Unlock()
	return nil
}

// State returns a snapshot of the profile screen state.
func (s *ProfileService) State() domain.ProfileState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.ProfileState{
		CameraPermission: s.cameraPermission,
		Ready:            s.ready,
	}
	if s.image != nil {
		img := *s.image
		state.Image = &img
	}
	return state
}

// PickFromLibrary selects an existing image. The platform picker handles
// its own permission prompt, so none is checked here.
func (s *ProfileService) PickFromLibrary(ctx context.Context) (domain.AcquisitionOutcome, error) {
	if s.acquirer == nil {
		return domain.OutcomeFailed, domain.ErrNotImplemented
	}

	result, err := s.acquirer.PickFromLibrary(ctx, s.config)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("pick from library: %w", err)
	}
	return s.HandleAcquisitionResult(ctx, result), nil
}

// CaptureFromCamera takes a photo. Without a camera grant it is rejected
// before the acquirer is touched.
func (s *ProfileService) CaptureFromCamera(ctx context.Context) (domain.AcquisitionOutcome, error) {
	s.mu.RLock()
	permission := s.cameraPermission
	s.mu.RUnlock()

	if !permission.IsGranted() {
		logger.Warn("profile: camera permission not granted (%s)", permission)
		return domain.OutcomePermissionRejected, nil
	}
	if s.acquirer == nil {
		return domain.OutcomeFailed, domain.ErrNotImplemented
	}

	result, err := s.acquirer.CaptureFromCamera(ctx, s.config)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("capture from camera: %w", err)
	}
	return s.HandleAcquisitionResult(ctx, result), nil
}

// HandleAcquisitionResult applies a picker or camera result. A cancelled
// result changes nothing. Otherwise the first asset becomes the profile
// image and a persistence write is queued without waiting for it.
func (s *ProfileService) HandleAcquisitionResult(
	ctx context.Context,
	result *domain.AcquisitionResult,
) domain.AcquisitionOutcome {
	logger.Debug("profile: acquisition result %+v", result)

	if result == nil || result.Cancelled {
		return domain.OutcomeCancelled
	}
	if len(result.Assets) == 0 || result.Assets[0].URI == "" {
		logger.Warn("profile: acquisition returned no assets, ignoring")
		return domain.OutcomeCancelled
	}

	uri := result.Assets[0].URI

	s.mu.Lock()
	s.image = &domain.ProfileImageRef{URI: uri}
	s.generation++
	s.writeSeq++
	seq := s.writeSeq
	done := s.queue.Set(ctx, domain.ProfileImageKey, uri)
	s.mu.Unlock()

	s.recorders.Add(1)
	go s.recordWrite(seq, uri, done)

	return domain.OutcomeUpdated
}

// recordWrite waits for a background write and keeps its outcome.
func (s *ProfileService) recordWrite(seq uint64, uri string, done <-chan error) {
	defer s.recorders.Done()

	err := <-done
	if err != nil {
		logger.Error("profile: saving image %s to storage: %v", uri, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.persistSeq {
		s.persistSeq = seq
		s.persistErr = err
	}
}

// DeleteImage removes the stored reference, then clears memory.
// On storage failure memory is left untouched and the error is returned.
// If ctx ends while the removal is still queued behind a pending write,
// DeleteImage returns the context error without waiting for that write.
func (s *ProfileService) DeleteImage(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	done := s.queue.Remove(ctx, domain.ProfileImageKey)
	s.mu.Unlock()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("profile: deleting image from storage: %v", err)
			return fmt.Errorf("delete profile image: %w", err)
		}
		s.clearImage(gen)
		return nil
	case <-ctx.Done():
	}

	// The removal may still be waiting behind an earlier write. It sees
	// the cancelled context and leaves storage alone, unless it had already
	// reached the store, in which case memory follows it once it lands.
	s.recorders.Add(1)
	go func() {
		defer s.recorders.Done()
		if err := <-done; err == nil {
			s.clearImage(gen)
		}
	}()
	return fmt.Errorf("delete profile image: %w", ctx.Err())
}

// clearImage drops the in-memory image unless a newer pick or delete has
// happened since gen. A newer pick is queued behind the removal and leaves
// storage and memory agreeing on the new image.
func (s *ProfileService) clearImage(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.image = nil
		s.generation++
	}
}

// Flush waits for queued writes of the profile key and for their outcomes
// to be recorded.
func (s *ProfileService) Flush(ctx context.Context) error {
	if err := s.queue.Wait(ctx, domain.ProfileImageKey); err != nil {
		return err
	}

	recorded := make(chan struct{})
	go func() {
		s.recorders.Wait()
		close(recorded)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-recorded:
		return nil
	}
}

// LastPersistError returns the outcome of the most recent background write.
func (s *ProfileService) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// Close waits for every outstanding write.
func (s *ProfileService) Close() error {
	s.queue.Close()
	return nil
}
