// Package app owns the user-facing state: the stored profile, plan and theme
// flag plus the transient plan, speech and image action results.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/internal/playback"
	"github.com/mohammad-safakhou/fitcoach/internal/state"
	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/mohammad-safakhou/fitcoach/provider"
	"github.com/mohammad-safakhou/fitcoach/repository"
)

// User-visible failure messages.
const (
	MsgPlanFailed  = "Failed to generate plan. The AI might be busy or an error occurred. Please try again."
	MsgAudioFailed = "Couldn't play audio. Please try again."
	MsgImageFailed = "Failed to generate image"
)

var (
	// ErrBusy is returned when a plan generation is already in flight.
	ErrBusy = errors.New("plan generation already in progress")
	// ErrSuperseded is returned to a generation whose result was dropped
	// because the plan was cleared meanwhile.
	ErrSuperseded = errors.New("plan request superseded")
)

// DefaultDarkMode applies until the user toggles the theme.
const DefaultDarkMode = true

// Audio is the playback surface the service drives.
type Audio interface {
	Play(ctx context.Context, id, text string) error
	Stop()
	State() playback.State
	Current() (*audio.Clip, bool)
}

// Service is safe for concurrent use.
type Service struct {
	store    repository.Store
	provider provider.Provider
	audio    Audio
	logger   *slog.Logger

	mu         sync.Mutex
	planEpoch  uint64
	generating bool
	plan       state.Result[models.Plan]
	speechSeq  uint64
	speech     state.Result[string]
	modal      modal
}

type modal struct {
	open      bool
	title     string
	requestID string
	image     state.Result[string]
}

// ModalView is the image modal as clients render it.
type ModalView struct {
	Open     bool    `json:"open"`
	Title    string  `json:"title"`
	ImageURL *string `json:"image_url"`
	Loading  bool    `json:"loading"`
	Error    *string `json:"error"`
}

// Snapshot is the complete view state.
type Snapshot struct {
	DarkMode     bool               `json:"dark_mode"`
	Profile      models.UserProfile `json:"profile"`
	Plan         *models.Plan       `json:"plan"`
	IsLoading    bool               `json:"is_loading"`
	ErrorMessage *string            `json:"error_message"`
	Notice       *string            `json:"notice"`
	Audio        playback.State     `json:"audio"`
	Modal        ModalView          `json:"modal"`
}

func NewService(store repository.Store, p provider.Provider, a Audio, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		provider: p,
		audio:    a,
		logger:   logger.With("component", "app"),
		plan:     state.Idle[models.Plan](),
		speech:   state.Idle[string](),
		modal:    modal{image: state.Idle[string]()},
	}
}

func (s *Service) Profile(ctx context.Context) models.UserProfile {
	return repository.Load(ctx, s.store, repository.KeyProfile, models.DefaultProfile(), s.logger)
}

// UpdateProfile stores the profile exactly as submitted; every field is
// free-form text and reaches the plan prompt unchanged.
func (s *Service) UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	if err := repository.Save(ctx, s.store, repository.KeyProfile, p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func (s *Service) DarkMode(ctx context.Context) bool {
	return repository.Load(ctx, s.store, repository.KeyDarkMode, DefaultDarkMode, s.logger)
}

func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	return repository.Save(ctx, s.store, repository.KeyDarkMode, on)
}

// Plan returns the stored plan, nil when none exists.
func (s *Service) Plan(ctx context.Context) *models.Plan {
	return repository.Load[*models.Plan](ctx, s.store, repository.KeyPlan, nil, s.logger)
}

// GeneratePlan replaces the stored plan with a freshly generated one. The
// stored plan is cleared before the call, so a failure leaves no plan.
func (s *Service) GeneratePlan(ctx context.Context) (*models.Plan, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.generating = true
	s.planEpoch++
	epoch := s.planEpoch
	s.plan = state.Loading[models.Plan]()
	s.mu.Unlock()

	s.audio.Stop()
	if err := repository.Save[*models.Plan](ctx, s.store, repository.KeyPlan, nil); err != nil {
		s.logger.Warn("failed to clear stored plan", "error", err)
	}
	profile := s.Profile(ctx)

	plan, err := s.provider.GeneratePlan(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.planEpoch {
		s.logger.Info("discarding superseded plan result")
		return nil, ErrSuperseded
	}
	s.generating = false
	if err != nil {
		s.logger.Error("plan generation failed", "error", err)
		s.plan = state.Failed[models.Plan](MsgPlanFailed)
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	if err := repository.Save(ctx, s.store, repository.KeyPlan, plan); err != nil {
		s.logger.Error("failed to store plan", "error", err)
		s.plan = state.Failed[models.Plan](MsgPlanFailed)
		return nil, err
	}
	s.plan = state.Succeeded(*plan)
	return plan, nil
}

// ClearPlan stops audio and removes the stored plan. A generation still in
// flight is superseded and its result dropped.
func (s *Service) ClearPlan(ctx context.Context) error {
	s.audio.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planEpoch++
	s.generating = false
	s.plan = state.Idle[models.Plan]()
	return repository.Save[*models.Plan](ctx, s.store, repository.KeyPlan, nil)
}

// PlayAudio toggles or switches narration for id. A failure is reported as a
// notice and leaves playback idle.
func (s *Service) PlayAudio(ctx context.Context, id, text string) error {
	s.mu.Lock()
	s.speechSeq++
	seq := s.speechSeq
	s.speech = state.Loading[string]()
	s.mu.Unlock()

	err := s.audio.Play(ctx, id, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.speechSeq {
		return err
	}
	if err != nil {
		s.logger.Warn("speech failed", "item", id, "error", err)
		s.speech = state.Failed[string](MsgAudioFailed)
		return err
	}
	s.speech = state.Succeeded(id)
	return nil
}

func (s *Service) StopAudio() {
	s.audio.Stop()
}

func (s *Service) AudioState() playback.State {
	return s.audio.State()
}

func (s *Service) CurrentAudio() (*audio.Clip, bool) {
	return s.audio.Current()
}

// RequestImage opens the modal for title and fills it with a generated
// image. Results of requests superseded by a newer one are ignored.
func (s *Service) RequestImage(ctx context.Context, title, prompt string) ModalView {
	id := uuid.NewString()
	s.mu.Lock()
	s.modal = modal{open: true, title: title, requestID: id, image: state.Loading[string]()}
	s.mu.Unlock()

	uri, err := s.provider.GenerateImage(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal.requestID != id {
		return s.modalViewLocked()
	}
	if err != nil {
		s.logger.Warn("image generation failed", "title", title, "error", err)
		s.modal.image = state.Failed[string](MsgImageFailed)
	} else {
		s.modal.image = state.Succeeded(uri)
	}
	return s.modalViewLocked()
}

// CloseModal hides the modal. A request still in flight keeps filling it.
func (s *Service) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal.open = false
}

func (s *Service) Modal() ModalView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modalViewLocked()
}

func (s *Service) modalViewLocked() ModalView {
	m := s.modal
	return ModalView{
		Open:     m.open,
		Title:    m.title,
		ImageURL: m.image.Value,
		Loading:  m.image.IsLoading(),
		Error:    m.image.ErrorMessage(),
	}
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snap := Snapshot{
		DarkMode: s.DarkMode(ctx),
		Profile:  s.Profile(ctx),
		Plan:     s.Plan(ctx),
		Audio:    s.audio.State(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.IsLoading = s.plan.IsLoading()
	snap.ErrorMessage = s.plan.ErrorMessage()
	snap.Notice = s.speech.ErrorMessage()
	snap.Modal = s.modalViewLocked()
	return snap
}
