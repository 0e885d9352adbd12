package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/repository"
	"zitheke_dev_v1/pkg/net"
)

// AdPublisher sends a finished ad to the marketplace backend.
type AdPublisher interface {
	CreateAd(ctx context.Context, req *net.MultipartRequest) error
}

// ==================== Config ====================

type WizardConfig struct {
	Limits       MediaLimits
	CreateAdPath string
	SuccessPath  string // where the storefront navigates after a successful submit
}

func (c WizardConfig) withDefaults() WizardConfig {
	if c.CreateAdPath == "" {
		c.CreateAdPath = CreateAdPath
	}
	if c.SuccessPath == "" {
		c.SuccessPath = "/my-ads"
	}
	c.Limits = c.Limits.withDefaults()
	return c
}

// ==================== Session ====================

type wizardSession struct {
	id        string
	createdAt time.Time
	media     *MediaStager

	mu         sync.Mutex
	draft      *model.AdDraft
	step       Step
	submitting bool
	lastActive time.Time
}

// SessionView is a read-only snapshot of a wizard session.
type SessionView struct {
	ID         string
	Step       Step
	Draft      model.CommonFields
	Extra      map[string]string
	Schema     []model.FieldDescriptor
	Images     []model.StagedFile
	Video      *model.StagedFile
	Submitting bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SubmitResult is returned after the marketplace accepted an ad.
type SubmitResult struct {
	SessionID string
	Redirect  string
}

// ==================== Service ====================

// WizardService hosts the ad-posting wizards of all connected storefront
// clients. Sessions live in memory only and are dropped on successful submit,
// on discard, or when idle for too long.
type WizardService struct {
	cfg         WizardConfig
	store       StorageProvider
	prober      VideoProber
	publisher   AdPublisher
	submissions repository.SubmissionRepository
	log         *zap.Logger
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*wizardSession
}

func NewWizardService(
	cfg WizardConfig,
	store StorageProvider,
	prober VideoProber,
	publisher AdPublisher,
	submissions repository.SubmissionRepository,
	log *zap.Logger,
) *WizardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &WizardService{
		cfg:         cfg.withDefaults(),
		store:       store,
		prober:      prober,
		publisher:   publisher,
		submissions: submissions,
		log:         log.Named("WizardService"),
		now:         time.Now,
		sessions:    make(map[string]*wizardSession),
	}
}

// Limits returns the media limits applied to every session.
func (s *WizardService) Limits() MediaLimits {
	return s.cfg.Limits
}

// Open starts an empty wizard at the first step.
func (s *WizardService) Open(ctx context.Context) (*SessionView, error) {
	now := s.now()
	sess := &wizardSession{
		id:         uuid.NewString(),
		createdAt:  now,
		media:      NewMediaStager(s.cfg.Limits, s.store, s.prober, s.log),
		draft:      model.NewAdDraft(),
		step:       FirstStep,
		lastActive: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Debug("wizard opened", zap.String("session", sess.id))
	return s.view(sess), nil
}

// Get returns the current state of a session.
func (s *WizardService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ActiveSessions returns the number of open wizards.
func (s *WizardService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ==================== Form ====================

// ChangeField applies one input change to the draft.
func (s *WizardService) ChangeField(ctx context.Context, id, name, value string, isCheckbox bool) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	err = sess.draft.OnFieldChange(name, value, isCheckbox)
	sess.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("change field %q: %w", name, err)
	}
	return s.view(sess), nil
}

// ChangeCategory switches the draft's category, purging the old category's fields.
func (s *WizardService) ChangeCategory(ctx context.Context, id string, category model.Category) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	err = sess.draft.OnCategoryChange(category)
	sess.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("change category: %w", err)
	}
	return s.view(sess), nil
}

// ==================== Navigation ====================

// Next advances one step if the current step's gate passes. At the last step
// it does nothing.
func (s *WizardService) Next(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	imageCount := sess.media.ImageCount()

	sess.mu.Lock()
	if verr := ValidateStep(sess.step, sess.draft, imageCount); verr != nil {
		sess.mu.Unlock()
		return nil, verr
	}
	sess.step = sess.step.Next()
	sess.mu.Unlock()

	return s.view(sess), nil
}

// Back returns to the previous step without validating.
func (s *WizardService) Back(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.step = sess.step.Prev()
	sess.mu.Unlock()

	return s.view(sess), nil
}

// ==================== Media ====================

func (s *WizardService) StageImages(ctx context.Context, id string, files []model.UploadedFile) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if _, err := sess.media.StageImages(ctx, files); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *WizardService) RemoveImage(ctx context.Context, id string, index int) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := sess.media.RemoveImage(ctx, index); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *WizardService) StageVideo(ctx context.Context, id string, file model.UploadedFile) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if _, err := sess.media.StageVideo(ctx, file); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *WizardService) RemoveVideo(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.media.RemoveVideo(ctx)
	return s.view(sess), nil
}

// ==================== Submit ====================

// Submit publishes the draft from the last step. Identity, every step gate
// and the location gate are checked before anything is sent; only one
// submission per session may be in flight. Exactly one publish call is made per attempt.
// On failure the draft and step are left as they were.
func (s *WizardService) Submit(ctx context.Context, id string, who model.Identity) (*SubmitResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	if who.Anonymous() {
		return nil, &WizardError{Kind: KindIdentity, Rule: RuleIdentityRequired, Message: "Please log in to post an ad."}
	}

	images := sess.media.Images()
	video := sess.media.Video()

	sess.mu.Lock()
	if verr := submitGate(sess.step, sess.draft, len(images)); verr != nil {
		sess.mu.Unlock()
		return nil, verr
	}
	if sess.submitting {
		sess.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	sess.submitting = true
	payload := AssembleSubmission(sess.draft, images, video, who)
	sess.mu.Unlock()

	start := s.now()
	pubErr := s.publisher.CreateAd(ctx, payload.Multipart(s.cfg.CreateAdPath))
	elapsed := s.now().Sub(start)

	s.record(ctx, sess.id, who, payload, pubErr, elapsed)

	sess.mu.Lock()
	sess.submitting = false
	sess.lastActive = s.now()
	sess.mu.Unlock()

	if pubErr != nil {
		s.log.Info("submission failed", zap.String("session", sess.id), zap.Error(pubErr))
		return nil, submissionError(pubErr)
	}

	s.drop(ctx, sess)
	s.log.Info("ad submitted",
		zap.String("session", sess.id),
		zap.String("owner", who.ID),
		zap.Int("images", len(images)),
		zap.Duration("took", elapsed))

	return &SubmitResult{SessionID: sess.id, Redirect: s.cfg.SuccessPath}, nil
}

// submitGate re-runs every forward gate, then the location gate. Fields stay
// editable after a gate passed. The first failure wins.
func submitGate(step Step, draft *model.AdDraft, imageCount int) *WizardError {
	if step != LastStep {
		return validationError(RuleStepIncomplete, "Please complete every step before posting your ad.")
	}
	for _, gated := range []Step{StepBasicInfo, StepPricingMedia} {
		if verr := ValidateStep(gated, draft, imageCount); verr != nil {
			return verr
		}
	}
	return ValidateLocation(draft)
}

func submissionError(err error) *WizardError {
	var apiErr *net.APIError
	switch {
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = GenericSubmissionMessage
		}
		return &WizardError{Kind: KindSubmission, Rule: RuleServerRejected, Message: msg}
	default:
		// transport failures and an open breaker (net.ErrCircuitOpen)
		return &WizardError{Kind: KindSubmission, Rule: RuleServerUnavailable, Message: GenericSubmissionMessage}
	}
}

func (s *WizardService) record(ctx context.Context, sessionID string, who model.Identity, p *SubmissionPayload, pubErr error, elapsed time.Duration) {
	if s.submissions == nil {
		return
	}

	fields := p.FieldMap()
	title := fields[model.FieldTitle]
	category := fields[model.FieldCategory]
	snapshot, err := json.Marshal(fields)
	if err != nil {
		s.log.Warn("marshal submission snapshot failed", zap.Error(err))
	}

	rec := &model.SubmissionRecord{
		SessionID:  sessionID,
		OwnerUID:   who.ID,
		Title:      title,
		Category:   category,
		ImageCount: len(p.Images),
		HasVideo:   p.Video != nil,
		Status:     model.SubmissionStatusSuccess,
		DurationMs: elapsed.Milliseconds(),
		Fields:     snapshot,
	}
	rec.CreatedBy = who.ID
	rec.UpdatedBy = who.ID
	if pubErr != nil {
		rec.Status = model.SubmissionStatusFailed
		rec.ServerMessage = pubErr.Error()
	}

	if err := s.submissions.Create(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warn("record submission failed", zap.String("session", sessionID), zap.Error(err))
	}
}

// ==================== Lifecycle ====================

// Discard drops a session and its previews.
func (s *WizardService) Discard(ctx context.Context, id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	s.drop(ctx, sess)
	return nil
}

// PurgeIdle drops sessions untouched for longer than ttl. Sessions with a
// submission in flight are kept.
func (s *WizardService) PurgeIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.RLock()
	var stale []*wizardSession
	for _, sess := range s.sessions {
		sess.mu.Lock()
		if !sess.submitting && sess.lastActive.Before(cutoff) {
			stale = append(stale, sess)
		}
		sess.mu.Unlock()
	}
	s.mu.RUnlock()

	for _, sess := range stale {
		s.drop(ctx, sess)
	}
	return len(stale)
}

func (s *WizardService) drop(ctx context.Context, sess *wizardSession) {
	s.mu.Lock()
	_, ok := s.sessions[sess.id]
	delete(s.sessions, sess.id)
	s.mu.Unlock()

	if ok {
		sess.media.Discard(ctx)
	}
}

func (s *WizardService) session(id string) (*wizardSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.lastActive = s.now()
	sess.mu.Unlock()
	return sess, nil
}

func (s *WizardService) view(sess *wizardSession) *SessionView {
	images := sess.media.Images()
	video := sess.media.Video()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return &SessionView{
		ID:         sess.id,
		Step:       sess.step,
		Draft:      sess.draft.Common,
		Extra:      sess.draft.Extra.Values(),
		Schema:     model.SchemaFor(sess.draft.Common.Category),
		Images:     images,
		Video:      video,
		Submitting: sess.submitting,
		CreatedAt:  sess.createdAt,
		UpdatedAt:  sess.lastActive,
	}
}
