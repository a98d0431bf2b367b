package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/internal/repository"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/jobs"
	"github.com/noah-isme/fileflow-portal-api/pkg/storage"
)

var errDirNotReady = errors.New("remote directory not visible yet")

type companyFinder interface {
	FindByID(ctx context.Context, id string) (*models.Company, error)
}

type submissionRecorder interface {
	Create(ctx context.Context, sub *models.Submission) error
}

type recordRetrier interface {
	Enqueue(job jobs.Job[models.Submission]) error
}

type categoryRouter interface {
	extensionLookup
	Route(category string) (CategoryRoute, bool)
}

// RelayConfig tunes the relay.
type RelayConfig struct {
	DirPollAttempts  int
	DirPollInterval  time.Duration
	MaxFileSizeBytes int64
}

// RelayService validates an upload, delivers it to the remote store under the
// company's directory and records the submission.
type RelayService struct {
	registry    categoryRouter
	validator   *UploadValidator
	companies   companyFinder
	submissions submissionRecorder
	retries     recordRetrier
	dialer      storage.Dialer
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         RelayConfig
}

// NewRelayService constructs the relay.
func NewRelayService(registry categoryRouter, companies companyFinder, submissions submissionRecorder, dialer storage.Dialer, cfg RelayConfig, metrics *MetricsService, logger *zap.Logger) *RelayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DirPollAttempts <= 0 {
		cfg.DirPollAttempts = 5
	}
	if cfg.DirPollInterval <= 0 {
		cfg.DirPollInterval = 100 * time.Millisecond
	}
	return &RelayService{
		registry:    registry,
		validator:   NewUploadValidator(registry),
		companies:   companies,
		submissions: submissions,
		dialer:      dialer,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// WithRecordRetry hands submission records that failed to persist to q.
func (s *RelayService) WithRecordRetry(q recordRetrier) *RelayService {
	s.retries = q
	return s
}

// RetryRecord persists a submission handed back by the retry queue.
func (s *RelayService) RetryRecord(ctx context.Context, job jobs.Job[models.Submission]) error {
	sub := job.Payload
	start := time.Now()
	err := s.submissions.Create(ctx, &sub)
	s.metrics.ObserveDBQuery("submission_create", time.Since(start))
	if err == nil {
		s.logger.Info("submission recorded on retry", zap.String("submission_id", sub.ID), zap.Int("attempt", job.Attempt+1))
	}
	return err
}

// DiscardRecord counts a submission record the retry queue gave up on.
func (s *RelayService) DiscardRecord(job jobs.Job[models.Submission], err error) {
	s.metrics.RecordSubmissionFailure()
	s.logger.Error("submission record discarded",
		zap.String("submission_id", job.ID),
		zap.String("user_id", job.Payload.UserID),
		zap.String("company_id", job.Payload.CompanyID),
		zap.String("category", string(job.Payload.Category)),
		zap.String("month", job.Payload.Month),
		zap.Int("attempt", job.Attempt),
		zap.Error(err))
}

// Upload relays req and returns "<remoteDir>/<filename>". The relay is
// detached from ctx cancellation once it starts so a client disconnect cannot
// leave a half-written file behind.
func (s *RelayService) Upload(ctx context.Context, req models.UploadRequest) (string, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	remotePath, err := s.upload(ctx, req)
	outcome := RelayOutcomeSuccess
	if err != nil {
		outcome = RelayOutcomeRejected
		if appErrors.FromError(err).Status >= 500 {
			outcome = RelayOutcomeFailed
		}
	}
	s.metrics.ObserveRelay(req.Category, outcome, len(req.Content), time.Since(start))
	return remotePath, err
}

func (s *RelayService) upload(ctx context.Context, req models.UploadRequest) (string, error) {
	if len(req.Content) == 0 {
		return "", appErrors.Clone(appErrors.ErrMissingFile, "no file was sent")
	}
	route, ok := s.registry.Route(req.Category)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrUnsupportedCategory, fmt.Sprintf("unsupported category %q", req.Category))
	}
	if err := s.validator.Validate(req.Category, req.Filename); err != nil {
		return "", err
	}
	if s.cfg.MaxFileSizeBytes > 0 && int64(len(req.Content)) > s.cfg.MaxFileSizeBytes {
		return "", appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSizeBytes))
	}
	if !models.ValidMonth(req.Month) {
		return "", appErrors.Clone(appErrors.ErrInvalidMonth, fmt.Sprintf("invalid reference month %q, expected YYYY-MM", req.Month))
	}

	company, err := s.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrCompanyNotFound, "company not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}
	remoteDir := RemoteDir(company.Name)
	if remoteDir == "" {
		s.logger.Error("company name yields no remote directory",
			zap.String("company_id", company.ID), zap.String("company_name", company.Name))
		return "", appErrors.Clone(appErrors.ErrCompanyDirectoryInvalid,
			fmt.Sprintf("company %q has no usable remote directory name", company.Name))
	}
	remotePath := remoteDir + "/" + req.Filename

	fields := []zap.Field{
		zap.String("host", s.dialer.Addr()),
		zap.String("category", req.Category),
		zap.String("company_id", company.ID),
		zap.String("remote_path", remotePath),
	}

	if err := s.transfer(ctx, route.Credentials, remoteDir, remotePath, req.Content, fields); err != nil {
		s.logger.Error("relay transfer failed", append(fields, zap.Error(err))...)
		return "", appErrors.Wrap(err, appErrors.ErrTransfer.Code, appErrors.ErrTransfer.Status,
			fmt.Sprintf("failed to send file to remote store: %v", err))
	}
	s.logger.Info("relay transfer completed", append(fields, zap.Int("bytes", len(req.Content)))...)

	s.record(ctx, req, route.Category, fields)
	return remotePath, nil
}

func (s *RelayService) transfer(ctx context.Context, creds storage.Credentials, remoteDir, remotePath string, content []byte, fields []zap.Field) (err error) {
	sess, err := s.dialer.Dial(ctx, creds)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			s.logger.Warn("closing remote session failed", append(fields, zap.Error(closeErr))...)
		}
	}()

	if err := sess.EnsureDir(remoteDir); err != nil {
		return err
	}
	if err := s.awaitDir(ctx, sess, remoteDir); err != nil {
		return err
	}
	return sess.Store(remotePath, bytes.NewReader(content))
}

// awaitDir polls until the directory is visible to the session, bounded by
// the configured attempts.
func (s *RelayService) awaitDir(ctx context.Context, sess storage.Session, dir string) error {
	backoff := retry.WithMaxRetries(uint64(s.cfg.DirPollAttempts-1), retry.NewConstant(s.cfg.DirPollInterval))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		exists, err := sess.DirExists(dir)
		if err != nil {
			return retry.RetryableError(err)
		}
		if !exists {
			return retry.RetryableError(errDirNotReady)
		}
		return nil
	})
}

func (s *RelayService) record(ctx context.Context, req models.UploadRequest, category models.Category, fields []zap.Field) {
	if req.UserID == "" {
		s.metrics.RecordUnrecordedUpload(string(category))
		s.logger.Info("no submitting user, submission not recorded", fields...)
		return
	}
	sub := &models.Submission{
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Category:  category,
		Month:     req.Month,
	}
	start := time.Now()
	err := s.submissions.Create(ctx, sub)
	s.metrics.ObserveDBQuery("submission_create", time.Since(start))
	if err == nil {
		return
	}
	fields = append(fields, zap.String("user_id", req.UserID), zap.Error(err))
	if s.retries != nil && !errors.Is(err, repository.ErrMalformedID) {
		if qErr := s.retries.Enqueue(jobs.Job[models.Submission]{ID: sub.ID, Payload: *sub}); qErr == nil {
			s.logger.Warn("recording submission failed, queued for retry", fields...)
			return
		}
	}
	s.metrics.RecordSubmissionFailure()
	s.logger.Error("recording submission failed", fields...)
}
