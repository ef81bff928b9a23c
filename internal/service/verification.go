package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/storage"
)

// DocumentPolicy limits what may be uploaded as a KYC document.
type DocumentPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

type verificationService struct {
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
	documents        storage.DocumentStorage
	policy           DocumentPolicy
	emailSvc         EmailService
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	documents storage.DocumentStorage,
	policy DocumentPolicy,
	emailSvc EmailService,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		documents:        documents,
		policy:           policy,
		emailSvc:         emailSvc,
	}
}

func (s *verificationService) Submit(ctx context.Context, auth domain.AuthContext, documentRefs []string, note string) (req *domain.VerificationRequest, err error) {
	logger.EnterMethod(ctx, "verificationService.Submit", "user_id", auth.SubjectID, "documents", len(documentRefs))
	defer func() { exit(ctx, "verificationService.Submit", err) }()

	refs := make([]string, 0, len(documentRefs))
	for _, ref := range documentRefs {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil, domain.NewValidationError("", "at least one document reference is required")
	}
	for _, ref := range refs {
		if err := s.checkDocumentRef(ctx, auth, ref); err != nil {
			return nil, err
		}
	}

	pending, err := s.verificationRepo.HasPending(ctx, auth.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, domain.NewConflictError("a verification request is already pending")
	}

	req = &domain.VerificationRequest{
		UserID:       auth.SubjectID,
		DocumentRefs: refs,
		Note:         note,
		Status:       domain.VerificationStatusPending,
	}
	if err := s.verificationRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// checkDocumentRef requires references to uploaded documents to point at an
// existing document of the caller. Other references are stored as given.
func (s *verificationService) checkDocumentRef(ctx context.Context, auth domain.AuthContext, ref string) error {
	if !strings.HasPrefix(ref, storage.DocumentKeyPrefix) {
		return nil
	}
	if !strings.HasPrefix(ref, storage.DocumentOwnerPrefix(auth.SubjectID)) {
		return domain.NewForbiddenError("document %s belongs to another user", ref)
	}
	ok, _, err := s.documents.Exists(ctx, ref)
	if errors.Is(err, storage.ErrInvalidKey) {
		return domain.NewValidationError("", "invalid document reference %s", ref)
	}
	if err != nil {
		return fmt.Errorf("failed to check document %s: %w", ref, err)
	}
	if !ok {
		return domain.NewValidationError("", "document %s has not been uploaded", ref)
	}
	return nil
}

func (s *verificationService) Mine(ctx context.Context, auth domain.AuthContext) (*domain.VerificationRequest, error) {
	return s.verificationRepo.GetLatestByUser(ctx, auth.SubjectID)
}

func (s *verificationService) ListPending(ctx context.Context, auth domain.AuthContext) ([]domain.VerificationRequest, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	return s.verificationRepo.ListPending(ctx)
}

func (s *verificationService) Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.VerificationRequest, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	return s.verificationRepo.GetByID(ctx, id)
}

func (s *verificationService) Approve(ctx context.Context, auth domain.AuthContext, id int32, note string) (req *domain.VerificationRequest, err error) {
	logger.EnterMethod(ctx, "verificationService.Approve", "request_id", id)
	defer func() { exit(ctx, "verificationService.Approve", err) }()

	if _, err := s.pendingForReview(ctx, auth, id); err != nil {
		return nil, err
	}
	if err := s.verificationRepo.Approve(ctx, id, auth.SubjectID, note); err != nil {
		return nil, err
	}
	return s.decided(ctx, id)
}

func (s *verificationService) Reject(ctx context.Context, auth domain.AuthContext, id int32, note string) (req *domain.VerificationRequest, err error) {
	logger.EnterMethod(ctx, "verificationService.Reject", "request_id", id)
	defer func() { exit(ctx, "verificationService.Reject", err) }()

	if _, err := s.pendingForReview(ctx, auth, id); err != nil {
		return nil, err
	}
	if err := s.verificationRepo.Reject(ctx, id, auth.SubjectID, note); err != nil {
		return nil, err
	}
	return s.decided(ctx, id)
}

func (s *verificationService) Withdraw(ctx context.Context, auth domain.AuthContext, id int32) (err error) {
	logger.EnterMethod(ctx, "verificationService.Withdraw", "request_id", id)
	defer func() { exit(ctx, "verificationService.Withdraw", err) }()

	if err := requireAdmin(auth); err != nil {
		return err
	}
	req, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.verificationRepo.Delete(ctx, req)
}

// UploadDocument stores a KYC document for the caller and returns its key.
func (s *verificationService) UploadDocument(ctx context.Context, auth domain.AuthContext, filename, contentType string, body io.Reader) (key string, err error) {
	logger.EnterMethod(ctx, "verificationService.UploadDocument", "user_id", auth.SubjectID, "content_type", contentType)
	defer func() { exit(ctx, "verificationService.UploadDocument", err, "key", key) }()

	if !s.allowedType(contentType) {
		return "", domain.NewValidationError("", "content type %q is not allowed", contentType)
	}
	if filepath.Ext(filename) == "" {
		return "", domain.NewValidationError("", "file name needs an extension")
	}

	key = storage.DocumentKey(auth.SubjectID, filename)
	limited := io.LimitReader(body, s.policy.MaxBytes+1)
	n, err := s.documents.Save(ctx, key, limited)
	if err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	if n > s.policy.MaxBytes {
		if delErr := s.documents.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove oversized document", "key", key, "error", delErr)
		}
		return "", domain.NewValidationError("", "document exceeds %d bytes", s.policy.MaxBytes)
	}
	if n == 0 {
		_ = s.documents.Delete(ctx, key)
		return "", domain.NewValidationError("", "document is empty")
	}
	return key, nil
}

// OpenDocument lets the owner or an admin read a stored document.
func (s *verificationService) OpenDocument(ctx context.Context, auth domain.AuthContext, key string) (io.ReadCloser, error) {
	if !strings.HasPrefix(key, storage.DocumentOwnerPrefix(auth.SubjectID)) && !auth.IsAdmin() {
		return nil, domain.NewForbiddenError("not allowed to read this document")
	}
	rc, err := s.documents.Open(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, domain.NewNotFoundError("document not found")
	case errors.Is(err, storage.ErrInvalidKey):
		return nil, domain.NewValidationError("", "invalid document key")
	case err != nil:
		return nil, err
	}
	return rc, nil
}

func (s *verificationService) allowedType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, t := range s.policy.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

func (s *verificationService) pendingForReview(ctx context.Context, auth domain.AuthContext, id int32) (*domain.VerificationRequest, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}
	req, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.VerificationStatusPending {
		return nil, domain.NewValidationError("", "not pending")
	}
	return req, nil
}

// decided reloads a reviewed request and tells its owner about the outcome.
func (s *verificationService) decided(ctx context.Context, id int32) (*domain.VerificationRequest, error) {
	req, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user, err := s.userRepo.GetByID(ctx, req.UserID); err == nil {
		notifyFailed(ctx, "verification_decision", s.emailSvc.SendVerificationDecision(ctx, user, req))
	}
	return req, nil
}

func requireAdmin(auth domain.AuthContext) error {
	if !auth.IsAdmin() {
		return domain.NewForbiddenError("admin role required")
	}
	return nil
}
