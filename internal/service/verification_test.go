package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"
	"staybook-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = domain.AuthContext{SubjectID: 1, Roles: []domain.Role{domain.RoleAdmin}}

func newVerificationService(t *testing.T) (*MockVerificationRepo, *MockUserRepo, *MockEmailService, service.VerificationService) {
	repo, users, email := new(MockVerificationRepo), new(MockUserRepo), new(MockEmailService)
	docs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	policy := service.DocumentPolicy{MaxBytes: 16, AllowedTypes: []string{"application/pdf", "image/png"}}
	return repo, users, email, service.NewVerificationService(repo, users, docs, policy, email)
}

func TestVerificationService_Submit(t *testing.T) {
	ctx := context.Background()
	user := domain.AuthContext{SubjectID: 4}

	t.Run("Success", func(t *testing.T) {
		repo, _, _, svc := newVerificationService(t)
		repo.On("HasPending", mock.Anything, int32(4)).Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.VerificationRequest")).Return(nil)

		key, err := svc.UploadDocument(ctx, user, "a.pdf", "application/pdf", strings.NewReader("pdf"))
		require.NoError(t, err)

		req, err := svc.Submit(ctx, user, []string{key, " ", "https://docs.example.com/passport"}, "passport")
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationStatusPending, req.Status)
		assert.Equal(t, []string{key, "https://docs.example.com/passport"}, req.DocumentRefs)
	})

	t.Run("NoDocuments", func(t *testing.T) {
		_, _, _, svc := newVerificationService(t)
		_, err := svc.Submit(ctx, user, nil, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DocumentNotUploaded", func(t *testing.T) {
		repo, _, _, svc := newVerificationService(t)

		_, err := svc.Submit(ctx, user, []string{"kyc/4/missing.pdf"}, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("OtherUsersDocument", func(t *testing.T) {
		repo, _, _, svc := newVerificationService(t)

		key, err := svc.UploadDocument(ctx, domain.AuthContext{SubjectID: 5}, "b.pdf", "application/pdf", strings.NewReader("pdf"))
		require.NoError(t, err)

		_, err = svc.Submit(ctx, user, []string{key}, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyPending", func(t *testing.T) {
		repo, _, _, svc := newVerificationService(t)
		repo.On("HasPending", mock.Anything, int32(4)).Return(true, nil)

		_, err := svc.Submit(ctx, user, []string{"https://docs.example.com/passport"}, "")
		assert.ErrorIs(t, err, domain.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVerificationService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("ApproveThenApproveAgain", func(t *testing.T) {
		repo, users, email, svc := newVerificationService(t)
		repo.On("GetByID", mock.Anything, int32(2)).Return(&domain.VerificationRequest{ID: 2, UserID: 4, Status: domain.VerificationStatusPending}, nil).Once()
		repo.On("Approve", mock.Anything, int32(2), int32(1), "ok").Return(nil)
		repo.On("GetByID", mock.Anything, int32(2)).Return(&domain.VerificationRequest{ID: 2, UserID: 4, Status: domain.VerificationStatusApproved}, nil)
		users.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4, Email: "u@x.y", IsVerified: true}, nil)
		email.On("SendVerificationDecision", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req, err := svc.Approve(ctx, admin, 2, "ok")
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationStatusApproved, req.Status)
		email.AssertCalled(t, "SendVerificationDecision", mock.Anything, mock.Anything, mock.Anything)

		_, err = svc.Approve(ctx, admin, 2, "ok")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "not pending")
		repo.AssertNumberOfCalls(t, "Approve", 1)
	})

	t.Run("RejectLeavesFlag", func(t *testing.T) {
		repo, users, email, svc := newVerificationService(t)
		repo.On("GetByID", mock.Anything, int32(3)).Return(&domain.VerificationRequest{ID: 3, UserID: 4, Status: domain.VerificationStatusPending}, nil).Once()
		repo.On("Reject", mock.Anything, int32(3), int32(1), "blurry").Return(nil)
		repo.On("GetByID", mock.Anything, int32(3)).Return(&domain.VerificationRequest{ID: 3, UserID: 4, Status: domain.VerificationStatusRejected, ReviewNote: "blurry"}, nil)
		users.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4}, nil)
		email.On("SendVerificationDecision", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req, err := svc.Reject(ctx, admin, 3, "blurry")
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationStatusRejected, req.Status)
		repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WithdrawApproved", func(t *testing.T) {
		repo, _, _, svc := newVerificationService(t)
		approved := &domain.VerificationRequest{ID: 2, UserID: 4, Status: domain.VerificationStatusApproved}
		repo.On("GetByID", mock.Anything, int32(2)).Return(approved, nil)
		repo.On("Delete", mock.Anything, approved).Return(nil)

		assert.NoError(t, svc.Withdraw(ctx, admin, 2))
		repo.AssertCalled(t, "Delete", mock.Anything, approved)
	})

	t.Run("AdminOnly", func(t *testing.T) {
		_, _, _, svc := newVerificationService(t)
		user := domain.AuthContext{SubjectID: 4, Roles: []domain.Role{domain.RoleGuest}}

		_, err := svc.Approve(ctx, user, 2, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = svc.Reject(ctx, user, 2, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorIs(t, svc.Withdraw(ctx, user, 2), domain.ErrForbidden)
		_, err = svc.ListPending(ctx, user)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = svc.Get(ctx, user, 2)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestVerificationService_Documents(t *testing.T) {
	ctx := context.Background()
	owner := domain.AuthContext{SubjectID: 4}

	t.Run("UploadAndRead", func(t *testing.T) {
		_, _, _, svc := newVerificationService(t)

		key, err := svc.UploadDocument(ctx, owner, "id.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "kyc/4/"))

		rc, err := svc.OpenDocument(ctx, owner, key)
		require.NoError(t, err)
		data, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, "pdf-bytes", string(data))

		rc, err = svc.OpenDocument(ctx, admin, key)
		require.NoError(t, err)
		rc.Close()

		_, err = svc.OpenDocument(ctx, domain.AuthContext{SubjectID: 5}, key)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.OpenDocument(ctx, owner, "kyc/4/missing.pdf")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Rejects", func(t *testing.T) {
		_, _, _, svc := newVerificationService(t)

		_, err := svc.UploadDocument(ctx, owner, "id.exe", "application/x-msdownload", strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.UploadDocument(ctx, owner, "big.png", "image/png", bytes.NewReader(make([]byte, 17)))
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.UploadDocument(ctx, owner, "empty.png", "image/png", strings.NewReader(""))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
