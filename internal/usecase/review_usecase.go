package usecase

import (
	"context"
	"errors"
	"strconv"

	"telemed-scheduling/internal/converter"
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/domain/repository"
	"telemed-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound          = errors.New("review not found")
	ErrReviewAlreadyExists     = errors.New("appointment already has a review")
	ErrAppointmentNotCompleted = errors.New("only completed appointments can be reviewed")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, patientID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error)
	GetReview(ctx context.Context, id int) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor entity.Actor, id int) error
}

type reviewUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	reviewRepo      repository.ReviewRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) ReviewUsecase {
	return &reviewUsecase{
		db:              db,
		log:             log,
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, patientID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotAuthorized
	}
	if !appointment.IsCompleted() {
		return nil, ErrAppointmentNotCompleted
	}

	existing, err := u.reviewRepo.FindByAppointmentID(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to check existing review: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewAlreadyExists
	}

	review := &entity.Review{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := u.reviewRepo.Create(tx, review); err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrReviewAlreadyExists
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionReviewCreate, "review", strconv.Itoa(review.ID), map[string]interface{}{
		"appointment_id": appointment.ID,
		"rating":         review.Rating,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor reviews: %+v", err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) GetReview(ctx context.Context, id int) (*dto.ReviewResponse, error) {
	review, err := u.reviewRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) UpdateReview(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.reviewRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if !canManageReview(actor, review) {
		return nil, ErrNotAuthorized
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}

	if err := u.reviewRepo.Update(tx, review); err != nil {
		u.log.Warnf("Failed to update review: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, actor entity.Actor, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.reviewRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if !canManageReview(actor, review) {
		return ErrNotAuthorized
	}

	rows, err := u.reviewRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete review: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrReviewNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// canManageReview reports whether the actor may modify this review. Only the
// authoring patient or an admin.
func canManageReview(actor entity.Actor, review *entity.Review) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsPatient() && review.PatientID == actor.ID
}
