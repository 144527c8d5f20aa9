package usecase

import (
	"context"
	"errors"

	"hospital-management-backend/internal/converter"
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"
	"hospital-management-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound     = errors.New("prescription not found")
	ErrPrescriptionExists       = errors.New("appointment already has a prescription")
	ErrAppointmentNotCompleted  = errors.New("appointment is not completed")
	ErrPrescriptionWrongDoctor  = errors.New("only the appointment's doctor can prescribe")
	ErrPrescriptionAccessDenied = errors.New("prescription does not belong to this user")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.PrescriptionPayload) (*dto.PrescriptionResponse, error)
	GetByAppointment(ctx context.Context, actorID uuid.UUID, actorRole string, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
	}
}

// Create records the prescription for a completed appointment. Only the
// appointment's own doctor may prescribe, and each appointment gets at most one
// prescription; the unique index on appointment_id backs that up.
func (u *prescriptionUsecase) Create(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.PrescriptionPayload) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrPrescriptionWrongDoctor
	}
	if !appointment.IsCompleted() {
		return nil, ErrAppointmentNotCompleted
	}

	prescription := converter.PrescriptionFromPayload(req)
	prescription.AppointmentID = appointmentID

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrPrescriptionExists
		}
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), map[string]interface{}{
		"appointment_id": appointmentID,
		"diagnosis":      req.Diagnosis,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByAppointment(ctx context.Context, actorID uuid.UUID, actorRole string, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch actorRole {
	case entity.RoleDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrPrescriptionAccessDenied
		}
	case entity.RolePatient:
		if appointment.PatientID != actorID {
			return nil, ErrPrescriptionAccessDenied
		}
	}

	prescription, err := u.prescriptionRepo.FindByAppointmentID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}
