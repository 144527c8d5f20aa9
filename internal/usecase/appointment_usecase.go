package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentForbidden   = errors.New("appointment does not belong to this user")
	ErrDoctorNotApproved      = errors.New("doctor is not approved for booking")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
	ErrSlotNotAvailable       = errors.New("time slot is not within the doctor's availability")
	ErrSlotTaken              = errors.New("time slot is already booked")
	ErrPastDate               = errors.New("date is in the past")
	ErrInvalidStatus          = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Confirm(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityWindowRepository
	prescriptionRepo  repository.PrescriptionRepository
	auditService      service.AuditService
	slotGenerator     *service.SlotGenerator
	slotCache         *service.SlotCacheService
	clock             service.Clock
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityWindowRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
	slotGenerator *service.SlotGenerator,
	slotCache *service.SlotCacheService,
	clock service.Clock,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
		prescriptionRepo:  prescriptionRepo,
		auditService:      auditService,
		slotGenerator:     slotGenerator,
		slotCache:         slotCache,
		clock:             clock,
	}
}

// ListAvailableSlots returns the bookable 30-minute slots for a doctor on a
// calendar date: the slots derived from the weekly template minus the slots
// held by non-cancelled appointments. Listings with at least one slot are
// cached briefly in Redis.
func (u *appointmentUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if !profile.IsApproved {
		return nil, ErrDoctorNotApproved
	}

	if slots, ok := u.slotCache.Get(ctx, doctorID, day); ok {
		// A same-day entry may predate slots that have since elapsed
		return &dto.AvailableSlotsResponse{
			DoctorID: doctorID,
			Date:     date,
			Slots:    u.slotGenerator.FilterElapsed(day, slots),
		}, nil
	}

	slots, reason, err := u.availableSlots(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	if reason == service.ReasonNone {
		u.slotCache.Set(ctx, doctorID, day, slots)
	}

	return &dto.AvailableSlotsResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    slots,
		Reason:   string(reason),
	}, nil
}

// availableSlots computes the listing fresh from the template and bookings.
func (u *appointmentUsecase) availableSlots(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]string, service.SlotReason, error) {
	window, err := u.availabilityRepo.FindByDoctorAndDay(u.db.WithContext(ctx), doctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability window: %+v", err)
		return nil, service.ReasonNone, err
	}

	generated, reason := u.slotGenerator.Generate(window, day)
	if reason != service.ReasonNone {
		return []string{}, reason, nil
	}

	booked, err := u.appointmentRepo.FindBookedSlots(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find booked slots: %+v", err)
		return nil, service.ReasonNone, err
	}

	taken := make(map[string]bool, len(booked))
	for _, slot := range booked {
		taken[slot] = true
	}

	slots := make([]string, 0, len(generated))
	for _, slot := range generated {
		if !taken[slot] {
			slots = append(slots, slot)
		}
	}

	return slots, service.ReasonNone, nil
}

// Book creates a pending appointment for the patient. The slot is checked
// against the doctor's availability and current bookings first, then the
// partial unique index on (doctor_id, date, time_slot) settles any race: the
// losing insert comes back as a unique violation and is reported as a conflict.
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if !entity.ValidAppointmentType(entity.AppointmentType(req.Type)) {
		return nil, ErrInvalidAppointmentType
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if !profile.IsApproved {
		return nil, ErrDoctorNotApproved
	}

	window, err := u.availabilityRepo.FindByDoctorAndDay(u.db.WithContext(ctx), req.DoctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability window: %+v", err)
		return nil, err
	}

	generated, reason := u.slotGenerator.Generate(window, day)
	switch reason {
	case service.ReasonPastDate:
		return nil, ErrPastDate
	case service.ReasonDayUnavailable:
		return nil, ErrSlotNotAvailable
	}

	valid := false
	for _, slot := range generated {
		if slot == req.TimeSlot {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrSlotNotAvailable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Optimistic pre-check for a friendlier error; the index is authoritative
	existing, err := u.appointmentRepo.FindActiveSlot(tx, req.DoctorID, day, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      entity.DateOnly(day),
		TimeSlot:  req.TimeSlot,
		Type:      entity.AppointmentType(req.Type),
		Status:    entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id": req.DoctorID,
		"date":      req.Date,
		"time_slot": req.TimeSlot,
		"type":      req.Type,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx, req.DoctorID, day)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Doctors and patients may only read their own appointments
	switch actorRole {
	case entity.RoleDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrAppointmentForbidden
		}
	case entity.RolePatient:
		if appointment.PatientID != actorID {
			return nil, ErrAppointmentForbidden
		}
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListAll(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, actorRole, id, entity.AppointmentStatusConfirmed, "", nil)
}

func (u *appointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, actorRole, id, entity.AppointmentStatusCancelled, req.Reason, nil)
}

func (u *appointmentUsecase) Complete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, actorRole, id, entity.AppointmentStatusCompleted, "", req.Prescription)
}

// UpdateStatus is the generic admin-facing entry point; it dispatches to the
// same transition path as the role-specific endpoints.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(req.Status)
	switch target {
	case entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	return u.transition(ctx, actorID, actorRole, id, target, req.Reason, req.Prescription)
}

// transition is the single path for every status change. The status table and
// role guards decide legality; the conditional UPDATE pins the source status so
// two concurrent transitions cannot both win.
func (u *appointmentUsecase) transition(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, target entity.AppointmentStatus, reason string, prescription *dto.PrescriptionPayload) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	request := entity.TransitionRequest{
		Target:    target,
		ActorID:   actorID,
		ActorRole: actorRole,
		Reason:    reason,
		Today:     entity.DateOnly(u.clock.Now()),
	}
	if err := appointment.ValidateTransition(request); err != nil {
		return nil, err
	}

	extra := map[string]interface{}{}
	switch target {
	case entity.AppointmentStatusCancelled:
		extra["cancellation_reason"] = reason
		extra["cancelled_by"] = actorRole
	case entity.AppointmentStatusConfirmed:
		if appointment.Status == entity.AppointmentStatusCancelled {
			// Admin revert clears the cancellation record
			extra["cancellation_reason"] = ""
			extra["cancelled_by"] = ""
		}
	}

	from := appointment.Status
	affected, err := u.appointmentRepo.UpdateStatus(tx, id, from, target, extra)
	if err != nil {
		// Reverting a cancellation re-occupies the slot; the partial unique
		// index rejects it when the slot was rebooked in the meantime.
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		// A concurrent transition moved the appointment first
		return nil, entity.ErrStaleTransition
	}

	action := auditActionForTransition(from, target)
	u.auditService.LogUpdate(ctx, tx, &actorID, action, "appointment", id.String(),
		map[string]interface{}{"status": from},
		map[string]interface{}{"status": target, "reason": reason})

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Status = target
	switch {
	case target == entity.AppointmentStatusCancelled:
		appointment.CancellationReason = reason
		appointment.CancelledBy = actorRole
	case from == entity.AppointmentStatusCancelled:
		appointment.CancellationReason = ""
		appointment.CancelledBy = ""
	}

	// Cancelling frees the slot, reverting re-occupies it
	if target == entity.AppointmentStatusCancelled || from == entity.AppointmentStatusCancelled {
		u.slotCache.Invalidate(ctx, appointment.DoctorID, appointment.Date)
	}

	// The prescription rides along on completion but is not part of the status
	// transaction: the visit stays completed even if recording it fails, and
	// the doctor can retry through the prescription endpoint.
	if target == entity.AppointmentStatusCompleted && prescription != nil {
		record := converter.PrescriptionFromPayload(prescription)
		record.AppointmentID = appointment.ID
		if err := u.prescriptionRepo.Create(u.db.WithContext(ctx), record); err != nil {
			u.log.Warnf("Failed to create prescription for appointment %s: %+v", appointment.ID, err)
		} else {
			appointment.Prescription = record
		}
	}

	return converter.AppointmentToResponse(appointment), nil
}

func auditActionForTransition(from, to entity.AppointmentStatus) string {
	switch to {
	case entity.AppointmentStatusConfirmed:
		if from == entity.AppointmentStatusCancelled {
			return entity.AuditActionAppointmentRevert
		}
		return entity.AuditActionAppointmentConfirm
	case entity.AppointmentStatusCancelled:
		return entity.AuditActionAppointmentCancel
	case entity.AppointmentStatusCompleted:
		return entity.AuditActionAppointmentComplete
	}
	return "appointment.update"
}
