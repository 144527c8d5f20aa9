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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorAlreadyApproved = errors.New("doctor is already approved")
)

type DoctorProfileUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Approve(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID) error
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityWindowRepository
	auditService      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityWindowRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
		auditService:      auditService,
	}
}

// Create registers a doctor account on behalf of an admin. Unlike self
// registration the profile starts approved.
func (u *doctorProfileUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
		IsActive: true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:         user.ID,
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
		Biography:      req.Biography,
		IsApproved:     true,
	}

	if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := u.availabilityRepo.CreateBatch(tx, entity.DefaultAvailabilityTemplate(user.ID)); err != nil {
		u.log.Warnf("Failed to seed availability template: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionDoctorCreate, "doctor_profile", user.ID.String(), map[string]interface{}{
		"email":          user.Email,
		"license_number": profile.LicenseNumber,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.DoctorProfileToResponse(profile), nil
}

// Approve marks a self-registered doctor as bookable.
func (u *doctorProfileUsecase) Approve(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if profile.IsApproved {
		return nil, ErrDoctorAlreadyApproved
	}

	profile.IsApproved = true
	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionDoctorApprove, "doctor_profile", doctorID.String(),
		map[string]interface{}{"is_approved": false},
		map[string]interface{}{"is_approved": true})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctor profiles: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) Update(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := map[string]interface{}{
		"email":          user.Email,
		"full_name":      user.FullName,
		"license_number": profile.LicenseNumber,
		"specialization": profile.Specialization,
		"is_active":      user.IsActive,
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if req.LicenseNumber != "" {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), oldValue, map[string]interface{}{
		"email":          user.Email,
		"full_name":      user.FullName,
		"license_number": profile.LicenseNumber,
		"specialization": profile.Specialization,
		"is_active":      user.IsActive,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.DoctorProfileToResponse(profile), nil
}

// Delete deactivates the doctor's account rather than removing rows, so past
// appointments keep their references.
func (u *doctorProfileUsecase) Delete(ctx context.Context, actorID uuid.UUID, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return ErrDoctorNotFound
	}

	user.IsActive = false
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionDoctorDelete, "doctor_profile", doctorID.String(), map[string]interface{}{
		"email": user.Email,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
