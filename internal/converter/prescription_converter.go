package converter

import (
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.MedicineResponse, len(prescription.Medicines))
	for i, medicine := range prescription.Medicines {
		medicines[i] = dto.MedicineResponse{
			Name:      medicine.Name,
			Dosage:    medicine.Dosage,
			Frequency: medicine.Frequency,
			Duration:  medicine.Duration,
		}
	}

	return &dto.PrescriptionResponse{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		Diagnosis:     prescription.Diagnosis,
		Medicines:     medicines,
		Notes:         prescription.Notes,
		CreatedAt:     prescription.CreatedAt,
	}
}

// PrescriptionFromPayload builds a Prescription entity from the request payload
func PrescriptionFromPayload(payload *dto.PrescriptionPayload) *entity.Prescription {
	if payload == nil {
		return nil
	}

	medicines := make(entity.Medicines, len(payload.Medicines))
	for i, medicine := range payload.Medicines {
		medicines[i] = entity.Medicine{
			Name:      medicine.Name,
			Dosage:    medicine.Dosage,
			Frequency: medicine.Frequency,
			Duration:  medicine.Duration,
		}
	}

	return &entity.Prescription{
		Diagnosis: payload.Diagnosis,
		Medicines: medicines,
		Notes:     payload.Notes,
	}
}
