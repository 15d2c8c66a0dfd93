package handlers

import (
	"net/http"

	"hospital_backend/internal/services"
	"hospital_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PatientHandler holds the patient service.
type PatientHandler struct {
	patientService services.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(ps services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: ps}
}

// RegisterPatient handles POST /patients/register.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req services.CreatePatientRequest
	if !bindJSON(c, &req, "RegisterPatient") {
		return
	}
	patient, err := h.patientService.RegisterPatient(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "register patient")
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) GetPatients(c *gin.Context) {
	page, pageSize := pageParams(c)
	patients, total, err := h.patientService.GetPatients(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch patients")
		return
	}
	respondList(c, patients, total, page, pageSize)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	patient, err := h.patientService.GetPatientByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch patient")
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdatePatientRequest
	if !bindJSON(c, &req, "UpdatePatient") {
		return
	}
	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update patient")
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete patient")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}

// GetWristband returns the patient's wristband QR code as a PNG.
func (h *PatientHandler) GetWristband(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	png, err := h.patientService.WristbandQR(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "generate wristband")
		return
	}
	c.Header("Content-Disposition", "inline; filename=patient-"+utils.Int64ToStr(id)+"-wristband.png")
	c.Data(http.StatusOK, "image/png", png)
}
