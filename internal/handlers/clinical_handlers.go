package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ClinicalHandler serves lab records and medical records.
type ClinicalHandler struct {
	clinicalService services.ClinicalService
}

// NewClinicalHandler creates a new ClinicalHandler.
func NewClinicalHandler(cs services.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{clinicalService: cs}
}

// --- Lab Records ---

func (h *ClinicalHandler) CreateLabRecord(c *gin.Context) {
	var req services.CreateLabRecordRequest
	if !bindJSON(c, &req, "CreateLabRecord") {
		return
	}
	rec, err := h.clinicalService.CreateLabRecord(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create lab record")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *ClinicalHandler) GetLabRecords(c *gin.Context) {
	page, pageSize := pageParams(c)
	recs, total, err := h.clinicalService.GetLabRecords(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch lab records")
		return
	}
	respondList(c, recs, total, page, pageSize)
}

func (h *ClinicalHandler) GetLabRecordByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.clinicalService.GetLabRecordByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch lab record")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ClinicalHandler) UpdateLabRecord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateLabRecordRequest
	if !bindJSON(c, &req, "UpdateLabRecord") {
		return
	}
	rec, err := h.clinicalService.UpdateLabRecord(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update lab record")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ClinicalHandler) GetPatientLabRecords(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}
	recs, err := h.clinicalService.GetPatientLabRecords(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err, "fetch patient lab records")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// --- Medical Records ---

func (h *ClinicalHandler) CreateMedicalRecord(c *gin.Context) {
	var req services.CreateMedicalRecordRequest
	if !bindJSON(c, &req, "CreateMedicalRecord") {
		return
	}
	rec, err := h.clinicalService.CreateMedicalRecord(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create medical record")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *ClinicalHandler) GetMedicalRecordByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.clinicalService.GetMedicalRecordByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch medical record")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ClinicalHandler) GetPatientMedicalRecords(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}
	recs, err := h.clinicalService.GetPatientMedicalRecords(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err, "fetch patient medical records")
		return
	}
	c.JSON(http.StatusOK, recs)
}
