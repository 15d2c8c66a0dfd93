package models

import "time"

type Patient struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Age            int       `json:"age" db:"age"`
	Gender         string    `json:"gender" db:"gender"`
	MedicalHistory *string   `json:"medical_history" db:"medical_history"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	DoctorID        int64     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string    `json:"appointment_time" db:"appointment_time"`
	Status          string    `json:"status" db:"status"`
	Reason          string    `json:"reason" db:"reason"`
	Notes           *string   `json:"notes" db:"notes"`
	ReminderSent    bool      `json:"reminder_sent" db:"reminder_sent"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

const (
	LabStatusPending   = "pending"
	LabStatusCompleted = "completed"
)

type LabRecord struct {
	ID        int64     `json:"id" db:"id"`
	PatientID int64     `json:"patient_id" db:"patient_id"`
	TestName  string    `json:"test_name" db:"test_name"`
	TestType  string    `json:"test_type" db:"test_type"`
	Result    *string   `json:"result" db:"result"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MedicalRecord is a diagnosis entry; the doctor is optional.
type MedicalRecord struct {
	ID           int64     `json:"id" db:"id"`
	PatientID    int64     `json:"patient_id" db:"patient_id"`
	DoctorID     *int64    `json:"doctor_id" db:"doctor_id"`
	Diagnosis    string    `json:"diagnosis" db:"diagnosis"`
	Treatment    *string   `json:"treatment" db:"treatment"`
	Prescription *string   `json:"prescription" db:"prescription"`
	Notes        *string   `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

const (
	ReminderTypeAppointment = "appointment"
	ReminderTypeMedication  = "medication"
	ReminderTypeFollowup    = "followup"
)

// Reminder is a notification flag; nothing is delivered, it is only marked sent.
// RecurrenceRule, when set, is an RFC 5545 RRULE used to schedule the next occurrence.
type Reminder struct {
	ID             int64     `json:"id" db:"id"`
	PatientID      *int64    `json:"patient_id" db:"patient_id"`
	AppointmentID  *int64    `json:"appointment_id" db:"appointment_id"`
	ReminderType   string    `json:"reminder_type" db:"reminder_type"`
	Message        string    `json:"message" db:"message"`
	ScheduledTime  time.Time `json:"scheduled_time" db:"scheduled_time"`
	RecurrenceRule *string   `json:"recurrence_rule,omitempty" db:"recurrence_rule"`
	Sent           bool      `json:"sent" db:"sent"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
