package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted out of the
// status. Only PENDING appointments may be mutated.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusConfirmed || s == AppointmentStatusCancelled
}

type Appointment struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	PatientName string            `db:"patient_name" json:"patient_name"`
	Email       string            `db:"email" json:"email"`
	Phone       string            `db:"phone" json:"phone"`
	Date        time.Time         `db:"date" json:"date"`
	TimeSlot    string            `db:"time_slot" json:"time_slot"`
	Notes       *string           `db:"notes" json:"notes,omitempty"`
	Locale      Locale            `db:"locale" json:"locale"`
	Status      AppointmentStatus `db:"status" json:"status"`
	ConfirmedAt *time.Time        `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt *time.Time        `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string `json:"time" binding:"required,timeslot"`
	Notes  string `json:"notes"`
	Locale string `json:"locale"`
}

// TimeSlot is a half-hour label within practice opening hours, with its
// current availability for a given date.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
