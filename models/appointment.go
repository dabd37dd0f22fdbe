package models

import "time"

// StatusOpen is the appointment status used by the open-appointments view.
// Status is free text otherwise.
const StatusOpen = "Offen"

// Appointment belongs to exactly one client via ClientIfaNumber. ID is
// assigned by the store on insert and stays 0 until then.
//
// ClientLastName and ClientFirstName are populated by a join against the
// client table on reads; they are never written back.
type Appointment struct {
	ID              int       `gorm:"column:appointment_id;primaryKey;autoIncrement" json:"appointment_id"`
	Date            time.Time `gorm:"column:date;type:date" json:"date"`
	Time            string    `gorm:"column:time" json:"time"`
	Address         string    `gorm:"column:address" json:"address"`
	Institution     string    `gorm:"column:institution" json:"institution"`
	Priority        string    `gorm:"column:priority" json:"priority"`
	Status          string    `gorm:"column:status" json:"status"`
	ClientIfaNumber string    `gorm:"column:client_ifa_number;not null;index" json:"client_ifa_number"`

	ClientLastName  string `gorm:"column:client_last_name;->;-:migration" json:"client_last_name,omitempty"`
	ClientFirstName string `gorm:"column:client_first_name;->;-:migration" json:"client_first_name,omitempty"`
}

func (Appointment) TableName() string { return "appointment" }
