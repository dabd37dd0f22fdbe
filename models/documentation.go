package models

import "time"

// Documentation is a dated case note for a client.
type Documentation struct {
	ID              int       `gorm:"column:documentation_id;primaryKey;autoIncrement" json:"documentation_id"`
	Date            time.Time `gorm:"column:date;type:date" json:"date"`
	Time            string    `gorm:"column:time" json:"time"`
	Description     string    `gorm:"column:description" json:"description"`
	Title           string    `gorm:"column:title" json:"title"`
	ClientIfaNumber string    `gorm:"column:client_ifa_number;not null;index" json:"client_ifa_number"`
}

func (Documentation) TableName() string { return "documentation" }
