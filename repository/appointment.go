package repository

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"casepilot/models"
	"casepilot/monitoring"
)

const appointmentSelect = "appointment.*, client.last_name AS client_last_name, client.first_name AS client_first_name"

// AppointmentRepository reads and writes appointment rows. Reads join the
// client table so the owning client's name travels with each row.
type AppointmentRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAppointmentRepository(db *gorm.DB, log zerolog.Logger) *AppointmentRepository {
	return &AppointmentRepository{db: db, log: log.With().Str("repository", "appointment").Logger()}
}

func (r *AppointmentRepository) GetAll() []models.Appointment {
	return r.query(r.joined())
}

func (r *AppointmentRepository) GetByClientIfa(ifaNumber string) []models.Appointment {
	return r.query(r.joined().Where("appointment.client_ifa_number = ?", ifaNumber))
}

// Save inserts the appointment and returns the stored row including the
// assigned id. The argument is left untouched; on failure the returned
// row keeps id 0.
func (r *AppointmentRepository) Save(appointment models.Appointment) models.Appointment {
	monitoring.DatabaseQueries.Inc()
	if err := r.db.Create(&appointment).Error; err != nil {
		r.softFail(err, "failed to save appointment")
		appointment.ID = 0
		return appointment
	}
	r.log.Info().Int("appointment_id", appointment.ID).Msg("appointment saved")
	return appointment
}

// Update rewrites the appointment columns keyed by id. The owning client
// reference is not changed on update.
func (r *AppointmentRepository) Update(appointment models.Appointment) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Model(&models.Appointment{}).Where("appointment_id = ?", appointment.ID).Updates(map[string]interface{}{
		"date":        appointment.Date,
		"time":        appointment.Time,
		"address":     appointment.Address,
		"institution": appointment.Institution,
		"priority":    appointment.Priority,
		"status":      appointment.Status,
	})
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to update appointment")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Int("appointment_id", appointment.ID).Msg("no appointment found to update")
		return
	}
	r.log.Info().Int("appointment_id", appointment.ID).Msg("appointment updated")
}

func (r *AppointmentRepository) Delete(id int) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Delete(&models.Appointment{}, id)
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to delete appointment")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Int("appointment_id", id).Msg("no appointment found to delete")
		return
	}
	r.log.Info().Int("appointment_id", id).Msg("appointment deleted")
}

func (r *AppointmentRepository) joined() *gorm.DB {
	return r.db.Model(&models.Appointment{}).
		Select(appointmentSelect).
		Joins("INNER JOIN client ON appointment.client_ifa_number = client.ifa_number")
}

// query is the shared read helper; every read degrades to an empty slice
// on store errors.
func (r *AppointmentRepository) query(tx *gorm.DB) []models.Appointment {
	monitoring.DatabaseQueries.Inc()
	var appointments []models.Appointment
	if err := tx.Find(&appointments).Error; err != nil {
		r.softFail(err, "failed to query appointments")
		return []models.Appointment{}
	}
	return appointments
}

func (r *AppointmentRepository) softFail(err error, msg string) {
	monitoring.RepositorySoftFailures.WithLabelValues("appointment").Inc()
	r.log.Error().Err(err).Msg(msg)
}
