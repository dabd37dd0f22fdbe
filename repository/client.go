package repository

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"casepilot/models"
	"casepilot/monitoring"
)

// ClientRepository reads and writes client rows. Store errors never reach
// the caller: every operation logs through the injected sink and degrades
// to an empty or negative result instead.
type ClientRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewClientRepository(db *gorm.DB, log zerolog.Logger) *ClientRepository {
	return &ClientRepository{db: db, log: log.With().Str("repository", "client").Logger()}
}

func (r *ClientRepository) GetAll() []models.Client {
	monitoring.DatabaseQueries.Inc()
	var clients []models.Client
	if err := r.db.Find(&clients).Error; err != nil {
		r.softFail(err, "failed to load clients")
		return []models.Client{}
	}
	return clients
}

// ExistsByIfa reports whether a client with the given ifa number exists.
// A store error counts as "does not exist".
func (r *ClientRepository) ExistsByIfa(ifaNumber string) bool {
	monitoring.DatabaseQueries.Inc()
	var count int64
	if err := r.db.Model(&models.Client{}).Where("ifa_number = ?", ifaNumber).Count(&count).Error; err != nil {
		r.softFail(err, "failed to check ifa number")
		return false
	}
	return count > 0
}

func (r *ClientRepository) Save(client models.Client) {
	monitoring.DatabaseQueries.Inc()
	if err := r.db.Create(&client).Error; err != nil {
		r.softFail(err, "failed to save client")
		return
	}
	r.log.Info().Str("ifa_number", client.IfaNumber).Msg("client saved")
}

// Update rewrites every mutable column of the row keyed by the ifa number.
// Last write wins; there is no concurrency check.
func (r *ClientRepository) Update(client models.Client) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Model(&models.Client{}).Where("ifa_number = ?", client.IfaNumber).Updates(map[string]interface{}{
		"last_name":           client.LastName,
		"first_name":          client.FirstName,
		"birth_date":          client.BirthDate,
		"nationality":         client.Nationality,
		"gender":              client.Gender,
		"relationship_status": client.RelationshipStatus,
	})
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to update client")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Str("ifa_number", client.IfaNumber).Msg("no client found to update")
		return
	}
	r.log.Info().Str("ifa_number", client.IfaNumber).Msg("client updated")
}

// DeleteByIfa removes the client row only. Appointments, documentations
// and file records referencing the ifa number are left in place.
func (r *ClientRepository) DeleteByIfa(ifaNumber string) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Where("ifa_number = ?", ifaNumber).Delete(&models.Client{})
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to delete client")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Str("ifa_number", ifaNumber).Msg("no client found to delete")
		return
	}
	r.log.Info().Str("ifa_number", ifaNumber).Msg("client deleted")
}

func (r *ClientRepository) softFail(err error, msg string) {
	monitoring.RepositorySoftFailures.WithLabelValues("client").Inc()
	r.log.Error().Err(err).Msg(msg)
}
