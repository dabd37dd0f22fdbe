package repository

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"casepilot/models"
	"casepilot/monitoring"
)

// DocumentationRepository reads and writes case notes.
type DocumentationRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewDocumentationRepository(db *gorm.DB, log zerolog.Logger) *DocumentationRepository {
	return &DocumentationRepository{db: db, log: log.With().Str("repository", "documentation").Logger()}
}

func (r *DocumentationRepository) GetAll() []models.Documentation {
	monitoring.DatabaseQueries.Inc()
	var docs []models.Documentation
	if err := r.db.Find(&docs).Error; err != nil {
		r.softFail(err, "failed to load documentations")
		return []models.Documentation{}
	}
	return docs
}

func (r *DocumentationRepository) GetByClientIfa(ifaNumber string) []models.Documentation {
	monitoring.DatabaseQueries.Inc()
	var docs []models.Documentation
	if err := r.db.Where("client_ifa_number = ?", ifaNumber).Find(&docs).Error; err != nil {
		r.softFail(err, "failed to load documentations for client")
		return []models.Documentation{}
	}
	return docs
}

// Save inserts the documentation and returns the stored row including the
// assigned id; on failure the returned row keeps id 0.
func (r *DocumentationRepository) Save(doc models.Documentation) models.Documentation {
	monitoring.DatabaseQueries.Inc()
	if err := r.db.Create(&doc).Error; err != nil {
		r.softFail(err, "failed to save documentation")
		doc.ID = 0
		return doc
	}
	r.log.Info().Int("documentation_id", doc.ID).Msg("documentation saved")
	return doc
}

func (r *DocumentationRepository) Update(doc models.Documentation) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Model(&models.Documentation{}).Where("documentation_id = ?", doc.ID).Updates(map[string]interface{}{
		"date":        doc.Date,
		"time":        doc.Time,
		"description": doc.Description,
		"title":       doc.Title,
	})
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to update documentation")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Int("documentation_id", doc.ID).Msg("no documentation found to update")
		return
	}
	r.log.Info().Int("documentation_id", doc.ID).Msg("documentation updated")
}

func (r *DocumentationRepository) Delete(id int) {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Delete(&models.Documentation{}, id)
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to delete documentation")
		return
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Int("documentation_id", id).Msg("no documentation found to delete")
		return
	}
	r.log.Info().Int("documentation_id", id).Msg("documentation deleted")
}

func (r *DocumentationRepository) softFail(err error, msg string) {
	monitoring.RepositorySoftFailures.WithLabelValues("documentation").Inc()
	r.log.Error().Err(err).Msg(msg)
}
