package repository

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"casepilot/models"
	"casepilot/monitoring"
)

// FileRecordRepository reads and writes upload metadata rows. The file
// bytes themselves live in the uploads directory, not in the store.
type FileRecordRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewFileRecordRepository(db *gorm.DB, log zerolog.Logger) *FileRecordRepository {
	return &FileRecordRepository{db: db, log: log.With().Str("repository", "file").Logger()}
}

func (r *FileRecordRepository) GetByClientIfa(ifaNumber string) []models.FileRecord {
	monitoring.DatabaseQueries.Inc()
	var files []models.FileRecord
	if err := r.db.Where("client_ifa_number = ?", ifaNumber).Find(&files).Error; err != nil {
		r.softFail(err, "failed to load files for client")
		return []models.FileRecord{}
	}
	return files
}

// Save inserts the record and returns it with the store-assigned id; on
// failure the returned record keeps id 0.
func (r *FileRecordRepository) Save(file models.FileRecord) models.FileRecord {
	monitoring.DatabaseQueries.Inc()
	if err := r.db.Create(&file).Error; err != nil {
		r.softFail(err, "failed to save file record")
		file.ID = 0
		return file
	}
	r.log.Info().Int("document_id", file.ID).Str("file_name", file.FileName).Msg("file record saved")
	return file
}

// Delete reports whether a row was actually removed.
func (r *FileRecordRepository) Delete(id int) bool {
	monitoring.DatabaseQueries.Inc()
	tx := r.db.Delete(&models.FileRecord{}, id)
	if tx.Error != nil {
		r.softFail(tx.Error, "failed to delete file record")
		return false
	}
	if tx.RowsAffected == 0 {
		r.log.Info().Int("document_id", id).Msg("no file record found to delete")
		return false
	}
	r.log.Info().Int("document_id", id).Msg("file record deleted")
	return true
}

func (r *FileRecordRepository) softFail(err error, msg string) {
	monitoring.RepositorySoftFailures.WithLabelValues("file").Inc()
	r.log.Error().Err(err).Msg(msg)
}
