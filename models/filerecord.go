package models

import "time"

// FileRecord describes an uploaded file that has been copied into the
// managed uploads directory. Only the resolved absolute path is stored,
// never the file content. The table keeps its historical name "document".
type FileRecord struct {
	ID              int       `gorm:"column:document_id;primaryKey;autoIncrement" json:"document_id"`
	FileName        string    `gorm:"column:file_name;not null" json:"file_name"`
	FileType        string    `gorm:"column:file_type" json:"file_type"`
	UploadDate      time.Time `gorm:"column:upload_date;type:date" json:"upload_date"`
	FilePath        string    `gorm:"column:file_path;not null" json:"file_path"`
	ClientIfaNumber string    `gorm:"column:client_ifa_number;not null;index" json:"client_ifa_number"`
}

func (FileRecord) TableName() string { return "document" }
