package database

import (
	"gorm.io/gorm"

	"github.com/prospectiq/dataops-backend/models"
)

type Database struct {
	db *gorm.DB

	clientRepo           *ClientRepo
	projectRepo          *ProjectRepo
	projectSettingRepo   *ProjectSettingRepo
	projectSpecRepo      *ProjectSpecRepo
	projectTypeRepo      *ProjectTypeRepo
	projectUserRepo      *ProjectUserRepo
	fileRepo             *FileRepo
	sharedFileRepo       *SharedFileRepo
	jobRepo              *JobRepo
	fileChunkRepo        *FileChunkRepo
	suppressionMatchRepo *SuppressionMatchRepo
	masterContactRepo    *MasterContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                   db,
		clientRepo:           NewClientRepo(db),
		projectRepo:          NewProjectRepo(db),
		projectSettingRepo:   NewProjectSettingRepo(db),
		projectSpecRepo:      NewProjectSpecRepo(db),
		projectTypeRepo:      NewProjectTypeRepo(db),
		projectUserRepo:      NewProjectUserRepo(db),
		fileRepo:             NewFileRepo(db),
		sharedFileRepo:       NewSharedFileRepo(db),
		jobRepo:              NewJobRepo(db),
		fileChunkRepo:        NewFileChunkRepo(db),
		suppressionMatchRepo: NewSuppressionMatchRepo(db),
		masterContactRepo:    NewMasterContactRepo(db),
	}
}

// Migrate creates or updates the schema for every entity.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.Client{},
		&models.ProjectType{},
		&models.Project{},
		&models.ProjectSetting{},
		&models.ProjectSpec{},
		&models.ProjectUser{},
		&models.File{},
		&models.SharedFile{},
		&models.SharedFileProject{},
		&models.Job{},
		&models.JobError{},
		&models.FileChunk{},
		&models.SuppressionMatch{},
		&models.MasterContact{},
	)
}

// Transaction runs fn against a Database bound to one transaction. Any error
// returned by fn rolls the whole transaction back.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping verifies the underlying connection is alive.
func (d Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Accessor methods for each repository

func (d Database) ClientRepo() *ClientRepo {
	return d.clientRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectSettingRepo() *ProjectSettingRepo {
	return d.projectSettingRepo
}

func (d Database) ProjectSpecRepo() *ProjectSpecRepo {
	return d.projectSpecRepo
}

func (d Database) ProjectTypeRepo() *ProjectTypeRepo {
	return d.projectTypeRepo
}

func (d Database) ProjectUserRepo() *ProjectUserRepo {
	return d.projectUserRepo
}

func (d Database) FileRepo() *FileRepo {
	return d.fileRepo
}

func (d Database) SharedFileRepo() *SharedFileRepo {
	return d.sharedFileRepo
}

func (d Database) JobRepo() *JobRepo {
	return d.jobRepo
}

func (d Database) FileChunkRepo() *FileChunkRepo {
	return d.fileChunkRepo
}

func (d Database) SuppressionMatchRepo() *SuppressionMatchRepo {
	return d.suppressionMatchRepo
}

func (d Database) MasterContactRepo() *MasterContactRepo {
	return d.masterContactRepo
}
