// Package store keeps a history of analysis runs in a SQLite database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tliron/commonlog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Cyfrin/aderyn-sub000/internal/detect"
)

var log = commonlog.GetLogger("aderyn.store")

// Run is one analysis of a project.
type Run struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Root      string
	Files     int
	High      int
	Low       int
	Duration  time.Duration
	Findings  []Finding `gorm:"constraint:OnDelete:CASCADE"`
}

// Finding is one detector instance recorded for a run.
type Finding struct {
	ID       uint `gorm:"primaryKey"`
	RunID    uint `gorm:"index"`
	Detector string
	Severity string
	Path     string
	Line     int
	Location string
	NodeID   int64
	Hint     string
}

type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &Finding{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	log.Debugf("opened history database %s", path)
	return &Store{db: db}, nil
}

// SaveReport records rep as a new run of the project at root and returns
// the run ID.
func (s *Store) SaveReport(root string, rep *detect.Report) (uint, error) {
	run := Run{
		Root:     root,
		Files:    len(rep.Files),
		High:     rep.Count(detect.High),
		Low:      rep.Count(detect.Low),
		Duration: rep.Duration,
	}
	for _, issue := range rep.Issues {
		for _, instance := range issue.Instances {
			run.Findings = append(run.Findings, Finding{
				Detector: issue.Name,
				Severity: issue.Severity.String(),
				Path:     instance.Path,
				Line:     instance.Line,
				Location: instance.Location,
				NodeID:   int64(instance.NodeID),
				Hint:     instance.Hint,
			})
		}
	}

	if err := s.db.Create(&run).Error; err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	log.Infof("saved run %d with %d findings", run.ID, len(run.Findings))
	return run.ID, nil
}

// Runs returns the most recent runs first, without their findings. A limit
// of zero or less returns every run.
func (s *Store) Runs(limit int) ([]Run, error) {
	var runs []Run
	q := s.db.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Findings returns the findings of one run in the order they were saved.
func (s *Store) Findings(runID uint) ([]Finding, error) {
	var findings []Finding
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&findings).Error; err != nil {
		return nil, fmt.Errorf("failed to list findings of run %d: %w", runID, err)
	}
	return findings, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
