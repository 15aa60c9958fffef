package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/utils"
)

var (
	ErrNotFound    = errors.New("backup not found")
	ErrInvalidName = errors.New("invalid backup filename")
)

// tables lists every collection included in a dump, in an order safe for
// restore (owners before owned rows).
var tables = []string{
	"users",
	"settings",
	"properties",
	"units",
	"tenants",
	"payments",
	"expenses",
}

type Info struct {
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type Service interface {
	CreateBackup(ctx context.Context, actorID *uint, ip string) (*Info, error)
	ListBackups(ctx context.Context) ([]Info, error)
	ReadBackup(ctx context.Context, filename string) ([]byte, error)
	DeleteBackup(ctx context.Context, filename string) error
	RestoreBackup(ctx context.Context, filename string, actorID *uint, ip string) error
}

type service struct {
	db       *gorm.DB
	dir      string
	auditSvc auditlog.Service
}

func NewService(db *gorm.DB, dir string, auditSvc auditlog.Service) Service {
	return &service{db: db, dir: dir, auditSvc: auditSvc}
}

// resolve validates a user-supplied filename and maps it inside the backup
// directory. Anything that escapes the directory is rejected.
func (s *service) resolve(filename string) (string, error) {
	if filename == "" || !strings.HasSuffix(filename, ".json") {
		return "", ErrInvalidName
	}
	clean := filepath.Clean(filename)
	if clean != filename || strings.ContainsAny(clean, "/\\") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *service) CreateBackup(ctx context.Context, actorID *uint, ip string) (*Info, error) {
	dump := make(map[string][]map[string]interface{}, len(tables))
	for _, table := range tables {
		var rows []map[string]interface{}
		if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}
		dump[table] = rows
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	utils.Logger().WithField("file", filename).Info("backup created")
	s.auditSvc.LogAction(ctx, actorID, "BACKUP_CREATED", map[string]interface{}{
		"filename": filename,
	}, ip, "success")

	return &Info{Filename: filename, Size: int64(len(data)), CreatedAt: time.Now()}, nil
}

func (s *service) ListBackups(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Filename:  entry.Name(),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

func (s *service) ReadBackup(ctx context.Context, filename string) ([]byte, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *service) DeleteBackup(ctx context.Context, filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// RestoreBackup replaces the store's contents with the dump, all tables
// inside one transaction so a bad file leaves the data untouched.
func (s *service) RestoreBackup(ctx context.Context, filename string, actorID *uint, ip string) error {
	data, err := s.ReadBackup(ctx, filename)
	if err != nil {
		return err
	}

	var dump map[string][]map[string]interface{}
	if err := json.Unmarshal(data, &dump); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Owned rows go first so references never dangle mid-restore.
		for i := len(tables) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + tables[i]).Error; err != nil {
				return err
			}
		}
		for _, table := range tables {
			rows := dump[table]
			if len(rows) == 0 {
				continue
			}
			if err := tx.Table(table).Create(&rows).Error; err != nil {
				return fmt.Errorf("restore %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.Logger().WithField("file", filename).Info("backup restored")
	s.auditSvc.LogAction(ctx, actorID, "BACKUP_RESTORED", map[string]interface{}{
		"filename": filename,
	}, ip, "success")
	return nil
}
