package backup

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/storage"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

// Manager handles backup operations for the JSON data file
type Manager struct {
	dataPath  string
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager storing copies next to the data file
func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the current data file into the backup directory and
// prunes old backups.
func (m *Manager) CreateBackup() (string, error) {
	data, err := os.ReadFile(m.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
		}
		return "", fmt.Errorf("failed to read data file: %w", err)
	}
	if _, err := storage.Decode(data); err != nil {
		return "", fmt.Errorf("data file appears to be corrupted: %w", err)
	}

	backupPath, err := m.writeBackup(data)
	if err != nil {
		return "", err
	}

	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return backupPath, nil
}

func (m *Manager) writeBackup(data []byte) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}
	if err := storage.WriteFileAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Created backup", "path", backupPath, "bytes", len(data))
	return backupPath, nil
}

// nextBackupPath picks habitchain-YYYYMMDD-HHMM.json, falling back to second
// precision and then a counter when that name is taken.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	path := m.backupPath(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}

	timestamp := now.Format("20060102-150405")
	path = m.backupPath(timestamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.backupPath(fmt.Sprintf("%s-%d", timestamp, counter))
	}
	return path, nil
}

func (m *Manager) backupPath(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	slices.SortFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	return backups, nil
}

// parseBackupName extracts the timestamp and collision counter from
// habitchain-YYYYMMDD-HHMM[SS][-N].json.
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	seq := 0
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, seq, true
		}
	}
	return time.Time{}, 0, false
}

// rotateBackups removes backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for _, b := range backups[min(len(backups), constants.MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// RestoreBackup replaces the data file with a backup. The current data file,
// if any, is copied aside first without rotation or validation, so a corrupt
// file is kept too. It returns the path of that safety copy, or "" when there
// was no data file.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("backup file does not exist: %s", backupPath)
		}
		return "", fmt.Errorf("failed to read backup file: %w", err)
	}
	if _, err := storage.Decode(data); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	current, err := os.ReadFile(m.dataPath)
	switch {
	case err == nil:
		safety, err = m.writeBackup(current)
		if err != nil {
			return "", fmt.Errorf("failed to backup current data before restore: %w", err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read current data file: %w", err)
	}

	if err := storage.WriteFileAtomic(m.dataPath, data); err != nil {
		return safety, fmt.Errorf("failed to restore data file: %w", err)
	}
	logger.Info("Restored data file from backup", "backup", backupPath, "safety_backup", safety)
	return safety, nil
}
