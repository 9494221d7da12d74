package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	datamodel "github.com/kwyt0087/AI-employee-takes-leave/internal/core/datamodel/session"
)

// sessionRowID pins the credential record to a single row, mirroring the
// browser's one token slot.
const sessionRowID = 1

// Store is the durable local mirror of the browser session: token, cached
// user profile and chat transcript survive process restarts. It is created
// once at startup and injected into everything that used to reach for
// localStorage. Last writer wins across processes; sqlite is the only lock.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := db.AutoMigrate(
		&datamodel.Session{},
		&datamodel.UserSnapshot{},
		&datamodel.ChatMessage{},
	); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetToken persists the session credential, replacing any previous one.
func (s *Store) SetToken(token string, userID int64) error {
	record := datamodel.Session{
		ID:        sessionRowID,
		Token:     token,
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
	return s.db.Save(&record).Error
}

// Token returns the persisted credential, or "" when none is stored. Reads
// are best-effort: the guard and the request interceptor only care whether
// a token exists.
func (s *Store) Token() string {
	var record datamodel.Session
	err := s.db.First(&record, sessionRowID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("read token from local store", "error", err)
		}
		return ""
	}
	return record.Token
}

// UserID returns the authenticated user's id, or 0 when logged out.
func (s *Store) UserID() int64 {
	var record datamodel.Session
	if err := s.db.First(&record, sessionRowID).Error; err != nil {
		return 0
	}
	return record.UserID
}

// SaveUser caches the merged profile document for the given user.
func (s *Store) SaveUser(userID int64, payload []byte) error {
	snapshot := datamodel.UserSnapshot{
		ID:        sessionRowID,
		UserID:    userID,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return s.db.Save(&snapshot).Error
}

// User returns the cached profile document, if any.
func (s *Store) User() ([]byte, bool) {
	var snapshot datamodel.UserSnapshot
	err := s.db.First(&snapshot, sessionRowID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("read user snapshot from local store", "error", err)
		}
		return nil, false
	}
	return snapshot.Payload, true
}

// IsAdmin reports whether the cached profile carries is_admin == true.
// Advisory only: the backend enforces authorization independently.
func (s *Store) IsAdmin() bool {
	payload, ok := s.User()
	if !ok {
		return false
	}
	var probe struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		s.logger.Error("parse cached user snapshot", "error", err)
		return false
	}
	return probe.IsAdmin
}

// Destroy removes the credential and cached profile. Called at logout and
// on 401. The chat transcript is kept, matching the original teardown which
// cleared only the token and user keys.
func (s *Store) Destroy() error {
	if err := s.db.Delete(&datamodel.Session{}, sessionRowID).Error; err != nil {
		return err
	}
	return s.db.Delete(&datamodel.UserSnapshot{}, sessionRowID).Error
}

// TokenClaims is the subset of JWT claims the client displays.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Claims decodes the stored token without verifying its signature. Display
// only; never an authorization input.
func (s *Store) Claims() (*TokenClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, errors.New("no session token stored")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	claims := &TokenClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}

// SaveTranscript replaces the persisted chat transcript with msgs.
func (s *Store) SaveTranscript(msgs []datamodel.ChatMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&datamodel.ChatMessage{}).Error; err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}
		return tx.Create(&msgs).Error
	})
}

// Transcript loads the persisted chat transcript in timestamp order.
func (s *Store) Transcript() ([]datamodel.ChatMessage, error) {
	var msgs []datamodel.ChatMessage
	err := s.db.Order("timestamp ASC").Find(&msgs).Error
	return msgs, err
}

// ClearTranscript drops every persisted chat message.
func (s *Store) ClearTranscript() error {
	return s.db.Where("1 = 1").Delete(&datamodel.ChatMessage{}).Error
}
