package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRateLimited       = "batch.rate_limited"
	keyMaxParallel       = "batch.max_parallel"
	keyInterBatchDelayMs = "batch.inter_batch_delay_ms"
	keyCollision         = "archive.collision"
	keyOutputDir         = "archive.output_dir"
	keyUserAgent         = "transport.user_agent"
	keyCookie            = "transport.cookie"
	keyRequestsPerSecond = "transport.requests_per_second"
)

// allKeys lists every key Reset removes.
var allKeys = []string{
	keyRateLimited, keyMaxParallel, keyInterBatchDelayMs,
	keyCollision, keyOutputDir,
	keyUserAgent, keyCookie, keyRequestsPerSecond,
}

// SettingNames lists the names SetValue accepts, in display order.
var SettingNames = []string{
	"rate-limited", "max-parallel", "delay-ms",
	"collision", "output-dir",
	"user-agent", "cookie", "requests-per-second",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Out-of-range numbers are
// clamped and unknown enum values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := domain.AppSettings{
		Batch: domain.BatchPolicy{
			RateLimited:       s.getBool(keyRateLimited, defaults.Batch.RateLimited),
			MaxParallel:       s.getInt(keyMaxParallel, defaults.Batch.MaxParallel),
			InterBatchDelayMs: s.getInt(keyInterBatchDelayMs, defaults.Batch.InterBatchDelayMs),
		},
		Archive: domain.ArchiveSettings{
			Collision: s.getCollision(defaults.Archive.Collision),
			OutputDir: s.getString(keyOutputDir, defaults.Archive.OutputDir),
		},
		Transport: domain.TransportSettings{
			UserAgent:         s.getString(keyUserAgent, defaults.Transport.UserAgent),
			Cookie:            s.configStore.GetString(keyCookie),
			RequestsPerSecond: s.getInt(keyRequestsPerSecond, defaults.Transport.RequestsPerSecond),
		},
	}.Normalize()

	return &settings, nil
}

// Save normalises and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	normalized := settings.Normalize()

	// Save batch settings
	if err := s.configStore.Set(keyRateLimited, normalized.Batch.RateLimited); err != nil {
		return fmt.Errorf("save batch rate_limited: %w", err)
	}
	if err := s.configStore.Set(keyMaxParallel, normalized.Batch.MaxParallel); err != nil {
		return fmt.Errorf("save batch max_parallel: %w", err)
	}
	if err := s.configStore.Set(keyInterBatchDelayMs, normalized.Batch.InterBatchDelayMs); err != nil {
		return fmt.Errorf("save batch inter_batch_delay_ms: %w", err)
	}

	// Save archive settings
	if err := s.configStore.Set(keyCollision, normalized.Archive.Collision.String()); err != nil {
		return fmt.Errorf("save archive collision: %w", err)
	}
	if err := s.configStore.Set(keyOutputDir, normalized.Archive.OutputDir); err != nil {
		return fmt.Errorf("save archive output_dir: %w", err)
	}

	// Save transport settings
	if err := s.configStore.Set(keyUserAgent, normalized.Transport.UserAgent); err != nil {
		return fmt.Errorf("save transport user_agent: %w", err)
	}
	if err := s.configStore.Set(keyCookie, normalized.Transport.Cookie); err != nil {
		return fmt.Errorf("save transport cookie: %w", err)
	}
	if err := s.configStore.Set(keyRequestsPerSecond, normalized.Transport.RequestsPerSecond); err != nil {
		return fmt.Errorf("save transport requests_per_second: %w", err)
	}

	return nil
}

// SetBatchPolicy updates the fetch scheduling settings.
func (s *SettingsService) SetBatchPolicy(policy domain.BatchPolicy) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Batch = policy.Normalize()
	return s.Save(settings)
}

// SetCollisionPolicy updates how duplicate entry names are handled.
func (s *SettingsService) SetCollisionPolicy(policy domain.CollisionPolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("%w: collision policy %q", domain.ErrInvalidInput, policy)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Archive.Collision = policy
	return s.Save(settings)
}

// SetValue updates a single setting by its CLI name, such as "max-parallel".
// Numbers outside their range are clamped.
func (s *SettingsService) SetValue(name, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch name {
	case "rate-limited":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: rate-limited must be true or false", domain.ErrInvalidInput)
		}
		settings.Batch.RateLimited = b
	case "max-parallel":
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		settings.Batch.MaxParallel = n
	case "delay-ms":
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		settings.Batch.InterBatchDelayMs = n
	case "collision":
		policy := domain.CollisionPolicy(strings.ToLower(value))
		if !policy.IsValid() {
			return fmt.Errorf("%w: collision must be one of overwrite, suffix", domain.ErrInvalidInput)
		}
		settings.Archive.Collision = policy
	case "output-dir":
		settings.Archive.OutputDir = value
	case "user-agent":
		settings.Transport.UserAgent = value
	case "cookie":
		settings.Transport.Cookie = value
	case "requests-per-second":
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		settings.Transport.RequestsPerSecond = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, name)
	}

	return s.Save(settings)
}

// Reset removes every stored setting so defaults apply again.
func (s *SettingsService) Reset() error {
	for _, key := range allKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats a stored zero as a real value; only a missing key uses the default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCollision(defaultVal domain.CollisionPolicy) domain.CollisionPolicy {
	val := s.configStore.GetString(keyCollision)
	if val == "" {
		return defaultVal
	}
	policy := domain.CollisionPolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, name)
	}
	return n, nil
}
