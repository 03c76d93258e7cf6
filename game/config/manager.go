package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Extension is the file extension of preset files.
const Extension = ".toml"

// Manager loads rules presets from a directory and caches them by name.
type Manager struct {
	configDir     string
	defaultConfig *engine.Rules
	configs       map[string]*engine.Rules
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.Rules),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a preset by name. The .toml extension is optional.
func (m *Manager) LoadConfig(name string) (*engine.Rules, error) {
	id, err := validID(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if rules, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if rules, exists := m.configs[id]; exists {
		return rules, nil
	}

	rules, err := m.readConfig(id)
	if err != nil {
		return nil, err
	}

	m.configs[id] = rules
	return rules, nil
}

// ReloadConfig drops a cached preset and reads it from disk again.
func (m *Manager) ReloadConfig(name string) error {
	id, err := validID(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rules, err := m.readConfig(id)
	if err != nil {
		return err
	}
	m.configs[id] = rules
	return nil
}

// ListConfigs returns information about every valid preset, sorted by id.
// Files that fail to parse or validate are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}

		id := configID(entry.Name())
		rules, err := m.LoadConfig(id)
		if err != nil {
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:        entry.Name(),
			ConfigID:        id,
			Name:            rules.Name,
			Description:     rules.Description,
			FourProbability: rules.FourProbability,
			InitialTiles:    rules.InitialTiles,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = rules
	return nil
}

// RefreshCache clears every cached preset and reloads the default.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.Rules)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// SaveConfig validates rules and writes them to <name>.toml.
func (m *Manager) SaveConfig(name string, rules *engine.Rules) error {
	if err := engine.ValidateRules(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id, err := validID(name)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(m.configDir, id+Extension))
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(rules); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = rules
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig prefers classic, then the first listed preset, then the
// built-in rules.
func (m *Manager) loadDefaultConfig() error {
	rules, err := m.LoadConfig("classic")
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			rules = engine.DefaultRules()
		} else if rules, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			rules = engine.DefaultRules()
		}
	}

	m.mu.Lock()
	m.defaultConfig = rules
	m.mu.Unlock()
	return nil
}

// readConfig decodes and validates <id>.toml. Callers hold the write lock.
func (m *Manager) readConfig(id string) (*engine.Rules, error) {
	path := filepath.Join(m.configDir, id+Extension)

	var rules engine.Rules
	md, err := toml.DecodeFile(path, &rules)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalidConfig, filepath.Base(path), undecoded)
	}

	if err := engine.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &rules, nil
}

// validID turns a preset name into an id that names a file directly inside
// the config directory.
func validID(name string) (string, error) {
	id := configID(name)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}
	return id, nil
}

// configID strips the extension so "classic" and "classic.toml" share a cache entry.
func configID(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), Extension)
}
