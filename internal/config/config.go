package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"fishadm/internal/daemon"
	"fishadm/internal/logger"
)

// Deployment convention defaults, overridable per cluster and per daemon.
const (
	DefaultBaseDir = "/opt/fishd"
	DefaultPIDDir  = "/var/run/fishd"
	DefaultConfDir = "/etc/fishd"
)

// FileConfig represents the top-level cluster configuration structure.
// TOML and JSON files are both accepted; viper picks the format from
// the file extension.
type FileConfig struct {
	Defaults DefaultsConfig `toml:"defaults" mapstructure:"defaults"`
	MDS      []DaemonConfig `toml:"mds" mapstructure:"mds"`
	OSD      []DaemonConfig `toml:"osd" mapstructure:"osd"`
	Log      *LogConfig     `toml:"log" mapstructure:"log"`
	History  *HistoryConfig `toml:"history" mapstructure:"history"`
	Metrics  *MetricsConfig `toml:"metrics" mapstructure:"metrics"`
	Server   *ServerConfig  `toml:"server" mapstructure:"server"`
}

// DefaultsConfig holds cluster-wide deployment defaults applied to
// every daemon that does not override them.
type DefaultsConfig struct {
	User     string `toml:"user" mapstructure:"user"`
	BaseDir  string `toml:"base_dir" mapstructure:"base_dir"`
	PIDDir   string `toml:"pid_dir" mapstructure:"pid_dir"`
	ConfDir  string `toml:"conf_dir" mapstructure:"conf_dir"`
	ConfFile string `toml:"conf_file" mapstructure:"conf_file"`
}

// DaemonConfig is one [[mds]] or [[osd]] table.
type DaemonConfig struct {
	ID       int    `toml:"id" mapstructure:"id"`
	Host     string `toml:"host" mapstructure:"host"`
	Port     int    `toml:"port" mapstructure:"port"`
	User     string `toml:"user" mapstructure:"user"`
	BaseDir  string `toml:"base_dir" mapstructure:"base_dir"`
	PIDDir   string `toml:"pid_dir" mapstructure:"pid_dir"`
	PIDFile  string `toml:"pidfile" mapstructure:"pidfile"`
	ConfFile string `toml:"conf_file" mapstructure:"conf_file"`
	Binary   string `toml:"binary" mapstructure:"binary"`
}

type LogConfig struct {
	Dir        string `toml:"dir" mapstructure:"dir"`
	Path       string `toml:"path" mapstructure:"path"`
	Level      string `toml:"level" mapstructure:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

type HistoryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Listen  string `toml:"listen" mapstructure:"listen"`
}

type ServerConfig struct {
	Listen   string `toml:"listen" mapstructure:"listen"`
	BasePath string `toml:"base_path" mapstructure:"base_path"`
}

// Config is the loaded and validated cluster configuration, with every
// daemon's paths fully derived.
type Config struct {
	Defaults DefaultsConfig
	Log      *LogConfig
	History  *HistoryConfig
	Metrics  *MetricsConfig
	Server   *ServerConfig
	Daemons  []daemon.Daemon
}

// LoggerConfig converts the [log] section for internal/logger.
func (c *Config) LoggerConfig() logger.Config {
	if c.Log == nil {
		return logger.Config{}
	}
	return logger.Config{
		Dir:        c.Log.Dir,
		Path:       c.Log.Path,
		Level:      c.Log.Level,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}

// Load parses the cluster configuration file at path.
// Daemons are derived in file order, MDS entries before OSD entries.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, err
	}

	cfg := &Config{
		Defaults: fc.Defaults,
		Log:      fc.Log,
		History:  fc.History,
		Metrics:  fc.Metrics,
		Server:   fc.Server,
	}

	seen := make(map[string]bool)
	for _, group := range []struct {
		kind    daemon.Kind
		entries []DaemonConfig
	}{
		{daemon.KindMDS, fc.MDS},
		{daemon.KindOSD, fc.OSD},
	} {
		for _, dc := range group.entries {
			d, err := derive(group.kind, dc, fc.Defaults)
			if err != nil {
				return nil, err
			}
			if seen[d.Name()] {
				return nil, fmt.Errorf("duplicate daemon %s", d.Name())
			}
			seen[d.Name()] = true
			cfg.Daemons = append(cfg.Daemons, d)
		}
	}
	return cfg, nil
}

// derive fills a daemon descriptor from its entry and the cluster defaults.
func derive(kind daemon.Kind, dc DaemonConfig, def DefaultsConfig) (daemon.Daemon, error) {
	if dc.Host == "" {
		return daemon.Daemon{}, fmt.Errorf("%s.%d: host is required", kind, dc.ID)
	}
	if dc.ID < 0 {
		return daemon.Daemon{}, fmt.Errorf("%s: id must be >= 0, got %d", kind, dc.ID)
	}

	baseDir := firstNonEmpty(dc.BaseDir, def.BaseDir, DefaultBaseDir)
	pidDir := firstNonEmpty(dc.PIDDir, def.PIDDir, DefaultPIDDir)
	confDir := firstNonEmpty(def.ConfDir, DefaultConfDir)

	pidFile := dc.PIDFile
	if pidFile == "" {
		pidFile = filepath.Join(pidDir, fmt.Sprintf("%s.%d.pid", kind.Binary(), dc.ID))
	}
	binary := dc.Binary
	if binary == "" {
		binary = filepath.Join(baseDir, "usr", "bin", kind.Binary())
	}
	confFile := firstNonEmpty(dc.ConfFile, def.ConfFile)
	if confFile == "" {
		confFile = filepath.Join(confDir, "fishd.conf")
	}

	return daemon.Daemon{
		Kind:       kind,
		ID:         dc.ID,
		Host:       dc.Host,
		Port:       dc.Port,
		User:       firstNonEmpty(dc.User, def.User),
		PIDFile:    pidFile,
		BinaryPath: binary,
		ConfFile:   confFile,
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
