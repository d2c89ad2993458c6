package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DirName is the per-user directory under $HOME for config and logs
const DirName = ".buddy"

// Store wraps a viper instance and the last decoded Config
type Store struct {
	v *viper.Viper

	mu      sync.RWMutex
	current Config
}

// Open reads path, or config.{yaml,toml,json} from ~/.buddy then the working
// directory when path is empty. A missing file leaves defaults in place.
func Open(path string) (*Store, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	s := &Store{v: v}
	cfg, err := s.decode()
	if err != nil {
		return nil, err
	}
	s.current = cfg
	return s, nil
}

// Load is Open followed by Config
func Load(path string) (Config, error) {
	s, err := Open(path)
	if err != nil {
		return Config{}, err
	}
	return s.Config(), nil
}

// Config returns the last successfully decoded configuration
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// File returns the config file in use, empty when running on defaults
func (s *Store) File() string {
	return s.v.ConfigFileUsed()
}

// BindFlags lets changed flags take precedence over file and environment
// keys maps config keys such as "animation.fps" to flag names
func (s *Store) BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind %s: no flag --%s", key, name)
		}
		if err := s.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg, err := s.decode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return nil
}

// Watch calls fn after each write to the config file
// Invalid edits are reported through err and the previous Config is kept
func (s *Store) Watch(fn func(cfg Config, err error)) bool {
	if s.File() == "" {
		return false
	}

	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := s.decode()
		if err != nil {
			fn(s.Config(), err)
			return
		}
		s.mu.Lock()
		s.current = cfg
		s.mu.Unlock()
		fn(cfg, nil)
	})
	s.v.WatchConfig()
	return true
}

func (s *Store) decode() (Config, error) {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dir returns ~/.buddy
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// WriteDefault writes the default configuration to path; format follows the extension
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper, c Config) {
	a := c.Animation
	v.SetDefault("animation.fps", a.FPS)
	v.SetDefault("animation.seed", a.Seed)
	v.SetDefault("animation.initial_expression", a.InitialExpression)
	v.SetDefault("animation.sleep_timeout", a.SleepTimeout.String())
	v.SetDefault("animation.transition_duration", a.TransitionDuration.String())
	v.SetDefault("animation.blink_duration", a.BlinkDuration.String())
	v.SetDefault("animation.blink_interval_min", a.BlinkIntervalMin.String())
	v.SetDefault("animation.blink_interval_max", a.BlinkIntervalMax.String())
	v.SetDefault("animation.neutral_dwell_min", a.NeutralDwellMin.String())
	v.SetDefault("animation.neutral_dwell_max", a.NeutralDwellMax.String())
	v.SetDefault("animation.easing", a.Easing)
	v.SetDefault("animation.bounce_scale", a.BounceScale)
	v.SetDefault("animation.bounce_frequency", a.BounceFrequency)
	v.SetDefault("animation.drift_scale", a.DriftScale)
	v.SetDefault("animation.tilt_scale", a.TiltScale)
	v.SetDefault("animation.noise_frequency", a.NoiseFrequency)
	v.SetDefault("animation.noise_amplitude", a.NoiseAmplitude)
	v.SetDefault("animation.drift_gain", a.DriftGain)
	v.SetDefault("animation.max_drift_step", a.MaxDriftStep)
	v.SetDefault("animation.gaze_jitter", a.GazeJitter)

	v.SetDefault("render.hue", c.Render.Hue)
	v.SetDefault("render.color_mode", c.Render.ColorMode)
	v.SetDefault("render.debug", c.Render.Debug)

	v.SetDefault("audio.enabled", c.Audio.Enabled)
	v.SetDefault("audio.volume", c.Audio.Volume)
	v.SetDefault("audio.sample_rate", c.Audio.SampleRate)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.dir", c.Log.Dir)
	v.SetDefault("log.file", c.Log.File)
}
