package traysession

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Settings is the read-only configuration loaded at construction.
type Settings struct {
	v    *viper.Viper
	path string
}

// LoadSettings reads the first file in files that exists. A file holding the
// JSON literal null is skipped. When nothing is found the settings are empty.
func LoadSettings(envPrefix string, files ...string) (*Settings, error) {
	s := &Settings{v: newViper(envPrefix)}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read settings %s: %w", f, err)
		}
		if string(bytes.TrimSpace(data)) == "null" {
			log.Debug().Str("file", f).Msg("settings file is null, skipping")
			continue
		}

		v := newViper(envPrefix)
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parse settings %s: %w", f, err)
		}
		s.v = v
		s.path = f
		log.Debug().Str("file", f).Int("keys", len(v.AllKeys())).Msg("settings loaded")
		break
	}

	return s, nil
}

func newViper(envPrefix string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}
	return v
}

// Path returns the file the settings came from, or "" if none was found.
func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) Get(key string) interface{} {
	return s.v.Get(key)
}

func (s *Settings) GetString(key string) string {
	return s.v.GetString(key)
}

func (s *Settings) GetInt(key string) int {
	return s.v.GetInt(key)
}

func (s *Settings) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// All returns a copy of every loaded key. Keys are lower-cased.
func (s *Settings) All() map[string]interface{} {
	return s.v.AllSettings()
}
