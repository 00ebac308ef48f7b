package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/spf13/viper"
)

type Config struct {
	Library Library `json:"library" yaml:"library" mapstructure:"library"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Scanner Scanner `json:"scanner" yaml:"scanner" mapstructure:"scanner"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
}

// Server configures the read api served by run, a zero port disables it
type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"min=0,max=65535"`
}

type Library struct {
	Collections []Collection `json:"collections" yaml:"collections" mapstructure:"collections" validate:"unique=ID,unique=Name,dive"`
}

// Collection ids key stored items, they must not change once a collection has been scanned
type Collection struct {
	ID        int64  `json:"id" yaml:"id" mapstructure:"id" validate:"required,min=1"`
	Name      string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Directory string `json:"directory" yaml:"directory" mapstructure:"directory" validate:"required"`
	Type      string `json:"type" yaml:"type" mapstructure:"type" validate:"oneof=movies shows"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

// Scanner houses configuration related to scanning and watching collections
type Scanner struct {
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency" validate:"min=0"`
	// Schedule is a cron spec for full rescans in run, empty disables them
	Schedule string `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
	// FFProbe is the ffprobe binary, empty disables video probing
	FFProbe  string        `json:"ffprobe" yaml:"ffprobe" mapstructure:"ffprobe"`
	Watch    bool          `json:"watch" yaml:"watch" mapstructure:"watch"`
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce" validate:"min=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	err = validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// Collections converts the configured collections
func (c Config) Collections() []media.Collection {
	out := make([]media.Collection, 0, len(c.Library.Collections))
	for _, coll := range c.Library.Collections {
		out = append(out, media.Collection{
			ID:        coll.ID,
			Name:      coll.Name,
			Directory: coll.Directory,
			Type:      media.CollectionType(coll.Type),
		})
	}
	return out
}

// Collection finds a configured collection by name
func (c Config) Collection(name string) (media.Collection, bool) {
	for _, coll := range c.Collections() {
		if coll.Name == name {
			return coll, true
		}
	}
	return media.Collection{}, false
}
