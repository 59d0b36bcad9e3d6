package pkgconfig

import (
	"errors"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagAnnotation marks a command line flag as an override for a config key.
// The annotation value holds the key, for example "delivery.chunk_size".
const FlagAnnotation = "pkgconfig_key"

// Option customizes the underlying viper instance before the file is read.
type Option func(v *viper.Viper) error

// WithDefaults registers default values for keys.
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) error {
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
		return nil
	}
}

// WithEnvPrefix lets environment variables override keys. The variable name is the
// upper-cased key with "." replaced by "_", prefixed by prefix
// (for example RTVF_DELIVERY_CHUNK_SIZE).
func WithEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// WithFlags binds every flag carrying FlagAnnotation to its config key.
// A bound flag only takes effect when it was set on the command line.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		var errs []error
		fs.VisitAll(func(f *pflag.Flag) {
			keys := f.Annotations[FlagAnnotation]
			if len(keys) == 0 {
				return
			}
			if err := v.BindPFlag(keys[0], f); err != nil {
				errs = append(errs, err)
			}
		})
		return errors.Join(errs...)
	}
}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension. A missing
// file is not an error: defaults, environment and flags still apply.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	v := viper.New()

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	if _, err := os.Stat(pathFile); errors.Is(err, os.ErrNotExist) {
		return &Viper{v: v}, nil
	}

	filename := path.Base(pathFile)
	filePath := path.Dir(pathFile)

	configName := path.Base(filename[:len(filename)-len(path.Ext(filename))])

	v.AddConfigPath(filePath)
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetDuration returns the value for key as time.Duration.
// Plain numbers are read as nanoseconds, strings like "200ms" or "60s" are parsed.
func (vc *Viper) GetDuration(key string) time.Duration {
	return vc.v.GetDuration(key)
}

// IsSet reports whether key has a value from any source, defaults included.
func (vc *Viper) IsSet(key string) bool {
	return vc.v.IsSet(key)
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
