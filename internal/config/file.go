package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvConfigFile names the environment variable pointing at a config file.
const EnvConfigFile = "LT_CONFIG"

// ExampleConfigYAML documents every key LoadFromFile understands.
const ExampleConfigYAML = `# Learning tracker configuration
database:
  backend: sqlite        # sqlite | gorm
  dir: ~/.lt
  filename: lt.db
  # path: /var/lib/lt/lt.db   (overrides dir and filename)
server:
  addr: ":8080"
  read_timeout: 10s
  write_timeout: 15s
  request_timeout: 10s
  shutdown_timeout: 10s
auth:
  bcrypt_cost: 10
validation:
  username_max_length: 64
  password_max_length: 72
  title_max_length: 200
logging:
  level: info            # debug | info | warn | error
  format: text           # text | json
`

// LoadFromFile overlays the keys present in the YAML (or JSON/TOML, by
// extension) file at path. Keys absent from the file leave c untouched.
func (c *Config) LoadFromFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("read %s: %v", path, err)}
	}
	c.applyViper(v)
	return nil
}

func (c *Config) applyViper(v *viper.Viper) {
	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v.IsSet(key) {
			*dst = v.GetDuration(key)
		}
	}

	setString("database.backend", &c.Database.Backend)
	c.Database.Backend = strings.ToLower(c.Database.Backend)
	setString("database.dir", &c.Database.Dir)
	setString("database.filename", &c.Database.Filename)
	setString("database.path", &c.Database.Path)
	if v.IsSet("database.dir_permissions") {
		c.Database.DirPermissions = v.GetUint32("database.dir_permissions")
	}

	setString("server.addr", &c.Server.Addr)
	setDuration("server.read_timeout", &c.Server.ReadTimeout)
	setDuration("server.write_timeout", &c.Server.WriteTimeout)
	setDuration("server.request_timeout", &c.Server.RequestTimeout)
	setDuration("server.shutdown_timeout", &c.Server.ShutdownTimeout)

	setInt("auth.bcrypt_cost", &c.Auth.BcryptCost)

	setInt("validation.username_min_length", &c.Validation.UsernameMinLength)
	setInt("validation.username_max_length", &c.Validation.UsernameMaxLength)
	setInt("validation.password_min_length", &c.Validation.PasswordMinLength)
	setInt("validation.password_max_length", &c.Validation.PasswordMaxLength)
	setInt("validation.title_max_length", &c.Validation.TitleMaxLength)
	setInt("validation.text_max_length", &c.Validation.TextMaxLength)

	setString("display.time_format", &c.Display.TimeFormat)
	setBool("display.color", &c.Display.Color)

	setDuration("application.timeout", &c.Application.Timeout)
	setBool("application.verbose", &c.Application.Verbose)

	setString("logging.level", &c.Logging.Level)
	setString("logging.format", &c.Logging.Format)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}
