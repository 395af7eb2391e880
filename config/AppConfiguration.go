package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli"

	// registers the driver the DSN below is built for
	_ "github.com/go-sql-driver/mysql"
)

var (
	defaultDBDriver = "mysql"
	defaultDBHost   = "metadatadb"
	defaultDBPort   = "3306"
	defaultDBSchema = "structureddata"
	defaultWiki     = "xwiki"
)

var empty []string

// AppConfiguration is a structure that defines the known configuration format
// for this application.
type AppConfiguration struct {
	DatabaseConnection DatabaseConfiguration       `yaml:"database"`
	ServerSettings     ServerSettingsConfiguration `yaml:"server"`
	EventQueue         EventQueueConfiguration     `yaml:"event_queue"`
}

// CommandLineOpts holds command line options parsed on application start.
type CommandLineOpts struct {
	// Conf is a path to our YAML configuration file.
	Conf string
}

// DatabaseConfiguration is a structure that defines the attributes
// needed for setting up database connection
type DatabaseConfiguration struct {
	// Driver specifies the database driver. Only "mysql" is supported.
	Driver string `yaml:"driver"`
	// Username is the database username.
	Username string `yaml:"username"`
	// Password is the database password.
	Password string `yaml:"password"`
	// Protocol specifies the network protocol. Only "tcp" is supported.
	Protocol string `yaml:"protocol"`
	// Host is the database hostname.
	Host string `yaml:"host"`
	// Port is the database port. Commonly 3306 for MySQL.
	Port string `yaml:"port"`
	// Schema is the database name to connect to.
	Schema string `yaml:"schema"`
	// Params are custom connection params injected into the DSN. These
	// will vary depending on your server's configuration.
	Params string `yaml:"conn_params"`
	// MaxIdleConns caps the idle connections kept in the pool.
	MaxIdleConns int `yaml:"max_idle_conns"`
	// MaxOpenConns caps the connections opened against the server.
	MaxOpenConns int `yaml:"max_open_conns"`
}

// EventQueueConfiguration configures publishing to the Kafka event queue.
type EventQueueConfiguration struct {
	// KafkaAddrs is a list of host:port pairs of Kafka brokers. If provided,
	// a direct connection to the brokers is established. If empty, event
	// publishing is disabled.
	KafkaAddrs []string `yaml:"kafka_addrs"`
	// PublishSuccessActions, if provided, specifies the types of success actions
	// to publish to Kafka. If empty, all success actions are published.
	PublishSuccessActions []string `yaml:"publish_success_actions"`
	// PublishFailureActions, if provided, specifies the types of failure actions
	// to publish to Kafka. If empty, all failure actions are published.
	PublishFailureActions []string `yaml:"publish_failure_actions"`
	// Topic denotes the name of the topic to publish events to in Kafka.
	Topic string `yaml:"topic"`
}

// ServerSettingsConfiguration holds the attributes needed for
// setting up an AppServer listener.
type ServerSettingsConfiguration struct {
	// BasePath is the root URL all API routes are served under.
	BasePath string `yaml:"base_path"`
	// ListenPort is the port the server listens on. Default is 8080.
	ListenPort string `yaml:"port"`
	// ListenBind is the address to bind to. Default is 0.0.0.0.
	ListenBind string `yaml:"bind"`
	// DefaultWiki is the wiki served when a route does not name one.
	DefaultWiki string `yaml:"default_wiki"`
	// SchemaCacheSize caps the number of entries in the schema cache.
	SchemaCacheSize int64 `yaml:"schema_cache_size"`
	// SchemaCacheTTL is the lifetime of a cached schema in seconds.
	SchemaCacheTTL int64 `yaml:"schema_cache_ttl"`
}

// NewAppConfiguration loads the configuration from the different sources in the environment.
// If multiple configuration sources can be used, the order of precedence is: env var overrides
// config file.
func NewAppConfiguration(opts CommandLineOpts) AppConfiguration {
	confFile, err := LoadYAMLConfig(opts.Conf)
	if err != nil {
		fmt.Printf("Error loading yaml configuration at path %v: %v\n", opts.Conf, err)
		os.Exit(1)
	}

	return AppConfiguration{
		DatabaseConnection: NewDatabaseConfigFromEnv(confFile),
		ServerSettings:     NewServerSettingsFromEnv(confFile),
		EventQueue:         NewEventQueueConfiguration(confFile),
	}
}

// NewCommandLineOpts instantiates CommandLineOpts from a pointer to the parsed command line
// context. The actual parsing is handled by the cli framework.
func NewCommandLineOpts(clictx *cli.Context) CommandLineOpts {
	return CommandLineOpts{
		Conf: clictx.String("conf"),
	}
}

// NewDatabaseConfigFromEnv inspects the environment and returns a DatabaseConfiguration.
func NewDatabaseConfigFromEnv(confFile AppConfiguration) DatabaseConfiguration {
	var conf DatabaseConfiguration

	conf.Driver = cascade(SD_DB_DRIVER, confFile.DatabaseConnection.Driver, defaultDBDriver)
	conf.Username = cascade(SD_DB_USERNAME, confFile.DatabaseConnection.Username, "")
	conf.Password = cascade(SD_DB_PASSWORD, confFile.DatabaseConnection.Password, "")
	conf.Protocol = cascade(SD_DB_PROTOCOL, confFile.DatabaseConnection.Protocol, "tcp")
	conf.Host = cascade(SD_DB_HOST, confFile.DatabaseConnection.Host, defaultDBHost)
	conf.Port = cascade(SD_DB_PORT, confFile.DatabaseConnection.Port, defaultDBPort)
	conf.Schema = cascade(SD_DB_SCHEMA, confFile.DatabaseConnection.Schema, defaultDBSchema)
	conf.Params = cascade(SD_DB_CONN_PARAMS, confFile.DatabaseConnection.Params, "parseTime=true&collation=utf8mb4_unicode_ci")
	conf.MaxIdleConns = int(cascadeInt(SD_DB_MAXIDLECONNS, int64(confFile.DatabaseConnection.MaxIdleConns), 10))
	conf.MaxOpenConns = int(cascadeInt(SD_DB_MAXOPENCONNS, int64(confFile.DatabaseConnection.MaxOpenConns), 10))

	return conf
}

// NewServerSettingsFromEnv inspects the environment and returns a ServerSettingsConfiguration.
func NewServerSettingsFromEnv(confFile AppConfiguration) ServerSettingsConfiguration {
	var conf ServerSettingsConfiguration

	conf.BasePath = cascade(SD_SERVER_BASEPATH, confFile.ServerSettings.BasePath, "")
	conf.ListenPort = cascade(SD_SERVER_PORT, confFile.ServerSettings.ListenPort, "8080")
	conf.ListenBind = cascade(SD_SERVER_BINDADDRESS, confFile.ServerSettings.ListenBind, "0.0.0.0")
	conf.DefaultWiki = cascade(SD_SERVER_DEFAULT_WIKI, confFile.ServerSettings.DefaultWiki, defaultWiki)
	conf.SchemaCacheSize = cascadeInt(SD_CACHE_SCHEMA_SIZE, confFile.ServerSettings.SchemaCacheSize, 500)
	conf.SchemaCacheTTL = cascadeInt(SD_CACHE_SCHEMA_TTL, confFile.ServerSettings.SchemaCacheTTL, 300)

	return conf
}

// NewEventQueueConfiguration reads the environment to provide the configuration for publishing
// to the Kafka event queue.
func NewEventQueueConfiguration(confFile AppConfiguration) EventQueueConfiguration {
	var conf EventQueueConfiguration

	conf.KafkaAddrs = cascadeStringSlice(SD_EVENT_KAFKA_ADDRS, confFile.EventQueue.KafkaAddrs, empty)
	conf.PublishSuccessActions = cascadeStringSlice(SD_EVENT_PUBLISH_SUCCESS_ACTIONS, confFile.EventQueue.PublishSuccessActions, []string{"*"})
	conf.PublishFailureActions = cascadeStringSlice(SD_EVENT_PUBLISH_FAILURE_ACTIONS, confFile.EventQueue.PublishFailureActions, []string{"*"})
	conf.Topic = cascade(SD_EVENT_TOPIC, confFile.EventQueue.Topic, "structured-data-event")

	return conf
}

// GetDatabaseHandle builds a database connection from the configuration and
// verifies it with a ping.
func (conf DatabaseConfiguration) GetDatabaseHandle() (*sqlx.DB, error) {
	db, err := sqlx.Connect(conf.Driver, conf.buildDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(conf.MaxIdleConns)
	db.SetMaxOpenConns(conf.MaxOpenConns)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func (conf DatabaseConfiguration) buildDSN() string {
	var dsn string
	if len(conf.Username) > 0 {
		dsn += conf.Username
		if len(conf.Password) > 0 {
			dsn += ":" + conf.Password
		}
		dsn += "@"
	}
	dsn += conf.Protocol + "(" + conf.Host + ":" + conf.Port + ")/" + conf.Schema
	if len(conf.Params) > 0 {
		dsn += "?" + conf.Params
	}
	return dsn
}

// SchemaCacheDuration converts the configured TTL to a duration.
func (conf ServerSettingsConfiguration) SchemaCacheDuration() time.Duration {
	return time.Duration(conf.SchemaCacheTTL) * time.Second
}

func cascade(fromEnv string, fromFile string, defaultVal string) string {
	if envVal := os.Getenv(fromEnv); envVal != "" {
		return envVal
	}
	if fromFile != "" {
		return fromFile
	}
	return defaultVal
}

func cascadeInt(fromEnv string, fromFile int64, defaultVal int64) int64 {
	if envVal := os.Getenv(fromEnv); envVal != "" {
		if parsed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return parsed
		}
	}
	if fromFile != 0 {
		return fromFile
	}
	return defaultVal
}

func cascadeStringSlice(fromEnv string, fromFile []string, defaultVal []string) []string {
	if envVal := os.Getenv(fromEnv); envVal != "" {
		parts := strings.Split(envVal, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	if len(fromFile) > 0 {
		return fromFile
	}
	return defaultVal
}
