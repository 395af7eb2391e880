package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environment variables
const (
	SD_CACHE_SCHEMA_SIZE             = "SD_CACHE_SCHEMA_SIZE"
	SD_CACHE_SCHEMA_TTL              = "SD_CACHE_SCHEMA_TTL"
	SD_DB_CONN_PARAMS                = "SD_DB_CONN_PARAMS"
	SD_DB_DRIVER                     = "SD_DB_DRIVER"
	SD_DB_HOST                       = "SD_DB_HOST"
	SD_DB_MAXIDLECONNS               = "SD_DB_MAXIDLECONNS"
	SD_DB_MAXOPENCONNS               = "SD_DB_MAXOPENCONNS"
	SD_DB_PASSWORD                   = "SD_DB_PASSWORD"
	SD_DB_PORT                       = "SD_DB_PORT"
	SD_DB_PROTOCOL                   = "SD_DB_PROTOCOL"
	SD_DB_SCHEMA                     = "SD_DB_SCHEMA"
	SD_DB_USERNAME                   = "SD_DB_USERNAME"
	SD_EVENT_KAFKA_ADDRS             = "SD_EVENT_KAFKA_ADDRS"
	SD_EVENT_PUBLISH_FAILURE_ACTIONS = "SD_EVENT_PUBLISH_FAILURE_ACTIONS"
	SD_EVENT_PUBLISH_SUCCESS_ACTIONS = "SD_EVENT_PUBLISH_SUCCESS_ACTIONS"
	SD_EVENT_TOPIC                   = "SD_EVENT_TOPIC"
	SD_LOG_LEVEL                     = "SD_LOG_LEVEL"
	SD_SERVER_BASEPATH               = "SD_SERVER_BASEPATH"
	SD_SERVER_BINDADDRESS            = "SD_SERVER_BINDADDRESS"
	SD_SERVER_DEFAULT_WIKI           = "SD_SERVER_DEFAULT_WIKI"
	SD_SERVER_PORT                   = "SD_SERVER_PORT"
)

var envVars = []string{
	SD_CACHE_SCHEMA_SIZE,
	SD_CACHE_SCHEMA_TTL,
	SD_DB_CONN_PARAMS,
	SD_DB_DRIVER,
	SD_DB_HOST,
	SD_DB_MAXIDLECONNS,
	SD_DB_MAXOPENCONNS,
	SD_DB_PASSWORD,
	SD_DB_PORT,
	SD_DB_PROTOCOL,
	SD_DB_SCHEMA,
	SD_DB_USERNAME,
	SD_EVENT_KAFKA_ADDRS,
	SD_EVENT_PUBLISH_FAILURE_ACTIONS,
	SD_EVENT_PUBLISH_SUCCESS_ACTIONS,
	SD_EVENT_TOPIC,
	SD_LOG_LEVEL,
	SD_SERVER_BASEPATH,
	SD_SERVER_BINDADDRESS,
	SD_SERVER_DEFAULT_WIKI,
	SD_SERVER_PORT,
}

// PrintEnvironment writes the recognized environment variables and their
// current values to stdout. Secrets are redacted.
func PrintEnvironment() {
	names := make([]string, len(envVars))
	copy(names, envVars)
	sort.Strings(names)
	fmt.Println("structured-data-server environment variables:")
	for _, name := range names {
		value := os.Getenv(name)
		if strings.Contains(name, "PASSWORD") && value != "" {
			value = "<redacted>"
		}
		fmt.Printf("  %s=%s\n", name, value)
	}
}
