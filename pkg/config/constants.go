package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry full names.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// StorefrontModeLocal keeps products and cart in the shared KV store
	// with optimistic mutations. StorefrontModeRemote fetches products from
	// the API and reserves stock before committing cart additions.
	StorefrontModeLocal  = "local"
	StorefrontModeRemote = "remote"

	EnvDBDSN  = "TELTECH_DB_DSN"
	EnvDBHost = "TELTECH_DB_HOST"
	EnvDBUser = "TELTECH_DB_USER"
	EnvDBName = "TELTECH_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
