package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/icanhazpagegate"

	DocumentRoute = "/v1/document"
	TreeRoute     = "/v1/tree"
	AssetRoute    = "/v1/assets"
)
