// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports, TLS,
// logging level, and request limits. AppConfig is everything specific to
// this application; it is passed to most lifecycle hooks, so anything needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Admin account. One configured credential pair; successful logins are
	// exchanged for expiring keys stored in Mongo.
	AdminUsername     string
	AdminPasswordHash string        // bcrypt digest of the admin password
	AdminKeyTTL       time.Duration // lifetime of issued admin keys

	// File storage configuration for uploaded class images
	StorageType      string // Storage backend: "local" only for now
	StorageLocalPath string // Local storage path (e.g., "./uploads/images")
	StorageLocalURL  string // URL prefix for serving local files
}
