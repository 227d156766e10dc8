package main

import "os"

// Runtime configuration resolved from the environment.
type config struct {
	ProjectID        string
	CredentialsFile  string
	DBBackend        string // firestore | mysql
	MySQLDSN         string
	StorageBackend   string // gcs | s3
	Bucket           string
	MuxTokenId       string
	MuxTokenSecret   string
	MuxWebhookSecret string
}

func loadConfig() config {
	return config{
		ProjectID:        env("GOOGLE_PROJECT_ID", ""),
		CredentialsFile:  env("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DBBackend:        env("DB_BACKEND", "firestore"),
		MySQLDSN:         env("MYSQL_DSN", ""),
		StorageBackend:   env("STORAGE_BACKEND", "gcs"),
		Bucket:           env("VOD_BUCKET", ""),
		MuxTokenId:       env("MUX_TOKEN_ID", ""),
		MuxTokenSecret:   env("MUX_TOKEN_SECRET", ""),
		MuxWebhookSecret: env("MUX_WEBHOOK_SECRET", ""),
	}
}

// Get the value of environment variables.
func env(key string, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
