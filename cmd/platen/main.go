package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

type optsGeneral struct {
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

type optsDatabase struct {
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"Database: a sqlite file path or postgres:// URL" default:"data/platen.db"`
}

type optsQueue struct {
	QueueURL       string `long:"queue-url" env:"QUEUE_URL" description:"Redis URL for an asynq backed queue; in process pool if unset"`
	QueueTLSCaCert string `long:"queue-tls-ca-cert" env:"QUEUE_TLS_CA_CERT" description:"Path to CA certificate for the queue"`
	QueueTLSCert   string `long:"queue-tls-cert" env:"QUEUE_TLS_CERT" description:"Path to client certificate for the queue"`
	QueueTLSKey    string `long:"queue-tls-key" env:"QUEUE_TLS_KEY" description:"Path to client key for the queue"`
	QueueInstance  string `long:"queue-instance" env:"QUEUE_INSTANCE" description:"Name of this instance's queue; must be unique per server and stable across restarts (defaults to hostname)"`
	Workers        int    `long:"workers" env:"WORKERS" description:"Number of jobs run at once" default:"2"`
}

type optsStorage struct {
	S3Bucket    string `long:"s3-bucket" env:"S3_BUCKET" description:"Bucket job archives are uploaded to; uploads are skipped if unset"`
	S3Endpoint  string `long:"s3-endpoint" env:"S3_ENDPOINT" description:"S3 compatible endpoint" default:"s3.amazonaws.com"`
	S3Region    string `long:"s3-region" env:"AWS_REGION" description:"S3 region"`
	S3AccessKey string `long:"s3-access-key" env:"AWS_ACCESS_KEY_ID" description:"S3 access key; falls back to the aws env / credentials file"`
	S3SecretKey string `long:"s3-secret-key" env:"AWS_SECRET_ACCESS_KEY" description:"S3 secret key"`
}

type optsLimits struct {
	RequireKey  bool          `long:"require-key" env:"REQUIRE_API_KEY" description:"Job creation requires an X-API-Key"`
	AdminToken  string        `long:"admin-token" env:"ADMIN_TOKEN" description:"Token for key management & job deletion; disabled if unset"`
	RateLimit   int           `long:"rate-limit" env:"RATE_LIMIT" description:"Requests per caller per window" default:"60"`
	RateWindow  time.Duration `long:"rate-window" env:"RATE_WINDOW" description:"Rate limit window" default:"60s"`
	RateRedis   string        `long:"rate-redis-url" env:"RATE_REDIS_URL" description:"Redis URL to share rate limits between instances; in memory if unset"`
	GlobalRPS   float64       `long:"global-rps" env:"GLOBAL_RPS" description:"Requests per second for the whole server; 0 disables"`
	GlobalBurst int           `long:"global-burst" env:"GLOBAL_BURST" description:"Burst for the global limit" default:"50"`
}

type optsClient struct {
	Server     string `long:"server" env:"PLATEN_SERVER" description:"Platen server address" default:"http://localhost:8080"`
	APIKey     string `long:"api-key" env:"PLATEN_API_KEY" description:"API key sent as X-API-Key"`
	AdminToken string `long:"admin-token" env:"ADMIN_TOKEN" description:"Admin token sent as X-Admin-Token"`
}

var parser = flags.NewParser(nil, flags.Default)

func main() {
	parser.AddCommand("serve", docServe, docServe, &optsServe{})
	parser.AddCommand("migrate", docMigrate, docMigrate, &optsMigrate{})
	parser.AddCommand("submit", docSubmit, docSubmit, &optsSubmit{})
	parser.AddCommand("status", docStatus, docStatus, &optsStatus{})

	keys, err := parser.AddCommand("keys", docKeys, docKeys, &struct{}{})
	if err != nil {
		panic(err)
	}
	keys.AddCommand("create", docKeysCreate, docKeysCreate, &optsKeysCreate{})
	keys.AddCommand("list", docKeysList, docKeysList, &optsKeysList{})
	keys.AddCommand("revoke", docKeysRevoke, docKeysRevoke, &optsKeysRevoke{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
