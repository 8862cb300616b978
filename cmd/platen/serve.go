package main

import (
	"crypto/tls"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/voidshard/platen/internal/core"
	"github.com/voidshard/platen/internal/utils"
	"github.com/voidshard/platen/pkg/api"
	"github.com/voidshard/platen/pkg/api/http/server"
	"github.com/voidshard/platen/pkg/config"
	"github.com/voidshard/platen/pkg/database"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/queue"
	"github.com/voidshard/platen/pkg/ratelimit"
	"github.com/voidshard/platen/pkg/storage"
)

const (
	docServe = `Run the Platen API server & job workers`
)

type optsServe struct {
	optsGeneral
	optsDatabase
	optsQueue
	optsStorage
	optsLimits

	Addr    string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:8080"`
	TLSCert string `long:"cert" env:"CERT" description:"Path to TLS certificate"`
	TLSKey  string `long:"key" env:"KEY" description:"Path to TLS key"`

	StaticDir string `long:"static-dir" env:"STATIC_DIR" default:"" description:"Serve static files from this directory"`

	Pipeline     string `long:"pipeline" env:"PIPELINE_COMMAND" description:"Command run for each job, given --config <path>" default:"platen-pipeline"`
	DefaultsFile string `long:"defaults" env:"CONFIG_DEFAULTS" description:"YAML file replacing the built in pipeline config defaults"`
	OutputRoot   string `long:"output-root" env:"OUTPUT_ROOT" description:"Dir job outputs are written under" default:"output"`
	UploadRoot   string `long:"upload-root" env:"UPLOAD_ROOT" description:"Dir uploaded PDFs are kept under" default:"uploads"`
}

func (c *optsServe) Execute(args []string) error {
	queueTLS, err := utils.TLSConfig(c.QueueTLSCaCert, c.QueueTLSCert, c.QueueTLSKey)
	if err != nil {
		return err
	}
	serverTLS, err := utils.TLSConfig("", c.TLSCert, c.TLSKey)
	if err != nil {
		return err
	}

	limiter, err := c.limiter(queueTLS)
	if err != nil {
		return err
	}
	var global ratelimit.Limiter
	if c.GlobalRPS > 0 {
		global = ratelimit.NewGlobal(c.GlobalRPS, c.GlobalBurst)
	}

	svc, err := api.New(&api.Options{
		Database: &database.Options{URL: c.DatabaseURL},
		Queue:    &queue.Options{URL: c.QueueURL, Workers: c.Workers, TLSConfig: queueTLS, Instance: c.QueueInstance},
		Storage: &storage.Options{
			Bucket:    c.S3Bucket,
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		},
		Config:          &config.Options{DefaultsPath: c.DefaultsFile},
		Manager:         &core.Options{OutputRoot: c.OutputRoot, UploadRoot: c.UploadRoot},
		PipelineCommand: c.Pipeline,
	})
	if err != nil {
		return err
	}

	s := server.NewServer(&server.Options{
		Addr:       c.Addr,
		Static:     c.StaticDir,
		Debug:      c.Debug,
		TLSConfig:  serverTLS,
		RequireKey: c.RequireKey,
		AdminToken: c.AdminToken,
		Limiter:    limiter,
		Global:     global,
	})
	return s.ServeForever(svc)
}

// limiter is redis backed if a redis url is given, else in memory.
// The queue's TLS settings apply to this redis too.
func (c *optsServe) limiter(tlsCfg *tls.Config) (ratelimit.Limiter, error) {
	opts := &ratelimit.Options{Limit: c.RateLimit, Window: c.RateWindow}
	if c.RateRedis == "" {
		return ratelimit.NewFixedWindow(opts), nil
	}

	ropts, err := redis.ParseURL(c.RateRedis)
	if err != nil {
		return nil, fmt.Errorf("%w bad rate limit redis url: %v", ie.ErrConfiguration, err)
	}
	if tlsCfg != nil {
		ropts.TLSConfig = tlsCfg
	}
	log.Println("[Server] rate limits shared via redis", ropts.Addr)
	return ratelimit.NewRedisWindow(redis.NewClient(ropts), opts), nil
}
