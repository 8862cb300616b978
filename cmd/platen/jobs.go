package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/voidshard/platen/pkg/api/http/client"
)

const (
	docSubmit = `Upload a PDF & start a job for it`
	docStatus = `Show a job's status`
)

func (c *optsClient) client() (*client.Client, error) {
	cl, err := client.New(c.Server)
	if err != nil {
		return nil, err
	}
	return cl.WithKey(c.APIKey).WithAdminToken(c.AdminToken), nil
}

func printJson(obj interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}

type optsSubmit struct {
	optsClient

	Label  string `long:"label" description:"Display label; defaults to the file name"`
	Config string `long:"config" description:"JSON object of config overrides"`

	Args struct {
		PDF string `positional-arg-name:"pdf" required:"yes"`
	} `positional-args:"yes"`
}

func (c *optsSubmit) Execute(args []string) error {
	overrides := map[string]interface{}{}
	if c.Config != "" {
		err := json.Unmarshal([]byte(c.Config), &overrides)
		if err != nil {
			return fmt.Errorf("bad --config: %v", err)
		}
	}

	cl, err := c.client()
	if err != nil {
		return err
	}
	summary, err := cl.CreateJob(c.Args.PDF, c.Label, overrides)
	if err != nil {
		return err
	}
	return printJson(summary)
}

type optsStatus struct {
	optsClient

	Args struct {
		JobID string `positional-arg-name:"job-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *optsStatus) Execute(args []string) error {
	cl, err := c.client()
	if err != nil {
		return err
	}
	st, err := cl.JobStatus(c.Args.JobID)
	if err != nil {
		return err
	}
	return printJson(st)
}
