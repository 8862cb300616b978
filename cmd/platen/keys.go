package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/voidshard/platen/pkg/structs"
)

const (
	docKeys       = `Manage API keys (needs --admin-token)`
	docKeysCreate = `Issue a new API key; the key is shown once`
	docKeysList   = `List API keys & their usage`
	docKeysRevoke = `Revoke an API key`
)

type optsKeysCreate struct {
	optsClient

	Owner string `long:"owner" description:"Who the key is for" required:"yes"`
	Max   int64  `long:"max-generations" description:"Number of jobs the key may create" default:"100"`
}

func (c *optsKeysCreate) Execute(args []string) error {
	cl, err := c.client()
	if err != nil {
		return err
	}
	resp, err := cl.CreateKey(&structs.CreateKeyRequest{Owner: c.Owner, MaxGenerations: c.Max})
	if err != nil {
		return err
	}
	return printJson(resp)
}

type optsKeysList struct {
	optsClient
}

func (c *optsKeysList) Execute(args []string) error {
	cl, err := c.client()
	if err != nil {
		return err
	}
	keys, err := cl.Keys()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPREFIX\tOWNER\tUSED\tMAX\tACTIVE\tCREATED")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\t%s\n", k.ID, k.Prefix, k.Owner, k.CurrentGenerations, k.MaxGenerations, k.IsActive, k.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

type optsKeysRevoke struct {
	optsClient

	Args struct {
		KeyID string `positional-arg-name:"key-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *optsKeysRevoke) Execute(args []string) error {
	cl, err := c.client()
	if err != nil {
		return err
	}
	_, err = cl.RevokeKey(c.Args.KeyID)
	if err != nil {
		return err
	}
	fmt.Println("revoked", c.Args.KeyID)
	return nil
}
