// Command passkeeper is the vault CLI: open, new, and chpass entry points
// around the vault engine. The interactive table editor, dialog-driven
// prompts, and file picker are external collaborators this binary does
// not implement (out of scope per the core's design); where the design
// calls for "launch editor", this binary prints the decrypted record set
// to stdout as the hand-off point for that collaborator.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/halvard/passkeeper/preader"
	"github.com/halvard/passkeeper/vault"
)

func printRecords(e *vault.Engine) {
	records := e.Records()
	if len(records) == 0 {
		fmt.Println("(vault is empty)")
		return
	}
	for _, r := range records {
		fmt.Printf("%s\t%s\t%s\t%s\n", r.Service, r.Login, r.Password, r.Comment)
	}
}

func openVault(path string) error {
	e := vault.New(path)
	pw, err := (&preader.TerminalReader{}).ReadPassphrase()
	if err != nil {
		return err
	}
	e.SetPassword(pw)
	if err := e.Read(); err != nil {
		return err
	}
	printRecords(e)
	return nil
}

func newVault(path string) error {
	e := vault.New(path)
	pw, err := preader.ReadNewPassphrase(
		&preader.TerminalReader{Prompt: "New master passphrase: "},
		&preader.TerminalReader{Prompt: "New master passphrase (again): "},
	)
	if err != nil {
		return err
	}
	e.SetPassword(pw)
	if err := e.Write(); err != nil {
		return err
	}
	printRecords(e)
	return nil
}

func chpassVault(path string) error {
	e := vault.New(path)
	oldPw, err := (&preader.TerminalReader{}).ReadPassphrase()
	if err != nil {
		return err
	}
	e.SetPassword(oldPw)
	if err := e.Read(); err != nil {
		return err
	}

	newPw, err := preader.ReadNewPassphrase(
		&preader.TerminalReader{Prompt: "New master passphrase: "},
		&preader.TerminalReader{Prompt: "New master passphrase (again): "},
	)
	if err != nil {
		return err
	}
	e.SetPassword(newPw)
	return e.Write()
}

// openOrNew implements the bare `vault <file>` dispatch: open an existing
// file, or treat a nonexistent path as "new".
func openOrNew(path string) error {
	if vault.New(path).Exists() {
		return openVault(path)
	}
	return newVault(path)
}

func isHelpAlias(arg string) bool {
	switch arg {
	case "-?", "/?", "\\?":
		return true
	}
	return false
}

func main() {
	args := os.Args

	if len(args) == 2 && isHelpAlias(args[1]) {
		args = []string{args[0], "help"}
	}

	app := cli.NewApp()
	app.Name = "passkeeper"
	app.Version = "master"
	app.Usage = "a local password vault"

	app.Commands = []cli.Command{
		{
			Name:      "open",
			Usage:     "open an existing vault",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if !c.Args().Present() {
					return errors.New("open requires a file path")
				}
				return openVault(c.Args().First())
			},
		},
		{
			Name:      "new",
			Usage:     "create a new vault, overwriting any existing file",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if !c.Args().Present() {
					return errors.New("new requires a file path")
				}
				return newVault(c.Args().First())
			},
		},
		{
			Name:      "chpass",
			Usage:     "change an existing vault's master passphrase",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if !c.Args().Present() {
					return errors.New("chpass requires a file path")
				}
				return chpassVault(c.Args().First())
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		if !c.Args().Present() {
			return errors.New("no file given; a file picker is not available outside the editor application")
		}
		return openOrNew(c.Args().First())
	}

	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}
