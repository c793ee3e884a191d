// Command randgen is a thin CLI shim over the generators package, dumping
// freshly generated values to stdout for inspection — PassKeeper's
// counterpart to the teacher's small second binary living beside its main
// CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/halvard/passkeeper/entropy"
	"github.com/halvard/passkeeper/generators"
)

type kind int

const (
	kindName kind = iota
	kindPIN
	kindPassword
	kindBytes
)

func parseKind(s string) (kind, error) {
	s = strings.ToLower(s)
	switch {
	case s == "":
		return 0, fmt.Errorf("randgen: kind must not be empty")
	case strings.Contains("name", s):
		return kindName, nil
	case strings.Contains("pin", s):
		return kindPIN, nil
	case strings.Contains("password", s):
		return kindPassword, nil
	case strings.Contains("bytes", s):
		return kindBytes, nil
	default:
		return 0, fmt.Errorf("randgen: unrecognized kind %q (want a substring of name|pin|pass|byte)", s)
	}
}

// parseLengthRange parses either a single integer ("12") or a "min-max"
// range, returning (min, max).
func parseLengthRange(s string, defaultMin, defaultMax int) (int, int, error) {
	if s == "" {
		return defaultMin, defaultMax, nil
	}
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		min, err := strconv.Atoi(lo)
		if err != nil {
			return 0, 0, fmt.Errorf("randgen: invalid length range %q: %w", s, err)
		}
		max, err := strconv.Atoi(hi)
		if err != nil {
			return 0, 0, fmt.Errorf("randgen: invalid length range %q: %w", s, err)
		}
		return min, max, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("randgen: invalid length %q: %w", s, err)
	}
	return n, n, nil
}

func generate(pool *entropy.Pool, k kind, min, max int) (string, error) {
	switch k {
	case kindName:
		return generators.MakeName(pool, min, max)
	case kindPIN:
		return generators.MakePIN(pool, min)
	case kindPassword:
		return generators.MakePassword(pool, min)
	case kindBytes:
		return generators.MakeHexBlock(pool, min)
	default:
		return "", fmt.Errorf("randgen: unhandled kind")
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: randgen <count> <kind> [length]")
	}

	count, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || count < 0 {
		return fmt.Errorf("randgen: invalid count %q", c.Args().Get(0))
	}

	k, err := parseKind(c.Args().Get(1))
	if err != nil {
		return err
	}

	var defMin, defMax int
	switch k {
	case kindName:
		defMin, defMax = 2, 5
	case kindPIN:
		defMin, defMax = 4, 4
	case kindPassword:
		defMin, defMax = 12, 12
	case kindBytes:
		defMin, defMax = 16, 16
	}

	min, max, err := parseLengthRange(c.Args().Get(2), defMin, defMax)
	if err != nil {
		return err
	}
	if k != kindName {
		// Every non-name kind takes a single length, not a min/max pair;
		// a range collapses to its upper bound.
		min = max
	}

	for i := 0; i < count; i++ {
		value, err := generate(entropy.Default, k, min, max)
		if err != nil {
			return err
		}
		fmt.Println(value)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "randgen"
	app.Version = "master"
	app.Usage = "dump freshly generated vault values to stdout"
	app.ArgsUsage = "<count> <kind> [length]"
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
