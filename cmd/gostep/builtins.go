package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fxsml/gostep"
)

// cliStep is the shape every built-in takes on the command line: string
// input, string extra, string output.
type cliStep = gostep.Step[string, string, string]

type builtin struct {
	name    string
	summary string
	binary  bool
	build   func() (cliStep, error)
}

var builtins = map[string]builtin{
	"double": {
		name:    "double",
		summary: "multiply an integer by two",
		build: func() (cliStep, error) {
			return unaryInt(func(n int) int { return n * 2 })
		},
	},
	"negate": {
		name:    "negate",
		summary: "negate an integer",
		build: func() (cliStep, error) {
			return unaryInt(func(n int) int { return -n })
		},
	},
	"upper": {
		name:    "upper",
		summary: "convert the input to upper case",
		build: func() (cliStep, error) {
			return gostep.NewFunc[string](gostep.Pure(strings.ToUpper))
		},
	},
	"add": {
		name:    "add",
		summary: "add the integer extra to an integer",
		binary:  true,
		build: func() (cliStep, error) {
			return gostep.NewBiFunc(func(_ context.Context, in, extra string) (string, error) {
				x, err := strconv.Atoi(in)
				if err != nil {
					return "", err
				}
				y, err := strconv.Atoi(extra)
				if err != nil {
					return "", fmt.Errorf("extra: %w", err)
				}
				return strconv.Itoa(x + y), nil
			})
		},
	},
	"repeat": {
		name:    "repeat",
		summary: "repeat the input extra times",
		binary:  true,
		build: func() (cliStep, error) {
			return gostep.NewBiFunc(func(_ context.Context, in, extra string) (string, error) {
				n, err := strconv.Atoi(extra)
				if err != nil {
					return "", fmt.Errorf("extra: %w", err)
				}
				// strings.Repeat panics on a negative count.
				return strings.Repeat(in, n), nil
			})
		},
	},
	"sleep": {
		name:    "sleep",
		summary: "wait for the input duration, then echo it",
		build: func() (cliStep, error) {
			return gostep.NewFunc[string](func(ctx context.Context, in string) (string, error) {
				d, err := time.ParseDuration(in)
				if err != nil {
					return "", err
				}
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(d):
					return in, nil
				}
			})
		},
	},
	"fail": {
		name:    "fail",
		summary: "always fail with \"boom\"",
		build: func() (cliStep, error) {
			return gostep.NewFunc[string](func(context.Context, string) (string, error) {
				return "", errors.New("boom")
			})
		},
	},
	"panic": {
		name:    "panic",
		summary: "always panic with \"boom\"",
		build: func() (cliStep, error) {
			return gostep.NewFunc[string](gostep.Pure(func(string) string { panic("boom") }))
		},
	},
}

func unaryInt(fn func(int) int) (cliStep, error) {
	return gostep.NewFunc[string](func(_ context.Context, in string) (string, error) {
		n, err := strconv.Atoi(in)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(fn(n)), nil
	})
}

func lookupBuiltin(name string) (builtin, error) {
	b, ok := builtins[name]
	if !ok {
		return builtin{}, fmt.Errorf("unknown step %q (see 'gostep list')", name)
	}
	return b, nil
}

func sortedBuiltins() []builtin {
	list := make([]builtin, 0, len(builtins))
	for _, b := range builtins {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	return list
}
