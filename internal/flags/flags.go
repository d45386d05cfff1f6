/*
 * Copyright (c) 2020. Ant Group. All rights reserved.
 * Copyright (c) 2022. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/shilei-massclouds/lktrace/internal/constant"
)

// Args is urfave/cli's destination struct for lktrace's flags, mirroring
// the teacher's internal/flags.Args shape.
type Args struct {
	Level        int
	HTTPAddr     string
	CacheDir     string
	LogDir       string
	LogLevel     string
	LogToStdout  bool
	PrintVersion bool
}

type Flags struct {
	Args *Args
	F    []cli.Flag
}

func buildFlags(args *Args) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "level",
			Usage:       "render verbosity: 0 raw, 1 grouped, 2 anonymized",
			Value:       constant.DefaultLevel,
			Destination: &args.Level,
		},
		&cli.StringFlag{
			Name:        "http-addr",
			Usage:       "serve /metrics, /healthz and /api/v1/flows on `ADDRESS`; empty disables the server",
			Destination: &args.HTTPAddr,
		},
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "directory for the on-disk render cache, `DIRECTORY`; empty disables the cache",
			Destination: &args.CacheDir,
		},
		&cli.StringFlag{
			Name:        "log-dir",
			Usage:       "directory to store log files, `DIRECTORY`",
			Destination: &args.LogDir,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "logging level, possible values: \"trace\", \"debug\", \"info\", \"warn\", \"error\"",
			Destination: &args.LogLevel,
			EnvVars:     []string{"LOG"},
			DefaultText: constant.DefaultLogLevel,
		},
		&cli.BoolFlag{
			Name:        "log-to-stdout",
			Usage:       "log messages to the console (stderr) rather than to a file",
			Destination: &args.LogToStdout,
		},
		&cli.BoolFlag{
			Name:        "version",
			Usage:       "print version and build information",
			Destination: &args.PrintVersion,
		},
	}
}

func NewFlags() *Flags {
	var args Args
	return &Flags{
		Args: &args,
		F:    buildFlags(&args),
	}
}
