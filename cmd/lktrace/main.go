/*
 * Copyright (c) 2020. Ant Group. All rights reserved.
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/shilei-massclouds/lktrace/internal/constant"
	"github.com/shilei-massclouds/lktrace/internal/flags"
	"github.com/shilei-massclouds/lktrace/internal/logging"
	"github.com/shilei-massclouds/lktrace/pkg/analyzer"
	"github.com/shilei-massclouds/lktrace/pkg/cache"
	"github.com/shilei-massclouds/lktrace/pkg/errdefs"
	"github.com/shilei-massclouds/lktrace/pkg/httpapi"
	"github.com/shilei-massclouds/lktrace/pkg/metrics"
	"github.com/shilei-massclouds/lktrace/version"
)

func main() {
	flagSet := flags.NewFlags()
	app := &cli.App{
		Name:        "lktrace",
		Usage:       "offline analyzer for RISC-V kernel syscall trace streams",
		Version:     version.Version,
		Flags:       flagSet.F,
		HideVersion: true,
		ArgsUsage:   "[trace-file ...]",
		Action: func(c *cli.Context) error {
			args := flagSet.Args
			if args.PrintVersion {
				fmt.Println("Version:    ", version.Version)
				fmt.Println("Revision:   ", version.Revision)
				fmt.Println("Go version: ", version.GoVersion)
				fmt.Println("Build time: ", version.BuildTimestamp)
				return nil
			}

			logLevel := args.LogLevel
			if logLevel == "" {
				logLevel = constant.DefaultLogLevel
			}
			logRotateArgs := &logging.RotateLogArgs{
				RotateLogMaxSize:    constant.DefaultRotateLogMaxSize,
				RotateLogMaxBackups: constant.DefaultRotateLogMaxBackups,
				RotateLogMaxAge:     constant.DefaultRotateLogMaxAge,
				RotateLogLocalTime:  constant.DefaultRotateLogLocalTime,
				RotateLogCompress:   constant.DefaultRotateLogCompress,
			}
			if err := logging.SetUp(logLevel, args.LogToStdout, args.LogDir, logRotateArgs); err != nil {
				return errors.Wrap(err, "failed to set up logger")
			}

			paths := c.Args().Slice()
			if len(paths) == 0 {
				paths = []string{constant.DefaultTraceFile}
			}

			var renderCache *cache.Cache
			if args.CacheDir != "" {
				var err error
				renderCache, err = cache.Open(args.CacheDir)
				if err != nil {
					return errors.Wrap(err, "open render cache")
				}
				defer renderCache.Close()
			}

			summary := httpapi.NewRegistry()
			if args.HTTPAddr != "" {
				router := httpapi.NewRouter(summary)
				srv := &http.Server{Addr: args.HTTPAddr, Handler: router}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logrus.WithError(err).Error("http server exited")
					}
				}()
			}

			opts := analyzer.Options{
				Level:     args.Level,
				Cache:     renderCache,
				Collector: metrics.Default,
				Summary:   summary,
			}

			logrus.Infof("lktrace starting. PID %d Version %s, level %d, %d file(s)",
				os.Getpid(), version.Version, args.Level, len(paths))

			if len(paths) == 1 {
				return analyzer.Analyze(os.Stdout, paths[0], opts)
			}
			return analyzer.Batch(os.Stdout, paths, opts)
		},
	}

	if err := app.Run(os.Args); err != nil {
		if errdefs.IsCorruptStream(err) {
			logrus.WithError(err).Error("trace stream corrupted, partial output emitted")
		} else {
			logrus.WithError(err).Error("lktrace failed")
		}
		os.Exit(1)
	}
}
