/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// constants of lktrace CLI config

package constant

const (
	LevelRaw        = 0
	LevelGrouped    = 1
	LevelAnonymized = 2
)

const (
	DefaultLevel    = LevelGrouped
	DefaultLogLevel string = "error"

	DefaultTraceFile = "./lk_trace.data"
	DefaultCacheDir  = "/var/lib/lktrace/cache"

	DefaultHTTPAddr = "127.0.0.1:9469"

	// Log rotation
	DefaultRotateLogMaxSize    = 200 // 200 megabytes
	DefaultRotateLogMaxBackups = 5
	DefaultRotateLogMaxAge     = 0 // days
	DefaultRotateLogLocalTime  = true
	DefaultRotateLogCompress   = true
)
