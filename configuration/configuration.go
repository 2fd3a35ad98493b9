// Copyright 2020 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package configuration

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
)

const (
	// DefaultListen is the address the debug server binds when LISTEN is
	// not populated.
	DefaultListen = "127.0.0.1:3030"

	// allFilePermissions specifies anyone can do anything to the file.
	allFilePermissions = 0777

	// ListenEnv is the environment variable read to determine the debug
	// server listen address.
	ListenEnv = "LISTEN"

	// DataDirEnv is the environment variable read to determine where the
	// transaction store keeps its data.
	DataDirEnv = "DATA_DIR"

	// LogLevelEnv is the environment variable read to determine the log
	// level.
	LogLevelEnv = "LOG_LEVEL"
)

// Configuration determines how the debug server runs.
type Configuration struct {
	Listen   string
	DataDir  string
	LogLevel zapcore.Level
}

// LoadConfiguration attempts to create a new Configuration using the ENVs
// in the environment.
func LoadConfiguration() (*Configuration, error) {
	config := &Configuration{
		Listen:   DefaultListen,
		LogLevel: zapcore.InfoLevel,
	}

	if listenValue := os.Getenv(ListenEnv); len(listenValue) > 0 {
		config.Listen = listenValue
	}

	dataDirValue := os.Getenv(DataDirEnv)
	if len(dataDirValue) == 0 {
		return nil, errors.New("DATA_DIR must be populated")
	}
	if err := ensurePathExists(dataDirValue); err != nil {
		return nil, fmt.Errorf("%w: unable to create data directory", err)
	}
	config.DataDir = dataDirValue

	if levelValue := os.Getenv(LogLevelEnv); len(levelValue) > 0 {
		level, err := zapcore.ParseLevel(levelValue)
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid log level", levelValue)
		}
		config.LogLevel = level
	}

	return config, nil
}

// ensurePathExists creates directories along a path if they do not exist.
func ensurePathExists(path string) error {
	if err := os.MkdirAll(path, os.FileMode(allFilePermissions)); err != nil {
		return fmt.Errorf("%w: unable to create %s directory", err, path)
	}

	return nil
}
