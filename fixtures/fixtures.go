// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - logging setup for a test run
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the work directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestStorage - open a fresh database under the work directory
//
// call after SetupTestLogger
func SetupTestStorage() error {
	return storage.Initialise(filepath.Join(dir, "hefesto.leveldb"))
}

// TeardownTestStorage - close the database
func TeardownTestStorage() {
	storage.Finalise()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
