// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"errors"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/veilmark/veilmarkd/constants"
)

// basic defaults, directories and files are relative to the
// DataDirectory from the configuration file
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabaseName     = "veilmark.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "veilmarkd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DatabaseType - location of the chain state database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// ProofingType - proving pool sizing
type ProofingType struct {
	Workers int `gluamapper:"workers" json:"workers"`
	Rate    int `gluamapper:"rate" json:"rate"`
}

// Configuration - the full configuration tree
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Proofing ProofingType         `gluamapper:"proofing" json:"proofing"`
	Logging  logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabaseName,
		},

		Proofing: ProofingType{
			Workers: constants.DefaultProofWorkers,
			Rate:    constants.DefaultProofRate,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default
	switch options.DataDirectory {
	case "":
		return nil, errors.New("data_directory cannot be empty")
	case ".":
		options.DataDirectory = dataDirectory
	default:
		options.DataDirectory, err = filepath.Abs(filepath.Clean(options.DataDirectory))
		if nil != err {
			return nil, err
		}
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	if options.Proofing.Workers <= 0 {
		options.Proofing.Workers = constants.DefaultProofWorkers
	}
	if options.Proofing.Rate <= 0 {
		options.Proofing.Rate = constants.DefaultProofRate
	}

	return options, nil
}

// ensureAbsolute - if not absolute, prepend the directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
