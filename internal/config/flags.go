// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// IDFlag holds an inventory id given on the command line.
// It implements the flag.Value interface.
type IDFlag struct {
	ID uuid.UUID
}

// String returns the canonical id form, or "" when unset.
func (f *IDFlag) String() string {
	if f == nil || f.ID == uuid.Nil {
		return ""
	}
	return f.ID.String()
}

// Set parses s as a UUID.
func (f *IDFlag) Set(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("incorrect id %q: %w", s, err)
	}
	f.ID = id
	return nil
}

// ParseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-d cache database path
//	-c/-config json file path with configs
//	-agent-id agent id
//	-root-id inventory root folder id
//	-library-root-id library root folder id
//	-library-owner-id library owner id
//	-inventory-url inventory service capability URL
//	-library-url library service capability URL
//	-fetch-descendents-url legacy descendents capability URL
//	-fetch-items-url legacy items capability URL
//	-request-timeout request timeout (e.g., "180s")
//	-pool-size concurrent inventory service calls
//	-batch-size folders per subset fetch
//	-tick-interval owner loop period (e.g., "10ms")
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("invsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var agentID, rootID, libraryRootID, libraryOwnerID IDFlag
	var databaseDSN string
	var jsonConfigPath string
	var inventoryURL, libraryURL string
	var descendentsURL, libDescendentsURL string
	var itemsURL, libItemsURL string
	var requestTimeout time.Duration
	var poolSize, batchSize int
	var tickInterval time.Duration

	fs.Var(&agentID, "agent-id", "Agent id")
	fs.Var(&rootID, "root-id", "Inventory root folder id")
	fs.Var(&libraryRootID, "library-root-id", "Library root folder id")
	fs.Var(&libraryOwnerID, "library-owner-id", "Library owner id")
	fs.StringVar(&databaseDSN, "d", "", "Cache database path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&inventoryURL, "inventory-url", "", "Inventory service capability URL")
	fs.StringVar(&libraryURL, "library-url", "", "Library service capability URL")
	fs.StringVar(&descendentsURL, "fetch-descendents-url", "", "Legacy descendents capability URL")
	fs.StringVar(&libDescendentsURL, "fetch-lib-descendents-url", "", "Legacy library descendents capability URL")
	fs.StringVar(&itemsURL, "fetch-items-url", "", "Legacy items capability URL")
	fs.StringVar(&libItemsURL, "fetch-lib-items-url", "", "Legacy library items capability URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 180s)")
	fs.IntVar(&poolSize, "pool-size", 0, "Concurrent inventory service calls")
	fs.IntVar(&batchSize, "batch-size", 0, "Folders per subset fetch")
	fs.DurationVar(&tickInterval, "tick-interval", 0, "Owner loop period (e.g., 10ms)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AgentID:        agentID.String(),
			RootID:         rootID.String(),
			LibraryRootID:  libraryRootID.String(),
			LibraryOwnerID: libraryOwnerID.String(),
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			InventoryURL:           inventoryURL,
			LibraryURL:             libraryURL,
			FetchDescendentsURL:    descendentsURL,
			FetchLibDescendentsURL: libDescendentsURL,
			FetchItemsURL:          itemsURL,
			FetchLibItemsURL:       libItemsURL,
			RequestTimeout:         requestTimeout,
		},
		Workers: Workers{
			PoolSize:     poolSize,
			BatchSize:    batchSize,
			TickInterval: tickInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
