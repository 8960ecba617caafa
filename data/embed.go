// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the SQL migrations and the seed fixtures so the
// binaries carry their own schema and reference data.
package data

import (
	"embed"
)

// Migrations holds the golang-migrate SQL files under "migrations/".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside [Migrations] holding the SQL files.
const MigrationsDir = "migrations"

// Seed is the JSON document loaded by cmd/seed.
//
//go:embed seed/seed.json
var Seed []byte
