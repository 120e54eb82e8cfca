// Package migrations contiene el esquema SQL versionado (golang-migrate).
package migrations

import "embed"

// FS archivos NNNNNN_nombre.up.sql / .down.sql embebidos en el binario.
//
//go:embed *.sql
var FS embed.FS
