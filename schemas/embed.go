// Package schemas embeds the JSON Schemas shipped with the repository.
package schemas

import _ "embed"

// ApplicationDraft is the JSON Schema for draft input files.
//
//go:embed application_draft.schema.json
var ApplicationDraft string
