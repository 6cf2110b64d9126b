package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/pagesmith/pkg/errors"
)

// SchemaVersion is the version written by this package.
//
// Version history:
//
//	1  unversioned documents: numeric style values (borderRadius: 8) and
//	   gallery images stored as bare URL strings
//	2  string style values, image objects {url, alt, caption}
const SchemaVersion = 2

// migration upgrades one component object in place from version-1 to version.
type migration func(component map[string]any)

var migrations = map[int]migration{
	2: migrateV2,
}

// Migrate upgrades a serialized document or website envelope to
// SchemaVersion. Documents without a schemaVersion are treated as version 1.
// Documents from a newer version are rejected rather than guessed at.
func Migrate(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var env map[string]any
	if err := dec.Decode(&env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	version := 1
	if v, ok := env["schemaVersion"]; ok {
		n, ok := v.(json.Number)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "schemaVersion must be a number")
		}
		i, err := n.Int64()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "schemaVersion")
		}
		version = int(i)
	}
	switch {
	case version == SchemaVersion:
		return data, nil
	case version > SchemaVersion:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"document schema version %d is newer than supported version %d", version, SchemaVersion)
	case version < 1:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "invalid schema version %d", version)
	}

	components, _ := env["components"].([]any)
	for v := version + 1; v <= SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		for _, c := range components {
			if obj, ok := c.(map[string]any); ok {
				step(obj)
			}
		}
	}
	env["schemaVersion"] = SchemaVersion
	return json.Marshal(env)
}

// migrateV2 converts numeric style values to pixel strings and bare image
// URLs to image objects.
func migrateV2(c map[string]any) {
	if styles, ok := c[keyStyles].(map[string]any); ok {
		for k, v := range styles {
			if n, ok := v.(json.Number); ok {
				if n.String() == "0" {
					styles[k] = "0"
				} else {
					styles[k] = fmt.Sprintf("%spx", n.String())
				}
			}
		}
	}
	if c[keyType] == string(TypeGallery) {
		if images, ok := c["images"].([]any); ok {
			for i, img := range images {
				if url, ok := img.(string); ok {
					images[i] = map[string]any{"url": url}
				}
			}
		}
	}
}
