// Package model defines the serialized shape of a pagesmith page.
//
// A page is an ordered list of component records. Each [Record] is a tagged
// union: the [Type] tag selects which payload struct is valid and which
// registry entry renders it. The set of tags is closed; [NewPayload] is the
// single exhaustive switch that maps a tag to its payload, so adding a type
// is a one-place change checked by the compiler and the tests.
//
// # Serialization
//
// Records serialize to flat JSON objects:
//
//	{"id": "0190...", "type": "spacer", "height": "2rem", "styles": {"margin": "0"}}
//
// Fields the payload does not know are kept in [Record.Extra] and written
// back unchanged, so documents produced by newer editors survive a round
// trip through older ones. Records whose type tag is unknown decode without
// error (all fields land in Extra); the failure surfaces only when a
// renderer is looked up for them.
//
// # Schema versions
//
// Documents carry a schemaVersion. [Migrate] upgrades older documents before
// decoding; see migrate.go for the individual steps.
package model
