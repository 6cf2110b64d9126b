package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/matzehuels/pagesmith/pkg/errors"
)

// Reserved record keys that never belong to a payload.
const (
	keyID     = "id"
	keyType   = "type"
	keyStyles = "styles"
)

// NewPayload returns a zero payload for t. It is the single exhaustive
// mapping from tag to payload type.
func NewPayload(t Type) (Payload, error) {
	switch t {
	case TypeHeader:
		return &Header{}, nil
	case TypeText:
		return &Text{}, nil
	case TypeProfile:
		return &Profile{}, nil
	case TypeGallery:
		return &Gallery{}, nil
	case TypeExperience:
		return &Experience{}, nil
	case TypeProjects:
		return &Projects{}, nil
	case TypeServices:
		return &Services{}, nil
	case TypeReviews:
		return &Reviews{}, nil
	case TypePricing:
		return &Pricing{}, nil
	case TypeNavigation:
		return &Navigation{}, nil
	case TypeSkills:
		return &Skills{}, nil
	case TypeContact:
		return &Contact{}, nil
	case TypeSpacer:
		return &Spacer{}, nil
	case TypeDivider:
		return &Divider{}, nil
	case TypeEmbed:
		return &Embed{}, nil
	case TypeFooter:
		return &Footer{}, nil
	}
	return nil, errors.UnknownType(string(t))
}

// NewRecord builds a record with the given id and payload.
func NewRecord(id string, p Payload) Record {
	return Record{ID: id, Type: p.ComponentType(), Payload: p}
}

// PayloadAs returns the record payload as T.
func PayloadAs[T Payload](r Record) (T, bool) {
	p, ok := r.Payload.(T)
	return p, ok
}

// MarshalJSON writes the record as a flat object: reserved keys, payload
// fields and preserved extras.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+8)
	for k, v := range r.Extra {
		out[k] = v
	}

	if r.Payload != nil {
		data, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode %s payload", r.Type)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode %s payload", r.Type)
		}
		for k, v := range fields {
			out[k] = v
		}
	}

	id, _ := json.Marshal(r.ID)
	typ, _ := json.Marshal(string(r.Type))
	out[keyID] = id
	out[keyType] = typ
	if len(r.Styles) > 0 {
		styles, err := json.Marshal(r.Styles)
		if err != nil {
			return nil, err
		}
		out[keyStyles] = styles
	} else {
		delete(out, keyStyles)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a record. Unknown type tags are accepted: the record
// keeps all its fields in Extra and has a nil Payload.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode component")
	}

	var rec Record
	if v, ok := raw[keyID]; ok {
		if err := json.Unmarshal(v, &rec.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode component id")
		}
	}
	if rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "component without id")
	}
	var typ string
	if v, ok := raw[keyType]; ok {
		if err := json.Unmarshal(v, &typ); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode type of %s", rec.ID)
		}
	}
	if typ == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "component %s without type", rec.ID)
	}
	rec.Type = Type(typ)

	if v, ok := raw[keyStyles]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &rec.Styles); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode styles of %s", rec.ID)
		}
		if len(rec.Styles) == 0 {
			rec.Styles = nil
		}
	}

	known := map[string]bool{}
	if p, err := NewPayload(rec.Type); err == nil {
		if err := json.Unmarshal(data, p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s payload of %s", rec.Type, rec.ID)
		}
		rec.Payload = p
		known = fieldNames(p)
	}

	for k, v := range raw {
		if k == keyID || k == keyType || k == keyStyles || known[k] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]json.RawMessage)
		}
		rec.Extra[k] = append(json.RawMessage(nil), v...)
	}

	*r = rec
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

var fieldCache sync.Map // reflect.Type -> map[string]bool

// fieldNames returns the JSON keys declared by a payload struct.
func fieldNames(p Payload) map[string]bool {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
	fieldCache.Store(t, names)
	return names
}

// Clone returns a deep copy of r. The copy shares nothing with r.
func (r Record) Clone() Record {
	out := Record{ID: r.ID, Type: r.Type, Styles: r.Styles.Clone()}
	if len(r.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	if r.Payload != nil {
		out.Payload = clonePayload(r.Payload)
	}
	return out
}

// clonePayload copies a payload through its JSON form; payloads are plain
// data so the encoding is exact.
func clonePayload(p Payload) Payload {
	fresh, err := NewPayload(p.ComponentType())
	if err != nil {
		return p
	}
	data, err := json.Marshal(p)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, fresh); err != nil {
		return p
	}
	return fresh
}

// WithID returns a deep copy of r carrying a different id.
func (r Record) WithID(id string) Record {
	out := r.Clone()
	out.ID = id
	return out
}

// Merge shallow-merges fields into a copy of r at the JSON field level.
// The id and type keys are ignored; a nil value deletes the field.
func (r Record) Merge(fields map[string]any) (Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return r, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return r, err
	}
	for k, v := range fields {
		if k == keyID || k == keyType {
			continue
		}
		if v == nil {
			delete(raw, k)
			continue
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return r, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode field %q", k)
		}
		raw[k] = enc
	}
	merged, err := json.Marshal(raw)
	if err != nil {
		return r, err
	}
	var out Record
	if err := json.Unmarshal(merged, &out); err != nil {
		return r, errors.Wrap(errors.ErrCodeValidation, err, "update %s", r.ID)
	}
	return out, nil
}

// Equal reports whether two records serialize identically.
func (r Record) Equal(other Record) bool {
	a, errA := json.Marshal(r)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}
