package token

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// claimSet is a JSON object that keeps keys in insertion order.
// Setting an existing key replaces its value in place.
type claimSet struct {
	keys   []string
	values map[string]any
}

func newClaimSet() *claimSet {
	return &claimSet{values: make(map[string]any)}
}

func (c *claimSet) set(key string, value any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// merge applies extensions in sorted key order so output is deterministic.
func (c *claimSet) merge(ext map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(ext)) {
		c.set(k, ext[k])
	}
}

func (c *claimSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCompact(k)
		if err != nil {
			return nil, err
		}
		vb, err := marshalCompact(c.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCompact encodes v without HTML escaping, matching JSON.stringify.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
