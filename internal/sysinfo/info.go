package sysinfo

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys of the collected system information, in the order they are reported.
const (
	KeyOSType         = "OS Type"
	KeyOSVersion      = "OS Version"
	KeyOSRelease      = "OS Release"
	KeyMachine        = "Machine"
	KeyArchitecture   = "Architecture"
	KeyUserPrivileges = "User Privileges"
	KeyDistroName     = "Distro Name"
	KeyDistroVersion  = "Distro Version"
	KeyDistroID       = "Distro ID"
	KeyShell          = "Shell"
	KeyShellVersion   = "Shell Version"
	KeyPrivileges     = "Privileges"
)

// Unknown is reported for any value that could not be determined
const Unknown = "Unknown"

// Info is an immutable, ordered snapshot of host facts.
type Info struct {
	keys   []string
	values map[string]string
}

// Get returns the value stored under key
func (i Info) Get(key string) (string, bool) {
	v, ok := i.values[key]
	return v, ok
}

// Keys returns the keys in reporting order
func (i Info) Keys() []string {
	out := make([]string, len(i.keys))
	copy(out, i.keys)
	return out
}

// Map returns a copy of the key/value pairs
func (i Info) Map() map[string]string {
	out := make(map[string]string, len(i.values))
	for k, v := range i.values {
		out[k] = v
	}
	return out
}

// Len returns the number of entries
func (i Info) Len() int {
	return len(i.keys)
}

// String serializes the snapshot as {Key: Value, Key: Value}.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("{")
	for n, k := range i.keys {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(i.values[k])
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON encodes the snapshot as an object in reporting order.
func (i Info) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for n, k := range i.keys {
		if n > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(i.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML encodes the snapshot as a mapping in reporting order.
func (i Info) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range i.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: i.values[k]},
		)
	}
	return node, nil
}

// builder accumulates entries while probing. Setting a key twice keeps its
// original position.
type builder struct {
	keys   []string
	values map[string]string
}

func newBuilder() *builder {
	return &builder{values: make(map[string]string, 16)}
}

func (b *builder) set(key, value string) {
	if value == "" {
		value = Unknown
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

func (b *builder) build() Info {
	return Info{keys: b.keys, values: b.values}
}
