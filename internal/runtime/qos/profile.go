package qos

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/jsoncodec"
)

// Profile is a serializable set of policies. Nil fields are left untouched
// by Apply. A nil Partitions leaves the list alone; an empty one clears it.
type Profile struct {
	History     *History     `json:"history,omitempty" yaml:"history,omitempty"`
	Durability  *Durability  `json:"durability,omitempty" yaml:"durability,omitempty"`
	Reliability *Reliability `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	Partitions  []string     `json:"partitions" yaml:"partitions"`
}

// profileDoc is the encoded form of a Profile. Partitions is a pointer so an
// empty list is written as [] and only a nil list is omitted.
type profileDoc struct {
	History     *History     `json:"history,omitempty" yaml:"history,omitempty"`
	Durability  *Durability  `json:"durability,omitempty" yaml:"durability,omitempty"`
	Reliability *Reliability `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	Partitions  *[]string    `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}

func (p Profile) doc() profileDoc {
	d := profileDoc{History: p.History, Durability: p.Durability, Reliability: p.Reliability}
	if p.Partitions != nil {
		partitions := p.Partitions
		d.Partitions = &partitions
	}
	return d
}

func (p Profile) MarshalJSON() ([]byte, error) { return jsoncodec.Marshal(p.doc()) }

func (p Profile) MarshalYAML() (any, error) { return p.doc(), nil }

// Apply sets every policy the profile carries on q and returns q.Err().
func (p Profile) Apply(q *QoS) error {
	if p.History != nil {
		q.History(*p.History)
	}
	if p.Durability != nil {
		q.Durability(*p.Durability)
	}
	if p.Reliability != nil {
		q.Reliability(*p.Reliability)
	}
	if p.Partitions != nil {
		q.Partitions(p.Partitions)
	}
	return q.Err()
}

// Equal compares two profiles field by field.
func (p Profile) Equal(other Profile) bool {
	return equalPtr(p.History, other.History) &&
		equalPtr(p.Durability, other.Durability) &&
		equalPtr(p.Reliability, other.Reliability) &&
		(p.Partitions == nil) == (other.Partitions == nil) &&
		slices.Equal(p.Partitions, other.Partitions)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ProfileOf reads every policy set on q. Unset policies stay nil.
func ProfileOf(q *QoS) (Profile, error) {
	var (
		p   Profile
		err error
	)
	if p.History, err = readPolicy(q.GetHistory); err != nil {
		return Profile{}, err
	}
	if p.Durability, err = readPolicy(q.GetDurability); err != nil {
		return Profile{}, err
	}
	if p.Reliability, err = readPolicy(q.GetReliability); err != nil {
		return Profile{}, err
	}
	partitions, err := readPolicy(q.GetPartitions)
	if err != nil {
		return Profile{}, err
	}
	if partitions != nil {
		p.Partitions = append([]string{}, (*partitions)...)
	}
	return p, nil
}

func readPolicy[T any](get func() (T, error)) (*T, error) {
	v, err := get()
	switch {
	case err == nil:
		return &v, nil
	case errors.Is(err, errspkg.ErrPolicyNotSet):
		return nil, nil
	default:
		return nil, err
	}
}

// Profiles is a set of named profiles, as stored in a profile file.
type Profiles map[string]Profile

// Get returns the named profile or an error wrapping ErrProfileNotFound.
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", errspkg.ErrProfileNotFound, name)
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadProfiles reads a .json, .yaml or .yml file mapping profile names to
// profiles. Unknown fields are rejected.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ddsc: read qos profiles: %w", err)
	}
	profiles, err := ParseProfiles(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("ddsc: %s: %w", path, err)
	}
	return profiles, nil
}

// ParseProfiles decodes a profile document. format is a file extension such
// as ".json" or "yaml"; the leading dot is optional.
func ParseProfiles(data []byte, format string) (Profiles, error) {
	profiles := Profiles{}
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if err := jsoncodec.UnmarshalStrict(data, &profiles); err != nil {
			return nil, fmt.Errorf("decode qos profiles: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&profiles); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode qos profiles: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported qos profile format %q", format)
	}
	return profiles, nil
}
