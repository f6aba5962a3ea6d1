package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drblury/ddsc/internal/runtime/native"
)

// Domain selects the DDS domain of a participant. The zero value is the
// default domain configured for the native library.
type Domain struct {
	id  uint32
	set bool
}

// DefaultDomain returns the zero Domain.
func DefaultDomain() Domain { return Domain{} }

// DomainID selects an explicit numeric domain.
func DomainID(n uint32) Domain { return Domain{id: n, set: true} }

// ID returns the explicit domain number; ok is false for the default domain.
func (d Domain) ID() (n uint32, ok bool) { return d.id, d.set }

// IsDefault reports whether d is the default domain.
func (d Domain) IsDefault() bool { return !d.set || native.DomainID(d.id) == native.DomainDefault }

// Raw returns the native domain id, DomainDefault for the default domain.
func (d Domain) Raw() native.DomainID {
	if !d.set {
		return native.DomainDefault
	}
	return native.DomainID(d.id)
}

func (d Domain) String() string {
	if d.IsDefault() {
		return "default"
	}
	return strconv.FormatUint(uint64(d.id), 10)
}

// ParseDomain accepts "", "default" or a decimal domain number.
func ParseDomain(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return DefaultDomain(), nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Domain{}, fmt.Errorf("ddsc: invalid domain %q: %w", s, err)
	}
	return DomainID(uint32(n)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Domain) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Domain) UnmarshalText(text []byte) error {
	parsed, err := ParseDomain(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
