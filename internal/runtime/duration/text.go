package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	InvalidText  = "invalid"
	InfiniteText = "infinite"
)

var (
	// ErrNotFinite is returned when a finite value is required.
	ErrNotFinite = errors.New("duration: value is not finite")

	errSentinelRange = errors.New("value collides with the infinite sentinel")
	errSign          = errors.New("only a single leading '-' is allowed")
)

// ParseError reports text that is neither "invalid", "infinite" nor a
// duration string.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("duration: unable to parse duration %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var units = []struct {
	size   int64
	suffix string
}{
	{int64(time.Hour), "h"},
	{int64(time.Minute), "m"},
	{int64(time.Second), "s"},
	{int64(time.Millisecond), "ms"},
	{int64(time.Microsecond), "us"},
	{1, "ns"},
}

// formatNanos renders a non-negative count as "1h30m", "500ms" or "0s". Days
// stay folded into hours so the output parses with time.ParseDuration.
func formatNanos(n int64) string {
	if n == 0 {
		return "0s"
	}
	var b strings.Builder
	for _, u := range units {
		if q := n / u.size; q > 0 {
			b.WriteString(strconv.FormatInt(q, 10))
			b.WriteString(u.suffix)
			n -= q * u.size
		}
	}
	return b.String()
}

// String returns "invalid", "infinite" or the compact duration text, with a
// leading '-' for negative values.
func (d Duration) String() string {
	switch d.state {
	case stateInvalid:
		return InvalidText
	case stateInfinite:
		return InfiniteText
	}
	if d.nanos < 0 {
		return "-" + formatNanos(-d.nanos)
	}
	return formatNanos(d.nanos)
}

// Parse reads the text form produced by String. Space separated units such as
// "1h 30m" are accepted as well.
func Parse(text string) (Duration, error) {
	switch text {
	case InvalidText:
		return Invalid(), nil
	case InfiniteText:
		return Infinite(), nil
	}

	body, negative := strings.CutPrefix(text, "-")
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		return Duration{}, &ParseError{Text: text, Err: errSign}
	}

	std, err := time.ParseDuration(strings.ReplaceAll(body, " ", ""))
	if err != nil {
		return Duration{}, &ParseError{Text: text, Err: err}
	}
	n := int64(std)
	// -MaxInt64 is the most negative finite value; only +MaxInt64 is infinite.
	if !negative && n == math.MaxInt64 {
		return Duration{}, &ParseError{Text: text, Err: errSentinelRange}
	}
	if negative {
		n = -n
	}
	return Duration{nanos: n}, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(text string) Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalText implements encoding.TextMarshaler, so JSON and YAML encoders
// emit the text form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ToProto converts a finite duration into a protobuf Duration.
func (d Duration) ToProto() (*durationpb.Duration, error) {
	std, ok := d.Std()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFinite, d)
	}
	return durationpb.New(std), nil
}

// FromProto converts a protobuf Duration into a finite duration. Values
// outside the int64 nanosecond range are rejected rather than clamped onto a
// sentinel.
func FromProto(p *durationpb.Duration) (Duration, error) {
	if err := p.CheckValid(); err != nil {
		return Duration{}, fmt.Errorf("duration: invalid protobuf duration: %w", err)
	}
	std := p.AsDuration()
	if int64(std) == math.MaxInt64 || int64(std) == math.MinInt64 {
		return Duration{}, fmt.Errorf("duration: protobuf duration %v is out of range", p)
	}
	return FromStd(std), nil
}
