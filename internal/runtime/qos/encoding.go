package qos

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/drblury/ddsc/internal/runtime/duration"
	"github.com/drblury/ddsc/internal/runtime/jsoncodec"
)

// Tagged document forms:
//
//	history:     {"type": "keep_last", "n": 5} | {"type": "keep_all"}
//	reliability: {"type": "reliable", "max_blocking_time": "100ms"} | {"type": "best_effort"}
//	durability:  "volatile" | "transient_local" | "transient" | "persistent"
const (
	typeKeepLast   = "keep_last"
	typeKeepAll    = "keep_all"
	typeBestEffort = "best_effort"
	typeReliable   = "reliable"
)

type historyDoc struct {
	Type string `json:"type" yaml:"type"`
	N    *int   `json:"n,omitempty" yaml:"n,omitempty"`
}

func (h History) doc() historyDoc {
	if h.IsKeepAll() {
		return historyDoc{Type: typeKeepAll}
	}
	n := h.depth
	return historyDoc{Type: typeKeepLast, N: &n}
}

func (d historyDoc) history() (History, error) {
	switch d.Type {
	case typeKeepLast:
		if d.N == nil {
			return History{}, fmt.Errorf("ddsc: history %s requires n", typeKeepLast)
		}
		return KeepLast(*d.N), nil
	case typeKeepAll:
		if d.N != nil {
			return History{}, fmt.Errorf("ddsc: history %s does not take n", typeKeepAll)
		}
		return KeepAll(), nil
	default:
		return History{}, fmt.Errorf("ddsc: unknown history type %q", d.Type)
	}
}

func (h History) MarshalJSON() ([]byte, error) { return jsoncodec.Marshal(h.doc()) }

func (h *History) UnmarshalJSON(data []byte) error {
	var d historyDoc
	if err := jsoncodec.UnmarshalStrict(data, &d); err != nil {
		return err
	}
	parsed, err := d.history()
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h History) MarshalYAML() (any, error) { return h.doc(), nil }

func (h *History) UnmarshalYAML(node *yaml.Node) error {
	var d historyDoc
	if err := decodeNodeStrict(node, &d, "type", "n"); err != nil {
		return err
	}
	parsed, err := d.history()
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

type reliabilityDoc struct {
	Type            string             `json:"type" yaml:"type"`
	MaxBlockingTime *duration.Duration `json:"max_blocking_time,omitempty" yaml:"max_blocking_time,omitempty"`
}

func (r Reliability) doc() reliabilityDoc {
	if !r.IsReliable() {
		return reliabilityDoc{Type: typeBestEffort}
	}
	d := r.maxBlocking
	return reliabilityDoc{Type: typeReliable, MaxBlockingTime: &d}
}

func (d reliabilityDoc) reliability() (Reliability, error) {
	switch d.Type {
	case typeBestEffort:
		if d.MaxBlockingTime != nil {
			return Reliability{}, fmt.Errorf("ddsc: reliability %s does not take max_blocking_time", typeBestEffort)
		}
		return BestEffort(), nil
	case typeReliable:
		if d.MaxBlockingTime == nil {
			return Reliability{}, fmt.Errorf("ddsc: reliability %s requires max_blocking_time", typeReliable)
		}
		return Reliable(*d.MaxBlockingTime), nil
	default:
		return Reliability{}, fmt.Errorf("ddsc: unknown reliability type %q", d.Type)
	}
}

func (r Reliability) MarshalJSON() ([]byte, error) { return jsoncodec.Marshal(r.doc()) }

func (r *Reliability) UnmarshalJSON(data []byte) error {
	var d reliabilityDoc
	if err := jsoncodec.UnmarshalStrict(data, &d); err != nil {
		return err
	}
	parsed, err := d.reliability()
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Reliability) MarshalYAML() (any, error) { return r.doc(), nil }

func (r *Reliability) UnmarshalYAML(node *yaml.Node) error {
	var d reliabilityDoc
	if err := decodeNodeStrict(node, &d, "type", "max_blocking_time"); err != nil {
		return err
	}
	parsed, err := d.reliability()
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Durability) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("ddsc: invalid durability %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Durability) UnmarshalText(text []byte) error {
	parsed, err := ParseDurability(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// decodeNodeStrict decodes a mapping node into out, rejecting keys outside
// fields.
func decodeNodeStrict(node *yaml.Node, out any, fields ...string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("ddsc: line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i]; !slices.Contains(fields, key.Value) {
			return fmt.Errorf("ddsc: line %d: unknown field %q", key.Line, key.Value)
		}
	}
	return node.Decode(out)
}
