package config

import (
	"errors"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration reads either a Go duration string ("30m") or a number of
// nanoseconds.
type Duration struct{ time.Duration }

// [Duration] implements [yaml.Marshaler]
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	switch value := v.(type) {
	case int:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}
