// FILE: lixenwraith/appconfig/decode.go
package appconfig

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeInto writes a nested map of already-coerced values into the
// target struct. Values carry their exact declared types at this point,
// so the decode is a structural copy.
func decodeInto(target any, data map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: TagName,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to decode resolved configuration: %w", err)
	}
	return nil
}
