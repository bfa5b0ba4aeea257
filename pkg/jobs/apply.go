package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// Apply returns a copy of cfg with values set by parameter name. Values
// must be JSON-encodable in the shape of the target field.
func Apply(cfg models.Configuration, values map[string]interface{}) (models.Configuration, error) {
	doc, err := toDocument(cfg)
	if err != nil {
		return nil, err
	}

	for name, v := range values {
		if err := setPath(doc, strings.Split(name, "."), v); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
	}
	// The discriminant cannot be changed through parameters.
	doc["type"] = string(cfg.Type())

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}
	return models.UnmarshalConfiguration(data)
}

// Lookup returns the current value of a parameter in cfg, in its decoded
// JSON form (numbers are float64).
func Lookup(cfg models.Configuration, name string) (interface{}, bool) {
	doc, err := toDocument(cfg)
	if err != nil {
		return nil, false
	}

	var cur interface{} = doc
	for _, key := range strings.Split(name, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func toDocument(cfg models.Configuration) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return doc, nil
}

func setPath(doc map[string]interface{}, path []string, v interface{}) error {
	for _, key := range path[:len(path)-1] {
		next, ok := doc[key].(map[string]interface{})
		if !ok {
			if doc[key] != nil {
				return fmt.Errorf("%s is not an object", key)
			}
			next = make(map[string]interface{})
			doc[key] = next
		}
		doc = next
	}
	doc[path[len(path)-1]] = v
	return nil
}
