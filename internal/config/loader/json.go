package loader

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONLoader loads preference values from a settings.json file.
//
// Settings files written by the host keep full property keys at the top
// level ({"preferences.TrayIconColor": "dark"}); those keys are used
// verbatim. Nested objects are flattened the same way as TOML tables.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads values from the configured path.
func (l *JSONLoader) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return parseJSON(l.path, data)
}

func parseJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("expected an object at top level, got %s", root.Type)}
	}

	values := make(map[string]any)
	walkJSON("", root, values)
	return values, nil
}

func walkJSON(prefix string, obj gjson.Result, dst map[string]any) {
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if prefix != "" {
			key = prefix + "." + key
		}
		if v.IsObject() {
			walkJSON(key, v, dst)
		} else {
			dst[key] = v.Value()
		}
		return true
	})
}
