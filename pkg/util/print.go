package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TylerBrock/colorjson"
)

func Recast(from, to interface{}) error {
	switch v := from.(type) {
	case []byte:
		return json.Unmarshal(v, to)
	default:
		buf, err := json.Marshal(from)
		if err != nil {
			return err
		}

		return json.Unmarshal(buf, to)
	}
}

func PrintJSON(obj interface{}) {
	_ = FprintJSON(os.Stdout, obj)
}

// FprintJSON writes obj as colored, indented JSON. Slices are wrapped under
// an "items" key because the formatter only accepts objects.
func FprintJSON(w io.Writer, obj interface{}) error {
	var data interface{}
	if err := Recast(obj, &data); err != nil {
		return err
	}

	mapData, ok := data.(map[string]interface{})
	if !ok {
		mapData = map[string]interface{}{"items": data}
	}

	f := colorjson.NewFormatter()
	f.Indent = 4
	s, err := f.Marshal(mapData)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(s))
	return err
}
