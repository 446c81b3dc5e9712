package accesslog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// newTextWriter renders events as
//
//	[LEVEL] <timestamp> <METHOD> <PATH> - Status: <code> - Duration: <ms>ms
//
// by fixing the console writer's part layout and suppressing the trailing
// field list.
func newTextWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: true,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			fieldTimestamp,
			fieldMethod,
			fieldPath,
			fieldStatus,
			fieldDuration,
		},
		FieldsExclude:         recordFields,
		FormatLevel:           formatLevel,
		FormatPartValueByName: formatPart,
	}
}

func formatLevel(i interface{}) string {
	return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
}

func formatPart(i interface{}, name string) string {
	if i == nil {
		return ""
	}
	switch name {
	case fieldStatus:
		return fmt.Sprintf("- Status: %v", i)
	case fieldDuration:
		var ms int64
		if n, ok := i.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				ms = int64(f)
			}
		}
		return fmt.Sprintf("- Duration: %dms", ms)
	}
	return fmt.Sprint(i)
}
