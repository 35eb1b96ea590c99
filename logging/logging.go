// Package logging adapts third-party loggers to siggn.Logger.
//
// Arguments follow the log/slog convention: alternating keys and values, or
// slog.Attr values. A key without a value is logged under "!BADKEY".
package logging

import (
	"fmt"
	"log/slog"
)

const badKey = "!BADKEY"

type field struct {
	key string
	val any
}

func fields(args []any) []field {
	out := make([]field, 0, (len(args)+1)/2)
	for len(args) > 0 {
		switch k := args[0].(type) {
		case slog.Attr:
			out = append(out, field{k.Key, k.Value.Any()})
			args = args[1:]
		case string:
			if len(args) == 1 {
				out = append(out, field{badKey, k})
				return out
			}
			out = append(out, field{k, args[1]})
			args = args[2:]
		default:
			out = append(out, field{badKey, fmt.Sprint(k)})
			args = args[1:]
		}
	}
	return out
}
