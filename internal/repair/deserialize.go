package repair

import (
	"encoding/json"
	"strings"
)

// Deserialize unwraps JSON text that has been serialized into a string,
// such as `"{\"a\":1}"` copied out of a log line, and returns the inner
// text. One pair of matching outer quotes, double or single, is removed.
//
// The remainder is decoded as a JSON string literal. If that fails, the
// common escapes are replaced by hand instead, so Deserialize always
// returns something.
func Deserialize(src string) string {
	s := strings.TrimSpace(src)
	if len(s) > 0 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		if len(s) == 1 {
			s = ""
		} else {
			s = s[1 : len(s)-1]
		}
	}

	var out string
	if err := json.Unmarshal([]byte(`"`+strings.ReplaceAll(s, `"`, `\"`)+`"`), &out); err == nil {
		return out
	}

	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
