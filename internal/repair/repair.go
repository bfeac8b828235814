// Package repair rewrites almost-JSON text into JSON.
//
// The heuristic pass is an ordered list of textual rules. It fixes the
// mistakes people make when writing JSON by hand (trailing commas, bare
// keys, single quotes, JavaScript-only literals) and nothing else. The
// rules are not aware of string boundaries, so a single quote inside a
// string value is rewritten too.
package repair

import (
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/parser"
)

// Rule is a single named rewrite. Matches reports whether Rewrite would
// change the text.
type Rule struct {
	Name    string
	Matches func(string) bool
	Rewrite func(string) string
}

func regexRule(name, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name:    name,
		Matches: re.MatchString,
		Rewrite: func(s string) string { return re.ReplaceAllString(s, repl) },
	}
}

// Rules are applied in this order on every pass.
var Rules = []Rule{
	{
		Name:    "trim-space",
		Matches: func(s string) bool { return s != strings.TrimSpace(s) },
		Rewrite: strings.TrimSpace,
	},
	regexRule("trailing-comma", `,(\s*[}\]])`, "$1"),
	{
		Name:    "single-quote",
		Matches: func(s string) bool { return strings.Contains(s, "'") },
		Rewrite: func(s string) string { return strings.ReplaceAll(s, "'", `"`) },
	},
	regexRule("unquoted-key", `([{,])\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*:`, `${1}"${2}":`),
	regexRule("undefined", `:\s*undefined\b`, ": null"),
	regexRule("nan", `:\s*NaN\b`, ": null"),
	regexRule("control-chars", `[\x00-\x08\x0B\x0C\x0E-\x1F]`, ""),
}

// maxPasses bounds the fixpoint loop in Run. Each pass only ever removes
// text or quotes a key, so real inputs settle in two or three.
const maxPasses = 8

// Run applies Rules until the text stops changing and returns the result
// together with the names of the rules that fired, in firing order.
// Running the rules to a fixpoint makes Run idempotent: deleting a control
// character can expose a trailing comma, for example.
func Run(src string) (string, []string) {
	var fired []string
	out := src
	for pass := 0; pass < maxPasses; pass++ {
		before := out
		for _, r := range Rules {
			if r.Matches(out) {
				out = r.Rewrite(out)
				fired = append(fired, r.Name)
			}
		}
		if out == before {
			break
		}
	}
	return out, fired
}

// Repair applies the heuristic rules to src. It never fails; the result
// is not guaranteed to be valid JSON, and an unchanged result means no rule
// applied.
func Repair(src string) string {
	out, _ := Run(src)
	return out
}

// Deep runs the heuristic rules and, if the text still does not parse,
// hands it to a full tolerant JSON repairer. The error is non-nil only
// when neither stage produces valid JSON.
func Deep(src string) (string, error) {
	out := Repair(src)
	if parser.Check(out) == nil {
		return out, nil
	}

	fixed, err := jsonrepair.RepairJSON(out)
	if err != nil {
		return out, errors.NewRepairError("could not repair input", err)
	}
	if err := parser.Check(fixed); err != nil {
		return out, errors.NewRepairError("repaired text is still not valid JSON", err)
	}
	return fixed, nil
}
