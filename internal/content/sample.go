package content

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

func sampleNames() []string {
	return []string{"Alex", "Sam", "Jordan", "Taylor", "Casey", "Morgan"}
}

// RenderSample fills an item's {a} {b} {c} {d} {result} and {name}
// placeholders with rolled values so a template can be previewed. Numbers
// are drawn from the item's range, or 1..10 for items without one. A
// placeholder right of "=" shows the value of the left-hand side. Unknown
// placeholders are left as they are.
func RenderSample(item Item, roller dice.Roller) (string, error) {
	if roller == nil {
		return "", errors.InvalidArgument("roller is required")
	}

	bounds := NumberRange{Min: 1, Max: 10}
	if r, ok := item.(Ranged); ok {
		bounds = r.NumberRange()
	}
	if bounds.Max < bounds.Min {
		bounds.Min, bounds.Max = bounds.Max, bounds.Min
	}

	tmpl := item.ItemTemplate()
	values := make(map[string]int, 5)
	for _, key := range []string{"a", "b", "c", "d"} {
		n, err := rollBetween(roller, bounds.Min, bounds.Max)
		if err != nil {
			return "", err
		}
		values[key] = n
	}

	kind := strings.TrimSuffix(item.ItemType(), "_word")
	if kind == "subtraction" && values["a"] < values["b"] {
		values["a"], values["b"] = values["b"], values["a"]
	}

	lhs, rhs, isEquation := strings.Cut(tmpl, "=")
	total := sampleTotal(kind, lhs, values)
	if kind == "division" {
		values["result"] = values["a"] * values["b"]
	} else {
		values["result"] = total
	}
	if key := placeholderKey(rhs); isEquation && key != "" {
		values[key] = total
	}

	names := sampleNames()
	pick, err := roller.Roll(len(names))
	if err != nil {
		return "", errors.Wrap(err, "failed to roll sample name")
	}

	replacer := strings.NewReplacer(
		"{a}", strconv.Itoa(values["a"]),
		"{b}", strconv.Itoa(values["b"]),
		"{c}", strconv.Itoa(values["c"]),
		"{d}", strconv.Itoa(values["d"]),
		"{result}", strconv.Itoa(values["result"]),
		"{name}", names[(pick-1+len(names))%len(names)],
	)
	return replacer.Replace(tmpl), nil
}

// sampleTotal evaluates the left-hand side of a template. A "?" stands in
// for whichever operand it replaces, so the total is the same either way.
func sampleTotal(kind, lhs string, v map[string]int) int {
	uses := func(key string) bool { return strings.Contains(lhs, "{"+key+"}") }

	switch kind {
	case "subtraction":
		diff := v["a"] - v["b"]
		for _, key := range []string{"c", "d"} {
			if uses(key) {
				diff -= v[key]
			}
		}
		return diff
	case "multiplication":
		product := v["a"] * v["b"]
		if uses("c") {
			if strings.Contains(lhs, "+") {
				return product + v["c"]
			}
			product *= v["c"]
		}
		return product
	case "division":
		quotient := v["a"]
		if uses("c") {
			quotient += v["c"]
		}
		return quotient
	default:
		sum := v["a"] + v["b"]
		for _, key := range []string{"c", "d"} {
			if uses(key) {
				sum += v[key]
			}
		}
		return sum
	}
}

// placeholderKey returns "x" when s is exactly "{x}" give or take spaces
func placeholderKey(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return ""
	}
	return s[1 : len(s)-1]
}

func rollBetween(roller dice.Roller, lo, hi int) (int, error) {
	if lo == hi {
		return lo, nil
	}
	n, err := roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll sample value")
	}
	return lo + n - 1, nil
}
