package interpreter

import (
	"fmt"
	"regexp"
	"strings"

	"stagescript/pkg/stagetypes"
)

// resolveMatch picks the destination stage for a match transition.
// An EMPTY arm transitions without reading input and must be the only arm.
// Otherwise one trimmed input line is matched against arms in declaration
// order; the first match wins.
func (i *Interpreter) resolveMatch(arms []stagetypes.MatchArm) (string, error) {
	for _, arm := range arms {
		if arm.Pattern == stagetypes.EmptyPattern {
			if len(arms) != 1 {
				return "", i.runtimeError("match pattern 'EMPTY' must be the only pattern")
			}
			return arm.NextStage, nil
		}
	}

	line, err := i.reader.ReadLine()
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	input := strings.TrimSpace(line)

	for _, arm := range arms {
		re, err := i.compilePattern(arm.Pattern)
		if err != nil {
			return "", i.runtimeError(fmt.Sprintf("invalid match pattern %s: %v", arm.Pattern, err))
		}
		if re.MatchString(input) {
			i.logger.Debug("pattern matched", "pattern", arm.Pattern, "input", input, "stage", arm.NextStage)
			return arm.NextStage, nil
		}
	}
	return "", i.runtimeError("no match pattern")
}

// compilePattern strips the pattern's surrounding quotes, anchors it, and
// compiles it case-insensitively. Arms are immutable after parse, so
// compiled patterns are cached by their raw source text.
func (i *Interpreter) compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := i.patterns[pattern]; ok {
		return re, nil
	}
	stripped := strings.Trim(strings.TrimSpace(pattern), `"`)
	re, err := regexp.Compile("(?i)^" + stripped + "$")
	if err != nil {
		return nil, err
	}
	i.patterns[pattern] = re
	return re, nil
}

// formatOutput resolves a speak template. A template fully wrapped in
// quotes with no '+' concatenation is returned verbatim with the quotes
// stripped; anything else is evaluated as a concatenation expression.
func (i *Interpreter) formatOutput(template string) (string, error) {
	if strings.HasPrefix(template, `"`) && strings.HasSuffix(template, `"`) {
		if strings.Contains(template, "+") {
			return i.evalExpression(template)
		}
		return strings.Trim(template, `"`), nil
	}
	return i.evalExpression(template)
}

// evalExpression splits the template on '+' and concatenates the parts:
// quote-wrapped parts are literals, bare parts are variable lookups. An
// undefined variable aborts the run before anything is printed.
func (i *Interpreter) evalExpression(template string) (string, error) {
	var out strings.Builder
	for _, part := range strings.Split(template, "+") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, `"`) && strings.HasSuffix(part, `"`) {
			out.WriteString(strings.Trim(part, `"`))
			continue
		}
		value, ok := i.ctx.Get(part)
		if !ok {
			return "", i.runtimeError(fmt.Sprintf("undefined variable '%s'", part))
		}
		out.WriteString(value.Stringify())
	}
	return out.String(), nil
}
