package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/atomic"

	"github.com/go-basin/basin/core"
)

// EnvLevelVar is the environment variable read by InitEnvLevel.
const EnvLevelVar = "BASIN_LEVEL"

// envRules holds the parsed level directives. Lookup order for a built
// logger is named rule, then the unnamed rule for loggers without a name,
// then the catch-all. The default-logger rule applies only to the
// package-level default logger.
type envRules struct {
	def     *core.Level
	unnamed *core.Level
	named   map[string]core.Level
	all     *core.Level
}

var envLevels atomic.Pointer[envRules]

// InitEnvLevel parses the BASIN_LEVEL environment variable and applies its
// rules to loggers built afterwards. It reports whether the variable was
// set. Loggers given an explicit level through Builder.WithLevel are not
// affected.
//
// The value is a comma-separated list of directives:
//
//	info             level for the default logger
//	server=debug     level for loggers named "server"
//	=warn            level for loggers with no name
//	*=error          level for every logger without a more specific rule
//
// Level names follow core.ParseLevel, so "all" and "off" work too. Two
// directives for the same target are an error.
func InitEnvLevel() (bool, error) {
	return InitEnvLevelFrom(EnvLevelVar)
}

// InitEnvLevelFrom is InitEnvLevel reading the named environment variable
// instead of BASIN_LEVEL.
func InitEnvLevelFrom(key string) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return false, nil
	}
	rules, err := parseEnvLevels(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	envLevels.Store(rules)
	return true, nil
}

func parseEnvLevels(value string) (*envRules, error) {
	rules := &envRules{}
	for _, directive := range strings.Split(value, ",") {
		if err := rules.apply(directive); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func (r *envRules) apply(directive string) error {
	name, levelStr, hasName := strings.Cut(directive, "=")
	if !hasName {
		levelStr = directive
	}
	level, err := core.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("directive %q: %w", directive, err)
	}

	if !hasName {
		if r.def != nil {
			return fmt.Errorf("directive %q: duplicate rule for the default logger", directive)
		}
		r.def = &level
		return nil
	}

	switch name = strings.TrimSpace(name); name {
	case "*":
		if r.all != nil {
			return fmt.Errorf("directive %q: duplicate catch-all rule", directive)
		}
		r.all = &level
	case "":
		if r.unnamed != nil {
			return fmt.Errorf("directive %q: duplicate rule for unnamed loggers", directive)
		}
		r.unnamed = &level
	default:
		if _, dup := r.named[name]; dup {
			return fmt.Errorf("directive %q: duplicate rule for logger %q", directive, name)
		}
		if r.named == nil {
			r.named = make(map[string]core.Level)
		}
		r.named[name] = level
	}
	return nil
}

// envLevelFor resolves the environment level for a logger built with the
// given name.
func envLevelFor(name string) (core.Level, bool) {
	rules := envLevels.Load()
	if rules == nil {
		return 0, false
	}
	if name != "" {
		if level, ok := rules.named[name]; ok {
			return level, true
		}
	} else if rules.unnamed != nil {
		return *rules.unnamed, true
	}
	if rules.all != nil {
		return *rules.all, true
	}
	return 0, false
}

// envLevelForDefault resolves the environment level for the package-level
// default logger.
func envLevelForDefault() (core.Level, bool) {
	rules := envLevels.Load()
	if rules == nil {
		return 0, false
	}
	if rules.def != nil {
		return *rules.def, true
	}
	if rules.all != nil {
		return *rules.all, true
	}
	return 0, false
}
