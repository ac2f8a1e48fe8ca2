// Package flagx lets several components read their own flags from one command
// line without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// flagName strips one or two leading dashes. ok is false for non-flags.
func flagName(arg string) (name string, ok bool) {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return "", false
	}
	name = strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}

// FilterArgs keeps only the flags named in names, with their values, in their
// original order. Names are given without dashes and match both -name and
// --name, in "-name value" and "-name=value" form. A following argument is
// taken as the value unless it starts with a dash.
func FilterArgs(args []string, names []string) []string {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[strings.TrimLeft(n, "-")] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, ok := flagName(arg)
		if !ok {
			continue
		}
		if _, ok := allowed[name]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// StringFlag returns the value of a string flag known under any of names, or
// def when it is absent. The last occurrence wins.
func StringFlag(args []string, def string, names ...string) string {
	value := def
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, def, "")
	}
	_ = fs.Parse(FilterArgs(args, names))
	return value
}

// ConfigPath returns the JSON config file given with -c or -config.
func ConfigPath(args []string) string {
	return StringFlag(args, "", "c", "config")
}
