package config

import (
	"flag"
	"os"
	"strings"
)

// filterArgs keeps only the known flags (and their separate values) so this
// package can parse os.Args without tripping over flags owned by the host
// application. Both "-f value" and "-f=value" forms are recognized.
func filterArgs(args []string, known ...string) []string {
	keep := make(map[string]bool, len(known))
	for _, k := range known {
		keep[k] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if keep[name] {
				out = append(out, arg)
			}
			continue
		}
		if !keep[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// jsonConfigPath returns the value of -c / -config, or "" when absent.
func jsonConfigPath() string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(filterArgs(os.Args[1:], "-c", "-config"))

	return path
}
