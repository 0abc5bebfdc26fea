package handler

import (
	"regexp"
)

var negativeNumber = regexp.MustCompile(`^-\d*\.?\d+([eE][-+]?\d+)?$`)

// flagsWithValue are the flags of get and preview that consume the next argument.
var flagsWithValue = map[string]bool{
	"--vars":   true,
	"--years":  true,
	"--start":  true,
	"--end":    true,
	"--format": true,
}

// withPositionalArgs moves the positional arguments of get and preview behind "--"
// so a negative coordinate such as -84.29 is not parsed as a shorthand flag.
func withPositionalArgs(args []string) []string {
	cmdIndex := -1
	for i, a := range args {
		if a == "--" {
			return args
		}
		if cmdIndex < 0 && (a == "get" || a == "preview") {
			cmdIndex = i
		}
	}
	if cmdIndex < 0 {
		return args
	}

	var flags, positional []string
	for i := cmdIndex + 1; i < len(args); i++ {
		a := args[i]
		switch {
		case negativeNumber.MatchString(a):
			positional = append(positional, a)
		case len(a) > 1 && a[0] == '-':
			flags = append(flags, a)
			if flagsWithValue[a] {
				// let the flag parser report the missing value
				if i+1 >= len(args) {
					return args
				}
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, a)
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:cmdIndex+1]...)
	out = append(out, flags...)
	out = append(out, "--")
	out = append(out, positional...)

	return out
}
