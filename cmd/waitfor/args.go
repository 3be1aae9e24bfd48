package main

import (
	"net/http"
	"strconv"
	"strings"
)

// multiFlag collects repeated occurrences of a string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

// splitHTTPArg splits the "CODE,URL" form of the -http argument into its
// status code and URL. Without the three-digit prefix the whole argument is
// the URL and the expected status is 200.
func splitHTTPArg(arg string) (int, string) {
	if len(arg) > 4 && arg[3] == ',' {
		if code, err := strconv.Atoi(arg[:3]); err == nil {
			return code, arg[4:]
		}
	}
	return http.StatusOK, arg
}
