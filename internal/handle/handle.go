// Package handle provides a syntactic representation of Handle System
// identifiers and their common serializations.
package handle

import (
	"fmt"
	"strings"
)

// DefaultProxyBase is the canonical handle proxy service.
const DefaultProxyBase = "http://hdl.handle.net/"

// Handle is a prefix/suffix pair, e.g. "1903.1/1673".
type Handle struct {
	Prefix string
	Suffix string
}

// Parse attempts to read value as a handle. Accepted forms:
//
//	hdl:{prefix}/{suffix}
//	info:hdl/{prefix}/{suffix}
//	{proxyBase}{prefix}/{suffix}
//	{prefix}/{suffix}
//
// An empty proxyBase falls back to DefaultProxyBase.
func Parse(value string, proxyBase string) (Handle, error) {
	if proxyBase == "" {
		proxyBase = DefaultProxyBase
	}
	switch {
	case value == "":
		return Handle{}, fmt.Errorf("cannot parse an empty string as a handle")
	case strings.HasPrefix(value, "hdl:"):
		return split(value[len("hdl:"):])
	case strings.HasPrefix(value, "info:hdl/"):
		return split(value[len("info:hdl/"):])
	case strings.HasPrefix(value, proxyBase):
		return split(value[len(proxyBase):])
	case strings.Contains(value, "/"):
		return split(value)
	}
	return Handle{}, fmt.Errorf("%q does not look like a handle", value)
}

func split(value string) (Handle, error) {
	prefix, suffix, _ := strings.Cut(value, "/")
	if strings.TrimSpace(prefix) == "" {
		return Handle{}, fmt.Errorf("handle prefix cannot be empty")
	}
	if strings.TrimSpace(suffix) == "" {
		return Handle{}, fmt.Errorf("handle suffix cannot be empty")
	}
	return Handle{Prefix: prefix, Suffix: suffix}, nil
}

// String formats the handle as {prefix}/{suffix}.
func (h Handle) String() string {
	return h.Prefix + "/" + h.Suffix
}

// HdlURI formats the handle as hdl:{prefix}/{suffix}.
func (h Handle) HdlURI() string {
	return "hdl:" + h.String()
}

// InfoURI formats the handle as info:hdl/{prefix}/{suffix}.
func (h Handle) InfoURI() string {
	return "info:hdl/" + h.String()
}

// ProxyURL formats the handle as a resolvable URL under proxyBase.
// An empty proxyBase falls back to DefaultProxyBase.
func (h Handle) ProxyURL(proxyBase string) string {
	if proxyBase == "" {
		proxyBase = DefaultProxyBase
	}
	return proxyBase + h.String()
}
