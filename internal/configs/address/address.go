package address

import (
	"errors"
	"net"
	"strings"
)

// Supported scheme constants.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// ErrUnsupportedScheme is returned when an address uses an unknown or unsupported scheme.
var ErrUnsupportedScheme = errors.New("unsupported address scheme")

// Address holds the scheme and actual network address.
type Address struct {
	Scheme  string
	Address string
}

// New parses the full input address and returns separated scheme/address.
// Default scheme is "http" if not specified.
func New(input string) (Address, error) {
	scheme := SchemeHTTP
	addr := input

	if i := strings.Index(addr, "://"); i >= 0 {
		scheme = strings.ToLower(addr[:i])
		addr = addr[i+3:]
	}

	switch scheme {
	case SchemeHTTP, SchemeHTTPS:
	default:
		return Address{}, ErrUnsupportedScheme
	}

	return Address{
		Scheme:  scheme,
		Address: strings.TrimSuffix(addr, "/"),
	}, nil
}

// URL returns the base URL for dialing the address. A listen address
// without a host, such as ":5000", is dialed on localhost.
func (a Address) URL() string {
	host := a.Address
	if h, port, err := net.SplitHostPort(host); err == nil && (h == "" || h == "0.0.0.0" || h == "::") {
		host = net.JoinHostPort("localhost", port)
	}
	return a.Scheme + "://" + host
}
