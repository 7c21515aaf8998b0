package dnssd

import "errors"

var (
	errServiceNameMissing = errors.New("mDNS: service name must not be empty")

	errQueryTooLarge = errors.New("mDNS: encoded query exceeds the maximum packet size")

	errInvalidQueryInterval = errors.New("mDNS: query interval must be greater than zero")

	errInvalidTTL = errors.New("mDNS: TTL must be greater than zero")
)
