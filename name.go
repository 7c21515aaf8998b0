// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import "strings"

// fqdn returns name in its fully qualified form, with the root label dot
// appended. Names that already carry the dot are returned unchanged.
func fqdn(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}

	return name + "."
}

// trimRoot strips the trailing root label dot, turning the wire form of a
// name back into its presentation form.
func trimRoot(name string) string {
	return strings.TrimSuffix(name, ".")
}

// equalNames reports whether two DNS names refer to the same name. DNS
// names compare without regard to ASCII case (RFC 1035 §2.3.3), and the
// root label dot is optional on either side.
func equalNames(a, b string) bool {
	return strings.EqualFold(trimRoot(a), trimRoot(b))
}
