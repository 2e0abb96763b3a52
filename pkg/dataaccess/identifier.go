package dataaccess

// MaxIdentifierLength is the MySQL limit for unquoted identifiers.
const MaxIdentifierLength = 64

// ValidIdentifier reports whether name is lexically safe to splice into SQL
// text as an unquoted identifier. Identifiers cannot be bound as query
// parameters, so this whitelist is the sole injection defense for table
// names interpolated into DESCRIBE and COUNT statements.
//
// Accepted shape: first byte in [A-Za-z_$], remaining bytes in
// [A-Za-z0-9_$], at most 64 bytes. Reserved words are not rejected; only
// lexical shape matters here.
func ValidIdentifier(name string) bool {
	if name == "" || len(name) > MaxIdentifierLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z',
			ch >= 'A' && ch <= 'Z',
			ch == '_', ch == '$':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
