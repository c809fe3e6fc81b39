package validators

import "testing"

func TestEmailDomain(t *testing.T) {
	tests := map[string]string{
		"ana@Example.COM":   "example.com",
		"a.b@sub.shop.test": "sub.shop.test",
		"no-at-sign":        "",
		"@example.com":      "",
		"ana@":              "",
		"ana@localhost":     "",
	}
	for in, want := range tests {
		if got := emailDomain(in); got != want {
			t.Errorf("emailDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "plainaddress", "ana@"} {
		if IsEmailDomainValid(in) {
			t.Errorf("IsEmailDomainValid(%q) = true", in)
		}
	}
}
