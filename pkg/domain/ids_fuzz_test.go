//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseLicenseID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseLicenseID(f *testing.F) {
	f.Add("")
	f.Add("55")
	f.Add("0")
	f.Add("-1")
	f.Add("not-a-number")
	f.Add("'; DROP TABLE licenses;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("9223372036854775808")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseLicenseID(input)
		if err != nil {
			if id != 0 {
				t.Errorf("error result carried non-zero id %d", id)
			}
			return
		}
		if id.IsNil() {
			t.Errorf("accepted non-positive id %d from %q", id, input)
		}
		roundTrip, err := ParseLicenseID(id.String())
		if err != nil {
			t.Errorf("valid id failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed id value")
		}
	})
}
