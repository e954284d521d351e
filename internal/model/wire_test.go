package model

import (
	"encoding/json"
	"testing"
)

// The storage endpoints serve these rows directly, so their field names are
// the API contract and must stay camelCase like the auth responses.
func wireKeys(t *testing.T, v interface{}) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatal(err)
	}
	return keys
}

func TestStoredRecordsSerializeCamelCase(t *testing.T) {
	cases := []struct {
		value interface{}
		want  []string
	}{
		{Property{}, []string{"id", "ownerId", "zipCode", "totalArea", "isActive", "createdAt"}},
		{Unit{}, []string{"id", "propertyId", "unitNumber", "bedrooms", "status"}},
		{Lease{}, []string{"id", "unitId", "tenantId", "startDate", "monthlyRent", "securityDeposit", "isRenewable"}},
		{Contact{}, []string{"id", "name", "email", "comments", "createdAt"}},
	}
	for _, tc := range cases {
		keys := wireKeys(t, tc.value)
		for _, want := range tc.want {
			if _, ok := keys[want]; !ok {
				t.Errorf("%T: missing wire field %q (got %v)", tc.value, want, keyNames(keys))
			}
		}
		for k := range keys {
			if k[0] >= 'A' && k[0] <= 'Z' {
				t.Errorf("%T: PascalCase field %q leaked onto the wire", tc.value, k)
			}
		}
	}
}

func keyNames(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
