package userservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sushihentaime/inkwell/internal/common"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "valid email", email: "user@example.com", valid: true},
		{name: "valid email with plus", email: "user+tag@example.com", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "missing domain", email: "user@", valid: false},
		{name: "missing at sign", email: "userexample.com", valid: false},
		{name: "missing tld", email: "user@example", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "short password", password: "pw1", valid: true},
		{name: "long password", password: strings.Repeat("a", 72), valid: true},
		{name: "empty", password: "", valid: false},
		{name: "beyond bcrypt limit", password: strings.Repeat("a", 73), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateSessionToken(t *testing.T) {
	v := common.NewValidator()
	validateSessionToken(v, "7f9c2ba4-e88f-11ee-a32b-0242ac120002")
	assert.True(t, v.Valid())

	v = common.NewValidator()
	validateSessionToken(v, "garbage")
	assert.False(t, v.Valid())

	v = common.NewValidator()
	validateSessionToken(v, "")
	assert.False(t, v.Valid())
}
