package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList_Contains(t *testing.T) {
	list := NewAllowList([]string{"hackhub.dev", "Students.Hackhub.Dev"})

	tests := []struct {
		name    string
		email   string
		allowed bool
	}{
		{name: "allowed domain", email: "john@hackhub.dev", allowed: true},
		{name: "upper-cased domain", email: "john@HACKHUB.DEV", allowed: true},
		{name: "list entry normalized at construction", email: "jane@students.hackhub.dev", allowed: true},
		{name: "unknown domain", email: "user@gmail.com", allowed: false},
		{name: "empty string", email: "", allowed: false},
		{name: "no at sign", email: "hackhub.dev", allowed: false},
		{name: "at sign only", email: "@", allowed: false},
		{name: "trailing at sign", email: "john@", allowed: false},
		{name: "multiple at signs use first segment", email: "john@hackhub.dev@gmail.com", allowed: true},
		{name: "multiple at signs with bad first segment", email: "john@gmail.com@hackhub.dev", allowed: false},
		{name: "whitespace", email: "   ", allowed: false},
		{name: "whitespace around domain", email: "john@ hackhub.dev", allowed: false},
		{name: "subdomain is not a match", email: "john@mail.hackhub.dev", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, list.Contains(tt.email))
		})
	}
}

func TestAllowList_Empty(t *testing.T) {
	list := NewAllowList(nil)

	assert.False(t, list.Contains("john@hackhub.dev"))
	assert.False(t, list.Contains(""))
}
