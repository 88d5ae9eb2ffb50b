package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	testCases := []struct {
		name     string
		customer Customer
		want     string
	}{
		{
			name:     "Full name",
			customer: Customer{Principal: Principal{Username: "jsmith", FirstName: "John", LastName: "Smith"}, MiddleName: strPtr("Paul")},
			want:     "Smith John Paul",
		},
		{
			name:     "Empty middle name",
			customer: Customer{Principal: Principal{Username: "jsmith", FirstName: "John", LastName: "Smith"}, MiddleName: strPtr("")},
			want:     "Smith John",
		},
		{
			name:     "Only first name",
			customer: Customer{Principal: Principal{Username: "john", FirstName: "John"}},
			want:     "John",
		},
		{
			name:     "No name parts",
			customer: Customer{Principal: Principal{Username: "jdoe"}},
			want:     "jdoe",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.customer.DisplayName())
			assert.Equal(t, tc.want, tc.customer.String())
		})
	}
}

func TestPassword(t *testing.T) {
	c := NewCustomer("jdoe")
	assert.True(t, c.IsActive)
	assert.False(t, c.CheckPassword("anything"), "no password set")

	require.NoError(t, c.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", c.PasswordHash)
	assert.LessOrEqual(t, len(c.PasswordHash), PasswordHashLength)
	assert.True(t, c.CheckPassword("s3cret"))
	assert.False(t, c.CheckPassword("S3cret"))

	err := c.SetPassword("")
	assert.Equal(t, "password", validationField(t, err))

	err = c.SetPassword(strings.Repeat("x", 73))
	assert.Equal(t, "password", validationField(t, err))
	assert.True(t, c.CheckPassword("s3cret"), "failed change keeps the old hash")
}

func TestCustomerValidate(t *testing.T) {
	valid := func() *Customer {
		c := NewCustomer("jdoe")
		c.PasswordHash = "hash"
		return c
	}
	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(c *Customer)
		field  string
	}{
		{"Missing username", func(c *Customer) { c.Username = "" }, "username"},
		{"Missing password", func(c *Customer) { c.PasswordHash = "" }, "password"},
		{"Long username", func(c *Customer) { c.Username = strings.Repeat("u", UsernameLength+1) }, "username"},
		{"Invalid email", func(c *Customer) { c.Email = "not-an-address" }, "email"},
		{"Email with display name", func(c *Customer) { c.Email = "John <j@x.io>" }, "email"},
		{"Email with padding", func(c *Customer) { c.Email = " j@x.io" }, "email"},
		{"Negative age", func(c *Customer) { age := -1; c.Age = &age }, "age"},
		{"Long middle name", func(c *Customer) { c.MiddleName = strPtr(strings.Repeat("m", MiddleNameLength+1)) }, "middle_name"},
		{"Long postal code", func(c *Customer) { c.PostalCode = strPtr(strings.Repeat("1", PostalCodeLength+1)) }, "postal_code"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			assert.Equal(t, tc.field, validationField(t, c.Validate()))
		})
	}

	t.Run("Zero age", func(t *testing.T) {
		c := valid()
		age := 0
		c.Age = &age
		c.Email = "jdoe@example.com"
		assert.NoError(t, c.Validate())
	})
}
