package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"models.User", "ModelsUser"},
		{"models.User#collection", "ModelsUserCollection"},
		{"billing/invoice-line", "BillingInvoiceLine"},
		{"Response[User]", "Response_User"},
		{"user_profile", "UserProfile"},
		{"User", "User"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FromKey(tt.key))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Response_User", Sanitize("Response[User]"))
	assert.Equal(t, "Map_string_int", Sanitize("Map[string, int]"))
	assert.Equal(t, "plain", Sanitize("plain"))
}

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "UserProfile", ToPascalCase("user_profile"))
	assert.Equal(t, "APIKey", ToPascalCase("API-key"))
	assert.Equal(t, "", ToPascalCase(""))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_profile", ToSnakeCase("UserProfile"))
	assert.Equal(t, "user_profile", ToSnakeCase("user.profile"))
	assert.Equal(t, "", ToSnakeCase(""))
}
