package openapi

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "camelCase",
			in:   "getUserInfo",
			want: "get_user_info",
		},
		{
			name: "leading underscore and hyphen",
			in:   "_getUser-Info",
			want: "get_user_info",
		},
		{
			name: "spaces",
			in:   "get User Info",
			want: "get_user_info",
		},
		{
			name: "underscore and hyphen runs",
			in:   "get__user__--info",
			want: "get_user_info",
		},
		{
			name: "PascalCase",
			in:   "GetUserInfo",
			want: "get_user_info",
		},
		{
			name: "acronym boundary",
			in:   "XMLParser",
			want: "xml_parser",
		},
		{
			name: "synthesized from verb and path",
			in:   "get_/users/{id}",
			want: "get_users_id",
		},
		{
			name: "leading digits stripped",
			in:   "123listItems",
			want: "list_items",
		},
		{
			name: "trailing underscores stripped",
			in:   "listItems__",
			want: "list_items",
		},
		{
			name: "already normal",
			in:   "list_items",
			want: "list_items",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}

			// Normalization must be idempotent.
			if again := Normalize(got); again != got {
				t.Errorf("Normalize(%q) = %q, not idempotent", got, again)
			}
		})
	}
}
