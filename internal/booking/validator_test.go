package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateForm(t *testing.T) {
	cases := []struct {
		name string
		form ContactForm
		want FieldErrors
	}{
		{
			name: "valid without email",
			form: ContactForm{ClientName: "Jo", Phone: "5551234567"},
			want: FieldErrors{},
		},
		{
			name: "valid with email",
			form: ContactForm{ClientName: "Maria Garcia", Phone: "15551234567", Email: "maria@example.com"},
			want: FieldErrors{},
		},
		{
			name: "missing name",
			form: ContactForm{ClientName: "  ", Phone: "5551234567"},
			want: FieldErrors{"clientName": "Name is required"},
		},
		{
			name: "name too short",
			form: ContactForm{ClientName: "J", Phone: "5551234567"},
			want: FieldErrors{"clientName": "Name must be at least 2 characters"},
		},
		{
			// "Ä" is two bytes but one character.
			name: "single multibyte rune name too short",
			form: ContactForm{ClientName: "Ä", Phone: "5551234567"},
			want: FieldErrors{"clientName": "Name must be at least 2 characters"},
		},
		{
			name: "two multibyte runes pass",
			form: ContactForm{ClientName: "Äö", Phone: "5551234567"},
			want: FieldErrors{},
		},
		{
			name: "missing phone",
			form: ContactForm{ClientName: "Jo", Phone: ""},
			want: FieldErrors{"phone": "Phone is required"},
		},
		{
			name: "phone too short",
			form: ContactForm{ClientName: "Jo", Phone: "123456789"},
			want: FieldErrors{"phone": "Phone number must be at least 10 digits"},
		},
		{
			name: "phone with formatting rejected raw",
			form: ContactForm{ClientName: "Jo", Phone: "(555) 123-4567"},
			want: FieldErrors{"phone": "Phone number must be at least 10 digits"},
		},
		{
			name: "bad email",
			form: ContactForm{ClientName: "Jo", Phone: "5551234567", Email: "not-an-email"},
			want: FieldErrors{"email": "Invalid email address"},
		},
		{
			name: "empty email allowed",
			form: ContactForm{ClientName: "Jo", Phone: "5551234567", Email: ""},
			want: FieldErrors{},
		},
		{
			name: "everything wrong",
			form: ContactForm{ClientName: "", Phone: "123", Email: "bad"},
			want: FieldErrors{
				"clientName": "Name is required",
				"phone":      "Phone number must be at least 10 digits",
				"email":      "Invalid email address",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateForm(tc.form)
			require.Equal(t, tc.want, got)
			require.Equal(t, len(tc.want) == 0, got.Valid())
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	require.Equal(t, "15551234567", NormalizePhone("+1 555.123.4567"))
	require.Equal(t, "5551234567", NormalizePhone("5551234567"))
	require.Equal(t, "555x123", NormalizePhone("555x123"))
}

func TestNormalizedPhonePassesValidation(t *testing.T) {
	form := ContactForm{ClientName: "Jo", Phone: NormalizePhone("(555) 123-4567")}
	require.True(t, ValidateForm(form).Valid())
}
