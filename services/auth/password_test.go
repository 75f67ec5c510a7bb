package auth

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		dob      string
		wantErr  error
	}{
		{"valid", "Str0ng&Secure!", "", nil},
		{"too short", "Ab1!short", "", ErrPasswordTooShort},
		{"no uppercase", "all-lower-123!", "", ErrPasswordNoUpper},
		{"no lowercase", "ALL-UPPER-123!", "", ErrPasswordNoLower},
		{"no digit", "NoDigitsHere!!", "", ErrPasswordNoDigit},
		{"no special", "NoSpecials1234", "", ErrPasswordNoSpecial},
		{"iso dob embedded", "Xx1990-04-15!aB3", "1990-04-15", ErrPasswordHasDOB},
		{"compact dob embedded", "Xx19900415!aB3z", "1990-04-15", ErrPasswordHasDOB},
		{"day-first dob embedded", "Xx15041990!aB3z", "1990-04-15", ErrPasswordHasDOB},
		{"dob of other account ok", "Xx19900415!aB3z", "1991-05-16", nil},
		{"valid with dob", "Str0ng&Secure!", "1990-04-15", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password, tc.dob)
			if err != tc.wantErr {
				t.Fatalf("ValidatePassword(%q, %q) = %v, want %v", tc.password, tc.dob, err, tc.wantErr)
			}
		})
	}
}
