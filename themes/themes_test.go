package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "can t login to my account", Preprocess("Can't LOGIN to my account!!! 123"))
	assert.Equal(t, "", Preprocess("12345 !!!"))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single bucket",
			text: "I forgot my password and cannot get in",
			want: "Login & Access Issues",
		},
		{
			name: "multiple buckets in order",
			text: "login failed and the app keeps crashing, called support twice",
			want: "Login & Access Issues, Transaction Problems, Customer Support",
		},
		{
			name: "word boundary respected",
			text: "a pink elephant", // "pin" must not match inside "pink"
			want: OtherTheme,
		},
		{
			name: "no matches",
			text: "wonderful experience overall",
			want: OtherTheme,
		},
		{
			name: "bucket counted once",
			text: "transfer failed, payment failed, transaction failed",
			want: "Transaction Problems",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.text))
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Nil(t, Split(OtherTheme))
	assert.Nil(t, Split(""))
	assert.Equal(t,
		[]string{"Login & Access Issues", "Customer Support"},
		Split("Login & Access Issues, Customer Support"))
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, 7)
	assert.Equal(t, "Login & Access Issues", names[0])
	assert.Equal(t, "Network & Connectivity", names[6])
}
