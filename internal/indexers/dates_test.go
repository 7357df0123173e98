package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFields(t *testing.T) {
	cases := []struct {
		name   string
		edtf   string
		wantDT string
	}{
		{"plain year", "1923", "1923"},
		{"year month", "1923-05", "1923-05"},
		{"full date", "1923-05-17", "1923-05-17"},
		{"interval", "2000-11-01/2014-12-01", "[2000-11-01 TO 2014-12-01]"},
		{"open start", "../1985-04", "[* TO 1985-04]"},
		{"southern autumn", "2001-30", "[2001-12-01 TO 2001-12-31]"},
		{"unspecified month", "1992-XX", "[1992-01-01 TO 1992-12-31]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ic := &Context{Doc: Doc{"item__date__edtf": tc.edtf}}
			fields, err := DateFields(context.Background(), ic)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDT, fields["item__date__dt"])
			assert.Equal(t, false, fields["item__date__dt_is_uncertain"])
			assert.Equal(t, false, fields["item__date__dt_is_approximate"])
			assert.Equal(t, false, fields["item__date__dt_is_uncertain_and_approximate"])
		})
	}
}

func TestDateFieldsQualifiers(t *testing.T) {
	ic := &Context{Doc: Doc{"item__date__edtf": "1923~"}}
	fields, err := DateFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, "1923", fields["item__date__dt"])
	assert.Equal(t, true, fields["item__date__dt_is_approximate"])
	assert.Equal(t, false, fields["item__date__dt_is_uncertain"])
}

func TestDateFieldsProcessesEveryEDTFField(t *testing.T) {
	ic := &Context{Doc: Doc{
		"item__date__edtf":       "1923",
		"letter__date__edtf":     "1924-02",
		"item__other_field__str": "ignored",
	}}
	fields, err := DateFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, "1923", fields["item__date__dt"])
	assert.Equal(t, "1924-02", fields["letter__date__dt"])
}

func TestDateFieldsSkipsBadValues(t *testing.T) {
	ic := &Context{Doc: Doc{
		"item__date__edtf":   "not a date",
		"letter__date__edtf": "Y1E5",
	}}
	fields, err := DateFields(context.Background(), ic)
	require.NoError(t, err)
	assert.NotContains(t, fields, "item__date__dt")
	assert.NotContains(t, fields, "letter__date__dt")
}
