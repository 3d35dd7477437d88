package normalize_test

import (
	"testing"

	"github.com/goldrec/goldrec/pkg/normalize"
	"github.com/goldrec/goldrec/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmail(t *testing.T) {
	tests := []struct {
		msg   string
		in    string
		clean *string
		valid bool
	}{
		{"empty", "", nil, false},
		{"whitespace only", "   \t", nil, false},
		{"valid mixed case", "Jean@Gmail.com", strPtr("jean@gmail.com"), true},
		{"valid with spaces", " jean@gmail.com ", strPtr("jean@gmail.com"), true},
		{"no at sign", "jean.gmail.com", strPtr("jean.gmail.com"), false},
		{"no tld", "jean@gmail", strPtr("jean@gmail"), false},
		{"one letter tld", "jean@gmail.c", strPtr("jean@gmail.c"), false},
		{"double at", "a@b@c.com", strPtr("a@b@c.com"), false},
		{"internal space", "je an@gmail.com", strPtr("je an@gmail.com"), false},
	}

	for _, v := range tests {
		clean, valid := normalize.Email(v.in)
		assert.Equal(t, v.clean, clean, v.msg)
		assert.Equal(t, v.valid, valid, v.msg)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res *string
	}{
		{"empty", "", nil},
		{"plain", "jean", strPtr("Jean")},
		{"all caps", "JEAN", strPtr("Jean")},
		{"decorated", "*jean#", strPtr("Jean")},
		{"control chars", "je\tan\n", strPtr("Jean")},
		{"only junk", "#*!?", nil},
		{"unicode", "éloïse", strPtr("Éloïse")},
		{"inner space kept", "jean paul", strPtr("Jean paul")},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, normalize.Name(v.in), v.msg)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res *string
	}{
		{"empty", "", nil},
		{"formatted", "(555) 123-4567", strPtr("5551234567")},
		{"international", "+33 1 23 45 67 89", strPtr("+33123456789")},
		{"plus not leading", "55+5123", strPtr("555123")},
		{"letters only", "call me", nil},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, normalize.Phone(v.in), v.msg)
	}
}

func TestRecord(t *testing.T) {
	n := normalize.New(nil)

	raw := record.Raw{
		ExternalID:   "C-001",
		FirstName:    " jean*",
		LastName:     "DUPONT",
		Email:        " Jean@Gmail.com ",
		Phone:        "+33 (0)1 23 45",
		CreatedAtRaw: "15/01/2023",
	}

	res := n.Record(raw)

	require.NotNil(t, res.EmailClean)
	assert.Equal(t, "jean@gmail.com", *res.EmailClean)
	assert.True(t, res.IsValidEmail)
	assert.Equal(t, strPtr("Jean"), res.FirstNameClean)
	assert.Equal(t, strPtr("Dupont"), res.LastNameClean)
	assert.Equal(t, strPtr("+33012345"), res.PhoneClean)
	require.NotNil(t, res.CreatedAtParsed)
	assert.Equal(t, "2023-01-15", res.CreatedAtParsed.Format("2006-01-02"))

	// Raw counterparts survive untouched for audit.
	assert.Equal(t, raw.Email, res.Email)
	assert.Equal(t, raw.FirstName, res.FirstName)
}

func TestRecordMalformedNeverErrors(t *testing.T) {
	n := normalize.New(nil)

	res := n.Record(record.Raw{
		ExternalID:   "C-002",
		Email:        "   ",
		FirstName:    "###",
		CreatedAtRaw: "not-a-date",
	})

	assert.Nil(t, res.EmailClean)
	assert.False(t, res.IsValidEmail)
	assert.Nil(t, res.FirstNameClean)
	assert.Nil(t, res.LastNameClean)
	assert.Nil(t, res.PhoneClean)
	assert.Nil(t, res.CreatedAtParsed)
}

// Normalization is idempotent: feeding the cleaned fields back
// through the normalizer yields the same cleaned fields.
func TestRecordIdempotent(t *testing.T) {
	n := normalize.New(nil)

	first := n.Record(record.Raw{
		ExternalID:   "C-003",
		FirstName:    " *marie ",
		LastName:     "curie!",
		Email:        " Marie@Example.ORG ",
		Phone:        "+1 (555) 000-1111",
		CreatedAtRaw: "2023-06-01",
	})

	again := record.Raw{ExternalID: "C-003"}
	again.FirstName = *first.FirstNameClean
	again.LastName = *first.LastNameClean
	again.Email = *first.EmailClean
	again.Phone = *first.PhoneClean
	again.CreatedAtRaw = first.CreatedAtParsed.Format("2006-01-02")

	second := n.Record(again)

	assert.Equal(t, first.EmailClean, second.EmailClean)
	assert.Equal(t, first.IsValidEmail, second.IsValidEmail)
	assert.Equal(t, first.FirstNameClean, second.FirstNameClean)
	assert.Equal(t, first.LastNameClean, second.LastNameClean)
	assert.Equal(t, first.PhoneClean, second.PhoneClean)
	assert.True(t, first.CreatedAtParsed.Equal(*second.CreatedAtParsed))
}
