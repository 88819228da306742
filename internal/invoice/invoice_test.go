package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAmountAndTotal(t *testing.T) {
	data := Data{
		Lines: []Line{
			{Description: "Tuition: Physics", Hours: 8, Rate: 500},
			{Description: "Exam prep", Hours: 2, Rate: 750},
		},
	}

	assert.Equal(t, int64(4000), data.Lines[0].Amount())
	assert.Equal(t, int64(1500), data.Lines[1].Amount())
	assert.Equal(t, int64(5500), data.Total())
}

func TestInvoiceTemplateRenders(t *testing.T) {
	tmpl, err := parseComponents()
	require.NoError(t, err)

	data := Data{
		Number:       "INV-4F2A9C01",
		IssuedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TeacherName:  "Asha Rahman",
		GuardianName: "Rafiq Chowdhury",
		PostSubject:  "Physics, Class 10",
		Currency:     "USD",
		Lines: []Line{
			{Description: "Tuition: Physics", Hours: 8, Rate: 500},
		},
	}

	var html bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&html, "invoice", data))

	out := html.String()
	assert.Contains(t, out, "Invoice INV-4F2A9C01")
	assert.Contains(t, out, "Issued March 1, 2026")
	assert.Contains(t, out, "Asha Rahman")
	assert.Contains(t, out, "Rafiq Chowdhury")
	assert.Contains(t, out, "USD 4000")
}

func TestGenerateRejectsEmptyInvoice(t *testing.T) {
	generator, err := NewGenerator()
	require.NoError(t, err)

	_, err = generator.Generate(t.Context(), Data{Number: "INV-EMPTY"})
	assert.ErrorContains(t, err, "no lines")
}
