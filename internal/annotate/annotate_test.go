package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DropsMalformedLines(t *testing.T) {
	got := Parse("7,Uncle Bill\n12,Duggar\nbad line\n,NoIndex\n5,")

	require.Len(t, got, 2)
	assert.Equal(t, Annotation{Index: 7, Label: "Uncle Bill"}, got[0])
	assert.Equal(t, Annotation{Index: 12, Label: "Duggar"}, got[1])
}

func TestParse_Cases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Annotation
	}{
		{"empty", "", nil},
		{"blank lines", "\n\n   \n", nil},
		{"crlf", "1,a\r\n2,b\r\n", []Annotation{{1, "a"}, {2, "b"}}},
		{"label keeps later commas", "3, one, two ", []Annotation{{3, "one, two"}}},
		{"trims index", "  4 ,x", []Annotation{{4, "x"}}},
		{"negative index", "-1,neg", nil},
		{"fractional index", "1.5,half", nil},
		{"whitespace label", "2,   ", nil},
		{"zero index", "0,first", []Annotation{{0, "first"}}},
		{"keeps order and duplicates", "5,b\n5,a\n1,c", []Annotation{{5, "b"}, {5, "a"}, {1, "c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestFormat_ParsesBack(t *testing.T) {
	items := []Annotation{{7, "Uncle Bill"}, {12, "Duggar"}}
	assert.Equal(t, items, Parse(Format(items)))
	assert.Equal(t, "", Format(nil))
}

func TestState_Active(t *testing.T) {
	s := NewState("1,a\nnope", false)
	assert.Len(t, s.Items(), 1)
	assert.Nil(t, s.Active())

	s.SetEnabled(true)
	assert.Equal(t, []Annotation{{1, "a"}}, s.Active())

	s.SetText("2,b\n3,c")
	assert.Equal(t, "2,b\n3,c", s.Text())
	assert.Len(t, s.Active(), 2)
}
