package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			if result != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_RawDetectsLineEndings(t *testing.T) {
	calc := New()

	lf := calc.CalculateRaw([]byte("<a1>1</a1>\n"))
	crlf := calc.CalculateRaw([]byte("<a1>1</a1>\r\n"))
	if lf == crlf {
		t.Error("raw checksum should differ for LF and CRLF content")
	}
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()

	tests := []struct {
		name      string
		a         string
		b         string
		wantEqual bool
	}{
		{
			name:      "indentation only",
			a:         "<MaxQuantParams>\n   <boxCarMode>False</boxCarMode>\n</MaxQuantParams>\n",
			b:         "<MaxQuantParams>\n\t<boxCarMode>False</boxCarMode>\n</MaxQuantParams>",
			wantEqual: true,
		},
		{
			name:      "line endings",
			a:         "<a1>\r\n<b1>x</b1>\r\n</a1>\r\n",
			b:         "<a1>\n<b1>x</b1>\n</a1>\n",
			wantEqual: true,
		},
		{
			name:      "comments removed",
			a:         "<a1><!-- edited by hand --><b1>x</b1></a1>",
			b:         "<a1><b1>x</b1></a1>",
			wantEqual: true,
		},
		{
			name:      "multi-line comment",
			a:         "<a1>\n<!--\n  <boxCarMode>False</boxCarMode>\n-->\n</a1>",
			b:         "<a1></a1>",
			wantEqual: true,
		},
		{
			name:      "value change",
			a:         "<lcmsRunType>Standard</lcmsRunType>",
			b:         "<lcmsRunType>Reporter MS2</lcmsRunType>",
			wantEqual: false,
		},
		{
			name:      "case is significant",
			a:         "<a1>False</a1>",
			b:         "<a1>false</a1>",
			wantEqual: false,
		},
		{
			name:      "whitespace inside values kept",
			a:         "<string>Oxidation (M)</string>",
			b:         "<string>Oxidation(M)</string>",
			wantEqual: false,
		},
		{
			name:      "comment markers in CDATA kept",
			a:         "<a1><![CDATA[<!-- x -->]]></a1>",
			b:         "<a1><![CDATA[]]></a1>",
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := calc.CalculateNormalized([]byte(tt.a))
			b := calc.CalculateNormalized([]byte(tt.b))
			if (a == b) != tt.wantEqual {
				t.Errorf("normalized checksums equal = %v, want %v\n  a: %q\n  b: %q",
					a == b, tt.wantEqual, calc.normalize(tt.a), calc.normalize(tt.b))
			}
		})
	}
}

func TestSHA256Calculator_UnterminatedComment(t *testing.T) {
	calc := New()

	got := calc.normalize("<a1>x</a1><!-- never closed <b1/>")
	if got != "<a1>x</a1>" {
		t.Errorf("normalize() = %q, want %q", got, "<a1>x</a1>")
	}
}

func TestSHA256Calculator_ImplementsCalculator(t *testing.T) {
	var _ Calculator = New()
}
