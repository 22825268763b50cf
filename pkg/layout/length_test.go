package layout

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		input string
		want  Length
	}{
		{"auto", Auto},
		{"10", Dip(10)},
		{" 2.5 ", Dip(2.5)},
		{"12px", Px(12)},
		{"8dip", Dip(8)},
		{"50%", Percent(0.5)},
		{"-4", Dip(-4)},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.input)
		if err != nil {
			t.Errorf("ParseLength(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLengthInvalid(t *testing.T) {
	for _, input := range []string{"", "px", "ten", "10em", "%"} {
		if _, err := ParseLength(input); err == nil {
			t.Errorf("ParseLength(%q) expected error", input)
		}
	}
}

func TestLengthString(t *testing.T) {
	tests := []struct {
		length Length
		want   string
	}{
		{Auto, "auto"},
		{Dip(10), "10"},
		{Px(1.5), "1.5px"},
		{Percent(0.25), "25%"},
	}
	for _, tt := range tests {
		if got := tt.length.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestToDevicePixels(t *testing.T) {
	if got := Dip(10).ToDevicePixels(0, 2); got != 20 {
		t.Errorf("dip = %v, want 20", got)
	}
	if got := Percent(0.5).ToDevicePixels(300, 2); got != 150 {
		t.Errorf("percent = %v, want 150", got)
	}
	if got := Auto.ToDevicePixels(300, 2); got != 0 {
		t.Errorf("auto = %v, want 0", got)
	}
}

func TestParseEdgeInsets(t *testing.T) {
	tests := []struct {
		input string
		want  EdgeInsets
	}{
		{"4", EdgeInsetsAll(Dip(4))},
		{"1 2", EdgeInsets{Top: Dip(1), Right: Dip(2), Bottom: Dip(1), Left: Dip(2)}},
		{"1 2 3", EdgeInsets{Top: Dip(1), Right: Dip(2), Bottom: Dip(3), Left: Dip(2)}},
		{"1, 2, 3, 4", EdgeInsets{Top: Dip(1), Right: Dip(2), Bottom: Dip(3), Left: Dip(4)}},
		{"10px auto", EdgeInsetsSymmetric(Px(10), Auto)},
	}
	for _, tt := range tests {
		got, err := ParseEdgeInsets(tt.input)
		if err != nil {
			t.Errorf("ParseEdgeInsets(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEdgeInsets(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	for _, bad := range []string{"", "1 2 3 4 5", "1 x"} {
		if _, err := ParseEdgeInsets(bad); err == nil {
			t.Errorf("ParseEdgeInsets(%q) expected error", bad)
		}
	}
}
