package charconv

import "testing"

func TestConverter_Process(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		input  string
		want   string
	}{
		{"full-width letters", nil, "ＡＢＣａｂｃ", "ABCabc"},
		{"full-width digits", nil, "１２３４５６７８９０", "1234567890"},
		{"ideographic space", nil, "hello　world", "hello world"},
		{"full-width punctuation", nil, "！＂＃＄％＆＇（）＊＋，－．／", "!\"#$%&'()*+,-./"},
		{"double quotes", nil, "“测试”", "\"测试\""},
		{"single quotes", nil, "‘测试’", "'测试'"},
		{"comma and period", nil, "你好，世界。", "你好,世界."},
		{"enumeration comma", nil, "甲、乙", "甲,乙"},
		{"bang and question", nil, "测试！问题？", "测试!问题?"},
		{"colon and semicolon", nil, "第一；第二：", "第一;第二:"},
		{"parentheses", nil, "（测试）", "(测试)"},
		{"repeated punctuation", nil, "你好！！！？？", "你好!!!??"},
		{"mixed", nil, "Ｈｅｌｌｏ，Ｗｏｒｌｄ！　“测试”", "Hello,World! \"测试\""},
		{"untouched", nil, "这是一段中文和English混合的文本123", "这是一段中文和English混合的文本123"},
		{
			name:   "all toggles off",
			config: &Config{},
			input:  "ＡＢＣ，“测试”。",
			want:   "ＡＢＣ，“测试”。",
		},
		{
			name:   "punctuation only",
			config: &Config{NormalizePunctuation: true},
			input:  "Ａ，“。”",
			want:   "Ａ,“.”",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.config).Process(tt.input)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Process(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToHalfWidth_OffsetRange(t *testing.T) {
	for r := FullWidthFirst; r <= FullWidthLast; r++ {
		if _, ok := FullWidthTable[r]; ok {
			continue
		}
		got := ToHalfWidth(string(r))
		want := string(r - FullWidthOffset)
		if got != want {
			t.Errorf("ToHalfWidth(%U) = %q, want %q", r, got, want)
		}
	}
}

func TestFullWidthTable(t *testing.T) {
	if len(FullWidthTable) != 32 {
		t.Errorf("len(FullWidthTable) = %d, want 32", len(FullWidthTable))
	}
	for from, to := range FullWidthTable {
		if got := ToHalfWidth(string(from)); got != string(to) {
			t.Errorf("ToHalfWidth(%q) = %q, want %q", from, got, to)
		}
	}
}

func TestPureFunctions(t *testing.T) {
	if got := NormalizeQuotes("“a” ‘b’"); got != "\"a\" 'b'" {
		t.Errorf("NormalizeQuotes() = %q", got)
	}
	if got := NormalizePunctuation("（一）、二。"); got != "(一),二." {
		t.Errorf("NormalizePunctuation() = %q", got)
	}
	if got := ToHalfWidth("漢字"); got != "漢字" {
		t.Errorf("ToHalfWidth() changed non full-width text: %q", got)
	}
}

func TestConverter_InvalidUTF8Unchanged(t *testing.T) {
	input := "ＡＢＣ\xff，"
	got, err := New(nil).Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got != input {
		t.Errorf("Process(%q) = %q, want input unchanged", input, got)
	}
	if got := ToHalfWidth(input); got != input {
		t.Errorf("ToHalfWidth(%q) = %q, want input unchanged", input, got)
	}
}

func TestConverter_Name(t *testing.T) {
	if New(nil).Name() != "characterConverter" {
		t.Errorf("Name() = %q", New(nil).Name())
	}
}
