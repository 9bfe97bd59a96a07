package mai_search

import (
	"strings"
	"testing"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		page  int
		total int
		want  int
	}{
		{1, 10, 1},
		{0, 10, 1},
		{-3, 10, 1},
		{2, 10, 1},  // 10条只有1页
		{2, 30, 2},  // 30条有2页
		{5, 30, 2},  // 超出页数取最后一页
		{3, 100, 3}, // 100条有5页
	}
	for _, tt := range tests {
		if got := clampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("clampPage(%d, %d) = %d，期望 %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPageSlice(t *testing.T) {
	tests := []struct {
		page   int
		total  int
		lo, hi int
	}{
		{1, 10, 0, 10},
		{1, 30, 0, 25},
		{2, 30, 25, 30},
		{2, 60, 25, 50},
		{3, 60, 50, 60},
	}
	for _, tt := range tests {
		lo, hi := pageSlice(tt.page, tt.total)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("pageSlice(%d, %d) = (%d, %d)，期望 (%d, %d)",
				tt.page, tt.total, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestPageFooter(t *testing.T) {
	if got := pageFooter(2, 30); got != "第「2」页，共「2」页。请使用「id xxxxx」查询指定曲目。" {
		t.Errorf("pageFooter = %q", got)
	}
}

func TestIDPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id11364", "11364"},
		{"id 11364", ""},
		{"11364", ""},
		{"idabc", ""},
	}
	for _, tt := range tests {
		sub := idPattern.FindStringSubmatch(tt.in)
		got := ""
		if len(sub) > 1 {
			got = sub[1]
		}
		if got != tt.want {
			t.Errorf("idPattern(%q) = %q，期望 %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDSRange(t *testing.T) {
	tests := []struct {
		in        string
		low, high float64
		page      int
		ok        bool
	}{
		{"13", 13, 13, 1, true},
		{"13.7", 13.7, 13.7, 1, true},
		{"13 2", 13, 13, 2, true}, // 第二个参数为页数
		{"13 14.0", 13, 14, 1, true},
		{"13.0 14.5 2", 13, 14.5, 2, true},
		{"", 0, 0, 0, false},
		{"abc", 0, 0, 0, false},
		{"13 abc 2", 0, 0, 0, false},
		{"13 14 15 16", 0, 0, 0, false},
	}
	for _, tt := range tests {
		low, high, page, ok := parseDSRange(strings.Fields(tt.in))
		if ok != tt.ok {
			t.Errorf("parseDSRange(%q) ok = %v，期望 %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (low != tt.low || high != tt.high || page != tt.page) {
			t.Errorf("parseDSRange(%q) = (%v, %v, %d)，期望 (%v, %v, %d)",
				tt.in, low, high, page, tt.low, tt.high, tt.page)
		}
	}
}

func TestParseBPMRange(t *testing.T) {
	tests := []struct {
		in              string
		low, high, page int
		ok              bool
	}{
		{"160", 160, 160, 1, true},
		{"160 170", 160, 170, 1, true},
		{"160 2", 160, 160, 2, true}, // 前者大于后者时，后者视作页数
		{"160 170 2", 160, 170, 2, true},
		{"", 0, 0, 0, false},
		{"abc", 0, 0, 0, false},
		{"160 abc", 0, 0, 0, false},
	}
	for _, tt := range tests {
		low, high, page, ok := parseBPMRange(strings.Fields(tt.in))
		if ok != tt.ok {
			t.Errorf("parseBPMRange(%q) ok = %v，期望 %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (low != tt.low || high != tt.high || page != tt.page) {
			t.Errorf("parseBPMRange(%q) = (%d, %d, %d)，期望 (%d, %d, %d)",
				tt.in, low, high, page, tt.low, tt.high, tt.page)
		}
	}
}

func TestParseNamePage(t *testing.T) {
	tests := []struct {
		in   string
		name string
		page int
		ok   bool
	}{
		{"t+pazolite", "t+pazolite", 1, true},
		{"t+pazolite 2", "t+pazolite", 2, true},
		{"  t+pazolite   2  ", "t+pazolite", 2, true}, // 多余空白不影响解析
		{"", "", 0, false},
		{"a b c", "", 0, false},
		{"名称 页", "", 0, false},
	}
	for _, tt := range tests {
		name, page, ok := parseNamePage(strings.Fields(tt.in))
		if ok != tt.ok {
			t.Errorf("parseNamePage(%q) ok = %v，期望 %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (name != tt.name || page != tt.page) {
			t.Errorf("parseNamePage(%q) = (%q, %d)，期望 (%q, %d)", tt.in, name, page, tt.name, tt.page)
		}
	}
}
