package maimai

import "testing"

func TestRateOf(t *testing.T) {
	tests := []struct {
		ach  float64
		want string
	}{
		{101.0, "sss+"},
		{100.5, "sss+"},
		{100.4999, "sss"},
		{100.0, "sss"},
		{99.5, "ss+"},
		{99.0, "ss"},
		{98.0, "s+"},
		{97.0, "s"},
		{94.0, "aaa"},
		{90.0, "aa"},
		{80.0, "a"},
		{75.0, "bbb"},
		{70.0, "bb"},
		{60.0, "b"},
		{50.0, "c"},
		{49.9, "d"},
		{0, "d"},
	}
	for _, tt := range tests {
		if got := RateOf(tt.ach); got != tt.want {
			t.Errorf("RateOf(%v) = %q，期望 %q", tt.ach, got, tt.want)
		}
	}
}

func TestRateIndex(t *testing.T) {
	if RateIndex("sss+") <= RateIndex("s") {
		t.Error("评级序列顺序错误")
	}
	if RateIndex("不存在") != -1 {
		t.Error("非法评级应返回-1")
	}
}

func TestLevelIndex(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"1", 0},
		{"6", 5},
		{"7", 6},
		{"9+", 11},
		{"13+", 19},
		{"15", 22},
		{"16", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := LevelIndex(tt.level); got != tt.want {
			t.Errorf("LevelIndex(%q) = %d，期望 %d", tt.level, got, tt.want)
		}
	}
}

func TestPlateVersions(t *testing.T) {
	if len(PlateVersions["真"]) != 2 {
		t.Error("真系应包含maimai与maimai PLUS两个版本")
	}
	// 繁简写法指向同一版本
	if PlateVersions["晓"][0] != PlateVersions["暁"][0] {
		t.Error("晓/暁应指向同一版本")
	}
	if _, ok := PlateVersions["舞"]; ok {
		t.Error("舞系牌子不应出现在版本映射中")
	}
}
