package mai_table

import (
	"testing"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
)

func testList() maimai.List {
	return maimai.List{
		&maimai.Music{
			ID: "11", Title: "Oshama Scramble!", Type: "DX",
			DS: []float64{4.0, 7.0, 10.0, 13.0, 13.9}, Level: []string{"4", "7", "10", "13", "13+"},
			Version: "maimai でらっくす",
		},
		&maimai.Music{
			ID: "365", Title: "飛んでったアイツ", Type: "SD",
			DS: []float64{4.0, 7.5, 10.5, 13.0}, Level: []string{"4", "7+", "10+", "13"},
			Version: "maimai GreeN",
		},
		&maimai.Music{
			ID: "100001", Title: "宴会場曲", Type: "SD",
			DS: []float64{13.0}, Level: []string{"13"},
			Version: "maimai でらっくす",
		},
	}
}

func TestChartsAtLevel(t *testing.T) {
	charts := chartsAtLevel(testList(), "13")
	if len(charts) != 2 {
		t.Fatalf("13级谱面数 = %d，期望 2（宴会场谱面不参与）", len(charts))
	}
	for _, c := range charts {
		if c.ds != 13.0 {
			t.Errorf("谱面定数 = %v，期望 13.0", c.ds)
		}
	}
	if got := chartsAtLevel(testList(), "13+"); len(got) != 1 || got[0].music.ID != "11" {
		t.Errorf("13+级谱面解析错误：%v", got)
	}
}

func TestRatingTableRows(t *testing.T) {
	rows := ratingTableRows(testList(), "13")
	if len(rows) != 1 {
		t.Fatalf("定数表行数 = %d，期望 1", len(rows))
	}
	if rows[0] != "「13.0」 11紫 365紫" {
		t.Errorf("定数表行 = %q", rows[0])
	}
}

func TestRecordKey(t *testing.T) {
	if recordKey(11, 3) == recordKey(11, 4) {
		t.Error("同曲不同难度的键不应相同")
	}
	if recordKey(11, 3) == recordKey(12, 3) {
		t.Error("不同曲目的键不应相同")
	}
}

func TestPlateAchieved(t *testing.T) {
	rec := maimai.PlateRecord{Achievements: 100.2, FC: "fc", FS: "fsd"}
	tests := []struct {
		plan string
		want bool
	}{
		{"极", true},
		{"将", true},
		{"神", false}, // fc不满足AP
		{"舞舞", true},
		{"者", false},
	}
	for _, tt := range tests {
		if got := plateAchieved(rec, tt.plan); got != tt.want {
			t.Errorf("plateAchieved(%q) = %v，期望 %v", tt.plan, got, tt.want)
		}
	}
	if plateAchieved(maimai.PlateRecord{Achievements: 99.9}, "将") {
		t.Error("达成率不足100不应满足「将」")
	}
}

func TestPlanAchieved(t *testing.T) {
	rec := maimai.PlateRecord{Achievements: 99.2, FC: "fcp", FS: "fs"}
	tests := []struct {
		plan string
		want bool
	}{
		{"ss", true},
		{"ss+", false},
		{"s", true},
		{"fc", true},
		{"fcp", true},
		{"ap", false},
		{"fs", true},
		{"fsd", false},
		{"不存在", false},
	}
	for _, tt := range tests {
		if got := planAchieved(rec, tt.plan); got != tt.want {
			t.Errorf("planAchieved(%q) = %v，期望 %v", tt.plan, got, tt.want)
		}
	}
}

func TestNormalizePlan(t *testing.T) {
	if normalizePlan("極") != "极" || normalizePlan("將") != "将" {
		t.Error("繁体写法应归一化为简体")
	}
	if normalizePlan("舞舞") != "舞舞" {
		t.Error("简体写法应保持不变")
	}
}

func TestClampTablePage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{1, 10, 1},
		{0, 10, 1},
		{3, 30, 2},
		{2, 50, 2},
		{2, 25, 1},
	}
	for _, tt := range tests {
		if got := clampTablePage(tt.page, tt.total); got != tt.want {
			t.Errorf("clampTablePage(%d, %d) = %d，期望 %d", tt.page, tt.total, got, tt.want)
		}
	}
}
